package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/brizzai/target-wizard/internal/controller"
	"github.com/brizzai/target-wizard/internal/form"
	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// submitFlags are the field values of the headless submit
type submitFlags struct {
	targetType         string
	url                string
	headers            []string
	passthroughAuth    bool
	insecureSkipVerify bool
	command            string
	args               []string
	env                []string
	schemaFile         string
}

var submitOpts submitFlags

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Create or update a target without the interactive wizard",
	Long: `Submit builds a target from flags, optionally on top of an existing one loaded with
--from-file or --edit, and sends it to the gateway (or to --output-file).`,
	Example: `  target-wizard submit --name docs --listener default --type streamable_http --url http://localhost:8080/mcp
  target-wizard submit --name fs --type stdio --cmd npx --arg -y --arg @modelcontextprotocol/server-filesystem
  target-wizard submit --edit docs --insecure-skip-verify`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	flags := submitCmd.Flags()
	flags.StringVar(&submitOpts.targetType, "type", "", "Target type: sse, stdio, openapi or streamable_http")
	flags.StringVar(&submitOpts.url, "url", "", "Server URL (sse, streamable_http) or API URL (openapi)")
	flags.StringArrayVar(&submitOpts.headers, "header", nil, "Header as KEY=VALUE (repeatable)")
	flags.BoolVar(&submitOpts.passthroughAuth, "passthrough-auth", false, "Pass inbound credentials through to the target")
	flags.BoolVar(&submitOpts.insecureSkipVerify, "insecure-skip-verify", false, "Skip TLS verification (also selects https)")
	flags.StringVar(&submitOpts.command, "cmd", "", "Command of a stdio target")
	flags.StringArrayVar(&submitOpts.args, "arg", nil, "Argument of a stdio target (repeatable)")
	flags.StringArrayVar(&submitOpts.env, "env", nil, "Environment variable of a stdio target as KEY=VALUE (repeatable)")
	flags.StringVar(&submitOpts.schemaFile, "schema-file", "", "OpenAPI schema file of an openapi target")
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	env, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	existing, err := env.loadExisting(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing target: %w", err)
	}
	name := env.targetName(existing)
	if name == "" {
		return fmt.Errorf("target name is required, you must supply it with --name")
	}

	ctrl := controller.New(name, env.submitFunc(), env.loader, existing)
	if submitOpts.targetType != "" {
		t, err := target.ParseType(submitOpts.targetType)
		if err != nil {
			return err
		}
		if err := ctrl.SetActive(t); err != nil {
			return err
		}
	}
	if len(listeners) > 0 || existing == nil {
		ctrl.SetListeners(env.preselectedListeners(existing))
	}

	if err := applySubmitFlags(cmd, ctrl.ActiveForm()); err != nil {
		return err
	}

	// SubmitForm does not require listeners, unlike the wizard's button
	if len(ctrl.ActiveForm().Listeners()) == 0 {
		pterm.Warning.Println("The target is not attached to any listener")
	}

	if err := ctrl.SubmitForm(ctx); err != nil {
		return err
	}
	pterm.Success.Printfln("Target %s (%s) sent to %s",
		pterm.LightGreen(name),
		pterm.White(ctrl.Active().DisplayName()),
		env.destination())
	return nil
}

// remoteFields is the field set of SSE and Streamable HTTP forms
type remoteFields interface {
	SetURL(string)
	SetPendingHeader(key, value string)
	AddHeader() bool
	SetPassthroughAuth(bool)
	SetInsecureSkipVerify(bool)
}

// applySubmitFlags copies the flags that were set onto f. Unset flags leave
// values loaded from an existing target alone.
func applySubmitFlags(cmd *cobra.Command, f form.Form) error {
	changed := cmd.Flags().Changed

	switch f := f.(type) {
	case remoteFields:
		if changed("url") {
			f.SetURL(submitOpts.url)
		}
		for _, h := range submitOpts.headers {
			k, v, err := splitPair(h)
			if err != nil {
				return fmt.Errorf("invalid --header: %w", err)
			}
			f.SetPendingHeader(k, v)
			f.AddHeader()
		}
		if changed("passthrough-auth") {
			f.SetPassthroughAuth(submitOpts.passthroughAuth)
		}
		if changed("insecure-skip-verify") {
			f.SetInsecureSkipVerify(submitOpts.insecureSkipVerify)
		}

	case *form.StdioForm:
		if changed("cmd") {
			f.SetCommand(submitOpts.command)
		}
		if changed("arg") {
			f.SetArgs(submitOpts.args)
		}
		for _, e := range submitOpts.env {
			k, v, err := splitPair(e)
			if err != nil {
				return fmt.Errorf("invalid --env: %w", err)
			}
			f.SetPendingEnv(k, v)
			f.AddEnv()
		}

	case *form.OpenAPIForm:
		if changed("url") {
			f.SetURL(submitOpts.url)
		}
		if changed("schema-file") {
			f.SetSchemaFile(submitOpts.schemaFile)
		}
	}
	return nil
}

// splitPair parses KEY=VALUE. Both halves must be non-empty.
func splitPair(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" || v == "" {
		return "", "", fmt.Errorf("%q is not KEY=VALUE", s)
	}
	return k, v, nil
}
