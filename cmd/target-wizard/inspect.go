package main

import (
	"strings"

	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var inspectOpenAPICmd = &cobra.Command{
	Use:   "inspect-openapi FILE",
	Short: "Preview the MCP tools an OpenAPI target would expose",
	Long: `Inspect-openapi loads an OpenAPI 3 or Swagger 2.0 document, JSON or YAML, and lists the
tools the gateway derives from it: one per operation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		doc, err := env.loader.LoadFile(args[0])
		if err != nil {
			return err
		}

		tools := doc.Tools()
		data := pterm.TableData{{"Tool", "Required", "Description"}}
		for _, tool := range tools {
			desc, _, _ := strings.Cut(tool.Description, "\n")
			data = append(data, []string{
				tool.Name,
				strings.Join(tool.InputSchema.Required, ", "),
				strings.TrimSpace(desc),
			})
		}

		pterm.DefaultSection.Println(doc.Title())
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
		pterm.Info.Printfln("%s exposes %d tools", args[0], len(tools))
		return nil
	},
}
