package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/pterm/pterm"

	"github.com/brizzai/target-wizard/internal/config"
	"github.com/brizzai/target-wizard/internal/controller"
	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/brizzai/target-wizard/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	Execute()
}

var (
	targetName string
	listeners  []string
	fromFile   string
	editName   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "target-wizard",
	Short: "A wizard to set up gateway targets",
	Long: `Target Wizard is a CLI tool that walks you through creating or updating an MCP target
on the gateway. A target is reached over SSE, stdio, OpenAPI or Streamable HTTP.`,
	Run: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&targetName, "name", "", "Name of the target")
	flags.StringSliceVar(&listeners, "listener", nil, "Listener to attach the target to (repeatable)")
	flags.StringVar(&fromFile, "from-file", "", "Edit the target described in this JSON or YAML file")
	flags.StringVar(&editName, "edit", "", "Edit this existing gateway target")
	flags.BoolP("version", "v", false, "Show version information")
	config.InitFlags(flags)

	rootCmd.AddCommand(submitCmd, inspectOpenAPICmd, schemaCmd, urlCmd)
}

// runTUI is the main function that runs the TUI
func runTUI(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	// The TUI owns the terminal, so logs only go to a file if one is set
	env, err := setup(cmd, true)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	existing, err := env.loadExisting(ctx)
	if err != nil {
		pterm.Error.Printf("Error loading existing target: %v\n", err)
		os.Exit(1)
	}

	name := env.targetName(existing)
	if name == "" {
		pterm.Error.Println("Target name is required, you must supply it with --name")
		os.Exit(1)
	}

	ctrl := controller.New(name, env.submitFunc(), env.loader, existing)
	preselected := env.preselectedListeners(existing)
	ctrl.SetListeners(preselected)

	app := tui.NewAppModel(ctx, ctrl, env.availableListeners(ctx), tui.Summary{
		Name:        name,
		Updating:    existing != nil,
		Destination: env.destination(),
		Listeners:   preselected,
	})

	// Create and run the TUI
	p := tea.NewProgram(app, tea.WithAltScreen())

	m, err := p.Run()
	// Abandon a submit that is still in flight
	cancel()
	if err != nil {
		pterm.Error.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	finalModel := m.(tui.AppModel)
	if finalModel.IsFinished() {
		pterm.Success.Printfln("Target %s (%s) sent to %s",
			pterm.LightGreen(name),
			pterm.White(ctrl.Active().DisplayName()),
			env.destination())
	}
}
