package main

import (
	"context"
	"fmt"

	"github.com/brizzai/target-wizard/internal/config"
	"github.com/brizzai/target-wizard/internal/form"
	"github.com/brizzai/target-wizard/internal/gateway"
	"github.com/brizzai/target-wizard/internal/logger"
	"github.com/brizzai/target-wizard/internal/openapi"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/brizzai/target-wizard/internal/tui/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// environment is what every command needs once flags are parsed
type environment struct {
	cfg    *config.Config
	client *gateway.Client
	loader openapi.Loader
}

// setup loads the configuration, starts logging and assembles the gateway
// client and schema loader
func setup(cmd *cobra.Command, interactive bool) (*environment, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if interactive {
		cfg.Logging.DisableConsole = true
	}
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	env := &environment{cfg: cfg}
	app := fx.New(
		fx.NopLogger,
		fx.Supply(&cfg.Gateway),
		gateway.Module,
		openapi.Module,
		fx.Populate(&env.client, &env.loader),
	)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}
	return env, nil
}

// loadExisting returns the target to edit, or nil when creating one
func (e *environment) loadExisting(ctx context.Context) (*target.Descriptor, error) {
	switch {
	case fromFile != "" && editName != "":
		return nil, fmt.Errorf("--from-file and --edit cannot be used together")
	case fromFile != "":
		return target.LoadFile(fromFile)
	case editName != "":
		return e.client.GetTarget(ctx, editName)
	}
	return nil, nil
}

func (e *environment) targetName(existing *target.Descriptor) string {
	if targetName != "" {
		return targetName
	}
	if existing != nil {
		return existing.Name
	}
	return ""
}

// preselectedListeners prefers --listener, then the existing target, then
// the configured defaults
func (e *environment) preselectedListeners(existing *target.Descriptor) []string {
	switch {
	case len(listeners) > 0:
		return listeners
	case existing != nil && len(existing.Listeners) > 0:
		return existing.Listeners
	}
	return e.cfg.Wizard.Listeners
}

// availableListeners asks the gateway for its listeners. Failures are shown
// as a warning; the picker then only offers the preselected names.
func (e *environment) availableListeners(ctx context.Context) []models.ListenerItem {
	if e.cfg.Wizard.OutputFile != "" {
		return nil
	}
	found, err := e.client.ListListeners(ctx)
	if err != nil {
		logger.Warn("Failed to list gateway listeners", zap.Error(err))
		pterm.Warning.Printfln("Could not list gateway listeners: %v", err)
		return nil
	}
	items := make([]models.ListenerItem, 0, len(found))
	for _, l := range found {
		items = append(items, models.ListenerItem{Name: l.Name, Protocol: l.Protocol})
	}
	return items
}

// submitFunc writes to the configured output file, or creates the target on
// the gateway
func (e *environment) submitFunc() form.SubmitFunc {
	if path := e.cfg.Wizard.OutputFile; path != "" {
		return func(_ context.Context, t target.Target) error {
			logger.Info("Writing target descriptor", zap.String("file", path), zap.String("name", t.Name))
			return target.WriteFile(t, path)
		}
	}
	return e.client.CreateTarget
}

func (e *environment) destination() string {
	if e.cfg.Wizard.OutputFile != "" {
		return e.cfg.Wizard.OutputFile
	}
	return e.cfg.Gateway.BaseURL
}
