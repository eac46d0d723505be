package cmd

import (
	"context"
	"errors"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/logger"
	"github.com/getlawrence/cyconfig/internal/ui"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/spf13/cobra"
)

// runTargets applies every target and prints a summary. A spinner is shown
// when stdout is a terminal; per-file log lines are emitted otherwise.
func runTargets(cmd *cobra.Command, app *AppConfig, title string, targets []workspace.Target) error {
	ctx := cmd.Context()
	interactive := ui.IsInteractive()

	var l logger.Logger = app.Logger
	if interactive {
		l = logger.NopLogger{}
	}
	ws := app.Workspace(l)

	var (
		outcomes []workspace.Outcome
		applyErr error
	)
	apply := func(ctx context.Context) error {
		outcomes, applyErr = ws.ApplyAll(ctx, targets, app.Config.Output.Concurrency)
		return applyErr
	}

	if interactive {
		// RunSpinner returns only after apply has stopped writing.
		if err := ui.RunSpinner(ctx, title, apply); errors.Is(err, ui.ErrCanceled) {
			printOutcomes(app, outcomes)
			return err
		}
	} else {
		_ = apply(ctx)
	}

	printOutcomes(app, outcomes)
	return applyErr
}

func printOutcomes(app *AppConfig, outcomes []workspace.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	for _, o := range outcomes {
		if o.Err == nil && o.Status == cypress.StatusUnresolved {
			app.Logger.Warnf("could not find the exported config object in %s", o.Path)
		}
	}

	ui.Log(ui.RenderOutcomes(outcomes))

	if !app.Config.Output.DryRun {
		return
	}
	for _, o := range outcomes {
		if o.Diff != "" {
			ui.Log(o.Diff)
		}
	}
}

// stringFlag returns the flag value when it was set, otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

// boolFlag returns the flag value when it was set, otherwise fallback.
func boolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// intFlag returns the flag value when it was set, otherwise fallback.
func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}
