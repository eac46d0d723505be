package cmd

import (
	"context"

	"github.com/getlawrence/cyconfig/internal/config"
	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/source"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/spf13/cobra"
)

var e2eCmd = &cobra.Command{
	Use:   "e2e <project-root>...",
	Short: "Add the Nx e2e preset to Cypress config files",
	Long: `Add an e2e section spreading the Nx e2e preset to the cypress config of
each project root. The preset import is added when missing.

Example usage:
  cyconfig e2e apps/shop-e2e --base-url http://localhost:4200
  cyconfig e2e apps/* --web-server-command default="nx run shop:serve"
  cyconfig e2e apps/shop-e2e --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runE2E,
}

func init() {
	rootCmd.AddCommand(e2eCmd)
	addE2EFlags(e2eCmd)
}

func addE2EFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-url", "", "value of e2e.baseUrl")
	cmd.Flags().String("cypress-dir", "", "directory holding the cypress sources")
	cmd.Flags().String("bundler", "", "bundler used by the preset (vite, webpack)")
	cmd.Flags().StringToString("web-server-command", nil, "named dev server commands (name=command)")
	cmd.Flags().String("ci-web-server-command", "", "dev server command used on CI")
	cmd.Flags().String("ci-base-url", "", "base url used on CI")
	cmd.Flags().Int("web-server-timeout", 0, "seconds to wait for the dev server")
	cmd.Flags().Bool("reuse-existing-server", false, "reuse a dev server that is already running")
	cmd.Flags().Bool("jsx", false, "the project uses JSX")
	cmd.Flags().String("testing-type", "", "cypress testing type passed to the preset")
}

func runE2E(cmd *cobra.Command, args []string) error {
	app, err := appConfigFrom(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config.E2E

	options := e2eOptions(cmd, cfg)
	baseURL := stringFlag(cmd, "base-url", cfg.BaseURL)
	preset := cypress.Preset{Name: cfg.Preset.Name, Module: cfg.Preset.Module}

	targets, locateErr := workspace.LocateTargets(args, func(path string) workspace.Transform {
		injector := cypress.NewConfigInjector(source.NewEngineForPath(path), cypress.WithE2EPreset(preset))
		p := injector.E2EPreset()
		app.Logger.Debugf("Injecting %s from %s into %s", p.Name, p.Module, path)
		return func(ctx context.Context, content string) (cypress.Result, error) {
			return injector.AddDefaultE2EConfig(ctx, content, options, baseURL)
		}
	})
	if locateErr != nil {
		app.Logger.Warnf("%v", locateErr)
	}

	if err := runTargets(cmd, app, "Adding e2e preset...", targets); err != nil {
		return err
	}
	return locateErr
}

// e2eOptions merges the e2e flags over the configured defaults.
func e2eOptions(cmd *cobra.Command, cfg config.E2EConfig) cypress.E2EPresetOptions {
	webServerCommands := cfg.WebServerCommands
	if cmd.Flags().Changed("web-server-command") {
		webServerCommands, _ = cmd.Flags().GetStringToString("web-server-command")
	}

	options := cypress.E2EPresetOptions{
		CypressDir:         stringFlag(cmd, "cypress-dir", cfg.CypressDir),
		Bundler:            stringFlag(cmd, "bundler", cfg.Bundler),
		WebServerCommands:  webServerCommands,
		CIWebServerCommand: stringFlag(cmd, "ci-web-server-command", cfg.CIWebServerCommand),
		CIBaseURL:          stringFlag(cmd, "ci-base-url", cfg.CIBaseURL),
		JSX:                boolFlag(cmd, "jsx", cfg.JSX),
		TestingType:        stringFlag(cmd, "testing-type", cfg.TestingType),
	}

	server := cypress.WebServerConfig{
		Timeout:             intFlag(cmd, "web-server-timeout", cfg.WebServerTimeout),
		ReuseExistingServer: boolFlag(cmd, "reuse-existing-server", cfg.ReuseExistingServer),
	}
	if server != (cypress.WebServerConfig{}) {
		options.WebServerConfig = &server
	}
	return options
}
