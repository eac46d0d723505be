package cmd

import (
	"context"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/source"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/spf13/cobra"
)

var componentCmd = &cobra.Command{
	Use:   "component <project-root>...",
	Short: "Add the Nx component testing preset to Cypress config files",
	Long: `Add a component section built from the Nx component testing preset to
the cypress config of each project root.

Example usage:
  cyconfig component libs/ui
  cyconfig component libs/ui --bundler webpack --build-target shop:build`,
	Args: cobra.MinimumNArgs(1),
	RunE: runComponent,
}

func init() {
	rootCmd.AddCommand(componentCmd)

	componentCmd.Flags().String("bundler", "", "bundler used by the preset (vite is the default and is omitted)")
	componentCmd.Flags().String("build-target", "", "build target the preset reuses, e.g. app:build")
	componentCmd.Flags().String("compiler", "", "compiler used by the preset (babel, swc)")
	componentCmd.Flags().String("ct-target-name", "", "name of the component testing target")
	componentCmd.Flags().Bool("add-import", true, "also import the preset function")
}

func runComponent(cmd *cobra.Command, args []string) error {
	app, err := appConfigFrom(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config.Component

	options := cypress.ComponentTestingOptions{
		CTTargetName: stringFlag(cmd, "ct-target-name", ""),
		Bundler:      stringFlag(cmd, "bundler", cfg.Bundler),
		BuildTarget:  stringFlag(cmd, "build-target", ""),
		Compiler:     stringFlag(cmd, "compiler", cfg.Compiler),
	}
	addImport := boolFlag(cmd, "add-import", cfg.AddImport)
	preset := cypress.Preset{Name: cfg.Preset.Name, Module: cfg.Preset.Module}

	targets, locateErr := workspace.LocateTargets(args, func(path string) workspace.Transform {
		injector := cypress.NewConfigInjector(source.NewEngineForPath(path), cypress.WithComponentPreset(preset))
		return componentTransform(injector, options, addImport)
	})
	if locateErr != nil {
		app.Logger.Warnf("%v", locateErr)
	}

	if err := runTargets(cmd, app, "Adding component testing preset...", targets); err != nil {
		return err
	}
	return locateErr
}

// componentTransform injects the component section and, when asked, the
// import of the preset function it calls.
func componentTransform(injector *cypress.ConfigInjector, options cypress.ComponentTestingOptions, addImport bool) workspace.Transform {
	return func(ctx context.Context, content string) (cypress.Result, error) {
		res, err := injector.AddDefaultCTConfig(ctx, content, options)
		if err != nil || res.Status != cypress.StatusInjected || !addImport {
			return res, err
		}

		preset := injector.ComponentPreset()
		imported, err := injector.AddImport(ctx, res.Content, cypress.ImportSpec{
			Names:  []string{preset.Name},
			Module: preset.Module,
		})
		if err != nil {
			return cypress.Result{}, err
		}
		return cypress.Result{Content: imported.Content, Status: cypress.StatusInjected}, nil
	}
}
