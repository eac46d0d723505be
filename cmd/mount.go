package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/source"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:   "mount <commands-file>",
	Short: "Declare and register the mount command in a component commands file",
	Long: `Add mount to every interface declared in a Cypress component commands
file and register it with Cypress.Commands.add. The mount function is
imported from --mount-module.

Example usage:
  cyconfig mount libs/ui/cypress/support/commands.ts
  cyconfig mount cypress/support/component.ts --mount-module cypress/vue`,
	Args: cobra.ExactArgs(1),
	RunE: runMount,
}

func init() {
	rootCmd.AddCommand(mountCmd)

	mountCmd.Flags().String("mount-module", "", "module exporting mount (empty skips the import)")
}

func runMount(cmd *cobra.Command, args []string) error {
	app, err := appConfigFrom(cmd)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	module := stringFlag(cmd, "mount-module", app.Config.Mount.Module)

	injector := cypress.NewConfigInjector(source.NewEngineForPath(path))
	targets := []workspace.Target{{Path: path, Transform: mountTransform(injector, module)}}

	return runTargets(cmd, app, "Adding mount command...", targets)
}

// mountTransform registers mount and imports it from module when module is
// not empty.
func mountTransform(injector *cypress.ConfigInjector, module string) workspace.Transform {
	return func(ctx context.Context, content string) (cypress.Result, error) {
		res, err := injector.AddMountDefinition(ctx, content)
		if err != nil || res.Status != cypress.StatusInjected || module == "" {
			return res, err
		}

		imported, err := injector.AddImport(ctx, res.Content, cypress.ImportSpec{
			Names:  []string{"mount"},
			Module: module,
		})
		if err != nil {
			return cypress.Result{}, err
		}
		return cypress.Result{Content: imported.Content, Status: cypress.StatusInjected}, nil
	}
}
