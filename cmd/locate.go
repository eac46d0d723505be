package cmd

import (
	"github.com/getlawrence/cyconfig/internal/ui"
	"github.com/getlawrence/cyconfig/internal/workspace"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate [project-root]...",
	Short: "Print the cypress config file of each project root",
	Long: `Print the path of the cypress.config.{js,ts,mjs,cjs} file of each project
root. When several exist, js wins over ts, then mjs, then cjs.`,
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	targets, err := workspace.LocateTargets(args, func(string) workspace.Transform { return nil })
	for _, t := range targets {
		ui.Log(t.Path)
	}
	return err
}
