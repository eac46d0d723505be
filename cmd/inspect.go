package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/getlawrence/cyconfig/internal/cypress"
	"github.com/getlawrence/cyconfig/internal/source"
	"github.com/getlawrence/cyconfig/internal/ui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <config-file>",
	Short: "Show the object a cypress config file exports",
	Long: `Resolve the object literal a cypress config file exports, through
export default, module.exports, defineConfig(...) and variable references,
and list its top-level properties.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "print the resolved object as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	engine := source.NewEngineForPath(path)
	injector := cypress.NewConfigInjector(engine)
	obj, err := injector.ResolveConfigObject(cmd.Context(), string(content))
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config object: %w", err)
		}
		ui.Log(string(data))
		return nil
	}

	if obj == nil {
		ui.Log(ui.NoticeStyle.Render("No exported config object found in " + path))
		return nil
	}

	ui.Logf("%s %s (%s, bytes %d-%d)\n", ui.SuccessStyle.Render("✓"), path, engine.Language(), obj.Start, obj.End)
	ui.Log(ui.RenderProperties(obj))
	return nil
}
