package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/getlawrence/cyconfig/internal/config"
	"github.com/getlawrence/cyconfig/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cyconfig configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	explicit, _ := cmd.Flags().GetString("config")
	path := config.GetConfigPath(explicit)

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return err
	}

	ui.Logf("%s Wrote %s\n", ui.SuccessStyle.Render("✓"), path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	app, err := appConfigFrom(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(app.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	ui.Logf("%s", data)
	return nil
}
