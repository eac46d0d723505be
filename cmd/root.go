package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/getlawrence/cyconfig/internal/config"
	"github.com/getlawrence/cyconfig/internal/logger"
	"github.com/spf13/cobra"
)

type contextKey string

// Context key for the application configuration
const configKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cyconfig",
	Short: "Inject Nx testing presets into Cypress config files",
	Long: `cyconfig rewrites Cypress configuration and support files in place.

It locates the cypress.config.{js,ts,mjs,cjs} of each project, finds the
object the file exports and adds an e2e or component section built from an
Nx preset. It can also declare and register the mount command in a
component commands file.

Files that are already configured are left untouched, so every command can
be run repeatedly.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app, err := appConfigFrom(cmd); err == nil {
			app.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the running command, which stops before its next write.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default .cyconfig.yaml in the current or home directory)")
	rootCmd.PersistentFlags().Bool("dry-run", false, "show the changes as a diff without writing files")
	rootCmd.PersistentFlags().Bool("no-backup", false, "do not keep a .backup copy of modified files")
	rootCmd.PersistentFlags().Int("concurrency", 0, "maximum number of projects processed at once")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// setupApp loads the configuration, applies global flag overrides and stores
// the result on the command context.
func setupApp(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.Output.DryRun, _ = flags.GetBool("dry-run")
	}
	if flags.Changed("no-backup") {
		noBackup, _ := flags.GetBool("no-backup")
		cfg.Output.Backup = !noBackup
	}
	if flags.Changed("concurrency") {
		cfg.Output.Concurrency, _ = flags.GetInt("concurrency")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}

	zl, err := logger.NewZapLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	if cfg.Log.File != "" {
		zl = zl.WithFile(logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
	}

	app := NewAppConfig(cfg, zl)
	cmd.SetContext(context.WithValue(cmd.Context(), configKey, app))
	return nil
}

var errNoAppConfig = errors.New("application config not initialized")

func appConfigFrom(cmd *cobra.Command) (*AppConfig, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errNoAppConfig
	}
	app, ok := ctx.Value(configKey).(*AppConfig)
	if !ok || app == nil {
		return nil, fmt.Errorf("%s: %w", cmd.CommandPath(), errNoAppConfig)
	}
	return app, nil
}
