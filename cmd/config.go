package cmd

import (
	"github.com/getlawrence/cyconfig/internal/config"
	"github.com/getlawrence/cyconfig/internal/logger"
	"github.com/getlawrence/cyconfig/internal/workspace"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config *config.Config
	Logger logger.Logger
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(cfg *config.Config, l logger.Logger) *AppConfig {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &AppConfig{
		Config: cfg,
		Logger: l,
	}
}

// Workspace returns a file writer honoring the output settings.
func (a *AppConfig) Workspace(l logger.Logger) *workspace.Workspace {
	return workspace.New(l, workspace.Options{
		DryRun: a.Config.Output.DryRun,
		Backup: a.Config.Output.Backup,
	})
}

// Close flushes the logger.
func (a *AppConfig) Close() {
	if s, ok := a.Logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
