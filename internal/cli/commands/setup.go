package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/cli/config"
	"github.com/officehoursq/officehoursq/internal/landing"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewCommandContext collects the loaded config and the logger from the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    config.FromContext(cmd.Context()),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// Variant resolves the landing variant: an explicit flag value wins over config.
func (c *CommandContext) Variant(override string) (landing.Variant, error) {
	if override != "" {
		return landing.ParseVariant(override)
	}
	return landing.ParseVariant(c.Cfg.Landing.Variant)
}
