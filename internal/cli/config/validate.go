package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/officehoursq/officehoursq/internal/landing"
)

// Validate checks if the configuration is valid. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port))
	}
	if _, err := landing.ParseVariant(c.Landing.Variant); err != nil {
		errs = append(errs, fmt.Errorf("landing.variant: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.Server.SessionSecret == "" {
		errs = append(errs, errors.New("server.session_secret must not be empty"))
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("server.cors_origins: %q is not an http(s) origin", origin))
		}
	}

	return errors.Join(errs...)
}

// UsesDefaultSecret reports whether the session secret is the built-in development one.
func (c *Config) UsesDefaultSecret() bool {
	return c.Server.SessionSecret == DefaultSessionSecret
}

// NewLogger builds the CLI logger. Verbose lowers the level to debug.
func NewLogger(c *Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
