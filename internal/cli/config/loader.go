package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Context keys for the loaded config and the logger.
type (
	configKey struct{}
	loggerKey struct{}
)

// configFileUsed is the file the last LoadConfig read, if any.
var configFileUsed string

// flagKeys maps CLI flag names to config keys. Flags not listed here are
// command options and never reach the config.
var flagKeys = map[string]string{
	"env":         "environment",
	"verbose":     "verbose",
	"log-format":  "log_format",
	"host":        "server.host",
	"port":        "server.port",
	"dev":         "server.dev",
	"static-dir":  "server.static_dir",
	"cors-origin": "server.cors_origins",
	"variant":     "landing.variant",
}

// envAliases maps short environment names (after the OHQ_ prefix) to config keys.
var envAliases = map[string]string{
	"port":           "server.port",
	"session_secret": "server.session_secret",
}

// listKeys are config keys whose env values are comma separated lists.
var listKeys = map[string]bool{
	"server.cors_origins": true,
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"environment":           DefaultEnv,
		"verbose":               false,
		"log_format":            DefaultLogFormat,
		"server.host":           "",
		"server.port":           DefaultPort,
		"server.dev":            false,
		"server.auto_open":      true,
		"server.cors_origins":   DefaultCORSOrigins(),
		"server.static_dir":     "",
		"server.session_secret": DefaultSessionSecret,
		"landing.variant":       DefaultVariant,
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > officehoursq.yaml > officehoursq.yml in dir.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// envKey turns OHQ_SERVER__PORT into server.port and OHQ_LOG_FORMAT into log_format.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if alias, ok := envAliases[key]; ok {
		return alias
	}
	return strings.ReplaceAll(key, "__", ".")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResetConfig clears the loaded config state. Used for testing.
func ResetConfig() {
	configFileUsed = ""
}

// LoadConfig loads configuration from defaults, file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		cwd = "."
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile, cwd)
	projectRoot := cwd
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Load environment variables (OHQ_ prefix)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		name := envKey(key)
		if listKeys[name] {
			return name, splitList(value)
		}
		return name, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	flagged := map[string]bool{}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			if f.Name == "no-browser" {
				noBrowser, _ := flags.GetBool(f.Name)
				flagged["server.auto_open"] = true
				return "server.auto_open", !noBrowser
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			flagged[key] = true
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	// 6. Apply environment-specific overrides, except where a flag was given
	if envCfg, ok := cfg.Environments[cfg.Environment]; ok {
		applyEnvOverrides(&cfg, envCfg, flagged)
	}

	cfg.Server.StaticDir = resolvePathRelativeTo(cfg.Server.StaticDir, projectRoot)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config, o EnvConfig, flagged map[string]bool) {
	if o.Port != 0 && !flagged["server.port"] {
		cfg.Server.Port = o.Port
	}
	if o.Dev != nil && !flagged["server.dev"] {
		cfg.Server.Dev = *o.Dev
	}
	if len(o.CORSOrigins) > 0 && !flagged["server.cors_origins"] {
		cfg.Server.CORSOrigins = o.CORSOrigins
	}
	if o.Variant != "" && !flagged["landing.variant"] {
		cfg.Landing.Variant = o.Variant
	}
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// FlagKey returns the config key a CLI flag writes to.
func FlagKey(flag string) (string, bool) {
	if flag == "no-browser" {
		return "server.auto_open", true
	}
	key, ok := flagKeys[flag]
	return key, ok
}

// EnvVar returns the environment variable that sets key, preferring the
// short alias when there is one.
func EnvVar(key string) string {
	for alias, k := range envAliases {
		if k == key {
			return EnvPrefix + strings.ToUpper(alias)
		}
	}
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// ConfigKey returns the context key used for storing the loaded config.
func ConfigKey() interface{} {
	return configKey{}
}

// FromContext retrieves the config stored by the root command, or the
// defaults when the command runs on its own.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.New(slog.DiscardHandler)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
