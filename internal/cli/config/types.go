// Package config provides configuration management for the OfficeHoursQ CLI.
//
// Values are layered with koanf: built-in defaults, then an optional
// officehoursq.yaml (or .yml), then OHQ_* environment variables, then any
// flags set explicitly on the command line.
package config

// ServerConfig holds configuration for the landing server.
type ServerConfig struct {
	Host          string   `koanf:"host"`
	Port          int      `koanf:"port"`
	Dev           bool     `koanf:"dev"`
	AutoOpen      bool     `koanf:"auto_open"`
	CORSOrigins   []string `koanf:"cors_origins"`
	StaticDir     string   `koanf:"static_dir"`
	SessionSecret string   `koanf:"session_secret"`
}

// LandingConfig holds configuration for the landing view.
type LandingConfig struct {
	Variant string `koanf:"variant"`
}

// Config holds all CLI configuration options.
type Config struct {
	Environment  string               `koanf:"environment"`
	Verbose      bool                 `koanf:"verbose"`
	LogFormat    string               `koanf:"log_format"`
	Server       ServerConfig         `koanf:"server"`
	Landing      LandingConfig        `koanf:"landing"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory when none was found. Not loaded from any source.
	ProjectRoot string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
// Zero values leave the base configuration untouched.
type EnvConfig struct {
	Port        int      `koanf:"port"`
	Dev         *bool    `koanf:"dev"`
	CORSOrigins []string `koanf:"cors_origins"`
	Variant     string   `koanf:"variant"`
}

// Default configuration values.
const (
	DefaultEnv           = "dev"
	DefaultLogFormat     = "text"
	DefaultPort          = 8080
	DefaultVariant       = "hero"
	DefaultSessionSecret = "officehoursq-dev-secret-change-in-production" //nolint:gosec
	EnvPrefix            = "OHQ_"
)

// DefaultCORSOrigins returns the origins allowed when none are configured.
func DefaultCORSOrigins() []string {
	return []string{"http://localhost:3000"}
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Environment: DefaultEnv,
		LogFormat:   DefaultLogFormat,
		Server: ServerConfig{
			Port:          DefaultPort,
			AutoOpen:      true,
			CORSOrigins:   DefaultCORSOrigins(),
			SessionSecret: DefaultSessionSecret,
		},
		Landing: LandingConfig{Variant: DefaultVariant},
	}
}

// ConfigFileNames lists the file names searched for, in order.
var ConfigFileNames = []string{"officehoursq.yaml", "officehoursq.yml"}
