package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("env", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-format", "", "")
	fs.Int("port", 0, "")
	fs.Bool("dev", false, "")
	fs.Bool("no-browser", false, "")
	fs.StringSlice("cors-origin", nil, "")
	fs.String("variant", "", "")
	fs.String("format", "html", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultEnv, cfg.Environment)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.True(t, cfg.Server.AutoOpen)
	assert.False(t, cfg.Server.Dev)
	assert.Equal(t, DefaultCORSOrigins(), cfg.Server.CORSOrigins)
	assert.Equal(t, DefaultVariant, cfg.Landing.Variant)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, Default().Server, cfg.Server)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "officehoursq.yml", `
log_format: json
server:
  port: 9000
  static_dir: assets
  cors_origins:
    - https://queue.example.edu
landing:
  variant: card
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://queue.example.edu"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "card", cfg.Landing.Variant)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "assets"), cfg.Server.StaticDir)
	assert.Equal(t, "officehoursq.yml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	other := t.TempDir()
	path := writeConfig(t, other, "custom.yaml", "server:\n  port: 7000\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	_, err := LoadConfig("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestLoadConfig_EnvVars(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "officehoursq.yaml", "server:\n  port: 9000\n")

	t.Setenv("OHQ_SERVER__PORT", "9100")
	t.Setenv("OHQ_SERVER__CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("OHQ_LANDING__VARIANT", "card")
	t.Setenv("OHQ_SESSION_SECRET", "from-env")
	t.Setenv("OHQ_LOG_FORMAT", "json")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "card", cfg.Landing.Variant)
	assert.Equal(t, "from-env", cfg.Server.SessionSecret)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "officehoursq.yaml", "server:\n  port: 9000\nlanding:\n  variant: card\n")
	t.Setenv("OHQ_SERVER__PORT", "9100")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--port", "9200", "--no-browser", "--variant", "hero", "--format", "markdown"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.False(t, cfg.Server.AutoOpen)
	assert.Equal(t, "hero", cfg.Landing.Variant)
}

func TestLoadConfig_UnsetFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "officehoursq.yaml", "server:\n  port: 9000\n")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.AutoOpen)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "officehoursq.yaml", `
environment: prod
environments:
  prod:
    port: 80
    dev: false
    variant: card
    cors_origins:
      - https://officehoursq.example.edu
  dev:
    dev: true
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Server.Port)
	assert.Equal(t, "card", cfg.Landing.Variant)
	assert.Equal(t, []string{"https://officehoursq.example.edu"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Server.Dev)

	ResetConfig()
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--env", "dev", "--port", "3001"}))
	cfg, err = LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Environment)
	assert.True(t, cfg.Server.Dev)
	assert.Equal(t, 3001, cfg.Server.Port)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			LogFormat: "text",
			Server:    ServerConfig{Port: 8080, SessionSecret: "s", CORSOrigins: DefaultCORSOrigins()},
			Landing:   LandingConfig{Variant: "hero"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "wildcard origin", mutate: func(c *Config) { c.Server.CORSOrigins = []string{"*"} }},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "bad variant", mutate: func(c *Config) { c.Landing.Variant = "banner" }, wantErr: "landing.variant"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
		{name: "empty secret", mutate: func(c *Config) { c.Server.SessionSecret = "" }, wantErr: "session_secret"},
		{name: "bad origin", mutate: func(c *Config) { c.Server.CORSOrigins = []string{"localhost:3000"} }, wantErr: "cors_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogFormat: "json"}, &buf)
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = NewLogger(&Config{Verbose: true}, &buf)
	logger.Debug("debug line")
	assert.Contains(t, buf.String(), "msg=\"debug line\"")
}

func TestGetLogger(t *testing.T) {
	logger := NewLogger(&Config{}, &bytes.Buffer{})
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.NotNil(t, GetLogger(context.Background()))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil context is handled

	custom := &Config{Environment: "prod"}
	ctx := context.WithValue(context.Background(), ConfigKey(), custom)
	assert.Same(t, custom, FromContext(ctx))
}

func TestFlagKeyAndEnvVar(t *testing.T) {
	key, ok := FlagKey("cors-origin")
	require.True(t, ok)
	assert.Equal(t, "server.cors_origins", key)
	assert.Equal(t, "OHQ_SERVER__CORS_ORIGINS", EnvVar(key))

	key, ok = FlagKey("no-browser")
	require.True(t, ok)
	assert.Equal(t, "server.auto_open", key)

	_, ok = FlagKey("format")
	assert.False(t, ok)

	assert.Equal(t, "OHQ_PORT", EnvVar("server.port"))
	assert.Equal(t, "OHQ_SESSION_SECRET", EnvVar("server.session_secret"))
	assert.Equal(t, "OHQ_LANDING__VARIANT", EnvVar("landing.variant"))
}
