package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/officehoursq/officehoursq/internal/cli/config"
)

// generateSchemaDocs generates the configuration reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	// Create output directory
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "general", "server", "landing", "environment"
}

// getConfigSchema returns the configuration schema definition.
// It mirrors internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "environment", Type: "string", Default: config.DefaultEnv, Description: "Selects the environments.<name> overrides", Category: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug-level logging", Category: "general"},
		{Name: "log_format", Type: "string", Default: config.DefaultLogFormat, Description: "Log format: text or json", Category: "general"},

		{Name: "server.host", Type: "string", Description: "Interface to listen on; empty listens on all", Category: "server"},
		{Name: "server.port", Type: "int", Default: strconv.Itoa(config.DefaultPort), Description: "Port to listen on", Category: "server"},
		{Name: "server.dev", Type: "bool", Default: "false", Description: "Live reload of static assets and no caching", Category: "server"},
		{Name: "server.auto_open", Type: "bool", Default: "true", Description: "Open a browser when serve starts", Category: "server"},
		{Name: "server.cors_origins", Type: "[]string", Default: strings.Join(config.DefaultCORSOrigins(), ", "), Description: "Origins allowed to call the API with credentials", Category: "server"},
		{Name: "server.static_dir", Type: "string", Description: "Static asset directory watched in dev mode, relative to the config file", Category: "server"},
		{Name: "server.session_secret", Type: "string", Default: "(development secret)", Description: "Secret used to sign the session cookie", Category: "server"},

		{Name: "landing.variant", Type: "string", Default: config.DefaultVariant, Description: "Variant served at /: hero or card", Category: "landing"},

		{Name: "port", Type: "int", Description: "Overrides server.port", Category: "environment"},
		{Name: "dev", Type: "bool", Description: "Overrides server.dev", Category: "environment"},
		{Name: "cors_origins", Type: "[]string", Description: "Overrides server.cors_origins", Category: "environment"},
		{Name: "variant", Type: "string", Description: "Overrides landing.variant", Category: "environment"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	// Frontmatter
	w.Frontmatter("Configuration", "OfficeHoursQ configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("OfficeHoursQ reads %s (or %s) from the working directory, or the file passed with %s. "+
		"Values are layered: built-in defaults, then the file, then %s environment variables, then command-line flags.",
		InlineCode(config.ConfigFileNames[0]), InlineCode(config.ConfigFileNames[1]), InlineCode("--config"), InlineCode(config.EnvPrefix+"*")))

	fields := getConfigSchema()
	sections := []struct {
		category string
		title    string
		intro    string
	}{
		{"general", "General", "Top-level settings:"},
		{"server", "Server", "Settings for " + InlineCode("officehoursq serve") + ":"},
		{"landing", "Landing Page", "Settings for the rendered page:"},
		{"environment", "Environment Overrides", "Entries under " + InlineCode("environments.<name>") + " apply when " + InlineCode("environment") + " selects them. Flags still win."},
	}

	for _, sec := range sections {
		w.Header(2, sec.title)
		w.Paragraph(sec.intro)

		headers := []string{"Field", "Type", "Default", "Description"}
		var rows [][]string
		for _, f := range fields {
			if f.Category != sec.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
		}
		w.Table(headers, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `log_format: json
server:
  port: 8080
  cors_origins:
    - https://officehoursq.example.edu
landing:
  variant: hero
environment: prod
environments:
  prod:
    port: 80`)

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0o600)
}
