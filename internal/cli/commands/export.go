package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
	"github.com/officehoursq/officehoursq/internal/ui/resources"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Out    string
	Minify bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the landing page as a static site",
		Long: `Write a self-contained static copy of the landing page.

The output directory receives:
  index.html    the configured variant
  hero.html     the hero variant
  card.html     the card variant
  theme.css     the generated theme stylesheet
  theme.json    the theme tokens
  static/       favicon and layout stylesheet

Pages reference their assets with relative paths, so the directory can be
opened from disk or served by any static file server.`,
		Example: `  # Export to ./site
  officehoursq export --out site

  # Export with a minified stylesheet
  officehoursq export --out dist --minify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "site", "Output directory")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "Minify theme.css")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cc := NewCommandContext(cmd)

	variant, err := cc.Variant("")
	if err != nil {
		return err
	}

	def := theme.Default()
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	if err := os.MkdirAll(opts.Out, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pageOpts := landing.Options{
		Theme:          def,
		StylesheetHref: "theme.css",
		AssetPrefix:    "static/",
	}

	pages := map[string]landing.Variant{"index.html": variant}
	for _, v := range landing.Variants() {
		pages[string(v)+".html"] = v
	}
	for name, v := range pages {
		html, err := landing.Render(cmd.Context(), v, pageOpts)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
		if err := writeExportFile(opts.Out, name, []byte(html)); err != nil {
			return err
		}
	}

	css := def.CSS()
	if opts.Minify {
		css, err = minifyCSS(css)
		if err != nil {
			return err
		}
	}
	if err := writeExportFile(opts.Out, "theme.css", []byte(css)); err != nil {
		return err
	}

	tokens, err := def.Export(theme.FormatJSON)
	if err != nil {
		return err
	}
	if err := writeExportFile(opts.Out, "theme.json", tokens); err != nil {
		return err
	}

	assets, err := copyStatic(filepath.Join(opts.Out, "static"))
	if err != nil {
		return err
	}

	cc.Logger.Debug("exported landing site", "dir", opts.Out, "pages", len(pages), "assets", assets, "minify", opts.Minify)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pages and %d assets to %s\n", len(pages), assets, opts.Out)
	return nil
}

// minifyCSS runs the stylesheet through esbuild's CSS minifier.
func minifyCSS(css string) (string, error) {
	result := api.Transform(css, api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		LogLevel:         api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var errMsg strings.Builder
		for _, err := range result.Errors {
			line := 0
			if err.Location != nil {
				line = err.Location.Line
			}
			fmt.Fprintf(&errMsg, "line %d: %s\n", line, err.Text)
		}
		return "", fmt.Errorf("esbuild errors:\n%s", errMsg.String())
	}
	return string(result.Code), nil
}

// copyStatic copies the bundled static assets into dir and returns how many were written.
func copyStatic(dir string) (int, error) {
	count := 0
	err := fs.WalkDir(resources.FS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(resources.FS(), path)
		if err != nil {
			return err
		}
		if err := writeExportFile(dir, filepath.FromSlash(path), data); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return count, nil
}

func writeExportFile(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // static site output is world-readable
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
