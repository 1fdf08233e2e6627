package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/landing"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Variant string
	Format  string
	Output  string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the landing page to stdout or a file",
		Long: `Render the OfficeHoursQ landing page as a complete HTML document.

The page references /theme.css and /static/ assets, so the HTML is meant
to be served by "officehoursq serve" or post-processed. Use --format markdown
for a text rendering of the page content.`,
		Example: `  # Render the configured variant
  officehoursq render

  # Render the card variant to a file
  officehoursq render --variant card -o card.html

  # Render as Markdown
  officehoursq render --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "Landing variant (hero|card)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "html", "Output format (html|markdown)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")

	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"html", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	cc := NewCommandContext(cmd)

	variant, err := cc.Variant(opts.Variant)
	if err != nil {
		return err
	}

	page, err := landing.Render(cmd.Context(), variant, landing.Options{})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", variant, err)
	}

	switch strings.ToLower(opts.Format) {
	case "html", "":
	case "md", "markdown":
		page, err = htmltomarkdown.ConvertString(page)
		if err != nil {
			return fmt.Errorf("failed to convert to markdown: %w", err)
		}
		page += "\n"
	default:
		return fmt.Errorf("unknown format %q (available: html, markdown)", opts.Format)
	}

	cc.Logger.Debug("rendered landing page", "variant", variant, "format", opts.Format, "bytes", len(page))

	if opts.Output == "" {
		return writeString(cmd.OutOrStdout(), page)
	}
	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.Output, []byte(page), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", opts.Output)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func variantNames() []string {
	variants := landing.Variants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = string(v)
	}
	return names
}
