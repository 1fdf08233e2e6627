package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/theme"
)

// ThemeOptions holds options for the theme command.
type ThemeOptions struct {
	Format   string
	Swatches bool
}

// NewThemeCommand creates the theme command.
func NewThemeCommand() *cobra.Command {
	opts := &ThemeOptions{}

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the theme tokens",
		Long: `Show the OfficeHoursQ theme: colors, font stacks and corner radii.

The table lists each color's contrast ratio against the page background.
Structured formats emit the tokens grouped by kind, ready for a front-end
build configuration.`,
		Example: `  # Show the token table with color swatches
  officehoursq theme --swatches

  # Export tokens as YAML
  officehoursq theme --format yaml > tokens.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTheme(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format (table|json|yaml|toml)")
	cmd.Flags().BoolVar(&opts.Swatches, "swatches", false, "Show a color swatch next to each color token")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTheme(cmd *cobra.Command, opts *ThemeOptions) error {
	def := theme.Default()
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "" || strings.EqualFold(opts.Format, "table") {
		return renderThemeTable(w, def, opts.Swatches)
	}

	format, err := theme.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	out, err := def.Export(format)
	if err != nil {
		return fmt.Errorf("failed to export theme: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func renderThemeTable(w io.Writer, def theme.Definition, swatches bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Token", "Kind", "Value", "Contrast"}
	if swatches {
		header = append(table.Row{""}, header...)
	}
	t.AppendHeader(header)

	for _, tok := range def.Tokens() {
		contrast := ""
		if tok.Kind == theme.KindColor && tok.Name != "background" {
			ratio, err := def.Contrast(tok.Name, "background")
			if err != nil {
				return err
			}
			contrast = fmt.Sprintf("%.2f:1 %s", ratio, contrastGrade(ratio))
		}

		row := table.Row{tok.Name, string(tok.Kind), tok.Value, contrast}
		if swatches {
			row = append(table.Row{swatch(tok)}, row...)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tokens)\n", def.Len())
	return nil
}

func contrastGrade(ratio float64) string {
	switch {
	case ratio >= theme.ContrastAAA:
		return "AAA"
	case ratio >= theme.ContrastAA:
		return "AA"
	case ratio >= theme.ContrastLargeAA:
		return "AA large"
	default:
		return "-"
	}
}

func swatch(tok theme.Token) string {
	if tok.Kind != theme.KindColor {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(tok.Value)).Render("    ")
}
