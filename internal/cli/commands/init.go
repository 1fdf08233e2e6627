package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/cli/config"
)

// ErrConfigExists is returned by init when the target already has a config file.
var ErrConfigExists = errors.New("configuration already exists")

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new OfficeHoursQ project",
		Long: `Initialize a new OfficeHoursQ project with a default configuration.

This creates:
  - officehoursq.yaml configuration file
  - .gitignore excluding the static export output

Use --example to also write per-environment overrides and a copy of the
bundled static assets that "serve --dev" reloads as you edit them.`,
		Example: `  # Initialize in current directory
  officehoursq init

  # Initialize with environments and editable assets
  officehoursq init --example

  # Initialize in a new directory
  officehoursq init my-site --example

  # Force overwrite existing config
  officehoursq init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(cmd.OutOrStdout(), dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Add environment overrides and editable static assets")

	return cmd
}

func runInit(w io.Writer, dir, template string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, configPath)
	}

	if err := copyTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles(template)
	if template == "example" {
		n, err := copyStatic(filepath.Join(dir, "static"))
		if err != nil {
			return err
		}
		files = append(files, fmt.Sprintf("static/ (%d assets)", n))
	}

	for _, f := range files {
		_, _ = fmt.Fprintf(w, "  %s %s\n", doctorPass.Render("✓"), f)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, doctorBold.Render("OfficeHoursQ project initialized!"))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Next steps:")
	_, _ = fmt.Fprintln(w, "  officehoursq doctor    Check configuration, theme and assets")
	_, _ = fmt.Fprintln(w, "  officehoursq serve     Serve the landing page")
	_, _ = fmt.Fprintln(w, "  officehoursq export    Write a static copy of the site")

	return nil
}
