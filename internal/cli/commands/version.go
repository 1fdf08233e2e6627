package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/landing"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display OfficeHoursQ version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", landing.ProductName, version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), landing.Tagline)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built with %s\n", runtime.Version())
		},
	}
}
