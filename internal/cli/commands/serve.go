package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/officehoursq/officehoursq/internal/theme"
	"github.com/officehoursq/officehoursq/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Host        string
	Port        int
	Dev         bool
	NoBrowser   bool
	StaticDir   string
	CORSOrigins []string
	Variant     string
}

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the OfficeHoursQ landing server",
		Long: `Start a web server for the OfficeHoursQ landing page.

The server provides:
- The landing page at / (configured variant) and /landing/{variant}
- The generated theme stylesheet at /theme.css and tokens at /theme.json
- Health endpoints at /health and /api/v1/health
- Live reload of static assets with --dev`,
		Example: `  # Start on the default port
  officehoursq serve

  # Start on a custom port with the card variant
  officehoursq serve --port 3000 --variant card

  # Develop against the on-disk assets without opening a browser
  officehoursq serve --dev --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, version)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "", "Interface to listen on (default: all)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8080)")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Dev mode: live reload and no caching")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().StringVar(&opts.StaticDir, "static-dir", "", "Static asset directory to watch in dev mode")
	cmd.Flags().StringSliceVar(&opts.CORSOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	cmd.Flags().StringVar(&opts.Variant, "variant", "", "Landing variant served at / (hero|card)")

	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions, version string) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	variant, err := cc.Variant(opts.Variant)
	if err != nil {
		return err
	}

	// CLI flags override config file
	port := cfg.Server.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	host := cfg.Server.Host
	if opts.Host != "" {
		host = opts.Host
	}
	dev := cfg.Server.Dev || opts.Dev
	autoOpen := cfg.Server.AutoOpen && !opts.NoBrowser
	staticDir := cfg.Server.StaticDir
	if opts.StaticDir != "" {
		staticDir = opts.StaticDir
	}
	origins := cfg.Server.CORSOrigins
	if len(opts.CORSOrigins) > 0 {
		origins = opts.CORSOrigins
	}

	if cfg.UsesDefaultSecret() && !dev {
		cc.Logger.Warn("using the built-in session secret; set OHQ_SESSION_SECRET in production")
	}

	def := theme.Default()
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	server := ui.NewServer(ui.Config{
		Theme:          def,
		DefaultVariant: variant,
		Host:           host,
		Port:           port,
		Dev:            dev,
		StaticDir:      staticDir,
		SessionSecret:  cfg.Server.SessionSecret,
		CORSOrigins:    origins,
		Version:        version,
		Logger:         cc.Logger,
	})

	// Open browser if configured
	url := browserURL(server.Addr())
	if autoOpen {
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting OfficeHoursQ on %s\n", url)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// browserURL turns a listen address into a URL a local browser can open.
// Wildcard hosts are reached through localhost.
func browserURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func completeVariants(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return variantNames(), cobra.ShellCompDirectiveNoFileComp
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	ctx := context.Background()
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
