package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/traceviz/internal/ui"
	"github.com/leapstack-labs/traceviz/pkg/traceviz"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the TraceViz web UI",
		Long: `Start a local web server rendering the trace graph.

The UI provides:
- Component/step graph with feature-link edges
- Live caption filtering with fade levels
- Hover edge highlighting
- State snapshot inspection
- Automatic rebuild when the trace file changes (--watch)`,
		Example: `  # Serve the configured trace
  traceviz serve --trace run.json

  # Custom port, no browser
  traceviz serve --port 3000 --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 7680)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the trace file for changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	port := cfg.UI.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.UI.Open
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.UI.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	secret := cfg.UI.Secret
	if secret == "" {
		secret = generateSessionSecret()
	}

	inst, err := cc.NewInstance(ui.ContainerID)
	if err != nil {
		return err
	}

	server := ui.NewServer(ui.Config{
		Instance:  inst,
		Reload:    func() (*traceviz.Instance, error) { return cc.NewInstance(ui.ContainerID) },
		TracePath: cfg.Trace,
		Port:      port,
		Watch:     watch,
		Secret:    secret,
		Logger:    cc.Logger,
	})

	if autoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	cc.Renderer.Printf("Serving %s on http://localhost:%d\n", cfg.Trace, port)
	cc.Renderer.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// generateSessionSecret creates a random per-run cookie secret.
func generateSessionSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// openBrowser opens the URL in the platform browser. Failures are ignored.
func openBrowser(url string) {
	switch runtime.GOOS {
	case "darwin":
		_ = exec.Command("open", url).Start()
	case "windows":
		_ = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		_ = exec.Command("xdg-open", url).Start()
	}
}
