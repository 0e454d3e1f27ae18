// claude-dashboard is a hecaton plugin that renders a live Claude usage
// panel. The host launches it as a subprocess, speaks sentinel-framed
// JSON-RPC envelopes over the same streams that carry keystrokes and
// terminal paint, and closes the pane when the plugin requests it.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/api"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/app"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/auth"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/config"
	"github.com/cr545l/hecaton-plugin-claude-dashboard/internal/quota"
)

var version = "dev"

var flagInterval time.Duration

var rootCmd = &cobra.Command{
	Use:     "claude-dashboard",
	Short:   "Live Claude usage panel for hecaton",
	Version: version,
	Long: `claude-dashboard renders a boxed terminal panel with Claude
rate-limit usage, refreshed periodically and on demand.

Keys:
  r     refresh now
  1/2/3 compact / normal / detailed view
  q     quit`,
	RunE: run,
}

func init() {
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 0,
		"refresh interval (overrides the config file)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plugin := config.LoadPlugin()
	interval := plugin.RefreshInterval
	if flagInterval > 0 {
		interval = flagInterval
	}

	refresher := quota.NewRefresher(auth.NewSource(), api.NewClient())

	a := app.New(app.Options{
		Input:     os.Stdin,
		TermOut:   os.Stdout,
		CtrlOut:   os.Stdout,
		Refresher: refresher,
		Display:   config.LoadConfig(),
		Effort:    config.LoadEffortLevel(),
		Interval:  interval,
	})

	// Standalone mode: no host to send resize envelopes or pre-rawed pty,
	// so take the size from the terminal itself and switch stdin to raw
	// mode for single-keystroke dispatch.
	if isatty.IsTerminal(os.Stdin.Fd()) {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			a.SetInitialSize(cols, rows)
		}
		if state, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
			defer term.Restore(int(os.Stdin.Fd()), state)
		}
	}

	return a.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
