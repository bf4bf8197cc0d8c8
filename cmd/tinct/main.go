package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/tinct/internal/app"
	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/prefs"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tinct: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "tinct",
		Short: "Colorize structured log lines in the terminal",
		Long: `tinct renders log entries as single ANSI-colored lines:

  [14:05:09 INF] Order "8d3f2c9e" paid 129.90

Values substituted into message templates are colored by kind (strings,
numbers, booleans, timestamps, identifiers) using the selected theme.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", fmt.Sprintf("config file (default %s)", config.DefaultPath()))
	flags.StringVar(&opts.PrefsPath, "prefs", "", fmt.Sprintf("preferences file (default %s)", prefs.DefaultPath()))
	flags.StringVarP(&opts.Theme, "theme", "t", "", "theme for this run, overriding config and preferences")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug diagnostics to stderr")

	root.AddCommand(
		newRenderCmd(&opts),
		newDemoCmd(&opts),
		newThemesCmd(&opts),
		newPickCmd(&opts),
	)
	return root
}

// withApp builds the application for one command invocation and closes it
// afterwards.
func withApp(opts *app.Options, fn func(*app.App) error) error {
	a, err := app.New(*opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

func newRenderCmd(opts *app.Options) *cobra.Command {
	var (
		render   app.RenderOptions
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render JSON-lines logs from files, globs or stdin",
		Long: `Render reads JSON-lines logs, such as those written by slog's JSON handler,
and prints each entry as a colored line. Lines that are not JSON are printed
as plain information entries. With no paths, or "-", stdin is read.

Examples:
  tinct render app.log
  tinct render "/var/log/**/*.json" --tail 50
  tinct render app.log -f
  myservice 2>&1 | tinct render`,
		RunE: func(cmd *cobra.Command, args []string) error {
			render.Interval = interval
			return withApp(opts, func(a *app.App) error {
				return a.Render(cmd.Context(), args, render)
			})
		},
	}
	cmd.Flags().IntVarP(&render.Tail, "tail", "n", 0, "replay only the last N lines of each input")
	cmd.Flags().BoolVarP(&render.Follow, "follow", "f", false, "keep printing lines appended to files")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval when following (default 500ms)")
	return cmd
}

func newDemoCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print sample entries in the active theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				return a.Demo()
			})
		},
	}
}

func newThemesCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "Preview every built-in theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				return a.Themes()
			})
		},
	}
}

func newPickCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a theme interactively and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				return a.Pick(cmd.Context())
			})
		},
	}
}
