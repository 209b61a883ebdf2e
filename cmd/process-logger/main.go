package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/led-robster/process-logger/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(app.Run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "process-logger: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the CLI around runApp so tests can observe the parsed
// options without starting the TUI.
func newRootCmd(runApp func(context.Context, app.Options) error) *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "process-logger",
		Short: "Watch process creation in a searchable terminal log",
		Long: `process-logger shows every newly created process as a line in a
scrolling log. Search to highlight matching lines with rotating shades of a
base color, copy the whole log, and keep an eye on the live counters.

Examples:
  process-logger
  process-logger --poll 250ms
  process-logger --source dir --dir /tmp/spool
  process-logger --source lines --lines /run/proc-events.fifo`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.config/process-logger/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/process-logger/prefs.toml)")
	flags.StringVar(&opts.Overrides.Source, "source", "", "event source: process, dir or lines")
	flags.DurationVar(&opts.Overrides.Poll, "poll", 0, "process table poll interval (e.g. 500ms)")
	flags.StringVar(&opts.Overrides.Dir, "dir", "", "directory to watch with the dir source")
	flags.StringVar(&opts.Overrides.Lines, "lines", "", "file or FIFO to read with the lines source")
	flags.StringVar(&opts.Overrides.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	return cmd
}
