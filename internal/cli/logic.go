package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/duim/internal/diskusage"
	"github.com/idelchi/duim/internal/report"
)

// newLogger returns a stderr logger at debug level if enabled, warn otherwise.
func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "duim",
	})
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func (c CLI) logic(ctx context.Context, options report.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := newLogger(c.stderr, options.Debug)
	logger.Debug("options", "target", options.Target, "length", options.Length,
		"human", options.HumanReadable, "provider", options.Provider)

	// Progress only makes sense for the in-process walk.
	enableProgress := options.Provider == diskusage.ProviderWalk &&
		strings.ToLower(options.Output) != "json" &&
		!options.Debug &&
		isTerminal(c.stderr)

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(c.stderr, "\033[?25l")
		defer fmt.Fprint(c.stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(c.stderr, "\r\033[2K%s\r", msg)
		}
	}

	provider, err := diskusage.NewProvider(options.Provider, diskusage.ProviderOptions{
		Command: diskusage.Command{Binary: c.duBinary, Stderr: c.stderr, Logger: logger},
		Walker:  diskusage.Walker{Logger: logger, ProgressHook: progressHook},
	})
	if err != nil {
		return err
	}

	rep, err := report.Build(ctx, provider, options, logger)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(c.stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch strings.ToLower(options.Output) {
	case "json":
		return PrintJSON(rep, c.stdout)
	case "table":
		return PrintTable(rep, c.stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
