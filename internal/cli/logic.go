package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/foldersize/internal/foldersize"
	"github.com/idelchi/foldersize/internal/progress"
)

// isTerminal reports whether the stream is attached to a terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger creates the logger used as error channel for the walk.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)

	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func logic(cmd *cobra.Command, options Options) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	terminal := isTerminal(stderr)

	errOut := newConsole(stderr)

	var logOut io.Writer = errOut
	if terminal {
		logOut = errOut.lineWriter()
	}

	log := newLogger(logOut, options.Debug)

	prompted := options.Path == ""
	if prompted {
		path, err := prompt(in, out)
		if err != nil {
			return err
		}

		options.Path = path
	}

	if options.WSL {
		options.Path = WindowsToWSL(options.Path)
	}

	if err := validate(options.Path); err != nil {
		return err
	}

	enableProgress := options.Output != "json" && (options.Progress == "always" ||
		(options.Progress == "auto" && terminal))

	entries, err := scan(cmd.Context(), options.Path, log, errOut, terminal, enableProgress)
	if err != nil {
		return err
	}

	foldersize.SortBySize(entries)

	if options.Top > 0 && len(entries) > options.Top {
		entries = entries[:options.Top]
	}

	report := NewReport(options.Path, entries)

	switch options.Output {
	case "json":
		err = PrintJSON(report, out)
	case "table":
		err = PrintTable(report, out)
	default:
		err = PrintPlain(report, out, options.Human)
	}

	if err != nil {
		return err
	}

	shouldPause := options.Pause || (!options.NoPause && prompted && isTerminal(cmd.InOrStdin()))
	if shouldPause {
		pause(in, out)
	}

	return nil
}

// scan runs the computation, with the progress reporter spinning on its own
// goroutine if enabled. The reporter has fully stopped when scan returns.
// errOut is shared by log and the reporter and must be safe for concurrent use.
func scan(
	ctx context.Context,
	path string,
	log *logrus.Logger,
	errOut io.Writer,
	terminal, enableProgress bool,
) ([]foldersize.Entry, error) {
	opt := foldersize.Options{Logger: log}

	if !enableProgress {
		return foldersize.Compute(ctx, path, opt)
	}

	if terminal {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(errOut, "\033[?25l")
		defer fmt.Fprint(errOut, "\033[?25h")
	}

	reporterCtx, done := context.WithCancel(ctx)
	defer done()

	var group errgroup.Group

	reporter := progress.New(errOut)

	group.Go(func() error {
		return reporter.Run(reporterCtx)
	})

	entries, err := foldersize.Compute(ctx, path, opt)

	done()

	if waitErr := group.Wait(); waitErr != nil {
		log.WithError(waitErr).Warn("progress reporter")
	}

	return entries, err
}
