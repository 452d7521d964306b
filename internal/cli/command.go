package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options configures a single foldersize run.
type Options struct {
	// Path is the directory to analyze. Empty means prompt for it.
	Path string
	// Output is the output format (plain, table or json).
	Output string
	// Human prints humanized sizes in plain output.
	Human bool
	// Top is the number of entries to print (0=all).
	Top int
	// Progress controls the spinner (auto, always or never).
	Progress string
	// WSL translates Windows drive paths to WSL mount paths.
	WSL bool
	// Pause forces waiting for Enter before exiting.
	Pause bool
	// NoPause disables waiting for Enter before exiting.
	NoPause bool
	// Debug indicates whether debug output is enabled.
	Debug bool
}

//nolint:gochecknoglobals // Config constants
var (
	allowedOutputs  = []string{"plain", "table", "json"}
	allowedProgress = []string{"auto", "always", "never"}
)

func bindFlags(flags *pflag.FlagSet, options *Options) {
	flags.StringVarP(&options.Output, "output", "o", "plain", "Output format: plain, table or json")
	flags.BoolVarP(&options.Human, "human", "H", false, "Print human readable sizes instead of whole MB")
	flags.IntVarP(&options.Top, "top", "t", 0, "Number of entries to display (0=all)")
	flags.StringVar(&options.Progress, "progress", "auto", "Show progress: auto, always or never")
	flags.BoolVar(&options.WSL, "wsl", false, "Translate Windows paths (C:\\dir) to WSL paths (/mnt/c/dir)")
	flags.BoolVar(&options.Pause, "pause", false, "Wait for Enter before exiting")
	flags.BoolVar(&options.NoPause, "no-pause", false, "Never wait for Enter before exiting")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")

	flags.SortFlags = false
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options Options

	cmd := &cobra.Command{
		Use:   "foldersize [flags] [path]",
		Short: "Report the size of every entry in a directory",
		Long: heredoc.Doc(`
			foldersize reports the size of each immediate child of a directory,
			largest first. Subdirectories are summed recursively.

			If no path is given, it is read interactively from standard input.
			Symlinks and other special files are never followed and count as 0.
		`),
		Example: heredoc.Doc(`
			foldersize .
			foldersize --output table ~/Downloads
			foldersize --wsl 'C:\Users\me'
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return options.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				options.Path = args[0]
			}

			return logic(cmd, options)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	bindFlags(cmd.Flags(), &options)
	cmd.MarkFlagsMutuallyExclusive("pause", "no-pause")

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

func (o Options) validate() error {
	if !slices.Contains(allowedOutputs, o.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", o.Output, allowedOutputs)
	}

	if !slices.Contains(allowedProgress, o.Progress) {
		return fmt.Errorf("invalid progress mode %q: must be one of %v", o.Progress, allowedProgress)
	}

	if o.Top < 0 {
		return errors.New("top cannot be negative")
	}

	return nil
}
