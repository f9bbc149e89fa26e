package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/duim/internal/diskusage"
	"github.com/idelchi/duim/internal/integration"
	"github.com/idelchi/duim/internal/report"
)

// CLI represents the command-line interface.
type CLI struct {
	version  string
	stdout   io.Writer
	stderr   io.Writer
	duBinary string // empty means diskusage.DefaultBinary
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version, stdout: os.Stdout, stderr: os.Stderr}
}

// WithOutput returns a copy of the CLI writing to the given streams.
func (c CLI) WithOutput(stdout, stderr io.Writer) CLI {
	c.stdout = stdout
	c.stderr = stderr

	return c
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

// bindFlags registers all flags on flags, writing into options.
func bindFlags(flags *pflag.FlagSet, options *report.Options) {
	flags.IntVarP(&options.Length, "length", "l", report.DefaultLength, "Specify the length of the graph")
	flags.BoolVarP(
		&options.HumanReadable,
		"human-readable",
		"H",
		false,
		"Print sizes in human readable format (e.g. 1K 23M 2G)",
	)
	flags.StringVarP(&options.Provider, "provider", "p", diskusage.ProviderDu,
		fmt.Sprintf("Disk usage provider: one of %v", diskusage.Providers))
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: json or table")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	flags.BoolVarP(&options.Integration, "init", "i", false, "Output init script for shell usage")

	flags.SortFlags = false
}

func (c CLI) command(options *report.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duim [flags] [target]",
		Short: "DU Improved -- See Disk Usage Report with bar charts",
		Long: heredoc.Doc(`
			duim reports the disk usage of each immediate subdirectory of a target
			as a bar chart, largest first, followed by the total.

			Positional Arguments:
			  target                 Directory to scan. Defaults to current directory if not specified.

			Providers:
			  du     runs 'du -d 1' and uses its output (default).
			  walk   walks the directory in-process and sums apparent file sizes.

			Use '--init' to print a zsh function 'duim-cd' which pipes the report
			to 'fzf' and changes into the selected directory.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				fmt.Fprintln(c.stdout, c.version)

				return nil
			}

			if options.Integration {
				script, err := integration.Resolve()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				rendered, err := script.Render()
				if err != nil {
					return fmt.Errorf("rendering integration script: %w", err)
				}

				fmt.Fprintln(c.stdout, rendered)

				return nil
			}

			if !slices.Contains(allowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
			}

			if !slices.Contains(diskusage.Providers, options.Provider) {
				return fmt.Errorf("invalid provider %q: must be one of %v", options.Provider, diskusage.Providers)
			}

			if len(args) == 0 {
				options.Target = "."
			} else {
				options.Target = args[0]
			}

			return c.logic(cmd.Context(), *options)
		},
	}

	bindFlags(cmd.Flags(), options)

	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(c.stderr, cmd.UsageString())

		return err
	})

	return cmd
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute(args ...string) error {
	var options report.Options

	cmd := c.command(&options)
	cmd.SetArgs(args)

	return cmd.Execute()
}
