// Package cli defines the extract-nhmmer-tblout command line.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"nhmmerx/internal/hits"
	"nhmmerx/internal/version"
	"nhmmerx/internal/writers"
)

const Name = "extract-nhmmer-tblout"

// UsageError marks a failure caused by how the tool was invoked.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// RunFunc receives the settings given on the command line, keyed by config
// name (report, fasta, e_value_threshold, ...). Flags left at their default
// are absent so lower-precedence sources can supply them.
type RunFunc func(cmd *cobra.Command, overrides map[string]any) error

// NewCommand builds the root command.
func NewCommand(run RunFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   Name + " <TBL> [FASTA]",
		Short: "Extract sequences for significant nhmmer hits",
		Long: `Extract the aligned region of every nhmmer hit at or below the e-value
threshold from the searched FASTA file and write them to stdout.

TBL is an nhmmer --tblout file. FASTA is the file nhmmer searched; when it is
omitted the "Target file" recorded in TBL is used, which usually only works
when nhmmer was given an absolute path. Gzip-compressed FASTA is accepted.

Headers are rewritten as NAME:E<evalue>, or SPECIES:E<evalue>:NAME when a
species id is given.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, Overrides(cmd.Flags(), args))
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.StringP("esl-sfetch", "e", "esl-sfetch", "esl-sfetch command; may include a wrapper, e.g. \"conda run -n hmmer esl-sfetch\"")
	fs.Float64P("e-value-threshold", "v", hits.DefaultThreshold, "keep hits with E-value at or below this")
	fs.StringP("species-id", "s", "", "species id to put at the start of each header")
	fs.Int("line-width", writers.DefaultLineWidth, "wrap output sequence lines at this width")
	fs.String("tmp-dir", "", "parent directory for the scratch copy of FASTA (default system temp)")
	fs.Bool("keep-tmp", false, "leave the scratch directory on disk")
	fs.String("log-level", "info", "log level: debug | info | warn | error")
	fs.Bool("log-json", false, "log as JSON")
	return cmd
}

// Overrides collects positionals and explicitly set flags into config keys.
func Overrides(fs *pflag.FlagSet, args []string) map[string]any {
	m := map[string]any{}
	if len(args) > 0 {
		m["report"] = args[0]
	}
	if len(args) > 1 {
		m["fasta"] = args[1]
	}
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == "help" || f.Name == "version" {
			return
		}
		m[strings.ReplaceAll(f.Name, "-", "_")] = f.Value.String()
	})
	return m
}
