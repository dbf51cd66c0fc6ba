// Package app wires configuration, logging and the extraction pipeline
// behind the process entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nhmmerx/internal/cli"
	"nhmmerx/internal/config"
	"nhmmerx/internal/logger"
	"nhmmerx/internal/materialize"
	"nhmmerx/internal/pipeline"
	"nhmmerx/internal/sfetch"
	"nhmmerx/internal/tblout"
	"nhmmerx/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitFailure  = 3
	ExitCanceled = 130
)

// RunContext parses argv, runs the extraction and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := cli.NewCommand(func(cmd *cobra.Command, overrides map[string]any) error {
		cfg, err := config.Load(overrides)
		if err != nil {
			return &cli.UsageError{Err: err}
		}
		log := logger.NewLogger(&logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			Output:     stderr,
			JSON:       cfg.LogJSON,
			TimeFormat: logger.DefaultConfig().TimeFormat,
		})
		ctx := logger.ContextWithLogger(cmd.Context(), log)
		_, err = Execute(ctx, cfg, stdout)
		return err
	})
	if argv == nil {
		// cobra reads os.Args when given nil.
		argv = []string{}
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(parent)
	var ue *cli.UsageError
	switch {
	case err == nil:
		return ExitOK
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.As(err, &ue):
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cli.Name)
		return ExitUsage
	default:
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitFailure
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// Execute performs one extraction run: it reads the report, prepares and
// indexes a scratch copy of the FASTA, then streams rewritten records to
// stdout in hit order.
func Execute(ctx context.Context, cfg *config.Config, stdout io.Writer) (pipeline.Stats, error) {
	log := logger.FromContext(ctx)

	rd, err := tblout.Open(cfg.Report)
	if err != nil {
		return pipeline.Stats{}, err
	}
	defer func() { _ = rd.Close() }()

	fastaPath := cfg.Fasta
	if fastaPath == "" {
		if fastaPath, err = rd.Meta().RequireTargetFile(); err != nil {
			return pipeline.Stats{}, fmt.Errorf("no FASTA given and %s: %w", cfg.Report, err)
		}
		log.Info("Using target file from tblout", "path", fastaPath)
	}

	scratch, err := materialize.NewScratch(cfg.TmpDir, cfg.KeepTmp)
	if err != nil {
		return pipeline.Stats{}, err
	}
	defer func() {
		if err := scratch.Close(); err != nil {
			log.Warn("Could not clean up", "dir", scratch.Dir(), "err", err)
		}
	}()
	if cfg.KeepTmp {
		log.Info("Keeping scratch directory", "dir", scratch.Dir())
	}

	log.Info("Copying fasta", "from", fastaPath)
	local, err := scratch.Materialize(fastaPath)
	if err != nil {
		return pipeline.Stats{}, err
	}

	store, err := sfetch.New(cfg.EslSfetch, log)
	if err != nil {
		return pipeline.Stats{}, err
	}
	log.Info("Indexing fasta", "path", local)
	if err := store.Build(ctx, local); err != nil {
		return pipeline.Stats{}, err
	}

	out := writers.NewFASTAWriter(stdout, cfg.LineWidth)
	log.Info("Iterating over tblout", "threshold", cfg.EValueThreshold)
	st, err := pipeline.Run(ctx, pipeline.Config{
		Threshold: cfg.EValueThreshold,
		SpeciesID: cfg.SpeciesID,
	}, rd, store, out.Write)
	if err != nil {
		return st, err
	}
	log.Info("Done", "hits", st.Hits, "kept", st.Kept, "records", st.Records, "empty", st.EmptyFetches)
	return st, nil
}
