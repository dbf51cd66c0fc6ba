// Package sfetch indexes a FASTA file and fetches subsequences from it with
// HMMER's esl-sfetch.
package sfetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"nhmmerx/internal/hits"
	"nhmmerx/internal/logger"
)

// ErrExternalTool is wrapped by every failure to spawn esl-sfetch or every
// non-zero exit from it.
var ErrExternalTool = errors.New("external tool failed")

// SequenceIndexStore builds a random-access index over a FASTA file and
// serves range queries against it. Build must succeed before FetchRange.
type SequenceIndexStore interface {
	Build(ctx context.Context, path string) error
	FetchRange(ctx context.Context, q hits.RangeQuery) ([]byte, error)
}

// Store is a SequenceIndexStore backed by the esl-sfetch binary.
type Store struct {
	argv []string
	path string
	log  logger.Logger
}

var _ SequenceIndexStore = (*Store)(nil)

// New parses command, which may carry a wrapper and arguments (for example
// "conda run -n hmmer esl-sfetch"), into a Store.
func New(command string, log logger.Logger) (*Store, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse esl-sfetch command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("esl-sfetch command is empty")
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Store{argv: argv, log: log}, nil
}

// Path returns the indexed file, empty until Build succeeds.
func (s *Store) Path() string { return s.path }

// Build runs `esl-sfetch --index path`.
func (s *Store) Build(ctx context.Context, path string) error {
	if _, err := s.run(ctx, "--index", path); err != nil {
		return fmt.Errorf("index %s: %w", path, err)
	}
	s.path = path
	return nil
}

// FetchRange runs `esl-sfetch -c from..to path target` and returns its
// stdout. Empty output is not an error.
func (s *Store) FetchRange(ctx context.Context, q hits.RangeQuery) ([]byte, error) {
	if s.path == "" {
		return nil, errors.New("fetch before index build")
	}
	out, err := s.run(ctx, "-c", q.Range, s.path, q.Target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", q, err)
	}
	return out, nil
}

func (s *Store) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append(append([]string(nil), s.argv...), args...)
	fullCmd := strings.Join(full, " ")
	s.log.Debug("exec", "cmd", fullCmd)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, full[0], full[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: running '%s': %v\n\nstderr:\n%s", ErrExternalTool, fullCmd, err, msg)
		}
		return nil, fmt.Errorf("%w: running '%s': %v", ErrExternalTool, fullCmd, err)
	}
	return stdout.Bytes(), nil
}
