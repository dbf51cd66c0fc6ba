// Package materialize lays out a readable, uncompressed copy of the target
// FASTA in a scratch directory so it can be indexed.
package materialize

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"

	"nhmmerx/internal/fasta"
)

const scratchPattern = "extract-nhmmer-tblout-"

// Scratch is a temporary working directory owned by one run.
type Scratch struct {
	dir  string
	keep bool
}

// NewScratch creates a scratch directory under parent (the system temp dir
// when parent is empty). With keep set, Close leaves it on disk.
func NewScratch(parent string, keep bool) (*Scratch, error) {
	dir, err := os.MkdirTemp(parent, scratchPattern)
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Scratch{dir: dir, keep: keep}, nil
}

func (s *Scratch) Dir() string { return s.dir }

// Close removes the directory and everything in it.
func (s *Scratch) Close() error {
	if s.keep {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove scratch dir: %w", err)
	}
	return nil
}

// Materialize places a plain-text, LF-terminated copy of src in the scratch
// directory and returns its path. Gzip input is decompressed and loses its
// .gz suffix.
func (s *Scratch) Materialize(src string) (string, error) {
	gz, err := fasta.IsGzip(src)
	if err != nil {
		return "", fmt.Errorf("inspect %s: %w", src, err)
	}
	name := filepath.Base(src)
	if gz {
		name = strings.TrimSuffix(name, ".gz")
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive a file name from %q", src)
	}
	dst := filepath.Join(s.dir, name)

	if !gz {
		cr, err := hasCR(src)
		if err != nil {
			return "", fmt.Errorf("inspect %s: %w", src, err)
		}
		if !cr {
			// Staged inputs are often relative symlinks; copy what they point at.
			resolved, err := filepath.EvalSymlinks(src)
			if err != nil {
				return "", fmt.Errorf("resolve %s: %w", src, err)
			}
			if err := copy.Copy(resolved, dst); err != nil {
				return "", fmt.Errorf("copy %s: %w", src, err)
			}
			return dst, nil
		}
	}

	rc, err := fasta.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = rc.Close() }()
	if err := writeNormalized(dst, rc); err != nil {
		return "", fmt.Errorf("materialize %s: %w", src, err)
	}
	return dst, nil
}

func writeNormalized(dst string, src io.Reader) (err error) {
	fh, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return NormalizeEOL(fh, src)
}

// NormalizeEOL copies src to dst turning CRLF and lone CR into LF.
func NormalizeEOL(dst io.Writer, src io.Reader) error {
	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	pendingCR := false
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			if pendingCR {
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
			return bw.Flush()
		}
		if err != nil {
			return err
		}
		if pendingCR {
			pendingCR = false
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			if c == '\n' {
				continue
			}
		}
		if c == '\r' {
			pendingCR = true
			continue
		}
		if err := bw.WriteByte(c); err != nil {
			return err
		}
	}
}

func hasCR(path string) (bool, error) {
	fh, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = fh.Close() }()
	buf := make([]byte, 64*1024)
	for {
		n, err := fh.Read(buf)
		if bytes.IndexByte(buf[:n], '\r') >= 0 {
			return true, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}
