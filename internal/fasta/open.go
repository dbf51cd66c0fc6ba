// Package fasta opens FASTA files and parses the FASTA text returned by the
// sequence store.
package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// IsGzip reports whether path holds gzip data, judged by the magic number
// (1F 8B) or a .gz suffix.
func IsGzip(path string) (bool, error) {
	if strings.HasSuffix(path, ".gz") {
		return true, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = fh.Close() }()
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	return n == 2 && sig[0] == 0x1f && sig[1] == 0x8b, nil
}

// Open opens path for reading, transparently decompressing gzip input.
func Open(path string) (io.ReadCloser, error) {
	gz, err := IsGzip(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gz {
		return fh, nil
	}
	gr, err := gzip.NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
}
