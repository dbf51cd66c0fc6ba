package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = `>seq1
ACGT
>seq2
NNnn
`

func writeGz(t *testing.T, name string, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return path
}

func TestIsGzip(t *testing.T) {
	t.Run("Should detect gzip by magic number without suffix", func(t *testing.T) {
		path := writeGz(t, "genome.fa", plain)
		gz, err := IsGzip(path)
		require.NoError(t, err)
		assert.True(t, gz)
	})

	t.Run("Should treat plain text as not gzip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "genome.fa")
		require.NoError(t, os.WriteFile(path, []byte(plain), 0o644))
		gz, err := IsGzip(path)
		require.NoError(t, err)
		assert.False(t, gz)
	})
}

func TestOpen(t *testing.T) {
	t.Run("Should decompress gzip input", func(t *testing.T) {
		rc, err := Open(writeGz(t, "genome.fa.gz", plain))
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, plain, string(b))
	})

	t.Run("Should fail on a missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.fa"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Should treat a dash as an ordinary file name", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		_, err := Open("-")
		assert.ErrorIs(t, err, os.ErrNotExist)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "-"), []byte(plain), 0o644))
		rc, err := Open("-")
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, plain, string(b))
	})
}
