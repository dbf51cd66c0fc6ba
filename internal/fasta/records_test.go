package fasta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, b string) ([]Record, error) {
	t.Helper()
	var out []Record
	err := ParseRecords([]byte(b), func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

func TestParseRecords(t *testing.T) {
	t.Run("Should yield nothing for empty output", func(t *testing.T) {
		recs, err := collect(t, "")
		require.NoError(t, err)
		assert.Empty(t, recs)

		recs, err = collect(t, "\n\n")
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Should split name and description and join wrapped lines", func(t *testing.T) {
		recs, err := collect(t, ">chr1/100-110 first chromosome\nACGTA\nCGTAC\nA\n")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "chr1/100-110", recs[0].Name)
		assert.Equal(t, "first chromosome", recs[0].Description)
		assert.Equal(t, "ACGTACGTACA", string(recs[0].Seq))
	})

	t.Run("Should keep records in order", func(t *testing.T) {
		recs, err := collect(t, ">a\nAC\n>b\nGT\n>c\nNN\n")
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{recs[0].Name, recs[1].Name, recs[2].Name})
		assert.Equal(t, "GT", string(recs[1].Seq))
		assert.Empty(t, recs[1].Description)
	})

	t.Run("Should reject sequence before the first header", func(t *testing.T) {
		_, err := collect(t, "ACGT\n>a\nAC\n")
		assert.ErrorIs(t, err, ErrSequenceParse)
	})

	t.Run("Should reject a header without a name", func(t *testing.T) {
		_, err := collect(t, ">\nACGT\n")
		assert.ErrorIs(t, err, ErrSequenceParse)
		_, err = collect(t, "> desc only\nACGT\n")
		assert.ErrorIs(t, err, ErrSequenceParse)
	})

	t.Run("Should stop at the first callback error", func(t *testing.T) {
		stop := errors.New("stop")
		n := 0
		err := ParseRecords([]byte(">a\nA\n>b\nC\n"), func(Record) error {
			n++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, n)
	})
}
