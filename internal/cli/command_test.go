package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, argv ...string) (map[string]any, string, error) {
	t.Helper()
	var got map[string]any
	cmd := NewCommand(func(_ *cobra.Command, ov map[string]any) error {
		got = ov
		return nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(argv)
	err := cmd.Execute()
	return got, out.String(), err
}

func TestNewCommand(t *testing.T) {
	t.Run("Should map positionals and set flags", func(t *testing.T) {
		ov, _, err := execute(t, "hits.tbl", "genome.fa.gz", "-e", "/opt/hmmer/esl-sfetch", "-v", "1e-3", "-s", "Sp001")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"report":            "hits.tbl",
			"fasta":             "genome.fa.gz",
			"esl_sfetch":        "/opt/hmmer/esl-sfetch",
			"e_value_threshold": "0.001",
			"species_id":        "Sp001",
		}, ov)
	})

	t.Run("Should leave unset flags out", func(t *testing.T) {
		ov, _, err := execute(t, "hits.tbl")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"report": "hits.tbl"}, ov)
	})

	t.Run("Should accept long flag names", func(t *testing.T) {
		ov, _, err := execute(t, "--species-id=Sp9", "--keep-tmp", "--line-width", "60", "hits.tbl")
		require.NoError(t, err)
		assert.Equal(t, "Sp9", ov["species_id"])
		assert.Equal(t, "true", ov["keep_tmp"])
		assert.Equal(t, "60", ov["line_width"])
	})

	t.Run("Should flag missing and extra positionals as usage errors", func(t *testing.T) {
		var ue *UsageError
		_, _, err := execute(t)
		require.Error(t, err)
		assert.True(t, errors.As(err, &ue))

		_, _, err = execute(t, "a", "b", "c")
		assert.True(t, errors.As(err, &ue))
	})

	t.Run("Should flag unknown and malformed flags as usage errors", func(t *testing.T) {
		var ue *UsageError
		_, _, err := execute(t, "hits.tbl", "--nope")
		assert.True(t, errors.As(err, &ue))

		_, _, err = execute(t, "hits.tbl", "-v", "small")
		assert.True(t, errors.As(err, &ue))
	})

	t.Run("Should print help", func(t *testing.T) {
		_, out, err := execute(t, "-h")
		require.NoError(t, err)
		assert.Contains(t, out, "--e-value-threshold")
		assert.Contains(t, out, "--species-id")
	})
}
