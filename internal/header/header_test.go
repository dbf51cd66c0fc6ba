package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	t.Run("Should append the e-value when no species tag is set", func(t *testing.T) {
		assert.Equal(t, "chr1_hit3:E1e-7", Rewrite("", 1e-7, "chr1_hit3"))
	})

	t.Run("Should prefix the species tag", func(t *testing.T) {
		assert.Equal(t, "Sp001:E1e-7:chr1_hit3", Rewrite("Sp001", 1e-7, "chr1_hit3"))
	})

	t.Run("Should not carry state between calls", func(t *testing.T) {
		first := Rewrite("Sp001", 1e-7, "a")
		second := Rewrite("Sp001", 2e-9, "b")
		assert.Equal(t, "Sp001:E1e-7:a", first)
		assert.Equal(t, "Sp001:E2e-9:b", second)
	})
}

func TestFormatEValue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1e-5, "1e-5"},
		{1e-7, "1e-7"},
		{1.5e-12, "1.5e-12"},
		{2.34e-120, "2.34e-120"},
		{0, "0e0"},
		{1, "1e0"},
		{300, "3e2"},
		{12.5, "1.25e1"},
	}
	for _, tc := range cases {
		t.Run("Should format "+tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatEValue(tc.in))
		})
	}
}
