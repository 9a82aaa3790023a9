package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdge(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		tests := []struct {
			in   string
			want float64
		}{
			{"50", 50},
			{"20.0", 20},
			{"0.5", 0.5},
			{"1e3", 1000},
		}
		for _, tc := range tests {
			got, err := ParseEdge(tc.in)
			require.NoError(t, err, "ParseEdge(%q)", tc.in)
			assert.Equal(t, tc.want, got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ParseEdge("")
		assert.ErrorIs(t, err, ErrEdgeMissing)
	})

	t.Run("not numeric", func(t *testing.T) {
		for _, in := range []string{"abc", "50mm", "--5"} {
			_, err := ParseEdge(in)
			assert.ErrorIs(t, err, ErrEdgeNotNumeric, "ParseEdge(%q)", in)
		}
	})

	t.Run("not positive", func(t *testing.T) {
		for _, in := range []string{"0", "-5", "NaN", "Inf"} {
			_, err := ParseEdge(in)
			assert.ErrorIs(t, err, ErrEdgeNotPositive, "ParseEdge(%q)", in)
		}
	})
}

func TestEdge(t *testing.T) {
	assert.NoError(t, Edge(50))
	assert.ErrorIs(t, Edge(0), ErrEdgeNotPositive)
	assert.ErrorIs(t, Edge(-5), ErrEdgeNotPositive)
	assert.ErrorIs(t, Edge(math.NaN()), ErrEdgeNotPositive)
	assert.ErrorIs(t, Edge(math.Inf(1)), ErrEdgeNotPositive)
}
