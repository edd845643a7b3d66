package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorByName(t *testing.T) {
	for _, want := range Colors() {
		got, err := ColorByName(want.Name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ColorByName("mauve")
	assert.Error(t, err)
}

func TestColorRangesWellFormed(t *testing.T) {
	for _, c := range Colors() {
		assert.LessOrEqual(t, c.Lower.H, c.Upper.H, c.Name)
		assert.LessOrEqual(t, c.Lower.S, c.Upper.S, c.Name)
		assert.LessOrEqual(t, c.Lower.V, c.Upper.V, c.Name)
		assert.LessOrEqual(t, c.Upper.H, 180.0, c.Name)
		assert.LessOrEqual(t, c.Upper.V, 255.0, c.Name)
	}
}
