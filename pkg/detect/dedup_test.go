package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeAcrossScans(t *testing.T) {
	objects := []Object{
		{Category: CategoryToy, Description: "small red plastic car", Confidence: 82, ScanPosition: 1},
		{Category: CategoryToy, Description: "red plastic car near wall", Confidence: 91, ScanPosition: 3},
		{Category: CategoryTrash, Description: "empty soda can on floor", Confidence: 76, ScanPosition: 5},
	}

	result := DedupeAcrossScans(objects)

	require.Len(t, result, 2)
	assert.Equal(t, 91.0, result[0].Confidence, "higher confidence sighting wins")
	assert.Equal(t, 3, result[0].ScanPosition)
	assert.Equal(t, CategoryTrash, result[1].Category)
}

func TestDedupeAcrossScans_CategoryMustMatch(t *testing.T) {
	objects := []Object{
		{Category: CategoryToy, Description: "small red plastic car", Confidence: 82},
		{Category: CategoryTrash, Description: "small red plastic car", Confidence: 91},
	}

	assert.Len(t, DedupeAcrossScans(objects), 2)
}

func TestDedupeAcrossScans_TooFewSharedWords(t *testing.T) {
	objects := []Object{
		{Category: CategoryToy, Description: "red ball", Confidence: 82},
		{Category: CategoryToy, Description: "red truck", Confidence: 91},
	}

	assert.Len(t, DedupeAcrossScans(objects), 2)
}

func TestDedupeAcrossScans_Empty(t *testing.T) {
	assert.Empty(t, DedupeAcrossScans(nil))
	assert.Len(t, DedupeAcrossScans([]Object{{Category: CategoryToy}}), 1)
}

func TestSharedWords(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"small red plastic car", "red plastic car near wall", 3},
		{"Red Ball", "red ball", 2},
		{"a a a a", "a", 1},
		{"", "anything", 0},
	}

	for _, tt := range tests {
		if got := sharedWords(tt.a, tt.b); got != tt.want {
			t.Errorf("sharedWords(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
