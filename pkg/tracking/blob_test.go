package tracking

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// testFrame returns a black 320x240 BGR frame.
func testFrame() gocv.Mat {
	return gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
}

func TestBlobFinderDetectsLargestRegion(t *testing.T) {
	frame := testFrame()
	defer frame.Close()

	red := color.RGBA{R: 255}
	gocv.Circle(&frame, image.Pt(160, 120), 40, red, -1)
	gocv.Circle(&frame, image.Pt(40, 40), 14, red, -1)

	finder := NewBlobFinder(Red, DefaultConfig().MinBlobRadius)
	defer finder.Close()

	blob, found := finder.Detect(frame)
	require.True(t, found)

	// The big circle wins over the small one.
	assert.InDelta(t, 160, blob.CenterX, 4)
	assert.InDelta(t, 120, blob.CenterY, 4)
	assert.InDelta(t, 40, blob.Radius, 6)
	assert.Greater(t, blob.Area, 1000.0)
}

func TestBlobFinderRejectsSpecks(t *testing.T) {
	frame := testFrame()
	defer frame.Close()

	// A speck whose enclosing circle stays under the minimum radius
	// after the noise-removal passes.
	gocv.Circle(&frame, image.Pt(160, 120), 6, color.RGBA{R: 255}, -1)

	finder := NewBlobFinder(Red, DefaultConfig().MinBlobRadius)
	defer finder.Close()

	_, found := finder.Detect(frame)
	assert.False(t, found)
}

func TestBlobFinderIgnoresOtherColors(t *testing.T) {
	frame := testFrame()
	defer frame.Close()

	gocv.Circle(&frame, image.Pt(160, 120), 40, color.RGBA{G: 255}, -1)

	finder := NewBlobFinder(Red, DefaultConfig().MinBlobRadius)
	defer finder.Close()

	_, found := finder.Detect(frame)
	assert.False(t, found)
}

func TestBlobFinderEmptyFrame(t *testing.T) {
	frame := testFrame()
	defer frame.Close()

	finder := NewBlobFinder(Red, DefaultConfig().MinBlobRadius)
	defer finder.Close()

	_, found := finder.Detect(frame)
	assert.False(t, found)
}
