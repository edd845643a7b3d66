package tracking

import (
	"image"

	"gocv.io/x/gocv"
)

// Blob is the largest connected region of the target color in a frame.
type Blob struct {
	// Center of the minimum enclosing circle, in pixels.
	CenterX, CenterY float64

	// Radius of the minimum enclosing circle, in pixels.
	Radius float64

	// Area of the contour, in pixels.
	Area float64
}

// BlobFinder locates the largest region of a color in BGR frames.
type BlobFinder struct {
	color     ColorRange
	minRadius float64
	kernel    gocv.Mat
}

// NewBlobFinder creates a finder for one color preset.
func NewBlobFinder(color ColorRange, minRadius float64) *BlobFinder {
	return &BlobFinder{
		color:     color,
		minRadius: minRadius,
		kernel:    gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3)),
	}
}

// Color returns the color preset being tracked.
func (f *BlobFinder) Color() ColorRange {
	return f.color
}

// Detect fits a circle around the largest matching region of a BGR
// frame. Returns false when no region above the minimum radius is
// present.
func (f *BlobFinder) Detect(frame gocv.Mat) (Blob, bool) {
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(frame, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(blurred, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.NewScalar(f.color.Lower.H, f.color.Lower.S, f.color.Lower.V, 0)
	upper := gocv.NewScalar(f.color.Upper.H, f.color.Upper.S, f.color.Upper.V, 0)
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	// Two erode/dilate passes to knock out speckle noise before
	// contour extraction.
	gocv.Erode(mask, &mask, f.kernel)
	gocv.Erode(mask, &mask, f.kernel)
	gocv.Dilate(mask, &mask, f.kernel)
	gocv.Dilate(mask, &mask, f.kernel)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bestArea := 0.0
	bestIdx := -1
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			bestArea = area
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Blob{}, false
	}

	x, y, radius := gocv.MinEnclosingCircle(contours.At(bestIdx))
	if float64(radius) <= f.minRadius {
		return Blob{}, false
	}

	return Blob{
		CenterX: float64(x),
		CenterY: float64(y),
		Radius:  float64(radius),
		Area:    bestArea,
	}, true
}

// Close releases the morphology kernel.
func (f *BlobFinder) Close() error {
	return f.kernel.Close()
}
