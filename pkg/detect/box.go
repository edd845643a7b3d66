package detect

import "math"

// Box is an axis-aligned bounding box in pixel coordinates.
// A well-formed box has XMin < XMax and YMin < YMax.
type Box struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// NewBox builds a Box from the [x1, y1, x2, y2] array form the classifier emits.
func NewBox(x1, y1, x2, y2 float64) Box {
	return Box{XMin: x1, YMin: y1, XMax: x2, YMax: y2}
}

// Valid reports whether the box has positive width and height.
func (b Box) Valid() bool {
	return b.XMin < b.XMax && b.YMin < b.YMax
}

// Width returns the box width in pixels.
func (b Box) Width() float64 { return b.XMax - b.XMin }

// Height returns the box height in pixels.
func (b Box) Height() float64 { return b.YMax - b.YMin }

// Area returns the box area in square pixels.
func (b Box) Area() float64 {
	if !b.Valid() {
		return 0
	}
	return b.Width() * b.Height()
}

// Center returns the box center, used as the default grasp point.
func (b Box) Center() Point {
	return Point{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}

// IoU returns the intersection-over-union of two boxes, in [0, 1].
// Invalid boxes yield 0.
func (b Box) IoU(other Box) float64 {
	if !b.Valid() || !other.Valid() {
		return 0
	}

	ix := math.Min(b.XMax, other.XMax) - math.Max(b.XMin, other.XMin)
	iy := math.Min(b.YMax, other.YMax) - math.Max(b.YMin, other.YMin)
	if ix <= 0 || iy <= 0 {
		return 0
	}

	inter := ix * iy
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// CenterDistance returns the Euclidean distance between the box centers.
func (b Box) CenterDistance(other Box) float64 {
	c1, c2 := b.Center(), other.Center()
	return math.Hypot(c1.X-c2.X, c1.Y-c2.Y)
}

// Slice returns the [x1, y1, x2, y2] array form.
func (b Box) Slice() [4]float64 {
	return [4]float64{b.XMin, b.YMin, b.XMax, b.YMax}
}
