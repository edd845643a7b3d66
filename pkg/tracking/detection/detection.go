// Package detection runs a lightweight anchor-free object detector on
// camera frames via OpenCV's DNN module.
package detection

import (
	"math"
	"sort"
)

// Detection is one detected object in pixel coordinates.
type Detection struct {
	X1, Y1, X2, Y2 float64 // Corner box in pixels
	Score          float64 // Combined objectness and class score
	ClassID        int
	ClassName      string
}

// Width returns the box width in pixels.
func (d Detection) Width() float64 { return d.X2 - d.X1 }

// Height returns the box height in pixels.
func (d Detection) Height() float64 { return d.Y2 - d.Y1 }

// decodeFeatureMap converts the raw output tensor to detections.
//
// The tensor layout is [channels, gridH, gridW] with channels
// [objectness, x offset, y offset, width, height, class scores...].
// The combined score weights objectness over the class term. Center
// offsets pass through tanh so a cell can shift up to one full cell;
// width and height pass through sigmoid as fractions of the frame.
func decodeFeatureMap(data []float32, channels, gridH, gridW int, imgW, imgH float64, scoreThresh float64, names []string) []Detection {
	var out []Detection

	plane := gridH * gridW
	at := func(c, h, w int) float64 {
		return float64(data[c*plane+h*gridW+w])
	}

	for h := 0; h < gridH; h++ {
		for w := 0; w < gridW; w++ {
			obj := at(0, h, w)

			clsScore := 0.0
			clsID := 0
			for c := 5; c < channels; c++ {
				if s := at(c, h, w); s > clsScore {
					clsScore = s
					clsID = c - 5
				}
			}

			score := math.Pow(obj, 0.6) * math.Pow(clsScore, 0.4)
			if score < scoreThresh {
				continue
			}

			xOffset := math.Tanh(at(1, h, w))
			yOffset := math.Tanh(at(2, h, w))
			boxW := sigmoid(at(3, h, w))
			boxH := sigmoid(at(4, h, w))

			cx := (float64(w) + xOffset) / float64(gridW)
			cy := (float64(h) + yOffset) / float64(gridH)

			det := Detection{
				X1:      (cx - boxW/2) * imgW,
				Y1:      (cy - boxH/2) * imgH,
				X2:      (cx + boxW/2) * imgW,
				Y2:      (cy + boxH/2) * imgH,
				Score:   score,
				ClassID: clsID,
			}
			if clsID < len(names) {
				det.ClassName = names[clsID]
			}
			out = append(out, det)
		}
	}

	return out
}

// nms suppresses overlapping boxes, keeping the highest scored of each
// overlapping group. Box areas use the inclusive pixel convention
// (x2-x1+1) so single-pixel boxes still have area.
func nms(dets []Detection, iouThresh float64) []Detection {
	if len(dets) <= 1 {
		return dets
	}

	sorted := make([]Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	suppressed := make([]bool, len(sorted))
	var keep []Detection

	for i := range sorted {
		if suppressed[i] {
			continue
		}
		keep = append(keep, sorted[i])

		for j := i + 1; j < len(sorted); j++ {
			if suppressed[j] {
				continue
			}
			if boxIoU(sorted[i], sorted[j]) > iouThresh {
				suppressed[j] = true
			}
		}
	}

	return keep
}

func boxIoU(a, b Detection) float64 {
	x1 := math.Max(a.X1, b.X1)
	y1 := math.Max(a.Y1, b.Y1)
	x2 := math.Min(a.X2, b.X2)
	y2 := math.Min(a.Y2, b.Y2)

	iw := math.Max(0, x2-x1+1)
	ih := math.Max(0, y2-y1+1)
	inter := iw * ih

	areaA := (a.X2 - a.X1 + 1) * (a.Y2 - a.Y1 + 1)
	areaB := (b.X2 - b.X1 + 1) * (b.Y2 - b.Y1 + 1)

	union := areaA + areaB - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
