package scan

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
)

// Category colors for annotated frames, RGBA.
var categoryColors = map[detect.Category]color.RGBA{
	detect.CategoryToy:      {R: 255, G: 140, B: 0, A: 255},
	detect.CategoryTrash:    {R: 220, G: 40, B: 40, A: 255},
	detect.CategoryClothing: {R: 60, G: 100, B: 255, A: 255},
	detect.CategoryOther:    {R: 60, G: 200, B: 60, A: 255},
}

// Annotate draws detection boxes, labels and grasp points onto a frame,
// in place.
func Annotate(mat *gocv.Mat, objects []detect.Object) {
	for _, obj := range objects {
		c, ok := categoryColors[obj.Category]
		if !ok {
			c = categoryColors[detect.CategoryOther]
		}

		rect := image.Rect(
			int(obj.Box.XMin), int(obj.Box.YMin),
			int(obj.Box.XMax), int(obj.Box.YMax),
		)
		gocv.Rectangle(mat, rect, c, 2)

		label := fmt.Sprintf("%s %.0f%% %.0fcm", obj.Description, obj.Confidence, obj.DistanceCM)
		origin := image.Pt(rect.Min.X, rect.Min.Y-6)
		if origin.Y < 12 {
			origin.Y = rect.Min.Y + 16
		}
		gocv.PutText(mat, label, origin, gocv.FontHersheySimplex, 0.5, c, 1)

		if obj.GraspPoint != nil {
			gocv.Circle(mat, image.Pt(int(obj.GraspPoint.X), int(obj.GraspPoint.Y)), 4, c, -1)
		}
	}
}

// AnnotateJPEG decodes a JPEG frame, draws the detections and returns
// the re-encoded frame. Used for saving scan evidence and for the
// dashboard.
func AnnotateJPEG(jpeg []byte, objects []detect.Object) ([]byte, error) {
	mat, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("scan: decode frame: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("scan: empty frame")
	}

	Annotate(&mat, objects)

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("scan: encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
