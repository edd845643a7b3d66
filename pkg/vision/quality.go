package vision

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// Frame rejection errors.
var (
	ErrTooDark   = errors.New("vision: frame too dark")
	ErrTooBlurry = errors.New("vision: frame too blurry")
)

// QualityConfig holds frame rejection thresholds.
type QualityConfig struct {
	// MinBrightness is the minimum mean gray level (0-255).
	MinBrightness float64

	// MinSharpness is the minimum Laplacian variance. Motion blur
	// while the robot walks drops this sharply.
	MinSharpness float64
}

// DefaultQualityConfig returns thresholds tuned on the onboard camera.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		MinBrightness: 40,
		MinSharpness:  60,
	}
}

// QualityReport holds the measured frame statistics.
type QualityReport struct {
	Brightness float64 `json:"brightness"`
	Sharpness  float64 `json:"sharpness"`
}

// AssessJPEG measures brightness and sharpness of a JPEG frame.
func AssessJPEG(data []byte) (QualityReport, error) {
	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return QualityReport{}, fmt.Errorf("vision: decode frame: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return QualityReport{}, fmt.Errorf("vision: empty frame")
	}

	return Assess(img), nil
}

// Assess measures brightness and sharpness of a BGR frame.
func Assess(frame gocv.Mat) QualityReport {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	brightness := gray.Mean().Val1

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	_, stdDev := lap.MeanStdDev()
	sharpness := stdDev.Val1 * stdDev.Val1

	return QualityReport{
		Brightness: brightness,
		Sharpness:  sharpness,
	}
}

// Check validates a report against thresholds.
func (c QualityConfig) Check(r QualityReport) error {
	if r.Brightness < c.MinBrightness {
		return fmt.Errorf("%w: brightness %.1f below %.1f",
			ErrTooDark, r.Brightness, c.MinBrightness)
	}
	if r.Sharpness < c.MinSharpness {
		return fmt.Errorf("%w: sharpness %.1f below %.1f",
			ErrTooBlurry, r.Sharpness, c.MinSharpness)
	}
	return nil
}
