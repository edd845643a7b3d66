package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// FastDetector runs a single-stage anchor-free ONNX model sized for
// the robot's CPU. One forward pass at 352x352 takes well under a
// frame interval, unlike full YOLO variants.
type FastDetector struct {
	net       gocv.Net
	config    Config
	mu        sync.Mutex
	inputSize image.Point
}

// Config holds detector configuration.
type Config struct {
	ModelPath   string
	ScoreThresh float64
	NMSThresh   float64
	InputWidth  int
	InputHeight int
	ClassNames  []string
}

// DefaultConfig returns production defaults for the onboard model.
func DefaultConfig() Config {
	return Config{
		ModelPath:   "models/fastestdet.onnx",
		ScoreThresh: 0.65,
		NMSThresh:   0.45,
		InputWidth:  352,
		InputHeight: 352,
		ClassNames:  COCOClasses,
	}
}

// New loads the ONNX model and prepares the detector.
func New(cfg Config) (*FastDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &FastDetector{
		net:       net,
		config:    cfg,
		inputSize: image.Pt(cfg.InputWidth, cfg.InputHeight),
	}, nil
}

// Detect finds objects in a BGR frame.
func (d *FastDetector) Detect(frame gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	imgW := float64(frame.Cols())
	imgH := float64(frame.Rows())

	blob := gocv.BlobFromImage(frame, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	// Output tensor is [1, channels, gridH, gridW].
	sizes := output.Size()
	if len(sizes) != 4 {
		return nil, fmt.Errorf("unexpected output rank %d", len(sizes))
	}
	channels, gridH, gridW := sizes[1], sizes[2], sizes[3]

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output tensor: %w", err)
	}

	dets := decodeFeatureMap(data, channels, gridH, gridW, imgW, imgH,
		d.config.ScoreThresh, d.config.ClassNames)

	return nms(dets, d.config.NMSThresh), nil
}

// DetectJPEG decodes a JPEG frame and runs detection on it.
func (d *FastDetector) DetectJPEG(jpeg []byte) ([]Detection, error) {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	return d.Detect(img)
}

// DetectClass finds objects of a specific class.
func (d *FastDetector) DetectClass(frame gocv.Mat, targetClass string) ([]Detection, error) {
	all, err := d.Detect(frame)
	if err != nil {
		return nil, err
	}

	var filtered []Detection
	for _, det := range all {
		if det.ClassName == targetClass {
			filtered = append(filtered, det)
		}
	}
	return filtered, nil
}

// Close releases the detector resources.
func (d *FastDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
