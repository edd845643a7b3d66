package camera

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"
)

// ErrClosed is returned when capturing from a closed camera.
var ErrClosed = errors.New("camera: closed")

// ErrNoFrame is returned when the device produced no frame.
var ErrNoFrame = errors.New("camera: no frame available")

// Camera wraps an OpenCV video capture device.
type Camera struct {
	mu     sync.Mutex
	cap    *gocv.VideoCapture
	config Config
	logger *slog.Logger
}

// Open opens the capture device described by cfg. When the device
// rejects the requested resolution, lower-resolution presets are tried
// in order, so a robot with a cheaper camera module still boots.
func Open(cfg Config) (*Camera, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera: invalid config: %v", errs)
	}

	logger := slog.Default().With("component", "camera")

	cap, err := gocv.OpenVideoCapture(cfg.Index)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", cfg.Index, err)
	}

	cam := &Camera{cap: cap, config: cfg, logger: logger}

	if err := cam.applyResolution(cfg); err != nil {
		applied := false
		for _, name := range FallbackOrder() {
			fb := *GetPreset(name)
			if fb.Width >= cfg.Width {
				continue
			}
			fb.Index = cfg.Index
			if cam.applyResolution(fb) == nil {
				logger.Warn("resolution not supported, using fallback",
					"requested", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
					"actual", fmt.Sprintf("%dx%d", fb.Width, fb.Height),
				)
				cam.config = fb
				applied = true
				break
			}
		}
		if !applied {
			cap.Close()
			return nil, fmt.Errorf("camera: device %d supports none of the preset resolutions", cfg.Index)
		}
	}

	cam.warmup()

	logger.Info("camera ready",
		"device", cfg.Index,
		"width", cam.config.Width,
		"height", cam.config.Height,
	)

	return cam, nil
}

// applyResolution configures the device and verifies it took effect.
func (c *Camera) applyResolution(cfg Config) error {
	c.cap.Set(gocv.VideoCaptureFOURCC, c.cap.ToCodec(cfg.FourCC))
	c.cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	c.cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	c.cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	gotW := int(c.cap.Get(gocv.VideoCaptureFrameWidth))
	gotH := int(c.cap.Get(gocv.VideoCaptureFrameHeight))
	if gotW != cfg.Width || gotH != cfg.Height {
		return fmt.Errorf("camera: wanted %dx%d, device reports %dx%d",
			cfg.Width, cfg.Height, gotW, gotH)
	}

	return nil
}

// warmup discards frames so auto exposure settles.
func (c *Camera) warmup() {
	mat := gocv.NewMat()
	defer mat.Close()

	for i := 0; i < c.config.WarmupFrames; i++ {
		c.cap.Read(&mat)
	}
}

// Config returns the active configuration, which may be a fallback
// rather than the one passed to Open.
func (c *Camera) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// ReadMat captures a frame into a new Mat. The caller owns the Mat and
// must Close it.
func (c *Camera) ReadMat() (gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap == nil {
		return gocv.Mat{}, ErrClosed
	}

	mat := gocv.NewMat()
	if ok := c.cap.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return gocv.Mat{}, ErrNoFrame
	}

	return mat, nil
}

// Capture grabs one frame as an image.Image.
func (c *Camera) Capture() (image.Image, error) {
	mat, err := c.ReadMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("camera: convert frame: %w", err)
	}

	return img, nil
}

// CaptureJPEG grabs one frame as compressed JPEG bytes.
func (c *Camera) CaptureJPEG() ([]byte, error) {
	mat, err := c.ReadMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat,
		[]int{gocv.IMWriteJpegQuality, c.config.Quality})
	if err != nil {
		return nil, fmt.Errorf("camera: encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the capture device.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cap == nil {
		return nil
	}
	err := c.cap.Close()
	c.cap = nil
	return err
}
