package camera

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
)

// Mock is a frame source for tests. It serves queued frames, then
// synthetic gray frames once the queue is empty.
type Mock struct {
	mu     sync.Mutex
	frames []image.Image
	config Config
	closed bool

	// CaptureErr, when set, is returned by every capture.
	CaptureErr error
}

// NewMock creates a mock camera at the given preset resolution.
func NewMock(cfg Config) *Mock {
	return &Mock{config: cfg}
}

// Queue appends frames to be served in order.
func (m *Mock) Queue(frames ...image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, frames...)
}

// Config returns the mock's configuration.
func (m *Mock) Config() Config {
	return m.config
}

// Capture returns the next queued frame, or a synthetic one.
func (m *Mock) Capture() (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.CaptureErr != nil {
		return nil, m.CaptureErr
	}

	if len(m.frames) > 0 {
		frame := m.frames[0]
		m.frames = m.frames[1:]
		return frame, nil
	}

	return m.synthetic(), nil
}

// CaptureJPEG returns the next frame compressed as JPEG.
func (m *Mock) CaptureJPEG() ([]byte, error) {
	img, err := m.Capture()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: m.config.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Mock) synthetic() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, m.config.Width, m.config.Height))
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := 0; y < m.config.Height; y++ {
		for x := 0; x < m.config.Width; x++ {
			img.Set(x, y, gray)
		}
	}
	return img
}
