// Package camera provides configurable frame capture from the robot's
// onboard camera via OpenCV.
package camera

// Config holds camera configuration parameters.
type Config struct {
	// Index is the V4L2 device index.
	Index int `json:"index"`

	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS
	Quality   int `json:"quality"`   // JPEG quality 1-100

	// FourCC selects the capture pixel format. MJPG is required for
	// full-resolution capture on the onboard USB camera.
	FourCC string `json:"fourcc"`

	// WarmupFrames are read and discarded after opening so auto
	// exposure settles before the first real capture.
	WarmupFrames int `json:"warmup_frames"`
}

// Sensor capabilities for the onboard 5MP camera.
const (
	SensorMaxWidth  = 2592
	SensorMaxHeight = 1944
)

// DefaultConfig returns the full-sensor configuration used for floor
// scanning, where resolution matters more than framerate.
func DefaultConfig() Config {
	return Config{
		Index:        0,
		Width:        SensorMaxWidth,
		Height:       SensorMaxHeight,
		Framerate:    15,
		Quality:      85,
		FourCC:       "MJPG",
		WarmupFrames: 5,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Index < 0 {
		errors = append(errors, "index must not be negative")
	}
	if c.Width < 160 || c.Width > SensorMaxWidth {
		errors = append(errors, "width must be between 160 and 2592")
	}
	if c.Height < 120 || c.Height > SensorMaxHeight {
		errors = append(errors, "height must be between 120 and 1944")
	}
	if c.Framerate < 1 || c.Framerate > 120 {
		errors = append(errors, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}
	if len(c.FourCC) != 4 {
		errors = append(errors, "fourcc must be four characters")
	}
	if c.WarmupFrames < 0 || c.WarmupFrames > 30 {
		errors = append(errors, "warmup_frames must be between 0 and 30")
	}

	return errors
}
