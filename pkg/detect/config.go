package detect

// Config holds the post-processing thresholds and scoring weights.
type Config struct {
	// Filtering
	MinConfidence float64 // Discard detections below this (0-100)
	MinBoxPx      float64 // Discard boxes narrower or shorter than this
	Denylist      []string // Description keywords that mark fixtures/furniture

	// Deduplication
	IoUThreshold     float64 // Boxes overlapping more than this are duplicates
	CenterDistancePx float64 // Same-category boxes with closer centers are duplicates

	// Distance mapping (camera looking down at the floor)
	ImageHeight float64 // Source image height in pixels
	NearCM      float64 // Distance at the bottom edge of the image
	FarCM       float64 // Distance at the top edge of the image

	// Priority weights (should sum to ~1.0)
	WeightDistance   float64
	WeightSize       float64
	WeightAccess     float64
	WeightConfidence float64
}

// DefaultConfig returns the tuned thresholds for floor scanning.
// Distance calibration assumes a ~45cm tall robot with the camera
// tilted down ~15 degrees: the top of the frame is ~80cm away and
// the bottom ~20cm.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 70,
		MinBoxPx:      50,
		Denylist: []string{
			"sofa", "couch", "table", "chair", "bed", "shelf", "cabinet",
			"rug", "carpet", "curtain", "door", "wall", "lamp", "plant",
		},

		IoUThreshold:     0.4,
		CenterDistancePx: 50,

		ImageHeight: 1080,
		NearCM:      20,
		FarCM:       80,

		WeightDistance:   0.40,
		WeightSize:       0.25,
		WeightAccess:     0.20,
		WeightConfidence: 0.15,
	}
}

// WithImageHeight returns a copy of the config with the distance mapping
// rescaled to the given capture height.
func (c Config) WithImageHeight(h float64) Config {
	if h > 0 {
		c.ImageHeight = h
	}
	return c
}
