package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/inference"
)

// slowResponseThreshold is when to warn about model latency.
const slowResponseThreshold = 3 * time.Second

// ClassifierConfig holds classifier tunables.
type ClassifierConfig struct {
	// MaxAttempts is how many times to retry on malformed responses.
	MaxAttempts int

	// RetryDelay between attempts.
	RetryDelay time.Duration

	// Detect configures the post-processing pipeline.
	Detect detect.Config

	// Quality configures frame rejection. Zero thresholds disable
	// the gate.
	Quality QualityConfig
}

// DefaultClassifierConfig returns production defaults.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MaxAttempts: 3,
		RetryDelay:  time.Second,
		Detect:      detect.DefaultConfig(),
		Quality:     DefaultQualityConfig(),
	}
}

// Classifier identifies pickable objects on the floor in a frame.
type Classifier struct {
	provider inference.Provider
	config   ClassifierConfig
	logger   *slog.Logger
}

// NewClassifier creates a classifier on top of an inference provider.
func NewClassifier(provider inference.Provider, config ClassifierConfig) *Classifier {
	return &Classifier{
		provider: provider,
		config:   config,
		logger:   slog.Default().With("component", "vision.classifier"),
	}
}

// rawObject is the wire format the model is asked to produce.
type rawObject struct {
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Confidence  float64    `json:"confidence"`
	BBox        [4]float64 `json:"bbox"`
	Size        string     `json:"size"`
	Access      string     `json:"accessibility"`
}

type rawResponse struct {
	Objects []rawObject `json:"objects"`
}

// Classify sends a JPEG frame to the model and returns post-processed
// detections, sorted by pickup priority. imageHeight is the frame
// height in pixels, used for distance estimation.
func (c *Classifier) Classify(ctx context.Context, jpeg []byte, imageHeight int) ([]detect.Object, error) {
	if c.config.Quality != (QualityConfig{}) {
		report, err := AssessJPEG(jpeg)
		if err != nil {
			return nil, err
		}
		if err := c.config.Quality.Check(report); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		objects, err := c.classifyOnce(ctx, jpeg)
		if err == nil {
			cfg := c.config.Detect.WithImageHeight(float64(imageHeight))
			return detect.Process(objects, cfg), nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Warn("classification attempt failed",
			"attempt", attempt,
			"error", err,
		)

		if attempt < c.config.MaxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}
	}

	return nil, fmt.Errorf("vision: classification failed after %d attempts: %w",
		c.config.MaxAttempts, lastErr)
}

func (c *Classifier) classifyOnce(ctx context.Context, jpeg []byte) ([]detect.Object, error) {
	resp, err := c.provider.Vision(ctx, &inference.VisionRequest{
		ImageJPEG: jpeg,
		Prompt:    classifyPrompt,
		System:    classifySystem,
		JSONOnly:  true,
	})
	if err != nil {
		return nil, err
	}

	if resp.LatencyMs > slowResponseThreshold.Milliseconds() {
		c.logger.Warn("slow model response",
			"latency_ms", resp.LatencyMs,
			"model", resp.Model,
		)
	}

	var raw rawResponse
	text := inference.ExtractJSON(resp.Content)
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		// Some responses are a bare array rather than the envelope.
		if arrErr := json.Unmarshal([]byte(text), &raw.Objects); arrErr != nil {
			return nil, fmt.Errorf("vision: bad JSON response: %w", err)
		}
	}

	objects := make([]detect.Object, 0, len(raw.Objects))
	for _, r := range raw.Objects {
		objects = append(objects, detect.Object{
			ID:          uuid.NewString(),
			Category:    detect.ParseCategory(r.Category),
			Description: r.Description,
			Confidence:  r.Confidence,
			Box:         detect.NewBox(r.BBox[0], r.BBox[1], r.BBox[2], r.BBox[3]),
			Size:        parseSize(r.Size),
			Access:      parseAccess(r.Access),
		})
	}

	return objects, nil
}

func parseSize(s string) detect.SizeClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return detect.SizeSmall
	case "medium":
		return detect.SizeMedium
	case "large":
		return detect.SizeLarge
	}
	return ""
}

func parseAccess(s string) detect.Access {
	if strings.ToLower(strings.TrimSpace(s)) == "blocked" {
		return detect.AccessBlocked
	}
	return detect.AccessClear
}

const classifySystem = `You are the vision module of a small quadruped robot that tidies floors. You receive one photo taken from the robot's camera, roughly 25cm above the ground looking down and forward. Respond with JSON only.`

const classifyPrompt = `Identify every pickable object lying on the floor in this photo.

Rules:
- Only objects ON the floor. Ignore furniture, fixtures, walls, doors, rugs and anything mounted or built in.
- category must be one of: "toy", "trash", "clothing", "other".
- confidence is 0-100.
- bbox is [x1, y1, x2, y2] in pixels of the original photo.
- size is "small", "medium" or "large" relative to what a 25cm robot could carry.
- accessibility is "clear" if the robot can walk straight to the object, "blocked" otherwise.

Respond with exactly this JSON shape and nothing else:
{"objects": [{"description": "...", "category": "...", "confidence": 0, "bbox": [0, 0, 0, 0], "size": "...", "accessibility": "..."}]}

If the floor is clean, respond {"objects": []}.`
