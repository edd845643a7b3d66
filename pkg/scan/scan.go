// Package scan sweeps the floor around the robot for pickable objects.
// A scan captures frames from the robot camera, sends them through the
// vision classifier, and aggregates the detections into a ranked pickup
// plan. The full sweep rotates the robot through a complete circle,
// photographing at each heading.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/robot"
)

// ErrBusy is returned when a scan is requested while another one is
// still moving the robot. Scans come from the voice loop, the
// choreography listener and the dashboard, and interleaving their
// turns and frames would corrupt both sweeps.
var ErrBusy = errors.New("scan: another scan is in progress")

// FrameSource produces JPEG frames from the robot camera.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Classifier identifies pickable floor objects in a JPEG frame.
type Classifier interface {
	Classify(ctx context.Context, jpeg []byte, imageHeight int) ([]detect.Object, error)
}

// Config holds sweep parameters.
type Config struct {
	// Positions is how many headings a full sweep photographs.
	Positions int

	// TurnDegrees is the rotation between positions. Positions times
	// TurnDegrees should be 360 so the sweep ends where it started.
	TurnDegrees float64

	// SettleDelay waits after each turn for the body to stop swaying
	// before the next photo.
	SettleDelay time.Duration

	// ImageHeight is the capture height in pixels, used for distance
	// estimation.
	ImageHeight int
}

// DefaultConfig returns the standard eight-position sweep.
func DefaultConfig() Config {
	return Config{
		Positions:   8,
		TurnDegrees: 45,
		SettleDelay: 500 * time.Millisecond,
		ImageHeight: 1944,
	}
}

// Result is the outcome of one floor scan.
type Result struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
	Positions int             `json:"positions"`
	Objects   []detect.Object `json:"objects"`
}

// Scanner coordinates the camera, the classifier and the gait for
// floor sweeps.
type Scanner struct {
	source     FrameSource
	classifier Classifier
	gait       robot.GaitController
	config     Config
	logger     *slog.Logger
	busy       atomic.Bool
}

// New creates a scanner. gait may be nil, in which case only the
// stationary CheckFloor is available.
func New(source FrameSource, classifier Classifier, gait robot.GaitController, config Config) *Scanner {
	return &Scanner{
		source:     source,
		classifier: classifier,
		gait:       gait,
		config:     config,
		logger:     slog.Default().With("component", "scan"),
	}
}

// acquire claims the scanner for one scan. Callers that lose the race
// get ErrBusy instead of blocking behind a sweep.
func (s *Scanner) acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (s *Scanner) release() {
	s.busy.Store(false)
}

// Busy reports whether a scan is currently running.
func (s *Scanner) Busy() bool {
	return s.busy.Load()
}

// CheckFloor photographs the floor ahead without moving and returns the
// ranked detections.
func (s *Scanner) CheckFloor(ctx context.Context) (*Result, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	start := time.Now()

	objects, err := s.scanPosition(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:        uuid.NewString(),
		StartedAt: start,
		Duration:  time.Since(start),
		Positions: 1,
		Objects:   objects,
	}, nil
}

// Scan360 sweeps a full circle, photographing at each heading, and
// returns the aggregated detections with cross-position duplicates
// removed. A failed classification at one heading is logged and the
// sweep continues; the sweep fails only when every heading failed.
func (s *Scanner) Scan360(ctx context.Context) (*Result, error) {
	if s.gait == nil {
		return nil, fmt.Errorf("scan: full sweep needs gait control")
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	start := time.Now()
	var all []detect.Object
	failures := 0

	for pos := 0; pos < s.config.Positions; pos++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		angle := float64(pos) * s.config.TurnDegrees

		objects, err := s.scanPosition(ctx, pos)
		if err != nil {
			failures++
			s.logger.Warn("position failed",
				"position", pos+1,
				"angle", angle,
				"error", err,
			)
		} else {
			for i := range objects {
				objects[i].ScanPosition = pos + 1
				objects[i].ScanAngle = angle
			}
			all = append(all, objects...)
		}

		// Turn after every position so the final turn restores the
		// starting heading.
		if err := s.gait.TurnByAngle(ctx, robot.TurnRight, s.config.TurnDegrees); err != nil {
			return nil, fmt.Errorf("scan: turn at position %d: %w", pos+1, err)
		}
		if err := s.settle(ctx); err != nil {
			return nil, err
		}
	}

	if failures == s.config.Positions {
		return nil, fmt.Errorf("scan: all %d positions failed", s.config.Positions)
	}

	merged := detect.DedupeAcrossScans(all)
	detect.SortByDistance(merged)

	s.logger.Info("sweep complete",
		"positions", s.config.Positions,
		"raw", len(all),
		"unique", len(merged),
		"duration", time.Since(start),
	)

	return &Result{
		ID:        uuid.NewString(),
		StartedAt: start,
		Duration:  time.Since(start),
		Positions: s.config.Positions,
		Objects:   merged,
	}, nil
}

func (s *Scanner) scanPosition(ctx context.Context, pos int) ([]detect.Object, error) {
	jpeg, err := s.source.CaptureJPEG()
	if err != nil {
		return nil, fmt.Errorf("scan: capture at position %d: %w", pos+1, err)
	}

	objects, err := s.classifier.Classify(ctx, jpeg, s.config.ImageHeight)
	if err != nil {
		return nil, err
	}

	return objects, nil
}

func (s *Scanner) settle(ctx context.Context) error {
	if s.config.SettleDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.config.SettleDelay):
		return nil
	}
}
