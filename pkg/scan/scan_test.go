package scan

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/robot"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/voice"
)

type fakeSource struct {
	frames int
	err    error
}

func (f *fakeSource) CaptureJPEG() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.frames++
	return []byte{0xff, 0xd8, byte(f.frames)}, nil
}

type fakeClassifier struct {
	calls   int
	perCall func(call int) ([]detect.Object, error)
}

func (f *fakeClassifier) Classify(ctx context.Context, jpeg []byte, imageHeight int) ([]detect.Object, error) {
	f.calls++
	return f.perCall(f.calls)
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.SettleDelay = 0
	cfg.ImageHeight = 1080
	return cfg
}

func toyCar(confidence float64) detect.Object {
	return detect.Object{
		ID:            "car-1",
		Category:      detect.CategoryToy,
		Description:   "small red toy car",
		Confidence:    confidence,
		Box:           detect.NewBox(300, 160, 580, 340),
		DistanceScore: 340.0 / 1080.0,
	}
}

func TestCheckFloor(t *testing.T) {
	source := &fakeSource{}
	classifier := &fakeClassifier{perCall: func(int) ([]detect.Object, error) {
		return []detect.Object{toyCar(92)}, nil
	}}

	s := New(source, classifier, nil, fastConfig())
	result, err := s.CheckFloor(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 1, result.Positions)
	require.Len(t, result.Objects, 1)
	assert.Equal(t, 1, source.frames)
}

func TestCheckFloorCaptureError(t *testing.T) {
	source := &fakeSource{err: errors.New("device busy")}
	s := New(source, &fakeClassifier{}, nil, fastConfig())

	_, err := s.CheckFloor(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture at position 1")
}

func TestScan360SweepsAllPositions(t *testing.T) {
	source := &fakeSource{}
	classifier := &fakeClassifier{perCall: func(call int) ([]detect.Object, error) {
		// The same car seen from two adjacent headings, plus a sock
		// seen once.
		switch call {
		case 1:
			return []detect.Object{toyCar(88)}, nil
		case 2:
			return []detect.Object{toyCar(92)}, nil
		case 5:
			return []detect.Object{{
				ID:          "sock-1",
				Category:    detect.CategoryClothing,
				Description: "blue cotton sock",
				Confidence:  81,
				Box:         detect.NewBox(100, 400, 220, 520),
			}}, nil
		}
		return nil, nil
	}}
	gait := robot.NewMock()

	s := New(source, classifier, gait, fastConfig())
	result, err := s.Scan360(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, result.Positions)
	assert.Equal(t, 8, classifier.calls)
	assert.Equal(t, 8, gait.CommandCount("TurnByAngle"))

	for _, cmd := range gait.Commands() {
		if cmd.Method == "TurnByAngle" {
			assert.Equal(t, robot.Direction(robot.TurnRight), cmd.Direction)
			assert.Equal(t, 45.0, cmd.Degrees)
		}
	}

	// Both car sightings merge, the higher confidence one survives.
	require.Len(t, result.Objects, 2)
	for _, obj := range result.Objects {
		if obj.Category == detect.CategoryToy {
			assert.Equal(t, 92.0, obj.Confidence)
			assert.Equal(t, 2, obj.ScanPosition)
			assert.Equal(t, 45.0, obj.ScanAngle)
		}
	}
}

func TestScan360ToleratesPartialFailures(t *testing.T) {
	classifier := &fakeClassifier{perCall: func(call int) ([]detect.Object, error) {
		if call%2 == 0 {
			return nil, errors.New("model timeout")
		}
		return nil, nil
	}}

	s := New(&fakeSource{}, classifier, robot.NewMock(), fastConfig())
	result, err := s.Scan360(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Objects)
}

func TestScan360AllPositionsFailed(t *testing.T) {
	classifier := &fakeClassifier{perCall: func(int) ([]detect.Object, error) {
		return nil, errors.New("model offline")
	}}

	s := New(&fakeSource{}, classifier, robot.NewMock(), fastConfig())
	_, err := s.Scan360(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 8 positions failed")
}

func TestScan360NeedsGait(t *testing.T) {
	s := New(&fakeSource{}, &fakeClassifier{}, nil, fastConfig())
	_, err := s.Scan360(context.Background())
	require.Error(t, err)
}

// blockingClassifier parks the first Classify call until released so a
// test can observe the scanner mid-sweep.
type blockingClassifier struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingClassifier) Classify(ctx context.Context, jpeg []byte, imageHeight int) ([]detect.Object, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return nil, nil
}

func TestScannerRejectsOverlappingScans(t *testing.T) {
	classifier := &blockingClassifier{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(&fakeSource{}, classifier, robot.NewMock(), fastConfig())

	done := make(chan error, 1)
	go func() {
		_, err := s.Scan360(context.Background())
		done <- err
	}()
	<-classifier.started

	assert.True(t, s.Busy())

	_, err := s.CheckFloor(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	_, err = s.Scan360(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(classifier.release)
	require.NoError(t, <-done)

	// The scanner frees up once the sweep finishes.
	assert.False(t, s.Busy())
	_, err = s.CheckFloor(context.Background())
	require.NoError(t, err)
}

func TestScan360CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&fakeSource{}, &fakeClassifier{}, robot.NewMock(), fastConfig())
	_, err := s.Scan360(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGraspPlanRoundTrip(t *testing.T) {
	result := &Result{
		ID:      "scan-1",
		Objects: []detect.Object{toyCar(92)},
	}

	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, SaveGraspPlan(path, result.GraspPlan()))

	plan, err := LoadGraspPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "scan-1", plan.ScanID)
	require.Len(t, plan.Objects, 1)
	assert.Equal(t, "small red toy car", plan.Objects[0].Description)
}

func TestHandleCommandScanFloor(t *testing.T) {
	classifier := &fakeClassifier{perCall: func(int) ([]detect.Object, error) {
		return []detect.Object{toyCar(92)}, nil
	}}
	s := New(&fakeSource{}, classifier, nil, fastConfig())

	reply, result, err := s.HandleCommand(context.Background(), voice.Command{
		Intent: voice.IntentScanFloor,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, reply, "He encontrado")
}

func TestHandleCommandScanFloorEscalatesWhenEmpty(t *testing.T) {
	classifier := &fakeClassifier{perCall: func(call int) ([]detect.Object, error) {
		// Nothing ahead; the sweep finds a car at position 3.
		if call == 4 {
			return []detect.Object{toyCar(92)}, nil
		}
		return nil, nil
	}}
	gait := robot.NewMock()
	s := New(&fakeSource{}, classifier, gait, fastConfig())

	reply, result, err := s.HandleCommand(context.Background(), voice.Command{
		Intent: voice.IntentScanFloor,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// One look ahead plus the eight sweep positions.
	assert.Equal(t, 9, classifier.calls)
	assert.Equal(t, 8, gait.CommandCount("TurnByAngle"))
	require.Len(t, result.Objects, 1)
	assert.Contains(t, reply, "He encontrado")
}

func TestHandleCommandStop(t *testing.T) {
	gait := robot.NewMock()
	s := New(&fakeSource{}, &fakeClassifier{}, gait, fastConfig())

	reply, result, err := s.HandleCommand(context.Background(), voice.Command{
		Intent: voice.IntentStop,
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NotEmpty(t, reply)
	assert.Equal(t, 1, gait.CommandCount("Stop"))
}

func TestHandleCommandUnknown(t *testing.T) {
	s := New(&fakeSource{}, &fakeClassifier{}, nil, fastConfig())

	reply, result, err := s.HandleCommand(context.Background(), voice.Command{
		Intent: voice.IntentUnknown,
	})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NotEmpty(t, reply)
}
