package tracking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type fakeSource struct{}

func (fakeSource) ReadMat() (gocv.Mat, error) {
	return gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3), nil
}

type fakeDetector struct {
	mu    sync.Mutex
	blob  Blob
	found bool
}

func (d *fakeDetector) set(blob Blob, found bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blob, d.found = blob, found
}

func (d *fakeDetector) Detect(gocv.Mat) (Blob, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blob, d.found
}

type attitudeRecorder struct {
	mu     sync.Mutex
	poses  [][3]float64
	resets int
}

func (r *attitudeRecorder) SetAttitude(roll, pitch, yaw float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses = append(r.poses, [3]float64{roll, pitch, yaw})
	return nil
}

func (r *attitudeRecorder) ResetPose() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
	return nil
}

func (r *attitudeRecorder) lastPose() ([3]float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.poses) == 0 {
		return [3]float64{}, false
	}
	return r.poses[len(r.poses)-1], true
}

func (r *attitudeRecorder) resetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resets
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.LoopInterval = time.Millisecond
	cfg.LostFrames = 3
	return cfg
}

func TestTrackerSteersTowardTarget(t *testing.T) {
	robot := &attitudeRecorder{}
	detector := &fakeDetector{}
	detector.set(Blob{CenterX: 220, CenterY: 120, Area: 500}, true)

	tracker := New(fastConfig(), robot, fakeSource{}, detector)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	tracker.Run(ctx)

	pose, ok := robot.lastPose()
	require.True(t, ok, "tracker should have issued attitude commands")

	// Blob right of center: yaw command turns right (positive after
	// the sign flip), pitch stays at zero since y is centered.
	assert.Greater(t, pose[2], 0.0)
	assert.InDelta(t, 0.0, pose[1], 1e-6)

	blob, has := tracker.LastBlob()
	assert.True(t, has)
	assert.Equal(t, 220.0, blob.CenterX)
}

func TestTrackerResetsWhenTargetLost(t *testing.T) {
	robot := &attitudeRecorder{}
	detector := &fakeDetector{}
	detector.set(Blob{}, false)

	tracker := New(fastConfig(), robot, fakeSource{}, detector)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	tracker.Run(ctx)

	// One reset at LostFrames misses, one on shutdown.
	assert.GreaterOrEqual(t, robot.resetCount(), 2)

	_, has := tracker.LastBlob()
	assert.False(t, has)
}

func TestTrackerResetsPoseOnExit(t *testing.T) {
	robot := &attitudeRecorder{}
	detector := &fakeDetector{}
	detector.set(Blob{CenterX: 160, CenterY: 120}, true)

	tracker := New(fastConfig(), robot, fakeSource{}, detector)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := tracker.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, tracker.IsRunning())
	assert.GreaterOrEqual(t, robot.resetCount(), 1)
}
