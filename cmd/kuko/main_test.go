package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/robot"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/store"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/voice"
)

type stubSource struct{}

func (stubSource) CaptureJPEG() ([]byte, error) {
	return []byte{0xff, 0xd8, 0x01}, nil
}

type stubClassifier struct {
	calls   int
	perCall func(call int) []detect.Object
}

func (c *stubClassifier) Classify(ctx context.Context, jpeg []byte, imageHeight int) ([]detect.Object, error) {
	c.calls++
	return c.perCall(c.calls), nil
}

type spokenLog struct {
	lines []string
}

func (s *spokenLog) Say(_ context.Context, text string) error {
	s.lines = append(s.lines, text)
	return nil
}

func newTestApp(t *testing.T, classifier *stubClassifier, gait *robot.Mock) (*app, *spokenLog) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := scan.DefaultConfig()
	cfg.SettleDelay = 0
	cfg.ImageHeight = 1080

	spoken := &spokenLog{}
	return &app{
		scanner:  scan.New(stubSource{}, classifier, gait, cfg),
		speaker:  spoken,
		ctrl:     gait,
		store:    st,
		planPath: filepath.Join(t.TempDir(), "plan.json"),
	}, spoken
}

func TestHandleScanFloorEscalatesToFullSweep(t *testing.T) {
	classifier := &stubClassifier{perCall: func(call int) []detect.Object {
		// Nothing ahead; the sweep spots a car at its third heading.
		if call == 4 {
			return []detect.Object{{
				ID:          "car-1",
				Category:    detect.CategoryToy,
				Description: "small red toy car",
				Confidence:  92,
				Box:         detect.NewBox(300, 160, 580, 340),
			}}
		}
		return nil
	}}
	gait := robot.NewMock()
	a, spoken := newTestApp(t, classifier, gait)

	a.handle(context.Background(), voice.Command{Intent: voice.IntentScanFloor})

	// One look ahead plus the eight sweep positions.
	assert.Equal(t, 9, classifier.calls)
	assert.Equal(t, 8, gait.CommandCount("TurnByAngle"))

	require.Len(t, spoken.lines, 1)
	assert.Contains(t, spoken.lines[0], "He encontrado")

	// The sweep result landed in history and on disk.
	scans, err := a.store.Scans().List(10)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, 1, scans[0].Objects)

	_, err = os.Stat(a.planPath)
	assert.NoError(t, err)
}

func TestHandleCleanupRunsFullSweep(t *testing.T) {
	classifier := &stubClassifier{perCall: func(int) []detect.Object { return nil }}
	gait := robot.NewMock()
	a, spoken := newTestApp(t, classifier, gait)

	a.handle(context.Background(), voice.Command{Intent: voice.IntentCleanup})

	assert.Equal(t, 8, classifier.calls)
	assert.Equal(t, 8, gait.CommandCount("TurnByAngle"))
	require.Len(t, spoken.lines, 1)
	assert.Contains(t, spoken.lines[0], "limpio")
}

func TestHandleStopHaltsTheRobot(t *testing.T) {
	gait := robot.NewMock()
	a, spoken := newTestApp(t, &stubClassifier{}, gait)

	a.handle(context.Background(), voice.Command{Intent: voice.IntentStop})

	assert.Equal(t, 1, gait.CommandCount("Stop"))
	require.Len(t, spoken.lines, 1)
	assert.NotEmpty(t, spoken.lines[0])
}

func TestHandleStatusReportsBattery(t *testing.T) {
	gait := robot.NewMock()
	gait.BatteryLevel = 73
	a, spoken := newTestApp(t, &stubClassifier{}, gait)

	a.handle(context.Background(), voice.Command{Intent: voice.IntentStatus})

	require.Len(t, spoken.lines, 1)
	assert.Contains(t, spoken.lines[0], "73")
}
