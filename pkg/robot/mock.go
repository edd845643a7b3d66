package robot

import (
	"context"
	"sync"
)

// Mock implements Controller for testing. It records every command so
// tests can assert on the movement sequence.
type Mock struct {
	mu       sync.Mutex
	commands []MockCommand

	// BatteryLevel is returned by Battery.
	BatteryLevel int

	// State is returned by DaemonState.
	State string

	// Err, when set, is returned by every command method.
	Err error
}

// MockCommand records one control call.
type MockCommand struct {
	Method    string
	Roll      float64
	Pitch     float64
	Yaw       float64
	Direction Direction
	Speed     int
	Degrees   float64
	Pace      Pace
	ActionID  int
}

// NewMock creates a mock controller with a full battery and idle daemon.
func NewMock() *Mock {
	return &Mock{
		BatteryLevel: 100,
		State:        "idle",
	}
}

func (m *Mock) SetAttitude(roll, pitch, yaw float64) error {
	m.record(MockCommand{Method: "SetAttitude", Roll: roll, Pitch: pitch, Yaw: yaw})
	return m.Err
}

func (m *Mock) ResetPose() error {
	m.record(MockCommand{Method: "ResetPose"})
	return m.Err
}

func (m *Mock) Move(direction Direction, speed int) error {
	m.record(MockCommand{Method: "Move", Direction: direction, Speed: speed})
	return m.Err
}

func (m *Mock) Turn(speed int) error {
	m.record(MockCommand{Method: "Turn", Speed: speed})
	return m.Err
}

func (m *Mock) TurnByAngle(ctx context.Context, direction string, degrees float64) error {
	m.record(MockCommand{Method: "TurnByAngle", Direction: Direction(direction), Degrees: degrees})
	return m.Err
}

func (m *Mock) Stop() error {
	m.record(MockCommand{Method: "Stop"})
	return m.Err
}

func (m *Mock) SetPace(pace Pace) error {
	m.record(MockCommand{Method: "SetPace", Pace: pace})
	return m.Err
}

func (m *Mock) PerformAction(id int) error {
	m.record(MockCommand{Method: "PerformAction", ActionID: id})
	return m.Err
}

func (m *Mock) Battery() (int, error) {
	return m.BatteryLevel, m.Err
}

func (m *Mock) DaemonState() (string, error) {
	return m.State, m.Err
}

func (m *Mock) record(cmd MockCommand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmd)
}

// Commands returns all recorded commands.
func (m *Mock) Commands() []MockCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCommand, len(m.commands))
	copy(result, m.commands)
	return result
}

// CommandCount returns how many times a method was called.
func (m *Mock) CommandCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.commands {
		if c.Method == method {
			count++
		}
	}
	return count
}

// LastCommand returns the most recent command, or false if none.
func (m *Mock) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.commands) == 0 {
		return MockCommand{}, false
	}
	return m.commands[len(m.commands)-1], true
}

// Reset clears all recorded commands.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = nil
}

// Ensure Mock implements Controller
var _ Controller = (*Mock)(nil)
