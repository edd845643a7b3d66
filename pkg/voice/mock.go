package voice

import (
	"context"
	"sync"
	"time"
)

// MockRecognizer serves queued utterances for tests.
type MockRecognizer struct {
	mu         sync.Mutex
	utterances []string

	// Err, when set, is returned by every Listen.
	Err error
}

// NewMockRecognizer creates a recognizer that will hear the given
// utterances in order, then ErrNoSpeech.
func NewMockRecognizer(utterances ...string) *MockRecognizer {
	return &MockRecognizer{utterances: utterances}
}

// Listen returns the next queued utterance.
func (m *MockRecognizer) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.utterances) == 0 {
		return "", ErrNoSpeech
	}

	text := m.utterances[0]
	m.utterances = m.utterances[1:]
	return text, nil
}

// Close implements Recognizer.
func (m *MockRecognizer) Close() error { return nil }

// MockSpeaker records spoken lines for tests.
type MockSpeaker struct {
	mu     sync.Mutex
	spoken []string

	// Err, when set, is returned by every Say.
	Err error
}

// NewMockSpeaker creates an empty speaker.
func NewMockSpeaker() *MockSpeaker {
	return &MockSpeaker{}
}

// Say records the text.
func (m *MockSpeaker) Say(ctx context.Context, text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, text)
	return nil
}

// Spoken returns all recorded lines.
func (m *MockSpeaker) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.spoken))
	copy(result, m.spoken)
	return result
}

// Close implements Speaker.
func (m *MockSpeaker) Close() error { return nil }

var (
	_ Recognizer = (*MockRecognizer)(nil)
	_ Speaker    = (*MockSpeaker)(nil)
)
