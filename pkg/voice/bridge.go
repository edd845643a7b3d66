package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// bridgeClient allows generous timeouts since Listen blocks for the
// whole utterance.
var bridgeClient = &http.Client{
	Timeout: 30 * time.Second,
}

// HTTPRecognizer captures speech through the audio daemon's HTTP API.
type HTTPRecognizer struct {
	BaseURL string
}

// NewHTTPRecognizer creates a recognizer against the audio daemon.
// addr is the daemon's host:port.
func NewHTTPRecognizer(addr string) *HTTPRecognizer {
	return &HTTPRecognizer{BaseURL: fmt.Sprintf("http://%s", addr)}
}

// Listen asks the daemon to capture one utterance.
func (r *HTTPRecognizer) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"timeout_ms": timeout.Milliseconds(),
	})
	if err != nil {
		return "", fmt.Errorf("voice: marshal listen request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		r.BaseURL+"/api/listen", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("voice: build listen request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := bridgeClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("voice: listen request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("voice: daemon returned status %d", resp.StatusCode)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("voice: decode listen response: %w", err)
	}

	if result.Text == "" {
		return "", ErrNoSpeech
	}

	return result.Text, nil
}

// Close implements Recognizer. The daemon owns the microphone, so
// there is nothing to release here.
func (r *HTTPRecognizer) Close() error {
	return nil
}

// HTTPSpeaker speaks through the audio daemon's HTTP API.
type HTTPSpeaker struct {
	BaseURL string
}

// NewHTTPSpeaker creates a speaker against the audio daemon.
func NewHTTPSpeaker(addr string) *HTTPSpeaker {
	return &HTTPSpeaker{BaseURL: fmt.Sprintf("http://%s", addr)}
}

// Say asks the daemon to speak the text and waits for playback.
func (s *HTTPSpeaker) Say(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("voice: marshal say request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		s.BaseURL+"/api/say", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("voice: build say request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := bridgeClient.Do(req)
	if err != nil {
		return fmt.Errorf("voice: say request failed: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("voice: daemon returned status %d", resp.StatusCode)
	}

	return nil
}

// Close implements Speaker.
func (s *HTTPSpeaker) Close() error {
	return nil
}

var (
	_ Recognizer = (*HTTPRecognizer)(nil)
	_ Speaker    = (*HTTPSpeaker)(nil)
)
