// Package voice handles spoken interaction with the robot: capturing
// speech, interpreting it as a structured command, and replying out
// loud.
//
// Speech capture and synthesis run on the vendor's audio daemon and
// are reached over its HTTP API. Command interpretation runs on a
// multimodal model through pkg/inference.
package voice

import (
	"context"
	"errors"
	"time"
)

// ErrNoSpeech is returned when nothing was heard before the listen
// timeout.
var ErrNoSpeech = errors.New("voice: no speech detected")

// Recognizer captures one utterance of speech as text.
type Recognizer interface {
	// Listen blocks until an utterance is heard or the timeout
	// expires, returning the transcribed text.
	Listen(ctx context.Context, timeout time.Duration) (string, error)

	// Close releases capture resources.
	Close() error
}

// Speaker speaks text out loud.
type Speaker interface {
	// Say speaks the text, blocking until playback finishes.
	Say(ctx context.Context, text string) error

	// Close releases playback resources.
	Close() error
}
