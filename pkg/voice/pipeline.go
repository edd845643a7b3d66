package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PipelineConfig tunes the listen-parse-speak loop.
type PipelineConfig struct {
	// ListenTimeout bounds how long one Listen waits for speech.
	ListenTimeout time.Duration

	// MinConfidence is the parse confidence below which the robot
	// stays quiet instead of answering a phrase that probably was
	// not meant for it.
	MinConfidence float64

	// Logger receives pipeline events.
	Logger *slog.Logger
}

// DefaultPipelineConfig returns the standard pipeline settings.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ListenTimeout: 5 * time.Second,
		MinConfidence: 50,
		Logger:        slog.Default(),
	}
}

// Exchange records one completed voice interaction.
type Exchange struct {
	ID        string
	Heard     string
	Command   Command
	Answered  bool
	Timestamp time.Time
}

// Pipeline runs the listen-parse-speak loop.
type Pipeline struct {
	recognizer Recognizer
	speaker    Speaker
	parser     *Parser
	config     PipelineConfig
	logger     *slog.Logger

	mu      sync.Mutex
	history []Exchange
}

// NewPipeline assembles a voice pipeline.
func NewPipeline(recognizer Recognizer, speaker Speaker, parser *Parser, config PipelineConfig) *Pipeline {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		recognizer: recognizer,
		speaker:    speaker,
		parser:     parser,
		config:     config,
		logger:     logger.With("component", "voice"),
	}
}

// ProcessCommand listens for one utterance, parses it, and speaks the
// robot's answer. It returns the parsed command so the caller can act
// on its intent. A quiet room returns ErrNoSpeech.
func (p *Pipeline) ProcessCommand(ctx context.Context) (Command, error) {
	heard, err := p.recognizer.Listen(ctx, p.config.ListenTimeout)
	if err != nil {
		if errors.Is(err, ErrNoSpeech) {
			return Command{}, err
		}
		return Command{}, fmt.Errorf("voice: listen failed: %w", err)
	}

	p.logger.Info("heard utterance", "text", heard)

	cmd, err := p.parser.Parse(ctx, heard)
	if err != nil {
		return Command{}, err
	}

	answered := false
	if cmd.Confidence > p.config.MinConfidence && cmd.NaturalResponse != "" {
		if err := p.speaker.Say(ctx, cmd.NaturalResponse); err != nil {
			p.logger.Warn("speak failed", "error", err)
		} else {
			answered = true
		}
	} else {
		p.logger.Debug("staying quiet",
			"confidence", cmd.Confidence, "intent", cmd.Intent)
	}

	p.record(Exchange{
		ID:        uuid.NewString(),
		Heard:     heard,
		Command:   cmd,
		Answered:  answered,
		Timestamp: time.Now(),
	})

	return cmd, nil
}

// Say speaks text outside the command loop, for announcements such as
// scan reports.
func (p *Pipeline) Say(ctx context.Context, text string) error {
	return p.speaker.Say(ctx, text)
}

// History returns all exchanges so far, oldest first.
func (p *Pipeline) History() []Exchange {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]Exchange, len(p.history))
	copy(result, p.history)
	return result
}

// Close releases the audio endpoints.
func (p *Pipeline) Close() error {
	err := p.recognizer.Close()
	if serr := p.speaker.Close(); err == nil {
		err = serr
	}
	return err
}

func (p *Pipeline) record(e Exchange) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, e)
}
