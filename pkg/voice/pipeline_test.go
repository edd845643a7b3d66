package voice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/inference"
)

func parserWith(response string) *Parser {
	mock := inference.NewMock()
	mock.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		return &inference.ChatResponse{
			Message: inference.NewAssistantMessage(response),
		}, nil
	}
	return NewParser(mock)
}

func TestPipelineProcessCommand(t *testing.T) {
	recognizer := NewMockRecognizer("limpia el suelo")
	speaker := NewMockSpeaker()
	parser := parserWith(`{
		"action": "limpiar", "intent": "cleanup", "confidence": 92,
		"natural_response": "¡Voy a ello!"
	}`)

	p := NewPipeline(recognizer, speaker, parser, DefaultPipelineConfig())
	cmd, err := p.ProcessCommand(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IntentCleanup, cmd.Intent)
	assert.Equal(t, []string{"¡Voy a ello!"}, speaker.Spoken())

	history := p.History()
	require.Len(t, history, 1)
	assert.Equal(t, "limpia el suelo", history[0].Heard)
	assert.True(t, history[0].Answered)
	assert.NotEmpty(t, history[0].ID)
	assert.WithinDuration(t, time.Now(), history[0].Timestamp, time.Minute)
}

func TestPipelineStaysQuietOnLowConfidence(t *testing.T) {
	recognizer := NewMockRecognizer("mmm el partido de ayer")
	speaker := NewMockSpeaker()
	parser := parserWith(`{
		"intent": "unknown", "confidence": 20,
		"natural_response": "No estoy seguro de haber entendido."
	}`)

	p := NewPipeline(recognizer, speaker, parser, DefaultPipelineConfig())
	cmd, err := p.ProcessCommand(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IntentUnknown, cmd.Intent)
	assert.Empty(t, speaker.Spoken())

	history := p.History()
	require.Len(t, history, 1)
	assert.False(t, history[0].Answered)
}

func TestPipelineNoSpeech(t *testing.T) {
	p := NewPipeline(NewMockRecognizer(), NewMockSpeaker(),
		parserWith(`{}`), DefaultPipelineConfig())

	_, err := p.ProcessCommand(context.Background())
	assert.ErrorIs(t, err, ErrNoSpeech)
	assert.Empty(t, p.History())
}

func TestPipelineSpeakFailureStillRecorded(t *testing.T) {
	recognizer := NewMockRecognizer("hola")
	speaker := NewMockSpeaker()
	speaker.Err = assert.AnError
	parser := parserWith(`{
		"intent": "greet", "confidence": 90, "natural_response": "¡Hola!"
	}`)

	p := NewPipeline(recognizer, speaker, parser, DefaultPipelineConfig())
	cmd, err := p.ProcessCommand(context.Background())
	require.NoError(t, err)

	assert.Equal(t, IntentGreet, cmd.Intent)
	history := p.History()
	require.Len(t, history, 1)
	assert.False(t, history[0].Answered)
}
