package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/inference"
)

// Known command intents.
const (
	IntentScanFloor = "scan_floor"
	IntentCleanup   = "cleanup"
	IntentTrack     = "track"
	IntentStop      = "stop"
	IntentStatus    = "status"
	IntentGreet     = "greet"
	IntentUnknown   = "unknown"
)

// Command is a parsed voice command.
type Command struct {
	// Action is the verb the user asked for ("busca", "limpia").
	Action string `json:"action"`

	// Location is where, if mentioned ("el salón", "aquí").
	Location string `json:"location"`

	// Object is what, if mentioned ("juguetes", "la pelota roja").
	Object string `json:"object"`

	// Intent maps the request onto a robot capability.
	Intent string `json:"intent"`

	// Confidence is the parser's certainty, 0-100.
	Confidence float64 `json:"confidence"`

	// NaturalResponse is what the robot should say back, always in
	// Spanish regardless of the language spoken.
	NaturalResponse string `json:"natural_response"`
}

// Parser interprets utterances as structured commands.
type Parser struct {
	provider inference.Provider
}

// NewParser creates a command parser on an inference provider.
func NewParser(provider inference.Provider) *Parser {
	return &Parser{provider: provider}
}

// Parse interprets one utterance.
func (p *Parser) Parse(ctx context.Context, utterance string) (Command, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Command{}, ErrNoSpeech
	}

	resp, err := p.provider.Chat(ctx, &inference.ChatRequest{
		System:   parseSystem,
		Messages: []inference.Message{inference.NewUserMessage(utterance)},
		JSONOnly: true,
	})
	if err != nil {
		return Command{}, fmt.Errorf("voice: parse request failed: %w", err)
	}

	var cmd Command
	text := inference.ExtractJSON(resp.Message.Content)
	if err := json.Unmarshal([]byte(text), &cmd); err != nil {
		return Command{}, fmt.Errorf("voice: bad parse response: %w", err)
	}

	if !validIntent(cmd.Intent) {
		cmd.Intent = IntentUnknown
	}

	return cmd, nil
}

func validIntent(intent string) bool {
	switch intent {
	case IntentScanFloor, IntentCleanup, IntentTrack, IntentStop,
		IntentStatus, IntentGreet, IntentUnknown:
		return true
	}
	return false
}

const parseSystem = `Eres el módulo de comprensión de voz de Kuko, un pequeño robot cuadrúpedo que ayuda a ordenar el suelo de una casa. Recibes una frase dicha por el usuario, en español o en inglés.

Responde SOLO con JSON con esta forma exacta:
{"action": "...", "location": "...", "object": "...", "intent": "...", "confidence": 0, "natural_response": "..."}

- intent debe ser uno de: "scan_floor", "cleanup", "track", "stop", "status", "greet", "unknown".
- confidence es tu certeza de 0 a 100. Usa menos de 50 si la frase no parece dirigida al robot.
- natural_response es la respuesta hablada de Kuko, SIEMPRE en español, corta y amable.
- action, location y object se dejan vacíos si no se mencionan.`
