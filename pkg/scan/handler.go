package scan

import (
	"context"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/voice"
)

// HandleCommand maps a parsed voice command onto a scanner operation and
// returns the Spanish reply to speak, plus the scan result when the
// command produced one.
func (s *Scanner) HandleCommand(ctx context.Context, cmd voice.Command) (string, *Result, error) {
	switch cmd.Intent {
	case voice.IntentScanFloor:
		result, err := s.CheckFloor(ctx)
		if err != nil {
			return "No he podido mirar el suelo, lo siento.", nil, err
		}
		// Nothing ahead: sweep the whole circle before declaring the
		// floor clean.
		if len(result.Objects) == 0 && s.gait != nil {
			full, err := s.Scan360(ctx)
			if err != nil {
				return "Delante no veo nada, pero no he podido mirar alrededor.", result, err
			}
			return full.SpanishReport(), full, nil
		}
		return result.SpanishReport(), result, nil

	case voice.IntentCleanup:
		result, err := s.Scan360(ctx)
		if err != nil {
			return "No he podido completar la vuelta, lo siento.", nil, err
		}
		return result.SpanishReport(), result, nil

	case voice.IntentStop:
		if s.gait != nil {
			if err := s.gait.Stop(); err != nil {
				return "No consigo pararme.", nil, err
			}
		}
		return "Vale, me quedo quieto.", nil, nil

	case voice.IntentGreet:
		return "¡Hola! Soy Kuko. Puedo buscar cosas en el suelo si me lo pides.", nil, nil

	case voice.IntentStatus:
		return "Estoy listo. Pídeme que mire el suelo o que dé una vuelta completa.", nil, nil

	default:
		return "No estoy seguro de haber entendido. Puedo mirar el suelo o dar una vuelta completa.", nil, nil
	}
}
