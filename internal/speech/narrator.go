package speech

import (
	"context"
	"log"
	"strings"
)

// Engine is a blocking text-to-speech backend.
type Engine interface {
	Voices(ctx context.Context) ([]Voice, error)
	SetVoice(id string) error
	// ResetVoice returns to the engine's default voice.
	ResetVoice()
	Say(ctx context.Context, text string) error
}

type Narrator struct {
	engine Engine
}

func NewNarrator(engine Engine) *Narrator {
	return &Narrator{engine: engine}
}

// Speak reads text aloud and blocks until the engine is done. Each call starts
// from the engine's default voice; a voice for languageHint replaces it when
// one matches. Only synthesis errors are returned.
func (n *Narrator) Speak(ctx context.Context, text, languageHint string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	n.engine.ResetVoice()

	voices, err := n.engine.Voices(ctx)
	if err != nil {
		log.Printf("speech: list voices: %v", err)
	} else if v, ok := SelectVoice(voices, languageHint); ok {
		if err := n.engine.SetVoice(v.ID); err != nil {
			log.Printf("speech: set voice %s: %v", v.ID, err)
		}
	} else {
		log.Printf("speech: no voice for %q, using default voice", languageHint)
	}

	return n.engine.Say(ctx, text)
}
