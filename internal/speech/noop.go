// Package speech turns text into speech: the Azure synthesizer, the audio
// cache, the playback queue and every line HealthMate says. Device access
// lives in internal/audio, so this package builds without cgo.
package speech

import (
	"context"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*NoOp)(nil)

// NoOp is the speaker used when text-to-speech is unavailable. Missing TTS
// is not an error worth showing, so it just logs.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent speaker.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Speak does nothing.
func (n *NoOp) Speak(ctx context.Context, text string) error {
	n.log.Debug("speech no-op: would say %q", truncate(text, 60))
	return nil
}
