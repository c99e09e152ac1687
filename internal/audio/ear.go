package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// Compile-time interface check.
var _ domain.Listener = (*Ear)(nil)

// envAnnotation matches whisper annotations like "(keyboard clicking)" or
// "[laughter]".
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z_\s]*[\)\]]`)

// EarOption configures the Ear.
type EarOption func(*Ear)

// WithRecordDuration sets how long one voice session records.
func WithRecordDuration(d time.Duration) EarOption {
	return func(e *Ear) {
		if d > 0 {
			e.recordDuration = d
		}
	}
}

// WithTempDir sets the directory whisper records into. Empty keeps the
// default under the system temp dir.
func WithTempDir(dir string) EarOption {
	return func(e *Ear) {
		if dir != "" {
			e.tempDir = dir
		}
	}
}

// Ear is push-to-talk speech input backed by a local Whisper model. Each
// Listen call is one session: record, transcribe, return the transcript.
// Starting a session cancels any session still in flight.
type Ear struct {
	whisperBin     string
	modelPath      string
	tempDir        string
	recordDuration time.Duration
	log            *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewEar validates the whisper binary and model and returns an Ear. When
// either is missing it returns an error wrapping domain.ErrVoiceUnavailable.
func NewEar(whisperBin, modelPath string, log *logger.Logger, opts ...EarOption) (*Ear, error) {
	if _, err := exec.LookPath(whisperBin); err != nil {
		return nil, fmt.Errorf("%w: whisper binary %q: %v", domain.ErrVoiceUnavailable, whisperBin, err)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: whisper model %q: %v", domain.ErrVoiceUnavailable, modelPath, err)
	}

	e := &Ear{
		whisperBin:     whisperBin,
		modelPath:      modelPath,
		tempDir:        filepath.Join(os.TempDir(), "healthmate-stt"),
		recordDuration: 5 * time.Second,
		log:            log,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: temp dir: %v", domain.ErrVoiceUnavailable, err)
	}
	return e, nil
}

// Listen records one session and returns the cleaned transcript.
func (e *Ear) Listen(ctx context.Context) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel() // a newer session supersedes the old one
	}
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	e.log.Info("ear: listening for %s", e.recordDuration)
	text, err := e.record(ctx)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	text = cleanTranscription(text)
	if text == "" {
		e.log.Debug("ear: session ended with no words")
		return "", domain.ErrNothingHeard
	}
	e.log.Info("ear: heard %q", text)
	return text, nil
}

// record runs one whisper recording cycle. Cancellation stops the
// recording early and discards it.
func (e *Ear) record(ctx context.Context) (string, error) {
	var result string
	var wg sync.WaitGroup
	wg.Add(1)

	callback := func(text string) {
		result = text
		wg.Done()
	}

	verbose := e.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(
		e.whisperBin,
		e.modelPath,
		e.tempDir,
		"wav",
		callback,
		verbose,
	)
	if err != nil {
		return "", fmt.Errorf("transcriber init: %w", err)
	}
	if err := t.Start(); err != nil {
		return "", fmt.Errorf("recording start: %w", err)
	}

	select {
	case <-time.After(e.recordDuration):
	case <-ctx.Done():
	}

	t.Stop()
	wg.Wait()
	return result, nil
}

// junkPatterns are whisper artifacts stripped from anywhere in the text.
var junkPatterns = []string{
	"[BLANK_AUDIO]",
	"[BLANK AUDIO]",
	"(silence)",
	"[silence]",
	"(no speech)",
	"[no speech]",
	"[Music]",
	"(music)",
	"(inaudible)",
	"(unintelligible)",
}

// hallucinations are whole-utterance outputs whisper produces from noise.
var hallucinations = []string{
	"...",
	"you",
	"thank you.",
	"thanks for watching!",
	"thank you for watching.",
	"bye.",
	"the end.",
}

// cleanTranscription normalizes whitespace and removes whisper artifacts,
// annotations, timestamps and known hallucinations.
func cleanTranscription(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	// Timestamp prefix like "[00:00:00.000 --> 00:00:05.000]".
	if strings.HasPrefix(s, "[") {
		if idx := strings.Index(s, "]"); idx != -1 && idx < 40 && strings.Contains(s[:idx], "-->") {
			s = strings.TrimSpace(s[idx+1:])
		}
	}

	for _, j := range junkPatterns {
		s = strings.ReplaceAll(s, j, "")
		s = strings.ReplaceAll(s, strings.ToLower(j), "")
	}
	s = envAnnotation.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	lower := strings.ToLower(s)
	for _, h := range hallucinations {
		if lower == h {
			return ""
		}
	}
	return s
}
