package speech

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*Mouth)(nil)

// Synthesizer turns text into WAV audio. CacheKey scopes cached audio to
// the voice settings that produced it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	CacheKey() string
}

// AudioOut plays WAV audio. Play blocks; Stop interrupts it.
type AudioOut interface {
	Play(wav []byte) error
	Stop()
}

// MouthOption configures the Mouth.
type MouthOption func(*Mouth)

// WithChunkSize sets the approximate max characters per TTS request. Longer
// text is split at sentence boundaries and synthesized in parallel.
func WithChunkSize(n int) MouthOption {
	return func(m *Mouth) { m.chunkSize = n }
}

// WithCacheDir sets the on-disk audio cache directory. Empty disables it.
func WithCacheDir(dir string) MouthOption {
	return func(m *Mouth) { m.cacheDir = dir }
}

// WithDiskWrite controls whether new cache entries are written to disk.
func WithDiskWrite(enabled bool) MouthOption {
	return func(m *Mouth) { m.diskWrite = enabled }
}

// Mouth serializes speech output: queue, chunk, synthesize in parallel,
// play in order. Only one utterance plays at a time. Speak never blocks.
type Mouth struct {
	tts    Synthesizer
	out    AudioOut
	log    *logger.Logger
	cache  *AudioCache
	notify chan struct{}

	chunkSize int
	cacheDir  string
	diskWrite bool

	mu          sync.Mutex
	queue       []string
	speaking    bool
	interrupted bool
	wg          sync.WaitGroup
}

// NewMouth creates a speech dispatcher. Call Start before Speak.
func NewMouth(tts Synthesizer, out AudioOut, log *logger.Logger, opts ...MouthOption) *Mouth {
	m := &Mouth{
		tts:       tts,
		out:       out,
		log:       log,
		notify:    make(chan struct{}, 1),
		chunkSize: 200,
		diskWrite: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = NewAudioCache(tts.CacheKey(), m.cacheDir, m.diskWrite, log)
	return m
}

// Start launches the playback goroutine. It exits when ctx is cancelled;
// Wait blocks until it has.
func (m *Mouth) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.processLoop(ctx)
	}()
	m.log.Info("mouth started")
}

// Wait blocks until the playback goroutine has exited.
func (m *Mouth) Wait() { m.wg.Wait() }

// Speak queues text to be read aloud and returns immediately.
func (m *Mouth) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	m.mu.Lock()
	m.queue = append(m.queue, text)
	qLen := len(m.queue)
	m.mu.Unlock()

	m.log.Debug("mouth: queued (queue_len=%d): %s", qLen, truncate(text, 60))

	select {
	case m.notify <- struct{}{}:
	default: // already signaled
	}
	return nil
}

// Interrupt drops everything queued and stops the current playback.
func (m *Mouth) Interrupt() {
	m.mu.Lock()
	m.queue = m.queue[:0]
	m.interrupted = true
	m.mu.Unlock()

	m.out.Stop()
	m.log.Debug("mouth: interrupted")
}

// IsSpeaking reports whether audio is being synthesized or played.
func (m *Mouth) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking
}

// QueueLen returns the number of pending utterances.
func (m *Mouth) QueueLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Cache exposes the audio cache for stats.
func (m *Mouth) Cache() *AudioCache { return m.cache }

func (m *Mouth) processLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.log.Info("mouth stopped")
			return
		case <-m.notify:
			m.drain(ctx)
		}
	}
}

func (m *Mouth) drain(ctx context.Context) {
	for ctx.Err() == nil {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		text := m.queue[0]
		m.queue = m.queue[1:]
		m.interrupted = false
		m.speaking = true
		m.mu.Unlock()

		m.process(ctx, text)

		m.mu.Lock()
		m.speaking = false
		m.mu.Unlock()
	}
}

// process synthesizes all chunks of text in parallel and plays them in
// order, bailing out between chunks when interrupted.
func (m *Mouth) process(ctx context.Context, text string) {
	chunks := m.splitChunks(text)

	audio := make([][]byte, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := m.synthesizeWithCache(ctx, chunk)
			if err != nil {
				m.log.Error("mouth: chunk %d synthesis failed: %v", i, err)
				return
			}
			audio[i] = data
		}()
	}
	wg.Wait()

	for i, data := range audio {
		if data == nil {
			continue
		}
		if ctx.Err() != nil || m.wasInterrupted() {
			m.log.Debug("mouth: aborting playback at chunk %d", i)
			return
		}
		if err := m.out.Play(data); err != nil {
			m.log.Error("mouth: chunk %d playback failed: %v", i, err)
		}
	}
}

func (m *Mouth) wasInterrupted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interrupted
}

func (m *Mouth) synthesizeWithCache(ctx context.Context, text string) ([]byte, error) {
	if audio, ok := m.cache.Get(text); ok {
		return audio, nil
	}
	audio, err := m.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	m.cache.Put(text, audio)
	return audio, nil
}

// splitChunks breaks text into sentence-boundary chunks of roughly
// chunkSize characters. Short text comes back as a single chunk.
func (m *Mouth) splitChunks(text string) []string {
	if m.chunkSize <= 0 || len(text) <= m.chunkSize {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, s := range splitSentences(text) {
		if current.Len() > 0 && current.Len()+len(s) > m.chunkSize {
			flush()
		}
		current.WriteString(s)
	}
	flush()
	return chunks
}

// splitSentences splits at . ! ? keeping the punctuation and trailing
// whitespace with the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
				current.WriteRune(runes[i])
			}
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

// truncate shortens a string for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
