// Package audio holds the device-bound halves of speech: WAV playback
// through oto and push-to-talk recording through whisper. Both need cgo
// and system audio headers, so nothing outside cmd imports this package.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/healthmate/internal/logger"
	"github.com/hammamikhairi/healthmate/internal/speech"
)

// Compile-time interface check.
var _ speech.AudioOut = (*Player)(nil)

var (
	errShortWAV  = errors.New("wav data too short")
	errNotWAV    = errors.New("not a RIFF/WAVE file")
	errNoData    = errors.New("wav has no data chunk")
	errNoFormat  = errors.New("wav has no fmt chunk")
	errBadFormat = errors.New("unsupported wav format")
)

// pollInterval is how often Play checks whether oto has drained the buffer.
const pollInterval = 10 * time.Millisecond

// Player plays the synthesizer's WAV output on the default device. One
// clip plays at a time; Stop cuts the current one short.
type Player struct {
	ctx *oto.Context
	log *logger.Logger

	mu      sync.Mutex
	current *oto.Player
	stopped bool
}

// NewPlayer opens the device at the format Azure is asked to produce.
// It fails when no audio device is available.
func NewPlayer(log *logger.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   speech.SampleRate,
		ChannelCount: speech.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	log.Debug("audio: device ready (%d Hz, %d ch, %d bit)", speech.SampleRate, speech.ChannelCount, speech.BitDepth)
	return &Player{ctx: ctx, log: log}, nil
}

// Play decodes wav and blocks until it has played or Stop was called.
func (p *Player) Play(wav []byte) error {
	clip, err := decodeWAV(wav)
	if err != nil {
		return err
	}
	if err := clip.matches(speech.SampleRate, speech.ChannelCount, speech.BitDepth); err != nil {
		return err
	}

	op := p.ctx.NewPlayer(bytes.NewReader(clip.pcm))
	p.mu.Lock()
	p.current, p.stopped = op, false
	p.mu.Unlock()

	op.Play()
	p.log.Debug("audio: playing %s", clip.duration())

	for op.IsPlaying() {
		time.Sleep(pollInterval)
	}

	p.mu.Lock()
	stopped := p.stopped
	p.current = nil
	p.mu.Unlock()

	if stopped {
		p.log.Debug("audio: clip cut short")
	}
	return op.Close()
}

// Stop pauses the clip that is playing. It is a no-op when idle.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.stopped = true
		p.current.Pause()
	}
}

// clip is a decoded PCM WAV.
type clip struct {
	sampleRate int
	channels   int
	bitDepth   int
	pcm        []byte
}

func (c clip) matches(rate, channels, bits int) error {
	if c.sampleRate != rate || c.channels != channels || c.bitDepth != bits {
		return fmt.Errorf("%w: got %d Hz/%d ch/%d bit, want %d Hz/%d ch/%d bit",
			errBadFormat, c.sampleRate, c.channels, c.bitDepth, rate, channels, bits)
	}
	return nil
}

func (c clip) duration() time.Duration {
	frame := c.channels * c.bitDepth / 8
	if frame == 0 || c.sampleRate == 0 {
		return 0
	}
	frames := len(c.pcm) / frame
	return time.Duration(frames) * time.Second / time.Duration(c.sampleRate)
}

// decodeWAV walks the RIFF chunks, reading the fmt header and the data
// payload. Chunks are word-aligned, so odd sizes carry a pad byte.
func decodeWAV(wav []byte) (clip, error) {
	var c clip
	if len(wav) < 12 {
		return c, errShortWAV
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return c, errNotWAV
	}

	haveFormat := false
	for pos := 12; pos+8 <= len(wav); {
		id := string(wav[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		body := wav[pos+8 : min(pos+8+size, len(wav))]

		switch id {
		case "fmt ":
			if len(body) < 16 {
				return c, errNoFormat
			}
			c.channels = int(binary.LittleEndian.Uint16(body[2:4]))
			c.sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			c.bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFormat = true
		case "data":
			if !haveFormat {
				return c, errNoFormat
			}
			c.pcm = body
			return c, nil
		}

		pos += 8 + size + size%2
	}
	if !haveFormat {
		return c, errNoFormat
	}
	return c, errNoData
}
