package speech

import "fmt"

// Default voice for TTS. A calm, clear voice suits the audience.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AvaNeural"

// Audio format returned by Azure and expected by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching the default format.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Env var names for Azure Speech credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// Prosody shapes how text is read. Rate and Pitch are multipliers of the
// voice default; Volume is 0..1.
type Prosody struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// SeniorProsody is deliberately slowed for older listeners.
var SeniorProsody = Prosody{Rate: 0.8, Pitch: 1.0, Volume: 1.0}

// Normalize clamps out-of-range values and fills zero fields from
// SeniorProsody.
func (p Prosody) Normalize() Prosody {
	if p.Rate <= 0 {
		p.Rate = SeniorProsody.Rate
	}
	if p.Pitch <= 0 {
		p.Pitch = SeniorProsody.Pitch
	}
	if p.Volume <= 0 || p.Volume > 1 {
		p.Volume = SeniorProsody.Volume
	}
	return p
}

// SSML attribute renderings. Azure takes rate as a multiplier, pitch as a
// signed relative percentage and volume as an absolute 0..100.
func (p Prosody) rateAttr() string   { return fmt.Sprintf("%.2f", p.Rate) }
func (p Prosody) pitchAttr() string  { return fmt.Sprintf("%+.0f%%", (p.Pitch-1)*100) }
func (p Prosody) volumeAttr() string { return fmt.Sprintf("%.0f", p.Volume*100) }

// String is used in cache keys and logs.
func (p Prosody) String() string {
	return fmt.Sprintf("rate=%s,pitch=%s,volume=%s", p.rateAttr(), p.pitchAttr(), p.volumeAttr())
}
