package audio

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id string, body []byte) []byte {
	out := append([]byte(id), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

func fmtChunk(rate, channels, bits int) []byte {
	body := make([]byte, 16)
	binary.LittleEndian.PutUint16(body[0:2], 1) // PCM
	binary.LittleEndian.PutUint16(body[2:4], uint16(channels))
	binary.LittleEndian.PutUint32(body[4:8], uint32(rate))
	binary.LittleEndian.PutUint32(body[8:12], uint32(rate*channels*bits/8))
	binary.LittleEndian.PutUint16(body[12:14], uint16(channels*bits/8))
	binary.LittleEndian.PutUint16(body[14:16], uint16(bits))
	return chunk("fmt ", body)
}

func riff(chunks ...[]byte) []byte {
	body := []byte("WAVE")
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := append([]byte("RIFF"), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func TestDecodeWAV(t *testing.T) {
	pcm := make([]byte, 48000) // one second of 24 kHz mono 16 bit

	c, err := decodeWAV(riff(fmtChunk(24000, 1, 16), chunk("data", pcm)))
	require.NoError(t, err)
	assert.Equal(t, pcm, c.pcm)
	assert.Equal(t, time.Second, c.duration())
	assert.NoError(t, c.matches(24000, 1, 16))

	// Odd-sized chunks are padded to a word boundary.
	c, err = decodeWAV(riff(fmtChunk(24000, 1, 16), chunk("LIST", []byte{9, 9, 9}), chunk("data", pcm[:8])))
	require.NoError(t, err)
	assert.Equal(t, pcm[:8], c.pcm)
}

func TestDecodeWAVErrors(t *testing.T) {
	tests := []struct {
		name string
		wav  []byte
		want error
	}{
		{"short", []byte("RIFF"), errShortWAV},
		{"not wave", append([]byte("RIFF\x00\x00\x00\x00AVI "), chunk("data", []byte{1, 2})...), errNotWAV},
		{"data before fmt", riff(chunk("data", []byte{1, 2})), errNoFormat},
		{"no data", riff(fmtChunk(24000, 1, 16)), errNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeWAV(tt.wav)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClipFormatMismatch(t *testing.T) {
	c, err := decodeWAV(riff(fmtChunk(16000, 2, 16), chunk("data", []byte{1, 2, 3, 4})))
	require.NoError(t, err)
	assert.ErrorIs(t, c.matches(24000, 1, 16), errBadFormat)
}
