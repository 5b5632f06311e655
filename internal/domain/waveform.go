package domain

import (
	"encoding/binary"
	"time"
)

// Waveform is a mono 16-bit PCM recording.
type Waveform struct {
	Samples    []int16
	SampleRate int
}

func (w Waveform) Empty() bool {
	return len(w.Samples) == 0
}

func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// PCM16LE returns the samples as little-endian bytes.
func (w Waveform) PCM16LE() []byte {
	out := make([]byte, len(w.Samples)*2)
	for i, s := range w.Samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// Float32 returns the samples normalized to [-1, 1].
func (w Waveform) Float32() []float32 {
	out := make([]float32, len(w.Samples))
	for i, s := range w.Samples {
		out[i] = float32(s) / 32768
	}
	return out
}
