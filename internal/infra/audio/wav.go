package audio

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"

	"voice-assistant/internal/domain"
)

const (
	bitDepth          = 16
	pcmFormat         = 1
	monoChannels      = 1
	defaultSampleRate = 16000
)

// WriteWAV encodes w as a 16-bit mono PCM WAV stream.
func WriteWAV(out io.WriteSeeker, w domain.Waveform) error {
	sampleRate := w.SampleRate
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}

	data := make([]int, len(w.Samples))
	for i, s := range w.Samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(out, sampleRate, bitDepth, monoChannels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}
	return nil
}

// EncodeWAV returns w as an in-memory WAV file.
func EncodeWAV(w domain.Waveform) ([]byte, error) {
	f, err := afero.NewMemMapFs().Create("clip.wav")
	if err != nil {
		return nil, fmt.Errorf("creating buffer: %w", err)
	}
	defer f.Close()

	if err := WriteWAV(f, w); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding buffer: %w", err)
	}
	return io.ReadAll(f)
}

// DecodeWAV reads a PCM WAV stream, keeping the first channel and scaling
// samples to 16 bits.
func DecodeWAV(r io.ReadSeeker) (domain.Waveform, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return domain.Waveform{}, errors.New("invalid wav")
	}

	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return domain.Waveform{}, fmt.Errorf("reading pcm: %w", err)
	}
	if pb == nil || len(pb.Data) == 0 {
		return domain.Waveform{SampleRate: int(dec.SampleRate)}, nil
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}

	samples := make([]int16, 0, len(pb.Data)/channels)
	for i := 0; i < len(pb.Data); i += channels {
		samples = append(samples, scaleTo16(pb.Data[i], int(dec.BitDepth)))
	}

	return domain.Waveform{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
	}, nil
}

func scaleTo16(v int, depth int) int16 {
	switch depth {
	case 8:
		return int16((v - 128) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	default:
		return int16(v)
	}
}
