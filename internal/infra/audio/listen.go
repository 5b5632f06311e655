package audio

import (
	"context"
	"math"
	"time"

	"voice-assistant/internal/domain"
)

// ListenConfig controls ambient-noise calibration and phrase segmentation.
type ListenConfig struct {
	SampleRate  int
	FrameSize   int
	Calibration time.Duration
	// Timeout bounds the wait for speech to start.
	Timeout time.Duration
	// PhraseLimit bounds the recording once speech started.
	PhraseLimit time.Duration
	// Pause ends the phrase after this much silence.
	Pause time.Duration
	// EnergyRatio multiplies the ambient energy to get the speech threshold.
	EnergyRatio float64
	MinEnergy   float64
}

func DefaultListenConfig() ListenConfig {
	return ListenConfig{
		SampleRate:  16000,
		FrameSize:   1024,
		Calibration: time.Second,
		Timeout:     5 * time.Second,
		PhraseLimit: 5 * time.Second,
		Pause:       800 * time.Millisecond,
		EnergyRatio: 1.5,
		MinEnergy:   300,
	}
}

func (c ListenConfig) frames(d time.Duration) int {
	samples := int(int64(d) * int64(c.SampleRate) / int64(time.Second))
	n := (samples + c.FrameSize - 1) / c.FrameSize
	if n < 1 {
		return 1
	}
	return n
}

// frameReader returns the next frame of samples. The slice must not be reused
// by the reader.
type frameReader func() ([]int16, error)

func frameRMS(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// calibrate measures ambient energy and returns the speech threshold.
func calibrate(ctx context.Context, read frameReader, cfg ListenConfig) (float64, error) {
	n := cfg.frames(cfg.Calibration)
	var total float64
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		frame, err := read()
		if err != nil {
			return 0, err
		}
		total += frameRMS(frame)
	}
	return math.Max(total/float64(n)*cfg.EnergyRatio, cfg.MinEnergy), nil
}

// recordPhrase waits for a frame above threshold and records until a pause or
// the phrase limit. Frames heard just before speech started are kept.
func recordPhrase(ctx context.Context, read frameReader, threshold float64, cfg ListenConfig) (domain.Waveform, error) {
	waitFrames := cfg.frames(cfg.Timeout)
	prerollFrames := cfg.frames(300 * time.Millisecond)

	var (
		preroll [][]int16
		first   []int16
	)
	for i := 0; i < waitFrames; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Waveform{}, err
		}
		frame, err := read()
		if err != nil {
			return domain.Waveform{}, err
		}
		if frameRMS(frame) > threshold {
			first = frame
			break
		}
		preroll = append(preroll, frame)
		if len(preroll) > prerollFrames {
			preroll = preroll[1:]
		}
	}
	if first == nil {
		return domain.Waveform{}, domain.ErrCaptureTimeout
	}

	samples := make([]int16, 0, cfg.SampleRate*int(cfg.PhraseLimit.Seconds()+1))
	for _, f := range preroll {
		samples = append(samples, f...)
	}
	samples = append(samples, first...)

	limitFrames := cfg.frames(cfg.PhraseLimit)
	pauseFrames := cfg.frames(cfg.Pause)
	silent := 0
	for recorded := 1; recorded < limitFrames && silent < pauseFrames; recorded++ {
		if err := ctx.Err(); err != nil {
			return domain.Waveform{}, err
		}
		frame, err := read()
		if err != nil {
			return domain.Waveform{}, err
		}
		samples = append(samples, frame...)

		if frameRMS(frame) > threshold {
			silent = 0
		} else {
			silent++
		}
	}

	return domain.Waveform{Samples: samples, SampleRate: cfg.SampleRate}, nil
}
