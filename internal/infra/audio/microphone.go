//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra"
)

type MicrophoneSource struct {
	stream *portaudio.Stream
	buffer []int16
	cfg    ListenConfig
	logger *slog.Logger
}

func NewMicrophoneSource(cfg ListenConfig, logger *slog.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		cfg:    cfg,
		logger: logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

// Start opens the default input device, retrying while it is held by
// another process.
func (m *MicrophoneSource) Start(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	inputChannels := 1
	outputChannels := 0

	m.buffer = make([]int16, m.cfg.FrameSize)

	err := infra.Retry(ctx, infra.DefaultBackoff(), func() error {
		stream, err := portaudio.OpenDefaultStream(
			inputChannels,
			outputChannels,
			float64(m.cfg.SampleRate),
			len(m.buffer),
			m.buffer,
		)
		if err == portaudio.InvalidDevice {
			return infra.Permanent(err)
		}
		if err != nil {
			m.logger.Warn("opening input stream", "error", err)
			return err
		}
		m.stream = stream
		return nil
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}

	m.logger.Info("microphone ready", "sampleRate", m.cfg.SampleRate)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	if m.stream != nil {
		m.stream.Close()
	}
	portaudio.Terminate()
	return nil
}

// Capture calibrates against ambient noise, then records one phrase. The
// stream only runs while capturing so input does not pile up during
// recognition and playback.
func (m *MicrophoneSource) Capture(ctx context.Context) (domain.Waveform, error) {
	if err := m.stream.Start(); err != nil {
		return domain.Waveform{}, fmt.Errorf("starting stream: %w", err)
	}
	defer m.stream.Stop()

	threshold, err := calibrate(ctx, m.read, m.cfg)
	if err != nil {
		return domain.Waveform{}, fmt.Errorf("calibrating: %w", err)
	}
	m.logger.Debug("ambient noise calibrated", "threshold", threshold)

	return recordPhrase(ctx, m.read, threshold, m.cfg)
}

func (m *MicrophoneSource) read() ([]int16, error) {
	if err := m.stream.Read(); err != nil && err != portaudio.InputOverflowed {
		return nil, fmt.Errorf("reading from stream: %w", err)
	}
	frame := make([]int16, len(m.buffer))
	copy(frame, m.buffer)
	return frame, nil
}
