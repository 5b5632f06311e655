package application

import (
	"context"

	"voice-assistant/internal/domain"
)

type AudioSource interface {
	Start(ctx context.Context) error
	Stop() error
	// Capture blocks until one phrase is recorded. It returns
	// domain.ErrCaptureTimeout when no speech starts in the listening window.
	Capture(ctx context.Context) (domain.Waveform, error)
	Name() string
}

// WaveformStore keeps the transient recording that the offline recognizer reads.
type WaveformStore interface {
	Save(w domain.Waveform) (string, error)
	Remove() error
	Path() string
}
