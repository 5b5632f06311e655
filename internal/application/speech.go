package application

import (
	"context"

	"voice-assistant/internal/domain"
)

type OnlineRecognizer interface {
	Recognize(ctx context.Context, w domain.Waveform) (domain.Recognition, error)
	Name() string
}

type OfflineRecognizer interface {
	// TranscribeFile decodes the WAV file at path. It returns an error wrapping
	// domain.ErrMissingOfflineModel when the model is not installed.
	TranscribeFile(ctx context.Context, path string) (string, error)
	Name() string
}

type Speaker interface {
	Speak(ctx context.Context, text string) error
	Close() error
}
