package application

import (
	"context"
	"fmt"
	"log/slog"

	"voice-assistant/internal/domain"
)

// Transcriber prefers the online recognizer and falls back to the offline one
// only when the online service cannot be reached.
type Transcriber struct {
	online  OnlineRecognizer
	offline OfflineRecognizer
	logger  *slog.Logger
}

func NewTranscriber(online OnlineRecognizer, offline OfflineRecognizer, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		online:  online,
		offline: offline,
		logger:  logger,
	}
}

// Transcribe converts the waveform to an utterance. path must point at the
// persisted copy of w.
func (t *Transcriber) Transcribe(ctx context.Context, w domain.Waveform, path string) (domain.Utterance, error) {
	t.logger.Info("started recognition", "recognizer", t.online.Name(), "duration", w.Duration())

	rec, err := t.online.Recognize(ctx, w)
	if err != nil {
		return "", fmt.Errorf("online recognition: %w", err)
	}

	switch rec.Status {
	case domain.RecognitionOK:
		return domain.NewUtterance(rec.Text), nil

	case domain.RecognitionNoMatch:
		t.logger.Debug("speech not understood")
		return "", nil

	case domain.RecognitionUnavailable:
		t.logger.Warn("online recognition unavailable, trying offline recognition",
			"reason", rec.Reason,
			"recognizer", t.offline.Name(),
		)
		text, err := t.offline.TranscribeFile(ctx, path)
		if err != nil {
			return "", fmt.Errorf("offline recognition: %w", err)
		}
		return domain.NewUtterance(text), nil

	default:
		return "", fmt.Errorf("unknown recognition status: %s", rec.Status)
	}
}
