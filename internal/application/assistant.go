package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"voice-assistant/internal/domain"
)

type Assistant struct {
	audio       AudioSource
	waveforms   WaveformStore
	transcriber *Transcriber
	router      *Router
	speaker     Speaker
	cue         Cue
	profile     domain.VoiceProfile
	logger      *slog.Logger
}

func NewAssistant(
	audio AudioSource,
	waveforms WaveformStore,
	transcriber *Transcriber,
	router *Router,
	speaker Speaker,
	cue Cue,
	profile domain.VoiceProfile,
	logger *slog.Logger,
) *Assistant {
	return &Assistant{
		audio:       audio,
		waveforms:   waveforms,
		transcriber: transcriber,
		router:      router,
		speaker:     speaker,
		cue:         cue,
		profile:     profile,
		logger:      logger,
	}
}

// Run listens and dispatches commands until a command terminates the
// assistant, ctx is cancelled, or a stage fails. A terminating command makes
// Run return nil.
func (a *Assistant) Run(ctx context.Context) error {
	a.logger.Info("starting audio source", "source", a.audio.Name())
	if err := a.audio.Start(ctx); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer a.audio.Stop()

	a.logger.Info("assistant ready, listening for commands",
		"name", a.profile.AssistantName,
		"locale", a.profile.Locale,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome, err := a.processOneCommand(ctx)
		if err != nil {
			return err
		}

		if outcome == domain.OutcomeTerminate {
			a.logger.Info("assistant stopped by command")
			if err := a.speaker.Close(); err != nil {
				a.logger.Warn("releasing speaker", "error", err)
			}
			return nil
		}
	}
}

func (a *Assistant) processOneCommand(ctx context.Context) (domain.Outcome, error) {
	defer func() {
		if err := a.waveforms.Remove(); err != nil {
			a.logger.Warn("removing recording", "path", a.waveforms.Path(), "error", err)
		}
	}()

	utterance, err := a.listen(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCaptureTimeout) {
			a.logger.Warn("no speech detected, please check your microphone")
			return domain.OutcomeContinue, nil
		}
		return domain.OutcomeContinue, err
	}

	a.logger.Info("recognized", "utterance", string(utterance))

	return a.router.Dispatch(ctx, utterance.Invocation())
}

func (a *Assistant) listen(ctx context.Context) (domain.Utterance, error) {
	if err := a.cue.Play(ctx); err != nil {
		a.logger.Warn("playing listening cue", "error", err)
	}

	a.logger.Info("listening")
	waveform, err := a.audio.Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("capturing audio: %w", err)
	}

	path, err := a.waveforms.Save(waveform)
	if err != nil {
		return "", fmt.Errorf("saving recording: %w", err)
	}

	utterance, err := a.transcriber.Transcribe(ctx, waveform, path)
	if err != nil {
		return "", fmt.Errorf("transcribing: %w", err)
	}

	return utterance, nil
}
