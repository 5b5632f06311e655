package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
)

var ErrClosed = errors.New("speech synthesizer closed")

// Espeak speaks through an espeak-ng process per phrase.
type Espeak struct {
	binary string
	voice  string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

func NewEspeak(binary, voice string, logger *slog.Logger) *Espeak {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &Espeak{
		binary: binary,
		voice:  voice,
		logger: logger,
	}
}

// Speak returns after the phrase has been played.
func (e *Espeak) Speak(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	e.logger.Info("speaking", "text", text)

	args := []string{text}
	if e.voice != "" {
		args = []string{"-v", e.voice, text}
	}

	out, err := exec.CommandContext(ctx, e.binary, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("running %s: %w: %s", e.binary, err, out)
	}
	return nil
}

func (e *Espeak) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	return nil
}
