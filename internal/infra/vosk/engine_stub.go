//go:build !vosk
// +build !vosk

package vosk

import (
	"fmt"

	"voice-assistant/internal/domain"
)

// stubEngine is used when libvosk is not available
type stubEngine struct{}

func newEngine() engine {
	return stubEngine{}
}

func (stubEngine) Decode(_ string, _ domain.Waveform) (string, error) {
	return "", fmt.Errorf("offline recognition not available: rebuild with -tags vosk")
}

func (stubEngine) Close() {}
