//go:build !whisper
// +build !whisper

package whisper

import (
	"context"
	"fmt"
)

type stubEngine struct{}

func newEngine() engine {
	return stubEngine{}
}

func (stubEngine) Transcribe(_ context.Context, _, _ string, _ []float32) (string, error) {
	return "", fmt.Errorf("whisper recognition not available: rebuild with -tags whisper")
}

func (stubEngine) Close() {}
