//go:build whisper
// +build whisper

package whisper

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	whispercpp "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

type cppEngine struct {
	model whispercpp.Model
}

func newEngine() engine {
	return &cppEngine{}
}

func (e *cppEngine) Transcribe(ctx context.Context, modelPath, language string, pcm []float32) (string, error) {
	if e.model == nil {
		m, err := whispercpp.New(modelPath)
		if err != nil {
			return "", fmt.Errorf("load model: %w", err)
		}
		e.model = m
	}

	wctx, err := e.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("new context: %w", err)
	}

	if language == "" {
		language = "auto"
	}
	if err := wctx.SetLanguage(language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return "", fmt.Errorf("process: %w", err)
	}

	var parts []string
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		s, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("next segment: %w", err)
		}
		parts = append(parts, strings.TrimSpace(s.Text))
	}

	return strings.Join(parts, " "), nil
}

func (e *cppEngine) Close() {
	if e.model != nil {
		e.model.Close()
		e.model = nil
	}
}
