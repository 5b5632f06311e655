package whisper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/audio"
)

const modelSampleRate = 16000

type engine interface {
	Transcribe(ctx context.Context, modelPath, language string, pcm []float32) (string, error)
	Close()
}

// Recognizer transcribes recordings with a local whisper.cpp model file.
type Recognizer struct {
	fs        afero.Fs
	modelPath string
	language  string
	engine    engine
	logger    *slog.Logger
}

func NewRecognizer(fsys afero.Fs, modelPath, language string, logger *slog.Logger) *Recognizer {
	return &Recognizer{
		fs:        fsys,
		modelPath: modelPath,
		language:  language,
		engine:    newEngine(),
		logger:    logger,
	}
}

func (r *Recognizer) Name() string {
	return "whisper"
}

func (r *Recognizer) TranscribeFile(ctx context.Context, path string) (string, error) {
	ok, err := afero.Exists(r.fs, r.modelPath)
	if err != nil {
		return "", fmt.Errorf("checking model: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingOfflineModel, r.modelPath)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening recording: %w", err)
	}
	w, err := audio.DecodeWAV(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("reading recording: %w", err)
	}
	if w.Empty() {
		return "", nil
	}

	pcm := resampleLinear(w.Float32(), w.SampleRate, modelSampleRate)
	r.logger.Debug("running whisper", "samples", len(pcm))

	text, err := r.engine.Transcribe(ctx, r.modelPath, r.language, pcm)
	if err != nil {
		return "", fmt.Errorf("transcribing %s: %w", path, err)
	}
	return strings.TrimSpace(text), nil
}

func (r *Recognizer) Close() {
	r.engine.Close()
}

func resampleLinear(in []float32, from, to int) []float32 {
	if from == to || from <= 0 || len(in) == 0 {
		return in
	}
	n := int(int64(len(in)) * int64(to) / int64(from))
	out := make([]float32, n)
	ratio := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j+1 >= len(in) {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}
