package vosk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/audio"
)

// engine runs the acoustic model and returns the raw JSON result.
type engine interface {
	Decode(modelDir string, w domain.Waveform) (string, error)
	Close()
}

// Recognizer transcribes recordings with a locally installed Vosk model.
type Recognizer struct {
	fs       afero.Fs
	modelDir string
	engine   engine
	logger   *slog.Logger
}

func NewRecognizer(fsys afero.Fs, modelDir string, logger *slog.Logger) *Recognizer {
	return &Recognizer{
		fs:       fsys,
		modelDir: modelDir,
		engine:   newEngine(),
		logger:   logger,
	}
}

func (r *Recognizer) Name() string {
	return "vosk"
}

func (r *Recognizer) TranscribeFile(ctx context.Context, path string) (string, error) {
	ok, err := afero.DirExists(r.fs, r.modelDir)
	if err != nil {
		return "", fmt.Errorf("checking model dir: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s (download one from https://alphacephei.com/vosk/models and unpack it there)",
			domain.ErrMissingOfflineModel, r.modelDir)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	w, err := r.readWaveform(path)
	if err != nil {
		return "", err
	}
	if w.Empty() {
		return "", nil
	}

	raw, err := r.engine.Decode(r.modelDir, w)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	r.logger.Debug("offline result", "raw", raw)

	return extractText(raw)
}

func (r *Recognizer) Close() {
	r.engine.Close()
}

func (r *Recognizer) readWaveform(path string) (domain.Waveform, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return domain.Waveform{}, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()

	w, err := audio.DecodeWAV(f)
	if err != nil {
		return domain.Waveform{}, fmt.Errorf("reading recording: %w", err)
	}
	return w, nil
}

type result struct {
	Text string `json:"text"`
}

func extractText(raw string) (string, error) {
	var res result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return "", fmt.Errorf("parsing result (%s): %w", raw, err)
	}
	return res.Text, nil
}
