//go:build vosk
// +build vosk

package vosk

import (
	"fmt"

	voskapi "github.com/alphacep/vosk-api/go"

	"voice-assistant/internal/domain"
)

type voskEngine struct {
	model *voskapi.VoskModel
}

func newEngine() engine {
	voskapi.SetLogLevel(-1)
	return &voskEngine{}
}

// Decode loads the model on first use and feeds the whole recording through a
// fresh recognizer.
func (e *voskEngine) Decode(modelDir string, w domain.Waveform) (string, error) {
	if e.model == nil {
		model, err := voskapi.NewModel(modelDir)
		if err != nil {
			return "", fmt.Errorf("loading model: %w", err)
		}
		e.model = model
	}

	rec, err := voskapi.NewRecognizer(e.model, float64(w.SampleRate))
	if err != nil {
		return "", fmt.Errorf("creating recognizer: %w", err)
	}
	defer rec.Free()

	rec.AcceptWaveform(w.PCM16LE())
	return rec.FinalResult(), nil
}

func (e *voskEngine) Close() {
	if e.model != nil {
		e.model.Free()
		e.model = nil
	}
}
