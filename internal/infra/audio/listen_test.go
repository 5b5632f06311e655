package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"voice-assistant/internal/domain"
)

// scripted returns frames of constant amplitude; amplitude 0 frames are
// silence.
func scripted(size int, amplitudes ...int16) (frameReader, *int) {
	reads := 0
	return func() ([]int16, error) {
		amp := int16(0)
		if reads < len(amplitudes) {
			amp = amplitudes[reads]
		}
		reads++
		frame := make([]int16, size)
		for i := range frame {
			frame[i] = amp
		}
		return frame, nil
	}, &reads
}

// 10 samples per frame at 100 Hz: every frame lasts 100ms.
func testListenConfig() ListenConfig {
	return ListenConfig{
		SampleRate:  100,
		FrameSize:   10,
		Calibration: 200 * time.Millisecond,
		Timeout:     500 * time.Millisecond,
		PhraseLimit: time.Second,
		Pause:       200 * time.Millisecond,
		EnergyRatio: 1.5,
		MinEnergy:   300,
	}
}

func TestCalibrate(t *testing.T) {
	cfg := testListenConfig()

	read, reads := scripted(cfg.FrameSize, 1000, 1000)
	threshold, err := calibrate(context.Background(), read, cfg)
	if err != nil {
		t.Fatalf("calibrate: %v", err)
	}
	if threshold != 1500 || *reads != 2 {
		t.Errorf("threshold %v after %d reads, want 1500 after 2", threshold, *reads)
	}

	read, _ = scripted(cfg.FrameSize, 10, 10)
	threshold, _ = calibrate(context.Background(), read, cfg)
	if threshold != cfg.MinEnergy {
		t.Errorf("quiet room threshold: got %v, want %v", threshold, cfg.MinEnergy)
	}
}

func TestRecordPhrase_StopsOnPause(t *testing.T) {
	cfg := testListenConfig()
	read, reads := scripted(cfg.FrameSize, 0, 0, 5000, 5000, 5000, 0, 0, 5000)

	w, err := recordPhrase(context.Background(), read, 300, cfg)
	if err != nil {
		t.Fatalf("recordPhrase: %v", err)
	}

	// two preroll frames, three speech frames, two pause frames
	if len(w.Samples) != 7*cfg.FrameSize {
		t.Errorf("samples: got %d, want %d", len(w.Samples), 7*cfg.FrameSize)
	}
	if *reads != 7 {
		t.Errorf("reads: got %d, want 7", *reads)
	}
	if w.SampleRate != cfg.SampleRate {
		t.Errorf("sample rate: got %d", w.SampleRate)
	}
}

func TestRecordPhrase_PhraseLimit(t *testing.T) {
	cfg := testListenConfig()
	loud := make([]int16, 30)
	for i := range loud {
		loud[i] = 5000
	}
	read, _ := scripted(cfg.FrameSize, loud...)

	w, err := recordPhrase(context.Background(), read, 300, cfg)
	if err != nil {
		t.Fatalf("recordPhrase: %v", err)
	}
	if w.Duration() != time.Second {
		t.Errorf("duration: got %v, want 1s", w.Duration())
	}
}

func TestRecordPhrase_Timeout(t *testing.T) {
	cfg := testListenConfig()
	read, reads := scripted(cfg.FrameSize)

	_, err := recordPhrase(context.Background(), read, 300, cfg)
	if !errors.Is(err, domain.ErrCaptureTimeout) {
		t.Fatalf("error: got %v, want ErrCaptureTimeout", err)
	}
	if *reads != 5 {
		t.Errorf("reads: got %d, want 5", *reads)
	}
}

func TestRecordPhrase_Cancelled(t *testing.T) {
	cfg := testListenConfig()
	read, _ := scripted(cfg.FrameSize)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := recordPhrase(ctx, read, 300, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("error: got %v, want context.Canceled", err)
	}
}
