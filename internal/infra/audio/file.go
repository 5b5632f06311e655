package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"voice-assistant/internal/domain"
)

// FileSource replays .wav recordings dropped into a directory. Each file is
// captured once and renamed with a .processed suffix.
type FileSource struct {
	fs        afero.Fs
	dir       string
	timeout   time.Duration
	poll      time.Duration
	processed map[string]bool
	mu        sync.Mutex
}

func NewFileSource(fsys afero.Fs, dir string, timeout time.Duration) *FileSource {
	return &FileSource{
		fs:        fsys,
		dir:       dir,
		timeout:   timeout,
		poll:      500 * time.Millisecond,
		processed: make(map[string]bool),
	}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Start(_ context.Context) error {
	if err := f.fs.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}
	return nil
}

func (f *FileSource) Stop() error {
	return nil
}

// Capture returns the next unprocessed recording, or domain.ErrCaptureTimeout
// when none shows up within the listening window.
func (f *FileSource) Capture(ctx context.Context) (domain.Waveform, error) {
	if w, ok, err := f.checkForNewFile(); err != nil || ok {
		return w, err
	}

	ticker := time.NewTicker(f.poll)
	defer ticker.Stop()

	deadline := time.NewTimer(f.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return domain.Waveform{}, ctx.Err()
		case <-deadline.C:
			return domain.Waveform{}, domain.ErrCaptureTimeout
		case <-ticker.C:
			w, ok, err := f.checkForNewFile()
			if err != nil {
				return domain.Waveform{}, err
			}
			if ok {
				return w, nil
			}
		}
	}
}

func (f *FileSource) checkForNewFile() (domain.Waveform, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return domain.Waveform{}, false, fmt.Errorf("reading dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		if f.processed[path] {
			continue
		}
		f.processed[path] = true

		w, err := f.decode(path)
		if err != nil {
			return domain.Waveform{}, false, fmt.Errorf("decoding %s: %w", path, err)
		}

		if err := f.fs.Rename(path, path+".processed"); err != nil {
			return domain.Waveform{}, false, fmt.Errorf("marking %s processed: %w", path, err)
		}

		return w, true, nil
	}

	return domain.Waveform{}, false, nil
}

func (f *FileSource) decode(path string) (domain.Waveform, error) {
	file, err := f.fs.Open(path)
	if err != nil {
		return domain.Waveform{}, err
	}
	defer file.Close()

	return DecodeWAV(file)
}
