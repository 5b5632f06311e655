package audio

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"voice-assistant/internal/domain"
)

// WaveformFile is the single transient recording shared between capture and
// offline recognition.
type WaveformFile struct {
	fs   afero.Fs
	path string
}

func NewWaveformFile(fsys afero.Fs, path string) *WaveformFile {
	return &WaveformFile{
		fs:   fsys,
		path: path,
	}
}

func (f *WaveformFile) Path() string {
	return f.path
}

func (f *WaveformFile) Save(w domain.Waveform) (string, error) {
	file, err := f.fs.Create(f.path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", f.path, err)
	}
	defer file.Close()

	if err := WriteWAV(file, w); err != nil {
		return "", fmt.Errorf("encoding %s: %w", f.path, err)
	}
	return f.path, nil
}

// Remove deletes the recording. A missing file is not an error.
func (f *WaveformFile) Remove() error {
	if err := f.fs.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", f.path, err)
	}
	return nil
}

// Exists reports whether the recording is currently on disk.
func (f *WaveformFile) Exists() bool {
	ok, err := afero.Exists(f.fs, f.path)
	return err == nil && ok
}
