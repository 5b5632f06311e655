package cue

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/spf13/afero"
)

// Sound plays a short MP3 or Ogg Vorbis clip before every capture.
type Sound struct {
	fs   afero.Fs
	path string

	once    sync.Once
	initErr error
}

func NewSound(fsys afero.Fs, path string) *Sound {
	return &Sound{fs: fsys, path: path}
}

func (s *Sound) Play(ctx context.Context) error {
	f, err := s.fs.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening cue: %w", err)
	}

	streamer, format, err := decode(s.path, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decoding cue: %w", err)
	}
	defer streamer.Close()

	s.once.Do(func() {
		s.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if s.initErr != nil {
		return fmt.Errorf("initializing speaker: %w", s.initErr)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

func decode(path string, rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".oga":
		return vorbis.Decode(rc)
	default:
		return mp3.Decode(rc)
	}
}
