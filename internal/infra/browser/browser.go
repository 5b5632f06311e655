package browser

import (
	"fmt"
	"log/slog"

	"github.com/pkg/browser"
)

// System opens pages in the desktop's default browser.
type System struct {
	open   func(url string) error
	logger *slog.Logger
}

func NewSystem(logger *slog.Logger) *System {
	return &System{open: browser.OpenURL, logger: logger}
}

func (s *System) Open(url string) error {
	s.logger.Info("opening browser", "url", url)

	if err := s.open(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}
