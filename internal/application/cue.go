package application

import "context"

// Cue signals the user that the assistant is listening.
type Cue interface {
	Play(ctx context.Context) error
}

type NoopCue struct{}

func (n *NoopCue) Play(_ context.Context) error {
	return nil
}
