package application

import (
	"context"
	"fmt"
	"log/slog"

	"voice-assistant/internal/domain"
)

type Router struct {
	table  *domain.CommandTable
	logger *slog.Logger
}

func NewRouter(table *domain.CommandTable, logger *slog.Logger) *Router {
	return &Router{
		table:  table,
		logger: logger,
	}
}

// Dispatch runs the first command matching inv.Command. Unmatched commands are
// ignored.
func (r *Router) Dispatch(ctx context.Context, inv domain.Invocation) (domain.Outcome, error) {
	cmd, ok := r.table.Match(inv.Command)
	if !ok {
		r.logger.Debug("no command matched", "command", inv.Command)
		return domain.OutcomeContinue, nil
	}

	r.logger.Info("dispatching command", "command", cmd.Name, "token", inv.Command, "args", inv.Args)

	outcome, err := cmd.Handler(ctx, inv.Args)
	if err != nil {
		return domain.OutcomeContinue, fmt.Errorf("running %s: %w", cmd.Name, err)
	}
	return outcome, nil
}
