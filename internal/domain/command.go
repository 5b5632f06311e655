package domain

import (
	"context"
	"fmt"
	"strings"
)

type Outcome string

const (
	OutcomeContinue  Outcome = "continue"
	OutcomeTerminate Outcome = "terminate"
)

// Handler runs the side effect of a matched command. Only the farewell handler
// returns OutcomeTerminate.
type Handler func(ctx context.Context, args []string) (Outcome, error)

type MatchMode string

const (
	// MatchExact requires the command token to be one of the keywords.
	MatchExact MatchMode = "exact"
	// MatchSubstring accepts a command token found inside any keyword.
	MatchSubstring MatchMode = "substring"
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(s)) {
	case MatchExact, "":
		return MatchExact, nil
	case MatchSubstring:
		return MatchSubstring, nil
	default:
		return "", fmt.Errorf("unknown match mode: %q", s)
	}
}

type Command struct {
	Name     string
	Keywords []string
	Handler  Handler
}

func (c Command) Matches(token string, mode MatchMode) bool {
	if token == "" {
		return false
	}
	for _, kw := range c.Keywords {
		switch mode {
		case MatchSubstring:
			if strings.Contains(kw, token) {
				return true
			}
		default:
			if kw == token {
				return true
			}
		}
	}
	return false
}

// CommandTable is an ordered set of commands fixed at construction.
type CommandTable struct {
	commands []Command
	mode     MatchMode
}

func NewCommandTable(mode MatchMode, commands ...Command) *CommandTable {
	cp := make([]Command, len(commands))
	copy(cp, commands)
	return &CommandTable{commands: cp, mode: mode}
}

// Match returns the first command, in insertion order, whose keywords match token.
func (t *CommandTable) Match(token string) (*Command, bool) {
	for i := range t.commands {
		if t.commands[i].Matches(token, t.mode) {
			return &t.commands[i], true
		}
	}
	return nil, false
}

func (t *CommandTable) Mode() MatchMode {
	return t.mode
}

func (t *CommandTable) Len() int {
	return len(t.commands)
}
