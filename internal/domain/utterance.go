package domain

import "strings"

// Utterance is the lower-cased text recognized from one recording.
// An empty utterance means nothing was understood.
type Utterance string

func NewUtterance(text string) Utterance {
	return Utterance(strings.ToLower(strings.TrimSpace(text)))
}

func (u Utterance) Empty() bool {
	return u == ""
}

type Invocation struct {
	Command string
	Args    []string
}

// Invocation splits the utterance on whitespace: the first token is the
// command, the rest are its arguments.
func (u Utterance) Invocation() Invocation {
	fields := strings.Fields(string(u))
	if len(fields) == 0 {
		return Invocation{}
	}
	return Invocation{
		Command: fields[0],
		Args:    fields[1:],
	}
}
