package stream

import (
	"strings"
	"sync"
)

// Response is a point-in-time view of an accumulated stream.
type Response struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Accumulator reconstructs the full text of a stream from its increments.
// The text only grows until MarkDone, after which it is frozen.
type Accumulator struct {
	mu   sync.RWMutex
	text strings.Builder
	done bool
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Append adds delta and returns the cumulative text. After MarkDone it
// leaves the text unchanged.
func (a *Accumulator) Append(delta string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.done {
		a.text.WriteString(delta)
	}
	return a.text.String()
}

// MarkDone freezes the text and returns it.
func (a *Accumulator) MarkDone() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.done = true
	return a.text.String()
}

func (a *Accumulator) Text() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.text.String()
}

func (a *Accumulator) Done() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.done
}

func (a *Accumulator) Snapshot() Response {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Response{Text: a.text.String(), Done: a.done}
}
