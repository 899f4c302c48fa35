// Package warnings collects non-fatal messages during a single command run.
// A Collector is created per invocation and handed to every collaborator that
// may emit a warning; the CLI prints the collected list once at the end.
package warnings

import (
	"fmt"
	"sync"
)

// Collector is an append-only, ordered list of warning messages.
// It is safe for concurrent use.
type Collector struct {
	mu   sync.Mutex
	msgs []string
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Add appends msg verbatim. A nil Collector discards the message.
func (c *Collector) Add(msg string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

// Addf appends a warning formatted with fmt.Sprintf.
func (c *Collector) Addf(format string, args ...any) {
	if c == nil {
		return
	}
	c.Add(fmt.Sprintf(format, args...))
}

// List returns a copy of the collected warnings in insertion order.
func (c *Collector) List() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Len returns the number of collected warnings.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}
