package toolchain

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation seen by a FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String returns the command line, e.g. "npm install".
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeRunner records calls instead of executing them. Handler, when set,
// decides the result of each call.
type FakeRunner struct {
	Handler func(c Call) (*Output, error)

	mu    sync.Mutex
	calls []Call
}

func (f *FakeRunner) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	c := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.Handler != nil {
		return f.Handler(c)
	}
	return &Output{}, nil
}

// Calls returns the recorded invocations in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
