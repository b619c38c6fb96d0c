package executor

import (
	"context"
	"strings"
	"sync"
)

// Invocation is one recorded call to a FakeExecutor
type Invocation struct {
	Dir  string
	Args []string
}

// FakeExecutor is a scripted CommandExecutor for tests. Responses are keyed by
// the space-joined argument vector; unknown commands succeed with empty output.
type FakeExecutor struct {
	mu        sync.Mutex
	responses map[string]Result
	calls     []Invocation
}

func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{responses: make(map[string]Result)}
}

// On scripts the result returned for an exact argument vector
func (f *FakeExecutor) On(result Result, args ...string) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[strings.Join(args, " ")] = result
	return f
}

// OnOutput scripts a successful command printing stdout
func (f *FakeExecutor) OnOutput(stdout string, args ...string) *FakeExecutor {
	return f.On(Result{Stdout: stdout}, args...)
}

func (f *FakeExecutor) Run(_ context.Context, dir string, args ...string) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Invocation{Dir: dir, Args: append([]string(nil), args...)})
	return f.responses[strings.Join(args, " ")]
}

// Calls returns a copy of every invocation in call order
func (f *FakeExecutor) Calls() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Invocation(nil), f.calls...)
}

// CommandLines returns each invocation's args joined by spaces
func (f *FakeExecutor) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, strings.Join(c.Args, " "))
	}
	return lines
}
