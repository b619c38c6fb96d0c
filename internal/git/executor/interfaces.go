package executor

import (
	"context"
	"fmt"
)

// CommandExecutor abstracts git command execution
type CommandExecutor interface {
	// Run executes git with args in dir. It never returns an error value:
	// spawn failures are reported through Result.Err.
	Run(ctx context.Context, dir string, args ...string) Result
}

// Result captures everything a git invocation produced
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err is set when the process could not be started or waited on
	Err error
}

// Output applies the lenient contract used by every route: stdout on success,
// stderr when the command failed and wrote something there, stdout otherwise.
// A spawn failure is converted into a descriptive message.
func (r Result) Output() string {
	if r.Err != nil {
		return fmt.Sprintf("Error executing git command: %v", r.Err)
	}
	if r.ExitCode != 0 && r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Failed reports a spawn error or a non-zero exit
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}
