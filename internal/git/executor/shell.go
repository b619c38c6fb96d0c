package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/vanpelt/gitmonitor/internal/logger"
)

// ShellExecutor implements CommandExecutor using the git binary
type ShellExecutor struct {
	binary  string
	timeout time.Duration
}

// NewShellExecutor creates a shell executor. An empty binary means "git" on PATH
// and a zero timeout means commands may run indefinitely.
func NewShellExecutor(binary string, timeout time.Duration) *ShellExecutor {
	if binary == "" {
		binary = "git"
	}
	return &ShellExecutor{
		binary:  binary,
		timeout: timeout,
	}
}

// Run runs a git command in the specified directory
func (e *ShellExecutor) Run(ctx context.Context, dir string, args ...string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.binary, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Keep routine read-only commands out of the debug log
	if len(args) > 0 && args[0] != "status" && args[0] != "branch" && !strings.HasPrefix(args[0], "diff") {
		logger.Debugf("🐚 executing %s %v in %s", e.binary, args, dir)
	}

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		res.ExitCode = -1
		res.Err = fmt.Errorf("%s %s timed out after %v", e.binary, strings.Join(args, " "), e.timeout)
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		res.Err = err
	}
	return res
}
