package executor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestShellExecutor(t *testing.T) {
	requireGit(t)
	exec := NewShellExecutor("", 0)
	ctx := context.Background()

	t.Run("captures stdout on success", func(t *testing.T) {
		res := exec.Run(ctx, t.TempDir(), "version")
		require.NoError(t, res.Err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Contains(t, res.Output(), "git version")
		assert.False(t, res.Failed())
	})

	t.Run("returns stderr on non-zero exit", func(t *testing.T) {
		// Not a repository: git status exits 128 and complains on stderr
		dir := t.TempDir()
		res := exec.Run(ctx, dir, "--git-dir", filepath.Join(dir, "nope"), "status")
		assert.NoError(t, res.Err)
		assert.NotEqual(t, 0, res.ExitCode)
		assert.True(t, res.Failed())
		assert.Equal(t, res.Stderr, res.Output())
		assert.NotEmpty(t, res.Output())
	})

	t.Run("runs in the given directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
		res := exec.Run(ctx, dir, "init", "-q")
		require.False(t, res.Failed(), res.Output())

		res = exec.Run(ctx, dir, "status", "--porcelain")
		require.False(t, res.Failed(), res.Output())
		assert.Contains(t, res.Stdout, "?? a.txt")
	})
}

func TestShellExecutorMissingBinary(t *testing.T) {
	exec := NewShellExecutor("definitely-not-a-real-git-binary", 0)
	res := exec.Run(context.Background(), t.TempDir(), "status")

	assert.Error(t, res.Err)
	assert.True(t, res.Failed())
	assert.Contains(t, res.Output(), "Error executing git command:")
}

func TestShellExecutorTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep binary not available")
	}
	e := NewShellExecutor("sleep", 50*time.Millisecond)
	res := e.Run(context.Background(), "", "5")

	assert.True(t, res.Failed())
	assert.Error(t, res.Err)
	assert.Contains(t, res.Output(), "timed out")
}

func TestResultOutput(t *testing.T) {
	assert.Equal(t, "out", Result{Stdout: "out"}.Output())
	assert.Equal(t, "err", Result{Stdout: "out", Stderr: "err", ExitCode: 1}.Output())
	assert.Equal(t, "out", Result{Stdout: "out", ExitCode: 1}.Output())
	assert.Equal(t, "out", Result{Stdout: "out", Stderr: "warning"}.Output())
}

func TestFakeExecutor(t *testing.T) {
	fake := NewFakeExecutor().OnOutput("main\n", "branch", "--show-current")
	ctx := context.Background()

	assert.Equal(t, "main\n", fake.Run(ctx, "/repo", "branch", "--show-current").Output())
	assert.Equal(t, "", fake.Run(ctx, "/repo", "add", "x").Output())
	assert.Equal(t, []string{"branch --show-current", "add x"}, fake.CommandLines())
	assert.Equal(t, "/repo", fake.Calls()[0].Dir)

	var _ CommandExecutor = fake
	var _ CommandExecutor = (*ShellExecutor)(nil)
}
