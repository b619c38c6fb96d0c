package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/vanpelt/gitmonitor/internal/git/executor"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
)

// DefaultLogLimit is used when a caller asks for history without a usable limit
const DefaultLogLimit = 20

// Repository derives status snapshots and runs mutations for one working tree
type Repository struct {
	executor executor.CommandExecutor
	path     string
}

// MutationResult collects the outcome of a stage/unstage/commit request
type MutationResult struct {
	Output   string
	Failures []string
}

// Failed reports whether any underlying git command failed
func (m MutationResult) Failed() bool {
	return len(m.Failures) > 0
}

// Error joins the failure messages
func (m MutationResult) Error() string {
	return strings.Join(m.Failures, "\n")
}

func NewRepository(exec executor.CommandExecutor, path string) *Repository {
	return &Repository{executor: exec, path: path}
}

func (r *Repository) run(ctx context.Context, args ...string) executor.Result {
	return r.executor.Run(ctx, r.path, args...)
}

// query runs a read-only command and returns its stdout. A failed command
// yields "" so git's error text never reaches the parsers.
func (r *Repository) query(ctx context.Context, args ...string) string {
	res := r.run(ctx, args...)
	if res.Failed() {
		log := logger.WithFields(map[string]interface{}{
			"dir":  r.path,
			"args": strings.Join(args, " "),
			"exit": res.ExitCode,
		})
		log.Debug().Msg(strings.TrimSpace(res.Output()))
		return ""
	}
	return res.Stdout
}

// Status returns the current branch, file changes and tracking counts.
// Outside a repository every field is empty.
func (r *Repository) Status(ctx context.Context) *models.GitStatus {
	branch := strings.TrimSpace(r.query(ctx, "branch", "--show-current"))
	status := models.NewGitStatus(branch)

	ParsePorcelainStatus(r.query(ctx, "status", "--porcelain", "-b"), status)
	status.Ahead, status.Behind = ParseTracking(r.query(ctx, "status", "-sb"))

	return status
}

// Log returns up to limit commits, newest first
func (r *Repository) Log(ctx context.Context, limit int) []models.CommitInfo {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	out := r.query(ctx,
		"log", "--oneline",
		"--pretty=format:%H|%an|%ad|%s",
		"--date=short",
		fmt.Sprintf("-%d", limit),
	)
	return ParseLog(out)
}

// Diff returns raw diff output for the worktree or the index
func (r *Repository) Diff(ctx context.Context, staged bool) string {
	if staged {
		return r.run(ctx, "diff", "--staged").Output()
	}
	return r.run(ctx, "diff").Output()
}

// Branches lists local and remote branches as printed by `git branch -a`
func (r *Repository) Branches(ctx context.Context) []string {
	return ParseBranches(r.query(ctx, "branch", "-a"))
}

// Stage runs `git add` once per file in order
func (r *Repository) Stage(ctx context.Context, files []string) MutationResult {
	return r.perFile(ctx, files, func(file string) []string {
		return []string{"add", file}
	})
}

// Unstage runs `git reset HEAD` once per file in order
func (r *Repository) Unstage(ctx context.Context, files []string) MutationResult {
	return r.perFile(ctx, files, func(file string) []string {
		return []string{"reset", "HEAD", file}
	})
}

// perFile attempts every file even after a failure
func (r *Repository) perFile(ctx context.Context, files []string, argv func(string) []string) MutationResult {
	var result MutationResult
	var out strings.Builder
	for _, file := range files {
		res := r.run(ctx, argv(file)...)
		out.WriteString(res.Output())
		if res.Failed() {
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %s", file, strings.TrimSpace(res.Output())))
		}
	}
	result.Output = out.String()
	return result
}

// Commit records the index with message
func (r *Repository) Commit(ctx context.Context, message string) MutationResult {
	res := r.run(ctx, "commit", "-m", message)
	result := MutationResult{Output: res.Output()}
	if res.Failed() {
		msg := strings.TrimSpace(res.Output())
		if msg == "" {
			msg = fmt.Sprintf("git commit exited with status %d", res.ExitCode)
		}
		result.Failures = append(result.Failures, msg)
	}
	return result
}
