package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanpelt/gitmonitor/internal/git"
	"github.com/vanpelt/gitmonitor/internal/git/executor"
	"github.com/vanpelt/gitmonitor/internal/models"
)

type recordingPublisher struct {
	mu       sync.Mutex
	statuses []*models.GitStatus
}

func (p *recordingPublisher) PublishStatus(status *models.GitStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = append(p.statuses, status)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.statuses)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Timestamp int64           `json:"timestamp"`
}

func setupGitApp(t *testing.T, fake *executor.FakeExecutor, strict bool) (*fiber.App, *recordingPublisher) {
	t.Helper()
	publisher := &recordingPublisher{}
	handler := NewGitHandler(git.NewRepository(fake, "/repo"), publisher, strict)

	app := fiber.New()
	app.Get("/api/status", handler.GetStatus)
	app.Get("/api/diff", handler.GetDiff)
	app.Get("/api/diff/staged", handler.GetStagedDiff)
	app.Get("/api/log", handler.GetLog)
	app.Get("/api/branches", handler.GetBranches)
	app.Post("/api/stage", handler.StageFiles)
	app.Post("/api/unstage", handler.UnstageFiles)
	app.Post("/api/commit", handler.Commit)
	return app, publisher
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestGitHandler_GetStatus(t *testing.T) {
	fake := executor.NewFakeExecutor().
		OnOutput("main\n", "branch", "--show-current").
		OnOutput("## main\nM  staged.go\n?? new.go\n", "status", "--porcelain", "-b").
		OnOutput("## main\n", "status", "-sb")
	app, publisher := setupGitApp(t, fake, true)

	code, env := doRequest(t, app, "GET", "/api/status", "")
	assert.Equal(t, 200, code)
	assert.True(t, env.Success)
	assert.Greater(t, env.Timestamp, int64(0))
	assert.Empty(t, env.Error)

	var status models.GitStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "main", status.Branch)
	assert.Equal(t, []models.FileChange{{Status: "M ", File: "staged.go"}}, status.Staged)
	assert.Equal(t, []models.FileChange{}, status.Unstaged)
	assert.Equal(t, []string{"new.go"}, status.Untracked)
	assert.Zero(t, publisher.count())
}

func TestGitHandler_EmptyListsSerializeAsArrays(t *testing.T) {
	app, _ := setupGitApp(t, executor.NewFakeExecutor(), true)

	_, env := doRequest(t, app, "GET", "/api/status", "")
	raw := string(env.Data)
	assert.Contains(t, raw, `"staged":[]`)
	assert.Contains(t, raw, `"unstaged":[]`)
	assert.Contains(t, raw, `"untracked":[]`)
}

func TestGitHandler_Diffs(t *testing.T) {
	fake := executor.NewFakeExecutor().
		OnOutput("diff --git a/x b/x", "diff").
		OnOutput("diff --git a/y b/y", "diff", "--staged")
	app, _ := setupGitApp(t, fake, true)

	tests := []struct {
		path string
		want string
	}{
		{"/api/diff", "diff --git a/x b/x"},
		{"/api/diff/staged", "diff --git a/y b/y"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, env := doRequest(t, app, "GET", tt.path, "")
			assert.Equal(t, 200, code)
			var diff models.DiffResponse
			require.NoError(t, json.Unmarshal(env.Data, &diff))
			assert.Equal(t, tt.want, diff.Diff)
		})
	}
}

func TestGitHandler_GetLogLimit(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", "-20"},
		{"?limit=5", "-5"},
		{"?limit=abc", "-20"},
		{"?limit=0", "-20"},
		{"?limit=-3", "-20"},
	}
	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			fake := executor.NewFakeExecutor()
			app, _ := setupGitApp(t, fake, true)

			code, env := doRequest(t, app, "GET", "/api/log"+tt.query, "")
			assert.Equal(t, 200, code)
			assert.True(t, env.Success)
			assert.JSONEq(t, `[]`, string(env.Data))

			calls := fake.Calls()
			require.Len(t, calls, 1)
			args := calls[0].Args
			assert.Equal(t, tt.want, args[len(args)-1])
		})
	}
}

func TestGitHandler_GetLogParsesCommits(t *testing.T) {
	fake := executor.NewFakeExecutor().OnOutput(
		"abc|Alice|2024-01-02|second\nnot a commit line\n",
		"log", "--oneline", "--pretty=format:%H|%an|%ad|%s", "--date=short", "-20")
	app, _ := setupGitApp(t, fake, true)

	_, env := doRequest(t, app, "GET", "/api/log", "")
	var commits []models.CommitInfo
	require.NoError(t, json.Unmarshal(env.Data, &commits))
	assert.Equal(t, []models.CommitInfo{
		{Hash: "abc", Author: "Alice", Date: "2024-01-02", Message: "second"},
		{Message: "not a commit line"},
	}, commits)
}

func TestGitHandler_GetBranches(t *testing.T) {
	fake := executor.NewFakeExecutor().OnOutput("* main\n  feature\n  remotes/origin/main\n", "branch", "-a")
	app, _ := setupGitApp(t, fake, true)

	_, env := doRequest(t, app, "GET", "/api/branches", "")
	var branches []string
	require.NoError(t, json.Unmarshal(env.Data, &branches))
	assert.Equal(t, []string{"* main", "feature", "remotes/origin/main"}, branches)
}

func TestGitHandler_StageFilesInOrder(t *testing.T) {
	fake := executor.NewFakeExecutor()
	app, publisher := setupGitApp(t, fake, true)

	code, env := doRequest(t, app, "POST", "/api/stage", `{"files":["a.txt","b.txt"]}`)
	assert.Equal(t, 200, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `"Files staged"`, string(env.Data))

	lines := fake.CommandLines()
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, []string{"add a.txt", "add b.txt"}, lines[:2])
	// the implicit status refresh follows the mutation
	assert.Equal(t, "branch --show-current", lines[2])
	assert.Equal(t, 1, publisher.count())
}

func TestGitHandler_UnstageFiles(t *testing.T) {
	fake := executor.NewFakeExecutor()
	app, _ := setupGitApp(t, fake, true)

	code, env := doRequest(t, app, "POST", "/api/unstage", `{"files":["a.txt"]}`)
	assert.Equal(t, 200, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `"Files unstaged"`, string(env.Data))
	assert.Equal(t, "reset HEAD a.txt", fake.CommandLines()[0])
}

func TestGitHandler_MutationFailures(t *testing.T) {
	failingAdd := func() *executor.FakeExecutor {
		return executor.NewFakeExecutor().
			On(executor.Result{Stderr: "fatal: pathspec 'missing.txt' did not match any files", ExitCode: 128}, "add", "missing.txt")
	}

	t.Run("strict reports failure", func(t *testing.T) {
		app, _ := setupGitApp(t, failingAdd(), true)

		code, env := doRequest(t, app, "POST", "/api/stage", `{"files":["missing.txt"]}`)
		assert.Equal(t, 200, code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "missing.txt")
		assert.JSONEq(t, `"Files staged"`, string(env.Data))
	})

	t.Run("lenient always succeeds", func(t *testing.T) {
		app, _ := setupGitApp(t, failingAdd(), false)

		_, env := doRequest(t, app, "POST", "/api/stage", `{"files":["missing.txt"]}`)
		assert.True(t, env.Success)
		assert.Empty(t, env.Error)
	})

	t.Run("commit output is returned either way", func(t *testing.T) {
		fake := executor.NewFakeExecutor().
			On(executor.Result{Stdout: "On branch main\nnothing to commit, working tree clean\n", ExitCode: 1}, "commit", "-m", "empty")

		app, _ := setupGitApp(t, fake, false)
		_, env := doRequest(t, app, "POST", "/api/commit", `{"message":"empty"}`)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), "nothing to commit")

		app, _ = setupGitApp(t, fake, true)
		_, env = doRequest(t, app, "POST", "/api/commit", `{"message":"empty"}`)
		assert.False(t, env.Success)
		assert.Contains(t, string(env.Data), "nothing to commit")
	})
}

func TestGitHandler_CommitSuccess(t *testing.T) {
	fake := executor.NewFakeExecutor().
		OnOutput("[main abc1234] add feature\n 1 file changed\n", "commit", "-m", "add feature")
	app, _ := setupGitApp(t, fake, true)

	_, env := doRequest(t, app, "POST", "/api/commit", `{"message":"add feature"}`)
	assert.True(t, env.Success)
	assert.JSONEq(t, `"[main abc1234] add feature\n 1 file changed\n"`, string(env.Data))
}

func TestGitHandler_MalformedBody(t *testing.T) {
	fake := executor.NewFakeExecutor()
	app, publisher := setupGitApp(t, fake, true)

	for _, path := range []string{"/api/stage", "/api/unstage", "/api/commit"} {
		t.Run(path, func(t *testing.T) {
			code, env := doRequest(t, app, "POST", path, `{"files":`)
			assert.Equal(t, 400, code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, "Invalid request body")
		})
	}
	assert.Empty(t, fake.Calls())
	assert.Equal(t, 0, publisher.count())
}
