package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// fixtureRepo is an on-disk repository built with go-git so tests do not
// depend on the local git configuration for setup.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	when time.Time
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &fixtureRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		when: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixtureRepo) write(name, content string) {
	f.t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0644))
}

func (f *fixtureRepo) add(name string) {
	f.t.Helper()
	wt, err := f.repo.Worktree()
	require.NoError(f.t, err)
	_, err = wt.Add(name)
	require.NoError(f.t, err)
}

func (f *fixtureRepo) commitFile(name, content, message string) string {
	f.t.Helper()
	f.write(name, content)
	f.add(name)

	wt, err := f.repo.Worktree()
	require.NoError(f.t, err)
	f.when = f.when.Add(time.Hour)
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: f.when},
	})
	require.NoError(f.t, err)
	return hash.String()
}

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}
