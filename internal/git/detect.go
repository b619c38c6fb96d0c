package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// DetectRoot finds the working tree root containing path, walking up to the
// nearest .git the same way git itself does.
func DetectRoot(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", fmt.Errorf("%s is not a git repository: %w", absPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("repository at %s has no worktree: %w", absPath, err)
	}
	return worktree.Filesystem.Root(), nil
}
