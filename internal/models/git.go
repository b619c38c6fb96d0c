package models

// FileChange is one porcelain status entry. Status keeps both code
// characters: index state first, worktree state second.
type FileChange struct {
	Status string `json:"status"`
	File   string `json:"file"`
}

// GitStatus is a point-in-time snapshot of the working tree
type GitStatus struct {
	Branch    string       `json:"branch"`
	Staged    []FileChange `json:"staged"`
	Unstaged  []FileChange `json:"unstaged"`
	Untracked []string     `json:"untracked"`
	Ahead     int          `json:"ahead"`
	Behind    int          `json:"behind"`
}

// NewGitStatus returns an empty snapshot whose lists marshal as [] rather than null
func NewGitStatus(branch string) *GitStatus {
	return &GitStatus{
		Branch:    branch,
		Staged:    []FileChange{},
		Unstaged:  []FileChange{},
		Untracked: []string{},
	}
}

// IsClean reports whether the snapshot has no changes at all
func (s *GitStatus) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// CommitInfo is one line of history
type CommitInfo struct {
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// StageRequest is the body of /api/stage and /api/unstage
type StageRequest struct {
	Files []string `json:"files"`
}

// CommitRequest is the body of /api/commit
type CommitRequest struct {
	Message string `json:"message"`
}

// DiffResponse wraps raw diff output
type DiffResponse struct {
	Diff string `json:"diff"`
}
