package git

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vanpelt/gitmonitor/internal/models"
)

var (
	aheadPattern  = regexp.MustCompile(`ahead (\d+)`)
	behindPattern = regexp.MustCompile(`behind (\d+)`)
)

// ParsePorcelainStatus classifies `git status --porcelain -b` output.
// The branch header and blank lines are skipped. A file changed in both the
// index and the worktree is reported once, as staged, with its full code.
func ParsePorcelainStatus(output string, status *models.GitStatus) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, "##") {
			continue
		}

		code := line
		if len(code) > 2 {
			code = code[:2]
		}
		file := ""
		if len(line) > 3 {
			file = line[3:]
		}

		if code == "??" {
			status.Untracked = append(status.Untracked, file)
			continue
		}
		if len(code) > 0 && code[0] != ' ' && code[0] != '?' {
			status.Staged = append(status.Staged, models.FileChange{Status: code, File: file})
		} else if len(code) > 1 && code[1] != ' ' && code[1] != '?' {
			status.Unstaged = append(status.Unstaged, models.FileChange{Status: code, File: file})
		}
	}
}

// ParseTracking extracts ahead/behind counts from the first line of
// `git status -sb`. Missing tokens, including the no-upstream case, yield 0.
func ParseTracking(output string) (ahead, behind int) {
	first, _, _ := strings.Cut(output, "\n")
	return matchCount(aheadPattern, first), matchCount(behindPattern, first)
}

func matchCount(re *regexp.Regexp, line string) int {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseLog turns `%H|%an|%ad|%s` lines into commits. A line with fewer than
// four fields is kept with the raw line as its message so nothing is dropped.
func ParseLog(output string) []models.CommitInfo {
	commits := []models.CommitInfo{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			commits = append(commits, models.CommitInfo{Message: line})
			continue
		}
		commits = append(commits, models.CommitInfo{
			Hash:    parts[0],
			Author:  parts[1],
			Date:    parts[2],
			Message: parts[3],
		})
	}
	return commits
}

// ParseBranches returns each non-empty line of `git branch -a`, trimmed
func ParseBranches(output string) []string {
	branches := []string{}
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			branches = append(branches, trimmed)
		}
	}
	return branches
}
