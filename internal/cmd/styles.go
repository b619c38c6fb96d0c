package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vanpelt/gitmonitor/internal/client"
	"github.com/vanpelt/gitmonitor/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	stagedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	untrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)
)

var eventStyles = map[models.FileEventType]lipgloss.Style{
	models.FileCreated:  stagedStyle,
	models.FileModified: changedStyle,
	models.FileDeleted:  untrackStyle,
}

// formatFrame renders one watch frame, or "" for frames that are not shown
func formatFrame(frame client.Frame, verbose bool) string {
	switch frame.Kind {
	case client.FrameGreeting:
		return titleStyle.Render("🔴 " + frame.Text)
	case client.FrameHeartbeat:
		if !verbose {
			return ""
		}
		return dimStyle.Render("♥ " + frame.Text)
	case client.FrameEvent:
		ts := time.UnixMilli(frame.Event.Timestamp).Format("15:04:05")
		label := eventStyles[frame.Event.Type].Render(fmt.Sprintf("%-8s", frame.Event.Type))
		return fmt.Sprintf("%s %s %s", dimStyle.Render(ts), label, frame.Event.Path)
	default:
		return frame.Text
	}
}

// formatStatus renders a status snapshot as a bordered summary
func formatStatus(status *models.GitStatus) string {
	var b strings.Builder

	header := "⎇ " + branchStyle.Render(status.Branch)
	if status.Ahead > 0 || status.Behind > 0 {
		header += dimStyle.Render(fmt.Sprintf("  ↑%d ↓%d", status.Ahead, status.Behind))
	}
	b.WriteString(header)

	if status.IsClean() {
		b.WriteString("\n" + stagedStyle.Render("✓ working tree clean"))
		return boxStyle.Render(b.String())
	}

	section := func(title string, style lipgloss.Style, lines []string) {
		if len(lines) == 0 {
			return
		}
		b.WriteString("\n\n" + style.Bold(true).Render(fmt.Sprintf("%s (%d)", title, len(lines))))
		for _, line := range lines {
			b.WriteString("\n  " + style.Render(line))
		}
	}

	section("Staged", stagedStyle, changeLines(status.Staged))
	section("Unstaged", changedStyle, changeLines(status.Unstaged))
	section("Untracked", untrackStyle, status.Untracked)

	return boxStyle.Render(b.String())
}

func changeLines(changes []models.FileChange) []string {
	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		lines = append(lines, fmt.Sprintf("%s %s", c.Status, c.File))
	}
	return lines
}
