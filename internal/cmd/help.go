package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// renderMarkdownHelp renders command help as markdown through glamour
func renderMarkdownHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	rendered, err := renderHelp(cmd)
	if err != nil {
		_ = cmd.Usage()
		return
	}
	fmt.Fprint(out, rendered)
}

func renderHelp(cmd *cobra.Command) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(helpMarkdown(cmd))
}

func helpMarkdown(cmd *cobra.Command) string {
	var b strings.Builder

	if cmd.Long != "" {
		b.WriteString(cmd.Long)
	} else {
		b.WriteString("# " + cmd.Short)
	}
	b.WriteString("\n\n## 📖 Usage\n\n```bash\n")
	b.WriteString(cmd.UseLine())
	b.WriteString("\n```\n\n")

	if cmd.HasAvailableSubCommands() {
		b.WriteString("## 🔧 Available Commands\n\n")
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				fmt.Fprintf(&b, "- **%s** - %s\n", sub.Name(), sub.Short)
			}
		}
		b.WriteString("\n")
	}

	if usages := cmd.LocalFlags().FlagUsages(); usages != "" {
		b.WriteString("## ⚙️  Flags\n\n```\n")
		b.WriteString(usages)
		b.WriteString("```\n\n")
	}
	if cmd.HasParent() {
		if usages := cmd.InheritedFlags().FlagUsages(); usages != "" {
			b.WriteString("## 🌐 Global Flags\n\n```\n")
			b.WriteString(usages)
			b.WriteString("```\n\n")
		}
	}
	return b.String()
}
