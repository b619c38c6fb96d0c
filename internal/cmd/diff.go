package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vanpelt/gitmonitor/internal/client"
)

var (
	diffURL     string
	diffStaged  bool
	diffTimeout time.Duration
	diffNoColor bool
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "🔍 Print the working tree or staged diff from a running server",
	Long: `# 🔍 Diff

**Fetch /api/diff (or /api/diff/staged) from a running Git Monitor server and print it with syntax highlighting.**

## 💡 Examples

` + "```bash\ngitmonitor diff --url http://localhost:9090 --staged\n```",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, err := client.FetchDiff(diffURL, diffStaged, diffTimeout)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("no changes"))
			return nil
		}

		color := !diffNoColor && isatty.IsTerminal(os.Stdout.Fd())
		return writeDiff(cmd.OutOrStdout(), diff, color)
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffURL, "url", "http://localhost:9090", "Server base URL")
	diffCmd.Flags().BoolVar(&diffStaged, "staged", false, "Show the staged diff")
	diffCmd.Flags().DurationVar(&diffTimeout, "timeout", 10*time.Second, "Request timeout")
	diffCmd.Flags().BoolVar(&diffNoColor, "no-color", false, "Disable syntax highlighting")
}

// writeDiff prints diff, highlighted with the chroma diff lexer when color is set
func writeDiff(w io.Writer, diff string, color bool) error {
	if !color {
		_, err := io.WriteString(w, diff)
		return err
	}

	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github-dark")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, diff)
	if err != nil {
		return fmt.Errorf("failed to tokenise diff: %w", err)
	}
	return formatter.Format(w, style, iterator)
}
