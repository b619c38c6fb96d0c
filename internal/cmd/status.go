package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vanpelt/gitmonitor/internal/client"
)

var (
	statusURL     string
	statusTimeout time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "📊 Print the working tree status reported by a running server",
	Long: `# 📊 Status

**Fetch /api/status from a running Git Monitor server and print a summary.**

## 💡 Examples

` + "```bash\ngitmonitor status --url http://localhost:9090\n```",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.FetchStatus(statusURL, statusTimeout)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatStatus(status))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusURL, "url", "http://localhost:9090", "Server base URL")
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 10*time.Second, "Request timeout")
}
