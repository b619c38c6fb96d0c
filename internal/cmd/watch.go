package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vanpelt/gitmonitor/internal/client"
)

var (
	watchURL         string
	watchVerbose     bool
	watchMaxAttempts int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "👀 Stream file change events from a running server",
	Long: `# 👀 Watch

**Connect to a running Git Monitor server and print file changes as they happen.**

The client answers the server's heartbeat and reconnects after a lost connection,
waiting 5 seconds between attempts and giving up after the configured number of
attempts in a row.

## 💡 Examples

` + "```bash\ngitmonitor watch --url http://192.168.1.20:9090\n```",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		policy := client.DefaultReconnectPolicy()
		policy.MaxAttempts = watchMaxAttempts

		return client.Watch(ctx, watchURL, policy,
			func(frame client.Frame) {
				if line := formatFrame(frame, watchVerbose); line != "" {
					fmt.Fprintln(out, line)
				}
			},
			func(state string) {
				fmt.Fprintln(os.Stderr, dimStyle.Render(state))
			})
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "http://localhost:9090", "Server base URL")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Show heartbeat frames")
	watchCmd.Flags().IntVar(&watchMaxAttempts, "max-attempts", client.DefaultMaxAttempts, "Reconnect attempts before giving up")
}
