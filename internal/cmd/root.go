package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vanpelt/gitmonitor/internal/config"
	"github.com/vanpelt/gitmonitor/internal/git"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/server"
)

// serverOptions holds the root command's flag values
type serverOptions struct {
	port       int
	repo       string
	host       string
	configPath string
	dev        bool
}

var rootOpts = &serverOptions{}

var rootCmd = &cobra.Command{
	Use:   "gitmonitor",
	Short: "🔴 Git Monitor - live git working tree status over HTTP and WebSocket",
	Long: `# 🔴 Git Monitor

**Serve the live state of a git working tree to remote clients.**

## ✨ Features

- 📊 **Status, diff, log and branches** as JSON under /api
- ✏️  **Stage, unstage and commit** from a remote client
- 📁 **File change push** over WebSocket (/ws) and Server-Sent Events (/api/events)
- 🌐 **Dashboard** at / and API docs at /swagger/index.html

## ⚙️  Configuration

Settings are read from defaults, then a YAML file (**--config** or **GITMONITOR_CONFIG**),
then **GITMONITOR_HOST**, **GITMONITOR_PORT**, **GITMONITOR_REPO** and **GITMONITOR_LOG_LEVEL**,
then explicit flags.

## 💡 Examples

` + "```bash\ngitmonitor --repo ~/src/project --port 9090\n```",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := rootOpts.resolveConfig(cmd)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	bindServerFlags(rootCmd, rootOpts)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderMarkdownHelp(cmd)
	})

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(diffCmd)
}

func bindServerFlags(cmd *cobra.Command, opts *serverOptions) {
	flags := cmd.Flags()
	// -h is the host shorthand, so help is only reachable as --help
	flags.IntVarP(&opts.port, "port", "p", config.DefaultPort, "Port to listen on")
	flags.StringVarP(&opts.repo, "repo", "r", config.DefaultRepoPath, "Path to the git repository")
	flags.StringVarP(&opts.host, "host", "h", config.DefaultHost, "Host to bind to")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.BoolVar(&opts.dev, "dev", false, "Development mode (console logs, debug level)")
	flags.Bool("help", false, "Show help")
}

// resolveConfig layers explicitly set flags over defaults, file and environment
func (o *serverOptions) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("repo") {
		cfg.RepoPath = o.repo
	}
	if flags.Changed("host") {
		cfg.Host = o.host
	}
	if flags.Changed("dev") {
		cfg.Dev = o.dev
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func configureLogging(cfg *config.Config) {
	level := logger.GetLogLevelFromEnv(cfg.Dev)
	if cfg.LogLevel != "" {
		level = logger.ParseLevel(cfg.LogLevel)
	}
	logger.Configure(level, cfg.Dev)
}

// resolveRepository points the config at the enclosing worktree root. A path
// outside any repository is kept as is; only live status will be degraded.
func resolveRepository(cfg *config.Config) {
	abs, err := cfg.AbsRepoPath()
	if err != nil {
		logger.Warnf("⚠️ %v", err)
		return
	}

	root, err := git.DetectRoot(abs)
	if err != nil {
		logger.Warnf("⚠️ %s is not a git repository: %v", abs, err)
		cfg.RepoPath = abs
		return
	}
	if root != abs {
		logger.Infof("📂 Using repository root %s", root)
	}
	cfg.RepoPath = root
}

func runServer(ctx context.Context, cfg *config.Config) error {
	configureLogging(cfg)
	resolveRepository(cfg)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	logger.Infof("🔴 Git Monitor Server starting")
	logger.Infof("📂 Repository: %s", cfg.RepoPath)
	logger.Infof("🌐 Dashboard: http://%s", cfg.Addr())
	logger.Infof("🔌 WebSocket: ws://%s/ws", cfg.Addr())

	srv.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("🛑 Shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logger.Debugf("listener returned: %v", err)
	}
	logger.Infof("👋 Stopped")
	return nil
}
