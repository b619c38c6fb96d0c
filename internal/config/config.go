package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 9090
	DefaultRepoPath          = "."
	DefaultGitBinary         = "git"
	DefaultHeartbeatInterval = 20 * time.Second
	DefaultEventBuffer       = 256
	DefaultSessionBuffer     = 100
	DefaultStatusDebounce    = 350 * time.Millisecond
)

// Config holds everything the monitor server needs at startup
type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	RepoPath  string `yaml:"repo"`
	GitBinary string `yaml:"git_binary"`

	// HeartbeatInterval is how often each WebSocket session is sent "ping"
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	// CommandTimeout bounds each git invocation. Zero means no timeout.
	CommandTimeout time.Duration `yaml:"command_timeout"`
	EventBuffer    int           `yaml:"event_buffer"`
	SessionBuffer  int           `yaml:"session_buffer"`
	StatusDebounce time.Duration `yaml:"status_debounce"`

	// StrictMutations reports failed stage/unstage/commit commands as success=false.
	StrictMutations bool `yaml:"strict_mutations"`
	PrettyJSON      bool `yaml:"pretty_json"`

	Dev      bool   `yaml:"dev"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is provided
func Default() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		RepoPath:          DefaultRepoPath,
		GitBinary:         DefaultGitBinary,
		HeartbeatInterval: DefaultHeartbeatInterval,
		EventBuffer:       DefaultEventBuffer,
		SessionBuffer:     DefaultSessionBuffer,
		StatusDebounce:    DefaultStatusDebounce,
		StrictMutations:   true,
		PrettyJSON:        true,
	}
}

// Load builds a config from defaults, an optional YAML file and the environment.
// An empty path falls back to GITMONITOR_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GITMONITOR_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if host := os.Getenv("GITMONITOR_HOST"); host != "" {
		c.Host = host
	}
	if repo := os.Getenv("GITMONITOR_REPO"); repo != "" {
		c.RepoPath = repo
	}
	if port := os.Getenv("GITMONITOR_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid GITMONITOR_PORT %q: %w", port, err)
		}
		c.Port = p
	}
	if level := os.Getenv("GITMONITOR_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	return nil
}

// Validate checks the values that would otherwise fail deep inside the server
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.RepoPath) == "" {
		return fmt.Errorf("repository path is required")
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat_interval must be positive")
	}
	if c.EventBuffer <= 0 || c.SessionBuffer <= 0 {
		return fmt.Errorf("event_buffer and session_buffer must be positive")
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must not be negative")
	}
	if c.GitBinary == "" {
		c.GitBinary = DefaultGitBinary
	}
	return nil
}

// AbsRepoPath resolves RepoPath against the current directory
func (c *Config) AbsRepoPath() (string, error) {
	abs, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository path %s: %w", c.RepoPath, err)
	}
	return abs, nil
}

// Addr is the host:port the server binds to
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
