package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ".", cfg.RepoPath)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 20*time.Second, cfg.HeartbeatInterval)
	assert.Zero(t, cfg.CommandTimeout)
	assert.True(t, cfg.StrictMutations)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("yaml file overrides defaults", func(t *testing.T) {
		t.Setenv("GITMONITOR_PORT", "")
		path := filepath.Join(t.TempDir(), "gitmonitor.yaml")
		content := "port: 8181\nrepo: /srv/repo\nheartbeat_interval: 5s\nstrict_mutations: false\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8181, cfg.Port)
		assert.Equal(t, "/srv/repo", cfg.RepoPath)
		assert.Equal(t, 5*time.Second, cfg.HeartbeatInterval)
		assert.False(t, cfg.StrictMutations)
		assert.Equal(t, DefaultHost, cfg.Host)
	})

	t.Run("environment beats file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gitmonitor.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: 8181\n"), 0644))
		t.Setenv("GITMONITOR_PORT", "7000")
		t.Setenv("GITMONITOR_HOST", "127.0.0.1")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, "127.0.0.1", cfg.Host)
	})

	t.Run("invalid port in environment", func(t *testing.T) {
		t.Setenv("GITMONITOR_PORT", "nope")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("GITMONITOR_PORT", "")
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Setenv("GITMONITOR_PORT", "")
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content:"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.HeartbeatInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.GitBinary = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "git", cfg.GitBinary)
}
