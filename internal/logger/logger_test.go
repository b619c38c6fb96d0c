package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		" DEBUG ": LevelDebug,
		"warning": LevelWarn,
		"warn":    LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"":        LevelInfo,
		"chatty":  LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("DEBUG", "")
	assert.Equal(t, LevelInfo, GetLogLevelFromEnv(false))
	assert.Equal(t, LevelDebug, GetLogLevelFromEnv(true))

	t.Setenv("DEBUG", "true")
	assert.Equal(t, LevelDebug, GetLogLevelFromEnv(false))

	t.Setenv("DEBUG", "0")
	assert.Equal(t, LevelInfo, GetLogLevelFromEnv(true))
}

func TestConfigureWriter(t *testing.T) {
	t.Cleanup(func() { Configure(LevelInfo, false) })

	var buf bytes.Buffer
	ConfigureWriter(LevelWarn, false, &buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	log := WithField("session", "abc")
	log.Warn().Msg("visible")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "abc", entry["session"])
	assert.Equal(t, "visible", entry["message"])
}

func TestConfigureWriterDevIsHumanReadable(t *testing.T) {
	t.Cleanup(func() { Configure(LevelInfo, false) })

	var buf bytes.Buffer
	ConfigureWriter(LevelDebug, true, &buf)
	Debugf("watching %s", "/repo")

	assert.Contains(t, buf.String(), "watching /repo")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
