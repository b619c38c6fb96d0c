package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGitStatusMarshalsEmptyArrays(t *testing.T) {
	b, err := json.Marshal(NewGitStatus("main"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"branch":"main","staged":[],"unstaged":[],"untracked":[],"ahead":0,"behind":0}`, string(b))
}

func TestGitStatusIsClean(t *testing.T) {
	status := NewGitStatus("main")
	assert.True(t, status.IsClean())

	status.Untracked = append(status.Untracked, "x")
	assert.False(t, status.IsClean())
}

func TestEnvelopeOmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(Success(nil))
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"data"`)
	assert.NotContains(t, string(b), `"error"`)

	b, err = json.Marshal(Failure("nope"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"success":false`)
	assert.Contains(t, string(b), `"error":"nope"`)
	assert.NotContains(t, string(b), `"data"`)
}

func TestNewFileWatchEvent(t *testing.T) {
	ev := NewFileWatchEvent(FileDeleted, "/repo/a")
	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "deleted", decoded["type"])
	assert.Equal(t, "/repo/a", decoded["path"])
	assert.Greater(t, decoded["timestamp"].(float64), float64(0))
}
