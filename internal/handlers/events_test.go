package handlers

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanpelt/gitmonitor/internal/models"
	"github.com/vanpelt/gitmonitor/internal/services"
)

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

type staticSnapshot struct {
	status *models.GitStatus
}

func (s staticSnapshot) LastStatus() *models.GitStatus { return s.status }

// readSSE returns the next data payload from an SSE stream
func readSSE(t *testing.T, reader *bufio.Reader) SSEMessage {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			var msg SSEMessage
			require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(data)), &msg))
			return msg
		}
	}
}

func TestEventsHandler_Stream(t *testing.T) {
	registry := services.NewSessionRegistry(16)
	status := models.NewGitStatus("main")
	handler := NewEventsHandler(registry, staticSnapshot{status: status}, time.Minute)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/api/events", handler.HandleSSE)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() {
		registry.CloseAll()
		_ = app.Shutdown()
	})

	req, err := http.NewRequest("GET", "http://"+ln.Addr().String()+"/api/events", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	assert.Equal(t, HeartbeatEvent, readSSE(t, reader).Event.Type)

	initial := readSSE(t, reader)
	assert.Equal(t, GitStatusEvent, initial.Event.Type)
	assert.NotEmpty(t, initial.ID)

	require.Eventually(t, func() bool { return registry.Count() == 1 }, 3*time.Second, 10*time.Millisecond)

	event := models.NewFileWatchEvent(models.FileDeleted, "/repo/gone.txt")
	registry.Broadcast(services.Message{Type: services.MessageFileEvent, Event: &event})

	msg := readSSE(t, reader)
	assert.Equal(t, FileChangedEvent, msg.Event.Type)
	payload, ok := msg.Event.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "deleted", payload["type"])
	assert.Equal(t, "/repo/gone.txt", payload["path"])

	registry.Broadcast(services.Message{Type: services.MessageStatus, Status: models.NewGitStatus("feature")})
	msg = readSSE(t, reader)
	assert.Equal(t, GitStatusEvent, msg.Event.Type)
	payload, ok = msg.Event.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "feature", payload["branch"])
}

func TestEventsHandler_RejectsNonSSE(t *testing.T) {
	handler := NewEventsHandler(services.NewSessionRegistry(1), nil, time.Minute)
	app := fiber.New()
	app.Get("/api/events", handler.HandleSSE)

	req := httptestRequest("GET", "/api/events")
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
