package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
	"github.com/vanpelt/gitmonitor/internal/services"
)

// EventType is the type of an SSE event
type EventType string

const (
	FileChangedEvent EventType = "file:changed"
	GitStatusEvent   EventType = "git:status"
	HeartbeatEvent   EventType = "heartbeat"
)

type AppEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

type HeartbeatPayload struct {
	Timestamp int64 `json:"timestamp"`
	Uptime    int64 `json:"uptime"`
	Sessions  int   `json:"sessions"`
}

type SSEMessage struct {
	Event     AppEvent `json:"event"`
	Timestamp int64    `json:"timestamp"`
	ID        string   `json:"id"`
}

// StatusSnapshot exposes the most recently published status
type StatusSnapshot interface {
	LastStatus() *models.GitStatus
}

// EventsHandler streams file events and status snapshots as Server-Sent Events
type EventsHandler struct {
	registry          *services.SessionRegistry
	snapshot          StatusSnapshot
	heartbeatInterval time.Duration
	startTime         time.Time
}

func NewEventsHandler(registry *services.SessionRegistry, snapshot StatusSnapshot, heartbeatInterval time.Duration) *EventsHandler {
	return &EventsHandler{
		registry:          registry,
		snapshot:          snapshot,
		heartbeatInterval: heartbeatInterval,
		startTime:         time.Now(),
	}
}

// HandleSSE streams repository events to the browser
// @Summary Server-Sent Events stream
// @Description Streams repository events in Server-Sent Events format.
// @Description
// @Description ## Event Types
// @Description - **file:changed**: a file under the repository was created, modified or deleted (payload is a FileWatchEvent)
// @Description - **git:status**: a fresh GitStatus snapshot, sent on connect and after changes settle
// @Description - **heartbeat**: sent periodically to keep the connection alive
// @Description
// @Description Each message is a JSON object with `event` (`type` and `payload`), `timestamp` and `id`.
// @Tags events
// @Accept text/event-stream
// @Produce text/event-stream
// @Success 200 {object} SSEMessage "SSE stream of events"
// @Router /api/events [get]
func (h *EventsHandler) HandleSSE(c *fiber.Ctx) error {
	if ah := c.Get("Accept"); ah != "" && !strings.Contains(ah, "text/event-stream") && !strings.Contains(ah, "*/*") {
		return c.Status(fiber.StatusBadRequest).JSON(models.Failure("This endpoint only accepts Server-Sent Events (text/event-stream)"))
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	session := h.registry.Accept("sse", c.IP(), services.MessageFileEvent, services.MessageStatus)
	session.Activate()
	logger.Infof("SSE client connected: %s from %s", session.ID, c.IP())

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.registry.Remove(session.ID)
			logger.Infof("SSE client disconnected: %s", session.ID)
		}()

		send := func(msg SSEMessage) bool {
			b, err := json.Marshal(msg)
			if err != nil {
				logger.Errorf("Failed to encode SSE message: %v", err)
				return true
			}
			if _, err := fmt.Fprintf(w, "id: %s\ndata: %s\n\n", msg.ID, b); err != nil {
				return false
			}
			return w.Flush() == nil
		}

		if !send(h.makeHeartbeat()) {
			return
		}
		if status := h.lastStatus(); status != nil {
			if !send(makeMessage(GitStatusEvent, status)) {
				return
			}
		}

		interval := h.heartbeatInterval
		if interval <= 0 {
			interval = 30 * time.Second
		}
		tick := time.NewTicker(interval)
		defer tick.Stop()

		for {
			select {
			case <-session.Done():
				return
			case msg := <-session.Outbound():
				var out SSEMessage
				switch {
				case msg.Event != nil:
					out = makeMessage(FileChangedEvent, msg.Event)
				case msg.Status != nil:
					out = makeMessage(GitStatusEvent, msg.Status)
				default:
					continue
				}
				if !send(out) {
					return
				}
			case <-tick.C:
				if !send(h.makeHeartbeat()) {
					return
				}
			}
		}
	}))

	return nil
}

func makeMessage(eventType EventType, payload any) SSEMessage {
	return SSEMessage{
		Event:     AppEvent{Type: eventType, Payload: payload},
		Timestamp: time.Now().UnixMilli(),
		ID:        uuid.New().String(),
	}
}

func (h *EventsHandler) makeHeartbeat() SSEMessage {
	return makeMessage(HeartbeatEvent, HeartbeatPayload{
		Timestamp: time.Now().UnixMilli(),
		Uptime:    time.Since(h.startTime).Milliseconds(),
		Sessions:  h.registry.Count(),
	})
}

func (h *EventsHandler) lastStatus() *models.GitStatus {
	if h.snapshot == nil {
		return nil
	}
	return h.snapshot.LastStatus()
}
