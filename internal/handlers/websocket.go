package handlers

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/recovery"
	"github.com/vanpelt/gitmonitor/internal/services"
)

const (
	// Greeting is the first frame every WebSocket client receives
	Greeting = "Connected to Git Monitor WebSocket"

	pingPayload = "ping"
	pongPayload = "pong"

	wsWriteTimeout = 10 * time.Second
)

// WebSocketHandler pushes file events to clients over /ws
type WebSocketHandler struct {
	registry          *services.SessionRegistry
	heartbeatInterval time.Duration
}

func NewWebSocketHandler(registry *services.SessionRegistry, heartbeatInterval time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		registry:          registry,
		heartbeatInterval: heartbeatInterval,
	}
}

// HandleWebSocket upgrades the connection and streams file events
// @Summary File event stream
// @Description Sends a greeting, then one JSON FileWatchEvent per text frame. The server sends "ping" periodically and answers "ping" with "pong".
// @Tags events
// @Success 101 {string} string "Switching Protocols"
// @Router /ws [get]
func (h *WebSocketHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	remote := c.IP()
	return websocket.New(func(conn *websocket.Conn) {
		h.handleConnection(conn, remote)
	})(c)
}

// connWriter serializes every write to one connection
type connWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *connWriter) writeText(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return w.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *WebSocketHandler) handleConnection(conn *websocket.Conn, remote string) {
	session := h.registry.Accept("websocket", remote, services.MessageFileEvent)
	log := logger.WithField("session", session.ID)
	writer := &connWriter{conn: conn}

	if err := writer.writeText([]byte(Greeting)); err != nil {
		log.Warn().Err(err).Msg("failed to send greeting")
		h.registry.Remove(session.ID)
		return
	}
	session.Activate()
	log.Info().Str("remote", remote).Int("sessions", h.registry.Count()).Msg("🔌 WebSocket client connected")

	var wg sync.WaitGroup
	wg.Add(3)
	recovery.SafeGoWithCleanup("ws-forward", func() {
		h.forward(session, writer, log)
	}, wg.Done)
	recovery.SafeGoWithCleanup("ws-heartbeat", func() {
		h.heartbeat(session, writer, log)
	}, wg.Done)
	// Closing the connection unblocks the read loop when the session is
	// removed from elsewhere, e.g. on shutdown.
	recovery.SafeGoWithCleanup("ws-closer", func() {
		<-session.Done()
		_ = conn.Close()
	}, wg.Done)

	h.readLoop(conn, writer, log)

	h.registry.Remove(session.ID)
	wg.Wait()
	log.Info().Int("sessions", h.registry.Count()).Msg("🔌 WebSocket client disconnected")
}

func (h *WebSocketHandler) readLoop(conn *websocket.Conn, writer *connWriter, log zerolog.Logger) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("websocket read ended")
			return
		}

		switch string(data) {
		case pongPayload:
			log.Debug().Msg("heartbeat reply")
		case pingPayload:
			if err := writer.writeText([]byte(pongPayload)); err != nil {
				log.Debug().Err(err).Msg("failed to answer ping")
				return
			}
		default:
			log.Info().Str("message", string(data)).Msg("received client message")
		}
	}
}

func (h *WebSocketHandler) forward(session *services.Session, writer *connWriter, log zerolog.Logger) {
	for {
		select {
		case <-session.Done():
			return
		case msg := <-session.Outbound():
			if msg.Event == nil {
				continue
			}
			data, err := json.Marshal(msg.Event)
			if err != nil {
				log.Error().Err(err).Msg("failed to encode file event")
				continue
			}
			if err := writer.writeText(data); err != nil {
				log.Debug().Err(err).Msg("failed to forward file event")
				return
			}
		}
	}
}

// heartbeat stops for good after the first failed send
func (h *WebSocketHandler) heartbeat(session *services.Session, writer *connWriter, log zerolog.Logger) {
	if h.heartbeatInterval <= 0 {
		<-session.Done()
		return
	}
	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-session.Done():
			return
		case <-ticker.C:
			if err := writer.writeText([]byte(pingPayload)); err != nil {
				log.Debug().Err(err).Msg("heartbeat failed, stopping")
				return
			}
		}
	}
}
