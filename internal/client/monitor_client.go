package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vanpelt/gitmonitor/internal/models"
)

const (
	greetingPrefix = "Connected to"
	pingPayload    = "ping"
	pongPayload    = "pong"
)

// FrameKind classifies a text frame received from the server
type FrameKind int

const (
	FrameGreeting FrameKind = iota
	FrameHeartbeat
	FrameEvent
	FrameText
)

// Frame is one decoded server message
type Frame struct {
	Kind  FrameKind
	Text  string
	Event *models.FileWatchEvent
}

// MonitorClient is a WebSocket client for the /ws endpoint
type MonitorClient struct {
	baseURL string
	dialer  *websocket.Dialer
	mu      sync.Mutex
	conn    *websocket.Conn
}

func NewMonitorClient(baseURL string) *MonitorClient {
	return &MonitorClient{
		baseURL: baseURL,
		dialer:  websocket.DefaultDialer,
	}
}

// WebSocketURL turns an http(s) base URL into the ws(s) URL of /ws
func WebSocketURL(baseURL string) (string, error) {
	u, err := parseBase(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"
	return u.String(), nil
}

// HTTPURL joins an API path onto the base URL
func HTTPURL(baseURL, path string) (string, error) {
	u, err := parseBase(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}
	u.Path = path
	return u.String(), nil
}

func parseBase(baseURL string) (*url.URL, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}
	return u, nil
}

// Connect dials the server
func (c *MonitorClient) Connect(ctx context.Context) error {
	wsURL, err := WebSocketURL(c.baseURL)
	if err != nil {
		return err
	}

	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	return nil
}

// Listen reads frames until the connection fails or ctx is done. Heartbeat
// probes are answered before onFrame sees them.
func (c *MonitorClient) Listen(ctx context.Context, onFrame func(Frame)) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("not connected")
	}

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		frame := decodeFrame(string(data))
		if frame.Kind == FrameHeartbeat && frame.Text == pingPayload {
			if err := c.Send(pongPayload); err != nil {
				return fmt.Errorf("failed to answer heartbeat: %w", err)
			}
		}
		if onFrame != nil {
			onFrame(frame)
		}
	}
}

func decodeFrame(text string) Frame {
	switch {
	case text == pingPayload || text == pongPayload:
		return Frame{Kind: FrameHeartbeat, Text: text}
	case strings.HasPrefix(text, greetingPrefix):
		return Frame{Kind: FrameGreeting, Text: text}
	}

	var event models.FileWatchEvent
	if err := json.Unmarshal([]byte(text), &event); err == nil && event.Type != "" {
		return Frame{Kind: FrameEvent, Text: text, Event: &event}
	}
	return Frame{Kind: FrameText, Text: text}
}

// Send writes one text frame
func (c *MonitorClient) Send(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("not connected")
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (c *MonitorClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
