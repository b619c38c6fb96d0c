package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
	"github.com/vanpelt/gitmonitor/internal/services"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Endpoint is one row of the dashboard's API listing
type Endpoint struct {
	Method      string
	Path        string
	Description string
}

// Class is the CSS class used to color the method badge
func (e Endpoint) Class() string {
	switch e.Method {
	case fiber.MethodPost:
		return "post"
	case "WS":
		return "ws"
	default:
		return "get"
	}
}

var dashboardEndpoints = []Endpoint{
	{fiber.MethodGet, "/api/status", "Get current git status"},
	{fiber.MethodGet, "/api/diff", "Get unstaged changes"},
	{fiber.MethodGet, "/api/diff/staged", "Get staged changes"},
	{fiber.MethodGet, "/api/log?limit=20", "Get commit history"},
	{fiber.MethodGet, "/api/branches", "List branches"},
	{fiber.MethodPost, "/api/stage", "Stage files"},
	{fiber.MethodPost, "/api/unstage", "Unstage files"},
	{fiber.MethodPost, "/api/commit", "Create commit"},
	{fiber.MethodGet, "/api/events", "Server-Sent Events stream"},
	{"WS", "/ws", "WebSocket for real-time updates"},
	{fiber.MethodGet, "/swagger/index.html", "API documentation"},
}

type indexData struct {
	Repo        string
	Port        int
	Connections int
	Sessions    []services.SessionInfo
	Status      string
	Endpoints   []Endpoint
}

// IndexHandler renders the HTML dashboard
type IndexHandler struct {
	repoPath string
	port     int
	registry *services.SessionRegistry
	snapshot StatusSnapshot
}

func NewIndexHandler(repoPath string, port int, registry *services.SessionRegistry, snapshot StatusSnapshot) *IndexHandler {
	return &IndexHandler{
		repoPath: repoPath,
		port:     port,
		registry: registry,
		snapshot: snapshot,
	}
}

// GetIndex renders the dashboard
func (h *IndexHandler) GetIndex(c *fiber.Ctx) error {
	sessions := h.registry.Sessions()
	data := indexData{
		Repo:        h.repoPath,
		Port:        h.port,
		Connections: len(sessions),
		Sessions:    sessions,
		Endpoints:   dashboardEndpoints,
	}
	if h.snapshot != nil {
		if status := h.snapshot.LastStatus(); status != nil {
			if b, err := json.MarshalIndent(status, "", "  "); err == nil {
				data.Status = string(b)
			}
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		logger.Errorf("Failed to render dashboard: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Health is a liveness probe
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health [get]
func (h *IndexHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.Success(fiber.Map{
		"status":   "ok",
		"sessions": h.registry.Count(),
	}))
}
