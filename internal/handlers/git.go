package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vanpelt/gitmonitor/internal/git"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
)

// StatusPublisher receives the snapshot taken after every mutation
type StatusPublisher interface {
	PublishStatus(status *models.GitStatus)
}

// GitHandler serves the repository query and mutation endpoints
type GitHandler struct {
	repo            *git.Repository
	publisher       StatusPublisher
	strictMutations bool
}

// NewGitHandler creates a new Git handler. With strictMutations a failed git
// command turns the response into success:false.
func NewGitHandler(repo *git.Repository, publisher StatusPublisher, strictMutations bool) *GitHandler {
	return &GitHandler{
		repo:            repo,
		publisher:       publisher,
		strictMutations: strictMutations,
	}
}

// publishStatus pushes a fresh snapshot after a mutation. Plain status
// queries do not publish, so polling clients never fan out to every stream.
func (h *GitHandler) publishStatus(ctx context.Context) {
	if h.publisher != nil {
		h.publisher.PublishStatus(h.repo.Status(ctx))
	}
}

// GetStatus returns the current Git status
// @Summary Get Git status
// @Description Returns branch, staged, unstaged and untracked files plus ahead/behind counts
// @Tags git
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.GitStatus}
// @Router /api/status [get]
func (h *GitHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(models.Success(h.repo.Status(c.UserContext())))
}

// GetDiff returns the unstaged diff
// @Summary Get unstaged diff
// @Tags git
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DiffResponse}
// @Router /api/diff [get]
func (h *GitHandler) GetDiff(c *fiber.Ctx) error {
	diff := h.repo.Diff(c.UserContext(), false)
	return c.JSON(models.Success(models.DiffResponse{Diff: diff}))
}

// GetStagedDiff returns the staged diff
// @Summary Get staged diff
// @Tags git
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DiffResponse}
// @Router /api/diff/staged [get]
func (h *GitHandler) GetStagedDiff(c *fiber.Ctx) error {
	diff := h.repo.Diff(c.UserContext(), true)
	return c.JSON(models.Success(models.DiffResponse{Diff: diff}))
}

// GetLog returns recent commits
// @Summary Get commit history
// @Description Returns up to limit commits, newest first. A missing or invalid limit means 20.
// @Tags git
// @Produce json
// @Param limit query int false "Maximum number of commits" default(20)
// @Success 200 {object} models.APIResponse{data=[]models.CommitInfo}
// @Router /api/log [get]
func (h *GitHandler) GetLog(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"))
	return c.JSON(models.Success(h.repo.Log(c.UserContext(), limit)))
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return git.DefaultLogLimit
	}
	return limit
}

// GetBranches lists branches
// @Summary List branches
// @Description One entry per line of `git branch -a`, trimmed
// @Tags git
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]string}
// @Router /api/branches [get]
func (h *GitHandler) GetBranches(c *fiber.Ctx) error {
	return c.JSON(models.Success(h.repo.Branches(c.UserContext())))
}

// StageFiles stages files
// @Summary Stage files
// @Description Runs `git add` once per file in the given order
// @Tags git
// @Accept json
// @Produce json
// @Param request body models.StageRequest true "Files to stage"
// @Success 200 {object} models.APIResponse{data=string}
// @Failure 400 {object} models.APIResponse
// @Router /api/stage [post]
func (h *GitHandler) StageFiles(c *fiber.Ctx) error {
	var req models.StageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	logger.Infof("➕ Staging %d files", len(req.Files))
	result := h.repo.Stage(c.UserContext(), req.Files)
	return h.mutationResponse(c, "Files staged", result)
}

// UnstageFiles unstages files
// @Summary Unstage files
// @Description Runs `git reset HEAD` once per file in the given order
// @Tags git
// @Accept json
// @Produce json
// @Param request body models.StageRequest true "Files to unstage"
// @Success 200 {object} models.APIResponse{data=string}
// @Failure 400 {object} models.APIResponse
// @Router /api/unstage [post]
func (h *GitHandler) UnstageFiles(c *fiber.Ctx) error {
	var req models.StageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	logger.Infof("➖ Unstaging %d files", len(req.Files))
	result := h.repo.Unstage(c.UserContext(), req.Files)
	return h.mutationResponse(c, "Files unstaged", result)
}

// Commit commits the index
// @Summary Commit staged changes
// @Description Runs `git commit -m` and returns the raw command output
// @Tags git
// @Accept json
// @Produce json
// @Param request body models.CommitRequest true "Commit message"
// @Success 200 {object} models.APIResponse{data=string}
// @Failure 400 {object} models.APIResponse
// @Router /api/commit [post]
func (h *GitHandler) Commit(c *fiber.Ctx) error {
	var req models.CommitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	logger.Infof("📝 Committing: %s", req.Message)
	result := h.repo.Commit(c.UserContext(), req.Message)
	return h.mutationResponse(c, result.Output, result)
}

func (h *GitHandler) mutationResponse(c *fiber.Ctx, data string, result git.MutationResult) error {
	h.publishStatus(c.UserContext())

	if h.strictMutations && result.Failed() {
		logger.Warnf("❌ git mutation failed: %s", result.Error())
		resp := models.Failure(result.Error())
		resp.Data = data
		return c.JSON(resp)
	}
	return c.JSON(models.Success(data))
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.Failure("Invalid request body: " + err.Error()))
}
