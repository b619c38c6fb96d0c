package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vanpelt/gitmonitor/internal/models"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// getData performs GET path and unwraps the response envelope into T
func getData[T any](baseURL, path string, timeout time.Duration) (T, error) {
	var zero T
	endpoint, err := HTTPURL(baseURL, path)
	if err != nil {
		return zero, err
	}

	agent := fiber.Get(endpoint).Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return zero, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return zero, fmt.Errorf("request to %s failed: %w", path, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return zero, fmt.Errorf("request to %s failed: server returned %d", path, code)
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if !env.Success {
		return zero, fmt.Errorf("server reported failure: %s", env.Error)
	}
	return env.Data, nil
}

// FetchStatus calls GET /api/status on the server
func FetchStatus(baseURL string, timeout time.Duration) (*models.GitStatus, error) {
	status, err := getData[*models.GitStatus](baseURL, "/api/status", timeout)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, errors.New("server returned an empty status")
	}
	return status, nil
}

// FetchDiff calls GET /api/diff or /api/diff/staged on the server
func FetchDiff(baseURL string, staged bool, timeout time.Duration) (string, error) {
	path := "/api/diff"
	if staged {
		path = "/api/diff/staged"
	}
	diff, err := getData[models.DiffResponse](baseURL, path, timeout)
	if err != nil {
		return "", err
	}
	return diff.Diff, nil
}
