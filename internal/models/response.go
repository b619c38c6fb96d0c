package models

import "time"

// APIResponse is the envelope every synchronous API reply is wrapped in
type APIResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func Success(data any) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

func Failure(err string) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     err,
		Timestamp: time.Now().UnixMilli(),
	}
}
