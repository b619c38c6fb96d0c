package models

import "time"

// FileEventType is the kind of filesystem change reported to clients
type FileEventType string

const (
	FileCreated  FileEventType = "created"
	FileModified FileEventType = "modified"
	FileDeleted  FileEventType = "deleted"
)

// FileWatchEvent is pushed to every subscribed session when something under
// the repository changes on disk.
type FileWatchEvent struct {
	Type      FileEventType `json:"type"`
	Path      string        `json:"path"`
	Timestamp int64         `json:"timestamp"` // epoch milliseconds
}

func NewFileWatchEvent(eventType FileEventType, path string) FileWatchEvent {
	return FileWatchEvent{
		Type:      eventType,
		Path:      path,
		Timestamp: time.Now().UnixMilli(),
	}
}
