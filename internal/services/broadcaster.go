package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vanpelt/gitmonitor/internal/debounce"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
)

// StatusRefresher produces a fresh status snapshot of the repository
type StatusRefresher interface {
	Status(ctx context.Context) *models.GitStatus
}

// EventBroadcaster fans watcher events out to every registered session and
// keeps the latest status snapshot.
type EventBroadcaster struct {
	source    <-chan models.FileWatchEvent
	registry  *SessionRegistry
	refresher StatusRefresher
	delay     time.Duration

	last      atomic.Pointer[models.GitStatus]
	forwarded atomic.Uint64
}

// NewEventBroadcaster wires a watcher stream to the registry. A nil refresher
// disables the debounced status refresh.
func NewEventBroadcaster(source <-chan models.FileWatchEvent, registry *SessionRegistry, refresher StatusRefresher, delay time.Duration) *EventBroadcaster {
	return &EventBroadcaster{
		source:    source,
		registry:  registry,
		refresher: refresher,
		delay:     delay,
	}
}

// Run drains the event source until ctx is cancelled
func (b *EventBroadcaster) Run(ctx context.Context) {
	var refresh *debounce.Debouncer
	if b.refresher != nil && b.delay > 0 {
		refresh = debounce.New(b.delay, func() {
			if ctx.Err() != nil {
				return
			}
			b.PublishStatus(b.refresher.Status(ctx))
		})
		defer refresh.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debugf("Event broadcaster stopped after %d events", b.forwarded.Load())
			return
		case event := <-b.source:
			b.forward(event)
			if refresh != nil {
				refresh.Trigger()
			}
		}
	}
}

func (b *EventBroadcaster) forward(event models.FileWatchEvent) {
	b.forwarded.Add(1)
	delivered := b.registry.Broadcast(Message{Type: MessageFileEvent, Event: &event})
	logger.Debugf("📁 %s %s -> %d sessions", event.Type, event.Path, delivered)
}

// PublishStatus stores status as the latest snapshot and pushes it to status subscribers
func (b *EventBroadcaster) PublishStatus(status *models.GitStatus) {
	if status == nil {
		return
	}
	b.last.Store(status)
	b.registry.Broadcast(Message{Type: MessageStatus, Status: status})
}

// LastStatus is the most recent published snapshot, nil before the first one
func (b *EventBroadcaster) LastStatus() *models.GitStatus {
	return b.last.Load()
}
