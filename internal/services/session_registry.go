package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vanpelt/gitmonitor/internal/logger"
	"github.com/vanpelt/gitmonitor/internal/models"
)

// MessageType selects which pushes a session receives
type MessageType string

const (
	MessageFileEvent MessageType = "file"
	MessageStatus    MessageType = "status"
)

// Message is one item on a session's outbound queue
type Message struct {
	Type   MessageType
	Event  *models.FileWatchEvent
	Status *models.GitStatus
}

// SessionState tracks a session through ACCEPTED -> ACTIVE -> CLOSED
type SessionState int32

const (
	SessionAccepted SessionState = iota
	SessionActive
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionAccepted:
		return "accepted"
	case SessionActive:
		return "active"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one connected client. It is owned by the registry from Accept
// until Remove.
type Session struct {
	ID          string
	Transport   string
	RemoteAddr  string
	ConnectedAt time.Time

	seq           uint64
	outbound      chan Message
	subscriptions map[MessageType]bool
	ctx           context.Context
	cancel        context.CancelFunc
	state         atomic.Int32
	dropped       atomic.Uint64
}

// Outbound is the queue of pushes for this session
func (s *Session) Outbound() <-chan Message {
	return s.outbound
}

// Done is closed once the session has been removed from the registry
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Activate moves an accepted session to active. It has no effect on a closed session.
func (s *Session) Activate() bool {
	return s.state.CompareAndSwap(int32(SessionAccepted), int32(SessionActive))
}

// Dropped is the number of messages discarded because the queue was full
func (s *Session) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Session) Subscribed(t MessageType) bool {
	return s.subscriptions[t]
}

// offer enqueues msg without blocking
func (s *Session) offer(msg Message) bool {
	if !s.Subscribed(msg.Type) || s.State() == SessionClosed {
		return false
	}
	select {
	case s.outbound <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// SessionInfo is the read-only view of a session used by the dashboard
type SessionInfo struct {
	ID          string    `json:"id"`
	Transport   string    `json:"transport"`
	RemoteAddr  string    `json:"remote_addr"`
	ConnectedAt time.Time `json:"connected_at"`
	State       string    `json:"state"`
	Dropped     uint64    `json:"dropped"`
}

// SessionRegistry tracks live client sessions
type SessionRegistry struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	seq        atomic.Uint64
	bufferSize int
}

func NewSessionRegistry(bufferSize int) *SessionRegistry {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &SessionRegistry{
		sessions:   make(map[string]*Session),
		bufferSize: bufferSize,
	}
}

// newSessionID combines a random fragment with a monotonic counter. The
// counter alone guarantees uniqueness for the registry lifetime.
func newSessionID(seq uint64) string {
	return fmt.Sprintf("%s-%d", uuid.NewString()[:8], seq)
}

// Accept registers a new session subscribed to the given message types
func (r *SessionRegistry) Accept(transport, remoteAddr string, subscriptions ...MessageType) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	subs := make(map[MessageType]bool, len(subscriptions))
	for _, t := range subscriptions {
		subs[t] = true
	}

	seq := r.seq.Add(1)
	session := &Session{
		ID:            newSessionID(seq),
		seq:           seq,
		Transport:     transport,
		RemoteAddr:    remoteAddr,
		ConnectedAt:   time.Now(),
		outbound:      make(chan Message, r.bufferSize),
		subscriptions: subs,
		ctx:           ctx,
		cancel:        cancel,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	count := len(r.sessions)
	r.mu.Unlock()

	logger.Debugf("Registered %s session %s from %s (sessions: %d)", transport, session.ID, remoteAddr, count)
	return session
}

// Remove closes the session and cancels its background tasks. Removing an
// unknown or already removed session is a no-op.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}
	session.state.Store(int32(SessionClosed))
	session.cancel()
	logger.Debugf("Removed %s session %s (sessions: %d, dropped: %d)", session.Transport, id, count, session.Dropped())
}

// Count is the number of registered sessions
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sessions returns a snapshot of every registered session, oldest first
func (r *SessionRegistry) Sessions() []SessionInfo {
	r.mu.RLock()
	ordered := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		ordered = append(ordered, s)
	}
	r.mu.RUnlock()

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	infos := make([]SessionInfo, 0, len(ordered))
	for _, s := range ordered {
		infos = append(infos, SessionInfo{
			ID:          s.ID,
			Transport:   s.Transport,
			RemoteAddr:  s.RemoteAddr,
			ConnectedAt: s.ConnectedAt,
			State:       s.State().String(),
			Dropped:     s.Dropped(),
		})
	}
	return infos
}

// Broadcast offers msg to every subscribed session without blocking and
// returns how many sessions accepted it. A full queue only affects its own
// session.
func (r *SessionRegistry) Broadcast(msg Message) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for id, session := range r.sessions {
		if !session.Subscribed(msg.Type) {
			continue
		}
		if session.offer(msg) {
			delivered++
			continue
		}
		if session.State() != SessionClosed {
			logger.Warnf("Session %s queue full, dropped %s message", id, msg.Type)
		}
	}
	return delivered
}

// CloseAll removes every session, used on shutdown
func (r *SessionRegistry) CloseAll() {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		r.Remove(id)
	}
	if len(ids) > 0 {
		logger.Infof("Closed %d client sessions", len(ids))
	}
}
