package client

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultMaxAttempts    = 5
	DefaultReconnectDelay = 5 * time.Second
)

// ReconnectPolicy bounds how often Watch retries a lost connection. The
// attempt counter resets after every successful connect.
type ReconnectPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultReconnectDelay}
}

// Watch keeps a connection to the server open until ctx is cancelled or the
// reconnect attempts run out. onState receives human readable progress.
func Watch(ctx context.Context, baseURL string, policy ReconnectPolicy, onFrame func(Frame), onState func(string)) error {
	notify := func(format string, args ...any) {
		if onState != nil {
			onState(fmt.Sprintf(format, args...))
		}
	}

	attempts := 0
	for {
		c := NewMonitorClient(baseURL)
		err := c.Connect(ctx)
		if err == nil {
			attempts = 0
			notify("Connected to %s", baseURL)
			err = c.Listen(ctx, onFrame)
			c.Close()
		}
		if ctx.Err() != nil {
			return nil
		}

		if attempts >= policy.MaxAttempts {
			return fmt.Errorf("max reconnection attempts reached: %w", err)
		}
		attempts++
		notify("Disconnected (%v). Reconnecting... (attempt %d/%d)", err, attempts, policy.MaxAttempts)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(policy.Delay):
		}
	}
}
