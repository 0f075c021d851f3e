// Package notify collects the transient user-facing notifications every
// recovered failure and successful mutation turns into. The UI drains the
// center on each frame; nothing in here blocks or crashes the view.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification.
type Level int

const (
	Info Level = iota
	Success
	Error
)

// Notification is one transient message shown in the status line.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// Center coordinates concurrent producers (the request gateway, dialog
// success paths) with the single UI consumer.
type Center struct {
	mu    sync.Mutex
	items []Notification
	now   func() time.Time
}

// NewCenter returns an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Notify appends a notification.
func (c *Center) Notify(level Level, message string) {
	if message == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, Notification{Level: level, Message: message, At: c.now()})
}

// Infof-style shorthands keep call sites terse.

func (c *Center) Info(message string)    { c.Notify(Info, message) }
func (c *Center) Success(message string) { c.Notify(Success, message) }
func (c *Center) Error(message string)   { c.Notify(Error, message) }

// Active returns a copy of the notifications younger than ttl, oldest first,
// and prunes the rest.
func (c *Center) Active(ttl time.Duration) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-ttl)
	keep := c.items[:0]
	for _, item := range c.items {
		if item.At.After(cutoff) {
			keep = append(keep, item)
		}
	}
	c.items = keep
	if len(keep) == 0 {
		return nil
	}
	dup := make([]Notification, len(keep))
	copy(dup, keep)
	return dup
}
