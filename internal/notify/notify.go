// Package notify carries user-visible messages from the service layer to
// the HTTP response, where the storefront shows them as toasts.
package notify

import (
	"context"
	"log"
	"sync"
)

type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

func Error(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, LevelError, message)
}

func Success(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, LevelSuccess, message)
}

// Collector gathers the notifications raised while serving one request.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func (c *Collector) add(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

func (c *Collector) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.items...)
}

// Messages returns the messages of the given level.
func (c *Collector) Messages(level Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	for _, n := range c.items {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

type collectorKey struct{}

func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

func CollectorFrom(ctx context.Context) (*Collector, bool) {
	c, ok := ctx.Value(collectorKey{}).(*Collector)
	return c, ok
}

// LogNotifier logs every notification and hands it to the request's
// Collector when there is one.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, level Level, message string) {
	log.Printf("notify: [%s] %s", level, message)
	if c, ok := CollectorFrom(ctx); ok {
		c.add(Notification{Level: level, Message: message})
	}
}
