package adapters

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryClipboard keeps the last copied text. Over HTTP the response body is
// the real clipboard; this records what was handed out.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	slog.Debug("address copied")
	return nil
}

// Text returns the last copied text.
func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
