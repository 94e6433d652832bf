package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"portfolio_chart/internal/feature/contact/domain/entity"
)

// RevertDelay is how long the button shows Copied.
const RevertDelay = 2 * time.Second

// ErrDisposed is returned by Click after Dispose.
var ErrDisposed = errors.New("copy button disposed")

// Clipboard receives the copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// CopyButton copies the contact address and shows feedback until the revert
// delay elapses. It is safe for concurrent use; the revert runs on the
// scheduler's goroutine.
type CopyButton struct {
	mu        sync.Mutex
	address   string
	clipboard Clipboard
	scheduler Scheduler

	state    entity.CopyState
	revert   Timer
	gen      int // invalidates reverts that were replaced or cancelled
	disposed bool
}

// NewCopyButton returns an idle button copying address.
func NewCopyButton(address string, clipboard Clipboard, scheduler Scheduler) *CopyButton {
	return &CopyButton{address: address, clipboard: clipboard, scheduler: scheduler}
}

// State returns what the button shows.
func (b *CopyButton) State() entity.CopyState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Click writes the address to the clipboard. On success the button shows
// Copied and reverts to Idle after RevertDelay; a click while Copied restarts
// the delay. On failure the state is left unchanged.
func (b *CopyButton) Click(ctx context.Context) (string, error) {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return "", ErrDisposed
	}
	b.mu.Unlock()

	if err := b.clipboard.WriteText(ctx, b.address); err != nil {
		slog.Error("failed to copy email", "error", err)
		return "", fmt.Errorf("copy address: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return "", ErrDisposed
	}
	b.state = entity.Copied
	b.cancelRevertLocked()
	gen := b.gen
	b.revert = b.scheduler.AfterFunc(RevertDelay, func() { b.revertTo(gen) })
	return b.address, nil
}

func (b *CopyButton) revertTo(gen int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen || b.disposed {
		return
	}
	b.state = entity.Idle
	b.revert = nil
}

func (b *CopyButton) cancelRevertLocked() {
	if b.revert != nil {
		b.revert.Stop()
		b.revert = nil
	}
	b.gen++
}

// Dispose cancels a pending revert; later clicks return ErrDisposed.
func (b *CopyButton) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelRevertLocked()
	b.disposed = true
}
