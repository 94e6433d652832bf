package di

import (
	"portfolio_chart/internal/feature/contact/adapters"
	"portfolio_chart/internal/feature/contact/usecase"
	"portfolio_chart/internal/platform/config"
)

// NewCopyButton creates the contact copy button backed by the in-memory
// clipboard and wall-clock timers.
func NewCopyButton(cfg *config.Config) *usecase.CopyButton {
	return usecase.NewCopyButton(cfg.Contact.Email, &adapters.MemoryClipboard{}, adapters.Clock{})
}
