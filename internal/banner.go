package internal

import (
	"sync"
	"time"
)

// BannerTTL is how long an error stays visible
const BannerTTL = 5 * time.Second

// Banner is the transient, unpersisted error line shown above the input.
// A message expires BannerTTL after it was shown.
type Banner struct {
	mu      sync.Mutex
	message string
	expires time.Time
	now     func() time.Time
}

// NewBanner creates an empty banner
func NewBanner() *Banner {
	return &Banner{now: time.Now}
}

// Show replaces the current message
func (b *Banner) Show(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = message
	b.expires = b.now().Add(BannerTTL)
}

// Message returns the visible message, or "" once it expired
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.message == "" {
		return ""
	}
	if !b.now().Before(b.expires) {
		b.message = ""
	}
	return b.message
}

// Clear hides the current message
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.message = ""
}
