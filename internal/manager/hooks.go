package manager

import "sync"

// Hook is a notification slot holding at most one handler.
type Hook struct {
	mu sync.RWMutex
	fn func()
}

// Replace installs fn as the handler, dropping the previous one.
// A nil fn restores the no-op handler.
func (h *Hook) Replace(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
}

// Fire calls the current handler. The handler runs without the hook lock
// held, so it may call Replace.
func (h *Hook) Fire() {
	h.mu.RLock()
	fn := h.fn
	h.mu.RUnlock()

	if fn != nil {
		fn()
	}
}
