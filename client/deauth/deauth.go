// Package deauth holds the single application-wide handler that is invoked
// when the backend reports the session is no longer authenticated.
package deauth

import "sync"

// Notifier is notified when a response is classified as an authentication
// failure.
type Notifier interface {
	Notify()
}

// Registry is a single handler slot. The zero value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	handler func()
}

var _ Notifier = (*Registry)(nil)

// Register installs handler, replacing any previous one. A nil handler clears
// the slot.
func (r *Registry) Register(handler func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = handler
}

// Notify invokes the current handler, if any. The lock is not held while the
// handler runs, so a handler may register a replacement.
func (r *Registry) Notify() {
	r.mu.RLock()
	h := r.handler
	r.mu.RUnlock()
	if h != nil {
		h()
	}
}

// NotifierFunc adapts a function to the [Notifier] interface.
type NotifierFunc func()

func (f NotifierFunc) Notify() {
	f()
}
