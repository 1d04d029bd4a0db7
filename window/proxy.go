package window

import "github.com/1broseidon/winkit/backend"

// Proxy wakes a window's event loop from any goroutine. Copies share the same
// target. The zero Proxy, and any proxy whose window was closed, does nothing.
type Proxy struct {
	p backend.Proxy
}

// NewProxy wraps a backend proxy. It exists for backend implementers.
func NewProxy(p backend.Proxy) Proxy {
	return Proxy{p: p}
}

// WakeupEventLoop makes a blocked WaitIterator.Next return event.Awakened.
func (p Proxy) WakeupEventLoop() {
	if p.p != nil {
		p.p.WakeupEventLoop()
	}
}

// Clone returns a proxy for the same window.
func (p Proxy) Clone() Proxy {
	return p
}

// Backend returns the wrapped backend proxy.
func (p Proxy) Backend() backend.Proxy {
	return p.p
}
