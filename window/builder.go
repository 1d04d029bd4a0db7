package window

import (
	"github.com/1broseidon/winkit/backend"
)

// Fallback dimensions used when neither explicit dimensions nor a fullscreen
// monitor were requested.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// Builder configures a window before creation. The With methods only record
// options; nothing reaches the backend until Build.
type Builder struct {
	attrs    backend.Attributes
	platform backend.PlatformSpecific
	backend  backend.Backend
	consumed bool
}

// NewBuilder returns a builder with default attributes: no dimensions, empty
// title, visible, decorated, opaque.
func NewBuilder() *Builder {
	return &Builder{attrs: backend.DefaultAttributes()}
}

// WithDimensions requests the client-area size in pixels.
func (b *Builder) WithDimensions(width, height uint32) *Builder {
	b.attrs.Dimensions = &backend.Size{Width: width, Height: height}
	return b
}

// WithMinDimensions sets the smallest size the window may be resized to.
func (b *Builder) WithMinDimensions(width, height uint32) *Builder {
	b.attrs.MinDimensions = &backend.Size{Width: width, Height: height}
	return b
}

// WithMaxDimensions sets the largest size the window may be resized to.
func (b *Builder) WithMaxDimensions(width, height uint32) *Builder {
	b.attrs.MaxDimensions = &backend.Size{Width: width, Height: height}
	return b
}

func (b *Builder) WithTitle(title string) *Builder {
	b.attrs.Title = title
	return b
}

// WithFullscreen requests a fullscreen window on monitor. The window takes
// the monitor's dimensions unless WithDimensions was also used.
func (b *Builder) WithFullscreen(monitor MonitorID) *Builder {
	b.attrs.Monitor = monitor.m
	return b
}

func (b *Builder) WithVisibility(visible bool) *Builder {
	b.attrs.Visible = visible
	return b
}

func (b *Builder) WithTransparency(transparent bool) *Builder {
	b.attrs.Transparent = transparent
	return b
}

func (b *Builder) WithDecorations(decorations bool) *Builder {
	b.attrs.Decorations = decorations
	return b
}

// WithMultitouch enables touch events.
func (b *Builder) WithMultitouch() *Builder {
	b.attrs.Multitouch = true
	return b
}

// WithResizeCallback registers fn to run synchronously while the window is
// being resized, so the caller can repaint during a live resize.
func (b *Builder) WithResizeCallback(fn func(width, height uint32)) *Builder {
	b.attrs.ResizeCallback = fn
	return b
}

// WithPlatformSpecific sets options only some backends understand.
func (b *Builder) WithPlatformSpecific(ps backend.PlatformSpecific) *Builder {
	b.platform = ps
	return b
}

// WithBackend creates the window on be instead of the default backend.
func (b *Builder) WithBackend(be backend.Backend) *Builder {
	b.backend = be
	return b
}

// Attributes returns a copy of the attributes recorded so far.
func (b *Builder) Attributes() backend.Attributes {
	return b.attrs.Clone()
}

// Build creates the window. A builder can be built once; later calls return
// ErrBuilderConsumed. Backend failures are returned as *CreationError and no
// window is created.
func (b *Builder) Build() (*Window, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	be := b.backend
	if be == nil {
		var err error
		be, err = DefaultBackend()
		if err != nil {
			return nil, &CreationError{Err: err}
		}
	}

	attrs := b.attrs.Clone()
	attrs.Dimensions = resolveDimensions(attrs)

	native, err := be.Create(attrs, b.platform)
	if err != nil {
		return nil, &CreationError{Err: err}
	}

	// Some backends can only attach the callback to a live window.
	if attrs.ResizeCallback != nil {
		native.SetResizeCallback(attrs.ResizeCallback)
	}

	return &Window{native: native}, nil
}

// BuildStrict is Build. Backends never silently downgrade a requested
// option: whatever they cannot honor fails creation from either entry point.
func (b *Builder) BuildStrict() (*Window, error) {
	return b.Build()
}

func resolveDimensions(attrs backend.Attributes) *backend.Size {
	if attrs.Dimensions != nil {
		return attrs.Dimensions
	}
	if attrs.Monitor != nil {
		w, h := attrs.Monitor.Dimensions()
		return &backend.Size{Width: w, Height: h}
	}
	return &backend.Size{Width: DefaultWidth, Height: DefaultHeight}
}
