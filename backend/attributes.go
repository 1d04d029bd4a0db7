package backend

import (
	"fmt"
	"strings"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  uint32
	Height uint32
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Attributes describes a window to create. The builder resolves Dimensions
// before handing a copy to Backend.Create.
type Attributes struct {
	Dimensions    *Size
	MinDimensions *Size
	MaxDimensions *Size
	Title         string
	// Monitor requests fullscreen on that monitor when non-nil.
	Monitor     Monitor
	Visible     bool
	Transparent bool
	Decorations bool
	Multitouch  bool
	// ResizeCallback is registered after creation with Window.SetResizeCallback.
	ResizeCallback func(width, height uint32)
}

// DefaultAttributes returns the attributes of a builder with no options set.
func DefaultAttributes() Attributes {
	return Attributes{
		Visible:     true,
		Decorations: true,
	}
}

// Fullscreen reports whether a monitor was requested.
func (a Attributes) Fullscreen() bool {
	return a.Monitor != nil
}

// Clone copies a, including the pointed-to sizes.
func (a Attributes) Clone() Attributes {
	out := a
	out.Dimensions = cloneSize(a.Dimensions)
	out.MinDimensions = cloneSize(a.MinDimensions)
	out.MaxDimensions = cloneSize(a.MaxDimensions)
	return out
}

// ClampSize limits a requested size to the min/max constraints.
func (a Attributes) ClampSize(width, height uint32) (uint32, uint32) {
	if m := a.MinDimensions; m != nil {
		width = max(width, m.Width)
		height = max(height, m.Height)
	}
	if m := a.MaxDimensions; m != nil {
		if m.Width > 0 {
			width = min(width, m.Width)
		}
		if m.Height > 0 {
			height = min(height, m.Height)
		}
	}
	return width, height
}

func (a Attributes) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "title=%q", a.Title)
	if a.Dimensions != nil {
		fmt.Fprintf(&b, " size=%s", a.Dimensions)
	}
	if a.MinDimensions != nil {
		fmt.Fprintf(&b, " min=%s", a.MinDimensions)
	}
	if a.MaxDimensions != nil {
		fmt.Fprintf(&b, " max=%s", a.MaxDimensions)
	}
	fmt.Fprintf(&b, " fullscreen=%t visible=%t transparent=%t decorations=%t multitouch=%t",
		a.Fullscreen(), a.Visible, a.Transparent, a.Decorations, a.Multitouch)
	return b.String()
}

func cloneSize(s *Size) *Size {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// PlatformSpecific carries options only one platform understands. Backends
// ignore the sections that are not theirs.
type PlatformSpecific struct {
	X11 X11Attributes
}

// X11Attributes are options for X11 backends.
type X11Attributes struct {
	// Class and Instance populate WM_CLASS. Empty values fall back to the
	// program name.
	Class    string
	Instance string
	// WindowType is an EWMH window type such as "_NET_WM_WINDOW_TYPE_DIALOG".
	WindowType string
}
