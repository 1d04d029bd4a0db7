// Package event defines the values backends deliver through a window's
// event queue.
package event

import "fmt"

// Event is one discrete input or window-system occurrence.
type Event interface {
	isEvent()
	String() string
}

// ElementState reports whether a key or button went down or up.
type ElementState int

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "other"
	}
}

// TouchPhase is the stage of a touch contact.
type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// Resized reports a new client-area size in pixels.
type Resized struct {
	Width, Height uint32
}

// Moved reports a new top-left position relative to the desktop.
type Moved struct {
	X, Y int
}

// Closed means the user or window manager asked the window to close.
type Closed struct{}

// Destroyed means the native window no longer exists.
type Destroyed struct{}

// Focused reports a keyboard focus change.
type Focused struct {
	Focused bool
}

// ReceivedCharacter carries text input produced by a key press.
type ReceivedCharacter struct {
	Char rune
}

// KeyboardInput is a raw key transition.
type KeyboardInput struct {
	State    ElementState
	ScanCode uint8
	// Key is the backend's name for the key, empty when unknown.
	Key string
}

// MouseMoved reports the pointer position in window coordinates.
type MouseMoved struct {
	X, Y int
}

// MouseEntered means the pointer entered the client area.
type MouseEntered struct{}

// MouseLeft means the pointer left the client area.
type MouseLeft struct{}

// MouseWheel reports a scroll in lines.
type MouseWheel struct {
	DeltaX, DeltaY float64
}

// MouseInput is a pointer button transition.
type MouseInput struct {
	State  ElementState
	Button MouseButton
	// Code is the native button number for ButtonOther.
	Code uint8
}

// Touch is a single touch contact update.
type Touch struct {
	Phase TouchPhase
	X, Y  float64
	ID    uint64
}

// Awakened is delivered when a proxy woke the event loop.
type Awakened struct{}

// Refresh asks the application to redraw.
type Refresh struct{}

func (Resized) isEvent()           {}
func (Moved) isEvent()             {}
func (Closed) isEvent()            {}
func (Destroyed) isEvent()         {}
func (Focused) isEvent()           {}
func (ReceivedCharacter) isEvent() {}
func (KeyboardInput) isEvent()     {}
func (MouseMoved) isEvent()        {}
func (MouseEntered) isEvent()      {}
func (MouseLeft) isEvent()         {}
func (MouseWheel) isEvent()        {}
func (MouseInput) isEvent()        {}
func (Touch) isEvent()             {}
func (Awakened) isEvent()          {}
func (Refresh) isEvent()           {}

func (e Resized) String() string { return fmt.Sprintf("Resized(%d, %d)", e.Width, e.Height) }
func (e Moved) String() string   { return fmt.Sprintf("Moved(%d, %d)", e.X, e.Y) }
func (Closed) String() string    { return "Closed" }
func (Destroyed) String() string { return "Destroyed" }
func (e Focused) String() string { return fmt.Sprintf("Focused(%t)", e.Focused) }

func (e ReceivedCharacter) String() string { return fmt.Sprintf("ReceivedCharacter(%q)", e.Char) }

func (e KeyboardInput) String() string {
	return fmt.Sprintf("KeyboardInput(%s, %d, %q)", e.State, e.ScanCode, e.Key)
}

func (e MouseMoved) String() string { return fmt.Sprintf("MouseMoved(%d, %d)", e.X, e.Y) }
func (MouseEntered) String() string { return "MouseEntered" }
func (MouseLeft) String() string    { return "MouseLeft" }

func (e MouseWheel) String() string {
	return fmt.Sprintf("MouseWheel(%g, %g)", e.DeltaX, e.DeltaY)
}

func (e MouseInput) String() string {
	if e.Button == ButtonOther {
		return fmt.Sprintf("MouseInput(%s, button %d)", e.State, e.Code)
	}
	return fmt.Sprintf("MouseInput(%s, %s)", e.State, e.Button)
}

func (e Touch) String() string {
	return fmt.Sprintf("Touch(%d, phase %d, %g, %g)", e.ID, e.Phase, e.X, e.Y)
}

func (Awakened) String() string { return "Awakened" }
func (Refresh) String() string  { return "Refresh" }
