package backend

import "fmt"

// CursorState is the requested visibility and confinement of the pointer.
type CursorState int

const (
	// CursorNormal shows the cursor and lets it leave the window.
	CursorNormal CursorState = iota
	// CursorHide hides the cursor while it is over the window.
	CursorHide
	// CursorGrab hides the cursor and confines it to the window.
	CursorGrab
)

func (s CursorState) String() string {
	switch s {
	case CursorNormal:
		return "normal"
	case CursorHide:
		return "hide"
	case CursorGrab:
		return "grab"
	default:
		return fmt.Sprintf("CursorState(%d)", int(s))
	}
}

// MouseCursor is the shape of the pointer over a window.
type MouseCursor int

const (
	CursorDefault MouseCursor = iota
	CursorCrosshair
	CursorHand
	CursorArrow
	CursorMove
	CursorText
	CursorWait
	CursorHelp
	CursorProgress
	CursorNotAllowed
	CursorContextMenu
	CursorNoneShape
	CursorCell
	CursorVerticalText
	CursorAlias
	CursorCopy
	CursorNoDrop
	CursorGrabHand
	CursorGrabbing
	CursorAllScroll
	CursorZoomIn
	CursorZoomOut
	CursorEResize
	CursorNResize
	CursorNeResize
	CursorNwResize
	CursorSResize
	CursorSeResize
	CursorSwResize
	CursorWResize
	CursorEwResize
	CursorNsResize
	CursorNeswResize
	CursorNwseResize
	CursorColResize
	CursorRowResize
)

var mouseCursorNames = [...]string{
	CursorDefault:      "default",
	CursorCrosshair:    "crosshair",
	CursorHand:         "hand",
	CursorArrow:        "arrow",
	CursorMove:         "move",
	CursorText:         "text",
	CursorWait:         "wait",
	CursorHelp:         "help",
	CursorProgress:     "progress",
	CursorNotAllowed:   "not-allowed",
	CursorContextMenu:  "context-menu",
	CursorNoneShape:    "none",
	CursorCell:         "cell",
	CursorVerticalText: "vertical-text",
	CursorAlias:        "alias",
	CursorCopy:         "copy",
	CursorNoDrop:       "no-drop",
	CursorGrabHand:     "grab",
	CursorGrabbing:     "grabbing",
	CursorAllScroll:    "all-scroll",
	CursorZoomIn:       "zoom-in",
	CursorZoomOut:      "zoom-out",
	CursorEResize:      "e-resize",
	CursorNResize:      "n-resize",
	CursorNeResize:     "ne-resize",
	CursorNwResize:     "nw-resize",
	CursorSResize:      "s-resize",
	CursorSeResize:     "se-resize",
	CursorSwResize:     "sw-resize",
	CursorWResize:      "w-resize",
	CursorEwResize:     "ew-resize",
	CursorNsResize:     "ns-resize",
	CursorNeswResize:   "nesw-resize",
	CursorNwseResize:   "nwse-resize",
	CursorColResize:    "col-resize",
	CursorRowResize:    "row-resize",
}

func (c MouseCursor) String() string {
	if c >= 0 && int(c) < len(mouseCursorNames) {
		return mouseCursorNames[c]
	}
	return fmt.Sprintf("MouseCursor(%d)", int(c))
}

// ParseMouseCursor maps a CSS-style cursor name to a MouseCursor.
func ParseMouseCursor(name string) (MouseCursor, error) {
	for i, n := range mouseCursorNames {
		if n == name {
			return MouseCursor(i), nil
		}
	}
	return CursorDefault, fmt.Errorf("unknown cursor %q", name)
}

// NativeMonitorKind says which field of a NativeMonitorID is meaningful.
type NativeMonitorKind int

const (
	MonitorIDUnavailable NativeMonitorKind = iota
	MonitorIDNumeric
	MonitorIDName
)

// NativeMonitorID is the platform's own identifier for a monitor.
type NativeMonitorID struct {
	Kind    NativeMonitorKind
	Numeric uint32
	Name    string
}

func (id NativeMonitorID) String() string {
	switch id.Kind {
	case MonitorIDNumeric:
		return fmt.Sprintf("%d", id.Numeric)
	case MonitorIDName:
		return id.Name
	default:
		return "unavailable"
	}
}
