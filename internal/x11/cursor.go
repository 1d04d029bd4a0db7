package x11

import (
	"fmt"

	"github.com/1broseidon/winkit/backend"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// cursorGlyph maps a cursor shape to the closest core font glyph.
// CursorNoneShape has no glyph; it is drawn with an empty pixmap.
func cursorGlyph(c backend.MouseCursor) (uint16, bool) {
	switch c {
	case backend.CursorDefault, backend.CursorContextMenu, backend.CursorAlias:
		return xcursor.LeftPtr, true
	case backend.CursorArrow:
		return xcursor.TopLeftArrow, true
	case backend.CursorCrosshair:
		return xcursor.Crosshair, true
	case backend.CursorHand:
		return xcursor.Hand2, true
	case backend.CursorGrabHand:
		return xcursor.Hand1, true
	case backend.CursorMove, backend.CursorGrabbing, backend.CursorAllScroll:
		return xcursor.Fleur, true
	case backend.CursorText, backend.CursorVerticalText:
		return xcursor.XTerm, true
	case backend.CursorWait, backend.CursorProgress:
		return xcursor.Watch, true
	case backend.CursorHelp:
		return xcursor.QuestionArrow, true
	case backend.CursorNotAllowed, backend.CursorNoDrop:
		return xcursor.Circle, true
	case backend.CursorCell, backend.CursorCopy, backend.CursorZoomIn, backend.CursorZoomOut:
		return xcursor.Plus, true
	case backend.CursorEResize:
		return xcursor.RightSide, true
	case backend.CursorWResize:
		return xcursor.LeftSide, true
	case backend.CursorNResize:
		return xcursor.TopSide, true
	case backend.CursorSResize:
		return xcursor.BottomSide, true
	case backend.CursorNeResize:
		return xcursor.TopRightCorner, true
	case backend.CursorNwResize:
		return xcursor.TopLeftCorner, true
	case backend.CursorSeResize:
		return xcursor.BottomRightCorner, true
	case backend.CursorSwResize:
		return xcursor.BottomLeftCorner, true
	case backend.CursorEwResize, backend.CursorColResize:
		return xcursor.SBHDoubleArrow, true
	case backend.CursorNsResize, backend.CursorRowResize:
		return xcursor.SBVDoubleArrow, true
	case backend.CursorNeswResize, backend.CursorNwseResize:
		return xcursor.Sizing, true
	case backend.CursorNoneShape:
		return 0, false
	default:
		return xcursor.XCursor, true
	}
}

// cursorCache owns the cursors created for one window.
type cursorCache struct {
	shapes    map[uint16]xproto.Cursor
	invisible xproto.Cursor
}

func (w *nativeWindow) shapeCursor(c backend.MouseCursor) (xproto.Cursor, error) {
	glyph, ok := cursorGlyph(c)
	if !ok {
		return w.invisibleCursor()
	}
	if cur, ok := w.cursors.shapes[glyph]; ok {
		return cur, nil
	}
	cur, err := xcursor.CreateCursor(w.conn.XUtil, glyph)
	if err != nil {
		return 0, fmt.Errorf("failed to create cursor %s: %w", c, err)
	}
	if w.cursors.shapes == nil {
		w.cursors.shapes = make(map[uint16]xproto.Cursor)
	}
	w.cursors.shapes[glyph] = cur
	return cur, nil
}

func (w *nativeWindow) invisibleCursor() (xproto.Cursor, error) {
	if w.cursors.invisible != 0 {
		return w.cursors.invisible, nil
	}
	conn := w.conn.XUtil.Conn()

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreatePixmapChecked(conn, 1, pix, xproto.Drawable(w.id), 1, 1).Check(); err != nil {
		return 0, fmt.Errorf("failed to create cursor pixmap: %w", err)
	}
	defer xproto.FreePixmap(conn, pix)

	cur, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}
	// An all-zero mask makes every pixel transparent.
	if err := xproto.CreateCursorChecked(conn, cur, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check(); err != nil {
		return 0, fmt.Errorf("failed to create invisible cursor: %w", err)
	}
	w.cursors.invisible = cur
	return cur, nil
}

func (w *nativeWindow) defineCursor(cur xproto.Cursor) error {
	return xproto.ChangeWindowAttributesChecked(
		w.conn.XUtil.Conn(),
		w.id,
		xproto.CwCursor,
		[]uint32{uint32(cur)},
	).Check()
}

func (w *nativeWindow) freeCursors() {
	conn := w.conn.XUtil.Conn()
	for _, cur := range w.cursors.shapes {
		xproto.FreeCursor(conn, cur)
	}
	if w.cursors.invisible != 0 {
		xproto.FreeCursor(conn, w.cursors.invisible)
	}
	w.cursors = cursorCache{}
}

func grabStatusError(status byte) error {
	switch status {
	case xproto.GrabStatusSuccess:
		return nil
	case xproto.GrabStatusAlreadyGrabbed:
		return fmt.Errorf("pointer grab failed: another client holds the pointer")
	case xproto.GrabStatusInvalidTime:
		return fmt.Errorf("pointer grab failed: invalid time")
	case xproto.GrabStatusNotViewable:
		return fmt.Errorf("pointer grab failed: window is not viewable")
	case xproto.GrabStatusFrozen:
		return fmt.Errorf("pointer grab failed: pointer is frozen by another grab")
	default:
		return fmt.Errorf("pointer grab failed: status %d", status)
	}
}
