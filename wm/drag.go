// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/drag.go
// Summary: Pointer grab management around client move/resize drags.

package wm

import (
	"log"

	"github.com/BurntSushi/xgbutil/xcursor"
)

// CursorShape maps the resized edges to the matching cursor font glyph. The
// second return is false for a plain move.
func (d ResizeDirection) CursorShape() (uint16, bool) {
	switch {
	case d.Top && d.Left:
		return xcursor.TopLeftCorner, true
	case d.Top && d.Right:
		return xcursor.TopRightCorner, true
	case d.Bottom && d.Left:
		return xcursor.BottomLeftCorner, true
	case d.Bottom && d.Right:
		return xcursor.BottomRightCorner, true
	case d.Top:
		return xcursor.TopSide, true
	case d.Bottom:
		return xcursor.BottomSide, true
	case d.Left:
		return xcursor.LeftSide, true
	case d.Right:
		return xcursor.RightSide, true
	}
	return 0, false
}

// draggedClientChanged grabs the pointer while a drag is in progress and
// releases it afterwards. Entry events caused by the (un-)grab are dropped
// so they cannot move focus.
func (l *MainLoop) draggedClientChanged(c Client) {
	if c == nil {
		l.x.UngrabPointer()
		l.x.Sync()
		l.drainEnterNotify()
		return
	}
	shape, resizing := l.co.Mouse.ResizeAction().CursorShape()
	if !resizing {
		shape = xcursor.Fleur
	}
	cursor, err := l.x.CursorFor(shape)
	if err != nil && shape != xcursor.Fleur {
		cursor, err = l.x.CursorFor(xcursor.Fleur)
	}
	if err != nil {
		log.Printf("mainloop: create drag cursor: %v", err)
		cursor = 0
	}
	if err := l.x.GrabPointer(c.Window(), cursor); err != nil {
		log.Printf("mainloop: grab pointer: %v", err)
	}
}
