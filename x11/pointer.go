// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: x11/pointer.go
// Summary: Pointer grabs and cursor creation for drag interaction.
// Usage: Called by the drag-state bridge when a client drag starts or ends.

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// GrabPointer grabs the pointer exclusively for win, reporting motion and
// button-release events, showing the given cursor for the duration.
func (c *Conn) GrabPointer(win xproto.Window, cursor xproto.Cursor) error {
	reply, err := xproto.GrabPointer(c.conn, true, win,
		uint16(xproto.EventMaskPointerMotion|xproto.EventMaskButtonRelease),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, cursor, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return fmt.Errorf("x11: grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("x11: grab pointer: status %d", reply.Status)
	}
	return nil
}

// UngrabPointer releases an active pointer grab.
func (c *Conn) UngrabPointer() {
	xproto.UngrabPointer(c.conn, xproto.TimeCurrentTime)
}

// CursorFor creates (and caches) a cursor-font glyph cursor such as
// xcursor.Fleur or xcursor.TopSide.
func (c *Conn) CursorFor(shape uint16) (xproto.Cursor, error) {
	c.cursorMu.Lock()
	defer c.cursorMu.Unlock()
	if cur, ok := c.cursors[shape]; ok {
		return cur, nil
	}
	cur, err := xcursor.CreateCursor(c.xu, shape)
	if err != nil {
		return 0, fmt.Errorf("x11: create cursor %d: %w", shape, err)
	}
	c.cursors[shape] = cur
	return cur, nil
}
