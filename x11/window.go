// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: x11/window.go
// Summary: Window primitives: map, unmap, reparent, configure, query.
// Usage: Called by the main loop's event handlers and the startup scan.

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// QueryTree returns the children of win, bottom-to-top in stacking order.
func (c *Conn) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.conn, win).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: query tree: %w", err)
	}
	return reply.Children, nil
}

// WindowAttributes fetches the attributes of win.
func (c *Conn) WindowAttributes(win xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	reply, err := xproto.GetWindowAttributes(c.conn, win).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: window attributes: %w", err)
	}
	return reply, nil
}

// MapWindow asks the server to map win.
func (c *Conn) MapWindow(win xproto.Window) {
	xproto.MapWindow(c.conn, win)
}

// UnmapWindow asks the server to unmap win.
func (c *Conn) UnmapWindow(win xproto.Window) {
	xproto.UnmapWindow(c.conn, win)
}

// ReparentWindow moves win below parent at the given parent-relative position.
func (c *Conn) ReparentWindow(win, parent xproto.Window, x, y int16) {
	xproto.ReparentWindow(c.conn, win, parent, x, y)
}

// ConfigureWindow forwards a raw configure with the given value mask. The
// values must be ordered by ascending mask bit, as the protocol demands.
func (c *Conn) ConfigureWindow(win xproto.Window, mask uint16, values []uint32) {
	xproto.ConfigureWindow(c.conn, win, mask, values)
}

// SelectInput replaces the event mask of win.
func (c *Conn) SelectInput(win xproto.Window, mask uint32) {
	xproto.ChangeWindowAttributes(c.conn, win, xproto.CwEventMask, []uint32{mask})
}

// SetInputFocus assigns keyboard focus to win, reverting to pointer root.
func (c *Conn) SetInputFocus(win xproto.Window) {
	xproto.SetInputFocus(c.conn, xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
}

// AllowEvents releases a frozen event stream after a synchronous grab.
func (c *Conn) AllowEvents(mode byte, time xproto.Timestamp) {
	xproto.AllowEvents(c.conn, mode, time)
}
