// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/dispatch.go
// Summary: Fixed-size event dispatch table keyed by protocol event code.
// Usage: Built once in New; the main loop routes every event through it.

package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// lastEvent bounds the core protocol event codes. Codes at or above it
// (extension events) dispatch to nothing.
const lastEvent = 36

type handler func(ev xgb.Event)

// dispatchTable maps an event-type code to its handler. Lookup stays a plain
// array index because it sits on the hot event path. Empty slots are no-ops.
type dispatchTable [lastEvent]handler

func (t *dispatchTable) set(code int, h handler) {
	if code >= 0 && code < lastEvent {
		t[code] = h
	}
}

// typed adapts a handler for one concrete event payload to the table's
// signature. Events of any other type are ignored, so a mismatched table
// entry can never misinterpret a payload.
func typed[E xgb.Event](fn func(E)) handler {
	return func(ev xgb.Event) {
		if e, ok := ev.(E); ok {
			fn(e)
		}
	}
}

func (l *MainLoop) buildTable() {
	t := &l.table
	t.set(xproto.ButtonPress, typed(l.buttonPress))
	t.set(xproto.ButtonRelease, typed(l.buttonRelease))
	t.set(xproto.ClientMessage, typed(l.clientMessage))
	t.set(xproto.ConfigureNotify, typed(l.configureNotify))
	t.set(xproto.ConfigureRequest, typed(l.configureRequest))
	t.set(xproto.CreateNotify, typed(l.createNotify))
	t.set(xproto.DestroyNotify, typed(l.destroyNotify))
	t.set(xproto.EnterNotify, typed(l.enterNotify))
	t.set(xproto.Expose, typed(l.expose))
	t.set(xproto.FocusIn, typed(l.focusIn))
	t.set(xproto.KeyPress, typed(l.keyPress))
	t.set(xproto.MapNotify, typed(l.mapNotify))
	t.set(xproto.MapRequest, typed(l.mapRequest))
	t.set(xproto.MappingNotify, typed(l.mappingNotify))
	t.set(xproto.MotionNotify, typed(l.motionNotify))
	t.set(xproto.PropertyNotify, typed(l.propertyNotify))
	t.set(xproto.UnmapNotify, typed(l.unmapNotify))
	t.set(xproto.SelectionClear, typed(l.selectionClear))
}

// eventCode recovers the protocol event-type code of a parsed event.
// Unknown or extension events map to -1.
func eventCode(ev xgb.Event) int {
	switch ev.(type) {
	case xproto.KeyPressEvent:
		return xproto.KeyPress
	case xproto.KeyReleaseEvent:
		return xproto.KeyRelease
	case xproto.ButtonPressEvent:
		return xproto.ButtonPress
	case xproto.ButtonReleaseEvent:
		return xproto.ButtonRelease
	case xproto.MotionNotifyEvent:
		return xproto.MotionNotify
	case xproto.EnterNotifyEvent:
		return xproto.EnterNotify
	case xproto.LeaveNotifyEvent:
		return xproto.LeaveNotify
	case xproto.FocusInEvent:
		return xproto.FocusIn
	case xproto.FocusOutEvent:
		return xproto.FocusOut
	case xproto.ExposeEvent:
		return xproto.Expose
	case xproto.CreateNotifyEvent:
		return xproto.CreateNotify
	case xproto.DestroyNotifyEvent:
		return xproto.DestroyNotify
	case xproto.UnmapNotifyEvent:
		return xproto.UnmapNotify
	case xproto.MapNotifyEvent:
		return xproto.MapNotify
	case xproto.MapRequestEvent:
		return xproto.MapRequest
	case xproto.ReparentNotifyEvent:
		return xproto.ReparentNotify
	case xproto.ConfigureNotifyEvent:
		return xproto.ConfigureNotify
	case xproto.ConfigureRequestEvent:
		return xproto.ConfigureRequest
	case xproto.GravityNotifyEvent:
		return xproto.GravityNotify
	case xproto.ResizeRequestEvent:
		return xproto.ResizeRequest
	case xproto.CirculateNotifyEvent:
		return xproto.CirculateNotify
	case xproto.CirculateRequestEvent:
		return xproto.CirculateRequest
	case xproto.PropertyNotifyEvent:
		return xproto.PropertyNotify
	case xproto.SelectionClearEvent:
		return xproto.SelectionClear
	case xproto.SelectionRequestEvent:
		return xproto.SelectionRequest
	case xproto.SelectionNotifyEvent:
		return xproto.SelectionNotify
	case xproto.ColormapNotifyEvent:
		return xproto.ColormapNotify
	case xproto.ClientMessageEvent:
		return xproto.ClientMessage
	case xproto.MappingNotifyEvent:
		return xproto.MappingNotify
	case xproto.KeymapNotifyEvent:
		return xproto.KeymapNotify
	case xproto.GraphicsExposureEvent:
		return xproto.GraphicsExposure
	case xproto.NoExposureEvent:
		return xproto.NoExposure
	case xproto.VisibilityNotifyEvent:
		return xproto.VisibilityNotify
	default:
		return -1
	}
}

// dispatch routes one event through the table. Events without a registered
// handler are silently ignored; a malformed event must never take the loop
// down.
func (l *MainLoop) dispatch(ev xgb.Event) {
	code := eventCode(ev)
	if code < 0 || code >= lastEvent {
		return
	}
	if h := l.table[code]; h != nil {
		h(ev)
	}
}
