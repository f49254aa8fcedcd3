// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/handlers.go
// Summary: One handler per protocol event type; the window manager's
//          reactive semantics live here.
// Usage: Registered in the dispatch table; never called directly.

package wm

import (
	"log"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/ju-sh/herbstluftwm/monitor"
	"github.com/ju-sh/herbstluftwm/x11"
)

func (l *MainLoop) buttonPress(e xproto.ButtonPressEvent) {
	if !l.co.Mouse.HandleButton(e.State, e.Detail, e.Event) {
		// not consumed by a mouse binding; treat it as a click on a client
		client, ok := l.co.Clients.Client(e.Event)
		if !ok {
			client, ok = l.co.Clients.DecorationClient(e.Event)
		}
		if ok {
			var tab Client
			if e.Event == client.DecorationWindow() && e.Detail == xproto.ButtonIndex1 {
				if t, found := client.TabClientAt(e.EventX, e.EventY); found {
					tab = t
				}
			}
			raise := l.co.Settings.RaiseOnClick()
			if tab != nil {
				l.co.Clients.FocusClient(tab, false, true, raise)
			} else {
				l.co.Clients.FocusClient(client, false, true, raise)
				if e.Event == client.DecorationWindow() {
					if dir := client.ResizeAreaAt(e.EventX, e.EventY); dir.Active() {
						l.co.Mouse.InitiateResize(client, dir)
					} else {
						l.co.Mouse.InitiateMove(client)
					}
				}
			}
		}
	}
	if frame, ok := l.co.Frames.FrameAt(e.Event); ok {
		l.co.Frames.FocusFrame(frame)
	}
	// let the press continue to the application
	l.x.AllowEvents(xproto.AllowReplayPointer, e.Time)
}

func (l *MainLoop) buttonRelease(e xproto.ButtonReleaseEvent) {
	l.co.Mouse.StopDrag()
}

func (l *MainLoop) createNotify(e xproto.CreateNotifyEvent) {
	if l.co.Ipc.IsConnectable(e.Window) {
		l.co.Ipc.AddConnection(e.Window)
		l.co.Ipc.HandleConnection(e.Window, l.CallCommand)
	}
}

func (l *MainLoop) configureRequest(e xproto.ConfigureRequestEvent) {
	client, ok := l.co.Clients.Client(e.Window)
	if !ok {
		// unknown window, probably a bar or popup: allow the configure
		l.forwardConfigure(e)
		return
	}
	changes := false
	newRect := client.FloatSize()
	if client.SizeHintsFloating() && (client.Floating() || client.Pseudotiled()) {
		widthReq := e.ValueMask&xproto.ConfigWindowWidth != 0
		heightReq := e.ValueMask&xproto.ConfigWindowHeight != 0
		xReq := e.ValueMask&xproto.ConfigWindowX != 0
		yReq := e.ValueMask&xproto.ConfigWindowY != 0
		if widthReq && newRect.Width != int(e.Width) {
			changes = true
		}
		if heightReq && newRect.Height != int(e.Height) {
			changes = true
		}
		if xReq || yReq {
			changes = true
			// requested coordinates are root-relative; translate them to
			// the monitor the client sits on, falling back to the monitor
			// under the requested point, then the focused one. An
			// unrequested axis has no root-relative value and no tag
			// monitor to convert the monitor-relative last size with, so
			// that axis of the lookup point is only a best-effort hint.
			absX, absY := int(e.X), int(e.Y)
			if !xReq {
				absX = client.LastSize().X
			}
			if !yReq {
				absY = client.LastSize().Y
			}
			m, found := l.co.Monitors.ByTag(client.Tag())
			if !found {
				m, found = l.co.Monitors.ByCoordinate(absX, absY)
			}
			if !found {
				m = l.co.Monitors.Focus()
			}
			relX := client.LastSize().X
			relY := client.LastSize().Y
			if xReq {
				relX = int(e.X) - (m.Geometry.X + m.PadLeft)
			}
			if yReq {
				relY = int(e.Y) - (m.Geometry.Y + m.PadUp)
			}
			newRect.X, newRect.Y = relX, relY
		}
		if widthReq {
			newRect.Width = int(e.Width)
		}
		if heightReq {
			newRect.Height = int(e.Height)
		}
	}
	switch {
	case changes && client.Floating():
		client.SetFloatSize(newRect)
		var m *monitor.Monitor
		if mon, found := l.co.Monitors.ByTag(client.Tag()); found {
			m = mon
		}
		focused := false
		if f, ok := l.co.Clients.Focus(); ok {
			focused = f == client
		}
		client.ResizeFloating(m, focused)
	case changes && client.Pseudotiled():
		client.SetFloatSize(newRect)
		if m, found := l.co.Monitors.ByTag(client.Tag()); found {
			l.co.Monitors.ApplyLayout(m)
		}
	default:
		// unclear why this answers with a synthetic configure instead of
		// an actual resize; kept as observed in the wild
		client.SendConfigure()
	}
}

// forwardConfigure applies a configure request verbatim for a window this
// manager does not track, preserving default protocol behaviour.
func (l *MainLoop) forwardConfigure(e xproto.ConfigureRequestEvent) {
	values := make([]uint32, 0, 7)
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(uint16(e.X)))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(uint16(e.Y)))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(e.Sibling))
	}
	if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(e.StackMode))
	}
	l.x.ConfigureWindow(e.Window, e.ValueMask, values)
}

func (l *MainLoop) clientMessage(e xproto.ClientMessageEvent) {
	l.co.Ewmh.HandleClientMessage(e)
}

func (l *MainLoop) configureNotify(e xproto.ConfigureNotifyEvent) {
	if e.Window == l.x.Root() {
		l.co.Panels.RootGeometryChanged(int(e.Width), int(e.Height))
		if l.co.Settings.AutoDetectMonitors() {
			// output is discarded, only errors surface
			if err := l.co.Monitors.DetectMonitors(); err != nil {
				log.Printf("mainloop: detect monitors: %v", err)
			}
		}
		return
	}
	l.co.Panels.GeometryChanged(e.Window, x11.Rect{
		X: int(e.X), Y: int(e.Y),
		Width: int(e.Width), Height: int(e.Height),
	})
}

func (l *MainLoop) destroyNotify(e xproto.DestroyNotifyEvent) {
	l.co.Ipc.RemoveConnection(e.Window)
	if client, ok := l.co.Clients.Client(e.Window); ok {
		l.co.Clients.ForceUnmanage(client)
		return
	}
	l.co.Desktops.Unregister(e.Window)
	l.co.Panels.Unregister(e.Window)
}

func (l *MainLoop) enterNotify(e xproto.EnterNotifyEvent) {
	if e.Mode != xproto.NotifyModeNormal || e.Detail == xproto.NotifyDetailInferior {
		// caused by (un-)grabbing the pointer, or the pointer moved from a
		// window onto its own decoration
		return
	}
	l.duringEnterNotify = true
	defer func() { l.duringEnterNotify = false }()

	decorationClient, hasDecoration := l.co.Clients.DecorationClient(e.Event)
	if hasDecoration {
		decorationClient.RefreshCursorHints()
	}
	if l.co.Mouse.Dragging() || !l.co.Settings.FocusFollowsMouse() {
		return
	}
	if e.SameScreenFocus&1 != 0 {
		// entry event synthesized by a focus change, not pointer motion
		return
	}
	client, ok := l.co.Clients.Client(e.Event)
	if !ok && hasDecoration {
		client, ok = decorationClient, true
	}
	if ok {
		// don't steal focus if that would hide the visible client, which
		// only occurs in a maximizing layout
		if !l.co.Frames.FocusWouldHide(client) {
			l.co.Clients.FocusClient(client, false, true, false)
		}
		return
	}
	// not a client window; maybe the pointer entered a frame decoration
	if frame, found := l.co.Frames.FrameAt(e.Event); found {
		l.co.Frames.FocusFrame(frame)
	}
}

func (l *MainLoop) expose(e xproto.ExposeEvent) {
	// decorations repaint themselves; nothing to do here
}

func (l *MainLoop) focusIn(e xproto.FocusInEvent) {
	// collapse the queue to the newest focus-change event; acting on stale
	// ones would bounce a programmatic focus change back through here
	// forever
	var latest xgb.Event = e
	for {
		ev, ok := l.x.TakeQueued(isFocusChange)
		if !ok {
			break
		}
		latest = ev
	}
	fi, ok := latest.(xproto.FocusInEvent)
	if !ok {
		return
	}
	if fi.Detail != xproto.NotifyDetailNonlinear &&
		fi.Detail != xproto.NotifyDetailNonlinearVirtual {
		return
	}
	// some application forced focus onto itself via a raw focus request;
	// all we can do is update our own notion of focus accordingly
	var current xproto.Window
	if c, hasFocus := l.co.Clients.Focus(); hasFocus {
		current = c.Window()
	}
	if fi.Event == current {
		return
	}
	log.Printf("mainloop: window 0x%x steals the focus", fi.Event)
	target, _ := l.co.Clients.Client(fi.Event)
	l.co.Clients.FocusClient(target, false, true, false)
}

func (l *MainLoop) keyPress(e xproto.KeyPressEvent) {
	l.co.Keys.HandleKeyPress(e)
}

func (l *MainLoop) mappingNotify(e xproto.MappingNotifyEvent) {
	l.co.Keys.RefreshMapping(e)
	if e.Request == xproto.MappingKeyboard {
		l.co.Keys.RegrabAll()
	}
}

func (l *MainLoop) motionNotify(e xproto.MotionNotifyEvent) {
	// only the newest pointer position matters
	latest := e
	for {
		ev, ok := l.x.TakeQueued(isMotion)
		if !ok {
			break
		}
		if me, isMotionEv := ev.(xproto.MotionNotifyEvent); isMotionEv {
			latest = me
		}
	}
	l.co.Mouse.HandleMotion(latest.RootX, latest.RootY)
}

func (l *MainLoop) mapNotify(e xproto.MapNotifyEvent) {
	if client, ok := l.co.Clients.Client(e.Window); ok {
		// reassert input focus so a freshly mapped focused window actually
		// receives input
		if f, hasFocus := l.co.Clients.Focus(); hasFocus && f == client {
			l.x.SetInputFocus(client.Window())
		}
		client.UpdateTitle()
		return
	}
	if l.co.Ewmh.IsOwnWindow(e.Window) {
		return
	}
	if _, isDecoration := l.co.Clients.DecorationClient(e.Window); isDecoration {
		return
	}
	// manage the window just long enough for window rules to run
	log.Printf("mainloop: briefly managing 0x%x to apply rules", e.Window)
	if _, err := l.co.Clients.Manage(e.Window, true, true, ""); err != nil {
		log.Printf("mainloop: manage 0x%x: %v", e.Window, err)
	}
}

func (l *MainLoop) mapRequest(e xproto.MapRequestEvent) {
	win := e.Window
	if l.co.Ewmh.IsOwnWindow(win) {
		// our own windows are simply mapped if they ask for it
		if _, err := l.x.WindowAttributes(win); err != nil {
			return
		}
		l.x.MapWindow(win)
		return
	}
	if client, ok := l.co.Clients.Client(win); ok {
		// a map request for a managed window means "Iconic -> Normal"
		// (ICCCM 4.1.4), i.e. the window wants to be un-minimized
		client.SetMinimized(false)
		return
	}
	switch l.co.Ewmh.WindowKind(win) {
	case WindowKindDesktop:
		l.co.Desktops.Register(win)
		l.co.Monitors.Restack()
		l.x.MapWindow(win)
	case WindowKindDock:
		l.co.Panels.Register(win)
		l.x.SelectInput(win, xproto.EventMaskPropertyChange)
		l.x.MapWindow(win)
	default:
		client, err := l.co.Clients.Manage(win, false, false, "")
		if err != nil || client == nil {
			return
		}
		// only map if a monitor currently shows the client's tag
		if _, ok := l.co.Monitors.ByTag(client.Tag()); ok {
			l.x.MapWindow(win)
		}
	}
}

func (l *MainLoop) selectionClear(e xproto.SelectionClearEvent) {
	if e.Selection == l.co.Ewmh.ManagerSelection() && e.Owner == l.co.Ewmh.ManagerWindow() {
		log.Printf("mainloop: replaced by another window manager, exiting")
		l.Quit()
	}
}

func (l *MainLoop) propertyNotify(e xproto.PropertyNotifyEvent) {
	if e.State != xproto.PropertyNewValue {
		return
	}
	if l.co.Ipc.IsConnectable(e.Window) {
		l.co.Ipc.HandleConnection(e.Window, l.CallCommand)
		return
	}
	if client, ok := l.co.Clients.Client(e.Window); ok {
		switch {
		case e.Atom == x11.AtomWMHints:
			client.UpdateWMHints()
		case e.Atom == x11.AtomWMNormalHints:
			client.UpdateSizeHints()
			geom := client.FloatSize()
			geom.Width, geom.Height = client.ApplySizeHints(geom.Width, geom.Height)
			client.SetFloatSize(geom)
			if m, found := l.co.Monitors.ByTag(client.Tag()); found {
				l.co.Monitors.ApplyLayout(m)
			}
		case e.Atom == x11.AtomWMName || e.Atom == l.co.Ewmh.NetWmNameAtom():
			client.UpdateTitle()
		case e.Atom == x11.AtomWMClass:
			// ICCCM only permits class changes while withdrawn, but some
			// applications change it anyway, so rules are re-applied here
			l.co.Clients.ApplyRules(client)
		}
		return
	}
	l.co.Panels.PropertyChanged(e.Window, e.Atom)
}

func (l *MainLoop) unmapNotify(e xproto.UnmapNotifyEvent) {
	if e.Event == e.Window {
		// reparenting produces additional unmap notifies addressed to the
		// old parent; only the window's own counts
		l.co.Clients.UnmapNotify(e.Window)
	}
	if e.Event == l.x.Root() && e.Window != l.x.Root() {
		// ICCCM 4.1.4: a synthetic unmap notify addressed to the root asks
		// for the window to be withdrawn. The transport does not expose the
		// send-event flag, so the root-addressed form is the tell. Genuine
		// self-unmaps of unmanaged root children also arrive in this form
		// and must not be answered with another unmap.
		if _, managed := l.co.Clients.Client(e.Window); managed {
			l.x.UnmapWindow(e.Window)
		}
	}
	l.x.Sync()
	l.drainEnterNotify()
}
