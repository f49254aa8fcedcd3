// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/interfaces.go
// Summary: Collaborator interfaces consumed by the main loop and its handlers.
// Usage: Implemented by the client/monitor/mouse/keyboard/panel subsystems and
//        by test stubs; the host wires them into Collaborators before Run.

package wm

import (
	"io"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/ju-sh/herbstluftwm/bus"
	"github.com/ju-sh/herbstluftwm/monitor"
	"github.com/ju-sh/herbstluftwm/x11"
)

// Display mirrors the subset of the X session the main loop relies on. The
// x11 package provides the real implementation; tests inject a scripted one.
type Display interface {
	Root() xproto.Window

	// Ready yields a token whenever events have been queued; Done is closed
	// when the connection is lost.
	Ready() <-chan struct{}
	Done() <-chan struct{}

	// Sync forces a round trip so self-caused events become locally visible.
	Sync()
	Pending() int
	Next() (xgb.Event, bool)
	TakeQueued(match func(xgb.Event) bool) (xgb.Event, bool)

	QueryTree(win xproto.Window) ([]xproto.Window, error)
	WindowAttributes(win xproto.Window) (*xproto.GetWindowAttributesReply, error)
	MapWindow(win xproto.Window)
	UnmapWindow(win xproto.Window)
	ReparentWindow(win, parent xproto.Window, x, y int16)
	ConfigureWindow(win xproto.Window, mask uint16, values []uint32)
	SelectInput(win xproto.Window, mask uint32)
	SetInputFocus(win xproto.Window)
	AllowEvents(mode byte, time xproto.Timestamp)

	GrabPointer(win xproto.Window, cursor xproto.Cursor) error
	UngrabPointer()
	CursorFor(shape uint16) (xproto.Cursor, error)
}

// ResizeDirection describes which window edges a drag manipulates. The zero
// value means "no resize", i.e. a plain move.
type ResizeDirection struct {
	Left, Top, Right, Bottom bool
}

// Active reports whether any edge is being resized.
func (d ResizeDirection) Active() bool {
	return d.Left || d.Top || d.Right || d.Bottom
}

// Client is one managed application window together with its decoration.
type Client interface {
	Window() xproto.Window
	DecorationWindow() xproto.Window
	Tag() string

	// TabClientAt resolves a click on the decoration's tab bar to the client
	// shown by that tab.
	TabClientAt(x, y int16) (Client, bool)
	// ResizeAreaAt reports which resize area of the decoration the
	// decoration-relative point hits, if any.
	ResizeAreaAt(x, y int16) ResizeDirection
	// RefreshCursorHints updates the decoration's resize-area cursors.
	RefreshCursorHints()

	Floating() bool
	Pseudotiled() bool
	SizeHintsFloating() bool

	// FloatSize is the pending floating geometry; LastSize the last applied
	// one. Both are monitor-relative.
	FloatSize() x11.Rect
	SetFloatSize(r x11.Rect)
	LastSize() x11.Rect

	ResizeFloating(m *monitor.Monitor, focused bool)
	// SendConfigure answers a configure request with a synthetic configure
	// notify instead of an actual resize.
	SendConfigure()
	ApplySizeHints(width, height int) (int, int)

	SetMinimized(minimized bool)
	UpdateTitle()
	UpdateWMHints()
	UpdateSizeHints()
}

// ClientManager owns the managed-client lifecycle.
type ClientManager interface {
	Client(win xproto.Window) (Client, bool)
	// DecorationClient resolves a decoration window to its client.
	DecorationClient(win xproto.Window) (Client, bool)
	Focus() (Client, bool)
	// FocusClient moves the manager's notion of focus. A nil client clears
	// it. Implementations may issue protocol focus calls.
	FocusClient(c Client, switchTag, changeFocus, raise bool)
	// Manage puts win under management. A temporary manage applies window
	// rules and releases the window again. tagHint names the tag to place
	// the client on, "" for the default.
	Manage(win xproto.Window, mapped, temporary bool, tagHint string) (Client, error)
	ForceUnmanage(c Client)
	UnmapNotify(win xproto.Window)
	ApplyRules(c Client)
	// DraggedChanged fires with the client a drag starts on, nil on drag end.
	DraggedChanged() *bus.Signal[Client]
}

// MonitorManager resolves monitors and re-applies layout policy.
type MonitorManager interface {
	ByTag(tag string) (*monitor.Monitor, bool)
	ByCoordinate(x, y int) (*monitor.Monitor, bool)
	Focus() *monitor.Monitor
	Restack()
	ApplyLayout(m *monitor.Monitor)
	DetectMonitors() error
	// DropEnterNotify requests that queued enter-notify events be discarded.
	DropEnterNotify() *bus.Signal[struct{}]
}

// MouseManager owns button bindings and drag interaction state.
type MouseManager interface {
	// HandleButton offers a button press to the configured mouse bindings;
	// it reports whether the press was consumed.
	HandleButton(state uint16, button xproto.Button, win xproto.Window) bool
	InitiateMove(c Client)
	InitiateResize(c Client, dir ResizeDirection)
	StopDrag()
	Dragging() bool
	HandleMotion(rootX, rootY int16)
	// ResizeAction describes how the current drag affects window dimensions.
	ResizeAction() ResizeDirection
}

// KeyManager owns key bindings and the cached keyboard mapping.
type KeyManager interface {
	HandleKeyPress(ev xproto.KeyPressEvent)
	RefreshMapping(ev xproto.MappingNotifyEvent)
	RegrabAll()
}

// PanelManager tracks dock windows and reserved screen space.
type PanelManager interface {
	Register(win xproto.Window)
	Unregister(win xproto.Window)
	RootGeometryChanged(width, height int)
	GeometryChanged(win xproto.Window, geom x11.Rect)
	PropertyChanged(win xproto.Window, atom xproto.Atom)
}

// DesktopWindows tracks desktop-type background windows.
type DesktopWindows interface {
	Register(win xproto.Window)
	Unregister(win xproto.Window)
}

// WindowKind classifies an unmanaged window by its window-type property.
type WindowKind int

const (
	WindowKindNormal WindowKind = iota
	WindowKindDesktop
	WindowKindDock
)

// DesktopProtocol is the desktop-state-protocol (EWMH) collaborator.
type DesktopProtocol interface {
	HandleClientMessage(ev xproto.ClientMessageEvent)
	IsOwnWindow(win xproto.Window) bool
	WindowKind(win xproto.Window) WindowKind
	ManagerSelection() xproto.Atom
	ManagerWindow() xproto.Window
	NetWmNameAtom() xproto.Atom
	// OriginalClientList is the client list left behind by a previous
	// window manager.
	OriginalClientList() []xproto.Window
	// InitialTag resolves the window's initial-desktop property to a tag.
	InitialTag(win xproto.Window) (string, bool)
}

// Frame is an opaque layout frame, resolvable from its decoration window.
type Frame interface {
	Window() xproto.Window
}

// FrameManager resolves frame decorations and frame focus.
type FrameManager interface {
	FrameAt(win xproto.Window) (Frame, bool)
	FocusFrame(f Frame)
	// FocusWouldHide reports whether focusing c would hide the currently
	// visible client, which only happens in a maximizing layout.
	FocusWouldHide(c Client) bool
}

// Watcher reacts to external state changes after each handled event.
type Watcher interface {
	ScanForChanges()
}

// Settings exposes the behavioural switches the handlers consult.
type Settings interface {
	FocusFollowsMouse() bool
	RaiseOnClick() bool
	AutoDetectMonitors() bool
	ImportTagsFromEwmh() bool
}

// CommandResult is the outcome of one command invocation.
type CommandResult struct {
	ExitCode int
	Output   string
	Error    string
}

// CommandCallback turns an argument vector into a command result.
type CommandCallback func(call []string) CommandResult

// CommandServer is the out-of-process command channel collaborator.
type CommandServer interface {
	IsConnectable(win xproto.Window) bool
	AddConnection(win xproto.Window)
	RemoveConnection(win xproto.Window)
	HandleConnection(win xproto.Window, cb CommandCallback)
}

// CommandRunner executes a named command. Dispatch semantics live outside
// this core; the bridge only marshals.
type CommandRunner interface {
	Call(name string, args []string, out, errOut io.Writer) int
}

// ChildExit reports a reaped child process.
type ChildExit struct {
	PID    int
	Status int
}

// Collaborators bundles everything the main loop delegates to. Nil fields
// are replaced by inert defaults, so hosts only wire what they have.
type Collaborators struct {
	Clients  ClientManager
	Monitors MonitorManager
	Mouse    MouseManager
	Keys     KeyManager
	Panels   PanelManager
	Desktops DesktopWindows
	Ewmh     DesktopProtocol
	Frames   FrameManager
	Watchers Watcher
	Settings Settings
	Commands CommandRunner
	Ipc      CommandServer
}
