// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/nop.go
// Summary: Inert collaborator defaults so unwired subsystems stay harmless.

package wm

import (
	"fmt"
	"io"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/ju-sh/herbstluftwm/bus"
	"github.com/ju-sh/herbstluftwm/monitor"
	"github.com/ju-sh/herbstluftwm/x11"
)

func (co *Collaborators) fillDefaults() {
	if co.Clients == nil {
		co.Clients = &nopClients{}
	}
	if co.Monitors == nil {
		co.Monitors = &nopMonitors{}
	}
	if co.Mouse == nil {
		co.Mouse = nopMouse{}
	}
	if co.Keys == nil {
		co.Keys = nopKeys{}
	}
	if co.Panels == nil {
		co.Panels = nopPanels{}
	}
	if co.Desktops == nil {
		co.Desktops = nopDesktops{}
	}
	if co.Ewmh == nil {
		co.Ewmh = nopDesktopProtocol{}
	}
	if co.Frames == nil {
		co.Frames = nopFrames{}
	}
	if co.Watchers == nil {
		co.Watchers = nopWatcher{}
	}
	if co.Settings == nil {
		co.Settings = nopSettings{}
	}
	if co.Commands == nil {
		co.Commands = nopCommands{}
	}
	if co.Ipc == nil {
		co.Ipc = nopCommandServer{}
	}
}

type nopClients struct {
	dragged bus.Signal[Client]
}

func (n *nopClients) Client(xproto.Window) (Client, bool) { return nil, false }
func (n *nopClients) DecorationClient(xproto.Window) (Client, bool) { return nil, false }
func (n *nopClients) Focus() (Client, bool) { return nil, false }
func (n *nopClients) FocusClient(Client, bool, bool, bool) {}
func (n *nopClients) Manage(xproto.Window, bool, bool, string) (Client, error) {
	return nil, nil
}
func (n *nopClients) ForceUnmanage(Client) {}
func (n *nopClients) UnmapNotify(xproto.Window) {}
func (n *nopClients) ApplyRules(Client) {}
func (n *nopClients) DraggedChanged() *bus.Signal[Client] { return &n.dragged }

type nopMonitors struct {
	drop bus.Signal[struct{}]
}

func (n *nopMonitors) ByTag(string) (*monitor.Monitor, bool) { return nil, false }
func (n *nopMonitors) ByCoordinate(int, int) (*monitor.Monitor, bool) { return nil, false }
func (n *nopMonitors) Focus() *monitor.Monitor { return &monitor.Monitor{} }
func (n *nopMonitors) Restack() {}
func (n *nopMonitors) ApplyLayout(*monitor.Monitor) {}
func (n *nopMonitors) DetectMonitors() error { return nil }
func (n *nopMonitors) DropEnterNotify() *bus.Signal[struct{}] { return &n.drop }

type nopMouse struct{}

func (nopMouse) HandleButton(uint16, xproto.Button, xproto.Window) bool { return false }
func (nopMouse) InitiateMove(Client) {}
func (nopMouse) InitiateResize(Client, ResizeDirection) {}
func (nopMouse) StopDrag() {}
func (nopMouse) Dragging() bool { return false }
func (nopMouse) HandleMotion(int16, int16) {}
func (nopMouse) ResizeAction() ResizeDirection { return ResizeDirection{} }

type nopKeys struct{}

func (nopKeys) HandleKeyPress(xproto.KeyPressEvent) {}
func (nopKeys) RefreshMapping(xproto.MappingNotifyEvent) {}
func (nopKeys) RegrabAll() {}

type nopPanels struct{}

func (nopPanels) Register(xproto.Window) {}
func (nopPanels) Unregister(xproto.Window) {}
func (nopPanels) RootGeometryChanged(int, int) {}
func (nopPanels) GeometryChanged(xproto.Window, x11.Rect) {}
func (nopPanels) PropertyChanged(xproto.Window, xproto.Atom) {}

type nopDesktops struct{}

func (nopDesktops) Register(xproto.Window) {}
func (nopDesktops) Unregister(xproto.Window) {}

type nopDesktopProtocol struct{}

func (nopDesktopProtocol) HandleClientMessage(xproto.ClientMessageEvent) {}
func (nopDesktopProtocol) IsOwnWindow(xproto.Window) bool { return false }
func (nopDesktopProtocol) WindowKind(xproto.Window) WindowKind { return WindowKindNormal }
func (nopDesktopProtocol) ManagerSelection() xproto.Atom { return 0 }
func (nopDesktopProtocol) ManagerWindow() xproto.Window { return 0 }
func (nopDesktopProtocol) NetWmNameAtom() xproto.Atom { return 0 }
func (nopDesktopProtocol) OriginalClientList() []xproto.Window { return nil }
func (nopDesktopProtocol) InitialTag(xproto.Window) (string, bool) { return "", false }

type nopFrames struct{}

func (nopFrames) FrameAt(xproto.Window) (Frame, bool) { return nil, false }
func (nopFrames) FocusFrame(Frame) {}
func (nopFrames) FocusWouldHide(Client) bool { return false }

type nopWatcher struct{}

func (nopWatcher) ScanForChanges() {}

type nopSettings struct{}

func (nopSettings) FocusFollowsMouse() bool { return false }
func (nopSettings) RaiseOnClick() bool { return true }
func (nopSettings) AutoDetectMonitors() bool { return false }
func (nopSettings) ImportTagsFromEwmh() bool { return true }

type nopCommands struct{}

func (nopCommands) Call(name string, _ []string, _, errOut io.Writer) int {
	fmt.Fprintf(errOut, "%s: no command executor wired\n", name)
	return 127
}

type nopCommandServer struct{}

func (nopCommandServer) IsConnectable(xproto.Window) bool { return false }
func (nopCommandServer) AddConnection(xproto.Window) {}
func (nopCommandServer) RemoveConnection(xproto.Window) {}
func (nopCommandServer) HandleConnection(xproto.Window, CommandCallback) {}
