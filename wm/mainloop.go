// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/mainloop.go
// Summary: The reactor: blocks on the display, reaps children, drives handlers.
// Usage: The host wires Collaborators, calls ScanExistingClients, then Run.

package wm

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/sys/unix"

	"github.com/ju-sh/herbstluftwm/bus"
)

// MainLoop multiplexes display events with child-exit signals and routes
// each event to its handler. One per process; all handlers run on the
// goroutine that called Run, so collaborators see strictly sequential
// access.
type MainLoop struct {
	x  Display
	co Collaborators

	table       dispatchTable
	childExited bus.Signal[ChildExit]

	quitFlag atomic.Bool
	quitOnce sync.Once
	quitCh   chan struct{}
	sigchld  chan os.Signal

	// set for the duration of the enter-notify handler; see
	// DropEnterNotifyEvents
	duringEnterNotify bool
}

// New wires the loop to its display and collaborators. Nil collaborator
// fields become inert defaults.
func New(x Display, co Collaborators) *MainLoop {
	co.fillDefaults()
	l := &MainLoop{
		x:       x,
		co:      co,
		quitCh:  make(chan struct{}),
		sigchld: make(chan os.Signal, 16),
	}
	l.buildTable()
	co.Monitors.DropEnterNotify().Connect(func(struct{}) { l.DropEnterNotifyEvents() })
	co.Clients.DraggedChanged().Connect(l.draggedClientChanged)
	signal.Notify(l.sigchld, unix.SIGCHLD)
	return l
}

// ChildExited fires once per reaped child process, before the next display
// event is processed.
func (l *MainLoop) ChildExited() *bus.Signal[ChildExit] { return &l.childExited }

// Quit requests termination. The loop exits at the next safe check point;
// a handler that is currently running completes first.
func (l *MainLoop) Quit() {
	l.quitFlag.Store(true)
	l.quitOnce.Do(func() { close(l.quitCh) })
}

func (l *MainLoop) quitting() bool { return l.quitFlag.Load() }

// Run blocks until Quit is called or the display connection is lost. Each
// iteration reaps terminated children, parks until the display has events
// (or a signal interrupts the wait), reaps again so children that died
// during the wait are reported before any event, then drains the local
// queue one event at a time, re-synchronizing after every handler so
// self-caused events are visible before the next one is processed.
func (l *MainLoop) Run() error {
	defer signal.Stop(l.sigchld)
	for {
		l.collectZombies()
		if l.quitting() {
			return nil
		}
		select {
		case <-l.quitCh:
			continue
		case <-l.sigchld:
			// possibly SIGCHLD while parked: reap before sleeping again
			continue
		case <-l.x.Done():
			return errors.New("mainloop: display connection closed")
		case <-l.x.Ready():
		}
		l.collectZombies()
		if l.quitting() {
			return nil
		}
		l.x.Sync()
		for {
			ev, ok := l.x.Next()
			if !ok {
				break
			}
			l.dispatch(ev)
			l.co.Watchers.ScanForChanges()
			l.x.Sync()
		}
	}
}

// reapChild is swapped out by tests.
var reapChild = func() (pid int, status int, ok bool) {
	var ws unix.WaitStatus
	pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
	if err != nil || pid <= 0 {
		return 0, 0, false
	}
	switch {
	case ws.Exited():
		status = ws.ExitStatus()
	case ws.Signaled():
		status = 128 + int(ws.Signal())
	}
	return pid, status, true
}

func (l *MainLoop) collectZombies() {
	for {
		pid, status, ok := reapChild()
		if !ok {
			return
		}
		l.childExited.Emit(ChildExit{PID: pid, Status: status})
	}
}

// DropEnterNotifyEvents discards queued pointer-entry events. It is
// requested after operations known to generate cosmetic entry events
// (pointer grabs and releases, synthetic unmaps) that must not move focus.
func (l *MainLoop) DropEnterNotifyEvents() {
	if l.duringEnterNotify {
		// during the handler no artificial enter notify can exist yet, and
		// entry events from fast pointer motion must not be dropped
		return
	}
	l.x.Sync()
	l.drainEnterNotify()
}

func (l *MainLoop) drainEnterNotify() {
	for {
		if _, ok := l.x.TakeQueued(isEnterNotify); !ok {
			return
		}
	}
}

func isEnterNotify(ev xgb.Event) bool {
	_, ok := ev.(xproto.EnterNotifyEvent)
	return ok
}

func isFocusChange(ev xgb.Event) bool {
	switch ev.(type) {
	case xproto.FocusInEvent, xproto.FocusOutEvent:
		return true
	}
	return false
}

func isMotion(ev xgb.Event) bool {
	_, ok := ev.(xproto.MotionNotifyEvent)
	return ok
}

// ScanExistingClients walks the window tree once at startup and brings
// pre-existing windows under management: desktop windows and docks are
// registered and mapped, viewable windows (and windows listed by a previous
// manager) become clients. Windows the previous manager left reparented are
// re-attached to the root first.
func (l *MainLoop) ScanExistingClients() error {
	wins, err := l.x.QueryTree(l.x.Root())
	if err != nil {
		return fmt.Errorf("mainloop: scan clients: %w", err)
	}
	original := l.co.Ewmh.OriginalClientList()
	inOriginal := func(win xproto.Window) bool {
		for _, w := range original {
			if w == win {
				return true
			}
		}
		return false
	}
	tagHint := func(win xproto.Window) string {
		if !l.co.Settings.ImportTagsFromEwmh() {
			return ""
		}
		if tag, ok := l.co.Ewmh.InitialTag(win); ok {
			return tag
		}
		return ""
	}
	for _, win := range wins {
		attrs, err := l.x.WindowAttributes(win)
		if err != nil || attrs.OverrideRedirect {
			continue
		}
		if l.co.Ewmh.IsOwnWindow(win) {
			continue
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
			// only manage mapped windows, unless the previous manager
			// listed the window as a client
			if attrs.MapState != xproto.MapStateViewable && !inOriginal(win) {
				continue
			}
			c, err := l.co.Clients.Manage(win, true, false, tagHint(win))
			if err != nil || c == nil {
				continue
			}
			if _, ok := l.co.Monitors.ByTag(c.Tag()); ok {
				l.x.MapWindow(win)
			}
		}
	}
	for _, win := range original {
		if _, ok := l.co.Clients.Client(win); ok {
			continue
		}
		attrs, err := l.x.WindowAttributes(win)
		if err != nil || attrs.OverrideRedirect {
			continue
		}
		l.x.ReparentWindow(win, l.x.Root(), 0, 0)
		if _, err := l.co.Clients.Manage(win, true, false, tagHint(win)); err != nil {
			return fmt.Errorf("mainloop: manage 0x%x: %w", win, err)
		}
	}
	l.co.Monitors.Restack()
	return nil
}
