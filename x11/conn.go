// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: x11/conn.go
// Summary: Display connection: event stream, local event queue, synchronize.
// Usage: Owned by the host process and handed to the main loop as its Display.

package x11

import (
	"fmt"
	"log"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Conn is the session to the X server. It owns a reader goroutine that moves
// incoming events into a local queue; everything else runs on the caller's
// goroutine. The main loop is the only consumer of the queue.
type Conn struct {
	conn *xgb.Conn
	xu   *xgbutil.XUtil
	root xproto.Window

	ready chan struct{}
	done  chan struct{}

	mu    sync.Mutex
	queue []xgb.Event

	cursorMu sync.Mutex
	cursors  map[uint16]xproto.Cursor
}

// Connect opens the display named by display ("" uses $DISPLAY).
func Connect(display string) (*Conn, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	xu, err := xgbutil.NewConnXgb(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	c := &Conn{
		conn:    conn,
		xu:      xu,
		root:    screen.Root,
		ready:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		cursors: make(map[uint16]xproto.Cursor),
	}
	go c.readEvents()
	return c, nil
}

// Root returns the root window of the default screen.
func (c *Conn) Root() xproto.Window { return c.root }

// Util exposes the xgbutil handle for property and cursor helpers.
func (c *Conn) Util() *xgbutil.XUtil { return c.xu }

// Raw exposes the underlying xgb connection.
func (c *Conn) Raw() *xgb.Conn { return c.conn }

// Close shuts the connection down. The reader goroutine exits and Done fires.
func (c *Conn) Close() { c.conn.Close() }

// Ready yields a token whenever at least one event has been queued since the
// last receive. A wake-up with an already drained queue is harmless.
func (c *Conn) Ready() <-chan struct{} { return c.ready }

// Done is closed when the connection to the server is lost.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Sync performs a round trip so that all requests issued so far have been
// processed by the server. Events they generated are buffered by the
// transport and appended to the local queue by the reader; an event racing
// the round-trip reply is picked up on the next wake at the latest.
func (c *Conn) Sync() {
	c.conn.Sync()
}

// Pending reports the number of locally queued events.
func (c *Conn) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Next removes and returns the oldest queued event.
func (c *Conn) Next() (xgb.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return nil, false
	}
	ev := c.queue[0]
	c.queue = c.queue[1:]
	return ev, true
}

// TakeQueued removes and returns the oldest queued event for which match
// returns true, leaving the rest of the queue intact.
func (c *Conn) TakeQueued(match func(xgb.Event) bool) (xgb.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ev := range c.queue {
		if match(ev) {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return ev, true
		}
	}
	return nil, false
}

func (c *Conn) readEvents() {
	for {
		ev, xerr := c.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			close(c.done)
			return
		}
		if xerr != nil {
			// X errors for asynchronous requests land here, e.g. operating
			// on a window that has already been destroyed. Not fatal.
			log.Printf("x11: %v", xerr)
			continue
		}
		c.mu.Lock()
		c.queue = append(c.queue, ev)
		c.mu.Unlock()
		select {
		case c.ready <- struct{}{}:
		default:
		}
	}
}
