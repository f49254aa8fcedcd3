// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: ipc/server.go
// Summary: Command channel over X properties. A client creates a window of a
//          well-known class, writes its argument vector to a property, and
//          reads the reply from three properties on the same window.
// Usage: Wired into the main loop as the command server collaborator.

package ipc

import (
	"fmt"
	"log"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/ju-sh/herbstluftwm/wm"
)

// Property protocol: the client window's class marks it as a command
// connection; arguments and replies travel as properties on that window.
const (
	connectionClass = "HERBST_IPC_CLASS"
	argsProperty    = "_HERBST_IPC_ARGS"
	outputProperty  = "_HERBST_IPC_OUTPUT"
	errorProperty   = "_HERBST_IPC_ERROR"
	statusProperty  = "_HERBST_IPC_EXIT_STATUS"
)

// Server answers command requests arriving via the property protocol.
type Server struct {
	xu *xgbutil.XUtil

	mu      sync.Mutex
	windows map[xproto.Window]struct{}
}

func New(xu *xgbutil.XUtil) *Server {
	return &Server{
		xu:      xu,
		windows: make(map[xproto.Window]struct{}),
	}
}

// IsConnectable reports whether win carries the connection class hint.
func (s *Server) IsConnectable(win xproto.Window) bool {
	s.mu.Lock()
	_, known := s.windows[win]
	s.mu.Unlock()
	if known {
		return true
	}
	class, err := icccm.WmClassGet(s.xu, win)
	if err != nil {
		return false
	}
	return class.Instance == connectionClass || class.Class == connectionClass
}

// AddConnection starts tracking win as a command connection.
func (s *Server) AddConnection(win xproto.Window) {
	s.mu.Lock()
	s.windows[win] = struct{}{}
	s.mu.Unlock()
}

// RemoveConnection forgets a destroyed connection window.
func (s *Server) RemoveConnection(win xproto.Window) {
	s.mu.Lock()
	delete(s.windows, win)
	s.mu.Unlock()
}

// HandleConnection reads the pending argument vector from win, if any, runs
// it through cb and writes the reply properties. The argument property is
// deleted first so a request is served exactly once.
func (s *Server) HandleConnection(win xproto.Window, cb wm.CommandCallback) {
	args, ok, err := s.takeArgs(win)
	if err != nil {
		log.Printf("ipc: read arguments of 0x%x: %v", win, err)
		return
	}
	if !ok {
		// property not set yet; the client is still preparing the call
		return
	}
	res := cb(args)
	if err := s.reply(win, res); err != nil {
		log.Printf("ipc: reply to 0x%x: %v", win, err)
	}
}

func (s *Server) takeArgs(win xproto.Window) ([]string, bool, error) {
	reply, err := xprop.GetProperty(s.xu, win, argsProperty)
	if err != nil || reply == nil || reply.Format == 0 {
		// a missing property is not an error, just nothing to do
		return nil, false, nil
	}
	atom, err := xprop.Atm(s.xu, argsProperty)
	if err != nil {
		return nil, false, fmt.Errorf("intern %s: %w", argsProperty, err)
	}
	xproto.DeleteProperty(s.xu.Conn(), win, atom)
	return parseArgList(reply.Value), true, nil
}

func (s *Server) reply(win xproto.Window, res wm.CommandResult) error {
	if err := xprop.ChangeProp(s.xu, win, 8, outputProperty, "UTF8_STRING",
		[]byte(res.Output)); err != nil {
		return err
	}
	if err := xprop.ChangeProp(s.xu, win, 8, errorProperty, "UTF8_STRING",
		[]byte(res.Error)); err != nil {
		return err
	}
	// the exit status must be written last: the client treats its arrival
	// as the end of the request
	return xprop.ChangeProp32(s.xu, win, statusProperty, "CARDINAL",
		uint(uint32(res.ExitCode)))
}

// parseArgList splits a NUL-separated string-list property value into its
// elements. A trailing NUL does not produce an empty final element.
func parseArgList(value []byte) []string {
	if len(value) == 0 {
		return nil
	}
	var args []string
	start := 0
	for i, b := range value {
		if b == 0 {
			args = append(args, string(value[start:i]))
			start = i + 1
		}
	}
	if start < len(value) {
		args = append(args, string(value[start:]))
	}
	return args
}
