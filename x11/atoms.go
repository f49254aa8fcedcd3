// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: x11/atoms.go
// Summary: Predefined core protocol atoms and the shared geometry type.

package x11

import "github.com/BurntSushi/xgb/xproto"

// Core atoms predefined by the protocol (they never need interning).
const (
	AtomWMHints       xproto.Atom = 35
	AtomWMName        xproto.Atom = 39
	AtomWMNormalHints xproto.Atom = 40
	AtomWMClass       xproto.Atom = 67
)

// Rect is a window geometry in pixels. X and Y are relative to whatever
// coordinate space the context defines (root or monitor).
type Rect struct {
	X, Y          int
	Width, Height int
}
