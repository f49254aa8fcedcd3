// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: monitor/monitor.go
// Summary: Monitor geometry: rects, panel pads, tag assignment, lookup.
// Usage: Consumed by the main loop for configure-request coordinate translation.

package monitor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"

	"github.com/ju-sh/herbstluftwm/x11"
)

// Monitor is one rectangular region of the root window, displaying one tag.
// Pads reserve space for panels at the respective edge.
type Monitor struct {
	Geometry x11.Rect
	PadUp    int
	PadRight int
	PadDown  int
	PadLeft  int
	TagName  string
}

// Contains reports whether the root-relative point (x, y) lies on the monitor.
func (m *Monitor) Contains(x, y int) bool {
	g := m.Geometry
	return x >= g.X && x < g.X+g.Width && y >= g.Y && y < g.Y+g.Height
}

// Manager keeps the list of monitors in index order. Index 0 is created
// implicitly; the focused monitor is tracked by index.
type Manager struct {
	mu       sync.Mutex
	monitors []*Monitor
	focusIdx int
}

func NewManager(initial ...*Monitor) *Manager {
	return &Manager{monitors: initial}
}

// ByTag returns the monitor currently displaying the named tag.
func (mm *Manager) ByTag(tag string) (*Monitor, bool) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	for _, m := range mm.monitors {
		if m.TagName == tag {
			return m, true
		}
	}
	return nil, false
}

// ByCoordinate returns the monitor containing the root-relative point (x, y).
func (mm *Manager) ByCoordinate(x, y int) (*Monitor, bool) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	for _, m := range mm.monitors {
		if m.Contains(x, y) {
			return m, true
		}
	}
	return nil, false
}

// Focus returns the focused monitor. There is always at least one monitor;
// on an empty manager Focus returns a zero-geometry placeholder so callers
// never receive nil.
func (mm *Manager) Focus() *Monitor {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if len(mm.monitors) == 0 {
		return &Monitor{}
	}
	if mm.focusIdx >= len(mm.monitors) {
		mm.focusIdx = 0
	}
	return mm.monitors[mm.focusIdx]
}

// SetFocus makes the monitor at idx the focused one.
func (mm *Manager) SetFocus(idx int) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if idx >= 0 && idx < len(mm.monitors) {
		mm.focusIdx = idx
	}
}

// Monitors returns a snapshot of the monitor list.
func (mm *Manager) Monitors() []*Monitor {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	out := make([]*Monitor, len(mm.monitors))
	copy(out, mm.monitors)
	return out
}

// Replace swaps the whole monitor list, keeping the focus index valid.
func (mm *Manager) Replace(monitors []*Monitor) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.monitors = monitors
	if mm.focusIdx >= len(monitors) {
		mm.focusIdx = 0
	}
}

// Detect queries xinerama for the physical screen layout and rebuilds the
// monitor list from it, reusing tag names of existing monitors by index.
// With no xinerama information the root geometry is kept as a single monitor.
func (mm *Manager) Detect(conn *xgb.Conn) error {
	if err := xinerama.Init(conn); err != nil {
		return fmt.Errorf("monitor: xinerama: %w", err)
	}
	reply, err := xinerama.QueryScreens(conn).Reply()
	if err != nil {
		return fmt.Errorf("monitor: query screens: %w", err)
	}
	if len(reply.ScreenInfo) == 0 {
		return nil
	}
	screens := append([]xinerama.ScreenInfo(nil), reply.ScreenInfo...)
	sort.Slice(screens, func(i, j int) bool {
		if screens[i].XOrg != screens[j].XOrg {
			return screens[i].XOrg < screens[j].XOrg
		}
		return screens[i].YOrg < screens[j].YOrg
	})
	old := mm.Monitors()
	fresh := make([]*Monitor, 0, len(screens))
	for i, s := range screens {
		m := &Monitor{Geometry: x11.Rect{
			X: int(s.XOrg), Y: int(s.YOrg),
			Width: int(s.Width), Height: int(s.Height),
		}}
		if i < len(old) {
			m.TagName = old[i].TagName
			m.PadUp, m.PadRight = old[i].PadUp, old[i].PadRight
			m.PadDown, m.PadLeft = old[i].PadDown, old[i].PadLeft
		}
		fresh = append(fresh, m)
	}
	mm.Replace(fresh)
	return nil
}
