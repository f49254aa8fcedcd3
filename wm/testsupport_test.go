// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/testsupport_test.go
// Summary: Scripted display and recording collaborator stubs for loop tests.

package wm

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/ju-sh/herbstluftwm/monitor"
	"github.com/ju-sh/herbstluftwm/x11"
)

type configureCall struct {
	win    xproto.Window
	mask   uint16
	values []uint32
}

// fakeDisplay replays a scripted event queue and records every protocol
// request the loop issues.
type fakeDisplay struct {
	mu    sync.Mutex
	root  xproto.Window
	queue []xgb.Event
	ready chan struct{}
	done  chan struct{}

	syncs  int
	onSync func(d *fakeDisplay)

	tree  []xproto.Window
	attrs map[xproto.Window]*xproto.GetWindowAttributesReply

	mapped     []xproto.Window
	unmapped   []xproto.Window
	reparented []xproto.Window
	configures []configureCall
	selected   map[xproto.Window]uint32
	focused    []xproto.Window
	allowed    []byte

	grabbed   []xproto.Cursor
	ungrabs   int
	grabErr   error
	cursorErr map[uint16]error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		root:      1,
		ready:     make(chan struct{}, 1),
		done:      make(chan struct{}),
		attrs:     make(map[xproto.Window]*xproto.GetWindowAttributesReply),
		selected:  make(map[xproto.Window]uint32),
		cursorErr: make(map[uint16]error),
	}
}

func viewable() *xproto.GetWindowAttributesReply {
	return &xproto.GetWindowAttributesReply{MapState: xproto.MapStateViewable}
}

func (d *fakeDisplay) push(evs ...xgb.Event) {
	d.mu.Lock()
	d.queue = append(d.queue, evs...)
	d.mu.Unlock()
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

func (d *fakeDisplay) Root() xproto.Window { return d.root }
func (d *fakeDisplay) Ready() <-chan struct{} { return d.ready }
func (d *fakeDisplay) Done() <-chan struct{} { return d.done }

func (d *fakeDisplay) Sync() {
	d.syncs++
	if d.onSync != nil {
		d.onSync(d)
	}
}

func (d *fakeDisplay) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *fakeDisplay) Next() (xgb.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil, false
	}
	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev, true
}

func (d *fakeDisplay) TakeQueued(match func(xgb.Event) bool) (xgb.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, ev := range d.queue {
		if match(ev) {
			d.queue = append(d.queue[:i], d.queue[i+1:]...)
			return ev, true
		}
	}
	return nil, false
}

func (d *fakeDisplay) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	return d.tree, nil
}

func (d *fakeDisplay) WindowAttributes(win xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	if a, ok := d.attrs[win]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("no such window 0x%x", win)
}

func (d *fakeDisplay) MapWindow(win xproto.Window) { d.mapped = append(d.mapped, win) }
func (d *fakeDisplay) UnmapWindow(win xproto.Window) { d.unmapped = append(d.unmapped, win) }

func (d *fakeDisplay) ReparentWindow(win, parent xproto.Window, x, y int16) {
	d.reparented = append(d.reparented, win)
}

func (d *fakeDisplay) ConfigureWindow(win xproto.Window, mask uint16, values []uint32) {
	d.configures = append(d.configures, configureCall{win, mask, values})
}

func (d *fakeDisplay) SelectInput(win xproto.Window, mask uint32) { d.selected[win] = mask }
func (d *fakeDisplay) SetInputFocus(win xproto.Window) { d.focused = append(d.focused, win) }
func (d *fakeDisplay) AllowEvents(mode byte, _ xproto.Timestamp) { d.allowed = append(d.allowed, mode) }

func (d *fakeDisplay) GrabPointer(win xproto.Window, cursor xproto.Cursor) error {
	if d.grabErr != nil {
		return d.grabErr
	}
	d.grabbed = append(d.grabbed, cursor)
	return nil
}

func (d *fakeDisplay) UngrabPointer() { d.ungrabs++ }

func (d *fakeDisplay) CursorFor(shape uint16) (xproto.Cursor, error) {
	if err := d.cursorErr[shape]; err != nil {
		return 0, err
	}
	return xproto.Cursor(shape) + 1000, nil
}

var errNoCursor = errors.New("no cursor font")

// stubClient records the mutations the handlers perform on one client.
type stubClient struct {
	win, deco     xproto.Window
	tag           string
	floating      bool
	pseudotiled   bool
	hintsFloating bool
	floatSize     x11.Rect
	lastSize      x11.Rect
	resizeArea    ResizeDirection
	tab           Client

	sentConfigures  int
	floatResizes    int
	minimizedCalls  []bool
	titleUpdates    int
	wmHintUpdates   int
	sizeHintUpdates int
	cursorRefreshes int
}

func (c *stubClient) Window() xproto.Window { return c.win }
func (c *stubClient) DecorationWindow() xproto.Window { return c.deco }
func (c *stubClient) Tag() string { return c.tag }

func (c *stubClient) TabClientAt(x, y int16) (Client, bool) {
	if c.tab == nil {
		return nil, false
	}
	return c.tab, true
}

func (c *stubClient) ResizeAreaAt(x, y int16) ResizeDirection { return c.resizeArea }
func (c *stubClient) RefreshCursorHints() { c.cursorRefreshes++ }

func (c *stubClient) Floating() bool { return c.floating }
func (c *stubClient) Pseudotiled() bool { return c.pseudotiled }
func (c *stubClient) SizeHintsFloating() bool { return c.hintsFloating }

func (c *stubClient) FloatSize() x11.Rect { return c.floatSize }
func (c *stubClient) SetFloatSize(r x11.Rect) { c.floatSize = r }
func (c *stubClient) LastSize() x11.Rect { return c.lastSize }

func (c *stubClient) ResizeFloating(m *monitor.Monitor, focused bool) { c.floatResizes++ }
func (c *stubClient) SendConfigure() { c.sentConfigures++ }
func (c *stubClient) ApplySizeHints(w, h int) (int, int) { return w, h }

func (c *stubClient) SetMinimized(min bool) { c.minimizedCalls = append(c.minimizedCalls, min) }
func (c *stubClient) UpdateTitle() { c.titleUpdates++ }
func (c *stubClient) UpdateWMHints() { c.wmHintUpdates++ }
func (c *stubClient) UpdateSizeHints() { c.sizeHintUpdates++ }

type focusCall struct {
	c                        Client
	switchTag, change, raise bool
}

type manageCall struct {
	win               xproto.Window
	mapped, temporary bool
	tagHint           string
}

type stubClients struct {
	nopClients
	byWindow map[xproto.Window]Client
	byDeco   map[xproto.Window]Client
	focus    Client

	manageResult Client
	manageErr    error

	focusCalls  []focusCall
	manageCalls []manageCall
	unmapCalls  []xproto.Window
	forced      []Client
	ruled       []Client
}

func newStubClients() *stubClients {
	return &stubClients{
		byWindow: make(map[xproto.Window]Client),
		byDeco:   make(map[xproto.Window]Client),
	}
}

func (s *stubClients) add(c *stubClient) *stubClients {
	s.byWindow[c.win] = c
	if c.deco != 0 {
		s.byDeco[c.deco] = c
	}
	return s
}

func (s *stubClients) Client(win xproto.Window) (Client, bool) {
	c, ok := s.byWindow[win]
	return c, ok
}

func (s *stubClients) DecorationClient(win xproto.Window) (Client, bool) {
	c, ok := s.byDeco[win]
	return c, ok
}

func (s *stubClients) Focus() (Client, bool) { return s.focus, s.focus != nil }

func (s *stubClients) FocusClient(c Client, switchTag, change, raise bool) {
	s.focusCalls = append(s.focusCalls, focusCall{c, switchTag, change, raise})
	if c != nil {
		s.focus = c
	}
}

func (s *stubClients) Manage(win xproto.Window, mapped, temporary bool, tagHint string) (Client, error) {
	s.manageCalls = append(s.manageCalls, manageCall{win, mapped, temporary, tagHint})
	if s.manageErr != nil {
		return nil, s.manageErr
	}
	if s.manageResult != nil {
		return s.manageResult, nil
	}
	c := &stubClient{win: win, tag: tagHint}
	s.byWindow[win] = c
	return c, nil
}

func (s *stubClients) ForceUnmanage(c Client) { s.forced = append(s.forced, c) }
func (s *stubClients) UnmapNotify(w xproto.Window) { s.unmapCalls = append(s.unmapCalls, w) }
func (s *stubClients) ApplyRules(c Client) { s.ruled = append(s.ruled, c) }

type stubMonitors struct {
	nopMonitors
	byTag   map[string]*monitor.Monitor
	byCoord *monitor.Monitor
	focus   *monitor.Monitor

	restacks  int
	layouts   []*monitor.Monitor
	detects   int
	detectErr error
}

func newStubMonitors() *stubMonitors {
	return &stubMonitors{
		byTag: make(map[string]*monitor.Monitor),
		focus: &monitor.Monitor{},
	}
}

func (s *stubMonitors) ByTag(tag string) (*monitor.Monitor, bool) {
	m, ok := s.byTag[tag]
	return m, ok
}

func (s *stubMonitors) ByCoordinate(x, y int) (*monitor.Monitor, bool) {
	return s.byCoord, s.byCoord != nil
}

func (s *stubMonitors) Focus() *monitor.Monitor { return s.focus }
func (s *stubMonitors) Restack() { s.restacks++ }
func (s *stubMonitors) ApplyLayout(m *monitor.Monitor) { s.layouts = append(s.layouts, m) }

func (s *stubMonitors) DetectMonitors() error {
	s.detects++
	return s.detectErr
}

type motionPoint struct{ x, y int16 }

type stubMouse struct {
	nopMouse
	consume  bool
	dragging bool
	action   ResizeDirection

	buttons []xproto.Button
	moves   []Client
	resizes []Client
	stops   int
	motions []motionPoint
}

func (s *stubMouse) HandleButton(state uint16, button xproto.Button, win xproto.Window) bool {
	s.buttons = append(s.buttons, button)
	return s.consume
}

func (s *stubMouse) InitiateMove(c Client) { s.moves = append(s.moves, c) }
func (s *stubMouse) InitiateResize(c Client, _ ResizeDirection) { s.resizes = append(s.resizes, c) }
func (s *stubMouse) StopDrag() { s.stops++ }
func (s *stubMouse) Dragging() bool { return s.dragging }
func (s *stubMouse) HandleMotion(x, y int16) { s.motions = append(s.motions, motionPoint{x, y}) }
func (s *stubMouse) ResizeAction() ResizeDirection { return s.action }

type stubKeys struct {
	nopKeys
	presses   []xproto.Keycode
	refreshes int
	regrabs   int
}

func (s *stubKeys) HandleKeyPress(ev xproto.KeyPressEvent) { s.presses = append(s.presses, ev.Detail) }
func (s *stubKeys) RefreshMapping(ev xproto.MappingNotifyEvent) { s.refreshes++ }
func (s *stubKeys) RegrabAll() { s.regrabs++ }

type stubPanels struct {
	nopPanels
	registered   []xproto.Window
	unregistered []xproto.Window
	rootChanges  []x11.Rect
	geomChanges  map[xproto.Window]x11.Rect
	propChanges  []xproto.Window
}

func newStubPanels() *stubPanels {
	return &stubPanels{geomChanges: make(map[xproto.Window]x11.Rect)}
}

func (s *stubPanels) Register(w xproto.Window) { s.registered = append(s.registered, w) }
func (s *stubPanels) Unregister(w xproto.Window) { s.unregistered = append(s.unregistered, w) }

func (s *stubPanels) RootGeometryChanged(w, h int) {
	s.rootChanges = append(s.rootChanges, x11.Rect{Width: w, Height: h})
}

func (s *stubPanels) GeometryChanged(w xproto.Window, g x11.Rect) { s.geomChanges[w] = g }

func (s *stubPanels) PropertyChanged(w xproto.Window, _ xproto.Atom) {
	s.propChanges = append(s.propChanges, w)
}

type stubDesktops struct {
	nopDesktops
	registered   []xproto.Window
	unregistered []xproto.Window
}

func (s *stubDesktops) Register(w xproto.Window) { s.registered = append(s.registered, w) }
func (s *stubDesktops) Unregister(w xproto.Window) { s.unregistered = append(s.unregistered, w) }

type stubEwmh struct {
	nopDesktopProtocol
	own         map[xproto.Window]bool
	kinds       map[xproto.Window]WindowKind
	selection   xproto.Atom
	managerWin  xproto.Window
	netWmName   xproto.Atom
	original    []xproto.Window
	initialTags map[xproto.Window]string

	clientMessages int
}

func newStubEwmh() *stubEwmh {
	return &stubEwmh{
		own:         make(map[xproto.Window]bool),
		kinds:       make(map[xproto.Window]WindowKind),
		initialTags: make(map[xproto.Window]string),
	}
}

func (s *stubEwmh) HandleClientMessage(xproto.ClientMessageEvent) { s.clientMessages++ }
func (s *stubEwmh) IsOwnWindow(w xproto.Window) bool { return s.own[w] }
func (s *stubEwmh) WindowKind(w xproto.Window) WindowKind { return s.kinds[w] }
func (s *stubEwmh) ManagerSelection() xproto.Atom { return s.selection }
func (s *stubEwmh) ManagerWindow() xproto.Window { return s.managerWin }
func (s *stubEwmh) NetWmNameAtom() xproto.Atom { return s.netWmName }
func (s *stubEwmh) OriginalClientList() []xproto.Window { return s.original }

func (s *stubEwmh) InitialTag(w xproto.Window) (string, bool) {
	tag, ok := s.initialTags[w]
	return tag, ok
}

type stubFrame struct{ win xproto.Window }

func (f *stubFrame) Window() xproto.Window { return f.win }

type stubFrames struct {
	nopFrames
	frames    map[xproto.Window]Frame
	wouldHide bool
	focused   []Frame
}

func newStubFrames() *stubFrames {
	return &stubFrames{frames: make(map[xproto.Window]Frame)}
}

func (s *stubFrames) FrameAt(w xproto.Window) (Frame, bool) {
	f, ok := s.frames[w]
	return f, ok
}

func (s *stubFrames) FocusFrame(f Frame) { s.focused = append(s.focused, f) }
func (s *stubFrames) FocusWouldHide(Client) bool { return s.wouldHide }

type stubWatcher struct{ scans int }

func (s *stubWatcher) ScanForChanges() { s.scans++ }

type stubSettings struct {
	ffm, raise, autodetect, importTags bool
}

func (s *stubSettings) FocusFollowsMouse() bool { return s.ffm }
func (s *stubSettings) RaiseOnClick() bool { return s.raise }
func (s *stubSettings) AutoDetectMonitors() bool { return s.autodetect }
func (s *stubSettings) ImportTagsFromEwmh() bool { return s.importTags }

type stubIpc struct {
	nopCommandServer
	connectable map[xproto.Window]bool
	added       []xproto.Window
	removed     []xproto.Window
	handled     []xproto.Window
	lastCb      CommandCallback
}

func newStubIpc() *stubIpc {
	return &stubIpc{connectable: make(map[xproto.Window]bool)}
}

func (s *stubIpc) IsConnectable(w xproto.Window) bool { return s.connectable[w] }
func (s *stubIpc) AddConnection(w xproto.Window) { s.added = append(s.added, w) }
func (s *stubIpc) RemoveConnection(w xproto.Window) { s.removed = append(s.removed, w) }

func (s *stubIpc) HandleConnection(w xproto.Window, cb CommandCallback) {
	s.handled = append(s.handled, w)
	s.lastCb = cb
}

type stubRunner struct {
	names []string
	args  [][]string
	code  int
	out   string
	errs  string
}

func (s *stubRunner) Call(name string, args []string, out, errOut io.Writer) int {
	s.names = append(s.names, name)
	s.args = append(s.args, args)
	io.WriteString(out, s.out)
	io.WriteString(errOut, s.errs)
	return s.code
}

// testRig wires a loop to a full set of recording stubs.
type testRig struct {
	d *fakeDisplay
	l *MainLoop

	clients  *stubClients
	monitors *stubMonitors
	mouse    *stubMouse
	keys     *stubKeys
	panels   *stubPanels
	desktops *stubDesktops
	ewmh     *stubEwmh
	frames   *stubFrames
	watcher  *stubWatcher
	settings *stubSettings
	runner   *stubRunner
	ipc      *stubIpc
}

func newRig() *testRig {
	r := &testRig{
		d:        newFakeDisplay(),
		clients:  newStubClients(),
		monitors: newStubMonitors(),
		mouse:    &stubMouse{},
		keys:     &stubKeys{},
		panels:   newStubPanels(),
		desktops: &stubDesktops{},
		ewmh:     newStubEwmh(),
		frames:   newStubFrames(),
		watcher:  &stubWatcher{},
		settings: &stubSettings{raise: true, importTags: true},
		runner:   &stubRunner{},
		ipc:      newStubIpc(),
	}
	r.l = New(r.d, Collaborators{
		Clients:  r.clients,
		Monitors: r.monitors,
		Mouse:    r.mouse,
		Keys:     r.keys,
		Panels:   r.panels,
		Desktops: r.desktops,
		Ewmh:     r.ewmh,
		Frames:   r.frames,
		Watchers: r.watcher,
		Settings: r.settings,
		Commands: r.runner,
		Ipc:      r.ipc,
	})
	return r
}
