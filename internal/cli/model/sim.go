package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/cli/styles"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/infrastructure/history/memory"
	"github.com/bnema/navstack/internal/logging"
	"github.com/bnema/navstack/internal/ui/coordinator"
	"github.com/bnema/navstack/internal/ui/mainloop"
)

const inboxSize = 64

// SimConfig configures the simulator.
type SimConfig struct {
	Stamp          entity.SessionStamp
	MountOrderOnly bool
	// ExitOnRootBack lets a back at the root leave the simulated app.
	ExitOnRootBack bool
	ShowRecords    bool
	ShowTrace      bool
	TraceLines     int

	// Container is an external back button (see wsbridge). When nil and
	// EmulateContainer is set, the p key plays the container's button.
	Container        port.ContainerBackButton
	EmulateContainer bool

	// Recorder, if set, receives every host trace event.
	Recorder port.TraceRecorder
	// Inbox carries work posted from other goroutines, such as container
	// presses. Created when nil.
	Inbox chan func()
}

// layer is one UI layer opened from the keyboard.
type layer struct {
	name    string
	replace bool
	handle  *coordinator.BackHandle
}

// simState is shared by every copy of SimModel.
type simState struct {
	ctx    context.Context
	cfg    SimConfig
	loop   *mainloop.Manual
	host   *memory.Host
	nav    *coordinator.NavigationCoordinator
	button *emulatedButton
	inbox  chan func()

	layers  []*layer
	opened  int
	stamp   entity.SessionStamp
	auto    bool
	backs   []string
	status  string
	recErrs int
}

// SimModel is an interactive coordinator playground on an in-memory host.
// Keys open and close layers or act as the user on the host; queued host
// work runs either after each key (auto) or one task at a time.
type SimModel struct {
	state    *simState
	keys     styles.SimKeyMap
	help     help.Model
	theme    *styles.Theme
	trace    *styles.TraceRenderer
	showHelp bool
	quitting bool
}

// PostedMsg carries work handed to the simulator from another goroutine.
type PostedMsg struct {
	fn func()
}

// NewSimModel creates the simulator and its first coordinator.
func NewSimModel(ctx context.Context, theme *styles.Theme, cfg SimConfig) SimModel {
	st := &simState{
		ctx:   logging.WithComponent(ctx, "sim"),
		cfg:   cfg,
		loop:  mainloop.NewManual(),
		inbox: cfg.Inbox,
		stamp: cfg.Stamp,
		auto:  true,
	}
	if st.inbox == nil {
		st.inbox = make(chan func(), inboxSize)
	}
	if st.stamp == 0 {
		st.stamp = entity.NewSessionStamp()
	}
	if cfg.Container == nil && cfg.EmulateContainer {
		st.button = &emulatedButton{}
	}
	st.host = memory.New(st.loop.Post, memory.WithObserver(st.record))
	st.attach()
	st.loop.RunPending()

	return SimModel{
		state: st,
		keys:  styles.DefaultSimKeyMap(),
		help:  styles.NewStyledHelp(theme),
		theme: theme,
		trace: styles.NewTraceRenderer(theme),
	}
}

// Post hands fn to the simulator goroutine. Safe for concurrent use; it
// blocks when the inbox is full.
func (m SimModel) Post(fn func()) {
	m.state.inbox <- fn
}

// SetDisplay changes which panels are drawn. Call it from posted work.
func (m SimModel) SetDisplay(showRecords, showTrace bool, traceLines int) {
	st := m.state
	st.cfg.ShowRecords = showRecords
	st.cfg.ShowTrace = showTrace
	st.cfg.TraceLines = traceLines
	st.status = "display settings reloaded"
}

func (m SimModel) waitForPost() tea.Cmd {
	inbox := m.state.inbox
	return func() tea.Msg {
		return PostedMsg{fn: <-inbox}
	}
}

// Init implements tea.Model.
func (m SimModel) Init() tea.Cmd {
	return m.waitForPost()
}

// Update implements tea.Model.
func (m SimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostedMsg:
		if msg.fn != nil {
			msg.fn()
		}
		m.state.settle()
		return m, m.waitForPost()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m SimModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.state
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Step):
		if !st.loop.RunOnce() {
			st.status = "nothing queued"
		} else {
			st.status = fmt.Sprintf("ran one task, %d left", st.loop.Len())
		}
		return m, nil
	case key.Matches(msg, m.keys.Auto):
		st.auto = !st.auto
		st.status = "auto flush " + onOff(st.auto)
		st.settle()
		return m, nil
	case key.Matches(msg, m.keys.Open):
		st.open(false)
	case key.Matches(msg, m.keys.OpenReplace):
		st.open(true)
	case key.Matches(msg, m.keys.Close):
		st.closeTop()
	case key.Matches(msg, m.keys.Release):
		st.releaseTop()
	case key.Matches(msg, m.keys.Back):
		st.host.Back()
		st.status = "user pressed back"
	case key.Matches(msg, m.keys.Forward):
		st.host.Forward()
		st.status = "user pressed forward"
	case key.Matches(msg, m.keys.Reload):
		st.reload()
	case key.Matches(msg, m.keys.Press):
		st.press()
	default:
		return m, nil
	}
	st.settle()
	return m, nil
}

// attach creates a coordinator for the current page incarnation.
func (st *simState) attach() {
	opts := coordinator.Options{
		Stamp:          st.stamp,
		MountOrderOnly: st.cfg.MountOrderOnly,
	}
	if !st.cfg.ExitOnRootBack {
		opts.OnExit = func() { st.status = "back at root ignored" }
	}
	switch {
	case st.cfg.Container != nil:
		opts.Container = st.cfg.Container
	case st.button != nil:
		opts.Container = st.button
	}
	st.layers = nil
	st.nav = coordinator.New(st.ctx, st.host, st.loop, opts)
}

func (st *simState) settle() {
	if st.auto {
		st.loop.RunPending()
	}
}

func (st *simState) open(replace bool) {
	st.opened++
	prefix := "layer"
	if replace {
		prefix = "menu"
	}
	l := &layer{name: fmt.Sprintf("%s%d", prefix, st.opened), replace: replace}
	l.handle = st.nav.RegisterBackHandler(coordinator.BackHandlerOptions{
		Label:            l.name,
		ShouldBeReplaced: replace,
		OnBack: func() {
			st.backs = append(st.backs, l.name)
			l.handle.SetActive(false)
		},
	})
	st.layers = append(st.layers, l)
	l.handle.SetActive(true)
	st.status = "opened " + l.name
}

// topActive returns the most recently opened layer still active.
func (st *simState) topActive() *layer {
	for i := len(st.layers) - 1; i >= 0; i-- {
		if st.layers[i].handle.IsActive() {
			return st.layers[i]
		}
	}
	return nil
}

func (st *simState) closeTop() {
	l := st.topActive()
	if l == nil {
		st.status = "no active layer"
		return
	}
	l.handle.SetActive(false)
	st.status = "closed " + l.name
}

func (st *simState) releaseTop() {
	if len(st.layers) == 0 {
		st.status = "no mounted layer"
		return
	}
	l := st.layers[len(st.layers)-1]
	st.layers = st.layers[:len(st.layers)-1]
	l.handle.Release()
	st.status = "unmounted " + l.name
}

func (st *simState) reload() {
	dropped := st.loop.Discard()
	st.host.Reload()
	st.stamp++
	switch {
	case st.button != nil:
		st.button.reset()
	case st.cfg.Container != nil:
		st.cfg.Container.Hide()
	}
	st.attach()
	st.status = fmt.Sprintf("reloaded, %d queued tasks dropped", dropped)
}

func (st *simState) press() {
	if st.button == nil {
		st.status = "no emulated container button"
		return
	}
	if !st.button.visible {
		st.status = "container button is hidden"
		return
	}
	st.button.press()
	st.status = "container back pressed"
}

func (st *simState) record(ev entity.TraceEvent) {
	if st.cfg.Recorder == nil {
		return
	}
	if err := st.cfg.Recorder.Record(st.ctx, ev); err != nil {
		st.recErrs++
		logging.FromContext(st.ctx).Warn().Err(err).Int64("seq", ev.Seq).Msg("failed to record trace event")
	}
}

// View implements tea.Model.
func (m SimModel) View() string {
	if m.quitting {
		return ""
	}
	st := m.state
	t := m.theme

	sections := []string{m.renderHeader()}
	if st.cfg.ShowRecords {
		sections = append(sections, m.box("Stack", m.renderStack()))
	}
	sections = append(sections, m.box("Host", m.renderHost()))
	if st.cfg.ShowTrace {
		lines := m.trace.Events(st.host.Trace(), st.cfg.TraceLines)
		if len(lines) == 0 {
			lines = []string{t.Subtle.Render("(empty)")}
		}
		sections = append(sections, m.box("Trace", strings.Join(lines, "\n")))
	}
	if st.status != "" {
		sections = append(sections, t.Subtle.Render(styles.IconArrow+" "+st.status))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m SimModel) box(title, body string) string {
	return m.theme.Box.Render(m.theme.BoxHeader.Render(title) + "\n" + body)
}

func (m SimModel) renderHeader() string {
	st := m.state
	t := m.theme

	badges := []string{
		t.Badge.Render(fmt.Sprintf("stamp %d", st.stamp)),
		t.BadgeMuted.Render("flush " + flushMode(st.auto)),
	}
	if st.cfg.MountOrderOnly {
		badges = append(badges, t.BadgeMuted.Render("mount order only"))
	}
	if st.button != nil || st.cfg.Container != nil {
		visible := false
		if reg := st.nav.Container(); reg != nil {
			visible = reg.Visible()
		}
		state := "hidden"
		if visible {
			state = "shown"
		}
		badges = append(badges, t.BadgeMuted.Render("container "+state))
	}
	if st.host.Exited() {
		badges = append(badges, t.ErrorStyle.Render("EXITED"))
	}
	title := t.Title.Render(styles.IconLayers + " navstack simulator")
	return title + "  " + strings.Join(badges, " ")
}

func (m SimModel) renderStack() string {
	st := m.state
	t := m.theme
	cursor := st.nav.Cursor()

	var lines []string
	for _, r := range st.nav.Snapshot() {
		label := r.Label
		style := t.RecordOpen
		switch {
		case r.Closed:
			style = t.RecordClosed
		case r.ShouldReplace:
			style = t.RecordReplaced
		}
		marker := "  "
		if r.Index == cursor {
			marker = t.Highlight.Render("▶ ")
		}
		lines = append(lines, fmt.Sprintf("%s%d %s", marker, r.Index, style.Render(label)))
	}

	backs := "-"
	if len(st.backs) > 0 {
		backs = strings.Join(st.backs, ", ")
	}
	lines = append(lines, t.Subtle.Render("backs: "+backs))
	return strings.Join(lines, "\n")
}

func (m SimModel) renderHost() string {
	st := m.state
	t := m.theme
	pos := st.host.Position()

	var lines []string
	for i, p := range st.host.Entries() {
		marker := "  "
		if i == pos {
			marker = t.Highlight.Render("▶ ")
		}
		entry := t.Subtle.Render("(no payload)")
		if p != nil {
			entry = p.String()
			if p.Stamp != st.stamp {
				entry = t.WarningStyle.Render(entry + " stale")
			}
		}
		lines = append(lines, fmt.Sprintf("%s%d %s", marker, i, entry))
	}

	queued := fmt.Sprintf("queued tasks: %d", st.loop.Len())
	if pending := st.nav.Pending(); len(pending) > 0 {
		ops := make([]string, len(pending))
		for i, op := range pending {
			ops[i] = op.String()
		}
		queued += "  pending: " + strings.Join(ops, ", ")
	}
	lines = append(lines, t.Subtle.Render(queued))
	if st.recErrs > 0 {
		lines = append(lines, t.ErrorStyle.Render(fmt.Sprintf("%s %d trace events failed to record", styles.IconWarning, st.recErrs)))
	}
	return strings.Join(lines, "\n")
}

func flushMode(auto bool) string {
	if auto {
		return "auto"
	}
	return "step"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// emulatedButton plays an embedding container's back button.
type emulatedButton struct {
	visible bool
	pressed func()
}

func (b *emulatedButton) Show() {
	b.visible = true
}

func (b *emulatedButton) Hide() {
	b.visible = false
}

func (b *emulatedButton) OnPressed(cb func()) {
	b.pressed = cb
}

func (b *emulatedButton) reset() {
	b.visible, b.pressed = false, nil
}

func (b *emulatedButton) press() {
	if b.pressed != nil {
		b.pressed()
	}
}
