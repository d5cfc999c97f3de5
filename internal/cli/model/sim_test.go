package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navstack/internal/application/port/mocks"
	"github.com/bnema/navstack/internal/cli/styles"
	"github.com/bnema/navstack/internal/domain/entity"
)

func newTestSim(t *testing.T, cfg SimConfig) SimModel {
	t.Helper()
	if cfg.Stamp == 0 {
		cfg.Stamp = 5
	}
	return NewSimModel(context.Background(), styles.NewTheme(), cfg)
}

func keys(t *testing.T, m SimModel, seq ...string) SimModel {
	t.Helper()
	for _, k := range seq {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(SimModel)
		require.True(t, ok)
	}
	return m
}

func TestSim_StartsAtRoot(t *testing.T) {
	m := newTestSim(t, SimConfig{ShowRecords: true})

	assert.Equal(t, 0, m.state.nav.Cursor())
	assert.Equal(t, 1, m.state.host.Len())
	assert.Equal(t, &entity.Payload{Index: 0, Stamp: 5}, m.state.host.Current())
	assert.Contains(t, m.View(), "stamp 5")
}

func TestSim_OpenAndUserBack(t *testing.T) {
	m := newTestSim(t, SimConfig{ExitOnRootBack: true})

	m = keys(t, m, "o", "o")
	assert.Equal(t, 2, m.state.nav.Cursor())
	assert.Equal(t, 2, m.state.host.Position())

	m = keys(t, m, "b")
	assert.Equal(t, []string{"layer2"}, m.state.backs)
	assert.Equal(t, 1, m.state.nav.Cursor())
	assert.False(t, m.state.layers[1].handle.IsActive())

	m = keys(t, m, "left", "b")
	assert.Equal(t, []string{"layer2", "layer1"}, m.state.backs)
	assert.True(t, m.state.host.Exited(), "back at root leaves the app")
	assert.Contains(t, m.View(), "EXITED")
}

func TestSim_CloseTop(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	m = keys(t, m, "o", "c")
	assert.Equal(t, 0, m.state.nav.Cursor())
	assert.Equal(t, "closed layer1", m.state.status)

	m = keys(t, m, "c")
	assert.Equal(t, "no active layer", m.state.status)
}

func TestSim_StepMode(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	m = keys(t, m, "a", "o")
	assert.False(t, m.state.auto)
	assert.Equal(t, 1, m.state.host.Len(), "push waits for the flush task")
	assert.Equal(t, 1, m.state.loop.Len())
	assert.Contains(t, m.View(), "queued tasks: 1")

	m = keys(t, m, "n")
	assert.Equal(t, 2, m.state.host.Len())
	assert.Equal(t, "ran one task, 0 left", m.state.status)

	m = keys(t, m, "enter")
	assert.Equal(t, "nothing queued", m.state.status)
}

func TestSim_MenuIsReplaced(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	m = keys(t, m, "m", "o")
	assert.Equal(t, 2, m.state.host.Len(), "layer2 overwrote the menu entry")
	assert.True(t, m.state.layers[0].handle.WasReplaced())
}

func TestSim_ReleaseTop(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	m = keys(t, m, "o", "x")
	assert.Empty(t, m.state.layers)
	assert.Equal(t, 0, m.state.nav.Cursor())

	m = keys(t, m, "x")
	assert.Equal(t, "no mounted layer", m.state.status)
}

func TestSim_Reload(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	m = keys(t, m, "a", "o", "R")
	assert.Equal(t, entity.SessionStamp(6), m.state.stamp)
	assert.Empty(t, m.state.layers)
	assert.Equal(t, "reloaded, 1 queued tasks dropped", m.state.status)

	m = keys(t, m, "a")
	assert.Equal(t, 1, m.state.host.Len())
	assert.Equal(t, &entity.Payload{Index: 0, Stamp: 6}, m.state.host.Current())
}

func TestSim_EmulatedContainer(t *testing.T) {
	m := newTestSim(t, SimConfig{EmulateContainer: true})

	m = keys(t, m, "p")
	assert.Equal(t, "container button is hidden", m.state.status)

	m = keys(t, m, "o")
	assert.True(t, m.state.button.visible)
	assert.Contains(t, m.View(), "container shown")

	m = keys(t, m, "p")
	assert.Equal(t, []string{"layer1"}, m.state.backs)
	assert.False(t, m.state.button.visible)
}

func TestSim_PressWithoutContainer(t *testing.T) {
	m := newTestSim(t, SimConfig{})
	m = keys(t, m, "p")
	assert.Equal(t, "no emulated container button", m.state.status)
}

func TestSim_PostedWorkRuns(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	ran := false
	next, cmd := m.Update(PostedMsg{fn: func() { ran = true }})
	assert.True(t, ran)
	assert.NotNil(t, cmd, "keeps listening for posted work")
	_ = next
}

func TestSim_PostReachesInbox(t *testing.T) {
	m := newTestSim(t, SimConfig{})

	m.Post(func() {})
	msg := m.waitForPost()()
	_, ok := msg.(PostedMsg)
	assert.True(t, ok)
}

func TestSim_RecordsTrace(t *testing.T) {
	rec := mocks.NewMockTraceRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.Anything).Return(nil)

	m := newTestSim(t, SimConfig{Recorder: rec})
	keys(t, m, "o")

	var kinds []entity.TraceKind
	for _, c := range rec.Calls {
		kinds = append(kinds, c.Arguments.Get(1).(entity.TraceEvent).Kind)
	}
	assert.Equal(t, []entity.TraceKind{entity.TraceReplace, entity.TracePush}, kinds)
}

func TestSim_Quit(t *testing.T) {
	m := newTestSim(t, SimConfig{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
