package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/navstack/internal/infrastructure/history/memory"
	mock_coordinator "github.com/bnema/navstack/internal/ui/coordinator/mocks"
	"github.com/bnema/navstack/internal/ui/mainloop"
)

func TestBackHandle_CreatedInactiveDoesNothing(t *testing.T) {
	h := newHarness(t)
	handle := h.c.RegisterBackHandler(BackHandlerOptions{Label: "modal"})

	handle.SetActive(false)
	h.loop.RunPending()

	assert.False(t, handle.IsActive())
	assert.Equal(t, []string{"replace(0)"}, h.calls())
}

func TestBackHandle_ActivationTransitionsOnly(t *testing.T) {
	h := newHarness(t)
	handle := h.c.RegisterBackHandler(BackHandlerOptions{Label: "modal"})

	handle.SetActive(true)
	handle.SetActive(true)
	h.loop.RunPending()
	assert.Equal(t, 1, h.c.Cursor())

	handle.SetActive(false)
	handle.SetActive(false)
	h.loop.RunPending()

	assert.Equal(t, []string{"replace(0)", "push(1)", "go(-1)"}, h.calls())
	assert.Equal(t, 0, h.c.Cursor())
}

func TestBackHandle_ReactivationOpensFreshRecord(t *testing.T) {
	h := newHarness(t)
	backs := 0
	handle := h.c.RegisterBackHandler(BackHandlerOptions{Label: "modal", OnBack: func() { backs++ }})

	handle.SetActive(true)
	h.loop.RunPending()
	h.host.Back()
	h.loop.RunPending()
	require.Equal(t, 1, backs)

	handle.SetActive(false)
	handle.SetActive(true)
	h.loop.RunPending()
	assert.Equal(t, 1, h.c.Cursor())

	h.host.Back()
	h.loop.RunPending()
	assert.Equal(t, 2, backs)
}

func TestBackHandle_ReleaseClosesActiveLayer(t *testing.T) {
	h := newHarness(t)
	handle := h.c.RegisterBackHandler(BackHandlerOptions{Label: "modal", Active: true})
	h.loop.RunPending()

	handle.Release()
	handle.Release()
	handle.SetActive(true)
	h.loop.RunPending()

	assert.Equal(t, []string{"replace(0)", "push(1)", "go(-1)"}, h.calls())
	assert.False(t, handle.IsActive())
}

func TestBackHandle_ReplacedHandleDoesNotCloseSuccessor(t *testing.T) {
	h := newHarness(t)
	menu := h.c.RegisterBackHandler(BackHandlerOptions{Label: "menu", ShouldBeReplaced: true, Active: true})
	page := h.c.RegisterBackHandler(BackHandlerOptions{Label: "page", Active: true})
	h.loop.RunPending()

	assert.True(t, menu.WasReplaced())
	assert.False(t, page.WasReplaced())

	menu.SetActive(false)
	menu.Release()
	h.loop.RunPending()

	assert.Equal(t, []string{"replace(0)", "push(1)", "replace(1)"}, h.calls())
	assert.Equal(t, 1, h.c.Cursor())
	assert.Equal(t, "page", h.c.Snapshot()[1].Label)
}

func TestBackHandle_SetOnBackUsesLatestCallback(t *testing.T) {
	h := newHarness(t)
	var got []string
	handle := h.c.RegisterBackHandler(BackHandlerOptions{
		Label:  "modal",
		Active: true,
		OnBack: func() { got = append(got, "first") },
	})
	h.loop.RunPending()

	handle.SetOnBack(func() { got = append(got, "second") })
	h.host.Back()
	h.loop.RunPending()

	assert.Equal(t, []string{"second"}, got)
}

func newContainerHarness(t *testing.T, button *mock_coordinator.MockContainerBackButton) (*harness, *func()) {
	t.Helper()
	pressed := new(func())
	button.EXPECT().OnPressed(gomock.Any()).Do(func(cb func()) { *pressed = cb })

	h := &harness{loop: mainloop.NewManual()}
	h.host = memory.New(h.loop.Post)
	h.c = New(context.Background(), h.host, h.loop, Options{Stamp: testStamp, Container: button})
	require.NotNil(t, *pressed)
	return h, pressed
}

func TestContainer_PressRoutesToLatestLayer(t *testing.T) {
	ctrl := gomock.NewController(t)
	button := mock_coordinator.NewMockContainerBackButton(ctrl)
	h, pressed := newContainerHarness(t, button)

	gomock.InOrder(
		button.EXPECT().Show().Times(1),
		button.EXPECT().Hide().Times(1),
	)

	var got []string
	var first, second *BackHandle
	first = h.c.RegisterBackHandler(BackHandlerOptions{
		Label: "first", Active: true,
		OnBack: func() { got = append(got, "first"); first.SetActive(false) },
	})
	second = h.c.RegisterBackHandler(BackHandlerOptions{
		Label: "second", Active: true,
		OnBack: func() { got = append(got, "second"); second.SetActive(false) },
	})
	h.loop.RunPending()
	assert.Equal(t, 2, h.c.Container().Len())
	assert.True(t, h.c.Container().Visible())

	(*pressed)()
	h.loop.RunPending()
	(*pressed)()
	h.loop.RunPending()
	(*pressed)()

	assert.Equal(t, []string{"second", "first"}, got)
	assert.Equal(t, 0, h.c.Container().Len())
	assert.Equal(t, 0, h.c.Cursor())
	assert.Equal(t, 0, h.host.Position())
}

func TestContainer_SkipContainer(t *testing.T) {
	ctrl := gomock.NewController(t)
	button := mock_coordinator.NewMockContainerBackButton(ctrl)
	h, _ := newContainerHarness(t, button)

	handle := h.c.RegisterBackHandler(BackHandlerOptions{Label: "toast", SkipContainer: true, Active: true})
	h.loop.RunPending()

	assert.Equal(t, 0, h.c.Container().Len())
	handle.Release()
	assert.Equal(t, 0, h.c.Container().Len())
}

func TestContainer_WorksWithMountOrderOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	button := mock_coordinator.NewMockContainerBackButton(ctrl)

	var pressed func()
	button.EXPECT().OnPressed(gomock.Any()).Do(func(cb func()) { pressed = cb })
	button.EXPECT().Show()
	button.EXPECT().Hide()

	loop := mainloop.NewManual()
	c := New(context.Background(), memory.New(loop.Post), loop, Options{
		Stamp:          testStamp,
		MountOrderOnly: true,
		Container:      button,
	})

	backs := 0
	var handle *BackHandle
	handle = c.RegisterBackHandler(BackHandlerOptions{
		Label: "sheet", Active: true,
		OnBack: func() { backs++; handle.Release() },
	})

	pressed()
	assert.Equal(t, 1, backs)
	assert.Equal(t, 0, c.Container().Len())
	assert.Equal(t, 0, loop.Len())
}

func TestContainerRegistry_UnregisterUnknownID(t *testing.T) {
	ctrl := gomock.NewController(t)
	button := mock_coordinator.NewMockContainerBackButton(ctrl)
	button.EXPECT().OnPressed(gomock.Any())

	r := NewContainerRegistry(button)
	r.Unregister("missing")
	r.handlePressed()

	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Visible())
}

func TestContainerRegistry_IDsAreUnique(t *testing.T) {
	ctrl := gomock.NewController(t)
	button := mock_coordinator.NewMockContainerBackButton(ctrl)
	button.EXPECT().OnPressed(gomock.Any())
	button.EXPECT().Show()

	r := NewContainerRegistry(button)
	a := r.Register(func() {})
	b := r.Register(func() {})

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
