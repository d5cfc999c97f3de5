package coordinator

import "github.com/bnema/navstack/internal/domain/entity"

// BackHandlerOptions describes a UI layer that wants to react to back.
type BackHandlerOptions struct {
	// Label names the layer in logs and traces.
	Label string
	// OnBack is called when the user navigates back out of the layer. The
	// owner is expected to deactivate the handle in response.
	OnBack func()
	// ShouldBeReplaced makes the next opened layer take over this layer's
	// host entry instead of stacking on top of it (menus, pickers).
	ShouldBeReplaced bool
	// SkipContainer keeps the layer out of the container back button.
	SkipContainer bool
	// Active opens the layer immediately.
	Active bool
}

// BackHandle is a layer's registration with the coordinator.
type BackHandle struct {
	c    *NavigationCoordinator
	opts BackHandlerOptions

	onBack      func()
	record      *entity.Record
	active      bool
	replaced    bool
	released    bool
	containerID string
}

// RegisterBackHandler creates a handle for one layer. A handle created
// inactive is not on the stack until SetActive(true).
func (c *NavigationCoordinator) RegisterBackHandler(opts BackHandlerOptions) *BackHandle {
	h := &BackHandle{
		c:      c,
		opts:   opts,
		onBack: opts.OnBack,
	}
	if opts.Active {
		h.SetActive(true)
	}
	return h
}

// SetActive opens the layer on activation and closes it on deactivation.
// Calls that do not change the state are ignored.
func (h *BackHandle) SetActive(active bool) {
	if h.released || active == h.active {
		return
	}
	h.active = active

	if active {
		h.replaced = false
		h.record = &entity.Record{
			Label:         h.opts.Label,
			ShouldReplace: h.opts.ShouldBeReplaced,
			OnBack:        h.fireBack,
			OnReplaced:    h.markReplaced,
		}
		h.c.Open(h.record)
		h.registerContainer()
		return
	}

	h.unregisterContainer()
	if !h.replaced {
		h.c.Close(h.record)
	}
}

// Release is the unmount path: it closes the layer if still active and drops
// its container registration. The handle cannot be reactivated.
func (h *BackHandle) Release() {
	if h.released {
		return
	}
	h.SetActive(false)
	h.unregisterContainer()
	h.released = true
}

// SetOnBack swaps the back callback. The latest callback is always the one
// invoked, including for a layer that is already open.
func (h *BackHandle) SetOnBack(fn func()) {
	h.onBack = fn
}

// IsActive reports whether the layer is currently activated.
func (h *BackHandle) IsActive() bool {
	return h.active
}

// WasReplaced reports whether a later layer took over this layer's entry
// since its last activation.
func (h *BackHandle) WasReplaced() bool {
	return h.replaced
}

func (h *BackHandle) fireBack() {
	if h.onBack != nil {
		h.onBack()
	}
}

func (h *BackHandle) markReplaced() {
	h.replaced = true
}

func (h *BackHandle) registerContainer() {
	if h.opts.SkipContainer || h.c.container == nil || h.containerID != "" {
		return
	}
	h.containerID = h.c.container.Register(h.fireBack)
}

func (h *BackHandle) unregisterContainer() {
	if h.containerID == "" {
		return
	}
	h.c.container.Unregister(h.containerID)
	h.containerID = ""
}
