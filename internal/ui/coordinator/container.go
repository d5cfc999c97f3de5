package coordinator

import (
	"github.com/google/uuid"

	"github.com/bnema/navstack/internal/application/port"
)

type containerEntry struct {
	id string
	fn func()
}

// ContainerRegistry routes presses of an embedding container's back button to
// the most recently registered active layer. The button is shown while at
// least one layer is registered.
type ContainerRegistry struct {
	button  port.ContainerBackButton
	entries []containerEntry
	visible bool
}

// NewContainerRegistry subscribes to button presses. The button starts hidden.
func NewContainerRegistry(button port.ContainerBackButton) *ContainerRegistry {
	r := &ContainerRegistry{button: button}
	button.OnPressed(r.handlePressed)
	return r
}

// Register adds fn as the current press handler and returns its id.
func (r *ContainerRegistry) Register(fn func()) string {
	id := uuid.NewString()
	r.entries = append(r.entries, containerEntry{id: id, fn: fn})
	r.sync()
	return id
}

// Unregister removes the handler with the given id. Unknown ids are ignored.
func (r *ContainerRegistry) Unregister(id string) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.sync()
}

// Len returns the number of registered handlers.
func (r *ContainerRegistry) Len() int {
	return len(r.entries)
}

// Visible reports whether the button is currently shown.
func (r *ContainerRegistry) Visible() bool {
	return r.visible
}

func (r *ContainerRegistry) handlePressed() {
	if len(r.entries) == 0 {
		return
	}
	r.entries[len(r.entries)-1].fn()
}

func (r *ContainerRegistry) sync() {
	want := len(r.entries) > 0
	if want == r.visible {
		return
	}
	r.visible = want
	if want {
		r.button.Show()
	} else {
		r.button.Hide()
	}
}
