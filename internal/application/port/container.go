package port

// ContainerBackButton is the dedicated back affordance of an embedding
// container (mini-app hosts, native shells) that forwards "back pressed"
// notifications instead of using the platform history.
type ContainerBackButton interface {
	Show()
	Hide()
	// OnPressed registers the callback invoked when the user presses the
	// container's back button. Only the latest callback is kept.
	OnPressed(callback func())
}
