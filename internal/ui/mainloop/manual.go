package mainloop

// Manual is a scheduler driven by hand. Tests and the scenario runner use it
// to decide exactly when a scheduling turn ends.
type Manual struct {
	queue []func()
}

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Post queues fn.
func (m *Manual) Post(fn func()) {
	if fn == nil {
		return
	}
	m.queue = append(m.queue, fn)
}

// ScheduleFlush implements port.FlushScheduler.
func (m *Manual) ScheduleFlush(fn func()) {
	m.Post(fn)
}

// Len returns the number of queued tasks.
func (m *Manual) Len() int {
	return len(m.queue)
}

// RunOnce runs the oldest queued task. It returns false when nothing was queued.
func (m *Manual) RunOnce() bool {
	if len(m.queue) == 0 {
		return false
	}
	fn := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	fn()
	return true
}

// RunPending runs tasks until the queue is empty, including tasks queued by
// the tasks themselves, and returns how many ran.
func (m *Manual) RunPending() int {
	n := 0
	for m.RunOnce() {
		n++
	}
	return n
}

// Discard drops every queued task, like a page reload dropping its event queue.
func (m *Manual) Discard() int {
	n := len(m.queue)
	m.queue = nil
	return n
}
