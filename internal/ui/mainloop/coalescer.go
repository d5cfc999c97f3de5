package mainloop

import "sync"

// Coalescer collapses bursts of keyed work into one task per key. Posting a
// key that is already queued replaces its function; the queued task runs
// whichever function was posted last.
type Coalescer struct {
	mu      sync.Mutex
	queued  map[string]func()
	post    func(func())
	stopped bool
}

// NewCoalescer creates a Coalescer that schedules through post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: nil post")
	}
	return &Coalescer{
		queued: make(map[string]func()),
		post:   post,
	}
}

// Post schedules fn under key unless a task for key is already waiting.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	_, waiting := c.queued[key]
	c.queued[key] = fn
	c.mu.Unlock()

	if !waiting {
		c.post(func() { c.run(key) })
	}
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.queued[key]
	delete(c.queued, key)
	stopped := c.stopped
	c.mu.Unlock()

	if ok && !stopped {
		fn()
	}
}

// Pending reports how many keys wait for their task.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queued)
}

// Destroy drops queued work. Tasks already handed to post become no-ops.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.stopped = true
	c.queued = make(map[string]func())
	c.mu.Unlock()
}
