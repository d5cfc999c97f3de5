// Package memory provides an in-process emulation of a platform history: one
// linear list of entries with a current position, asynchronous navigation
// notifications and a trace of every call. The simulator, scenario replay and
// tests use it in place of a browser.
package memory

import (
	"sync"
	"time"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/domain/entity"
)

var _ port.HistoryHost = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithClock overrides the time source used to stamp trace events.
func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		h.now = now
	}
}

// WithObserver registers fn to receive every trace event as it is recorded.
// fn runs with no lock held.
func WithObserver(fn func(entity.TraceEvent)) Option {
	return func(h *Host) {
		h.observers = append(h.observers, fn)
	}
}

// Host emulates a platform history. Navigation notifications are delivered
// through post, never synchronously from the call that caused them.
type Host struct {
	mu        sync.Mutex
	entries   []*entity.Payload
	pos       int
	callback  func(*entity.Payload)
	post      func(func())
	exited    bool
	seq       int64
	trace     []entity.TraceEvent
	observers []func(entity.TraceEvent)
	now       func() time.Time
}

// New creates a host showing a single entry without payload, like a freshly
// loaded page. post schedules notification delivery, typically Loop.Post.
func New(post func(func()), opts ...Option) *Host {
	if post == nil {
		panic("memory.New: post cannot be nil")
	}
	h := &Host{
		entries: []*entity.Payload{nil},
		post:    post,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PushEntry drops every entry after the current one and appends payload.
func (h *Host) PushEntry(payload entity.Payload) {
	h.mu.Lock()
	p := payload
	h.entries = append(h.entries[:h.pos+1], &p)
	h.pos++
	ev := h.recordLocked(entity.TraceEvent{Kind: entity.TracePush, Index: payload.Index, Stamp: payload.Stamp})
	h.mu.Unlock()
	h.notifyObservers(ev)
}

// ReplaceEntry overwrites the current entry.
func (h *Host) ReplaceEntry(payload entity.Payload) {
	h.mu.Lock()
	p := payload
	h.entries[h.pos] = &p
	ev := h.recordLocked(entity.TraceEvent{Kind: entity.TraceReplace, Index: payload.Index, Stamp: payload.Stamp})
	h.mu.Unlock()
	h.notifyObservers(ev)
}

// RequestBack moves the position by delta. Moving before the first entry
// leaves the application. Moving past the last entry is ignored, as browsers do.
func (h *Host) RequestBack(delta int) {
	h.move(delta, entity.TraceGo)
}

// OnHostNavigation registers the notification callback, replacing any earlier one.
func (h *Host) OnHostNavigation(callback func(*entity.Payload)) {
	h.mu.Lock()
	h.callback = callback
	h.mu.Unlock()
}

// Back emulates the user pressing the platform back affordance.
func (h *Host) Back() {
	h.move(-1, entity.TraceUserBack)
}

// Forward emulates the user pressing the platform forward affordance.
func (h *Host) Forward() {
	h.move(1, entity.TraceUserFwd)
}

// Reload emulates a page reload: the entries and position survive but the
// notification callback is dropped. A new coordinator has to be attached.
func (h *Host) Reload() {
	h.mu.Lock()
	h.callback = nil
	ev := h.recordLocked(entity.TraceEvent{Kind: entity.TraceReload, Index: h.pos})
	h.mu.Unlock()
	h.notifyObservers(ev)
}

func (h *Host) move(delta int, kind entity.TraceKind) {
	h.mu.Lock()
	if h.exited {
		h.mu.Unlock()
		return
	}

	events := []entity.TraceEvent{
		h.recordLocked(entity.TraceEvent{Kind: kind, Index: h.pos, Delta: delta}),
	}

	target := h.pos + delta
	switch {
	case delta == 0 || target >= len(h.entries):
		h.mu.Unlock()
		h.notifyObservers(events...)
		return
	case target < 0:
		h.exited = true
		events = append(events, h.recordLocked(entity.TraceEvent{Kind: entity.TraceExit}))
		h.mu.Unlock()
		h.notifyObservers(events...)
		return
	}

	h.pos = target
	var payload *entity.Payload
	if p := h.entries[target]; p != nil {
		cp := *p
		payload = &cp
	}
	h.mu.Unlock()
	h.notifyObservers(events...)

	h.post(func() { h.deliver(target, payload) })
}

func (h *Host) deliver(index int, payload *entity.Payload) {
	h.mu.Lock()
	// Notifications report what the application sees: the payload's index,
	// or the host position when the entry carries no payload.
	ev := entity.TraceEvent{Kind: entity.TraceNotify, Index: index, Note: "no-payload"}
	if payload != nil {
		ev.Index = payload.Index
		ev.Stamp = payload.Stamp
		ev.Note = ""
	}
	ev = h.recordLocked(ev)
	cb := h.callback
	h.mu.Unlock()
	h.notifyObservers(ev)

	if cb != nil {
		cb(payload)
	}
}

func (h *Host) recordLocked(ev entity.TraceEvent) entity.TraceEvent {
	h.seq++
	ev.Seq = h.seq
	ev.At = h.now()
	h.trace = append(h.trace, ev)
	return ev
}

func (h *Host) notifyObservers(events ...entity.TraceEvent) {
	for _, ev := range events {
		for _, fn := range h.observers {
			fn(ev)
		}
	}
}

// Position returns the index of the current entry.
func (h *Host) Position() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos
}

// Current returns a copy of the current entry's payload, or nil.
func (h *Host) Current() *entity.Payload {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p := h.entries[h.pos]; p != nil {
		cp := *p
		return &cp
	}
	return nil
}

// Entries returns copies of all entries, including those after the position.
func (h *Host) Entries() []*entity.Payload {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*entity.Payload, len(h.entries))
	for i, p := range h.entries {
		if p != nil {
			cp := *p
			out[i] = &cp
		}
	}
	return out
}

// Len returns the number of entries.
func (h *Host) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Exited reports whether a move went before the first entry.
func (h *Host) Exited() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exited
}

// Trace returns the events recorded so far.
func (h *Host) Trace() []entity.TraceEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]entity.TraceEvent(nil), h.trace...)
}

// Calls returns the trace restricted to calls made by the application
// (push, replace, go), in order.
func (h *Host) Calls() []entity.TraceEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []entity.TraceEvent
	for _, ev := range h.trace {
		switch ev.Kind {
		case entity.TracePush, entity.TraceReplace, entity.TraceGo:
			out = append(out, ev)
		}
	}
	return out
}
