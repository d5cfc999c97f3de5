// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the navigation core to
// remain independent of the platform that owns the real history.
package port

import "github.com/bnema/navstack/internal/domain/entity"

// HistoryHost abstracts the platform's single linear back-navigation stack
// (browser history, hardware back button, embedding container).
//
// Implementations are best-effort: calls are not retried and failures are not
// reported. The coordinator re-aligns itself on the next notification.
type HistoryHost interface {
	// PushEntry appends a new entry carrying payload.
	PushEntry(payload entity.Payload)
	// ReplaceEntry overwrites the current entry.
	ReplaceEntry(payload entity.Payload)
	// RequestBack moves the host cursor by delta (negative: back, positive: forward).
	// Hosts deliver the resulting notification asynchronously.
	RequestBack(delta int)
	// OnHostNavigation registers the notification callback. The callback receives
	// the payload of the entry now current, or nil when the entry has none.
	OnHostNavigation(callback func(payload *entity.Payload))
}

// FlushScheduler defers work to the next scheduling turn.
type FlushScheduler interface {
	ScheduleFlush(fn func())
}

// FlushSchedulerFunc adapts a plain function to FlushScheduler.
type FlushSchedulerFunc func(fn func())

// ScheduleFlush calls f(fn).
func (f FlushSchedulerFunc) ScheduleFlush(fn func()) {
	f(fn)
}
