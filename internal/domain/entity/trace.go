package entity

import "time"

// TraceKind classifies a trace event.
type TraceKind string

const (
	TracePush     TraceKind = "push"
	TraceReplace  TraceKind = "replace"
	TraceGo       TraceKind = "go"
	TraceNotify   TraceKind = "notify"
	TraceUserBack TraceKind = "user_back"
	TraceUserFwd  TraceKind = "user_forward"
	TraceReload   TraceKind = "reload"
	TraceExit     TraceKind = "exit"
)

// TraceEvent is one observable host-facing event, used for diagnostics and replay.
type TraceEvent struct {
	Seq   int64
	Kind  TraceKind
	Index int
	Delta int
	Stamp SessionStamp
	// Note carries free-form detail such as "no-payload".
	Note string
	At   time.Time
}
