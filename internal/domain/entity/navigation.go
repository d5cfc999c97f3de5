// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

import "fmt"

// RootIndex is the index of the root record. The root is never closed.
const RootIndex = 0

// Payload is the data stamped into every host navigation entry.
type Payload struct {
	Index int          `json:"index"`
	Stamp SessionStamp `json:"stamp"`
}

func (p Payload) String() string {
	return fmt.Sprintf("{index:%d stamp:%d}", p.Index, p.Stamp)
}

// Record represents one opened UI layer in the virtual navigation stack.
type Record struct {
	Index int
	// Label names the layer in logs and traces.
	Label string
	// ShouldReplace makes the next opened layer overwrite this record's host entry
	// instead of pushing a new one (menus, overlays).
	ShouldReplace bool
	// Closed is set once the layer closed logically. Its host entry may still be
	// waiting to be unwound.
	Closed bool
	// Replaced is set when a later record took over this record's slot.
	Replaced bool

	OnBack     func()
	OnReplaced func()
}

// IsLive reports whether the record can still receive a back event.
func (r *Record) IsLive() bool {
	return r != nil && !r.Closed && !r.Replaced
}

// MarkReplaced flags the record as superseded and notifies the owner once.
func (r *Record) MarkReplaced() {
	if r == nil || r.Replaced {
		return
	}
	r.Replaced = true
	if r.OnReplaced != nil {
		r.OnReplaced()
	}
}

// Back invokes OnBack if set.
func (r *Record) Back() {
	if r != nil && r.OnBack != nil {
		r.OnBack()
	}
}

// OperationKind enumerates host-facing operations.
type OperationKind int

const (
	OpGo OperationKind = iota
	OpPush
	OpReplace
)

// String returns a human-readable representation of the operation kind.
func (k OperationKind) String() string {
	switch k {
	case OpGo:
		return "go"
	case OpPush:
		return "push"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Operation is a host navigation call queued but not yet applied.
type Operation struct {
	Kind    OperationKind
	Delta   int
	Payload Payload
}

// GoOperation creates a relative move operation.
func GoOperation(delta int) Operation {
	return Operation{Kind: OpGo, Delta: delta}
}

// PushOperation creates an append operation.
func PushOperation(p Payload) Operation {
	return Operation{Kind: OpPush, Payload: p}
}

// ReplaceOperation creates an overwrite operation.
func ReplaceOperation(p Payload) Operation {
	return Operation{Kind: OpReplace, Payload: p}
}

// IsState reports whether the operation writes a host entry.
func (o Operation) IsState() bool {
	return o.Kind == OpPush || o.Kind == OpReplace
}

func (o Operation) String() string {
	if o.Kind == OpGo {
		return fmt.Sprintf("go(%d)", o.Delta)
	}
	return fmt.Sprintf("%s(%d)", o.Kind, o.Payload.Index)
}
