package coordinator

import (
	"github.com/rs/zerolog"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/domain/entity"
)

// Batcher coalesces host navigation calls issued within one scheduling turn.
// Some hosts drop or reorder history calls made back to back, so everything
// enqueued during a turn is flushed once, adjacent go deltas are summed, and
// entry writes issued after a go wait for the host to report that go.
type Batcher struct {
	host      port.HistoryHost
	scheduler port.FlushScheduler
	log       *zerolog.Logger

	queue     []entity.Operation
	deferred  []entity.Operation
	scheduled bool

	// awaitingEcho counts go calls whose host notification has not arrived yet.
	awaitingEcho int
	// expected is the index the host shows once every applied call landed.
	expected int
}

func newBatcher(host port.HistoryHost, scheduler port.FlushScheduler, log *zerolog.Logger) *Batcher {
	return &Batcher{
		host:      host,
		scheduler: scheduler,
		log:       log,
	}
}

// Enqueue queues op and schedules a flush for the end of the turn.
func (b *Batcher) Enqueue(op entity.Operation) {
	if op.Kind == entity.OpGo {
		op.Delta = b.cancelUnflushed(op.Delta)
		if op.Delta == 0 {
			return
		}
		if n := len(b.queue); n > 0 && b.queue[n-1].Kind == entity.OpGo {
			b.queue[n-1].Delta += op.Delta
			if b.queue[n-1].Delta == 0 {
				b.queue = b.queue[:n-1]
			}
			return
		}
	}

	b.queue = append(b.queue, op)
	if !b.scheduled {
		b.scheduled = true
		b.scheduler.ScheduleFlush(b.flush)
	}
}

// cancelUnflushed lets a backward go consume entries that were written in
// this batch but never reached the host. It returns the delta still owed.
func (b *Batcher) cancelUnflushed(delta int) int {
	tail := &b.queue
	if len(b.queue) == 0 {
		tail = &b.deferred
	}
	ops := *tail

	for delta < 0 && len(ops) > 0 {
		last := ops[len(ops)-1]
		n := len(ops)
		switch {
		case last.Kind == entity.OpPush:
			ops = ops[:n-1]
			delta++
		case last.Kind == entity.OpReplace && n >= 2 && ops[n-2].IsState() &&
			ops[n-2].Payload.Index == last.Payload.Index:
			// rewrite of an entry written in this batch
			ops = ops[:n-1]
		default:
			*tail = ops
			return delta
		}
	}
	*tail = ops
	return delta
}

func (b *Batcher) flush() {
	b.scheduled = false
	ops := b.queue
	b.queue = nil
	if len(ops) == 0 {
		return
	}

	if b.awaitingEcho > 0 {
		b.log.Trace().Int("ops", len(ops)).Msg("host busy, deferring batch")
		b.deferred = append(b.deferred, ops...)
		return
	}
	b.apply(ops)
}

func (b *Batcher) apply(ops []entity.Operation) {
	for i, op := range ops {
		switch op.Kind {
		case entity.OpGo:
			if op.Delta == 0 {
				continue
			}
			b.log.Debug().Int("delta", op.Delta).Msg("host go")
			b.awaitingEcho++
			b.expected += op.Delta
			b.host.RequestBack(op.Delta)
			if rest := ops[i+1:]; len(rest) > 0 {
				b.deferred = append(b.deferred, rest...)
				return
			}
		case entity.OpPush:
			b.log.Debug().Int("index", op.Payload.Index).Msg("host push")
			b.expected = op.Payload.Index
			b.host.PushEntry(op.Payload)
		case entity.OpReplace:
			b.log.Debug().Int("index", op.Payload.Index).Msg("host replace")
			b.expected = op.Payload.Index
			b.host.ReplaceEntry(op.Payload)
		}
	}
}

// AwaitingEcho reports whether a go issued by the batcher is still in flight.
func (b *Batcher) AwaitingEcho() bool {
	return b.awaitingEcho > 0
}

// ConsumeEcho accounts for the host notification caused by our own go and
// applies the operations that were waiting for it.
func (b *Batcher) ConsumeEcho() {
	if b.awaitingEcho == 0 {
		return
	}
	b.awaitingEcho--
	if b.awaitingEcho == 0 && len(b.deferred) > 0 {
		ops := b.deferred
		b.deferred = nil
		b.apply(ops)
	}
}

// DropEcho forgets one in-flight go without applying deferred operations.
func (b *Batcher) DropEcho() {
	if b.awaitingEcho > 0 {
		b.awaitingEcho--
	}
}

// Expected returns the host index implied by the calls applied so far.
func (b *Batcher) Expected() int {
	return b.expected
}

// Pending returns queued and deferred operations, in application order.
func (b *Batcher) Pending() []entity.Operation {
	out := make([]entity.Operation, 0, len(b.deferred)+len(b.queue))
	out = append(out, b.deferred...)
	return append(out, b.queue...)
}

// Discard drops all unapplied operations and records where the host is now.
func (b *Batcher) Discard(hostIndex int) {
	b.queue = nil
	b.deferred = nil
	b.expected = hostIndex
}

// Reset discards unapplied operations and immediately overwrites the current
// host entry with payload.
func (b *Batcher) Reset(payload entity.Payload) {
	b.Discard(payload.Index)
	b.log.Debug().Int("index", payload.Index).Msg("host replace (reset)")
	b.host.ReplaceEntry(payload)
}
