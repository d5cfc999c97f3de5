package coordinator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/logging"
)

// Options configures a NavigationCoordinator.
type Options struct {
	// Stamp identifies this process incarnation. Zero generates a random one.
	Stamp entity.SessionStamp
	// MountOrderOnly is for hosts that never report back navigation out of
	// band. The coordinator then leaves host history alone and layers rely on
	// their own mount/unmount ordering; the container button still works.
	MountOrderOnly bool
	// OnExit runs when back is pressed with nothing but the root open.
	// Defaults to asking the host to go back one step, leaving the app.
	OnExit func()
	// Container is the embedding container's own back button, if any.
	Container port.ContainerBackButton
}

// NavigationCoordinator keeps the virtual stack of open UI layers in sync with
// the host's linear back navigation.
//
// It is not safe for concurrent use: every call, including host notifications,
// must happen on the goroutine that runs the scheduler (see mainloop.Loop).
type NavigationCoordinator struct {
	host      port.HistoryHost
	batcher   *Batcher
	stack     *recordStack
	stamp     entity.SessionStamp
	opts      Options
	container *ContainerRegistry
	log       *zerolog.Logger
}

// New creates a coordinator bound to host and resets the host's current entry
// to the root record.
func New(ctx context.Context, host port.HistoryHost, scheduler port.FlushScheduler, opts Options) *NavigationCoordinator {
	if host == nil {
		panic("coordinator.New: host cannot be nil")
	}
	if scheduler == nil {
		panic("coordinator.New: scheduler cannot be nil")
	}

	stamp := opts.Stamp
	if stamp == 0 {
		stamp = entity.NewSessionStamp()
	}

	ctx = logging.WithComponent(ctx, "navigation")
	ctx = logging.WithStamp(ctx, int64(stamp))
	log := logging.FromContext(ctx)
	log.Debug().Bool("mount_order_only", opts.MountOrderOnly).Msg("creating navigation coordinator")

	c := &NavigationCoordinator{
		host:    host,
		batcher: newBatcher(host, scheduler, log),
		stack:   newRecordStack(),
		stamp:   stamp,
		opts:    opts,
		log:     log,
	}
	if opts.Container != nil {
		c.container = NewContainerRegistry(opts.Container)
	}

	if !opts.MountOrderOnly {
		host.OnHostNavigation(c.HandleHostNavigation)
	}
	c.Reset()
	return c
}

// Stamp returns the session stamp written into every host entry.
func (c *NavigationCoordinator) Stamp() entity.SessionStamp {
	return c.stamp
}

// Cursor returns the index of the topmost record.
func (c *NavigationCoordinator) Cursor() int {
	return c.stack.cursor()
}

// Container returns the container back-button registry, or nil.
func (c *NavigationCoordinator) Container() *ContainerRegistry {
	return c.container
}

// Pending returns the host operations not applied yet.
func (c *NavigationCoordinator) Pending() []entity.Operation {
	return c.batcher.Pending()
}

// RecordState is a read-only view of one stack record.
type RecordState struct {
	Index         int
	Label         string
	ShouldReplace bool
	Closed        bool
}

// Snapshot returns the stack from the root up.
func (c *NavigationCoordinator) Snapshot() []RecordState {
	out := make([]RecordState, 0, len(c.stack.records))
	for _, r := range c.stack.records {
		out = append(out, RecordState{
			Index:         r.Index,
			Label:         r.Label,
			ShouldReplace: r.ShouldReplace,
			Closed:        r.Closed,
		})
	}
	return out
}

// Reset clears the stack to the root record. Records dropped this way are
// marked closed without their OnBack being called. The session stamp is kept.
func (c *NavigationCoordinator) Reset() {
	c.stack.reset(c.exit)
	if c.opts.MountOrderOnly {
		return
	}
	c.batcher.Reset(c.payload(entity.RootIndex))
}

// Open pushes record onto the stack. When the current top record asked to be
// replaced by the next one, record takes over its slot and host entry.
func (c *NavigationCoordinator) Open(record *entity.Record) {
	if c.opts.MountOrderOnly || record == nil {
		return
	}
	if record.IsLive() && c.stack.contains(record) {
		return
	}

	replace := c.stack.top().ShouldReplace
	index := c.stack.cursor() + 1
	if replace {
		index = c.stack.cursor()
	}

	if record.Index != index {
		c.stack.detach(record)
	}
	record.Closed = false
	record.Replaced = false
	previous := c.stack.place(record, index)
	if previous != nil && previous != record && !previous.Closed {
		previous.MarkReplaced()
	}

	c.log.Debug().
		Str("layer", record.Label).
		Int("index", index).
		Bool("replace", replace).
		Msg("layer opened")

	if replace {
		c.batcher.Enqueue(entity.ReplaceOperation(c.payload(index)))
		return
	}
	c.batcher.Enqueue(entity.PushOperation(c.payload(index)))
}

// Close marks record closed. Closing the top record unwinds its host entry
// together with any closed records directly below it. Closing a record that
// was never opened, was replaced, or is already closed does nothing.
func (c *NavigationCoordinator) Close(record *entity.Record) {
	if c.opts.MountOrderOnly || !record.IsLive() || !c.stack.contains(record) {
		return
	}

	record.Closed = true
	c.log.Debug().Str("layer", record.Label).Int("index", record.Index).Msg("layer closed")

	// A replace-on-next record keeps its entry for the next layer to reuse.
	if record.Index == c.stack.cursor() && !record.ShouldReplace {
		c.cleanupClosed(1)
	}
}

// cleanupClosed unwinds alreadyClosed records at the top plus the contiguous
// closed records below them with a single go, and returns the count.
func (c *NavigationCoordinator) cleanupClosed(alreadyClosed int) int {
	count := alreadyClosed + c.stack.closedBelow(c.stack.cursor()-alreadyClosed)
	if count == 0 {
		return 0
	}
	c.stack.truncate(c.stack.cursor() - count)
	c.batcher.Enqueue(entity.GoOperation(-count))
	return count
}

func (c *NavigationCoordinator) exit() {
	c.log.Info().Msg("back pressed on root, leaving")
	if c.opts.OnExit != nil {
		c.opts.OnExit()
		return
	}
	if !c.opts.MountOrderOnly {
		c.host.RequestBack(-1)
	}
}

func (c *NavigationCoordinator) payload(index int) entity.Payload {
	return entity.Payload{Index: index, Stamp: c.stamp}
}
