package coordinator

import "github.com/bnema/navstack/internal/domain/entity"

// HandleHostNavigation reconciles the virtual stack with the entry the host
// now shows. It is registered with the host by New and must run on the
// scheduler goroutine.
//
// Backward moves close as many live layers as the host moved. Forward
// navigation is not supported: the host is sent back to the virtual cursor.
// A missing payload or a payload from another session is trashed state and
// resets everything.
func (c *NavigationCoordinator) HandleHostNavigation(payload *entity.Payload) {
	if c.opts.MountOrderOnly {
		return
	}

	if c.batcher.AwaitingEcho() {
		if c.stamp.Matches(payload) && payload.Index == c.batcher.Expected() {
			c.log.Trace().Int("index", payload.Index).Msg("host echoed our go")
			c.batcher.ConsumeEcho()
			return
		}
		// Something else moved the host; realignment below discards the
		// operations that were waiting for the echo.
		c.batcher.DropEcho()
	}

	if payload == nil {
		c.cleanupTrashedState("no payload")
		return
	}
	if !c.stamp.Matches(payload) {
		c.cleanupTrashedState("stale session")
		return
	}

	incoming := payload.Index
	expected := c.batcher.Expected()
	switch {
	case incoming == expected:
		c.log.Trace().Int("index", incoming).Msg("redundant host notification")
	case incoming > expected:
		c.rejectForward(incoming)
	case incoming >= c.stack.cursor():
		// The host only walked over entries we were about to unwind anyway.
		c.log.Debug().Int("incoming", incoming).Int("expected", expected).Msg("host caught up with pending unwind")
		c.realign(incoming, c.stack.cursor())
	default:
		// Count from the cursor: layers opened after the host moved are above
		// incoming too and must close with the rest.
		c.navigateBack(incoming, c.stack.cursor()-incoming)
	}
}

// navigateBack closes the top steps live layers. Closed records met on the way
// do not consume a step; their leftover host entries are unwound as well.
func (c *NavigationCoordinator) navigateBack(incoming, steps int) {
	var victims []*entity.Record
	next := c.stack.cursor()
	for ; next > entity.RootIndex && steps > 0; next-- {
		r := c.stack.at(next)
		if r.Closed {
			continue
		}
		victims = append(victims, r)
		steps--
	}
	target := next - c.stack.closedBelow(next)

	c.log.Debug().
		Int("incoming", incoming).
		Int("cursor", c.stack.cursor()).
		Int("target", target).
		Int("closing", len(victims)).
		Msg("host navigated back")

	// Victims are marked before any OnBack runs so that callbacks closing or
	// opening layers see the post-navigation stack.
	for _, r := range victims {
		r.Closed = true
	}
	c.stack.truncate(target)
	c.realign(incoming, target)

	for _, r := range victims {
		r.Back()
	}
	if steps > 0 {
		c.stack.root().Back()
	}
}

// rejectForward sends the host back to the virtual cursor.
func (c *NavigationCoordinator) rejectForward(incoming int) {
	c.log.Info().
		Int("incoming", incoming).
		Int("cursor", c.stack.cursor()).
		Msg("forward navigation is not supported, reverting")
	c.realign(incoming, c.stack.cursor())
}

// realign replaces every unapplied operation with the calls that bring the
// host from hostIndex to target.
func (c *NavigationCoordinator) realign(hostIndex, target int) {
	c.batcher.Discard(hostIndex)
	if target < hostIndex {
		c.batcher.Enqueue(entity.GoOperation(target - hostIndex))
		return
	}
	for i := hostIndex + 1; i <= target; i++ {
		c.batcher.Enqueue(entity.PushOperation(c.payload(i)))
	}
}

// cleanupTrashedState handles host state that does not belong to this stack:
// every live layer is sent back, top first, and the stack restarts at root.
func (c *NavigationCoordinator) cleanupTrashedState(reason string) {
	victims := c.stack.liveFromTop()
	c.log.Warn().
		Str("reason", reason).
		Int("cursor", c.stack.cursor()).
		Int("closing", len(victims)).
		Msg("trashed host state, resetting")

	for _, r := range victims {
		r.Closed = true
	}
	c.Reset()

	for _, r := range victims {
		r.Back()
	}
}
