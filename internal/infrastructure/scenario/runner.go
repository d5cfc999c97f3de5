package scenario

import (
	"context"
	"fmt"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/infrastructure/history/memory"
	"github.com/bnema/navstack/internal/logging"
	"github.com/bnema/navstack/internal/ui/coordinator"
	"github.com/bnema/navstack/internal/ui/mainloop"
)

// DefaultStamp is the session stamp used when a scenario does not set one.
const DefaultStamp = 1

// Result is the observable outcome of a replay.
type Result struct {
	Scenario string
	Stamp    entity.SessionStamp
	Trace    []entity.TraceEvent
	// Backs lists the layers whose back callback ran, in order.
	Backs   []string
	Cursor  int
	Stack   []coordinator.RecordState
	Exited  bool
	Pending []entity.Operation
	// Container reports whether a container button was emulated, and
	// ContainerVisible whether it was shown at the end.
	Container        bool
	ContainerVisible bool
}

// Options configures a replay.
type Options struct {
	// Recorder, if set, receives every trace event as it happens.
	Recorder port.TraceRecorder
	// Observer, if set, is called after each executed step.
	Observer func(step Step, nav *coordinator.NavigationCoordinator)
}

// Run replays sc and returns its result. A step that cannot run, a failed
// expectation, a script error or a recorder error aborts the replay; the
// partial result is returned together with the error.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Result, error) {
	stamp := entity.SessionStamp(sc.Stamp)
	if stamp == 0 {
		stamp = DefaultStamp
	}
	ctx = logging.WithComponent(ctx, "scenario")

	r := &runner{
		ctx:      ctx,
		sc:       sc,
		opts:     opts,
		loop:     mainloop.NewManual(),
		stamp:    stamp,
		firstRun: stamp,
	}
	r.host = memory.New(r.loop.Post, memory.WithObserver(r.record))
	if sc.Container {
		r.button = &button{}
	}
	r.attach()

	var err error
	if sc.Script != "" {
		err = runScript(r, sc.Name, sc.Script)
	} else {
		for i, step := range sc.Steps {
			if err = r.apply(step); err != nil {
				err = fmt.Errorf("step %d (%s): %w", i+1, step, err)
				break
			}
		}
	}
	if err == nil {
		r.loop.RunPending()
	}
	if err == nil && r.recordErr != nil {
		err = fmt.Errorf("failed to record trace: %w", r.recordErr)
	}
	return r.result(), err
}

type runner struct {
	ctx  context.Context
	sc   *Scenario
	opts Options

	loop     *mainloop.Manual
	host     *memory.Host
	nav      *coordinator.NavigationCoordinator
	button   *button
	handles  map[string]*coordinator.BackHandle
	backs    []string
	stamp    entity.SessionStamp
	firstRun entity.SessionStamp

	recordErr error
}

// attach creates a coordinator for the current page incarnation.
func (r *runner) attach() {
	r.handles = make(map[string]*coordinator.BackHandle)
	opts := coordinator.Options{
		Stamp:          r.stamp,
		MountOrderOnly: r.sc.MountOrderOnly,
	}
	if r.button != nil {
		opts.Container = r.button
	}
	r.nav = coordinator.New(r.ctx, r.host, r.loop, opts)
}

func (r *runner) apply(step Step) error {
	if err := step.Validate(); err != nil {
		return err
	}

	switch step.Action {
	case ActionOpen:
		r.open(step)
	case ActionClose:
		h, ok := r.handles[step.Layer]
		if !ok {
			return fmt.Errorf("%w: layer %q was never opened", ErrInvalidStep, step.Layer)
		}
		h.SetActive(false)
	case ActionRelease:
		h, ok := r.handles[step.Layer]
		if !ok {
			return fmt.Errorf("%w: layer %q was never opened", ErrInvalidStep, step.Layer)
		}
		h.Release()
		delete(r.handles, step.Layer)
	case ActionBack:
		r.host.Back()
	case ActionForward:
		r.host.Forward()
	case ActionReload:
		r.loop.Discard()
		r.host.Reload()
		r.stamp++
		if r.button != nil {
			r.button.reset()
		}
		r.attach()
	case ActionPress:
		if r.button == nil {
			return fmt.Errorf("%w: press requires container = true", ErrInvalidStep)
		}
		r.button.press()
	case ActionFlush:
		r.loop.RunPending()
	case ActionExpect:
		if got := r.nav.Cursor(); got != *step.Cursor {
			return fmt.Errorf("%w: cursor is %d, want %d", ErrExpectation, got, *step.Cursor)
		}
	}

	if r.opts.Observer != nil {
		r.opts.Observer(step, r.nav)
	}
	return nil
}

func (r *runner) open(step Step) {
	if h, ok := r.handles[step.Layer]; ok {
		h.SetActive(true)
		return
	}

	label := step.Layer
	var h *coordinator.BackHandle
	h = r.nav.RegisterBackHandler(coordinator.BackHandlerOptions{
		Label:            label,
		ShouldBeReplaced: step.Replace,
		SkipContainer:    step.SkipContainer,
		OnBack: func() {
			r.backs = append(r.backs, label)
			h.SetActive(false)
		},
	})
	r.handles[label] = h
	h.SetActive(true)
}

func (r *runner) record(ev entity.TraceEvent) {
	if r.opts.Recorder == nil || r.recordErr != nil {
		return
	}
	r.recordErr = r.opts.Recorder.Record(r.ctx, ev)
}

func (r *runner) result() *Result {
	res := &Result{
		Scenario:  r.sc.Name,
		Stamp:     r.firstRun,
		Trace:     r.host.Trace(),
		Backs:     r.backs,
		Cursor:    r.nav.Cursor(),
		Stack:     r.nav.Snapshot(),
		Exited:    r.host.Exited(),
		Pending:   r.nav.Pending(),
		Container: r.button != nil,
	}
	if r.button != nil {
		res.ContainerVisible = r.button.visible
	}
	return res
}

// button emulates an embedding container's back button.
type button struct {
	visible bool
	pressed func()
}

func (b *button) Show() { b.visible = true }

func (b *button) Hide() { b.visible = false }

func (b *button) OnPressed(cb func()) { b.pressed = cb }

func (b *button) reset() { b.visible, b.pressed = false, nil }

func (b *button) press() {
	if b.pressed != nil {
		b.pressed()
	}
}
