// Package wsbridge connects the coordinator to an embedding container's back
// button over a WebSocket. The container shell shows or hides its button on
// request and reports presses back.
package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/logging"
)

// ErrClosed is returned by Wait after Close, and when dialing a closed bridge.
var ErrClosed = errors.New("wsbridge: closed")

// Message types exchanged with the container shell.
const (
	TypeVisibility  = "visibility"
	TypeBackPressed = "back_pressed"
)

const outboxSize = 16

// Message is the JSON frame of the bridge protocol.
type Message struct {
	Type    string `json:"type"`
	Visible bool   `json:"visible,omitempty"`
}

// Bridge implements port.ContainerBackButton over a WebSocket connection.
// Show and Hide never block; presses are delivered through post so that the
// callback runs on the coordinator's goroutine.
type Bridge struct {
	conn *websocket.Conn
	post func(func())

	mu        sync.Mutex
	onPressed func()

	outbox  chan Message
	visible atomic.Bool
	closed  atomic.Bool

	closeOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	err       error
}

var _ port.ContainerBackButton = (*Bridge)(nil)

// Dial connects to a container shell at url. timeout bounds the handshake
// only; zero means no limit. The bridge runs until ctx is done or Close.
func Dial(ctx context.Context, url string, timeout time.Duration, post func(func())) (*Bridge, error) {
	dialCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, _, err := websocket.Dial(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial container %s: %w", url, err)
	}
	return New(ctx, conn, post), nil
}

// New wraps an established connection and starts its read and write loops.
// The loops stop when ctx is canceled, the peer disconnects, or Close is called.
func New(ctx context.Context, conn *websocket.Conn, post func(func())) *Bridge {
	if post == nil {
		panic("wsbridge.New: post cannot be nil")
	}
	ctx, cancel := context.WithCancel(ctx)
	b := &Bridge{
		conn:   conn,
		post:   post,
		outbox: make(chan Message, outboxSize),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.readLoop(gctx) })
	g.Go(func() error { return b.writeLoop(gctx) })

	go func() {
		err := g.Wait()
		b.closed.Store(true)
		b.err = b.classify(ctx, err)
		_ = b.conn.Close(websocket.StatusNormalClosure, "closed")
		logging.FromContext(ctx).Debug().Err(b.err).Msg("container bridge stopped")
		close(b.done)
	}()
	return b
}

// Show asks the container to show its back button.
func (b *Bridge) Show() {
	b.setVisible(true)
}

// Hide asks the container to hide its back button.
func (b *Bridge) Hide() {
	b.setVisible(false)
}

// OnPressed registers the press callback, replacing any earlier one.
func (b *Bridge) OnPressed(callback func()) {
	b.mu.Lock()
	b.onPressed = callback
	b.mu.Unlock()
}

// Visible reports the last requested visibility.
func (b *Bridge) Visible() bool {
	return b.visible.Load()
}

// Close stops the bridge and closes the connection.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		b.cancel()
	})
	<-b.done
	if errors.Is(b.err, ErrClosed) {
		return nil
	}
	return b.err
}

// Done is closed once both loops have stopped.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the bridge stops and returns why. A clean close by
// either side returns ErrClosed.
func (b *Bridge) Wait() error {
	<-b.done
	return b.err
}

func (b *Bridge) setVisible(visible bool) {
	b.visible.Store(visible)
	if b.closed.Load() {
		return
	}
	select {
	case b.outbox <- Message{Type: TypeVisibility, Visible: visible}:
	default:
		// Outbox full: drop the oldest frame and queue the latest state.
		select {
		case <-b.outbox:
		default:
		}
		select {
		case b.outbox <- Message{Type: TypeVisibility, Visible: b.visible.Load()}:
		default:
		}
	}
}

func (b *Bridge) readLoop(ctx context.Context) error {
	for {
		var msg Message
		if err := wsjson.Read(ctx, b.conn, &msg); err != nil {
			return err
		}
		if msg.Type != TypeBackPressed {
			logging.FromContext(ctx).Debug().Str("type", msg.Type).Msg("ignoring container message")
			continue
		}

		b.post(func() {
			b.mu.Lock()
			cb := b.onPressed
			b.mu.Unlock()
			if cb != nil {
				cb()
			}
		})
	}
}

func (b *Bridge) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-b.outbox:
			if err := wsjson.Write(ctx, b.conn, msg); err != nil {
				return err
			}
		}
	}
}

// classify maps loop errors to ErrClosed for clean shutdowns.
// StatusNormalClosure and StatusGoingAway are both clean closes, and so is
// a canceled context.
func (b *Bridge) classify(ctx context.Context, err error) error {
	status := websocket.CloseStatus(err)
	switch {
	case err == nil,
		status == websocket.StatusNormalClosure,
		status == websocket.StatusGoingAway,
		ctx.Err() != nil:
		return ErrClosed
	default:
		return err
	}
}
