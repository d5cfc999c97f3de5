package coordinator

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/navstack/internal/application/port/mocks"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/ui/mainloop"
)

func newTestBatcher(t *testing.T) (*Batcher, *mocks.MockHistoryHost, *mainloop.Manual) {
	t.Helper()
	host := mocks.NewMockHistoryHost(t)
	loop := mainloop.NewManual()
	log := zerolog.Nop()
	return newBatcher(host, loop, &log), host, loop
}

func push(i int) entity.Operation {
	return entity.PushOperation(entity.Payload{Index: i, Stamp: testStamp})
}

func TestBatcher_OneFlushPerTurn(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	host.EXPECT().PushEntry(entity.Payload{Index: 1, Stamp: testStamp}).Return().Once()
	host.EXPECT().PushEntry(entity.Payload{Index: 2, Stamp: testStamp}).Return().Once()

	b.Enqueue(push(1))
	b.Enqueue(push(2))

	assert.Equal(t, 1, loop.Len())
	loop.RunPending()
	assert.Equal(t, 2, b.Expected())
}

func TestBatcher_AdjacentGosMerge(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(3)
	host.EXPECT().RequestBack(-3).Return().Once()

	b.Enqueue(entity.GoOperation(-1))
	b.Enqueue(entity.GoOperation(-2))
	loop.RunPending()

	assert.True(t, b.AwaitingEcho())
	assert.Equal(t, 0, b.Expected())
}

func TestBatcher_OppositeGosCancelOut(t *testing.T) {
	b, _, loop := newTestBatcher(t)
	b.Discard(2)

	b.Enqueue(entity.GoOperation(-1))
	b.Enqueue(entity.GoOperation(1))
	loop.RunPending()

	assert.False(t, b.AwaitingEcho())
	assert.Empty(t, b.Pending())
}

func TestBatcher_GoCancelsUnflushedPushes(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(1)
	host.EXPECT().RequestBack(-1).Return().Once()

	b.Enqueue(push(2))
	b.Enqueue(push(3))
	b.Enqueue(entity.GoOperation(-3))

	assert.Equal(t, []entity.Operation{entity.GoOperation(-1)}, b.Pending())
	loop.RunPending()
	assert.Equal(t, 0, b.Expected())
}

func TestBatcher_GoCancelsReplaceOfUnflushedEntry(t *testing.T) {
	b, _, loop := newTestBatcher(t)

	b.Enqueue(push(1))
	b.Enqueue(entity.ReplaceOperation(entity.Payload{Index: 1, Stamp: testStamp}))
	b.Enqueue(entity.GoOperation(-1))

	assert.Empty(t, b.Pending())
	loop.RunPending()
}

func TestBatcher_ReplaceThenGoKeepsOrder(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(2)

	var calls []string
	host.EXPECT().ReplaceEntry(entity.Payload{Index: 2, Stamp: testStamp}).
		Run(func(entity.Payload) { calls = append(calls, "replace") }).Return().Once()
	host.EXPECT().RequestBack(-1).Run(func(int) { calls = append(calls, "go") }).Return().Once()

	b.Enqueue(entity.ReplaceOperation(entity.Payload{Index: 2, Stamp: testStamp}))
	b.Enqueue(entity.GoOperation(-1))
	loop.RunPending()

	assert.Equal(t, []string{"replace", "go"}, calls, "entry 2 is rewritten before the host leaves it")
	assert.True(t, b.AwaitingEcho())
	assert.Equal(t, 1, b.Expected())
}

func TestBatcher_StateAfterGoWaitsForEcho(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(2)

	var calls []string
	host.EXPECT().RequestBack(-2).Run(func(int) { calls = append(calls, "go") }).Return().Once()
	host.EXPECT().PushEntry(entity.Payload{Index: 1, Stamp: testStamp}).
		Run(func(entity.Payload) { calls = append(calls, "push") }).Return().Once()

	b.Enqueue(entity.GoOperation(-2))
	b.Enqueue(push(1))
	loop.RunPending()

	assert.Equal(t, []string{"go"}, calls)
	assert.Equal(t, []entity.Operation{push(1)}, b.Pending())

	b.ConsumeEcho()
	assert.Equal(t, []string{"go", "push"}, calls)
	assert.False(t, b.AwaitingEcho())
	assert.Equal(t, 1, b.Expected())
}

func TestBatcher_FlushWhileAwaitingEchoIsDeferred(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(1)
	host.EXPECT().RequestBack(-1).Return().Once()

	b.Enqueue(entity.GoOperation(-1))
	loop.RunPending()

	b.Enqueue(push(1))
	loop.RunPending()
	assert.Equal(t, []entity.Operation{push(1)}, b.Pending())

	host.EXPECT().PushEntry(entity.Payload{Index: 1, Stamp: testStamp}).Return().Once()
	b.ConsumeEcho()
	assert.Empty(t, b.Pending())
}

func TestBatcher_GoCancelsAgainstDeferred(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(1)
	host.EXPECT().RequestBack(-1).Return().Once()

	b.Enqueue(entity.GoOperation(-1))
	loop.RunPending()
	b.Enqueue(push(1))
	loop.RunPending()

	b.Enqueue(entity.GoOperation(-1))
	loop.RunPending()

	assert.Empty(t, b.Pending())
	b.ConsumeEcho()
}

func TestBatcher_DropEchoKeepsDeferred(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	b.Discard(1)
	host.EXPECT().RequestBack(-1).Return().Once()

	b.Enqueue(entity.GoOperation(-1))
	b.Enqueue(push(1))
	loop.RunPending()

	b.DropEcho()
	assert.False(t, b.AwaitingEcho())
	assert.Len(t, b.Pending(), 1)

	b.Discard(0)
	assert.Empty(t, b.Pending())
	assert.Equal(t, 0, b.Expected())
}

func TestBatcher_ResetWritesImmediately(t *testing.T) {
	b, host, loop := newTestBatcher(t)
	host.EXPECT().ReplaceEntry(entity.Payload{Index: 0, Stamp: testStamp}).Return().Once()

	b.Enqueue(push(1))
	b.Reset(entity.Payload{Index: 0, Stamp: testStamp})
	loop.RunPending()

	assert.Equal(t, 0, b.Expected())
	assert.Empty(t, b.Pending())
}
