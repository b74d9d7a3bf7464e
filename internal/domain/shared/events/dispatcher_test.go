package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type testEvent struct {
	BaseEvent
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNopLogger())

	var mu sync.Mutex
	var got []uint
	require.NoError(t, d.Subscribe("ticket.created", HandlerFunc(func(_ context.Context, e DomainEvent) error {
		mu.Lock()
		got = append(got, e.GetAggregateID())
		mu.Unlock()
		return nil
	})))
	require.NoError(t, d.Start())

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, d.Publish(testEvent{NewBaseEvent("ticket.created", i)}))
	}
	require.NoError(t, d.Stop())

	assert.Equal(t, []uint{1, 2, 3}, got)
}

func TestDispatcher_HandlerErrorsAndPanicsDoNotStopOthers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNopLogger())

	calls := 0
	require.NoError(t, d.Subscribe("x", HandlerFunc(func(context.Context, DomainEvent) error { panic("boom") })))
	require.NoError(t, d.Subscribe("x", HandlerFunc(func(context.Context, DomainEvent) error { return errors.New("fail") })))
	require.NoError(t, d.Subscribe("x", HandlerFunc(func(context.Context, DomainEvent) error { calls++; return nil })))
	require.NoError(t, d.Start())

	require.NoError(t, d.Publish(testEvent{NewBaseEvent("x", 1)}))
	require.NoError(t, d.Stop())

	assert.Equal(t, 1, calls)
}

func TestDispatcher_PublishBeforeStart(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNopLogger())
	assert.Error(t, d.Publish(testEvent{NewBaseEvent("x", 1)}))
}

func TestDispatcher_SubscribeValidation(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNopLogger())
	assert.Error(t, d.Subscribe("", HandlerFunc(func(context.Context, DomainEvent) error { return nil })))
	assert.Error(t, d.Subscribe("x", nil))
}
