package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var delivered []string
	dispatcher.Subscribe(EventEntityCreated, func(context.Context, Event) error {
		panic("boom")
	})
	dispatcher.Subscribe(EventEntityCreated, func(_ context.Context, event Event) error {
		delivered = append(delivered, event.EntityID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventEntityCreated, EntityID: "case-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"case-1"}, delivered, "a panicking handler must not starve the rest")
}

func TestPublishSwallowsHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	dispatcher.Subscribe(EventEntityUpdated, func(context.Context, Event) error {
		return errors.New("recorder unavailable")
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventEntityUpdated, EntityID: "case-2"})
	assert.NoError(t, err)
}

func TestPublishSkipsUnrelatedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	called := false
	dispatcher.Subscribe(EventEntityDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventEntityCreated}))
	assert.False(t, called)
}
