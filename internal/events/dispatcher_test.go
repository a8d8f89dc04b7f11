package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherInvokesSubscribersInOrder(t *testing.T) {
	dispatcher := NewMemoryDispatcher()

	var seen []string
	dispatcher.Subscribe(EventLoginRejected, func(_ context.Context, event Event) error {
		seen = append(seen, "first:"+event.Subject)
		return nil
	})
	dispatcher.Subscribe(EventLoginRejected, func(_ context.Context, event Event) error {
		seen = append(seen, "second:"+event.Subject)
		return nil
	})
	dispatcher.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventLoginRejected, Subject: "a@b.co"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first:a@b.co", "second:a@b.co"}, seen)
}

func TestDispatcherRunsAllHandlersDespiteFailures(t *testing.T) {
	dispatcher := NewMemoryDispatcher()

	failure := errors.New("audit sink down")
	ran := false
	dispatcher.Subscribe(EventAccessDenied, func(context.Context, Event) error { return failure })
	dispatcher.Subscribe(EventAccessDenied, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventAccessDenied})
	assert.ErrorIs(t, err, failure)
	assert.True(t, ran)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	dispatcher := NewMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTokenRejected}))
}
