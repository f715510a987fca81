package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest/server/internal/models"
)

func testEvent(kind string) Event {
	return Event{
		Kind: kind,
		Application: models.ApplicationWithListing{
			Application:  models.Application{ID: "app-1", Status: models.ApplicationPending},
			ListingTitle: "Canal view apartment",
		},
	}
}

func TestPushAndDispatch(t *testing.T) {
	q := NewEventQueue(4, logrus.New())
	defer q.Close()

	var mu sync.Mutex
	var received []string
	q.Subscribe(func(e Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e.Kind)
		return nil
	})
	q.Start()

	require.NoError(t, q.Push(testEvent(EventApplicationCreated)))
	require.NoError(t, q.Push(testEvent(EventApplicationReviewed)))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{EventApplicationCreated, EventApplicationReviewed}, received)
	mu.Unlock()
}

func TestPush_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	q := NewEventQueue(1, logrus.New())
	defer q.Close()
	// no Start: nothing drains the channel

	require.NoError(t, q.Push(testEvent(EventApplicationCreated)))
	assert.ErrorIs(t, q.Push(testEvent(EventApplicationCreated)), ErrQueueFull)
	assert.Equal(t, 1, q.Len())
}

func TestPush_AfterClose(t *testing.T) {
	q := NewEventQueue(1, logrus.New())
	require.NoError(t, q.Close())
	assert.True(t, q.IsClosed())
	assert.ErrorIs(t, q.Push(testEvent(EventApplicationCreated)), ErrQueueClosed)
	assert.NoError(t, q.Close(), "double close is a no-op")
}

func TestDispatch_HandlerErrorDoesNotStopOthers(t *testing.T) {
	q := NewEventQueue(4, logrus.New())
	defer q.Close()

	var mu sync.Mutex
	calls := 0
	q.Subscribe(func(Event) error { return assert.AnError })
	q.Subscribe(func(Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil
	})
	q.Start()

	require.NoError(t, q.Push(testEvent(EventApplicationCreated)))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 10*time.Millisecond)
}
