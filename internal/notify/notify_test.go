package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	var h Hub[string]
	assert.NotPanics(t, func() { h.Publish("saved") })
	assert.Equal(t, 0, h.Len())
}

func TestPublishOrder(t *testing.T) {
	var h Hub[int]
	var got []string

	h.Subscribe(func(n int) { got = append(got, "a") })
	h.Subscribe(func(n int) { got = append(got, "b") })

	h.Publish(1)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestUnsubscribe(t *testing.T) {
	var h Hub[int]
	calls := 0

	unsub := h.Subscribe(func(int) { calls++ })
	h.Publish(1)
	unsub()
	unsub() // second call is harmless
	h.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.Len())
}

func TestSubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	var h Hub[int]
	calls := 0

	var unsub func()
	unsub = h.Subscribe(func(int) {
		calls++
		unsub()
	})

	h.Publish(1)
	h.Publish(2)
	assert.Equal(t, 1, calls)
}

func TestNewMeta(t *testing.T) {
	a, b := NewMeta(), NewMeta()
	require.NotEmpty(t, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.False(t, a.At.IsZero())
}
