package pubnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemTransport_FanOut(t *testing.T) {
	tr := NewMemTransport()

	var a, b [][]byte
	_, err := tr.Subscribe("topic", func(data []byte) { a = append(a, data) })
	require.NoError(t, err)
	_, err = tr.Subscribe("topic", func(data []byte) { b = append(b, data) })
	require.NoError(t, err)

	require.NoError(t, tr.Publish("topic", []byte("one")))
	require.NoError(t, tr.Publish("other", []byte("elsewhere")))

	assert.Equal(t, [][]byte{[]byte("one")}, a)
	assert.Equal(t, [][]byte{[]byte("one")}, b)
}

func TestMemTransport_HandlersGetOwnCopy(t *testing.T) {
	tr := NewMemTransport()

	var got []byte
	_, err := tr.Subscribe("topic", func(data []byte) {
		data[0] = 'X'
		got = data
	})
	require.NoError(t, err)

	payload := []byte("abc")
	require.NoError(t, tr.Publish("topic", payload))

	assert.Equal(t, []byte("abc"), payload)
	assert.Equal(t, []byte("Xbc"), got)
}

func TestMemTransport_Unsubscribe(t *testing.T) {
	tr := NewMemTransport()

	calls := 0
	sub, err := tr.Subscribe("topic", func([]byte) { calls++ })
	require.NoError(t, err)

	require.NoError(t, tr.Publish("topic", []byte("one")))
	require.NoError(t, sub.Unsubscribe())
	require.NoError(t, tr.Publish("topic", []byte("two")))

	assert.Equal(t, 1, calls)
}

func TestMemTransport_Close(t *testing.T) {
	tr := NewMemTransport()

	calls := 0
	_, err := tr.Subscribe("topic", func([]byte) { calls++ })
	require.NoError(t, err)

	require.NoError(t, tr.Close())

	assert.ErrorIs(t, tr.Publish("topic", []byte("late")), ErrTransportClosed)
	_, err = tr.Subscribe("topic", func([]byte) {})
	assert.ErrorIs(t, err, ErrTransportClosed)
	assert.Equal(t, 0, calls)
}
