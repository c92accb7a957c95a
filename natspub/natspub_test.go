package natspub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := NewEmbedded(ctx, t.TempDir())
	require.NoError(t, err)
	defer conn.Close()

	require.NotNil(t, conn.NATS())

	received := make(chan []byte, 1)
	sub, err := conn.Subscribe("demo.chat", func(data []byte) {
		received <- data
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, conn.Publish("demo.chat", []byte("hello")))

	select {
	case data := <-received:
		assert.Equal(t, []byte("hello"), data)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
