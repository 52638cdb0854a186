package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChangeFeed_RelayDropsMalformed(t *testing.T) {
	feed := NewChangeFeed(nil, zap.NewNop())
	messages := make(chan *redis.Message, 2)
	out := make(chan Change, 2)

	messages <- &redis.Message{Channel: "dashboard:changes:news", Payload: "{not json"}
	messages <- &redis.Message{Channel: "dashboard:changes:news", Payload: `{"collection":"news","op":"delete","id":"n7"}`}
	close(messages)

	feed.relay(context.Background(), messages, out)

	var got []Change
	for change := range out {
		got = append(got, change)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "n7", got[0].ID)
	assert.Equal(t, OpDelete, got[0].Op)
}

func TestChangeFeed_RelayClosesOnCancel(t *testing.T) {
	feed := NewChangeFeed(nil, zap.NewNop())
	messages := make(chan *redis.Message)
	out := make(chan Change)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		feed.relay(ctx, messages, out)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop after cancel")
	}

	_, open := <-out
	assert.False(t, open)
}
