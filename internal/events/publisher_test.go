package events

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher_EmptyURLIsNoop(t *testing.T) {
	p := NewPublisher("", "seats.updated", zap.NewNop())

	_, ok := p.(noopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.PublishSeatsUpdated(context.Background(), SeatsUpdated{ShowID: 1}))
	assert.NoError(t, p.Close())
}

func TestNewPublishing(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	msg, err := newPublishing(SeatsUpdated{
		ShowID:    42,
		Operation: "BLOCK",
		Seats:     []string{"A1", "A2"},
		Updated:   2,
		UpdatedAt: at,
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, at, msg.Timestamp)

	var decoded SeatsUpdated
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, []string{"A1", "A2"}, decoded.Seats)
	assert.Equal(t, 42, decoded.ShowID)
}

func TestNewPublishing_StampsTime(t *testing.T) {
	msg, err := newPublishing(SeatsUpdated{ShowID: 1})
	require.NoError(t, err)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestPublish_SilentBrokerBoundedByContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	// accept and hold connections without ever answering the handshake
	held := make(chan net.Conn, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				close(held)
				return
			}
			held <- conn
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		for conn := range held {
			_ = conn.Close()
		}
	})

	p := NewPublisher("amqp://guest:guest@"+ln.Addr().String()+"/", "seats.updated", zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = p.PublishSeatsUpdated(ctx, SeatsUpdated{ShowID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial broker")
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestDialTimeout(t *testing.T) {
	left, err := dialTimeout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultDialTimeout, left)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	left, err = dialTimeout(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, left, time.Second)
	cancel()

	_, err = dialTimeout(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
