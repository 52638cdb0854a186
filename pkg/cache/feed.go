package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "dashboard:changes:"

// Change tells listeners that a document in a collection was written.
type Change struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

func Channel(collection string) string {
	return channelPrefix + collection
}

// ChangeFeed fans document changes out over Redis pub/sub, one channel per
// collection.
type ChangeFeed struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewChangeFeed(rdb redis.UniversalClient, log *zap.Logger) *ChangeFeed {
	return &ChangeFeed{
		rdb: rdb,
		log: log.With(zap.String("component", "change-feed")),
	}
}

func (f *ChangeFeed) Publish(ctx context.Context, change Change) error {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	if err := f.rdb.Publish(ctx, Channel(change.Collection), payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Subscribe delivers changes to collection until ctx is done. The returned
// channel is closed when the subscription ends.
func (f *ChangeFeed) Subscribe(ctx context.Context, collection string) (<-chan Change, error) {
	sub := f.rdb.Subscribe(ctx, Channel(collection))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}

	out := make(chan Change, 16)
	go func() {
		defer sub.Close()
		f.relay(ctx, sub.Channel(), out)
	}()
	return out, nil
}

// relay decodes pub/sub messages into out until ctx is done or messages
// closes, then closes out. Malformed payloads are dropped.
func (f *ChangeFeed) relay(ctx context.Context, messages <-chan *redis.Message, out chan<- Change) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				f.log.Warn("dropping malformed change", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}
