package booking

import (
	"context"
	"strconv"
	"time"

	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/pkg/monitoring"

	"go.uber.org/zap"
)

// API is everything the dashboard asks of the booking backend.
type API interface {
	seating.Backend
	Cinemas(ctx context.Context) ([]seating.Cinema, error)
	CashFlowReport(ctx context.Context, cinemaID int, from, to string) (*Report, error)
}

// Cache stores JSON values by key.
type Cache interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

const (
	cinemaListKey   = "booking:cinemas"
	layoutKeyPrefix = "booking:layout:"
)

// Cached fronts an API with a cache for the two slow-changing reads: the
// cinema list and seat layouts. Shows, seat status and updates always go to
// the backend. A failing cache is logged and bypassed.
type Cached struct {
	API
	cache     Cache
	cinemaTTL time.Duration
	layoutTTL time.Duration
	log       *zap.Logger
}

func NewCached(api API, cache Cache, cinemaTTL, layoutTTL time.Duration, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{
		API:       api,
		cache:     cache,
		cinemaTTL: cinemaTTL,
		layoutTTL: layoutTTL,
		log:       log.With(zap.String("client", "booking-cache")),
	}
}

func (c *Cached) Cinemas(ctx context.Context) ([]seating.Cinema, error) {
	var cinemas []seating.Cinema
	if c.lookup(ctx, "cinemas", cinemaListKey, &cinemas) {
		return cinemas, nil
	}

	cinemas, err := c.API.Cinemas(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, cinemaListKey, cinemas, c.cinemaTTL)
	return cinemas, nil
}

func (c *Cached) Layout(ctx context.Context, digiplexID int) ([]seating.SeatRow, error) {
	key := layoutKeyPrefix + strconv.Itoa(digiplexID)

	var rows []seating.SeatRow
	if c.lookup(ctx, "layout", key, &rows) {
		return rows, nil
	}

	rows, err := c.API.Layout(ctx, digiplexID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, rows, c.layoutTTL)
	return rows, nil
}

func (c *Cached) lookup(ctx context.Context, name, key string, out any) bool {
	hit, err := c.cache.Get(ctx, key, out)
	if err != nil {
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		hit = false
	}
	monitoring.TrackCache(name, hit)
	return hit
}

func (c *Cached) store(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, value, ttl); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
