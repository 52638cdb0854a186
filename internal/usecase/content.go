package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/dto/response"
	"picturetime-dashboard/pkg/cache"

	"go.uber.org/zap"
)

const (
	defaultPerPage = 50
	maxPerPage     = 100
)

// ChangeFeed carries document writes to live list views.
type ChangeFeed interface {
	Publish(ctx context.Context, change cache.Change) error
	Subscribe(ctx context.Context, collection string) (<-chan cache.Change, error)
}

// notify publishes a change; a failing feed only costs liveness.
func notify(ctx context.Context, feed ChangeFeed, log *zap.Logger, collection, op, id string) {
	if feed == nil {
		return
	}
	if err := feed.Publish(ctx, cache.Change{Collection: collection, Op: op, ID: id}); err != nil {
		log.Warn("Failed to publish change",
			zap.Error(err),
			zap.String("collection", collection),
			zap.String("id", id))
	}
}

// sanitizePatch keeps only allowed string fields and trims them.
func sanitizePatch(patch map[string]any, allowed ...string) (map[string]any, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("validation failed: no fields to update")
	}

	ok := make(map[string]bool, len(allowed))
	for _, field := range allowed {
		ok[field] = true
	}

	out := make(map[string]any, len(patch))
	var unknown []string
	for field, value := range patch {
		if !ok[field] {
			unknown = append(unknown, field)
			continue
		}
		s, isString := value.(string)
		if !isString {
			return nil, fmt.Errorf("validation failed: %s must be a string", field)
		}
		out[field] = strings.TrimSpace(s)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("validation failed: unknown fields %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func normalizePage(req *request.ListRequest) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = defaultPerPage
	}
	if req.PerPage > maxPerPage {
		req.PerPage = maxPerPage
	}
}

// paginate slices an already filtered and sorted list.
func paginate[T any](items []T, req request.ListRequest) *response.PaginatedResponse[T] {
	total := len(items)
	start := (req.Page - 1) * req.PerPage
	if start > total {
		start = total
	}
	end := start + req.PerPage
	if end > total {
		end = total
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return response.NewPaginatedResponse(page, req.Page, req.PerPage, int64(total))
}
