package usecase

import (
	"context"
	"fmt"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/pkg/cache"
)

type ChangeService interface {
	Subscribe(ctx context.Context, collection string) (<-chan cache.Change, error)
}

type changeService struct {
	feed ChangeFeed
}

func NewChangeService(feed ChangeFeed) ChangeService {
	return &changeService{feed: feed}
}

func (s *changeService) Subscribe(ctx context.Context, collection string) (<-chan cache.Change, error) {
	switch collection {
	case entity.CollectionInquiries, entity.CollectionTheatres, entity.CollectionNews:
	default:
		return nil, fmt.Errorf("collection %q not found", collection)
	}
	if s.feed == nil {
		return nil, fmt.Errorf("change feed unavailable")
	}
	return s.feed.Subscribe(ctx, collection)
}
