package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/dto/response"
	"picturetime-dashboard/pkg/cache"
	"picturetime-dashboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NewsService interface {
	List(ctx context.Context, req request.ListRequest) (*response.PaginatedResponse[response.NewsResponse], error)
	Get(ctx context.Context, id string) (*response.NewsResponse, error)
	Create(ctx context.Context, req *request.CreateNewsRequest) (*response.NewsResponse, error)
	Update(ctx context.Context, id string, patch map[string]any) (*response.NewsResponse, error)
	Delete(ctx context.Context, id string) error
}

type newsService struct {
	repo repository.NewsRepository
	feed ChangeFeed
	log  *zap.Logger
}

func NewNewsService(repo repository.NewsRepository, feed ChangeFeed, log *zap.Logger) NewsService {
	return &newsService{
		repo: repo,
		feed: feed,
		log:  log.With(zap.String("service", "news")),
	}
}

var newsDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "January 2, 2006", "Jan 2, 2006"}

// newsDate parses the loosely formatted date field. Unparseable dates are
// the zero time and sort last.
func newsDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range newsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FilterNews keeps articles whose title or source contain q, ignoring case,
// newest date first.
func FilterNews(items []*entity.News, q string) []response.NewsResponse {
	out := make([]response.NewsResponse, 0, len(items))
	for _, item := range items {
		if q == "" || utils.ContainsFold(item.Title, q) || utils.ContainsFold(item.Source, q) {
			out = append(out, response.NewsToResponse(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return newsDate(out[i].Date).After(newsDate(out[j].Date))
	})
	return out
}

func (s *newsService) List(ctx context.Context, req request.ListRequest) (*response.PaginatedResponse[response.NewsResponse], error) {
	normalizePage(&req)

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list news", zap.Error(err))
		return nil, fmt.Errorf("failed to get news")
	}

	return paginate(FilterNews(items, req.Q), req), nil
}

func (s *newsService) Get(ctx context.Context, id string) (*response.NewsResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get news", zap.Error(err), zap.String("news_id", id))
		return nil, fmt.Errorf("failed to get news")
	}
	if item == nil {
		return nil, fmt.Errorf("news not found")
	}
	resp := response.NewsToResponse(item)
	return &resp, nil
}

func (s *newsService) Create(ctx context.Context, req *request.CreateNewsRequest) (*response.NewsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	item := &entity.News{
		Title:    strings.TrimSpace(req.Title),
		Source:   strings.TrimSpace(req.Source),
		Date:     strings.TrimSpace(req.Date),
		Amount:   strings.TrimSpace(req.Amount),
		Status:   strings.TrimSpace(req.Status),
		ImageURL: strings.TrimSpace(req.ImageURL),
	}

	id := uuid.NewString()
	if err := s.repo.Create(ctx, id, item); err != nil {
		s.log.Error("Failed to create news", zap.Error(err))
		return nil, fmt.Errorf("failed to create news")
	}

	notify(ctx, s.feed, s.log, entity.CollectionNews, cache.OpCreate, id)
	s.log.Info("News created", zap.String("news_id", id))

	resp := response.NewsToResponse(item)
	return &resp, nil
}

func (s *newsService) Update(ctx context.Context, id string, patch map[string]any) (*response.NewsResponse, error) {
	clean, err := sanitizePatch(patch, "title", "source", "date", "amount", "status", "imageUrl")
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, clean)
	if err != nil {
		s.log.Error("Failed to update news", zap.Error(err), zap.String("news_id", id))
		return nil, fmt.Errorf("failed to update news")
	}
	if item == nil {
		return nil, fmt.Errorf("news not found")
	}

	notify(ctx, s.feed, s.log, entity.CollectionNews, cache.OpUpdate, id)

	resp := response.NewsToResponse(item)
	return &resp, nil
}

func (s *newsService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete news", zap.Error(err), zap.String("news_id", id))
		return fmt.Errorf("failed to delete news")
	}
	if !deleted {
		return fmt.Errorf("news not found")
	}

	notify(ctx, s.feed, s.log, entity.CollectionNews, cache.OpDelete, id)
	return nil
}
