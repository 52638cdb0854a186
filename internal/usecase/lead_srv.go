package usecase

import (
	"context"
	"fmt"
	"sort"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/dto/response"
	"picturetime-dashboard/pkg/cache"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

type LeadService interface {
	List(ctx context.Context, req request.ListRequest) (*response.PaginatedResponse[entity.Lead], error)
	Get(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, id string, patch map[string]any) (*entity.Lead, error)
	Delete(ctx context.Context, id string) error
}

type leadService struct {
	repo repository.LeadRepository
	feed ChangeFeed
	log  *zap.Logger
}

func NewLeadService(repo repository.LeadRepository, feed ChangeFeed, log *zap.Logger) LeadService {
	return &leadService{
		repo: repo,
		feed: feed,
		log:  log.With(zap.String("service", "lead")),
	}
}

// FilterLeads keeps leads whose name, email or category contain q, ignoring
// case, newest id first.
func FilterLeads(leads []*entity.Lead, q string) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		if q == "" ||
			utils.ContainsFold(lead.Name, q) ||
			utils.ContainsFold(lead.Email, q) ||
			utils.ContainsFold(lead.Category, q) {
			out = append(out, *lead)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *leadService) List(ctx context.Context, req request.ListRequest) (*response.PaginatedResponse[entity.Lead], error) {
	normalizePage(&req)

	leads, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list leads", zap.Error(err))
		return nil, fmt.Errorf("failed to get leads")
	}

	return paginate(FilterLeads(leads, req.Q), req), nil
}

func (s *leadService) Get(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get lead", zap.Error(err), zap.String("lead_id", id))
		return nil, fmt.Errorf("failed to get lead")
	}
	if lead == nil {
		return nil, fmt.Errorf("lead not found")
	}
	return lead, nil
}

func (s *leadService) Update(ctx context.Context, id string, patch map[string]any) (*entity.Lead, error) {
	clean, err := sanitizePatch(patch, "status", "category", "company", "email", "message", "name", "phone")
	if err != nil {
		return nil, err
	}

	lead, err := s.repo.Update(ctx, id, clean)
	if err != nil {
		s.log.Error("Failed to update lead", zap.Error(err), zap.String("lead_id", id))
		return nil, fmt.Errorf("failed to update lead")
	}
	if lead == nil {
		return nil, fmt.Errorf("lead not found")
	}

	notify(ctx, s.feed, s.log, entity.CollectionInquiries, cache.OpUpdate, id)
	s.log.Info("Lead updated", zap.String("lead_id", id))
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete lead", zap.Error(err), zap.String("lead_id", id))
		return fmt.Errorf("failed to delete lead")
	}
	if !deleted {
		return fmt.Errorf("lead not found")
	}

	notify(ctx, s.feed, s.log, entity.CollectionInquiries, cache.OpDelete, id)
	s.log.Info("Lead deleted", zap.String("lead_id", id))
	return nil
}
