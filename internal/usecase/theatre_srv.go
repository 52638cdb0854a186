package usecase

import (
	"context"
	"fmt"
	"strings"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/pkg/cache"
	"picturetime-dashboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TheatreService interface {
	List(ctx context.Context) ([]*entity.Theatre, error)
	Get(ctx context.Context, id string) (*entity.Theatre, error)
	Create(ctx context.Context, req *request.CreateTheatreRequest) (*entity.Theatre, error)
	Update(ctx context.Context, id string, patch map[string]any) (*entity.Theatre, error)
	Delete(ctx context.Context, id string) error
	AddMovie(ctx context.Context, id string, req *request.MoviePosterRequest) (*entity.Theatre, error)
	RemoveMovie(ctx context.Context, id string, index int) (*entity.Theatre, error)
}

type theatreService struct {
	repo repository.TheatreRepository
	feed ChangeFeed
	log  *zap.Logger
}

func NewTheatreService(repo repository.TheatreRepository, feed ChangeFeed, log *zap.Logger) TheatreService {
	return &theatreService{
		repo: repo,
		feed: feed,
		log:  log.With(zap.String("service", "theatre")),
	}
}

func (s *theatreService) List(ctx context.Context) ([]*entity.Theatre, error) {
	theatres, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list theatres", zap.Error(err))
		return nil, fmt.Errorf("failed to get theatres")
	}
	for _, t := range theatres {
		if t.Movies == nil {
			t.Movies = []entity.MoviePoster{}
		}
	}
	return theatres, nil
}

func (s *theatreService) Get(ctx context.Context, id string) (*entity.Theatre, error) {
	theatre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get theatre", zap.Error(err), zap.String("theatre_id", id))
		return nil, fmt.Errorf("failed to get theatre")
	}
	if theatre == nil {
		return nil, fmt.Errorf("theatre not found")
	}
	if theatre.Movies == nil {
		theatre.Movies = []entity.MoviePoster{}
	}
	return theatre, nil
}

func (s *theatreService) Create(ctx context.Context, req *request.CreateTheatreRequest) (*entity.Theatre, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theatre := &entity.Theatre{
		Image:    strings.TrimSpace(req.Image),
		Address:  strings.TrimSpace(req.Address),
		Location: strings.TrimSpace(req.Location),
		MapURL:   strings.TrimSpace(req.MapURL),
		Movies:   make([]entity.MoviePoster, 0, len(req.Movies)),
	}
	for _, m := range req.Movies {
		theatre.Movies = append(theatre.Movies, entity.MoviePoster{
			Name: strings.TrimSpace(m.Name),
			Link: strings.TrimSpace(m.Link),
		})
	}

	id := uuid.NewString()
	if err := s.repo.Create(ctx, id, theatre); err != nil {
		s.log.Error("Failed to create theatre", zap.Error(err))
		return nil, fmt.Errorf("failed to create theatre")
	}

	notify(ctx, s.feed, s.log, entity.CollectionTheatres, cache.OpCreate, id)
	s.log.Info("Theatre created", zap.String("theatre_id", id), zap.String("location", theatre.Location))
	return theatre, nil
}

func (s *theatreService) Update(ctx context.Context, id string, patch map[string]any) (*entity.Theatre, error) {
	clean, err := sanitizePatch(patch, "image", "address", "location", "map_url")
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, clean)
}

func (s *theatreService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete theatre", zap.Error(err), zap.String("theatre_id", id))
		return fmt.Errorf("failed to delete theatre")
	}
	if !deleted {
		return fmt.Errorf("theatre not found")
	}

	notify(ctx, s.feed, s.log, entity.CollectionTheatres, cache.OpDelete, id)
	return nil
}

// AddMovie appends a poster to the theatre's movie list.
func (s *theatreService) AddMovie(ctx context.Context, id string, req *request.MoviePosterRequest) (*entity.Theatre, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theatre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	movies := append(theatre.Movies, entity.MoviePoster{
		Name: strings.TrimSpace(req.Name),
		Link: strings.TrimSpace(req.Link),
	})
	return s.apply(ctx, id, map[string]any{"movies": movies})
}

// RemoveMovie drops the poster at index (0-based).
func (s *theatreService) RemoveMovie(ctx context.Context, id string, index int) (*entity.Theatre, error) {
	theatre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(theatre.Movies) {
		return nil, fmt.Errorf("movie not found at index %d", index)
	}

	movies := make([]entity.MoviePoster, 0, len(theatre.Movies)-1)
	movies = append(movies, theatre.Movies[:index]...)
	movies = append(movies, theatre.Movies[index+1:]...)
	return s.apply(ctx, id, map[string]any{"movies": movies})
}

func (s *theatreService) apply(ctx context.Context, id string, patch map[string]any) (*entity.Theatre, error) {
	theatre, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.log.Error("Failed to update theatre", zap.Error(err), zap.String("theatre_id", id))
		return nil, fmt.Errorf("failed to update theatre")
	}
	if theatre == nil {
		return nil, fmt.Errorf("theatre not found")
	}
	if theatre.Movies == nil {
		theatre.Movies = []entity.MoviePoster{}
	}

	notify(ctx, s.feed, s.log, entity.CollectionTheatres, cache.OpUpdate, id)
	return theatre, nil
}
