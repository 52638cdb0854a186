package usecase

import (
	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/events"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Lead    LeadService
	Theatre TheatreService
	News    NewsService
	Changes ChangeService
	Seating SeatingService
	Report  ReportService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	api booking.API,
	feed ChangeFeed,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	seating := NewSeatingService(api, publisher, config.App.Location, log)

	return &Service{
		Auth:    NewAuthService(repo, config, seating, log),
		Lead:    NewLeadService(repo.Lead, feed, log),
		Theatre: NewTheatreService(repo.Theatre, feed, log),
		News:    NewNewsService(repo.News, feed, log),
		Changes: NewChangeService(feed),
		Seating: seating,
		Report:  NewReportService(api, log),
	}
}
