package adaptor

import (
	"picturetime-dashboard/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Lead    *LeadHandler
	Theatre *TheatreHandler
	News    *NewsHandler
	Changes *ChangeHandler
	Seating *SeatingHandler
	Report  *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Lead:    NewLeadHandler(service.Lead, log),
		Theatre: NewTheatreHandler(service.Theatre, log),
		News:    NewNewsHandler(service.News, log),
		Changes: NewChangeHandler(service.Changes, log),
		Seating: NewSeatingHandler(service.Seating, log),
		Report:  NewReportHandler(service.Report, log),
	}
}
