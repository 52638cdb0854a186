package wire

import (
	"picturetime-dashboard/internal/adaptor"
	"picturetime-dashboard/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSeating(
	r chi.Router,
	seatingHandler *adaptor.SeatingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated(repo, log)).Get("/api/booking/cinemas", seatingHandler.Cinemas)

	r.Route("/api/seating", func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/", seatingHandler.Workspace)
		r.Post("/cinema", seatingHandler.SelectCinema)
		r.Post("/date", seatingHandler.SelectDate)
		r.Post("/show", seatingHandler.SelectShow)

		// pointer events on the grid
		r.Post("/seats/click", seatingHandler.Click)
		r.Post("/seats/press", seatingHandler.Press)
		r.Post("/seats/enter", seatingHandler.Enter)
		r.Post("/pointer/release", seatingHandler.Release)

		r.Put("/operation", seatingHandler.SetOperation)
		r.Delete("/selection", seatingHandler.ClearSelection)
		r.Post("/status/refresh", seatingHandler.RefreshStatus)
		r.Post("/submit", seatingHandler.Submit)
	})
}
