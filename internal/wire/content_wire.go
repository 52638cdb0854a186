package wire

import (
	"picturetime-dashboard/internal/adaptor"
	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireContent(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/inquiries", func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/", handler.Lead.ListLeads)
		r.Get("/changes", handler.Changes.Stream(entity.CollectionInquiries))
		r.Get("/{id}", handler.Lead.GetLead)
		r.Patch("/{id}", handler.Lead.UpdateLead)
		r.Delete("/{id}", handler.Lead.DeleteLead)
	})

	r.Route("/api/theatres", func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/", handler.Theatre.ListTheatres)
		r.Post("/", handler.Theatre.CreateTheatre)
		r.Get("/changes", handler.Changes.Stream(entity.CollectionTheatres))
		r.Get("/{id}", handler.Theatre.GetTheatre)
		r.Patch("/{id}", handler.Theatre.UpdateTheatre)
		r.Delete("/{id}", handler.Theatre.DeleteTheatre)
		r.Post("/{id}/movies", handler.Theatre.AddMovie)
		r.Delete("/{id}/movies/{index}", handler.Theatre.RemoveMovie)
	})

	r.Route("/api/news", func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/", handler.News.ListNews)
		r.Post("/", handler.News.CreateNews)
		r.Get("/changes", handler.Changes.Stream(entity.CollectionNews))
		r.Get("/{id}", handler.News.GetNews)
		r.Patch("/{id}", handler.News.UpdateNews)
		r.Delete("/{id}", handler.News.DeleteNews)
	})
}
