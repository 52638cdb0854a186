package wire

import (
	"picturetime-dashboard/internal/adaptor"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated(repo, log)).Post("/api/logout", authHandler.Logout)
	r.With(authenticated(repo, log)).Get("/api/session", authHandler.Session)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/staff", func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Get("/", authHandler.ListStaff)    // GET /api/admin/staff
		r.Post("/", authHandler.CreateStaff) // POST /api/admin/staff
		r.Patch("/{id}", authHandler.SetStaffStatus)
	})
}
