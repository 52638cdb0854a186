// internal/wire/wire.go
package wire

import (
	"net/http"

	"picturetime-dashboard/internal/adaptor"
	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/events"
	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/middleware"
	"picturetime-dashboard/pkg/monitoring"
	"picturetime-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the services it was built from.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Deps are the outbound clients the services run on.
type Deps struct {
	Booking   booking.API
	Feed      usecase.ChangeFeed
	Publisher events.Publisher
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, deps.Booking, deps.Feed, deps.Publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigin))
	r.Use(monitoring.Metrics())

	wireAuth(r, handler.Auth, repo, logger)
	wireContent(r, handler, repo, logger)
	wireSeating(r, handler.Seating, repo, logger)
	wireReport(r, handler.Report, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", monitoring.Handler())

	return r
}

// authenticated is the session check every staff route sits behind.
func authenticated(repo *repository.Repository, log *zap.Logger) func(http.Handler) http.Handler {
	return middleware.AuthSession(repo.Session, repo.Staff, log)
}
