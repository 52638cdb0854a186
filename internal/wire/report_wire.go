package wire

import (
	"picturetime-dashboard/internal/adaptor"
	"picturetime-dashboard/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated(repo, log)).Get("/api/reports/cash-flow", reportHandler.CashFlow)
}
