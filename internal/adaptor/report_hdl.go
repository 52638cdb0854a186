package adaptor

import (
	"mime"
	"net/http"
	"strconv"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/usecase"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// CashFlow handles GET /api/reports/cash-flow?cinemaId=&from=&to=
func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cinemaID, _ := strconv.Atoi(query.Get("cinemaId"))
	req := request.CashFlowReportRequest{
		CinemaID: cinemaID,
		From:     query.Get("from"),
		To:       query.Get("to"),
	}

	file, err := h.service.CashFlow(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "download cash flow report")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", attachment(file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		h.log.Warn("Failed to write report", zap.Error(err))
	}
}

// attachment builds an RFC 6266 Content-Disposition; non-ASCII names go out
// as filename*.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
