package adaptor

import (
	"net/http"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NewsHandler struct {
	service usecase.NewsService
	log     *zap.Logger
}

func NewNewsHandler(service usecase.NewsService, log *zap.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		log:     log.With(zap.String("handler", "news")),
	}
}

// ListNews handles GET /api/news?q=&page=&per_page=
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.service.List(r.Context(), listRequest(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list news")
		return
	}

	utils.ResponseSuccess(w, "success", news)
}

// GetNews handles GET /api/news/{id}
func (h *NewsHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get news")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// CreateNews handles POST /api/news
func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req request.CreateNewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create news")
		return
	}

	utils.ResponseCreated(w, "News created", item)
}

// UpdateNews handles PATCH /api/news/{id}
func (h *NewsHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		handleServiceError(w, h.log, err, "update news")
		return
	}

	utils.ResponseSuccess(w, "News updated", item)
}

// DeleteNews handles DELETE /api/news/{id}
func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete news")
		return
	}

	utils.ResponseSuccess(w, "News deleted", nil)
}
