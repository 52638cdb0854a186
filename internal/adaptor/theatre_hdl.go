package adaptor

import (
	"net/http"
	"strconv"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TheatreHandler struct {
	service usecase.TheatreService
	log     *zap.Logger
}

func NewTheatreHandler(service usecase.TheatreService, log *zap.Logger) *TheatreHandler {
	return &TheatreHandler{
		service: service,
		log:     log.With(zap.String("handler", "theatre")),
	}
}

// ListTheatres handles GET /api/theatres
func (h *TheatreHandler) ListTheatres(w http.ResponseWriter, r *http.Request) {
	theatres, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list theatres")
		return
	}

	utils.ResponseSuccess(w, "success", theatres)
}

// GetTheatre handles GET /api/theatres/{id}
func (h *TheatreHandler) GetTheatre(w http.ResponseWriter, r *http.Request) {
	theatre, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get theatre")
		return
	}

	utils.ResponseSuccess(w, "success", theatre)
}

// CreateTheatre handles POST /api/theatres
func (h *TheatreHandler) CreateTheatre(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheatreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theatre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create theatre")
		return
	}

	utils.ResponseCreated(w, "Theatre created", theatre)
}

// UpdateTheatre handles PATCH /api/theatres/{id}
func (h *TheatreHandler) UpdateTheatre(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}

	theatre, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		handleServiceError(w, h.log, err, "update theatre")
		return
	}

	utils.ResponseSuccess(w, "Theatre updated", theatre)
}

// DeleteTheatre handles DELETE /api/theatres/{id}
func (h *TheatreHandler) DeleteTheatre(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete theatre")
		return
	}

	utils.ResponseSuccess(w, "Theatre deleted", nil)
}

// AddMovie handles POST /api/theatres/{id}/movies
func (h *TheatreHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MoviePosterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	theatre, err := h.service.AddMovie(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add movie")
		return
	}

	utils.ResponseCreated(w, "Movie added", theatre)
}

// RemoveMovie handles DELETE /api/theatres/{id}/movies/{index}
func (h *TheatreHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid movie index", nil)
		return
	}

	theatre, err := h.service.RemoveMovie(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		handleServiceError(w, h.log, err, "remove movie")
		return
	}

	utils.ResponseSuccess(w, "Movie removed", theatre)
}
