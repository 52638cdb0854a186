package adaptor

import (
	"net/http"

	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LeadHandler struct {
	service usecase.LeadService
	log     *zap.Logger
}

func NewLeadHandler(service usecase.LeadService, log *zap.Logger) *LeadHandler {
	return &LeadHandler{
		service: service,
		log:     log.With(zap.String("handler", "lead")),
	}
}

// ListLeads handles GET /api/inquiries?q=&page=&per_page=
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.service.List(r.Context(), listRequest(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list leads")
		return
	}

	utils.ResponseSuccess(w, "success", leads)
}

// GetLead handles GET /api/inquiries/{id}
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get lead")
		return
	}

	utils.ResponseSuccess(w, "success", lead)
}

// UpdateLead handles PATCH /api/inquiries/{id}
func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch(w, r)
	if !ok {
		return
	}

	lead, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		handleServiceError(w, h.log, err, "update lead")
		return
	}

	utils.ResponseSuccess(w, "Lead updated", lead)
}

// DeleteLead handles DELETE /api/inquiries/{id}
func (h *LeadHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete lead")
		return
	}

	utils.ResponseSuccess(w, "Lead deleted", nil)
}
