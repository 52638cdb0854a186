package adaptor

import (
	"net"
	"net/http"
	"strings"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, err := h.service.Login(r.Context(), &req, sessionMeta(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Session handles GET /api/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	staffID, ok := utils.GetStaffIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.CurrentStaff(r.Context(), staffID)
	if err != nil {
		handleServiceError(w, h.log, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// CreateStaff handles POST /api/admin/staff
func (h *AuthHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStaffRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	staff, err := h.service.CreateStaff(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create staff")
		return
	}

	utils.ResponseCreated(w, "Staff account created", staff)
}

// ListStaff handles GET /api/admin/staff
func (h *AuthHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.service.ListStaff(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list staff")
		return
	}

	utils.ResponseSuccess(w, "success", staff)
}

// SetStaffStatus handles PATCH /api/admin/staff/{id}
func (h *AuthHandler) SetStaffStatus(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid staff ID", nil)
		return
	}

	var req request.UpdateStaffStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if self, _ := utils.GetStaffIDFromContext(r.Context()); self == staffID && !*req.IsActive {
		utils.ResponseBadRequest(w, "You cannot deactivate your own account", nil)
		return
	}

	staff, err := h.service.SetStaffActive(r.Context(), staffID, *req.IsActive)
	if err != nil {
		handleServiceError(w, h.log, err, "update staff status")
		return
	}

	utils.ResponseSuccess(w, "Staff status updated", staff)
}

func sessionMeta(r *http.Request) usecase.SessionMeta {
	ip := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	if ip == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		} else {
			ip = r.RemoteAddr
		}
	}
	return usecase.SessionMeta{UserAgent: r.UserAgent(), IPAddress: ip}
}
