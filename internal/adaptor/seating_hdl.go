package adaptor

import (
	"net/http"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

// SeatingHandler serves the block/unblock tool. Every call works on the
// caller's session workspace.
type SeatingHandler struct {
	service usecase.SeatingService
	log     *zap.Logger
}

func NewSeatingHandler(service usecase.SeatingService, log *zap.Logger) *SeatingHandler {
	return &SeatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "seating")),
	}
}

// Cinemas handles GET /api/booking/cinemas
func (h *SeatingHandler) Cinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := h.service.Cinemas(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list cinemas")
		return
	}

	utils.ResponseSuccess(w, "success", cinemas)
}

// Workspace handles GET /api/seating
func (h *SeatingHandler) Workspace(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	utils.ResponseSuccess(w, "success", h.service.Workspace(token))
}

// SelectCinema handles POST /api/seating/cinema
func (h *SeatingHandler) SelectCinema(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var req request.SelectCinemaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ws, err := h.service.SelectCinema(r.Context(), token, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select cinema")
		return
	}

	utils.ResponseSuccess(w, "success", ws)
}

// SelectDate handles POST /api/seating/date
func (h *SeatingHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var req request.SelectDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ws, err := h.service.SelectDate(token, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select date")
		return
	}

	utils.ResponseSuccess(w, "success", ws)
}

// SelectShow handles POST /api/seating/show
func (h *SeatingHandler) SelectShow(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var req request.SelectShowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ws, err := h.service.SelectShow(r.Context(), token, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "select show")
		return
	}

	utils.ResponseSuccess(w, "success", ws)
}

// Click handles POST /api/seating/seats/click
func (h *SeatingHandler) Click(w http.ResponseWriter, r *http.Request) {
	h.seatEvent(w, r, "click seat", h.service.Click)
}

// Press handles POST /api/seating/seats/press
func (h *SeatingHandler) Press(w http.ResponseWriter, r *http.Request) {
	h.seatEvent(w, r, "press seat", h.service.Press)
}

// Enter handles POST /api/seating/seats/enter
func (h *SeatingHandler) Enter(w http.ResponseWriter, r *http.Request) {
	h.seatEvent(w, r, "enter seat", h.service.Enter)
}

// Release handles POST /api/seating/pointer/release. It is valid with or
// without an open board.
func (h *SeatingHandler) Release(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	h.service.Release(token)
	utils.ResponseSuccess(w, "success", h.service.Workspace(token).Board)
}

// SetOperation handles PUT /api/seating/operation
func (h *SeatingHandler) SetOperation(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var req request.OperationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.SetOperation(token, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set operation")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// ClearSelection handles DELETE /api/seating/selection
func (h *SeatingHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	view, err := h.service.ClearSelection(token)
	if err != nil {
		handleServiceError(w, h.log, err, "clear selection")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// RefreshStatus handles POST /api/seating/status/refresh
func (h *SeatingHandler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	view, err := h.service.RefreshStatus(r.Context(), token)
	if err != nil {
		handleServiceError(w, h.log, err, "refresh seat status")
		return
	}

	utils.ResponseSuccess(w, "success", view)
}

// Submit handles POST /api/seating/submit. A failed submit still returns
// the board so the kept selection can be retried.
func (h *SeatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	staffID, ok := utils.GetStaffIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.Submit(r.Context(), token, staffID)
	if err != nil {
		if resp == nil {
			handleServiceError(w, h.log, err, "submit seats")
			return
		}
		code, msg := errorStatus(err)
		if resp.Message != "" {
			msg = resp.Message
		}
		utils.ResponseJSON(w, code, false, msg, resp, nil)
		return
	}

	utils.ResponseSuccess(w, resp.Message, resp)
}

// ==================== HELPER METHODS ====================

func (h *SeatingHandler) token(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return token, ok
}

func (h *SeatingHandler) seatEvent(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	fn func(token, seat string) (*seating.BoardView, error),
) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}
	var req request.SeatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := fn(token, req.Seat)
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", view)
}
