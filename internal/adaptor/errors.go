package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

// errorStatus maps a service error to an HTTP status and the message shown
// to staff.
func errorStatus(err error) (int, string) {
	var apiErr *booking.APIError
	var urlErr *url.Error

	switch {
	case errors.Is(err, seating.ErrEmptySelection):
		return http.StatusBadRequest, "Please select at least one seat."
	case errors.Is(err, usecase.ErrReportFieldsMissing):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, seating.ErrUnknownSeat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, seating.ErrUnknownDate),
		errors.Is(err, seating.ErrUnknownShow),
		errors.Is(err, seating.ErrNoShows):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, seating.ErrSubmitInFlight),
		errors.Is(err, seating.ErrSuperseded),
		errors.Is(err, seating.ErrBoardClosed),
		errors.Is(err, seating.ErrLayoutNotLoaded),
		errors.Is(err, seating.ErrNoBoard),
		errors.Is(err, seating.ErrNoCinema):
		return http.StatusConflict, err.Error()
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, apiErr.RejectionMessage()
		}
		return http.StatusBadGateway, apiErr.RejectionMessage()
	case errors.As(err, &urlErr):
		return http.StatusBadGateway, "Booking service unavailable"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound, msg
	case strings.Contains(msg, "already registered"),
		strings.Contains(msg, "already exists"):
		return http.StatusConflict, msg
	case strings.Contains(msg, "invalid credentials"):
		return http.StatusUnauthorized, msg
	case strings.Contains(msg, "deactivated"):
		return http.StatusForbidden, msg
	case strings.Contains(msg, "validation failed"),
		strings.Contains(msg, "invalid token format"),
		strings.Contains(msg, "invalid cinema id"):
		return http.StatusBadRequest, msg
	case strings.Contains(msg, "unavailable"):
		return http.StatusServiceUnavailable, msg
	}
	return http.StatusInternalServerError, "Internal server error"
}

// handleServiceError writes the envelope for err and logs it at a level
// matching the status.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	code, msg := errorStatus(err)

	switch {
	case code >= http.StatusInternalServerError:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation), zap.Int("status", code))
	default:
		log.Warn(operation+" failed", zap.Error(err), zap.Int("status", code))
	}

	switch code {
	case http.StatusBadRequest:
		utils.ResponseBadRequest(w, msg, nil)
	case http.StatusBadGateway:
		utils.ResponseBadGateway(w, msg, nil)
	case http.StatusInternalServerError:
		utils.ResponseInternalError(w, msg)
	default:
		utils.ResponseJSON(w, code, false, msg, nil, nil)
	}
}

// ==================== HELPER METHODS ====================

// decodeJSON decodes the body and runs struct validation. It writes the
// 400 itself and reports whether the handler should go on.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// decodePatch reads a partial update body.
func decodePatch(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}
	return patch, true
}
