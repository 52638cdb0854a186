package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"empty selection", seating.ErrEmptySelection, http.StatusBadRequest, "Please select at least one seat."},
		{"report fields", usecase.ErrReportFieldsMissing, http.StatusBadRequest, "Please select all fields."},
		{"unknown date", fmt.Errorf("%w: 2025-01-01", seating.ErrUnknownDate), http.StatusNotFound, "date has no shows: 2025-01-01"},
		{"no board", seating.ErrNoBoard, http.StatusConflict, "no show selected"},
		{"wrapped in flight", fmt.Errorf("submit: %w", seating.ErrSubmitInFlight), http.StatusConflict, "a submission is already in progress"},
		{"rejection", &booking.APIError{StatusCode: 409, Message: "Seat A1 is sold"}, http.StatusBadGateway, "Seat A1 is sold"},
		{"upstream 404", fmt.Errorf("get: %w", &booking.APIError{StatusCode: 404}), http.StatusNotFound, "Operation failed"},
		{"transport", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}, http.StatusBadGateway, "Booking service unavailable"},
		{"not found", errors.New("lead not found"), http.StatusNotFound, "lead not found"},
		{"duplicate", errors.New("email already registered"), http.StatusConflict, "email already registered"},
		{"credentials", errors.New("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"inactive", errors.New("account is deactivated"), http.StatusForbidden, "account is deactivated"},
		{"validation", errors.New("validation failed: title: required"), http.StatusBadRequest, "validation failed: title: required"},
		{"other", errors.New("pq: relation missing"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := errorStatus(tc.err)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

func TestHandleServiceError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), errors.New("dial tcp 10.0.0.5:5432: refused"), "list leads")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}
