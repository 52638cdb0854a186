package adaptor

import (
	"context"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReports struct {
	got      *request.CashFlowReportRequest
	filename string
}

func (s *stubReports) CashFlow(_ context.Context, req *request.CashFlowReportRequest) (*usecase.ReportFile, error) {
	s.got = req
	if req.CinemaID == 0 || req.From == "" || req.To == "" {
		return nil, usecase.ErrReportFieldsMissing
	}
	filename := s.filename
	if filename == "" {
		filename = "Digiplex Mall_2025-05-01_to_2025-05-31.xlsx"
	}
	return &usecase.ReportFile{
		Filename:    filename,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK\x03\x04"),
	}, nil
}

func TestReportHandler_CashFlowAttachment(t *testing.T) {
	stub := &stubReports{}
	h := NewReportHandler(stub, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/cash-flow?cinemaId=3&from=2025-05-01&to=2025-05-31", nil)
	rec := httptest.NewRecorder()
	h.CashFlow(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Digiplex Mall_2025-05-01_to_2025-05-31.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04", rec.Body.String())
	assert.Equal(t, 3, stub.got.CinemaID)
}

func TestReportHandler_MissingFields(t *testing.T) {
	h := NewReportHandler(&stubReports{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/cash-flow?cinemaId=abc&from=2025-05-01", nil)
	rec := httptest.NewRecorder()
	h.CashFlow(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Please select all fields."}`, rec.Body.String())
}

func TestReportHandler_NonASCIIFilename(t *testing.T) {
	h := NewReportHandler(&stubReports{filename: "Ciné Plaza.xlsx"}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/cash-flow?cinemaId=3&from=2025-05-01&to=2025-05-31", nil)
	rec := httptest.NewRecorder()
	h.CashFlow(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	disposition := rec.Header().Get("Content-Disposition")
	assert.Equal(t, "attachment; filename*=utf-8''Cin%C3%A9%20Plaza.xlsx", disposition)

	_, params, err := mime.ParseMediaType(disposition)
	require.NoError(t, err)
	assert.Equal(t, "Ciné Plaza.xlsx", params["filename"])
}
