package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

// ErrReportFieldsMissing is shown to staff verbatim.
var ErrReportFieldsMissing = errors.New("Please select all fields.")

// ReportFile is a report ready to be sent as an attachment.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ReportService interface {
	CashFlow(ctx context.Context, req *request.CashFlowReportRequest) (*ReportFile, error)
}

type reportService struct {
	api booking.API
	log *zap.Logger
}

func NewReportService(api booking.API, log *zap.Logger) ReportService {
	return &reportService{
		api: api,
		log: log.With(zap.String("service", "report")),
	}
}

func (s *reportService) CashFlow(ctx context.Context, req *request.CashFlowReportRequest) (*ReportFile, error) {
	req.From = strings.TrimSpace(req.From)
	req.To = strings.TrimSpace(req.To)
	if req.CinemaID <= 0 || req.From == "" || req.To == "" {
		return nil, ErrReportFieldsMissing
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cash flow report validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	from, _ := time.Parse(time.DateOnly, req.From)
	to, _ := time.Parse(time.DateOnly, req.To)
	if from.After(to) {
		return nil, fmt.Errorf("validation failed: from must not be after to")
	}

	report, err := s.api.CashFlowReport(ctx, req.CinemaID, req.From, req.To)
	if err != nil {
		s.log.Error("Failed to download cash flow report",
			zap.Error(err),
			zap.Int("cinema_id", req.CinemaID),
			zap.String("from", req.From),
			zap.String("to", req.To))
		return nil, err
	}

	contentType := report.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return &ReportFile{
		Filename:    fmt.Sprintf("%s_%s_to_%s.xlsx", s.cinemaName(ctx, req.CinemaID), req.From, req.To),
		ContentType: contentType,
		Data:        report.Data,
	}, nil
}

// cinemaName looks the cinema up for the file name, falling back to "Report".
func (s *reportService) cinemaName(ctx context.Context, cinemaID int) string {
	cinemas, err := s.api.Cinemas(ctx)
	if err != nil {
		s.log.Warn("Failed to look up cinema name for report", zap.Error(err))
		return "Report"
	}
	for _, c := range cinemas {
		if c.ID == cinemaID && strings.TrimSpace(c.Name) != "" {
			return strings.TrimSpace(c.Name)
		}
	}
	return "Report"
}
