// Package booking talks to the PictureTime booking backend: cinemas, shows,
// seat layouts, seat status, block/unblock and the cash-flow export.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 4 << 10
	fallbackMessage = "Operation failed"
)

// Client wraps HTTP access to the booking backend. It never retries: a
// block/unblock is not idempotent from the operator's point of view.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

// APIError is returned when the booking backend responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
	// Message is the backend's own {"message": ...} text, when it sent one.
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return "booking api error"
	}
	if e.Message != "" {
		return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("booking api error: %s: %s", e.Status, e.Body)
}

// RejectionMessage is the text shown to the operator after "Error: ".
func (e *APIError) RejectionMessage() string {
	if e == nil || e.Message == "" {
		return fallbackMessage
	}
	return e.Message
}

// IsNotFound reports whether the error represents a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a client for baseURL. If httpClient is nil a default one
// with a 15s timeout is used.
func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log.With(zap.String("client", "booking")),
	}
}

// Cinemas returns GET /cinema/list.
func (c *Client) Cinemas(ctx context.Context) ([]seating.Cinema, error) {
	var cinemas []seating.Cinema
	if err := c.getJSON(ctx, "/cinema/list", nil, &cinemas); err != nil {
		return nil, fmt.Errorf("list cinemas: %w", err)
	}
	return cinemas, nil
}

// UpcomingShows returns GET /shows/upcoming for one cinema.
func (c *Client) UpcomingShows(ctx context.Context, digiplexID int) ([]seating.Show, error) {
	if digiplexID <= 0 {
		return nil, errors.New("digiplex id is required")
	}
	query := url.Values{"digiplexId": {strconv.Itoa(digiplexID)}}

	var shows []seating.Show
	if err := c.getJSON(ctx, "/shows/upcoming", query, &shows); err != nil {
		return nil, fmt.Errorf("list upcoming shows: %w", err)
	}
	return shows, nil
}

// Layout returns GET /layout for one cinema.
func (c *Client) Layout(ctx context.Context, digiplexID int) ([]seating.SeatRow, error) {
	if digiplexID <= 0 {
		return nil, errors.New("digiplex id is required")
	}
	query := url.Values{"digiplexId": {strconv.Itoa(digiplexID)}}

	var rows []seating.SeatRow
	if err := c.getJSON(ctx, "/layout", query, &rows); err != nil {
		return nil, fmt.Errorf("get seat layout: %w", err)
	}
	return rows, nil
}

// SeatStatus returns GET /seating/status for one show.
func (c *Client) SeatStatus(ctx context.Context, showID int) ([]seating.SeatStatus, error) {
	if showID <= 0 {
		return nil, errors.New("show id is required")
	}
	query := url.Values{"showId": {strconv.Itoa(showID)}}

	var statuses []seating.SeatStatus
	if err := c.getJSON(ctx, "/seating/status", query, &statuses); err != nil {
		return nil, fmt.Errorf("get seat status: %w", err)
	}
	return statuses, nil
}

type updateSeatsRequest struct {
	ShowID      int               `json:"showId"`
	SeatNumbers []string          `json:"seatNumbers"`
	Operation   seating.Operation `json:"operation"`
}

type updateSeatsResponse struct {
	Updated int `json:"updated"`
}

// UpdateSeats posts one block/unblock batch and returns the backend's
// updated count.
func (c *Client) UpdateSeats(ctx context.Context, showID int, seats []string, op seating.Operation) (int, error) {
	if showID <= 0 {
		return 0, errors.New("show id is required")
	}
	if len(seats) == 0 {
		return 0, seating.ErrEmptySelection
	}

	body, err := json.Marshal(updateSeatsRequest{ShowID: showID, SeatNumbers: seats, Operation: op})
	if err != nil {
		return 0, fmt.Errorf("encode seat update: %w", err)
	}

	var out updateSeatsResponse
	if err := c.doJSON(ctx, http.MethodPost, "/seating/update", nil, bytes.NewReader(body), &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

// Report is a downloaded cash-flow workbook.
type Report struct {
	ContentType string
	Data        []byte
}

// CashFlowReport downloads GET /report/download-excel for a cinema and an
// inclusive date range (YYYY-MM-DD).
func (c *Client) CashFlowReport(ctx context.Context, cinemaID int, from, to string) (*Report, error) {
	query := url.Values{
		"cinemaId": {strconv.Itoa(cinemaID)},
		"from":     {from},
		"to":       {to},
	}

	res, err := c.do(ctx, http.MethodGet, "/report/download-excel", query, nil, "")
	if err != nil {
		return nil, fmt.Errorf("download cash-flow report: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read cash-flow report: %w", err)
	}
	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return &Report{ContentType: contentType, Data: data}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) error {
	res, err := c.do(ctx, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// do sends one request and turns any non-2xx answer into *APIError. The
// caller closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, accept string) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		monitoring.ObserveUpstream(path, "error", time.Since(start))
		c.log.Warn("booking request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		defer res.Body.Close()
		monitoring.ObserveUpstream(path, strconv.Itoa(res.StatusCode), time.Since(start))

		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   path,
			Body:       strings.TrimSpace(string(raw)),
			Message:    errorMessage(raw),
		}
		c.log.Warn("booking backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	monitoring.ObserveUpstream(path, "ok", time.Since(start))
	return res, nil
}

// errorMessage pulls "message" out of a JSON error body.
func errorMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}
