package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/dto/response"
	"picturetime-dashboard/internal/events"
	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatingService runs one block/unblock workspace per staff session. The
// session token keys the workspace; it lives until logout.
type SeatingService interface {
	SessionListener

	Cinemas(ctx context.Context) ([]seating.Cinema, error)
	Workspace(token string) response.WorkspaceResponse
	SelectCinema(ctx context.Context, token string, req *request.SelectCinemaRequest) (*response.WorkspaceResponse, error)
	SelectDate(token string, req *request.SelectDateRequest) (*response.WorkspaceResponse, error)
	SelectShow(ctx context.Context, token string, req *request.SelectShowRequest) (*response.WorkspaceResponse, error)

	Click(token, seat string) (*seating.BoardView, error)
	Press(token, seat string) (*seating.BoardView, error)
	Enter(token, seat string) (*seating.BoardView, error)
	Release(token string)
	SetOperation(token string, req *request.OperationRequest) (*seating.BoardView, error)
	ClearSelection(token string) (*seating.BoardView, error)
	RefreshStatus(ctx context.Context, token string) (*seating.BoardView, error)
	Submit(ctx context.Context, token string, staffID uuid.UUID) (*response.SubmitResponse, error)
}

type seatingService struct {
	api       booking.API
	publisher events.Publisher
	loc       *time.Location
	log       *zap.Logger

	mu         sync.Mutex
	workspaces map[string]*seating.Workspace
}

// NewSeatingService builds the service; show times are labelled in loc.
func NewSeatingService(api booking.API, publisher events.Publisher, loc *time.Location, log *zap.Logger) SeatingService {
	return &seatingService{
		api:        api,
		publisher:  publisher,
		loc:        loc,
		log:        log.With(zap.String("service", "seating")),
		workspaces: make(map[string]*seating.Workspace),
	}
}

// workspace returns the session's workspace, creating it on first use.
func (s *seatingService) workspace(token string) *seating.Workspace {
	token = sessionKey(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[token]
	if !ok {
		ws = seating.NewWorkspace(s.api, s.loc)
		s.workspaces[token] = ws
		monitoring.SetActiveWorkspaces(len(s.workspaces))
	}
	return ws
}

// EndSession tears down the session's workspace; its board unsubscribes
// from the pointer bus.
func (s *seatingService) EndSession(token string) {
	token = sessionKey(token)

	s.mu.Lock()
	ws, ok := s.workspaces[token]
	delete(s.workspaces, token)
	monitoring.SetActiveWorkspaces(len(s.workspaces))
	s.mu.Unlock()

	if ok {
		ws.Close()
	}
}

// sessionKey folds the spellings uuid.Parse accepts into one map key.
func sessionKey(token string) string {
	if id, err := uuid.Parse(token); err == nil {
		return id.String()
	}
	return token
}

func (s *seatingService) Cinemas(ctx context.Context) ([]seating.Cinema, error) {
	cinemas, err := s.api.Cinemas(ctx)
	if err != nil {
		s.log.Error("Failed to list cinemas", zap.Error(err))
		return nil, fmt.Errorf("failed to load cinemas: %w", err)
	}
	if cinemas == nil {
		cinemas = []seating.Cinema{}
	}
	return cinemas, nil
}

func (s *seatingService) Workspace(token string) response.WorkspaceResponse {
	ws := s.workspace(token)
	resp := response.WorkspaceResponse{Picker: ws.Picker()}
	if board, err := ws.Board(); err == nil {
		view := board.View()
		resp.Board = &view
	}
	return resp
}

// SelectCinema loads the cinema's shows. A failed fetch is not an error
// here: the picker carries it.
func (s *seatingService) SelectCinema(ctx context.Context, token string, req *request.SelectCinemaRequest) (*response.WorkspaceResponse, error) {
	picker, err := s.workspace(token).SelectCinema(ctx, req.CinemaID)
	if err != nil && picker.Error == "" {
		if errors.Is(err, seating.ErrSuperseded) {
			s.log.Debug("Discarded stale show list", zap.Int("digiplex_id", req.CinemaID))
		}
		return nil, err
	}
	if err != nil {
		s.log.Warn("Failed to load shows", zap.Error(err), zap.Int("digiplex_id", req.CinemaID))
	}
	return &response.WorkspaceResponse{Picker: picker}, nil
}

func (s *seatingService) SelectDate(token string, req *request.SelectDateRequest) (*response.WorkspaceResponse, error) {
	picker, err := s.workspace(token).SelectDate(req.Date)
	if err != nil {
		return nil, err
	}
	return &response.WorkspaceResponse{Picker: picker}, nil
}

// SelectShow opens the show's board. Layout and status failures are
// rendered on the board rather than returned.
func (s *seatingService) SelectShow(ctx context.Context, token string, req *request.SelectShowRequest) (*response.WorkspaceResponse, error) {
	ws := s.workspace(token)

	view, err := ws.SelectShow(ctx, req.ShowID)
	if err != nil && view.ShowID == 0 {
		return nil, err
	}
	if err != nil {
		s.log.Warn("Failed to load seat layout", zap.Error(err), zap.Int("show_id", req.ShowID))
	}
	if view.Degraded {
		s.log.Warn("Seat status unavailable, showing all seats available", zap.Int("show_id", req.ShowID))
	}

	return &response.WorkspaceResponse{Picker: ws.Picker(), Board: &view}, nil
}

// onBoard runs fn against the open board and returns the new view.
func (s *seatingService) onBoard(token string, fn func(*seating.Board) error) (*seating.BoardView, error) {
	board, err := s.workspace(token).Board()
	if err != nil {
		return nil, err
	}
	if err := fn(board); err != nil {
		return nil, err
	}
	view := board.View()
	return &view, nil
}

func (s *seatingService) Click(token, seat string) (*seating.BoardView, error) {
	return s.onBoard(token, func(b *seating.Board) error { return b.Click(seat) })
}

func (s *seatingService) Press(token, seat string) (*seating.BoardView, error) {
	return s.onBoard(token, func(b *seating.Board) error { return b.Press(seat) })
}

func (s *seatingService) Enter(token, seat string) (*seating.BoardView, error) {
	return s.onBoard(token, func(b *seating.Board) error { return b.Enter(seat) })
}

// Release ends any drag, even when no board is open.
func (s *seatingService) Release(token string) {
	s.workspace(token).Release()
}

func (s *seatingService) SetOperation(token string, req *request.OperationRequest) (*seating.BoardView, error) {
	op, err := seating.ParseOperation(req.Operation)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.onBoard(token, func(b *seating.Board) error {
		b.SetOperation(op)
		return nil
	})
}

func (s *seatingService) ClearSelection(token string) (*seating.BoardView, error) {
	return s.onBoard(token, func(b *seating.Board) error {
		b.ClearSelection()
		return nil
	})
}

func (s *seatingService) RefreshStatus(ctx context.Context, token string) (*seating.BoardView, error) {
	return s.onBoard(token, func(b *seating.Board) error {
		if err := b.RefreshStatus(ctx); err != nil {
			s.log.Warn("Seat status refresh failed", zap.Error(err), zap.Int("show_id", b.ShowID()))
		}
		return nil
	})
}

func (s *seatingService) Submit(ctx context.Context, token string, staffID uuid.UUID) (*response.SubmitResponse, error) {
	board, err := s.workspace(token).Board()
	if err != nil {
		return nil, err
	}

	result, err := board.Submit(ctx)
	if err != nil {
		view := board.View()
		if !errors.Is(err, seating.ErrEmptySelection) && !errors.Is(err, seating.ErrSubmitInFlight) {
			monitoring.TrackSeatUpdate(string(view.Operation), "failed", 0)
			s.log.Warn("Seat update rejected",
				zap.Error(err),
				zap.Int("show_id", board.ShowID()),
				zap.Strings("seats", view.Selected))
		}
		return &response.SubmitResponse{
			Seats:     view.Selected,
			Operation: view.Operation,
			Message:   view.Message,
			Board:     view,
		}, err
	}

	monitoring.TrackSeatUpdate(string(result.Operation), "ok", result.Updated)
	s.log.Info("Seats updated",
		zap.String("staff_id", staffID.String()),
		zap.Int("show_id", result.ShowID),
		zap.String("operation", string(result.Operation)),
		zap.Strings("seats", result.Seats),
		zap.Int("updated", result.Updated))
	if result.StatusErr != nil {
		s.log.Warn("Seat status refresh after update failed", zap.Error(result.StatusErr), zap.Int("show_id", result.ShowID))
	}

	s.publish(ctx, board, result, staffID)

	return &response.SubmitResponse{
		Updated:     result.Updated,
		Seats:       result.Seats,
		Operation:   result.Operation,
		Message:     result.Message,
		StatusStale: result.StatusErr != nil,
		Board:       board.View(),
	}, nil
}

func (s *seatingService) publish(ctx context.Context, board *seating.Board, result *seating.SubmitResult, staffID uuid.UUID) {
	if s.publisher == nil {
		return
	}

	// the request may be gone by now; the event still belongs on the queue
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := s.publisher.PublishSeatsUpdated(pubCtx, events.SeatsUpdated{
		ShowID:     result.ShowID,
		DigiplexID: board.DigiplexID(),
		Operation:  string(result.Operation),
		Seats:      result.Seats,
		Updated:    result.Updated,
		StaffID:    staffID.String(),
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("Failed to publish seats updated event", zap.Error(err), zap.Int("show_id", result.ShowID))
	}
}
