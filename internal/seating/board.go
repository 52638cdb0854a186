package seating

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptySelection  = errors.New("please select at least one seat")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
	ErrBoardClosed     = errors.New("seat board is closed")
	ErrUnknownSeat     = errors.New("seat not found in layout")
	ErrLayoutNotLoaded = errors.New("seat layout is not loaded")
)

// Backend is the slice of the booking API the seat tool needs.
type Backend interface {
	UpcomingShows(ctx context.Context, digiplexID int) ([]Show, error)
	Layout(ctx context.Context, digiplexID int) ([]SeatRow, error)
	SeatStatus(ctx context.Context, showID int) ([]SeatStatus, error)
	UpdateSeats(ctx context.Context, showID int, seats []string, op Operation) (int, error)
}

// Rejection is implemented by backend errors that carry a message meant for
// the operator. Submit reports that message verbatim.
type Rejection interface {
	error
	RejectionMessage() string
}

// SubmitResult is what a successful Submit reports back.
type SubmitResult struct {
	ShowID    int
	Operation Operation
	Seats     []string
	Updated   int
	Message   string
	// StatusErr is set when the post-submit status refresh failed; the
	// submission itself went through.
	StatusErr error
}

// Board is the seat layout of one show: grid, status cache, selection and
// operation. It subscribes to a PointerBus while open.
type Board struct {
	mu sync.Mutex

	backend    Backend
	digiplexID int
	showID     int

	grid      Grid
	status    StatusMap
	selector  Selector
	operation Operation

	loading    bool
	loaded     bool
	layoutErr  error
	statusErr  error
	submitting bool
	message    string

	closed      bool
	unsubscribe func()
}

func NewBoard(backend Backend, digiplexID, showID int) *Board {
	return &Board{
		backend:    backend,
		digiplexID: digiplexID,
		showID:     showID,
		status:     StatusMap{},
		operation:  OperationBlock,
	}
}

// Open starts listening for pointer release on bus.
func (b *Board) Open(bus *PointerBus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unsubscribe != nil || b.closed {
		return
	}
	b.unsubscribe = bus.Subscribe(b.Release)
}

// Close drops the pointer subscription. A closed board ignores input.
func (b *Board) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.closed = true
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (b *Board) ShowID() int     { return b.showID }
func (b *Board) DigiplexID() int { return b.digiplexID }

// Load fetches layout and status concurrently and joins both before leaving
// the loading state. A layout failure blocks the board; a status failure
// leaves every seat available.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBoardClosed
	}
	b.loading = true
	b.mu.Unlock()

	var (
		rows      []SeatRow
		statuses  []SeatStatus
		layoutErr error
		statusErr error
		g         errgroup.Group
	)
	g.Go(func() error {
		rows, layoutErr = b.backend.Layout(ctx, b.digiplexID)
		return nil
	})
	g.Go(func() error {
		statuses, statusErr = b.backend.SeatStatus(ctx, b.showID)
		return nil
	})
	_ = g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.loading = false
	b.loaded = true
	b.layoutErr = layoutErr
	b.statusErr = statusErr
	if layoutErr == nil {
		b.grid = BuildGrid(rows)
	}
	if statusErr == nil {
		b.status = NewStatusMap(statuses)
	}

	if layoutErr != nil {
		return fmt.Errorf("load layout for cinema %d: %w", b.digiplexID, layoutErr)
	}
	return nil
}

// StatusError is the last status fetch failure, if any.
func (b *Board) StatusError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statusErr
}

// RefreshStatus replaces the status cache with a fresh copy from the backend.
func (b *Board) RefreshStatus(ctx context.Context) error {
	statuses, err := b.backend.SeatStatus(ctx, b.showID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.statusErr = err
		return fmt.Errorf("refresh seat status for show %d: %w", b.showID, err)
	}
	b.statusErr = nil
	b.status = NewStatusMap(statuses)
	return nil
}

func (b *Board) checkSeat(label string) error {
	if b.closed {
		return ErrBoardClosed
	}
	if !b.loaded || b.layoutErr != nil {
		return ErrLayoutNotLoaded
	}
	if !b.grid.Contains(label) {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, label)
	}
	return nil
}

// Click flips a single seat.
func (b *Board) Click(label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkSeat(label); err != nil {
		return err
	}
	b.selector.Click(label)
	return nil
}

// Press starts a drag gesture on label.
func (b *Board) Press(label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkSeat(label); err != nil {
		return err
	}
	b.selector.Press(label)
	return nil
}

// Enter applies the running gesture to label. Outside a gesture it is a no-op.
func (b *Board) Enter(label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkSeat(label); err != nil {
		return err
	}
	b.selector.Enter(label)
	return nil
}

// Release ends the running gesture.
func (b *Board) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selector.Release()
}

func (b *Board) SetOperation(op Operation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.operation = op
}

// ClearSelection drops every staged seat.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selector.Clear()
}

// Submit sends the selection with the current operation. Nothing changes
// locally until the backend confirms: on success the selection is cleared
// and status is refetched in full; on failure selection and status are left
// as they were so the operator can retry.
func (b *Board) Submit(ctx context.Context) (*SubmitResult, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBoardClosed
	}
	if b.selector.Len() == 0 {
		b.message = "Please select at least one seat."
		b.mu.Unlock()
		return nil, ErrEmptySelection
	}
	if b.submitting {
		b.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	b.submitting = true
	seats := b.selector.Selected()
	op := b.operation
	b.mu.Unlock()

	updated, err := b.backend.UpdateSeats(ctx, b.showID, seats, op)

	b.mu.Lock()
	b.submitting = false
	if err != nil {
		var rejection Rejection
		if errors.As(err, &rejection) {
			b.message = "Error: " + rejection.RejectionMessage()
		} else {
			b.message = "Error: " + err.Error()
		}
		b.mu.Unlock()
		return nil, fmt.Errorf("update seats for show %d: %w", b.showID, err)
	}
	b.message = fmt.Sprintf("%d seat(s) updated successfully.", updated)
	b.selector.Clear()
	result := &SubmitResult{
		ShowID:    b.showID,
		Operation: op,
		Seats:     seats,
		Updated:   updated,
		Message:   b.message,
	}
	b.mu.Unlock()

	if err := b.RefreshStatus(ctx); err != nil {
		result.StatusErr = err
	}
	return result, nil
}
