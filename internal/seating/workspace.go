package seating

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrNoBoard    = errors.New("no show selected")
	ErrSuperseded = errors.New("selection changed while loading")
)

// Workspace is one staff session's block/unblock screen: the picker, the
// board of the chosen show and the session's pointer bus. Fetches key their
// result by the requested id and drop it if the selection has moved on.
type Workspace struct {
	mu      sync.Mutex
	backend Backend
	bus     *PointerBus
	picker  Picker
	board   *Board
}

// NewWorkspace labels show times in loc; nil means UTC.
func NewWorkspace(backend Backend, loc *time.Location) *Workspace {
	return &Workspace{
		backend: backend,
		bus:     NewPointerBus(),
		picker:  Picker{loc: loc},
	}
}

func (w *Workspace) Bus() *PointerBus { return w.bus }

// SelectCinema switches cinema, tears down the board and loads the show list.
func (w *Workspace) SelectCinema(ctx context.Context, digiplexID int) (PickerView, error) {
	if digiplexID <= 0 {
		return PickerView{}, fmt.Errorf("invalid cinema id %d", digiplexID)
	}

	w.mu.Lock()
	w.picker.SelectCinema(digiplexID)
	w.closeBoardLocked()
	w.mu.Unlock()

	shows, err := w.backend.UpcomingShows(ctx, digiplexID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.picker.ApplyShows(digiplexID, shows, err) {
		return w.picker.View(), ErrSuperseded
	}
	if err != nil {
		return w.picker.View(), fmt.Errorf("list shows for cinema %d: %w", digiplexID, err)
	}
	return w.picker.View(), nil
}

// SelectDate picks a date; any show and its board are dropped.
func (w *Workspace) SelectDate(date string) (PickerView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.picker.SelectDate(date); err != nil {
		return w.picker.View(), err
	}
	w.closeBoardLocked()
	return w.picker.View(), nil
}

// SelectShow opens a fresh board for the show and loads it. The selection
// never carries over from a previous show.
func (w *Workspace) SelectShow(ctx context.Context, showID int) (BoardView, error) {
	w.mu.Lock()
	if _, err := w.picker.SelectShow(showID); err != nil {
		w.mu.Unlock()
		return BoardView{}, err
	}
	w.closeBoardLocked()
	board := NewBoard(w.backend, w.picker.DigiplexID(), showID)
	board.Open(w.bus)
	w.board = board
	w.mu.Unlock()

	loadErr := board.Load(ctx)

	w.mu.Lock()
	current := w.board
	w.mu.Unlock()
	if current != board {
		return BoardView{}, ErrSuperseded
	}
	return board.View(), loadErr
}

// Board returns the open board.
func (w *Workspace) Board() (*Board, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.board == nil {
		return nil, ErrNoBoard
	}
	return w.board, nil
}

func (w *Workspace) Picker() PickerView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.picker.View()
}

// Release ends any drag gesture, wherever the pointer was let go.
func (w *Workspace) Release() {
	w.bus.Release()
}

// Close tears the workspace down; the board unsubscribes from the bus.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeBoardLocked()
}

func (w *Workspace) closeBoardLocked() {
	if w.board != nil {
		w.board.Close()
		w.board = nil
	}
}
