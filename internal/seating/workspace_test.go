package seating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workspaceBackend() *fakeBackend {
	backend := newFakeBackend()
	backend.shows[1] = []Show{
		{ID: 10, StartTime: "2025-05-01T10:00:00Z", DigiplexID: 1},
		{ID: 11, StartTime: "2025-05-01T18:30:00Z", DigiplexID: 1},
		{ID: 12, StartTime: "2025-05-02T10:00:00Z", DigiplexID: 1},
	}
	backend.shows[2] = []Show{
		{ID: 20, StartTime: "2025-06-01T12:00:00Z", DigiplexID: 2},
	}
	return backend
}

func TestWorkspace_FullFlow(t *testing.T) {
	ws := NewWorkspace(workspaceBackend(), nil)
	ctx := context.Background()

	picker, err := ws.SelectCinema(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-01", "2025-05-02"}, picker.Dates)

	picker, err = ws.SelectDate("2025-05-01")
	require.NoError(t, err)
	require.Len(t, picker.Times, 2)
	assert.Equal(t, "18:30", picker.Times[1].Time)

	view, err := ws.SelectShow(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 11, view.ShowID)
	assert.Len(t, view.Rows, 2)
	assert.Equal(t, 1, ws.Bus().Subscribers())
}

func TestWorkspace_CinemaChangeResetsEverything(t *testing.T) {
	ws := NewWorkspace(workspaceBackend(), nil)
	ctx := context.Background()

	_, err := ws.SelectCinema(ctx, 1)
	require.NoError(t, err)
	_, err = ws.SelectDate("2025-05-01")
	require.NoError(t, err)
	_, err = ws.SelectShow(ctx, 10)
	require.NoError(t, err)

	board, err := ws.Board()
	require.NoError(t, err)
	require.NoError(t, board.Click("A1"))

	picker, err := ws.SelectCinema(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "", picker.Date)
	assert.Equal(t, 0, picker.ShowID)
	assert.Equal(t, []string{"2025-06-01"}, picker.Dates)

	_, err = ws.Board()
	assert.ErrorIs(t, err, ErrNoBoard)
	assert.Equal(t, 0, ws.Bus().Subscribers())
}

func TestWorkspace_NewShowStartsWithEmptySelection(t *testing.T) {
	ws := NewWorkspace(workspaceBackend(), nil)
	ctx := context.Background()

	_, _ = ws.SelectCinema(ctx, 1)
	_, _ = ws.SelectDate("2025-05-01")
	_, err := ws.SelectShow(ctx, 10)
	require.NoError(t, err)
	board, _ := ws.Board()
	require.NoError(t, board.Click("A2"))

	view, err := ws.SelectShow(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, view.Selected)
	assert.Equal(t, 1, ws.Bus().Subscribers())
}

func TestWorkspace_StaleShowListDiscarded(t *testing.T) {
	backend := workspaceBackend()
	ws := NewWorkspace(backend, nil)
	ctx := context.Background()

	// While cinema 1's list is in flight the operator switches to cinema 2.
	switched := false
	backend.showsHook = func(digiplexID int) {
		if digiplexID == 1 && !switched {
			switched = true
			_, err := ws.SelectCinema(ctx, 2)
			require.NoError(t, err)
		}
	}

	_, err := ws.SelectCinema(ctx, 1)
	assert.ErrorIs(t, err, ErrSuperseded)

	picker := ws.Picker()
	assert.Equal(t, 2, picker.DigiplexID)
	assert.Equal(t, []string{"2025-06-01"}, picker.Dates)
}

func TestWorkspace_ShowListFailure(t *testing.T) {
	backend := workspaceBackend()
	backend.showsErr = errors.New("unreachable")
	ws := NewWorkspace(backend, nil)

	picker, err := ws.SelectCinema(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "unreachable", picker.Error)
	assert.False(t, picker.NoShows)
}

func TestWorkspace_ReleaseEndsDragAndCloseUnsubscribes(t *testing.T) {
	ws := NewWorkspace(workspaceBackend(), nil)
	ctx := context.Background()

	_, _ = ws.SelectCinema(ctx, 1)
	_, _ = ws.SelectDate("2025-05-02")
	_, err := ws.SelectShow(ctx, 12)
	require.NoError(t, err)

	board, err := ws.Board()
	require.NoError(t, err)
	require.NoError(t, board.Press("A1"))
	ws.Release()
	assert.False(t, board.View().Dragging)

	ws.Close()
	assert.Equal(t, 0, ws.Bus().Subscribers())
}

func TestWorkspace_InvalidCinema(t *testing.T) {
	ws := NewWorkspace(workspaceBackend(), nil)
	_, err := ws.SelectCinema(context.Background(), 0)
	assert.Error(t, err)

	_, err = ws.SelectShow(context.Background(), 10)
	assert.ErrorIs(t, err, ErrNoCinema)
}
