package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"picturetime-dashboard/internal/booking"
	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/events"
	"picturetime-dashboard/internal/seating"
	"picturetime-dashboard/pkg/cache"
)

type fakeAPI struct {
	mu sync.Mutex

	cinemas    []seating.Cinema
	cinemasErr error
	shows      map[int][]seating.Show
	layout     []seating.SeatRow
	status     []seating.SeatStatus
	updateErr  error
	report     *booking.Report
	reportErr  error

	updates    [][]string
	reportArgs []any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cinemas: []seating.Cinema{{ID: 1, Name: "Digiplex Mall"}},
		shows: map[int][]seating.Show{
			1: {{ID: 10, StartTime: "2025-05-01T10:00:00Z", EndTime: "2025-05-01T12:30:00Z", DigiplexID: 1}},
		},
		layout: []seating.SeatRow{
			{ID: 1, RowName: "A", RowInclude: "Y", ColumnInclude: "3", Columns: []string{"Y", "Y", "Y"}},
		},
		report: &booking.Report{ContentType: "application/octet-stream", Data: []byte("PK")},
	}
}

func (f *fakeAPI) Cinemas(context.Context) ([]seating.Cinema, error) {
	return f.cinemas, f.cinemasErr
}

func (f *fakeAPI) UpcomingShows(_ context.Context, digiplexID int) ([]seating.Show, error) {
	return f.shows[digiplexID], nil
}

func (f *fakeAPI) Layout(context.Context, int) ([]seating.SeatRow, error) {
	return f.layout, nil
}

func (f *fakeAPI) SeatStatus(context.Context, int) ([]seating.SeatStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seating.SeatStatus(nil), f.status...), nil
}

func (f *fakeAPI) UpdateSeats(_ context.Context, _ int, seats []string, _ seating.Operation) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.updates = append(f.updates, append([]string(nil), seats...))
	return len(seats), nil
}

func (f *fakeAPI) CashFlowReport(_ context.Context, cinemaID int, from, to string) (*booking.Report, error) {
	f.reportArgs = []any{cinemaID, from, to}
	return f.report, f.reportErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.SeatsUpdated
}

func (p *fakePublisher) PublishSeatsUpdated(_ context.Context, event events.SeatsUpdated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeFeed struct {
	changes []cache.Change
}

func (f *fakeFeed) Publish(_ context.Context, change cache.Change) error {
	f.changes = append(f.changes, change)
	return nil
}

func (f *fakeFeed) Subscribe(ctx context.Context, _ string) (<-chan cache.Change, error) {
	ch := make(chan cache.Change)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

// memTheatres stores theatres the way the document store would, merging
// top-level fields on update.
type memTheatres struct {
	data map[string]map[string]json.RawMessage
}

func newMemTheatres() *memTheatres {
	return &memTheatres{data: map[string]map[string]json.RawMessage{}}
}

func (m *memTheatres) decode(id string) *entity.Theatre {
	raw, _ := json.Marshal(m.data[id])
	var t entity.Theatre
	_ = json.Unmarshal(raw, &t)
	t.ID = id
	return &t
}

func (m *memTheatres) FindAll(context.Context) ([]*entity.Theatre, error) {
	out := make([]*entity.Theatre, 0, len(m.data))
	for id := range m.data {
		out = append(out, m.decode(id))
	}
	return out, nil
}

func (m *memTheatres) FindByID(_ context.Context, id string) (*entity.Theatre, error) {
	if _, ok := m.data[id]; !ok {
		return nil, nil
	}
	return m.decode(id), nil
}

func (m *memTheatres) Create(_ context.Context, id string, t *entity.Theatre) error {
	t.ID = id
	raw, _ := json.Marshal(t)
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)
	m.data[id] = fields
	return nil
}

func (m *memTheatres) Update(_ context.Context, id string, patch map[string]any) (*entity.Theatre, error) {
	current, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	for k, v := range patch {
		raw, _ := json.Marshal(v)
		current[k] = raw
	}
	return m.decode(id), nil
}

func (m *memTheatres) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.data[id]; !ok {
		return false, nil
	}
	delete(m.data, id)
	return true, nil
}
