package seating

// CellView is one rendered grid position.
type CellView struct {
	Column int       `json:"column"`
	Spacer bool      `json:"spacer,omitempty"`
	Label  string    `json:"label,omitempty"`
	State  SeatState `json:"state,omitempty"`
}

type RowView struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Alias    string     `json:"alias,omitempty"`
	SeatType string     `json:"seat_type,omitempty"`
	Cells    []CellView `json:"cells"`
}

// BoardView is a point-in-time copy of a Board for rendering.
type BoardView struct {
	DigiplexID int       `json:"digiplex_id"`
	ShowID     int       `json:"show_id"`
	Loading    bool      `json:"loading"`
	Error      string    `json:"error,omitempty"`
	Empty      bool      `json:"empty"`
	Degraded   bool      `json:"status_degraded,omitempty"`
	Rows       []RowView `json:"rows"`
	Selected   []string  `json:"selected"`
	Operation  Operation `json:"operation"`
	Dragging   bool      `json:"dragging"`
	DragMode   string    `json:"drag_mode,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// View renders the board. A layout failure yields only the error; an empty
// layout sets Empty.
func (b *Board) View() BoardView {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := BoardView{
		DigiplexID: b.digiplexID,
		ShowID:     b.showID,
		Loading:    b.loading,
		Selected:   b.selector.Selected(),
		Operation:  b.operation,
		Dragging:   b.selector.Dragging(),
		DragMode:   b.selector.Mode().String(),
		Message:    b.message,
		Degraded:   b.statusErr != nil,
	}
	if b.loading || !b.loaded {
		view.Loading = true
		return view
	}
	if b.layoutErr != nil {
		view.Error = "Failed to load layout: " + b.layoutErr.Error()
		return view
	}
	if b.grid.Empty() {
		view.Empty = true
		return view
	}

	view.Rows = make([]RowView, len(b.grid.Rows))
	for i, row := range b.grid.Rows {
		rv := RowView{
			ID:       row.RowID,
			Name:     row.RowName,
			Alias:    row.RowAlias,
			SeatType: row.SeatType,
			Cells:    make([]CellView, len(row.Cells)),
		}
		for j, cell := range row.Cells {
			if !cell.IsSeat() {
				rv.Cells[j] = CellView{Column: cell.Column, Spacer: true}
				continue
			}
			rv.Cells[j] = CellView{
				Column: cell.Column,
				Label:  cell.Label,
				State:  StateOf(cell.Label, b.status, b.selector.IsSelected(cell.Label)),
			}
		}
		view.Rows[i] = rv
	}
	return view
}
