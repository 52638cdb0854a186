package seating

import "strconv"

type CellKind int

const (
	CellSpacer CellKind = iota
	CellSeat
)

// Cell is one grid position. Column is the raw 1-based column index;
// Ordinal is the seat number within the row and is zero for spacers.
type Cell struct {
	Column  int
	Kind    CellKind
	Ordinal int
	Label   string
}

func (c Cell) IsSeat() bool { return c.Kind == CellSeat }

type GridRow struct {
	RowID    int
	RowName  string
	RowAlias string
	SeatType string
	Cells    []Cell
}

type Grid struct {
	Rows []GridRow
}

// SeatLabel joins a row name and a visible-seat ordinal.
func SeatLabel(rowName string, ordinal int) string {
	return rowName + strconv.Itoa(ordinal)
}

// BuildGrid keeps rows flagged "Y" and lays each one out over its column
// count. Only "Y" columns become seats, numbered from 1 left to right; every
// other column is a spacer so aisles keep their position without shifting
// the numbering.
func BuildGrid(rows []SeatRow) Grid {
	grid := Grid{Rows: make([]GridRow, 0, len(rows))}
	for _, row := range rows {
		if row.RowInclude != FlagIncluded {
			continue
		}
		grid.Rows = append(grid.Rows, buildRow(row))
	}
	return grid
}

func buildRow(row SeatRow) GridRow {
	count := row.ColumnCount()
	out := GridRow{
		RowID:    row.ID,
		RowName:  row.RowName,
		RowAlias: row.RowAlias,
		SeatType: row.SeatType,
		Cells:    make([]Cell, count),
	}

	visible := 0
	for i := 0; i < count; i++ {
		col := i + 1
		if row.Column(col) != FlagIncluded {
			out.Cells[i] = Cell{Column: col, Kind: CellSpacer}
			continue
		}
		visible++
		out.Cells[i] = Cell{
			Column:  col,
			Kind:    CellSeat,
			Ordinal: visible,
			Label:   SeatLabel(row.RowName, visible),
		}
	}
	return out
}

// Empty reports whether there is nothing to render.
func (g Grid) Empty() bool { return len(g.Rows) == 0 }

// Labels lists every seat label in row-major order.
func (g Grid) Labels() []string {
	var labels []string
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell.IsSeat() {
				labels = append(labels, cell.Label)
			}
		}
	}
	return labels
}

func (g Grid) Contains(label string) bool {
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell.IsSeat() && cell.Label == label {
				return true
			}
		}
	}
	return false
}

// SeatCount is the number of seat cells.
func (g Grid) SeatCount() int {
	n := 0
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell.IsSeat() {
				n++
			}
		}
	}
	return n
}
