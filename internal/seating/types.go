// Package seating holds the block/unblock tool: the seat-layout grid, the
// selection state machine, show grouping and the per-session workspace that
// drives them against the booking backend.
package seating

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	FlagIncluded = "Y"

	// availability code the booking backend uses for a blocked seat
	AvailabilityBlocked = "0"
)

// SeatRow is one cinema row as served by GET /layout. The backend sends the
// per-column flags as flat keys col1..colN next to the row fields.
type SeatRow struct {
	ID         int
	DigiplexID int
	RowName    string
	RowAlias   string
	SeatType   string
	RowInclude string
	// ColumnInclude is the column count, kept as sent ("12").
	ColumnInclude string
	// Columns[i] is the flag of col(i+1).
	Columns []string
}

// Column returns the flag of the 1-based column n, or "" when absent.
func (r SeatRow) Column(n int) string {
	if n < 1 || n > len(r.Columns) {
		return ""
	}
	return r.Columns[n-1]
}

// ColumnCount parses ColumnInclude the lenient way the dashboard always has:
// leading digits win, anything unparseable is zero.
func (r SeatRow) ColumnCount() int {
	s := strings.TrimSpace(r.ColumnInclude)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func (r *SeatRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode seat row: %w", err)
	}

	*r = SeatRow{}
	cols := map[int]string{}
	maxCol := 0
	for key, value := range raw {
		switch key {
		case "id":
			r.ID = looseInt(value)
		case "digiplexId":
			r.DigiplexID = looseInt(value)
		case "rowName":
			r.RowName = looseString(value)
		case "rowAlias":
			r.RowAlias = looseString(value)
		case "seatType":
			r.SeatType = looseString(value)
		case "rowInclude":
			r.RowInclude = looseString(value)
		case "columnInclude":
			r.ColumnInclude = looseString(value)
		default:
			if !strings.HasPrefix(key, "col") {
				continue
			}
			n, err := strconv.Atoi(key[len("col"):])
			if err != nil || n < 1 {
				continue
			}
			cols[n] = looseString(value)
			if n > maxCol {
				maxCol = n
			}
		}
	}

	if maxCol > 0 {
		r.Columns = make([]string, maxCol)
		for n, flag := range cols {
			r.Columns[n-1] = flag
		}
	}
	return nil
}

func (r SeatRow) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":            r.ID,
		"digiplexId":    r.DigiplexID,
		"rowName":       r.RowName,
		"rowAlias":      r.RowAlias,
		"seatType":      r.SeatType,
		"rowInclude":    r.RowInclude,
		"columnInclude": r.ColumnInclude,
	}
	for i, flag := range r.Columns {
		if flag != "" {
			out["col"+strconv.Itoa(i+1)] = flag
		}
	}
	return json.Marshal(out)
}

// SeatStatus is one entry of GET /seating/status.
type SeatStatus struct {
	Seat         string `json:"seat"`
	Availability string `json:"availability"`
}

// StatusMap maps seat label to availability code.
type StatusMap map[string]string

func NewStatusMap(entries []SeatStatus) StatusMap {
	m := make(StatusMap, len(entries))
	for _, e := range entries {
		m[e.Seat] = e.Availability
	}
	return m
}

// Blocked reports whether the backend marked label as blocked. Unknown
// labels count as available.
func (m StatusMap) Blocked(label string) bool {
	return m[label] == AvailabilityBlocked
}

// BlockedLabels returns the blocked labels in sorted order.
func (m StatusMap) BlockedLabels() []string {
	var out []string
	for label, code := range m {
		if code == AvailabilityBlocked {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

type Operation string

const (
	OperationBlock   Operation = "BLOCK"
	OperationUnblock Operation = "UNBLOCK"
)

func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToUpper(strings.TrimSpace(s))) {
	case OperationBlock:
		return OperationBlock, nil
	case OperationUnblock:
		return OperationUnblock, nil
	}
	return "", fmt.Errorf("invalid operation %q", s)
}

// Cinema is one entry of GET /cinema/list.
type Cinema struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	DigiplexID int    `json:"digiplexId,omitempty"`
}

func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func looseInt(raw json.RawMessage) int {
	n, err := strconv.Atoi(looseString(raw))
	if err != nil {
		return 0
	}
	return n
}
