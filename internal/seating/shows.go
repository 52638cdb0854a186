package seating

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Show is one entry of GET /shows/upcoming.
type Show struct {
	ID         int    `json:"id"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	DigiplexID int    `json:"digiplexId"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts RFC 3339 and the zone-less forms the backend emits.
// Zone-less timestamps are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func (s Show) Start() (time.Time, error) { return ParseTimestamp(s.StartTime) }

// DateKey is the UTC calendar date of the show's start, e.g. "2025-05-01".
func (s Show) DateKey() (string, error) {
	t, err := s.Start()
	if err != nil {
		return "", err
	}
	return t.UTC().Format(DateLayout), nil
}

// TimeLabel is the "15:04" start time shown in the time picker, in loc
// (UTC when nil).
func (s Show) TimeLabel(loc *time.Location) string {
	t, err := s.Start()
	if err != nil {
		return s.StartTime
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// ShowGroups partitions shows by start date. Dates keep first-seen order and
// shows keep input order within a date.
type ShowGroups struct {
	Dates   []string
	byDate  map[string][]Show
	Skipped []Show
}

func GroupShowsByDate(shows []Show) ShowGroups {
	groups := ShowGroups{byDate: make(map[string][]Show)}
	for _, show := range shows {
		key, err := show.DateKey()
		if err != nil {
			groups.Skipped = append(groups.Skipped, show)
			continue
		}
		if _, ok := groups.byDate[key]; !ok {
			groups.Dates = append(groups.Dates, key)
		}
		groups.byDate[key] = append(groups.byDate[key], show)
	}
	return groups
}

// Shows returns the shows on date, or nil.
func (g ShowGroups) Shows(date string) []Show {
	return g.byDate[date]
}

func (g ShowGroups) HasDate(date string) bool {
	_, ok := g.byDate[date]
	return ok
}

func (g ShowGroups) Len() int { return len(g.Dates) }

// Find looks a show up by id within date.
func (g ShowGroups) Find(date string, showID int) (Show, bool) {
	for _, show := range g.byDate[date] {
		if show.ID == showID {
			return show, true
		}
	}
	return Show{}, false
}
