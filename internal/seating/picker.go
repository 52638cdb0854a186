package seating

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoCinema    = errors.New("no cinema selected")
	ErrNoShows     = errors.New("no upcoming shows for this cinema")
	ErrUnknownDate = errors.New("date has no shows")
	ErrUnknownShow = errors.New("show not found on selected date")
)

// Picker is the two-step show chooser: cinema, then date, then time.
type Picker struct {
	digiplexID int
	date       string
	showID     int

	loading bool
	shows   []Show
	groups  ShowGroups
	err     error

	// loc is where show times are labelled.
	loc *time.Location
}

// SelectCinema resets date and show and discards the previous show list.
// The caller fetches the new list and hands it to ApplyShows.
func (p *Picker) SelectCinema(digiplexID int) {
	*p = Picker{digiplexID: digiplexID, loading: true, loc: p.loc}
}

// ApplyShows installs a fetched show list. It returns false and changes
// nothing when the list belongs to a cinema that is no longer selected.
func (p *Picker) ApplyShows(digiplexID int, shows []Show, err error) bool {
	if digiplexID != p.digiplexID {
		return false
	}
	p.loading = false
	p.err = err
	if err != nil {
		p.shows = nil
		p.groups = ShowGroups{}
		return true
	}
	p.shows = shows
	p.groups = GroupShowsByDate(shows)
	return true
}

// SelectDate picks a date and clears any chosen show.
func (p *Picker) SelectDate(date string) error {
	if p.digiplexID == 0 {
		return ErrNoCinema
	}
	if !p.loading && p.err == nil && p.groups.Len() == 0 {
		return ErrNoShows
	}
	if !p.groups.HasDate(date) {
		return fmt.Errorf("%w: %s", ErrUnknownDate, date)
	}
	p.date = date
	p.showID = 0
	return nil
}

// SelectShow picks a show on the selected date.
func (p *Picker) SelectShow(showID int) (Show, error) {
	if p.digiplexID == 0 {
		return Show{}, ErrNoCinema
	}
	show, ok := p.groups.Find(p.date, showID)
	if !ok {
		return Show{}, fmt.Errorf("%w: %d", ErrUnknownShow, showID)
	}
	p.showID = showID
	return show, nil
}

func (p *Picker) DigiplexID() int { return p.digiplexID }
func (p *Picker) Date() string    { return p.date }
func (p *Picker) ShowID() int     { return p.showID }

// ShowOption is one entry of the time picker.
type ShowOption struct {
	ID        int    `json:"id"`
	Time      string `json:"time"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type PickerView struct {
	DigiplexID int          `json:"digiplex_id,omitempty"`
	Loading    bool         `json:"loading"`
	NoShows    bool         `json:"no_shows"`
	Error      string       `json:"error,omitempty"`
	Dates      []string     `json:"dates"`
	Date       string       `json:"date,omitempty"`
	Times      []ShowOption `json:"times,omitempty"`
	ShowID     int          `json:"show_id,omitempty"`
}

func (p *Picker) View() PickerView {
	view := PickerView{
		DigiplexID: p.digiplexID,
		Loading:    p.loading,
		Dates:      append([]string{}, p.groups.Dates...),
		Date:       p.date,
		ShowID:     p.showID,
	}
	if p.err != nil {
		view.Error = p.err.Error()
	}
	if p.digiplexID != 0 && !p.loading && p.err == nil && p.groups.Len() == 0 {
		view.NoShows = true
	}
	for _, show := range p.groups.Shows(p.date) {
		view.Times = append(view.Times, ShowOption{
			ID:        show.ID,
			Time:      show.TimeLabel(p.loc),
			StartTime: show.StartTime,
			EndTime:   show.EndTime,
		})
	}
	return view
}
