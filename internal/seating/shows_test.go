package seating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupShowsByDate_TwoDatesKeepOrder(t *testing.T) {
	shows := []Show{
		{ID: 3, StartTime: "2025-05-01T18:00:00Z"},
		{ID: 1, StartTime: "2025-05-02T10:00:00Z"},
		{ID: 2, StartTime: "2025-05-01T09:30:00Z"},
		{ID: 4, StartTime: "2025-05-02T21:15:00Z"},
	}

	groups := GroupShowsByDate(shows)

	require.Equal(t, 2, groups.Len())
	assert.Equal(t, []string{"2025-05-01", "2025-05-02"}, groups.Dates)
	assert.Equal(t, []int{3, 2}, ids(groups.Shows("2025-05-01")))
	assert.Equal(t, []int{1, 4}, ids(groups.Shows("2025-05-02")))
}

func TestGroupShowsByDate_UsesUTCDate(t *testing.T) {
	groups := GroupShowsByDate([]Show{
		{ID: 1, StartTime: "2025-05-02T01:00:00+05:30"},
		{ID: 2, StartTime: "2025-05-01 22:00:00"},
		{ID: 3, StartTime: "not a time"},
	})

	assert.Equal(t, []string{"2025-05-01"}, groups.Dates)
	assert.Equal(t, []int{1, 2}, ids(groups.Shows("2025-05-01")))
	require.Len(t, groups.Skipped, 1)
	assert.Equal(t, 3, groups.Skipped[0].ID)
}

func TestPicker_DateResetsShowAndCinemaResetsAll(t *testing.T) {
	var p Picker
	p.SelectCinema(10)
	require.True(t, p.ApplyShows(10, []Show{
		{ID: 1, StartTime: "2025-05-01T10:00:00Z"},
		{ID: 2, StartTime: "2025-05-02T10:00:00Z"},
	}, nil))

	require.NoError(t, p.SelectDate("2025-05-01"))
	_, err := p.SelectShow(1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ShowID())

	require.NoError(t, p.SelectDate("2025-05-02"))
	assert.Equal(t, 0, p.ShowID())

	_, err = p.SelectShow(1)
	assert.ErrorIs(t, err, ErrUnknownShow)

	p.SelectCinema(11)
	assert.Equal(t, "", p.Date())
	assert.Equal(t, 0, p.ShowID())
	assert.Empty(t, p.View().Dates)
	assert.True(t, p.View().Loading)
}

func TestPicker_StaleShowListIgnored(t *testing.T) {
	var p Picker
	p.SelectCinema(10)
	p.SelectCinema(11)

	assert.False(t, p.ApplyShows(10, []Show{{ID: 1, StartTime: "2025-05-01T10:00:00Z"}}, nil))
	assert.True(t, p.View().Loading)
}

func TestPicker_EmptyListIsNoShows(t *testing.T) {
	var p Picker
	p.SelectCinema(10)
	p.ApplyShows(10, nil, nil)

	view := p.View()
	assert.True(t, view.NoShows)
	assert.False(t, view.Loading)
	assert.ErrorIs(t, p.SelectDate("2025-05-01"), ErrNoShows)
}

func ids(shows []Show) []int {
	out := make([]int, len(shows))
	for i, s := range shows {
		out[i] = s.ID
	}
	return out
}

func TestShow_TimeLabelInLocation(t *testing.T) {
	show := Show{ID: 1, StartTime: "2025-05-01T18:00:00+05:30"}
	ist := time.FixedZone("IST", 5*3600+1800)

	assert.Equal(t, "18:00", show.TimeLabel(ist))
	assert.Equal(t, "12:30", show.TimeLabel(nil))
	assert.Equal(t, "soon", Show{StartTime: "soon"}.TimeLabel(ist))
}
