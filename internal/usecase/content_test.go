package usecase

import (
	"context"
	"testing"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFilterLeads_MatchesAndSortsNewestFirst(t *testing.T) {
	leads := []*entity.Lead{
		{ID: "001", Name: "Asha Rao", Email: "asha@example.com", Category: "Franchise"},
		{ID: "003", Name: "Vikram", Email: "vik@corp.in", Category: "Advertising"},
		{ID: "002", Name: "Meera", Email: "meera@example.com", Category: "franchise"},
	}

	got := FilterLeads(leads, "FRANCHISE")
	require.Len(t, got, 2)
	assert.Equal(t, "002", got[0].ID)
	assert.Equal(t, "001", got[1].ID)

	all := FilterLeads(leads, "")
	assert.Equal(t, "003", all[0].ID)
	assert.Len(t, all, 3)
}

func TestFilterNews_SortsByDateWithUnparseableLast(t *testing.T) {
	items := []*entity.News{
		{ID: "a", Title: "Old", Date: "2024-01-10"},
		{ID: "b", Title: "Unknown", Date: "someday"},
		{ID: "c", Title: "New", Date: "March 3, 2025"},
	}

	got := FilterNews(items, "")
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)

	got = FilterNews(items, "old")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestSanitizePatch(t *testing.T) {
	clean, err := sanitizePatch(map[string]any{"status": "  contacted "}, "status", "name")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "contacted"}, clean)

	_, err = sanitizePatch(map[string]any{"status": 3}, "status")
	assert.ErrorContains(t, err, "status must be a string")

	_, err = sanitizePatch(map[string]any{"zeta": "x", "alpha": "y"}, "status")
	assert.ErrorContains(t, err, "unknown fields alpha, zeta")

	_, err = sanitizePatch(nil, "status")
	assert.ErrorContains(t, err, "validation failed")
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	req := request.ListRequest{PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 2}}
	page := paginate(items, req)
	assert.Equal(t, []int{3, 4}, page.Data)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	req.Page = 9
	assert.Empty(t, paginate(items, req).Data)

	req = request.ListRequest{}
	normalizePage(&req)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, defaultPerPage, req.PerPage)
}

func TestTheatreService_MovieList(t *testing.T) {
	ctx := context.Background()
	feed := &fakeFeed{}
	svc := NewTheatreService(newMemTheatres(), feed, zap.NewNop())

	theatre, err := svc.Create(ctx, &request.CreateTheatreRequest{
		Address:  "MG Road",
		Location: "Bengaluru",
	})
	require.NoError(t, err)
	require.NotEmpty(t, theatre.ID)

	theatre, err = svc.AddMovie(ctx, theatre.ID, &request.MoviePosterRequest{Name: "Inception", Link: "https://img.example.com/1.jpg"})
	require.NoError(t, err)
	theatre, err = svc.AddMovie(ctx, theatre.ID, &request.MoviePosterRequest{Name: "Dune", Link: "https://img.example.com/2.jpg"})
	require.NoError(t, err)
	require.Len(t, theatre.Movies, 2)

	_, err = svc.AddMovie(ctx, theatre.ID, &request.MoviePosterRequest{Name: "Bad", Link: "not a url"})
	assert.ErrorContains(t, err, "validation failed")

	theatre, err = svc.RemoveMovie(ctx, theatre.ID, 0)
	require.NoError(t, err)
	require.Len(t, theatre.Movies, 1)
	assert.Equal(t, "Dune", theatre.Movies[0].Name)
	assert.Equal(t, "MG Road", theatre.Address)

	_, err = svc.RemoveMovie(ctx, theatre.ID, 5)
	assert.ErrorContains(t, err, "movie not found at index 5")

	theatre, err = svc.RemoveMovie(ctx, theatre.ID, 0)
	require.NoError(t, err)
	assert.NotNil(t, theatre.Movies)
	assert.Empty(t, theatre.Movies)

	require.NotEmpty(t, feed.changes)
	last := feed.changes[len(feed.changes)-1]
	assert.Equal(t, entity.CollectionTheatres, last.Collection)
	assert.Equal(t, cache.OpUpdate, last.Op)
}

func TestTheatreService_MissingTheatre(t *testing.T) {
	svc := NewTheatreService(newMemTheatres(), nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorContains(t, err, "not found")

	err = svc.Delete(context.Background(), "nope")
	assert.ErrorContains(t, err, "not found")
}

func TestChangeService_RejectsUnknownCollection(t *testing.T) {
	svc := NewChangeService(&fakeFeed{})

	_, err := svc.Subscribe(context.Background(), "users")
	assert.ErrorContains(t, err, "not found")

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := svc.Subscribe(ctx, entity.CollectionNews)
	require.NoError(t, err)
	cancel()
	_, open := <-ch
	assert.False(t, open)
}
