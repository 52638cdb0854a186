package adaptor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"picturetime-dashboard/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubChanges struct {
	changes chan cache.Change
	stopped chan struct{}
}

func (s *stubChanges) Subscribe(ctx context.Context, collection string) (<-chan cache.Change, error) {
	if collection != "news" {
		return nil, fmt.Errorf("collection %q not found", collection)
	}
	go func() {
		<-ctx.Done()
		close(s.stopped)
	}()
	return s.changes, nil
}

// readEvent reads one "event:/data:" block, skipping comment lines.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestChangeHandler_StreamsEvents(t *testing.T) {
	stub := &stubChanges{changes: make(chan cache.Change, 1), stopped: make(chan struct{})}
	h := NewChangeHandler(stub, zap.NewNop())

	server := httptest.NewServer(h.Stream("news"))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	stub.changes <- cache.Change{Collection: "news", Op: cache.OpCreate, ID: "n1"}

	event, data := readEvent(t, bufio.NewReader(resp.Body))
	assert.Equal(t, "create", event)

	var change cache.Change
	require.NoError(t, json.Unmarshal([]byte(data), &change))
	assert.Equal(t, "n1", change.ID)
	assert.Equal(t, "news", change.Collection)

	cancel()
	select {
	case <-stub.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("stream kept its subscription after the client left")
	}
}

func TestChangeHandler_EndsWhenFeedCloses(t *testing.T) {
	stub := &stubChanges{changes: make(chan cache.Change), stopped: make(chan struct{})}
	h := NewChangeHandler(stub, zap.NewNop())
	close(stub.changes)

	rec := httptest.NewRecorder()
	h.Stream("news")(rec, httptest.NewRequest(http.MethodGet, "/api/news/changes", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ": connected\n\n", rec.Body.String())
}

func TestChangeHandler_UnknownCollection(t *testing.T) {
	stub := &stubChanges{changes: make(chan cache.Change), stopped: make(chan struct{})}
	h := NewChangeHandler(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Stream("staff")(rec, httptest.NewRequest(http.MethodGet, "/api/staff/changes", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
