package wire

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	config := &utils.Config{}
	config.App.CORSOrigin = "*"
	app := Wiring(&repository.Repository{}, Deps{}, config, zap.NewNop())

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/news", http.StatusUnauthorized},
		{http.MethodGet, "/api/inquiries/changes", http.StatusUnauthorized},
		{http.MethodPost, "/api/seating/submit", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/staff", http.StatusUnauthorized},
		{http.MethodGet, "/api/reports/cash-flow", http.StatusUnauthorized},
		{http.MethodOptions, "/api/news", http.StatusNoContent},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
