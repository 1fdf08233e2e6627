package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRoutes(t *testing.T) {
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, "1.2.3"))

	tests := []struct {
		name     string
		path     string
		wantJSON string
	}{
		{
			name:     "liveness",
			path:     "/health",
			wantJSON: `{"status":"ok"}`,
		},
		{
			name:     "versioned health",
			path:     "/api/v1/health",
			wantJSON: `{"success":true,"data":{"status":"healthy"}}`,
		},
		{
			name:     "index",
			path:     "/api",
			wantJSON: `{"message":"OfficeHoursQ API","version":"1.2.3","docs":"/api/v1/health"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantJSON, rec.Body.String())
		})
	}
}
