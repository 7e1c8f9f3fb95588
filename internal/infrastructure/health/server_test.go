package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessRoutes(t *testing.T) {
	t.Parallel()

	server := NewServer(0, nil)
	handler := server.Handler()

	cases := []struct {
		path       string
		wantStatus int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusNotFound},
		{"/health/deep", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("GET %s = %d, want %d", tc.path, rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && rec.Body.String() != "OK" {
				t.Fatalf("unexpected body: %q", rec.Body.String())
			}
		})
	}
}
