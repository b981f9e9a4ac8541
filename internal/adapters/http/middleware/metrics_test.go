package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestMetrics_RecordsWithoutPanic verifies the instrumentation labels line
// up with the collector declarations; a cardinality mismatch panics at
// observe time, not at registration.
func TestMetrics_RecordsWithoutPanic(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// TestMetrics_RecordsErrorStatuses covers the non-200 label path.
func TestMetrics_RecordsErrorStatuses(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/courses/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
