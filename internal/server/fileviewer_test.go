package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbxapps/ucapp/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(io.Discard)
}

func getPage(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, rec.Body.String()
}

// TestFileViewerMissingFile renders the not-found state with status 200
// instead of failing.
func TestFileViewerMissingFile(t *testing.T) {
	v := NewFileViewer(filepath.Join(t.TempDir(), "big.json"), testLogger())

	rec, body := getPage(t, v.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(body, "Local file not found") {
		t.Errorf("page should render the not-found state, got: %.200s", body)
	}
}

// TestFileViewerArrayFile renders record count and size for a JSON array.
func TestFileViewerArrayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	if err := os.WriteFile(path, []byte(`[{"a":1},{"a":2},{"a":3}]`), 0644); err != nil {
		t.Fatal(err)
	}

	v := NewFileViewer(path, testLogger())
	rec, body := getPage(t, v.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(body, "List with 3 records") {
		t.Errorf("page should report 3 records, got: %.300s", body)
	}
	if !strings.Contains(body, "Found local file") {
		t.Error("page should show the found-file banner")
	}
}

// TestFileViewerUnparseableFile falls back to the raw preview state.
func TestFileViewerUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	if err := os.WriteFile(path, []byte("definitely not json"), 0644); err != nil {
		t.Fatal(err)
	}

	v := NewFileViewer(path, testLogger())
	rec, body := getPage(t, v.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(body, "Could not parse file as JSON") {
		t.Errorf("page should show the parse-failure banner, got: %.300s", body)
	}
	if !strings.Contains(body, "definitely not json") {
		t.Error("page should include the raw preview")
	}
}

// TestFileViewerUnknownPath 404s anything but the index.
func TestFileViewerUnknownPath(t *testing.T) {
	v := NewFileViewer(filepath.Join(t.TempDir(), "big.json"), testLogger())
	rec, _ := getPage(t, v.Handler(), "/other")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestHealthz answers the platform port probe.
func TestHealthz(t *testing.T) {
	v := NewFileViewer("unused", testLogger())
	srv := newHTTPServer(":0", testLogger(), v.Handler())

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff (middleware applied)", got)
	}
}
