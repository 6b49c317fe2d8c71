package workspace

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestRestDownloaderStreamsBody verifies the fallback path returns the
// object bytes unmodified and sends the expected auth header and URL.
func TestRestDownloaderStreamsBody(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"n":1}`), 1000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/2.0/fs/files/Volumes/example/default/test-volume/big.json" {
			t.Errorf("request path = %q, want Files API volume path", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	d, err := NewRestDownloader(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("NewRestDownloader() error = %v", err)
	}

	body, size, err := d.DownloadVolumeFile(context.Background(), "/Volumes/example/default/test-volume/big.json")
	if err != nil {
		t.Fatalf("DownloadVolumeFile() error = %v, want nil", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("downloaded %d bytes, want byte-identical %d-byte payload", len(got), len(payload))
	}
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", size, len(payload))
	}
}

// TestRestDownloaderReportsAPIError verifies non-200 responses surface as
// errors naming the status and path.
func TestRestDownloaderReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_code":"NOT_FOUND"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	d, err := NewRestDownloader(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("NewRestDownloader() error = %v", err)
	}

	_, _, err = d.DownloadVolumeFile(context.Background(), "/Volumes/x/y/z/missing.json")
	if err == nil {
		t.Fatal("DownloadVolumeFile() should fail for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %q, want it to name the 404 status", err.Error())
	}
	if !strings.Contains(err.Error(), "missing.json") {
		t.Errorf("error = %q, want it to name the requested path", err.Error())
	}
}

// TestNewRestDownloaderRequiresHostAndToken verifies construction fails
// without explicit credentials, since the fallback bypasses the SDK chain.
func TestNewRestDownloaderRequiresHostAndToken(t *testing.T) {
	if _, err := NewRestDownloader("", "token"); err == nil {
		t.Error("NewRestDownloader(\"\", token) should return error")
	}
	if _, err := NewRestDownloader("https://host", ""); err == nil {
		t.Error("NewRestDownloader(host, \"\") should return error")
	}
}
