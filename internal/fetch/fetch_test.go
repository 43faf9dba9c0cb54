package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discovery.json")
	want := `{"archives": {}}`
	if err := os.WriteFile(path, []byte(want), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != want {
		t.Errorf("Load() = %q, want %q", data, want)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("Load() succeeded for a missing file")
	}
}

func TestLoadHTTP(t *testing.T) {
	want := `{"archives": {"a": {}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		w.Write([]byte(want))
	}))
	defer server.Close()

	data, err := Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != want {
		t.Errorf("Load() = %q, want %q", data, want)
	}
}

func TestLoadHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "archive store offline", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Load() succeeded despite a 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q does not mention the status code", err)
	}
	if !strings.Contains(err.Error(), "archive store offline") {
		t.Errorf("error %q does not carry the response excerpt", err)
	}
}

func TestLoadHTTPCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, server.URL); err == nil {
		t.Error("Load() succeeded with a cancelled context")
	}
}
