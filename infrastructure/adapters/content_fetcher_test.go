package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLogger() *zerologWrapper {
	return newZerologWrapper(io.Discard, "debug")
}

func TestContentFetcher_FetchURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "no such object", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := NewContentFetcher(newTestLogger(), time.Second)

	body, err := fetcher.FetchURL(context.Background(), server.URL+"/object")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q", body)
	}

	_, err = fetcher.FetchURL(context.Background(), server.URL+"/missing")
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 status error", err)
	}
}

func TestContentFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := NewContentFetcher(newTestLogger(), 50*time.Millisecond)

	if _, err := fetcher.FetchURL(context.Background(), server.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}
