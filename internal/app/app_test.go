package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samvad-hq/placeholder-client/internal/config"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
)

const postsJSON = `[
  {"userId": 1, "id": 1, "title": "Post 1", "body": "Body 1"},
  {"userId": 2, "id": 2, "title": "Post 2", "body": "Body 2"}
]`

const usersJSON = `[
  {"id": 1, "name": "User 1", "username": "user1", "email": "user1@example.com",
   "address": {"street": "123 Main St", "suite": "Apt. 1", "city": "Copenhagen", "zipcode": "55555-1234",
     "geo": {"lat": "-37.3159", "lng": "81.1496"}},
   "phone": "1-333-333-4444 x12345", "website": "example1.org",
   "company": {"name": "Company User 1", "catchPhrase": "Multi-layered client-server neural-net", "bs": "harness real-time e-markets"}}
]`

func newAPI(t *testing.T, posts, users string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts":
			fmt.Fprint(w, posts)
		case "/users":
			fmt.Fprint(w, users)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:                baseURL,
		HTTPTimeout:            5 * time.Second,
		StorageType:            "bbolt",
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}
}

func TestShowPrintsFirstRecords(t *testing.T) {
	api := newAPI(t, postsJSON, usersJSON)
	a, err := New(context.Background(), testConfig(api.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	var out bytes.Buffer
	if err := a.Show(context.Background(), &out); err != nil {
		t.Fatalf("Show: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Fetching Posts...\nPost(user_id=1,\n id=1,\n title=Post 1,\n body=Body 1)\n",
		"\nFetching Users...\nUser(id=1,\n name=User 1,",
		"catchPhrase=Multi-layered client-server neural-net",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Post 2") {
		t.Fatalf("show must print only the first post:\n%s", got)
	}
}

func TestShowEmptyCollections(t *testing.T) {
	api := newAPI(t, `[]`, `[]`)
	a, err := New(context.Background(), testConfig(api.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	if err := a.Show(context.Background(), &out); err != nil {
		t.Fatalf("Show: %v", err)
	}
	want := "Fetching Posts...\nno posts returned\n\nFetching Users...\nno users returned\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestShowPropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	a, err := New(context.Background(), testConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = a.Show(context.Background(), &bytes.Buffer{})
	var httpErr *placeholder.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestListPostsLimit(t *testing.T) {
	api := newAPI(t, postsJSON, usersJSON)
	a, err := New(context.Background(), testConfig(api.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	if err := a.ListPosts(context.Background(), &out, 1); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if !strings.Contains(out.String(), "Post 1") || strings.Contains(out.String(), "Post 2") {
		t.Fatalf("limit not applied:\n%s", out.String())
	}

	out.Reset()
	if err := a.ListPosts(context.Background(), &out, 0); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if strings.Count(out.String(), "Post(") != 2 {
		t.Fatalf("expected all posts:\n%s", out.String())
	}
}

func TestListUsers(t *testing.T) {
	api := newAPI(t, postsJSON, usersJSON)
	a, err := New(context.Background(), testConfig(api.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out bytes.Buffer
	if err := a.ListUsers(context.Background(), &out, 5); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if strings.Count(out.String(), "User(") != 1 {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestExportWithoutPublishers(t *testing.T) {
	api := newAPI(t, postsJSON, usersJSON)
	a, err := New(context.Background(), testConfig(api.URL), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := a.Export(context.Background()); err == nil {
		t.Fatalf("expected error when export is not configured")
	}
}

func TestExportPublishesOnce(t *testing.T) {
	api := newAPI(t, postsJSON, usersJSON)

	var received atomic.Int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer sink.Close()

	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	yaml := fmt.Sprintf("publishers:\n  - id: sink\n    type: http\n    http:\n      url: %s\n", sink.URL)
	if err := os.WriteFile(pubFile, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}

	cfg := testConfig(api.URL)
	cfg.PublishersFile = pubFile
	cfg.BBoltPath = filepath.Join(dir, "seen.db")

	a, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	results, err := a.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(results) != 2 || results[0].Published != 2 || results[1].Published != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
	if received.Load() != 3 {
		t.Fatalf("sink received %d events, want 3", received.Load())
	}

	results, err = a.Export(context.Background())
	if err != nil {
		t.Fatalf("second Export: %v", err)
	}
	if results[0].Skipped != 2 || results[1].Skipped != 1 || received.Load() != 3 {
		t.Fatalf("second export should skip everything, got %+v (received %d)", results, received.Load())
	}
}

func TestNewRejectsMissingPublishersFile(t *testing.T) {
	cfg := testConfig("https://example.com")
	cfg.PublishersFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing publishers file")
	}
}

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := New(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
