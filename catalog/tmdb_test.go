package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestTMDBClientListAndDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "k" || r.URL.Query().Get("language") != "pt-BR" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/movie/now_playing":
			if r.URL.Query().Get("page") != "2" {
				t.Errorf("page = %q", r.URL.Query().Get("page"))
			}
			w.Write([]byte(`{"page":2,"total_pages":3,"results":[{"id":7,"title":"Duna","release_date":"2024-03-01","popularity":812.5,"poster_path":"/d.jpg","genre_ids":[878]}]}`))
		case "/movie/7":
			w.Write([]byte(`{"id":7,"overview":"Areia.","runtime":166,"genres":[{"id":878,"name":"Science Fiction"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewTMDBClient(Config{BaseURL: srv.URL, APIKey: "k", Language: "pt-BR"}, nil)
	page, err := c.ListByCategory(context.Background(), NowPlaying, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "Duna" || page.Results[0].GenreIds[0] != 878 {
		t.Fatalf("unexpected page: %+v", page)
	}
	detail, err := c.Detail(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Runtime != 166 || detail.Genres[0].Name != "Science Fiction" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestTMDBClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":1,"runtime":90}`))
	}))
	defer srv.Close()

	c := NewTMDBClient(Config{BaseURL: srv.URL, APIKey: "k", MaxRetries: 2}, nil)
	detail, err := c.Detail(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Runtime != 90 || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("runtime=%d calls=%d", detail.Runtime, calls)
	}
}

func TestTMDBClientDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewTMDBClient(Config{BaseURL: srv.URL, APIKey: "k", MaxRetries: 3}, nil)
	if _, err := c.Detail(context.Background(), 1); !errors.Is(err, errNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestTMDBClientRequiresAPIKey(t *testing.T) {
	c := NewTMDBClient(Config{BaseURL: "http://127.0.0.1:1"}, nil)
	if _, err := c.ListByCategory(context.Background(), Upcoming, 1); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}
