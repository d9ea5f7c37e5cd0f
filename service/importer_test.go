package service

import (
	"cinema_scheduler/catalog"
	"cinema_scheduler/events"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCatalog struct {
	pages   map[string]map[int][]catalog.Item
	details map[int64]catalog.Detail
	failAt  string
	failPg  int
	calls   int
}

func (c *fakeCatalog) ListByCategory(_ context.Context, category string, page int) (catalog.Page, error) {
	if category == c.failAt && page == c.failPg {
		return catalog.Page{}, errors.New("catalog unavailable")
	}
	return catalog.Page{Page: page, TotalPages: 3, Results: c.pages[category][page]}, nil
}

func (c *fakeCatalog) Detail(_ context.Context, id int64) (catalog.Detail, error) {
	c.calls++
	return c.details[id], nil
}

func (f *fixture) importer(remote Catalog) *CatalogImporter {
	im := NewCatalogImporter(f.store, remote, f.clock, f.events, nil)
	im.Delay = 0
	return im
}

func TestImportMapsCatalogItems(t *testing.T) {
	f := newFixture(at(2030, 6, 10, 3, 0))
	remote := &fakeCatalog{
		pages: map[string]map[int][]catalog.Item{
			catalog.NowPlaying: {
				1: {
					{ID: 1, Title: "Duna", ReleaseDate: "2030-06-01", Popularity: 120.5, PosterPath: "/duna.jpg", GenreIds: []int{878}},
					{ID: 2, Title: "Sem Data", ReleaseDate: "", Popularity: 3},
				},
				2: {{ID: 3, Title: "Curta", ReleaseDate: "2030-05-20", Popularity: -4, GenreIds: []int{35}}},
			},
			catalog.Upcoming: {
				1: {
					{ID: 1, Title: "Duna", ReleaseDate: "2030-06-01"},
					{ID: 4, Title: "Épico", ReleaseDate: "2030-07-02", GenreIds: []int{99999}},
				},
			},
		},
		details: map[int64]catalog.Detail{
			1: {ID: 1, Overview: "Areia.", Runtime: 155, Genres: []catalog.Genre{{ID: 878, Name: "Science Fiction"}}},
			3: {ID: 3, Runtime: 12},
			4: {ID: 4, Runtime: 900, Genres: []catalog.Genre{{ID: 4242, Name: "Épico Histórico"}}},
		},
	}

	result, err := f.importer(remote).Import(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Imported != 3 || result.Message != "3 movies imported." {
		t.Fatalf("result = %+v", result)
	}

	dune, _ := f.store.MovieByTitle(f.ctx, "Duna")
	if dune == nil {
		t.Fatal("Duna not imported")
	}
	if dune.Genre != "Ficção Científica" || dune.Duration != 155 || dune.Synopsis != "Areia." ||
		dune.PosterURL != catalog.PosterBaseURL+"/duna.jpg" || dune.ExternalId != 1 || dune.Slug != "duna" ||
		dune.ReleaseDate.String() != "2030-06-01" {
		t.Fatalf("unexpected Duna: %+v", dune)
	}

	short, _ := f.store.MovieByTitle(f.ctx, "Curta")
	if short == nil || short.Duration != 60 || short.Popularity != 0 || short.Genre != "Comédia" ||
		short.Synopsis != "Sinopse indisponível" || short.PosterURL != "" {
		t.Fatalf("unexpected Curta: %+v", short)
	}

	epic, _ := f.store.MovieByTitle(f.ctx, "Épico")
	if epic == nil || epic.Duration != 600 || epic.Genre != "Épico Histórico" {
		t.Fatalf("unexpected Épico: %+v", epic)
	}

	if missing, _ := f.store.MovieByTitle(f.ctx, "Sem Data"); missing != nil {
		t.Fatal("item without release date was imported")
	}
	// Duna is fetched once even though both categories list it.
	if remote.calls != 4 {
		t.Fatalf("detail calls = %d, want 4", remote.calls)
	}
	types := f.events.Types()
	if len(types) != 1 || types[0] != events.MoviesImported {
		t.Fatalf("events = %v", types)
	}
}

func TestImportSkipsKnownTitles(t *testing.T) {
	f := newFixture(at(2030, 6, 10, 3, 0))
	f.addMovie(t, "Duna", 155, at(2030, 6, 1, 0, 0), 1)
	remote := &fakeCatalog{pages: map[string]map[int][]catalog.Item{
		catalog.NowPlaying: {1: {{ID: 1, Title: "Duna", ReleaseDate: "2030-06-01"}}},
	}}

	result, err := f.importer(remote).Import(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Imported != 0 || result.Message != "0 movies imported." || remote.calls != 0 {
		t.Fatalf("result = %+v, detail calls = %d", result, remote.calls)
	}
}

func TestImportContinuesPastFailedPage(t *testing.T) {
	f := newFixture(at(2030, 6, 10, 3, 0))
	remote := &fakeCatalog{
		pages: map[string]map[int][]catalog.Item{
			catalog.NowPlaying: {
				1: {{ID: 1, Title: "Primeiro", ReleaseDate: "2030-06-01"}},
				2: {{ID: 2, Title: "Perdido", ReleaseDate: "2030-06-02"}},
				3: {{ID: 3, Title: "Terceiro", ReleaseDate: "2030-06-03"}},
			},
			catalog.Upcoming: {
				1: {{ID: 4, Title: "Depois", ReleaseDate: "2030-07-01"}},
			},
		},
		details: map[int64]catalog.Detail{1: {Runtime: 90}, 2: {Runtime: 95}, 3: {Runtime: 100}, 4: {Runtime: 110}},
		failAt:  catalog.NowPlaying,
		failPg:  2,
	}

	result, err := f.importer(remote).Import(f.ctx)
	wantKind(t, err, ErrExternalService)
	if msg := err.(*Error).Message; msg != "Critical import error: catalog unavailable" {
		t.Fatalf("message = %q", msg)
	}
	if n := strings.Count(err.Error(), "catalog unavailable"); n != 1 {
		t.Fatalf("cause repeated %d times in %q", n, err.Error())
	}
	if result.Imported != 3 {
		t.Fatalf("imported = %d, want 3", result.Imported)
	}
	for _, title := range []string{"Primeiro", "Terceiro", "Depois"} {
		if m, _ := f.store.MovieByTitle(f.ctx, title); m == nil {
			t.Fatalf("%s should be imported despite the failed page", title)
		}
	}
	if m, _ := f.store.MovieByTitle(f.ctx, "Perdido"); m != nil {
		t.Fatal("movie of the failed page was imported")
	}
	types := f.events.Types()
	if len(types) != 1 || types[0] != events.MoviesImported {
		t.Fatalf("events = %v", types)
	}
}

func TestImportFailedCategoryDoesNotStopTheNext(t *testing.T) {
	f := newFixture(at(2030, 6, 10, 3, 0))
	remote := &fakeCatalog{
		pages: map[string]map[int][]catalog.Item{
			catalog.Upcoming: {1: {{ID: 9, Title: "Depois", ReleaseDate: "2030-07-01"}}},
		},
		details: map[int64]catalog.Detail{9: {Runtime: 120}},
		failAt:  catalog.NowPlaying,
		failPg:  1,
	}

	result, err := f.importer(remote).Import(f.ctx)
	wantKind(t, err, ErrExternalService)
	if result.Imported != 1 {
		t.Fatalf("imported = %d, want 1", result.Imported)
	}
	if m, _ := f.store.MovieByTitle(f.ctx, "Depois"); m == nil {
		t.Fatal("upcoming movies should be imported after now_playing failed")
	}
}

func TestImportHonoursCancellation(t *testing.T) {
	f := newFixture(at(2030, 6, 10, 3, 0))
	remote := &fakeCatalog{pages: map[string]map[int][]catalog.Item{
		catalog.NowPlaying: {1: {{ID: 1, Title: "Duna", ReleaseDate: "2030-06-01"}}},
	}}
	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	_, err := f.importer(remote).Import(ctx)
	if !errors.Is(err, context.Canceled) || KindOf(err) != KindExternalService {
		t.Fatalf("error = %v", err)
	}
}
