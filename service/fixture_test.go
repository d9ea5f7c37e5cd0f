package service

import (
	"cinema_scheduler/events"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type fixture struct {
	ctx    context.Context
	store  *store.MemoryStore
	clock  *clockwork.FakeClock
	events *events.Recorder
}

func newFixture(now time.Time) *fixture {
	return &fixture{
		ctx:    context.Background(),
		store:  store.NewMemoryStore(),
		clock:  clockwork.NewFakeClockAt(now),
		events: &events.Recorder{},
	}
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func (f *fixture) sessions() *SessionService {
	return NewSessionService(f.store, f.clock, f.events, nil)
}

func (f *fixture) movies() *MovieService {
	return NewMovieService(f.store, f.clock, f.events, nil, DefaultOptions())
}

func (f *fixture) scheduler(opts Options, seed int64) *AutoScheduler {
	return NewAutoScheduler(f.store, f.clock, f.events, nil, opts, rand.New(rand.NewSource(seed)))
}

func (f *fixture) addTheater(t *testing.T, name string, rooms int) *model.Theater {
	t.Helper()
	address := &model.Address{Street: "Rua " + name, Number: 100}
	if err := f.store.CreateAddress(f.ctx, address); err != nil {
		t.Fatal(err)
	}
	theater := &model.Theater{Name: name, Slug: name, Rooms: rooms, AddressId: address.ID}
	if err := f.store.CreateTheater(f.ctx, theater); err != nil {
		t.Fatal(err)
	}
	return theater
}

func (f *fixture) addMovie(t *testing.T, title string, duration int, release time.Time, popularity float64) *model.Movie {
	t.Helper()
	movie := &model.Movie{
		Title:       title,
		Slug:        title,
		Genre:       "Drama",
		Duration:    duration,
		ReleaseDate: utils.NewDate(release),
		Popularity:  popularity,
	}
	if err := f.store.CreateMovies(f.ctx, []*model.Movie{movie}); err != nil {
		t.Fatal(err)
	}
	return movie
}

// addSession writes straight to the store, bypassing every rule.
func (f *fixture) addSession(t *testing.T, movie *model.Movie, theater *model.Theater, room int, start time.Time) *model.Session {
	t.Helper()
	session := &model.Session{Code: uuid.NewString(), MovieId: movie.ID, TheaterId: theater.ID, Room: room, StartTime: start}
	if err := f.store.CreateSessions(f.ctx, []*model.Session{session}); err != nil {
		t.Fatal(err)
	}
	return session
}

func wantKind(t *testing.T, err error, target *Error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want kind %s", err, target.Kind)
	}
}

func assertNoOverlap(t *testing.T, f *fixture) {
	t.Helper()
	all, err := f.store.Sessions(f.ctx, store.SessionQuery{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.TheaterId != b.TheaterId || a.Room != b.Room {
				continue
			}
			if Overlaps(a.StartTime, a.EndTime(), b.StartTime, b.EndTime()) {
				t.Fatalf("sessions %d and %d overlap in theater %d room %d", a.ID, b.ID, a.TheaterId, a.Room)
			}
		}
	}
}
