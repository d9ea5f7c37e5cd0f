package service

import (
	"cinema_scheduler/events"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type slot struct {
	hour, minute int
}

func (s slot) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), s.hour, s.minute, 0, 0, day.Location())
}

func parseSlots(raw []string) ([]slot, error) {
	slots := make([]slot, 0, len(raw))
	for _, r := range raw {
		t, err := time.Parse("15:04", r)
		if err != nil {
			return nil, fail(KindValidation, "invalid schedule slot %q", r)
		}
		slots = append(slots, slot{t.Hour(), t.Minute()})
	}
	return slots, nil
}

// AutoScheduler fills every room of every theater with sessions for the coming days.
type AutoScheduler struct {
	deps
	opts Options

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAutoScheduler uses rng for every random decision; pass a seeded source for reproducible runs.
func NewAutoScheduler(st store.Store, clock clockwork.Clock, pub events.Publisher, log *zap.Logger, opts Options, rng *rand.Rand) *AutoScheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AutoScheduler{deps: newDeps(st, clock, pub, log), opts: opts, rng: rng}
}

// exclusionChance is the percentage chance that a movie is left out of a theater's program.
func exclusionChance(rooms int, popularity float64) int {
	base := math.Max(10, float64(95-rooms*10))
	bonus := math.Log10(math.Max(1, popularity)) * 20
	return int(math.Max(5, math.Min(95, base-bonus)))
}

func byPopularity(movies []model.Movie) []model.Movie {
	sorted := append([]model.Movie(nil), movies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Popularity != sorted[j].Popularity {
			return sorted[i].Popularity > sorted[j].Popularity
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// program picks the movies a theater shows this run.
func (a *AutoScheduler) program(theater model.Theater, candidates []model.Movie) []model.Movie {
	var picked []model.Movie
	for _, m := range candidates {
		if a.rng.Intn(100) >= exclusionChance(theater.Rooms, m.Popularity) {
			picked = append(picked, m)
		}
	}
	if len(picked) == 0 && len(candidates) > 0 {
		top := byPopularity(candidates)
		if len(top) > 2 {
			top = top[:2]
		}
		return top
	}
	return byPopularity(picked)
}

// Generate builds and saves the schedule in one batch and returns how many sessions it created.
func (a *AutoScheduler) Generate(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slots, err := parseSlots(a.opts.Slots)
	if err != nil {
		return 0, err
	}

	var created []*model.Session
	err = a.store.WithTx(ctx, func(tx store.Store) error {
		now := a.clock.Now()
		today := utils.DateOnly(now)
		probeDay := today.AddDate(0, 0, 1)
		cutoff := now.AddDate(0, -a.opts.WindowMonths, 0)

		movies, err := tx.Movies(ctx, store.MovieQuery{})
		if err != nil {
			return err
		}
		var candidates []model.Movie
		for _, m := range movies {
			if !m.ReleaseDate.Before(cutoff) {
				candidates = append(candidates, m)
			}
		}
		theaters, err := tx.Theaters(ctx, store.TheaterQuery{})
		if err != nil {
			return err
		}

		detector := NewConflictDetector(tx)
		for _, theater := range theaters {
			program := a.program(theater, candidates)
			before := len(detector.Pending())

			for room := 1; room <= theater.Rooms; room++ {
				for _, sl := range slots {
					if a.rng.Intn(100) < a.opts.SkipPercent {
						continue
					}
					movie, err := a.choose(ctx, detector, theater.ID, program, sl.on(probeDay))
					if err != nil {
						return err
					}
					if movie == nil {
						continue
					}
					for d := 0; d < a.opts.ScheduleDays; d++ {
						day := today.AddDate(0, 0, d)
						start := sl.on(day)
						if start.Before(now) || movie.ReleaseDate.AfterDay(day) {
							continue
						}
						busy, err := detector.HasConflict(ctx, theater.ID, room, start, movie.Duration, 0)
						if err != nil {
							return err
						}
						if busy {
							continue
						}
						detector.Stage(&model.Session{
							Code:      uuid.NewString(),
							MovieId:   movie.ID,
							TheaterId: theater.ID,
							Room:      room,
							StartTime: start,
							Movie:     movie,
						})
					}
				}
			}
			a.log.Debug("theater scheduled",
				zap.Uint("theaterId", theater.ID),
				zap.Int("movies", len(program)),
				zap.Int("sessions", len(detector.Pending())-before))
		}

		created = detector.Pending()
		return tx.CreateSessions(ctx, created)
	})
	if err != nil {
		return 0, err
	}

	a.log.Info("schedule generated", zap.Int("sessions", len(created)))
	a.emit(ctx, events.ScheduleGenerated, map[string]int{"sessions": len(created)})
	return len(created), nil
}

// choose returns the most popular movie of the program not already starting at probe in this theater.
func (a *AutoScheduler) choose(ctx context.Context, detector *ConflictDetector, theaterId uint, program []model.Movie, probe time.Time) (*model.Movie, error) {
	for i := range program {
		showing, err := detector.Showing(ctx, theaterId, program[i].ID, probe)
		if err != nil {
			return nil, err
		}
		if !showing {
			return &program[i], nil
		}
	}
	return nil, nil
}
