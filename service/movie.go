package service

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/events"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"context"
	"sort"

	"github.com/jinzhu/copier"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type DeleteOutcome int

const (
	SoftDeleted DeleteOutcome = iota + 1
	HardDeleted
)

func (o DeleteOutcome) String() string {
	switch o {
	case SoftDeleted:
		return "soft"
	case HardDeleted:
		return "hard"
	}
	return "none"
}

type MovieService struct {
	deps
	opts Options
}

func NewMovieService(st store.Store, clock clockwork.Clock, pub events.Publisher, log *zap.Logger, opts Options) *MovieService {
	return &MovieService{deps: newDeps(st, clock, pub, log), opts: opts}
}

func (s *MovieService) Create(ctx context.Context, in model.CreateMovieInput) (*model.Movie, error) {
	movie := &model.Movie{
		Title:       in.Title,
		Genre:       in.Genre,
		Duration:    in.Duration,
		ReleaseDate: in.ReleaseDate,
		Popularity:  in.Popularity,
		PosterURL:   in.PosterURL,
		Synopsis:    in.Synopsis,
	}
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		slug, err := utils.UniqueSlug(ctx, movie.Title, tx.MovieSlugTaken)
		if err != nil {
			return err
		}
		movie.Slug = slug
		return tx.CreateMovies(ctx, []*model.Movie{movie})
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Get(ctx context.Context, id uint, includeDeleted bool) (*model.Movie, error) {
	movie, err := s.store.Movie(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fail(KindNotFound, constants.MOVIE_NOT_FOUND)
	}
	return movie, nil
}

// Update applies the supplied fields. Changing the duration is refused once any
// session, cancelled or not, references the movie.
func (s *MovieService) Update(ctx context.Context, id uint, in model.UpdateMovieInput) (*model.Movie, error) {
	var updated *model.Movie
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		movie, err := tx.Movie(ctx, id, false)
		if err != nil {
			return err
		}
		if movie == nil {
			return fail(KindNotFound, constants.MOVIE_NOT_FOUND)
		}
		if in.Duration != nil && *in.Duration != movie.Duration {
			linked, err := tx.CountSessions(ctx, store.SessionCount{MovieId: &movie.ID, IncludeDeleted: true})
			if err != nil {
				return err
			}
			if linked > 0 {
				return fail(KindLinkedSessionsExist, constants.MOVIE_DURATION_LOCKED)
			}
		}
		if err := copier.CopyWithOption(movie, &in, copier.Option{IgnoreEmpty: true}); err != nil {
			return err
		}
		if movie.Duration < model.MinMovieDuration || movie.Duration > model.MaxMovieDuration {
			return fail(KindValidation, "duration must be between %d and %d minutes", model.MinMovieDuration, model.MaxMovieDuration)
		}
		updated = movie
		return tx.UpdateMovie(ctx, movie)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete refuses while sessions beyond the grace period are still scheduled.
// A movie with any session history is soft deleted; one without history is only
// removed for good when force is set.
func (s *MovieService) Delete(ctx context.Context, id uint, force bool) (DeleteOutcome, error) {
	var outcome DeleteOutcome
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		movie, err := tx.Movie(ctx, id, false)
		if err != nil {
			return err
		}
		if movie == nil {
			return fail(KindNotFound, constants.MOVIE_NOT_FOUND)
		}

		now := s.clock.Now()
		cutoff := now.Add(s.opts.GracePeriod)
		upcoming, err := tx.CountSessions(ctx, store.SessionCount{MovieId: &movie.ID, StartAfter: &cutoff})
		if err != nil {
			return err
		}
		if upcoming > 0 {
			return fail(KindLinkedSessionsExist, constants.MOVIE_HAS_FUTURE_SESSIONS)
		}

		history, err := tx.CountSessions(ctx, store.SessionCount{MovieId: &movie.ID, IncludeDeleted: true})
		if err != nil {
			return err
		}
		if history > 0 {
			movie.MarkDeleted(now)
			outcome = SoftDeleted
			return tx.UpdateMovie(ctx, movie)
		}
		if !force {
			return fail(KindConfirmationRequired, constants.CONFIRM_HARD_DELETE)
		}
		outcome = HardDeleted
		return tx.DeleteMovie(ctx, movie.ID)
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("movie deleted", zap.Uint("movieId", id), zap.Stringer("mode", outcome))
	return outcome, nil
}

// List filters movies for the catalog. Admin mode sees soft deleted movies and
// cancelled sessions with full detail, newest release first; otherwise the busiest
// movies come first.
func (s *MovieService) List(ctx context.Context, filter model.FilterMovie, admin bool) ([]model.Movie, error) {
	movies, err := s.store.Movies(ctx, store.MovieQuery{
		Title:             filter.Title,
		IncludeDeleted:    admin,
		WithSessions:      true,
		WithSessionDetail: admin,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if filter.TheaterId != nil && !playsAt(m.Sessions, *filter.TheaterId) {
			continue
		}
		if filter.OnlyAvailable {
			var upcoming []model.Session
			for _, session := range m.Sessions {
				if !session.IsDeleted() && !session.StartTime.Add(s.opts.GracePeriod).Before(now) {
					upcoming = append(upcoming, session)
				}
			}
			if len(upcoming) == 0 {
				continue
			}
			m.Sessions = upcoming
		}
		out = append(out, m)
	}

	if admin {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReleaseDate.After(out[j].ReleaseDate.Time)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			if len(out[i].Sessions) != len(out[j].Sessions) {
				return len(out[i].Sessions) > len(out[j].Sessions)
			}
			return out[i].Title < out[j].Title
		})
		if !filter.OnlyAvailable {
			for i := range out {
				out[i].Sessions = nil
			}
		}
	}

	skip, take := utils.Window(filter.Skip, filter.Take, DefaultMovieTake)
	return utils.Page(out, skip, take), nil
}

func playsAt(sessions []model.Session, theaterId uint) bool {
	for _, session := range sessions {
		if session.TheaterId == theaterId {
			return true
		}
	}
	return false
}
