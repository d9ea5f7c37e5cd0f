package service

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/events"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type SessionService struct {
	deps
}

func NewSessionService(st store.Store, clock clockwork.Clock, pub events.Publisher, log *zap.Logger) *SessionService {
	return &SessionService{deps: newDeps(st, clock, pub, log)}
}

func conflictError(s *model.Session) *Error {
	title := ""
	if s.Movie != nil {
		title = s.Movie.Title
	}
	return fail(KindScheduleConflict, constants.SESSION_ROOM_OCCUPIED,
		title,
		s.StartTime.Format("02/01/2006"),
		s.StartTime.Format("15:04"),
		s.EndTime().Format("15:04"),
	)
}

// Create checks references, then the room range, then overlaps, then that the start is not in the past.
func (s *SessionService) Create(ctx context.Context, in model.CreateSessionInput) (*model.Session, error) {
	var created *model.Session
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		movie, err := tx.Movie(ctx, in.MovieId, false)
		if err != nil {
			return err
		}
		if movie == nil {
			return fail(KindNotFound, constants.MOVIE_NOT_FOUND)
		}
		theater, err := tx.Theater(ctx, in.TheaterId, false)
		if err != nil {
			return err
		}
		if theater == nil {
			return fail(KindNotFound, constants.THEATER_NOT_FOUND)
		}
		if !theater.HasRoom(in.Room) {
			return fail(KindValidation, constants.SESSION_ROOM_NOT_EXIST, in.Room, theater.Name)
		}

		conflict, err := NewConflictDetector(tx).FindConflict(ctx, theater.ID, in.Room, in.StartTime, movie.Duration, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflictError(conflict)
		}
		if in.StartTime.Before(s.clock.Now()) {
			return fail(KindPastStartTime, constants.SESSION_IN_PAST)
		}

		session := &model.Session{
			Code:      uuid.NewString(),
			MovieId:   movie.ID,
			TheaterId: theater.ID,
			Room:      in.Room,
			StartTime: in.StartTime,
		}
		if err := tx.CreateSessions(ctx, []*model.Session{session}); err != nil {
			return err
		}
		session.Movie, session.Theater = movie, theater
		created = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("session created",
		zap.Uint("sessionId", created.ID),
		zap.Uint("theaterId", created.TheaterId),
		zap.Int("room", created.Room),
		zap.Time("start", created.StartTime))
	s.emit(ctx, events.SessionCreated, created)
	return created, nil
}

// Update moves a session to another movie, room or time inside its own theater.
// A zero MovieId keeps the current movie.
func (s *SessionService) Update(ctx context.Context, id uint, in model.UpdateSessionInput) (*model.Session, error) {
	var updated *model.Session
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		session, err := tx.Session(ctx, id, false)
		if err != nil {
			return err
		}
		if session == nil {
			return fail(KindNotFound, constants.SESSION_NOT_FOUND)
		}

		movieId := session.MovieId
		if in.MovieId != 0 {
			movieId = in.MovieId
		}
		movie, err := tx.Movie(ctx, movieId, false)
		if err != nil {
			return err
		}
		if movie == nil {
			return fail(KindNotFound, constants.MOVIE_NOT_FOUND)
		}
		if session.Theater != nil && !session.Theater.HasRoom(in.Room) {
			return fail(KindValidation, constants.SESSION_ROOM_NOT_EXIST, in.Room, session.Theater.Name)
		}

		conflict, err := NewConflictDetector(tx).FindConflict(ctx, session.TheaterId, in.Room, in.StartTime, movie.Duration, session.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return conflictError(conflict)
		}

		session.MovieId = movie.ID
		session.Room = in.Room
		session.StartTime = in.StartTime
		if err := tx.UpdateSession(ctx, session); err != nil {
			return err
		}
		session.Movie = movie
		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch applies only the supplied fields, then validates like Update.
func (s *SessionService) Patch(ctx context.Context, id uint, in model.PatchSessionInput) (*model.Session, error) {
	current, err := s.store.Session(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fail(KindNotFound, constants.SESSION_NOT_FOUND)
	}
	full := model.UpdateSessionInput{
		MovieId:   current.MovieId,
		Room:      current.Room,
		StartTime: current.StartTime,
	}
	if in.MovieId != nil {
		full.MovieId = *in.MovieId
	}
	if in.Room != nil {
		full.Room = *in.Room
	}
	if in.StartTime != nil {
		full.StartTime = *in.StartTime
	}
	return s.Update(ctx, id, full)
}

// Cancel soft deletes a session that has not started yet.
func (s *SessionService) Cancel(ctx context.Context, id uint, by model.Principal) error {
	var cancelled *model.Session
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		session, err := tx.Session(ctx, id, false)
		if err != nil {
			return err
		}
		if session == nil {
			return fail(KindNotFound, constants.SESSION_NOT_FOUND)
		}
		now := s.clock.Now()
		if !session.StartTime.After(now) {
			return fail(KindAlreadyElapsed, constants.SESSION_ALREADY_BEGUN)
		}
		session.MarkDeleted(now)
		session.DeletedBy = by.UserID
		cancelled = session
		return tx.UpdateSession(ctx, session)
	})
	if err != nil {
		return err
	}
	s.log.Info("session cancelled", zap.Uint("sessionId", id), zap.String("by", by.UserID))
	s.emit(ctx, events.SessionCancelled, cancelled)
	return nil
}

func (s *SessionService) Get(ctx context.Context, id uint) (*model.Session, error) {
	session, err := s.store.Session(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fail(KindNotFound, constants.SESSION_NOT_FOUND)
	}
	return session, nil
}

func (s *SessionService) Query(ctx context.Context, filter model.FilterSession) ([]model.Session, error) {
	skip, take := utils.Window(filter.Skip, filter.Take, DefaultSessionTake)
	q := store.SessionQuery{
		TheaterId: filter.TheaterId,
		MovieId:   filter.MovieId,
		Title:     filter.Title,
		Skip:      skip,
		Take:      take,
	}
	if filter.OnlyFuture {
		q.StartFrom = utils.Ptr(s.clock.Now())
	}
	return s.store.Sessions(ctx, q)
}
