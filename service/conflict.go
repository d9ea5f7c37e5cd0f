package service

import (
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"context"
	"time"
)

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Touching ends do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

type roomKey struct {
	theaterId uint
	room      int
}

// ConflictDetector finds sessions occupying a room. Besides the store it
// consults sessions staged during the current batch that are not saved yet.
type ConflictDetector struct {
	sessions store.SessionStore
	pending  map[roomKey][]*model.Session
	order    []*model.Session
}

func NewConflictDetector(sessions store.SessionStore) *ConflictDetector {
	return &ConflictDetector{
		sessions: sessions,
		pending:  map[roomKey][]*model.Session{},
	}
}

// Stage records a session that will be saved later. Its Movie must be set.
func (d *ConflictDetector) Stage(s *model.Session) {
	key := roomKey{s.TheaterId, s.Room}
	d.pending[key] = append(d.pending[key], s)
	d.order = append(d.order, s)
}

// Pending returns staged sessions in the order they were staged.
func (d *ConflictDetector) Pending() []*model.Session {
	return d.order
}

func (d *ConflictDetector) FindConflict(ctx context.Context, theaterId uint, room int, start time.Time, durationMinutes int, excludeId uint) (*model.Session, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	for _, p := range d.pending[roomKey{theaterId, room}] {
		if excludeId != 0 && p.ID == excludeId {
			continue
		}
		if Overlaps(start, end, p.StartTime, p.EndTime()) {
			return p, nil
		}
	}

	// Nothing longer than MaxMovieDuration can start earlier and still reach start.
	from := start.Add(-time.Duration(model.MaxMovieDuration) * time.Minute)
	persisted, err := d.sessions.RoomSessions(ctx, theaterId, room, from, end)
	if err != nil {
		return nil, err
	}
	for i := range persisted {
		s := &persisted[i]
		if excludeId != 0 && s.ID == excludeId {
			continue
		}
		if Overlaps(start, end, s.StartTime, s.EndTime()) {
			return s, nil
		}
	}
	return nil, nil
}

func (d *ConflictDetector) HasConflict(ctx context.Context, theaterId uint, room int, start time.Time, durationMinutes int, excludeId uint) (bool, error) {
	s, err := d.FindConflict(ctx, theaterId, room, start, durationMinutes, excludeId)
	return s != nil, err
}

// Showing reports whether the movie already starts at exactly at in any room of the theater.
func (d *ConflictDetector) Showing(ctx context.Context, theaterId, movieId uint, at time.Time) (bool, error) {
	for _, p := range d.order {
		if p.TheaterId == theaterId && p.MovieId == movieId && p.StartTime.Equal(at) {
			return true, nil
		}
	}
	found, err := d.sessions.Sessions(ctx, store.SessionQuery{
		TheaterId: &theaterId,
		MovieId:   &movieId,
		StartFrom: &at,
		Take:      1,
	})
	if err != nil {
		return false, err
	}
	return len(found) > 0 && found[0].StartTime.Equal(at), nil
}
