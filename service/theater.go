package service

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/events"
	"cinema_scheduler/model"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"context"

	"github.com/jinzhu/copier"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type TheaterService struct {
	deps
}

func NewTheaterService(st store.Store, clock clockwork.Clock, pub events.Publisher, log *zap.Logger) *TheaterService {
	return &TheaterService{deps: newDeps(st, clock, pub, log)}
}

func (s *TheaterService) Create(ctx context.Context, in model.CreateTheaterInput) (*model.Theater, error) {
	var created *model.Theater
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		address, err := tx.Address(ctx, in.AddressId, false)
		if err != nil {
			return err
		}
		if address == nil {
			return fail(KindNotFound, constants.ADDRESS_NOT_FOUND)
		}
		owner, err := tx.TheaterByAddress(ctx, address.ID)
		if err != nil {
			return err
		}
		if owner != nil {
			return fail(KindTheaterLinked, constants.ADDRESS_ALREADY_LINKED, owner.Name)
		}
		slug, err := utils.UniqueSlug(ctx, in.Name, tx.TheaterSlugTaken)
		if err != nil {
			return err
		}
		theater := &model.Theater{Name: in.Name, Slug: slug, Rooms: in.Rooms, AddressId: address.ID}
		if err := tx.CreateTheater(ctx, theater); err != nil {
			return err
		}
		theater.Address = address
		created = theater
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *TheaterService) Get(ctx context.Context, id uint) (*model.Theater, error) {
	theater, err := s.store.Theater(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fail(KindNotFound, constants.THEATER_NOT_FOUND)
	}
	return theater, nil
}

func (s *TheaterService) Update(ctx context.Context, id uint, in model.UpdateTheaterInput) (*model.Theater, error) {
	var updated *model.Theater
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		theater, err := tx.Theater(ctx, id, false)
		if err != nil {
			return err
		}
		if theater == nil {
			return fail(KindNotFound, constants.THEATER_NOT_FOUND)
		}
		if err := copier.CopyWithOption(theater, &in, copier.Option{IgnoreEmpty: true}); err != nil {
			return err
		}
		updated = theater
		return tx.UpdateTheater(ctx, theater)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft deletes a theater with no upcoming sessions.
func (s *TheaterService) Delete(ctx context.Context, id uint) error {
	return s.store.WithTx(ctx, func(tx store.Store) error {
		theater, err := tx.Theater(ctx, id, false)
		if err != nil {
			return err
		}
		if theater == nil {
			return fail(KindNotFound, constants.THEATER_NOT_FOUND)
		}
		now := s.clock.Now()
		upcoming, err := tx.CountSessions(ctx, store.SessionCount{TheaterId: &theater.ID, StartAfter: &now})
		if err != nil {
			return err
		}
		if upcoming > 0 {
			return fail(KindLinkedSessionsExist, constants.THEATER_HAS_FUTURE_SESSIONS)
		}
		theater.MarkDeleted(now)
		return tx.UpdateTheater(ctx, theater)
	})
}

func (s *TheaterService) List(ctx context.Context, filter model.FilterTheater) ([]model.Theater, error) {
	skip, take := utils.Window(filter.Skip, filter.Take, DefaultListTake)
	return s.store.Theaters(ctx, store.TheaterQuery{AddressId: filter.AddressId, Skip: skip, Take: take})
}
