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

type AddressService struct {
	deps
}

func NewAddressService(st store.Store, clock clockwork.Clock, pub events.Publisher, log *zap.Logger) *AddressService {
	return &AddressService{deps: newDeps(st, clock, pub, log)}
}

func (s *AddressService) Create(ctx context.Context, in model.CreateAddressInput) (*model.Address, error) {
	address := &model.Address{Street: in.Street, Number: in.Number}
	if err := s.store.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AddressService) Get(ctx context.Context, id uint) (*model.Address, error) {
	address, err := s.store.Address(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, fail(KindNotFound, constants.ADDRESS_NOT_FOUND)
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, id uint, in model.UpdateAddressInput) (*model.Address, error) {
	var updated *model.Address
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		address, err := tx.Address(ctx, id, false)
		if err != nil {
			return err
		}
		if address == nil {
			return fail(KindNotFound, constants.ADDRESS_NOT_FOUND)
		}
		if err := copier.CopyWithOption(address, &in, copier.Option{IgnoreEmpty: true}); err != nil {
			return err
		}
		updated = address
		return tx.UpdateAddress(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft deletes an address no theater points at.
func (s *AddressService) Delete(ctx context.Context, id uint) error {
	return s.store.WithTx(ctx, func(tx store.Store) error {
		address, err := tx.Address(ctx, id, false)
		if err != nil {
			return err
		}
		if address == nil {
			return fail(KindNotFound, constants.ADDRESS_NOT_FOUND)
		}
		theater, err := tx.TheaterByAddress(ctx, address.ID)
		if err != nil {
			return err
		}
		if theater != nil {
			return fail(KindTheaterLinked, constants.ADDRESS_LINKED_TO_THEATER, theater.Name)
		}
		address.MarkDeleted(s.clock.Now())
		return tx.UpdateAddress(ctx, address)
	})
}

func (s *AddressService) List(ctx context.Context, filter model.FilterAddress) ([]model.Address, error) {
	skip, take := utils.Window(filter.Skip, filter.Take, DefaultListTake)
	return s.store.Addresses(ctx, store.AddressQuery{Skip: skip, Take: take})
}
