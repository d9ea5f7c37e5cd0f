// Package store is the persistence boundary of the scheduler. GormStore backs
// it with Postgres; MemoryStore keeps everything in process for tests and tools.
package store

import (
	"cinema_scheduler/model"
	"context"
	"time"
)

type MovieQuery struct {
	Title          string
	IncludeDeleted bool
	// WithSessions attaches non-cancelled sessions to every movie.
	WithSessions bool
	// WithSessionDetail attaches cancelled sessions too and loads theater and address on them.
	WithSessionDetail bool
}

type SessionQuery struct {
	TheaterId      *uint
	MovieId        *uint
	Title          string
	StartFrom      *time.Time
	IncludeDeleted bool
	Skip           int
	Take           int
}

type SessionCount struct {
	MovieId        *uint
	TheaterId      *uint
	StartAfter     *time.Time
	IncludeDeleted bool
}

type TheaterQuery struct {
	AddressId      *uint
	IncludeDeleted bool
	Skip           int
	Take           int
}

type AddressQuery struct {
	IncludeDeleted bool
	Skip           int
	Take           int
}

// Lookups return (nil, nil) when nothing matches.
type MovieStore interface {
	Movie(ctx context.Context, id uint, includeDeleted bool) (*model.Movie, error)
	MovieByTitle(ctx context.Context, title string) (*model.Movie, error)
	MovieSlugTaken(ctx context.Context, slug string) (bool, error)
	Movies(ctx context.Context, q MovieQuery) ([]model.Movie, error)
	CreateMovies(ctx context.Context, movies []*model.Movie) error
	UpdateMovie(ctx context.Context, movie *model.Movie) error
	DeleteMovie(ctx context.Context, id uint) error
}

type TheaterStore interface {
	Theater(ctx context.Context, id uint, includeDeleted bool) (*model.Theater, error)
	TheaterByAddress(ctx context.Context, addressId uint) (*model.Theater, error)
	TheaterSlugTaken(ctx context.Context, slug string) (bool, error)
	Theaters(ctx context.Context, q TheaterQuery) ([]model.Theater, error)
	CreateTheater(ctx context.Context, theater *model.Theater) error
	UpdateTheater(ctx context.Context, theater *model.Theater) error
}

type AddressStore interface {
	Address(ctx context.Context, id uint, includeDeleted bool) (*model.Address, error)
	Addresses(ctx context.Context, q AddressQuery) ([]model.Address, error)
	CreateAddress(ctx context.Context, address *model.Address) error
	UpdateAddress(ctx context.Context, address *model.Address) error
}

type SessionStore interface {
	Session(ctx context.Context, id uint, includeDeleted bool) (*model.Session, error)
	Sessions(ctx context.Context, q SessionQuery) ([]model.Session, error)
	// RoomSessions lists non-cancelled sessions of one room starting in [from, to), movie loaded.
	RoomSessions(ctx context.Context, theaterId uint, room int, from, to time.Time) ([]model.Session, error)
	CountSessions(ctx context.Context, q SessionCount) (int64, error)
	CreateSessions(ctx context.Context, sessions []*model.Session) error
	UpdateSession(ctx context.Context, session *model.Session) error
}

type AccountStore interface {
	AccountByUsername(ctx context.Context, username string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
}

type Store interface {
	MovieStore
	TheaterStore
	AddressStore
	SessionStore
	AccountStore

	// WithTx runs fn inside one unit of work; any error rolls every write back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
