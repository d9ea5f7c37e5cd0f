package store

import (
	"cinema_scheduler/model"
	"cinema_scheduler/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func visible(table string, includeDeleted bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeDeleted {
			return db
		}
		return db.Where(table + ".deleted_at IS NULL")
	}
}

func first[T any](db *gorm.DB) (*T, error) {
	var out T
	if err := db.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *GormStore) Movie(ctx context.Context, id uint, includeDeleted bool) (*model.Movie, error) {
	return first[model.Movie](s.db.WithContext(ctx).Scopes(visible("movies", includeDeleted)).Where("movies.id = ?", id))
}

func (s *GormStore) MovieByTitle(ctx context.Context, title string) (*model.Movie, error) {
	return first[model.Movie](s.db.WithContext(ctx).Where("title = ?", title))
}

func (s *GormStore) MovieSlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Movie{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Movies(ctx context.Context, q MovieQuery) ([]model.Movie, error) {
	query := s.db.WithContext(ctx).Model(&model.Movie{}).Scopes(visible("movies", q.IncludeDeleted))
	if q.Title != "" {
		query = query.Where("movies.title LIKE ?", "%"+q.Title+"%")
	}
	if q.WithSessions {
		query = query.Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			if q.WithSessionDetail {
				db = db.Preload("Theater.Address")
			} else {
				db = db.Where("sessions.deleted_at IS NULL")
			}
			return db.Order("sessions.start_time ASC")
		})
	}
	var movies []model.Movie
	if err := query.Order("movies.id ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *GormStore) CreateMovies(ctx context.Context, movies []*model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(movies).Error
}

func (s *GormStore) UpdateMovie(ctx context.Context, movie *model.Movie) error {
	return s.db.WithContext(ctx).Omit("Sessions").Save(movie).Error
}

func (s *GormStore) DeleteMovie(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Movie{}, id).Error
}

func (s *GormStore) Theater(ctx context.Context, id uint, includeDeleted bool) (*model.Theater, error) {
	return first[model.Theater](s.db.WithContext(ctx).Preload("Address").Scopes(visible("theaters", includeDeleted)).Where("theaters.id = ?", id))
}

func (s *GormStore) TheaterByAddress(ctx context.Context, addressId uint) (*model.Theater, error) {
	return first[model.Theater](s.db.WithContext(ctx).Scopes(visible("theaters", false)).Where("address_id = ?", addressId))
}

func (s *GormStore) TheaterSlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Theater{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Theaters(ctx context.Context, q TheaterQuery) ([]model.Theater, error) {
	query := s.db.WithContext(ctx).Model(&model.Theater{}).
		Preload("Address").
		Scopes(visible("theaters", q.IncludeDeleted))
	if q.AddressId != nil {
		query = query.Where("theaters.address_id = ?", *q.AddressId)
	}
	var theaters []model.Theater
	err := utils.ApplyPagination(query.Order("theaters.name ASC"), q.Skip, q.Take).Find(&theaters).Error
	return theaters, err
}

func (s *GormStore) CreateTheater(ctx context.Context, theater *model.Theater) error {
	return s.db.WithContext(ctx).Omit("Address", "Sessions").Create(theater).Error
}

func (s *GormStore) UpdateTheater(ctx context.Context, theater *model.Theater) error {
	return s.db.WithContext(ctx).Omit("Address", "Sessions").Save(theater).Error
}

func (s *GormStore) Address(ctx context.Context, id uint, includeDeleted bool) (*model.Address, error) {
	return first[model.Address](s.db.WithContext(ctx).Scopes(visible("addresses", includeDeleted)).Where("addresses.id = ?", id))
}

func (s *GormStore) Addresses(ctx context.Context, q AddressQuery) ([]model.Address, error) {
	query := s.db.WithContext(ctx).Model(&model.Address{}).Scopes(visible("addresses", q.IncludeDeleted)).Order("street ASC")
	var addresses []model.Address
	err := utils.ApplyPagination(query, q.Skip, q.Take).Find(&addresses).Error
	return addresses, err
}

func (s *GormStore) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Create(address).Error
}

func (s *GormStore) UpdateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Save(address).Error
}

func (s *GormStore) Session(ctx context.Context, id uint, includeDeleted bool) (*model.Session, error) {
	return first[model.Session](s.db.WithContext(ctx).
		Preload("Movie").
		Preload("Theater").
		Scopes(visible("sessions", includeDeleted)).
		Where("sessions.id = ?", id))
}

func (s *GormStore) Sessions(ctx context.Context, q SessionQuery) ([]model.Session, error) {
	query := s.db.WithContext(ctx).Model(&model.Session{}).
		Joins("Movie").
		Preload("Theater").
		Scopes(visible("sessions", q.IncludeDeleted))
	if q.TheaterId != nil {
		query = query.Where("sessions.theater_id = ?", *q.TheaterId)
	}
	if q.MovieId != nil {
		query = query.Where("sessions.movie_id = ?", *q.MovieId)
	}
	if q.Title != "" {
		query = query.Where(`LOWER("Movie"."title") LIKE ?`, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.StartFrom != nil {
		query = query.Where("sessions.start_time >= ?", *q.StartFrom)
	}
	var sessions []model.Session
	err := utils.ApplyPagination(query.Order("sessions.start_time ASC"), q.Skip, q.Take).Find(&sessions).Error
	return sessions, err
}

func (s *GormStore) RoomSessions(ctx context.Context, theaterId uint, room int, from, to time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := s.db.WithContext(ctx).
		Joins("Movie").
		Where("sessions.deleted_at IS NULL").
		Where("sessions.theater_id = ? AND sessions.room = ?", theaterId, room).
		Where("sessions.start_time >= ? AND sessions.start_time < ?", from, to).
		Order("sessions.start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("load room %d of theater %d: %w", room, theaterId, err)
	}
	return sessions, nil
}

func (s *GormStore) CountSessions(ctx context.Context, q SessionCount) (int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Session{}).Scopes(visible("sessions", q.IncludeDeleted))
	if q.MovieId != nil {
		query = query.Where("movie_id = ?", *q.MovieId)
	}
	if q.TheaterId != nil {
		query = query.Where("theater_id = ?", *q.TheaterId)
	}
	if q.StartAfter != nil {
		query = query.Where("start_time > ?", *q.StartAfter)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (s *GormStore) CreateSessions(ctx context.Context, sessions []*model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Omit("Movie", "Theater").CreateInBatches(sessions, 200).Error
}

func (s *GormStore) UpdateSession(ctx context.Context, session *model.Session) error {
	return s.db.WithContext(ctx).Omit("Movie", "Theater").Save(session).Error
}

func (s *GormStore) AccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return first[model.Account](s.db.WithContext(ctx).Where(&model.Account{Username: username}))
}

func (s *GormStore) CreateAccount(ctx context.Context, account *model.Account) error {
	return s.db.WithContext(ctx).Create(account).Error
}
