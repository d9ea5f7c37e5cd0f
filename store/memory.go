package store

import (
	"cinema_scheduler/model"
	"cinema_scheduler/utils"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryState struct {
	nextID    uint
	movies    map[uint]model.Movie
	theaters  map[uint]model.Theater
	addresses map[uint]model.Address
	sessions  map[uint]model.Session
	accounts  map[uint]model.Account
}

func newMemoryState() *memoryState {
	return &memoryState{
		movies:    map[uint]model.Movie{},
		theaters:  map[uint]model.Theater{},
		addresses: map[uint]model.Address{},
		sessions:  map[uint]model.Session{},
		accounts:  map[uint]model.Account{},
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()
	c.nextID = s.nextID
	for k, v := range s.movies {
		c.movies[k] = v
	}
	for k, v := range s.theaters {
		c.theaters[k] = v
	}
	for k, v := range s.addresses {
		c.addresses[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	return c
}

func (s *memoryState) id() uint {
	s.nextID++
	return s.nextID
}

// MemoryStore is a Store held entirely in process. Relations are stored as ids
// and rebuilt on every read, so returned values never alias stored state.
type MemoryStore struct {
	mu   *sync.Mutex
	st   *memoryState
	inTx bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: &sync.Mutex{}, st: newMemoryState()}
}

func (m *MemoryStore) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *MemoryStore) WithTx(ctx context.Context, fn func(Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MemoryStore{mu: m.mu, st: m.st.clone(), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	m.st = tx.st
	return nil
}

func (m *MemoryStore) movieOut(mv model.Movie, withSessions, detail bool) model.Movie {
	mv.Sessions = nil
	if !withSessions {
		return mv
	}
	for _, s := range m.st.sessions {
		if s.MovieId != mv.ID || (s.IsDeleted() && !detail) {
			continue
		}
		if detail {
			if t, ok := m.st.theaters[s.TheaterId]; ok {
				t = m.theaterOut(t)
				s.Theater = &t
			}
		}
		mv.Sessions = append(mv.Sessions, s)
	}
	sortSessions(mv.Sessions)
	return mv
}

func (m *MemoryStore) theaterOut(t model.Theater) model.Theater {
	t.Sessions = nil
	t.Address = nil
	if a, ok := m.st.addresses[t.AddressId]; ok {
		t.Address = &a
	}
	return t
}

func (m *MemoryStore) sessionOut(s model.Session) model.Session {
	s.Movie, s.Theater = nil, nil
	if mv, ok := m.st.movies[s.MovieId]; ok {
		mv = m.movieOut(mv, false, false)
		s.Movie = &mv
	}
	if t, ok := m.st.theaters[s.TheaterId]; ok {
		t = m.theaterOut(t)
		s.Theater = &t
	}
	return s
}

func sortSessions(sessions []model.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].StartTime.Before(sessions[j].StartTime)
		}
		return sessions[i].ID < sessions[j].ID
	})
}

func stamp(dto *model.DTO, id uint) {
	now := time.Now()
	if dto.ID == 0 {
		dto.ID = id
		dto.CreatedAt = now
	}
	dto.UpdatedAt = now
}

func (m *MemoryStore) Movie(ctx context.Context, id uint, includeDeleted bool) (*model.Movie, error) {
	defer m.lock()()
	mv, ok := m.st.movies[id]
	if !ok || !mv.IsVisible(includeDeleted) {
		return nil, nil
	}
	out := m.movieOut(mv, false, false)
	return &out, nil
}

func (m *MemoryStore) MovieByTitle(ctx context.Context, title string) (*model.Movie, error) {
	defer m.lock()()
	for _, mv := range m.st.movies {
		if mv.Title == title {
			out := m.movieOut(mv, false, false)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) MovieSlugTaken(ctx context.Context, slug string) (bool, error) {
	defer m.lock()()
	for _, mv := range m.st.movies {
		if mv.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Movies(ctx context.Context, q MovieQuery) ([]model.Movie, error) {
	defer m.lock()()
	movies := []model.Movie{}
	for _, mv := range m.st.movies {
		if !mv.IsVisible(q.IncludeDeleted) {
			continue
		}
		if q.Title != "" && !strings.Contains(mv.Title, q.Title) {
			continue
		}
		movies = append(movies, m.movieOut(mv, q.WithSessions, q.WithSessionDetail))
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (m *MemoryStore) CreateMovies(ctx context.Context, movies []*model.Movie) error {
	defer m.lock()()
	for _, mv := range movies {
		stamp(&mv.DTO, m.st.id())
		stored := *mv
		stored.Sessions = nil
		m.st.movies[mv.ID] = stored
	}
	return nil
}

func (m *MemoryStore) UpdateMovie(ctx context.Context, movie *model.Movie) error {
	defer m.lock()()
	if _, ok := m.st.movies[movie.ID]; !ok {
		return fmt.Errorf("movie %d does not exist", movie.ID)
	}
	stamp(&movie.DTO, 0)
	stored := *movie
	stored.Sessions = nil
	m.st.movies[movie.ID] = stored
	return nil
}

func (m *MemoryStore) DeleteMovie(ctx context.Context, id uint) error {
	defer m.lock()()
	for _, s := range m.st.sessions {
		if s.MovieId == id {
			return fmt.Errorf("movie %d is referenced by session %d", id, s.ID)
		}
	}
	delete(m.st.movies, id)
	return nil
}

func (m *MemoryStore) Theater(ctx context.Context, id uint, includeDeleted bool) (*model.Theater, error) {
	defer m.lock()()
	t, ok := m.st.theaters[id]
	if !ok || !t.IsVisible(includeDeleted) {
		return nil, nil
	}
	out := m.theaterOut(t)
	return &out, nil
}

func (m *MemoryStore) TheaterByAddress(ctx context.Context, addressId uint) (*model.Theater, error) {
	defer m.lock()()
	for _, t := range m.st.theaters {
		if t.AddressId == addressId && !t.IsDeleted() {
			out := m.theaterOut(t)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) TheaterSlugTaken(ctx context.Context, slug string) (bool, error) {
	defer m.lock()()
	for _, t := range m.st.theaters {
		if t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Theaters(ctx context.Context, q TheaterQuery) ([]model.Theater, error) {
	defer m.lock()()
	theaters := []model.Theater{}
	for _, t := range m.st.theaters {
		if !t.IsVisible(q.IncludeDeleted) {
			continue
		}
		if q.AddressId != nil && t.AddressId != *q.AddressId {
			continue
		}
		theaters = append(theaters, m.theaterOut(t))
	}
	sort.Slice(theaters, func(i, j int) bool {
		if theaters[i].Name != theaters[j].Name {
			return theaters[i].Name < theaters[j].Name
		}
		return theaters[i].ID < theaters[j].ID
	})
	return utils.Page(theaters, q.Skip, q.Take), nil
}

// addressTaken mirrors the partial unique index on live theaters.
func (m *MemoryStore) addressTaken(theater *model.Theater) error {
	for id, t := range m.st.theaters {
		if id != theater.ID && t.AddressId == theater.AddressId && !t.IsDeleted() && !theater.IsDeleted() {
			return fmt.Errorf("address %d already belongs to theater %d", theater.AddressId, id)
		}
	}
	return nil
}

func (m *MemoryStore) CreateTheater(ctx context.Context, theater *model.Theater) error {
	defer m.lock()()
	if err := m.addressTaken(theater); err != nil {
		return err
	}
	stamp(&theater.DTO, m.st.id())
	stored := *theater
	stored.Address, stored.Sessions = nil, nil
	m.st.theaters[theater.ID] = stored
	return nil
}

func (m *MemoryStore) UpdateTheater(ctx context.Context, theater *model.Theater) error {
	defer m.lock()()
	if _, ok := m.st.theaters[theater.ID]; !ok {
		return fmt.Errorf("theater %d does not exist", theater.ID)
	}
	if err := m.addressTaken(theater); err != nil {
		return err
	}
	stamp(&theater.DTO, 0)
	stored := *theater
	stored.Address, stored.Sessions = nil, nil
	m.st.theaters[theater.ID] = stored
	return nil
}

func (m *MemoryStore) Address(ctx context.Context, id uint, includeDeleted bool) (*model.Address, error) {
	defer m.lock()()
	a, ok := m.st.addresses[id]
	if !ok || !a.IsVisible(includeDeleted) {
		return nil, nil
	}
	return &a, nil
}

func (m *MemoryStore) Addresses(ctx context.Context, q AddressQuery) ([]model.Address, error) {
	defer m.lock()()
	addresses := []model.Address{}
	for _, a := range m.st.addresses {
		if a.IsVisible(q.IncludeDeleted) {
			addresses = append(addresses, a)
		}
	}
	sort.Slice(addresses, func(i, j int) bool {
		if addresses[i].Street != addresses[j].Street {
			return addresses[i].Street < addresses[j].Street
		}
		return addresses[i].ID < addresses[j].ID
	})
	return utils.Page(addresses, q.Skip, q.Take), nil
}

func (m *MemoryStore) CreateAddress(ctx context.Context, address *model.Address) error {
	defer m.lock()()
	stamp(&address.DTO, m.st.id())
	m.st.addresses[address.ID] = *address
	return nil
}

func (m *MemoryStore) UpdateAddress(ctx context.Context, address *model.Address) error {
	defer m.lock()()
	if _, ok := m.st.addresses[address.ID]; !ok {
		return fmt.Errorf("address %d does not exist", address.ID)
	}
	stamp(&address.DTO, 0)
	m.st.addresses[address.ID] = *address
	return nil
}

func (m *MemoryStore) Session(ctx context.Context, id uint, includeDeleted bool) (*model.Session, error) {
	defer m.lock()()
	s, ok := m.st.sessions[id]
	if !ok || !s.IsVisible(includeDeleted) {
		return nil, nil
	}
	out := m.sessionOut(s)
	return &out, nil
}

func (m *MemoryStore) Sessions(ctx context.Context, q SessionQuery) ([]model.Session, error) {
	defer m.lock()()
	title := strings.ToLower(q.Title)
	sessions := []model.Session{}
	for _, s := range m.st.sessions {
		if !s.IsVisible(q.IncludeDeleted) {
			continue
		}
		if q.TheaterId != nil && s.TheaterId != *q.TheaterId {
			continue
		}
		if q.MovieId != nil && s.MovieId != *q.MovieId {
			continue
		}
		if q.StartFrom != nil && s.StartTime.Before(*q.StartFrom) {
			continue
		}
		out := m.sessionOut(s)
		if title != "" && (out.Movie == nil || !strings.Contains(strings.ToLower(out.Movie.Title), title)) {
			continue
		}
		sessions = append(sessions, out)
	}
	sortSessions(sessions)
	return utils.Page(sessions, q.Skip, q.Take), nil
}

func (m *MemoryStore) RoomSessions(ctx context.Context, theaterId uint, room int, from, to time.Time) ([]model.Session, error) {
	defer m.lock()()
	sessions := []model.Session{}
	for _, s := range m.st.sessions {
		if s.IsDeleted() || s.TheaterId != theaterId || s.Room != room {
			continue
		}
		if s.StartTime.Before(from) || !s.StartTime.Before(to) {
			continue
		}
		sessions = append(sessions, m.sessionOut(s))
	}
	sortSessions(sessions)
	return sessions, nil
}

func (m *MemoryStore) CountSessions(ctx context.Context, q SessionCount) (int64, error) {
	defer m.lock()()
	var count int64
	for _, s := range m.st.sessions {
		if !s.IsVisible(q.IncludeDeleted) {
			continue
		}
		if q.MovieId != nil && s.MovieId != *q.MovieId {
			continue
		}
		if q.TheaterId != nil && s.TheaterId != *q.TheaterId {
			continue
		}
		if q.StartAfter != nil && !s.StartTime.After(*q.StartAfter) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MemoryStore) CreateSessions(ctx context.Context, sessions []*model.Session) error {
	defer m.lock()()
	for _, s := range sessions {
		if _, ok := m.st.movies[s.MovieId]; !ok {
			return fmt.Errorf("session references missing movie %d", s.MovieId)
		}
		if _, ok := m.st.theaters[s.TheaterId]; !ok {
			return fmt.Errorf("session references missing theater %d", s.TheaterId)
		}
	}
	for _, s := range sessions {
		stamp(&s.DTO, m.st.id())
		stored := *s
		stored.Movie, stored.Theater = nil, nil
		m.st.sessions[s.ID] = stored
	}
	return nil
}

func (m *MemoryStore) UpdateSession(ctx context.Context, session *model.Session) error {
	defer m.lock()()
	if _, ok := m.st.sessions[session.ID]; !ok {
		return fmt.Errorf("session %d does not exist", session.ID)
	}
	stamp(&session.DTO, 0)
	stored := *session
	stored.Movie, stored.Theater = nil, nil
	m.st.sessions[session.ID] = stored
	return nil
}

func (m *MemoryStore) AccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	defer m.lock()()
	for _, a := range m.st.accounts {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) CreateAccount(ctx context.Context, account *model.Account) error {
	defer m.lock()()
	for _, a := range m.st.accounts {
		if a.Username == account.Username {
			return fmt.Errorf("username %q already exists", account.Username)
		}
	}
	stamp(&account.DTO, m.st.id())
	m.st.accounts[account.ID] = *account
	return nil
}
