package model

import "time"

type Session struct {
	DTO
	Code      string    `gorm:"size:36;uniqueIndex" json:"code"`
	MovieId   uint      `gorm:"not null;index" json:"movieId"`
	TheaterId uint      `gorm:"not null;index:idx_session_room" json:"theaterId"`
	Room      int       `gorm:"not null;index:idx_session_room" json:"room"`
	StartTime time.Time `gorm:"not null;index:idx_session_room" json:"startTime"`
	DeletedBy string    `gorm:"size:64" json:"deletedBy,omitempty"`
	Movie     *Movie    `gorm:"foreignKey:MovieId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"movie,omitempty"`
	Theater   *Theater  `gorm:"foreignKey:TheaterId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"theater,omitempty"`
}

type Sessions []Session

// EndTime is StartTime plus the movie duration; zero if the movie is not loaded.
func (s Session) EndTime() time.Time {
	if s.Movie == nil {
		return time.Time{}
	}
	return s.StartTime.Add(s.Movie.Runtime())
}

type CreateSessionInput struct {
	MovieId   uint      `json:"movieId" validate:"required"`
	TheaterId uint      `json:"theaterId" validate:"required"`
	Room      int       `json:"room" validate:"required,gte=1"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

// UpdateSessionInput replaces movie, room and start time. The theater never changes.
type UpdateSessionInput struct {
	MovieId   uint      `json:"movieId"`
	Room      int       `json:"room" validate:"required,gte=1"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type PatchSessionInput struct {
	MovieId   *uint      `json:"movieId" validate:"omitempty,gte=1"`
	Room      *int       `json:"room" validate:"omitempty,gte=1"`
	StartTime *time.Time `json:"startTime"`
}

type FilterSession struct {
	Pagination
	TheaterId  *uint  `query:"theaterId" json:"theaterId"`
	MovieId    *uint  `query:"movieId" json:"movieId"`
	Title      string `query:"title" json:"title"`
	OnlyFuture bool   `query:"onlyFuture" json:"onlyFuture"`
}
