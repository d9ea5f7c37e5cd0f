package model

import (
	"cinema_scheduler/utils"
	"time"
)

const (
	MinMovieDuration = 60
	MaxMovieDuration = 600
)

type Movie struct {
	DTO
	Title       string           `gorm:"not null;index" json:"title"`
	Slug        string           `gorm:"uniqueIndex" json:"slug"`
	Genre       string           `gorm:"not null" json:"genre"`
	Duration    int              `gorm:"not null;check:duration >= 60 AND duration <= 600" json:"duration"`
	ReleaseDate utils.CustomDate `gorm:"type:date;not null" json:"releaseDate"`
	Popularity  float64          `gorm:"not null;default:0" json:"popularity"`
	PosterURL   string           `json:"posterUrl"`
	Synopsis    string           `gorm:"type:text" json:"synopsis"`
	ExternalId  int64            `gorm:"index" json:"externalId,omitempty"`
	Sessions    []Session        `gorm:"foreignKey:MovieId" json:"sessions,omitempty"`
}

type Movies []Movie

// Runtime returns the movie duration as a time.Duration.
func (m Movie) Runtime() time.Duration {
	return time.Duration(m.Duration) * time.Minute
}

type CreateMovieInput struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Genre       string           `json:"genre" validate:"required,max=50"`
	Duration    int              `json:"duration" validate:"required,gte=60,lte=600"`
	ReleaseDate utils.CustomDate `json:"releaseDate" validate:"required"`
	Popularity  float64          `json:"popularity" validate:"gte=0"`
	PosterURL   string           `json:"posterUrl" validate:"omitempty,url"`
	Synopsis    string           `json:"synopsis" validate:"omitempty,max=4000"`
}

// UpdateMovieInput carries only the fields being changed.
type UpdateMovieInput struct {
	Title       *string           `json:"title" validate:"omitempty,max=200"`
	Genre       *string           `json:"genre" validate:"omitempty,max=50"`
	Duration    *int              `json:"duration" validate:"omitempty,gte=60,lte=600"`
	ReleaseDate *utils.CustomDate `json:"releaseDate"`
	Popularity  *float64          `json:"popularity" validate:"omitempty,gte=0"`
	PosterURL   *string           `json:"posterUrl" validate:"omitempty,url"`
	Synopsis    *string           `json:"synopsis" validate:"omitempty,max=4000"`
}

type FilterMovie struct {
	Pagination
	TheaterId     *uint  `query:"theaterId" json:"theaterId"`
	Title         string `query:"title" json:"title"`
	OnlyAvailable bool   `query:"onlyAvailable" json:"onlyAvailable"`
}
