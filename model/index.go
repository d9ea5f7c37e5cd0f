package model

import "time"

// Deletable is implemented by every entity that is soft deleted instead of removed.
type Deletable interface {
	IsVisible(includeDeleted bool) bool
}

type DTO struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

func (d DTO) IsVisible(includeDeleted bool) bool {
	return includeDeleted || d.DeletedAt == nil
}

func (d DTO) IsDeleted() bool {
	return d.DeletedAt != nil
}

func (d *DTO) MarkDeleted(at time.Time) {
	d.DeletedAt = &at
}

type TokenClaim struct {
	AccountId uint   `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Principal is the caller of an operation as seen by the services.
type Principal struct {
	UserID string
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Pagination struct {
	Skip *int `query:"skip" json:"skip" validate:"omitempty,gte=0"`
	Take *int `query:"take" json:"take" validate:"omitempty,gte=1,lte=500"`
}

type ResponseCustom struct {
	Rows any  `json:"rows"`
	Skip int  `json:"skip"`
	Take int  `json:"take"`
	Size int  `json:"size"`
	More bool `json:"more"`
}
