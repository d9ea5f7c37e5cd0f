package model

type Theater struct {
	DTO
	Name      string    `gorm:"not null;index" json:"name"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	Rooms     int       `gorm:"not null;default:0" json:"rooms"`
	AddressId uint      `gorm:"not null;index" json:"addressId"`
	Address   *Address  `gorm:"foreignKey:AddressId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"address,omitempty"`
	Sessions  []Session `gorm:"foreignKey:TheaterId" json:"sessions,omitempty"`
}

type Theaters []Theater

// HasRoom reports whether room is a valid room number for the theater.
func (t Theater) HasRoom(room int) bool {
	return room >= 1 && room <= t.Rooms
}

type CreateTheaterInput struct {
	Name      string `json:"name" validate:"required,max=100"`
	Rooms     int    `json:"rooms" validate:"gte=0,lte=50"`
	AddressId uint   `json:"addressId" validate:"required"`
}

type UpdateTheaterInput struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Rooms *int    `json:"rooms" validate:"omitempty,gte=0,lte=50"`
}

type FilterTheater struct {
	Pagination
	AddressId *uint `query:"addressId" json:"addressId"`
}
