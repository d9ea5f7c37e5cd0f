package model

type Address struct {
	DTO
	Street string `gorm:"not null;index" json:"street"`
	Number int    `json:"number"`
}

type Addresses []Address

type CreateAddressInput struct {
	Street string `json:"street" validate:"required,max=200"`
	Number int    `json:"number" validate:"gte=0"`
}

type UpdateAddressInput struct {
	Street *string `json:"street" validate:"omitempty,max=200"`
	Number *int    `json:"number" validate:"omitempty,gte=0"`
}

type FilterAddress struct {
	Pagination
}
