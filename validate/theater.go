package validate

import (
	"cinema_scheduler/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTheater() fiber.Handler { return body[model.CreateTheaterInput]("inputCreateTheater") }

func EditTheater() fiber.Handler { return body[model.UpdateTheaterInput]("inputEditTheater") }

func FilterTheater() fiber.Handler { return query[model.FilterTheater]("filterTheater") }

func CreateAddress() fiber.Handler { return body[model.CreateAddressInput]("inputCreateAddress") }

func EditAddress() fiber.Handler { return body[model.UpdateAddressInput]("inputEditAddress") }

func FilterAddress() fiber.Handler { return query[model.FilterAddress]("filterAddress") }
