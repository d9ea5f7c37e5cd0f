package validate

import (
	"cinema_scheduler/model"

	"github.com/gofiber/fiber/v2"
)

func CreateMovie() fiber.Handler { return body[model.CreateMovieInput]("inputCreateMovie") }

func EditMovie() fiber.Handler { return body[model.UpdateMovieInput]("inputEditMovie") }

func FilterMovie() fiber.Handler { return query[model.FilterMovie]("filterMovie") }
