package validate

import (
	"cinema_scheduler/model"

	"github.com/gofiber/fiber/v2"
)

func CreateSession() fiber.Handler { return body[model.CreateSessionInput]("inputCreateSession") }

func UpdateSession() fiber.Handler { return body[model.UpdateSessionInput]("inputUpdateSession") }

func PatchSession() fiber.Handler { return body[model.PatchSessionInput]("inputPatchSession") }

func FilterSession() fiber.Handler { return query[model.FilterSession]("filterSession") }
