package validate

import (
	"cinema_scheduler/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler { return body[model.RegisterInput]("inputRegister") }

func Login() fiber.Handler { return body[model.LoginInput]("inputLogin") }
