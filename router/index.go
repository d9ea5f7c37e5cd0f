package router

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/handler"
	"cinema_scheduler/middleware"
	"cinema_scheduler/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}
	protected := middleware.Protected(h.Tokens)
	optional := middleware.OptionalAuth(h.Tokens)
	admin := middleware.RequireRole(constants.ROLE_ADMIN)

	api := app.Group("/api", requestid.New(), logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), h.Register)
	auth.Post("/login", validate.Login(), h.Login)

	account := v1.Group("/account")
	account.Get("/me", protected, h.Me)

	movie := v1.Group("/movie")
	movie.Get("/", optional, validate.FilterMovie(), h.GetMovies)
	movie.Get("/:movieId", optional, validate.GetById("movieId"), h.GetMovieById)
	movie.Post("/", protected, admin, validate.CreateMovie(), h.CreateMovie)
	movie.Put("/:movieId", protected, admin, validate.GetById("movieId"), validate.EditMovie(), h.EditMovie)
	movie.Delete("/:movieId", protected, admin, validate.GetById("movieId"), h.DeleteMovie)

	theater := v1.Group("/theater")
	theater.Get("/", validate.FilterTheater(), h.GetTheaters)
	theater.Get("/:theaterId", validate.GetById("theaterId"), h.GetTheaterById)
	theater.Post("/", protected, admin, validate.CreateTheater(), h.CreateTheater)
	theater.Put("/:theaterId", protected, admin, validate.GetById("theaterId"), validate.EditTheater(), h.EditTheater)
	theater.Delete("/:theaterId", protected, admin, validate.GetById("theaterId"), h.DeleteTheater)

	address := v1.Group("/address")
	address.Get("/", validate.FilterAddress(), h.GetAddresses)
	address.Get("/:addressId", validate.GetById("addressId"), h.GetAddressById)
	address.Post("/", protected, admin, validate.CreateAddress(), h.CreateAddress)
	address.Put("/:addressId", protected, admin, validate.GetById("addressId"), validate.EditAddress(), h.EditAddress)
	address.Delete("/:addressId", protected, admin, validate.GetById("addressId"), h.DeleteAddress)

	session := v1.Group("/session")
	session.Get("/", validate.FilterSession(), h.GetSessions)
	session.Get("/:sessionId", validate.GetById("sessionId"), h.GetSessionById)
	session.Post("/", protected, admin, validate.CreateSession(), h.CreateSession)
	session.Put("/:sessionId", protected, admin, validate.GetById("sessionId"), validate.UpdateSession(), h.UpdateSession)
	session.Patch("/:sessionId", protected, admin, validate.GetById("sessionId"), validate.PatchSession(), h.PatchSession)
	session.Delete("/:sessionId", protected, admin, validate.GetById("sessionId"), h.CancelSession)

	schedule := v1.Group("/schedule")
	schedule.Post("/generate", protected, admin, h.GenerateSchedule)

	catalog := v1.Group("/catalog")
	catalog.Post("/import", protected, admin, h.ImportCatalog)
}
