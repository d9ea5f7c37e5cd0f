package handler

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/middleware"
	"cinema_scheduler/model"
	"cinema_scheduler/service"
	"cinema_scheduler/utils"

	"github.com/gofiber/fiber/v2"
)

func page[T any](rows []T, p model.Pagination, defaultTake int) *model.ResponseCustom {
	skip, take := utils.Window(p.Skip, p.Take, defaultTake)
	return &model.ResponseCustom{
		Rows: rows,
		Skip: skip,
		Take: take,
		Size: len(rows),
		More: len(rows) == take,
	}
}

func isAdmin(c *fiber.Ctx) bool {
	principal, ok := middleware.GetPrincipal(c)
	return ok && principal.HasRole(constants.ROLE_ADMIN)
}

// GetMovies lists movies. Administrators also see removed movies with full session detail.
func (h *Handler) GetMovies(c *fiber.Ctx) error {
	filter, ok := c.Locals("filterMovie").(model.FilterMovie)
	if !ok {
		return parseLocalsError(c)
	}
	movies, err := h.Movies.List(c.UserContext(), filter, isAdmin(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page(movies, filter.Pagination, service.DefaultMovieTake))
}

func (h *Handler) GetMovieById(c *fiber.Ctx) error {
	movie, err := h.Movies.Get(c.UserContext(), inputId(c), isAdmin(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) CreateMovie(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateMovie").(model.CreateMovieInput)
	if !ok {
		return parseLocalsError(c)
	}
	movie, err := h.Movies.Create(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, movie)
}

func (h *Handler) EditMovie(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditMovie").(model.UpdateMovieInput)
	if !ok {
		return parseLocalsError(c)
	}
	movie, err := h.Movies.Update(c.UserContext(), inputId(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

// DeleteMovie removes a movie; ?force=true confirms removing one that never had sessions.
func (h *Handler) DeleteMovie(c *fiber.Ctx) error {
	outcome, err := h.Movies.Delete(c.UserContext(), inputId(c), c.QueryBool("force"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Movie deleted", fiber.Map{"mode": outcome.String()})
}
