package handler

import (
	"cinema_scheduler/middleware"
	"cinema_scheduler/model"
	"cinema_scheduler/service"
	"cinema_scheduler/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetSessions(c *fiber.Ctx) error {
	filter, ok := c.Locals("filterSession").(model.FilterSession)
	if !ok {
		return parseLocalsError(c)
	}
	sessions, err := h.Sessions.Query(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page(sessions, filter.Pagination, service.DefaultSessionTake))
}

func (h *Handler) GetSessionById(c *fiber.Ctx) error {
	session, err := h.Sessions.Get(c.UserContext(), inputId(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateSession").(model.CreateSessionInput)
	if !ok {
		return parseLocalsError(c)
	}
	session, err := h.Sessions.Create(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, session)
}

func (h *Handler) UpdateSession(c *fiber.Ctx) error {
	input, ok := c.Locals("inputUpdateSession").(model.UpdateSessionInput)
	if !ok {
		return parseLocalsError(c)
	}
	session, err := h.Sessions.Update(c.UserContext(), inputId(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

func (h *Handler) PatchSession(c *fiber.Ctx) error {
	input, ok := c.Locals("inputPatchSession").(model.PatchSessionInput)
	if !ok {
		return parseLocalsError(c)
	}
	session, err := h.Sessions.Patch(c.UserContext(), inputId(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

func (h *Handler) CancelSession(c *fiber.Ctx) error {
	principal, _ := middleware.GetPrincipal(c)
	if err := h.Sessions.Cancel(c.UserContext(), inputId(c), principal); err != nil {
		return h.fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Session cancelled", nil)
}
