package handler

import (
	"cinema_scheduler/model"
	"cinema_scheduler/service"
	"cinema_scheduler/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetTheaters(c *fiber.Ctx) error {
	filter, ok := c.Locals("filterTheater").(model.FilterTheater)
	if !ok {
		return parseLocalsError(c)
	}
	theaters, err := h.Theaters.List(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page(theaters, filter.Pagination, service.DefaultListTake))
}

func (h *Handler) GetTheaterById(c *fiber.Ctx) error {
	theater, err := h.Theaters.Get(c.UserContext(), inputId(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, theater)
}

func (h *Handler) CreateTheater(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateTheater").(model.CreateTheaterInput)
	if !ok {
		return parseLocalsError(c)
	}
	theater, err := h.Theaters.Create(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, theater)
}

func (h *Handler) EditTheater(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditTheater").(model.UpdateTheaterInput)
	if !ok {
		return parseLocalsError(c)
	}
	theater, err := h.Theaters.Update(c.UserContext(), inputId(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, theater)
}

func (h *Handler) DeleteTheater(c *fiber.Ctx) error {
	if err := h.Theaters.Delete(c.UserContext(), inputId(c)); err != nil {
		return h.fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Theater deleted", nil)
}
