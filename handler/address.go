package handler

import (
	"cinema_scheduler/model"
	"cinema_scheduler/service"
	"cinema_scheduler/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetAddresses(c *fiber.Ctx) error {
	filter, ok := c.Locals("filterAddress").(model.FilterAddress)
	if !ok {
		return parseLocalsError(c)
	}
	addresses, err := h.Addresses.List(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, page(addresses, filter.Pagination, service.DefaultListTake))
}

func (h *Handler) GetAddressById(c *fiber.Ctx) error {
	address, err := h.Addresses.Get(c.UserContext(), inputId(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, address)
}

func (h *Handler) CreateAddress(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateAddress").(model.CreateAddressInput)
	if !ok {
		return parseLocalsError(c)
	}
	address, err := h.Addresses.Create(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, address)
}

func (h *Handler) EditAddress(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditAddress").(model.UpdateAddressInput)
	if !ok {
		return parseLocalsError(c)
	}
	address, err := h.Addresses.Update(c.UserContext(), inputId(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, address)
}

func (h *Handler) DeleteAddress(c *fiber.Ctx) error {
	if err := h.Addresses.Delete(c.UserContext(), inputId(c)); err != nil {
		return h.fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Address deleted", nil)
}
