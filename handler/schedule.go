package handler

import (
	"cinema_scheduler/cache"
	"cinema_scheduler/constants"
	"cinema_scheduler/helper"
	"cinema_scheduler/service"
	"cinema_scheduler/utils"
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// GenerateSchedule runs the automatic scheduler unless a run is already in progress.
func (h *Handler) GenerateSchedule(c *fiber.Ctx) error {
	var created int
	err := helper.RunExclusive(c.UserContext(), h.Locker, helper.ScheduleLock, func(ctx context.Context) error {
		var err error
		created, err = h.Scheduler.Generate(ctx)
		return err
	})
	if errors.Is(err, cache.ErrLocked) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.SCHEDULE_RUNNING, err)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, fmt.Sprintf("%d sessions created.", created), fiber.Map{"created": created})
}

// ImportCatalog pulls new movies from the remote catalog.
func (h *Handler) ImportCatalog(c *fiber.Ctx) error {
	var result service.ImportResult
	err := helper.RunExclusive(c.UserContext(), h.Locker, helper.ImportLock, func(ctx context.Context) error {
		var err error
		result, err = h.Importer.Import(ctx)
		return err
	})
	if errors.Is(err, cache.ErrLocked) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.IMPORT_RUNNING, err)
	}
	// Pages saved before or after a failed page stay imported; report them with the error.
	var e *service.Error
	if errors.As(err, &e) {
		return utils.ErrorResponseHaveData(c, kindStatus[e.Kind], e.Message, e.Err, e.Kind.String(), result)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, result.Message, result)
}
