package handler

import (
	"cinema_scheduler/cache"
	"cinema_scheduler/constants"
	"cinema_scheduler/helper"
	"cinema_scheduler/service"
	"cinema_scheduler/store"
	"cinema_scheduler/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the HTTP API on top of the services.
type Handler struct {
	Store     store.Store
	Sessions  *service.SessionService
	Movies    *service.MovieService
	Theaters  *service.TheaterService
	Addresses *service.AddressService
	Scheduler helper.Generator
	Importer  helper.Importer
	Locker    cache.Locker
	Tokens    *helper.TokenIssuer
	Log       *zap.Logger
}

var kindStatus = map[service.Kind]int{
	service.KindNotFound:             fiber.StatusNotFound,
	service.KindScheduleConflict:     fiber.StatusConflict,
	service.KindPastStartTime:        fiber.StatusBadRequest,
	service.KindAlreadyElapsed:       fiber.StatusBadRequest,
	service.KindLinkedSessionsExist:  fiber.StatusConflict,
	service.KindConfirmationRequired: fiber.StatusPreconditionRequired,
	service.KindTheaterLinked:        fiber.StatusConflict,
	service.KindExternalService:      fiber.StatusBadGateway,
	service.KindValidation:           fiber.StatusBadRequest,
}

// fail writes err using the status of its kind. Errors without a kind are logged and reported as 500.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var e *service.Error
	if errors.As(err, &e) {
		return utils.ErrorResponseHaveKey(c, kindStatus[e.Kind], e.Message, e.Err, e.Kind.String())
	}
	h.Log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

func inputId(c *fiber.Ctx) uint {
	id, _ := c.Locals("inputId").(uint)
	return id
}

func parseLocalsError(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("input not found in locals"))
}
