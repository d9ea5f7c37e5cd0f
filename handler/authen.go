package handler

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/helper"
	"cinema_scheduler/model"
	"cinema_scheduler/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRegister").(model.RegisterInput)
	if !ok {
		return parseLocalsError(c)
	}
	ctx := c.UserContext()
	username := strings.TrimSpace(input.Username)

	existing, err := h.Store.AccountByUsername(ctx, username)
	if err != nil {
		return h.fail(c, err)
	}
	if existing != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.USERNAME_EXISTS, errors.New("username exists"), "username")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}
	account := &model.Account{Username: username, Password: hash, Role: constants.ROLE_USER}
	if err := h.Store.CreateAccount(ctx, account); err != nil {
		return h.fail(c, err)
	}
	h.Log.Info("account registered", zap.Uint("accountId", account.ID), zap.String("username", account.Username))
	return utils.SuccessResponse(c, fiber.StatusCreated, account)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	input, ok := c.Locals("inputLogin").(model.LoginInput)
	if !ok {
		return parseLocalsError(c)
	}

	account, err := h.Store.AccountByUsername(c.UserContext(), input.Username)
	if err != nil {
		return h.fail(c, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, errors.New("username not exists"))
	}
	if !helper.CheckPasswordHash(input.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}

	token, err := h.Tokens.GenerateAccessToken(model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
		MaxAge:   int(h.Tokens.TTL.Seconds()),
	})

	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{
		AccessToken: token,
		ExpiresIn:   int64(h.Tokens.TTL.Seconds()),
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	token, _ := c.Locals("user").(*jwt.Token)
	claim, err := helper.ClaimFromToken(token)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
	}
	account, err := h.Store.AccountByUsername(c.UserContext(), claim.Username)
	if err != nil {
		return h.fail(c, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_USERNAME, errors.New("account removed"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}
