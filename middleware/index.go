package middleware

import (
	"cinema_scheduler/constants"
	"cinema_scheduler/helper"
	"cinema_scheduler/model"
	"cinema_scheduler/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func tokenFromRequest(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

// Protected rejects requests without a valid access token and stores the caller in Locals.
func Protected(issuer *helper.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("no token"))
		}

		jwtToken, err := issuer.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}
		claim, err := helper.ClaimFromToken(jwtToken)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}

		c.Locals("user", jwtToken)
		c.Locals("principal", helper.PrincipalFromClaim(claim))
		return c.Next()
	}
}

// OptionalAuth behaves like Protected for valid tokens and lets anonymous callers through.
func OptionalAuth(issuer *helper.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Next()
		}
		jwtToken, err := issuer.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return c.Next()
		}
		if claim, err := helper.ClaimFromToken(jwtToken); err == nil {
			c.Locals("user", jwtToken)
			c.Locals("principal", helper.PrincipalFromClaim(claim))
		}
		return c.Next()
	}
}

// RequireRole must run after Protected.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.HasRole(role) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("missing role "+role))
		}
		return c.Next()
	}
}

func GetPrincipal(c *fiber.Ctx) (model.Principal, bool) {
	principal, ok := c.Locals("principal").(model.Principal)
	return principal, ok
}
