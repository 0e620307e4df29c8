// Package auth exposes login.
package auth

import (
	"github.com/gofiber/fiber/v2"

	authsvc "github.com/openbank/ledger/pkg/service/auth"
	"github.com/openbank/ledger/webapi/common"
)

// Routes registers POST /auth/login.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login handles POST /auth/login and returns a signed token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid credentials", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to generate token", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", TokenResponse{Token: token})
	}
}
