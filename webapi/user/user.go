// Package user exposes owner registration.
package user

import (
	"github.com/gofiber/fiber/v2"

	usersvc "github.com/openbank/ledger/pkg/service/user"
	"github.com/openbank/ledger/webapi/common"
)

// Routes registers POST /user for registration. Registration is the only
// unauthenticated write surface.
func Routes(app *fiber.App, userSvc *usersvc.Service) {
	app.Post("/user", CreateUser(userSvc))
}

// CreateUser handles POST /user.
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[NewUserRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.CreateUser(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Created user", ToUserResponse(u))
	}
}
