// Package app wires services and the HTTP surface into a Fiber application.
package app

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/openbank/ledger/infra/events"
	"github.com/openbank/ledger/pkg/config"
	"github.com/openbank/ledger/pkg/repository"
	accountsvc "github.com/openbank/ledger/pkg/service/account"
	authsvc "github.com/openbank/ledger/pkg/service/auth"
	ledgersvc "github.com/openbank/ledger/pkg/service/ledger"
	usersvc "github.com/openbank/ledger/pkg/service/user"
	accountapi "github.com/openbank/ledger/webapi/account"
	authapi "github.com/openbank/ledger/webapi/auth"
	"github.com/openbank/ledger/webapi/common"
	userapi "github.com/openbank/ledger/webapi/user"
)

// Deps are the external collaborators the application is built from.
type Deps struct {
	Uow       repository.UnitOfWork
	Publisher events.Publisher
	Config    *config.App
	Logger    *slog.Logger
}

// New builds all services and returns the Fiber app with routes and
// middleware registered.
func New(deps Deps) *fiber.App {
	accountSvc := accountsvc.NewService(deps.Uow, deps.Logger)
	ledgerSvc := ledgersvc.NewService(deps.Uow, deps.Publisher, deps.Logger)
	userSvc := usersvc.NewService(deps.Uow, deps.Logger)
	authSvc := authsvc.NewService(deps.Uow, deps.Config.Auth.Jwt, deps.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if i := strings.Index(forwardedFor, ","); i != -1 {
					return strings.TrimSpace(forwardedFor[:i])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests",
				errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ledger is up")
	})

	userapi.Routes(app, userSvc)
	authapi.Routes(app, authSvc)
	accountapi.Routes(app, accountSvc, ledgerSvc, authSvc, deps.Config)
	return app
}
