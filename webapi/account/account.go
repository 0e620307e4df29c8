// Package account exposes the account and transfer HTTP surface. Account
// listing, detail and update by id are intentionally not routed; only
// creation, the two transfer paths, balance and history are reachable.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbank/ledger/pkg/config"
	"github.com/openbank/ledger/pkg/domain/user"
	"github.com/openbank/ledger/pkg/middleware"
	"github.com/openbank/ledger/pkg/repository"
	accountsvc "github.com/openbank/ledger/pkg/service/account"
	authsvc "github.com/openbank/ledger/pkg/service/auth"
	ledgersvc "github.com/openbank/ledger/pkg/service/ledger"
	"github.com/openbank/ledger/webapi/common"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Routes registers the account routes:
//
//   - POST   /account                      : create an account for the caller
//   - PATCH  /account/transfer-to          : incoming transfer by account number
//   - PATCH  /account/:id/transfer-from    : outgoing transfer, owner only
//   - GET    /account/:id/balance          : current balance, owner only
//   - GET    /account/:id/history          : paginated history, owner only
func Routes(app *fiber.App, accountSvc *accountsvc.Service, ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Post("/account", jwt, CreateAccount(accountSvc, authSvc))
	app.Patch("/account/transfer-to", jwt, TransferToAccount(ledgerSvc, authSvc))
	app.Patch("/account/:id/transfer-from", jwt, TransferFromAccount(ledgerSvc, authSvc))
	app.Get("/account/:id/balance", jwt, GetBalance(ledgerSvc, authSvc))
	app.Get("/account/:id/history", jwt, ListHistory(ledgerSvc, authSvc))
}

// CreateAccount handles POST /account.
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), callerID, input.AccountName)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountResponse(a))
	}
}

// TransferToAccount handles PATCH /account/transfer-to. The destination is
// named by account number and need not belong to the caller.
func TransferToAccount(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := currentUserID(c, authSvc); err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[IncomingTransferRequest](c)
		if input == nil {
			return err
		}
		amount := decimal.NewFromFloat(input.Amount)
		if err := ledgerSvc.ApplyIncoming(c.Context(), input.AccountNumber, amount, input.Description); err != nil {
			return common.ProblemDetailsJSON(c, "Transfer rejected", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// TransferFromAccount handles PATCH /account/:id/transfer-from.
func TransferFromAccount(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest, "Account ID must be a valid UUID")
		}
		input, err := common.BindAndValidate[OutgoingTransferRequest](c)
		if input == nil {
			return err
		}
		amount := decimal.NewFromFloat(input.Amount)
		if err := ledgerSvc.ApplyOutgoing(c.Context(), callerID, accountID, amount, input.Description); err != nil {
			return common.ProblemDetailsJSON(c, "Transfer rejected", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetBalance handles GET /account/:id/balance.
func GetBalance(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest, "Account ID must be a valid UUID")
		}
		balance, err := ledgerSvc.GetBalance(c.Context(), callerID, accountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched",
			fiber.Map{"balance": balance.InexactFloat64()})
	}
}

// ListHistory handles GET /account/:id/history.
func ListHistory(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest, "Account ID must be a valid UUID")
		}
		page := repository.Page{
			Number: c.QueryInt("page", 1),
			Size:   c.QueryInt("limit", defaultPageSize),
		}
		if page.Number < 1 {
			page.Number = 1
		}
		if page.Size < 1 || page.Size > maxPageSize {
			page.Size = defaultPageSize
		}
		entries, total, err := ledgerSvc.ListHistory(c.Context(), callerID, accountID, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list history", err)
		}
		results := make([]HistoryEntryResponse, 0, len(entries))
		for _, e := range entries {
			results = append(results, ToHistoryEntryResponse(e))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "History fetched", HistoryPageResponse{
			Total:   total,
			Page:    page.Number,
			Results: results,
		})
	}
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return authSvc.CurrentUserID(token)
}
