// Package common holds the shared HTTP response and validation plumbing.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/openbank/ledger/pkg/domain/account"
	"github.com/openbank/ledger/pkg/domain/user"
)

// Response is the standard success envelope.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes a problem+json response. The status is derived
// from err via ErrorToStatusCode unless an explicit int is passed in
// details; a string in details becomes the detail text.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, details ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	for _, d := range details {
		switch v := d.(type) {
		case int:
			pd.Status = v
		case string:
			pd.Detail = v
		}
	}
	if pd.Detail == "" && err != nil && pd.Status < fiber.StatusInternalServerError {
		pd.Detail = err.Error()
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(pd.Status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Ownership
// mismatches never reach this point as ErrNotOwner; the services mask them
// as ErrAccountNotFound first.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, account.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrTransferAmountMustBePositive):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, account.ErrAccountNameInvalid),
		errors.Is(err, account.ErrInvalidAccountNumber),
		errors.Is(err, user.ErrInvalidUser):
		return fiber.StatusBadRequest
	case errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it. On
// failure the error response is already written and the returned pointer is
// nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest, err.Error())
	}
	return &input, nil
}

var validate = validator.New()
