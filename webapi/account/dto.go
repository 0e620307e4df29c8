package account

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/openbank/ledger/pkg/domain/account"
)

// CreateAccountRequest is the body for POST /account.
type CreateAccountRequest struct {
	AccountName string `json:"account_name" validate:"required,max=64"`
}

// IncomingTransferRequest is the body for PATCH /account/transfer-to. The
// number carries no shape constraint and the amount no sign constraint
// here: resolution reports any non-matching number, malformed included, as
// not-found, and the ledger engine owns amount validation, so the check
// order stays existence first, amount second.
type IncomingTransferRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description" validate:"max=128"`
}

// OutgoingTransferRequest is the body for PATCH /account/:id/transfer-from.
type OutgoingTransferRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description" validate:"max=128"`
}

// AccountResponse mirrors the created account.
type AccountResponse struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	Balance       float64   `json:"balance"`
	CreationDate  time.Time `json:"creation_date"`
	Owner         uuid.UUID `json:"owner"`
}

// HistoryEntryResponse is one history record in a listing.
type HistoryEntryResponse struct {
	ID                   uuid.UUID `json:"id"`
	Type                 string    `json:"type"`
	Amount               float64   `json:"amount"`
	BalanceAfterTransfer float64   `json:"balance_after_transfer"`
	Description          string    `json:"description,omitempty"`
	TransactionDate      time.Time `json:"transaction_date"`
}

// HistoryPageResponse is a page of history records plus the total count.
type HistoryPageResponse struct {
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	Results []HistoryEntryResponse `json:"results"`
}

// ToAccountResponse maps a domain account to its response shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.Number,
		AccountName:   a.Name,
		Balance:       a.Balance.InexactFloat64(),
		CreationDate:  a.CreatedAt,
		Owner:         a.OwnerID,
	}
}

// ToHistoryEntryResponse maps a domain history entry to its response shape.
func ToHistoryEntryResponse(e *domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:                   e.ID,
		Type:                 string(e.Type),
		Amount:               e.Amount.InexactFloat64(),
		BalanceAfterTransfer: e.BalanceAfter.InexactFloat64(),
		Description:          e.Description,
		TransactionDate:      e.TransactionDate,
	}
}
