package settlement

import (
	"github.com/oredesk/ops-api/internal/types"
)

// AddTransactionRequest is the payload for POST /transactions.
type AddTransactionRequest struct {
	OrderID            string `json:"order_id" validate:"required"`
	UserID             string `json:"user_id"`
	Amount             string `json:"amount" validate:"required"`
	Currency           string `json:"currency" validate:"required"`
	Method             string `json:"method" validate:"required,oneof='Bank Transfer' 'Wise' 'Blockchain Settlement'"`
	Status             string `json:"status" validate:"omitempty,oneof=Pending Completed Failed"`
	Reference          string `json:"reference"`
	IsInternational    *bool  `json:"is_international"`
	PayerCountry       string `json:"payer_country"`
	BeneficiaryCountry string `json:"beneficiary_country"`
}

// UpdateTransactionRequest replaces the mutable fields of a transaction.
type UpdateTransactionRequest struct {
	Amount             string `json:"amount" validate:"required"`
	Currency           string `json:"currency" validate:"required"`
	Method             string `json:"method" validate:"required,oneof='Bank Transfer' 'Wise' 'Blockchain Settlement'"`
	Status             string `json:"status" validate:"required,oneof=Pending Completed Failed"`
	Reference          string `json:"reference"`
	IsInternational    *bool  `json:"is_international"`
	PayerCountry       string `json:"payer_country"`
	BeneficiaryCountry string `json:"beneficiary_country"`
}

// PayoutRequest creates or updates an outbound payout.
type PayoutRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Method   string `json:"method"`
	Status   string `json:"status" validate:"required"`
}

// TransactionView is a settlement row enriched with its derived
// international classification.
type TransactionView struct {
	types.Transaction
	International bool `json:"international"`
}
