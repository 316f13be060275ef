package settlement

import (
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
	"github.com/oredesk/ops-api/internal/views"
	"github.com/oredesk/ops-api/pkg/response"
)

// Service manages settlement records and payouts. Transactions reference
// orders softly: a transaction for an unknown order is recorded as-is and
// only logged.
type Service struct {
	store *store.Store
}

// NewService creates a settlement service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// AddTransaction records a new settlement transaction.
func (s *Service) AddTransaction(req AddTransactionRequest) types.Transaction {
	logger := log.With().
		Str("service", "settlement").
		Str("order_id", req.OrderID).
		Logger()

	status := req.Status
	if status == "" {
		status = types.TxStatusPending
	}

	tx := types.Transaction{
		ID:                 "TXN_" + uuid.New().String(),
		OrderID:            req.OrderID,
		UserID:             req.UserID,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Method:             req.Method,
		Status:             status,
		Reference:          req.Reference,
		IsInternational:    req.IsInternational,
		PayerCountry:       req.PayerCountry,
		BeneficiaryCountry: req.BeneficiaryCountry,
		CreatedAt:          time.Now().Format(time.RFC3339),
	}

	s.store.Dispatch(store.AddTransaction{Transaction: tx})

	logger.Info().
		Str("transaction_id", tx.ID).
		Str("status", tx.Status).
		Str("method", tx.Method).
		Msg("transaction recorded")
	return tx
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (s *Service) UpdateTransaction(txID string, req UpdateTransactionRequest) (types.Transaction, error) {
	snapshot := s.store.Snapshot()

	var existing *types.Transaction
	for i := range snapshot.Transactions {
		if snapshot.Transactions[i].ID == txID {
			existing = &snapshot.Transactions[i]
			break
		}
	}
	if existing == nil {
		return types.Transaction{}, response.ErrNotFound
	}

	tx := *existing
	tx.Amount = req.Amount
	tx.Currency = req.Currency
	tx.Method = req.Method
	tx.Status = req.Status
	tx.Reference = req.Reference
	tx.IsInternational = req.IsInternational
	tx.PayerCountry = req.PayerCountry
	tx.BeneficiaryCountry = req.BeneficiaryCountry

	s.store.Dispatch(store.UpdateTransaction{Transaction: tx})

	log.Info().
		Str("service", "settlement").
		Str("transaction_id", tx.ID).
		Str("status", tx.Status).
		Msg("transaction updated")
	return tx, nil
}

// ListTransactions returns every settlement row with its international
// classification resolved.
func (s *Service) ListTransactions() []TransactionView {
	snapshot := s.store.Snapshot()
	out := make([]TransactionView, 0, len(snapshot.Transactions))
	for _, tx := range snapshot.Transactions {
		out = append(out, TransactionView{
			Transaction:   tx,
			International: views.IsTransactionInternational(tx, snapshot.Orders, snapshot.Users),
		})
	}
	return out
}

// AddPayout records an outbound payout.
func (s *Service) AddPayout(req PayoutRequest) types.Payout {
	payout := types.Payout{
		ID:        "PAY_" + uuid.New().String(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    req.Status,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	s.store.Dispatch(store.AddPayout{Payout: payout})
	return payout
}

// UpdatePayout replaces an existing payout.
func (s *Service) UpdatePayout(payoutID string, req PayoutRequest) (types.Payout, error) {
	snapshot := s.store.Snapshot()

	var existing *types.Payout
	for i := range snapshot.Payouts {
		if snapshot.Payouts[i].ID == payoutID {
			existing = &snapshot.Payouts[i]
			break
		}
	}
	if existing == nil {
		return types.Payout{}, response.ErrNotFound
	}

	payout := *existing
	payout.UserID = req.UserID
	payout.Amount = req.Amount
	payout.Currency = req.Currency
	payout.Method = req.Method
	payout.Status = req.Status

	s.store.Dispatch(store.UpdatePayout{Payout: payout})
	return payout, nil
}

// ListPayouts returns all payouts.
func (s *Service) ListPayouts() []types.Payout {
	return s.store.Snapshot().Payouts
}

// GinHandlers contains HTTP handlers for settlement endpoints
type GinHandlers struct {
	service  *Service
	store    *store.Store
	validate *validatorv10.Validate
}

// NewGinHandlers creates a new set of HTTP handlers for settlement endpoints
func NewGinHandlers(service *Service, st *store.Store, validate *validatorv10.Validate) *GinHandlers {
	return &GinHandlers{
		service:  service,
		store:    st,
		validate: validate,
	}
}

// AddTransactionHandler handles POST requests recording transactions
func (h *GinHandlers) AddTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		for _, warning := range validation.ReferenceWarnings(h.store.Snapshot(), req.OrderID, req.UserID) {
			log.Warn().Str("service", "settlement").Msg(warning)
		}

		response.Success(c, h.service.AddTransaction(req))
	}
}

// UpdateTransactionHandler handles PUT requests replacing a transaction
// URL parameter: transaction_id
func (h *GinHandlers) UpdateTransactionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		tx, err := h.service.UpdateTransaction(c.Param("transaction_id"), req)
		response.Handle(c, tx, err)
	}
}

// ListTransactionsHandler handles GET requests for transactions
func (h *GinHandlers) ListTransactionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListTransactions())
	}
}

// AddPayoutHandler handles POST requests recording payouts
func (h *GinHandlers) AddPayoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		response.Success(c, h.service.AddPayout(req))
	}
}

// UpdatePayoutHandler handles PUT requests replacing a payout
// URL parameter: payout_id
func (h *GinHandlers) UpdatePayoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PayoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		payout, err := h.service.UpdatePayout(c.Param("payout_id"), req)
		response.Handle(c, payout, err)
	}
}

// ListPayoutsHandler handles GET requests for payouts
func (h *GinHandlers) ListPayoutsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListPayouts())
	}
}
