package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bankx/transactions-service/internal/adapter/cache"
	"github.com/bankx/transactions-service/internal/domain"
	"github.com/bankx/transactions-service/internal/usecase/processor"
)

// TransactionProcessor defines the core operations exposed over HTTP.
type TransactionProcessor interface {
	Create(ctx context.Context, input processor.CreateInput) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountNumber string) ([]*domain.Transaction, error)
	Subscribe() (<-chan domain.Transaction, func())
}

// AccountReader serves the account view endpoint.
type AccountReader interface {
	FindByNumber(ctx context.Context, number string) (*domain.Account, error)
}

// TransactionHandler translates HTTP requests into processor calls.
// Accounts may be read through the optional Redis cache; a nil cache means
// every read goes to the store.
type TransactionHandler struct {
	processor TransactionProcessor
	accounts  AccountReader
	cache     *cache.AccountCache
	logger    *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler instance
func NewTransactionHandler(p TransactionProcessor, accounts AccountReader, accountCache *cache.AccountCache, logger *slog.Logger) *TransactionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionHandler{
		processor: p,
		accounts:  accounts,
		cache:     accountCache,
		logger:    logger,
	}
}

// CreateTransactionRequest is the POST /api/transactions body. Amount travels
// as a string so values retain exact decimal precision on the wire.
type CreateTransactionRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	Type          string `json:"type" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
}

// TransactionResponse is the JSON shape of a committed transaction.
type TransactionResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID.String(),
		AccountID: tx.AccountID.String(),
		Type:      string(tx.Type),
		Amount:    tx.Amount.String(),
		Timestamp: tx.Timestamp,
		Status:    string(tx.Status),
	}
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid amount format")
		return
	}

	tx, err := h.processor.Create(c.Request.Context(), processor.CreateInput{
		AccountNumber: req.AccountNumber,
		Type:          req.Type,
		Amount:        amount,
	})
	if err != nil {
		h.respondWithDomainError(c, err)
		return
	}

	// The balance changed: drop the cached account view so the read path
	// does not serve the old balance for a full TTL.
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), req.AccountNumber)
	}

	c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// ListTransactions handles GET /api/accounts/:number/transactions
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	number := c.Param("number")

	transactions, err := h.processor.ListByAccount(c.Request.Context(), number)
	if err != nil {
		h.respondWithDomainError(c, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, toTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, gin.H{"transactions": responses})
}

// GetAccount handles GET /api/accounts/:number
func (h *TransactionHandler) GetAccount(c *gin.Context) {
	number := c.Param("number")
	ctx := c.Request.Context()

	if h.cache != nil {
		if view, ok := h.cache.Get(ctx, number); ok {
			c.JSON(http.StatusOK, view)
			return
		}
	}

	account, err := h.accounts.FindByNumber(ctx, number)
	if err != nil {
		h.respondWithDomainError(c, err)
		return
	}

	view := &cache.AccountView{
		Number:     account.Number,
		HolderName: account.HolderName,
		Currency:   account.Currency,
		Balance:    account.Balance.String(),
	}
	if h.cache != nil {
		h.cache.Set(ctx, view)
	}
	c.JSON(http.StatusOK, view)
}

// StreamTransactions handles GET /api/transactions/stream as Server-Sent
// Events. Each transaction committed after the client connects is delivered
// as a "transaction" event; the stream ends when the client disconnects or
// the hub shuts down.
func (h *TransactionHandler) StreamTransactions(c *gin.Context) {
	ch, cancel := h.processor.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case tx, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("transaction", toTransactionResponse(&tx))
			return true
		case <-clientGone:
			return false
		}
	})
}

// Healthz handles GET /healthz
func (h *TransactionHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondWithDomainError maps the business error taxonomy to distinct status
// codes; anything outside it is an infrastructure failure.
func (h *TransactionHandler) respondWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound):
		respondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRiskRejected):
		respondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		respondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		respondWithError(c, http.StatusInternalServerError, "internal error")
	}
}
