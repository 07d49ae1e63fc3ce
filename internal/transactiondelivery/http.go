// Package transactiondelivery manages delivery layer of ledger transactions.
package transactiondelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/errorspkg"
	"github.com/securebank/ledger/pkg/jsonresponse"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error)
	Withdraw(ctx context.Context, arg domain.WithdrawParams) (domain.Transaction, error)
	Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
	History(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transactionResponse struct {
	Data transactionData `json:"data,omitempty"`
}

type depositRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required,money"`
	Description string `json:"description"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	txn, err := h.service.Deposit(ctx, domain.DepositParams{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, transactionResponse{Data: transactionData{txn}})
}

type withdrawRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required,money"`
	Description string `json:"description"`
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req withdrawRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	txn, err := h.service.Withdraw(ctx, domain.WithdrawParams{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, transactionResponse{Data: transactionData{txn}})
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string `json:"to_account_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required,money"`
	Description   string `json:"description"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type transferResponse struct {
	Data transferData `json:"data,omitempty"`
}

// Transfer handles http request to transfer money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	result, err := h.service.Transfer(ctx, domain.TransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, transferResponse{Data: transferData{result}})
}

type historyRequest struct {
	AccountID string `uri:"id" binding:"required,uuid"`
}

type historyData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type historyResponse struct {
	Data historyData `json:"data,omitempty"`
}

// History handles http request to list an account's ledger entries.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req historyRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	transactions, err := h.service.History(ctx, req.AccountID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, historyResponse{Data: historyData{transactions}})
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
	case domain.ErrAccountFrozen:
		gctx.JSON(http.StatusConflict, jsonresponse.Error(err))
	case
		domain.ErrInvalidAmount,
		domain.ErrInsufficientBalance,
		domain.ErrSameAccount:
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
	}
}
