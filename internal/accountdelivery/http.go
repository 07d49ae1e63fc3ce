// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/internal/middleware"
	"github.com/securebank/ledger/pkg/errorspkg"
	"github.com/securebank/ledger/pkg/jsonresponse"
	"github.com/securebank/ledger/pkg/tokenpkg"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID string) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Account, error)
	Freeze(ctx context.Context, id string) (domain.Account, error)
	Unfreeze(ctx context.Context, id string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountResponse struct {
	Data accountData `json:"data,omitempty"`
}

// Create handles http request to create an account for the authenticated user.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.Create(ctx, authPayload.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, accountResponse{Data: accountData{account}})
}

type getRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Get handles http request to get an account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	if account.UserID != authPayload.UserID && authPayload.Role != string(domain.RoleAdmin) {
		l.Warn().Str("account_id", account.ID).Msg("account owner mismatch")
		gctx.JSON(http.StatusUnauthorized, jsonresponse.Error(domain.ErrAccountOwnerMismatch))

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

type accountsResponse struct {
	Data accountsData `json:"data,omitempty"`
}

// List handles http request to list the authenticated user's accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	accounts, err := h.service.ListByUser(ctx, authPayload.UserID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, accountsResponse{Data: accountsData{accounts}})
}

// Freeze handles http request to freeze an account. Admin only.
func (h *Handler) Freeze(gctx *gin.Context) {
	h.setStatus(gctx, h.service.Freeze)
}

// Unfreeze handles http request to unfreeze an account. Admin only.
func (h *Handler) Unfreeze(gctx *gin.Context) {
	h.setStatus(gctx, h.service.Unfreeze)
}

func (h *Handler) setStatus(gctx *gin.Context, change func(context.Context, string) (domain.Account, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := change(ctx, req.ID)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
		case domain.ErrAccountNotFrozen:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, accountResponse{Data: accountData{account}})
}
