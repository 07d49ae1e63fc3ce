// Package auditdelivery manages delivery layer of audit logs.
package auditdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/errorspkg"
	"github.com/securebank/ledger/pkg/jsonresponse"
)

// Service provides service layer interface needed by audit delivery layer.
type Service interface {
	ListByAccount(ctx context.Context, accountID string) ([]domain.AuditLog, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AuditLog, error)
}

// Handler facilitates audit delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns audit handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type logsData struct {
	AuditLogs []domain.AuditLog `json:"audit_logs"`
}

type logsResponse struct {
	Data logsData `json:"data,omitempty"`
}

type listRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListByAccount handles http request to list an account's audit log entries.
func (h *Handler) ListByAccount(gctx *gin.Context) {
	h.list(gctx, h.service.ListByAccount)
}

// ListByUser handles http request to list a user's audit log entries.
func (h *Handler) ListByUser(gctx *gin.Context) {
	h.list(gctx, h.service.ListByUser)
}

func (h *Handler) list(gctx *gin.Context, fetch func(context.Context, string) ([]domain.AuditLog, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	logs, err := fetch(ctx, req.ID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, logsResponse{Data: logsData{logs}})
}
