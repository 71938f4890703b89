package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendchat-engine/internal/service"
	appErrors "github.com/noah-isme/spendchat-engine/pkg/errors"
	"github.com/noah-isme/spendchat-engine/pkg/response"
)

type exportService interface {
	SpendSummary(ctx context.Context, accountID int64, login string, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves rendered spend summaries.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// SpendSummary godoc
// @Summary Export the viewer's spend summary
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /exports/spend-summary [get]
func (h *ExportHandler) SpendSummary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.service.SpendSummary(c.Request.Context(), claims.AccountID, claims.Login, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
