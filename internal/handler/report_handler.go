package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendchat-engine/internal/dto"
	appErrors "github.com/noah-isme/spendchat-engine/pkg/errors"
	"github.com/noah-isme/spendchat-engine/pkg/response"
)

type reportService interface {
	GetReportName(ctx context.Context, accountID int64, login, reportID string) (*dto.ReportNameResponse, error)
	GetReportStatus(ctx context.Context, accountID int64, login, reportID string) (*dto.ReportStatusResponse, error)
	GetSpendBreakdown(ctx context.Context, accountID int64, login, reportID string) (*dto.SpendBreakdownResponse, error)
	GetApprovalChain(ctx context.Context, accountID int64, login, reportID string) (*dto.ApprovalChainResponse, error)
	ListReports(ctx context.Context, accountID int64, login string, query dto.ReportListQuery) (*dto.ReportListResponse, error)
}

// ReportHandler exposes the derived report surfaces.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// List godoc
// @Summary List navigable reports for the viewer
// @Tags Reports
// @Produce json
// @Param focusMode query bool false "Only unread, unmuted reports"
// @Param currentReportID query string false "Report currently open in the client"
// @Param includeSelfDM query bool false "Include the viewer's self DM"
// @Param restrictedDomain query string false "Hide DMs whose members all share this email domain"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var query dto.ReportListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid list query"))
		return
	}
	list, err := h.service.ListReports(c.Request.Context(), claims.AccountID, claims.Login, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Name godoc
// @Summary Derive a report's display title
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id}/name [get]
func (h *ReportHandler) Name(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	name, err := h.service.GetReportName(c.Request.Context(), claims.AccountID, claims.Login, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, name, nil)
}

// Status godoc
// @Summary Derive a report's workflow state
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id}/status [get]
func (h *ReportHandler) Status(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	status, err := h.service.GetReportStatus(c.Request.Context(), claims.AccountID, claims.Login, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Spend godoc
// @Summary Derive a money report's spend breakdown
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id}/spend [get]
func (h *ReportHandler) Spend(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	spend, err := h.service.GetSpendBreakdown(c.Request.Context(), claims.AccountID, claims.Login, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, spend, nil)
}

// ApprovalChain godoc
// @Summary Derive the approver route of an expense report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id}/approval-chain [get]
func (h *ReportHandler) ApprovalChain(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	chain, err := h.service.GetApprovalChain(c.Request.Context(), claims.AccountID, claims.Login, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chain, nil)
}
