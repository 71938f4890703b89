package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendchat-engine/internal/dto"
	appErrors "github.com/noah-isme/spendchat-engine/pkg/errors"
	"github.com/noah-isme/spendchat-engine/pkg/response"
)

type mutationService interface {
	AddComment(ctx context.Context, accountID int64, login string, req dto.AddCommentRequest) (*dto.MutationResponse, error)
	CreateMoneyRequest(ctx context.Context, accountID int64, login string, req dto.CreateMoneyRequestRequest) (*dto.MutationResponse, error)
	Submit(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error)
	Approve(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error)
	Unapprove(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error)
	Close(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error)
	Reopen(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error)
	Retract(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error)
	Rename(ctx context.Context, accountID int64, login string, req dto.RenameRequest) (*dto.MutationResponse, error)
	Pay(ctx context.Context, accountID int64, login string, req dto.PayRequest) (*dto.MutationResponse, error)
	Hold(ctx context.Context, accountID int64, login string, req dto.HoldRequest) (*dto.MutationResponse, error)
	Unhold(ctx context.Context, accountID int64, login string, req dto.UnholdRequest) (*dto.MutationResponse, error)
	CreateTask(ctx context.Context, accountID int64, login string, req dto.CreateTaskRequest) (*dto.MutationResponse, error)
	CreateWorkspaceChats(ctx context.Context, accountID int64, login string, req dto.CreateWorkspaceChatsRequest) (*dto.MutationResponse, error)
}

// MutationHandler exposes the optimistic mutation endpoints.
type MutationHandler struct {
	service mutationService
}

// NewMutationHandler constructs the handler.
func NewMutationHandler(service mutationService) *MutationHandler {
	return &MutationHandler{service: service}
}

// perform binds the request body and runs one mutation verb.
func perform[T any](c *gin.Context, run func(ctx context.Context, accountID int64, login string, req T) (*dto.MutationResponse, error)) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid mutation payload"))
		return
	}
	result, err := run(c.Request.Context(), claims.AccountID, claims.Login, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, result, nil)
}

// AddComment godoc
// @Summary Post a comment
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.AddCommentRequest true "Comment payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/comment [post]
func (h *MutationHandler) AddComment(c *gin.Context) { perform(c, h.service.AddComment) }

// CreateMoneyRequest godoc
// @Summary Record a new expense or IOU
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.CreateMoneyRequestRequest true "Money request payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/money-request [post]
func (h *MutationHandler) CreateMoneyRequest(c *gin.Context) {
	perform(c, h.service.CreateMoneyRequest)
}

// Submit godoc
// @Summary Submit a draft report for approval
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.WorkflowRequest true "Target report"
// @Success 202 {object} response.Envelope
// @Router /mutations/submit [post]
func (h *MutationHandler) Submit(c *gin.Context) { perform(c, h.service.Submit) }

// Approve godoc
// @Summary Approve an outstanding report
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.WorkflowRequest true "Target report"
// @Success 202 {object} response.Envelope
// @Router /mutations/approve [post]
func (h *MutationHandler) Approve(c *gin.Context) { perform(c, h.service.Approve) }

// Unapprove godoc
// @Summary Walk an approval back
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.WorkflowRequest true "Target report"
// @Success 202 {object} response.Envelope
// @Router /mutations/unapprove [post]
func (h *MutationHandler) Unapprove(c *gin.Context) { perform(c, h.service.Unapprove) }

// Close godoc
// @Summary Close a report without payment
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.WorkflowRequest true "Target report"
// @Success 202 {object} response.Envelope
// @Router /mutations/close [post]
func (h *MutationHandler) Close(c *gin.Context) { perform(c, h.service.Close) }

// Reopen godoc
// @Summary Reopen a closed report
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.WorkflowRequest true "Target report"
// @Success 202 {object} response.Envelope
// @Router /mutations/reopen [post]
func (h *MutationHandler) Reopen(c *gin.Context) { perform(c, h.service.Reopen) }

// Retract godoc
// @Summary Pull a submitted report back
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.WorkflowRequest true "Target report"
// @Success 202 {object} response.Envelope
// @Router /mutations/retract [post]
func (h *MutationHandler) Retract(c *gin.Context) { perform(c, h.service.Retract) }

// Rename godoc
// @Summary Rename a room
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.RenameRequest true "Rename payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/rename [post]
func (h *MutationHandler) Rename(c *gin.Context) { perform(c, h.service.Rename) }

// Pay godoc
// @Summary Settle a money report
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.PayRequest true "Payment payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/pay [post]
func (h *MutationHandler) Pay(c *gin.Context) { perform(c, h.service.Pay) }

// Hold godoc
// @Summary Place a transaction on hold
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.HoldRequest true "Hold payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/hold [post]
func (h *MutationHandler) Hold(c *gin.Context) { perform(c, h.service.Hold) }

// Unhold godoc
// @Summary Release a held transaction
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.UnholdRequest true "Unhold payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/unhold [post]
func (h *MutationHandler) Unhold(c *gin.Context) { perform(c, h.service.Unhold) }

// CreateTask godoc
// @Summary Assign a task inside a chat
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.CreateTaskRequest true "Task payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/task [post]
func (h *MutationHandler) CreateTask(c *gin.Context) { perform(c, h.service.CreateTask) }

// CreateWorkspaceChats godoc
// @Summary Bootstrap the default chats of a workspace
// @Tags Mutations
// @Accept json
// @Produce json
// @Param payload body dto.CreateWorkspaceChatsRequest true "Workspace payload"
// @Success 202 {object} response.Envelope
// @Router /mutations/workspace-chats [post]
func (h *MutationHandler) CreateWorkspaceChats(c *gin.Context) {
	perform(c, h.service.CreateWorkspaceChats)
}
