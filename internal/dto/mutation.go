package dto

import "github.com/noah-isme/spendchat-engine/internal/models"

// AddCommentRequest posts a comment to a report.
type AddCommentRequest struct {
	ReportID string `json:"reportID" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

// CreateMoneyRequestRequest submits a new expense or IOU line.
type CreateMoneyRequestRequest struct {
	ChatReportID   string `json:"chatReportID" validate:"required"`
	PolicyID       string `json:"policyID"`
	PayerAccountID int64  `json:"payerAccountID"`
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	Currency       string `json:"currency" validate:"required,currency_code"`
	Merchant       string `json:"merchant"`
	Comment        string `json:"comment"`
	Created        string `json:"created"`
	Reimbursable   bool   `json:"reimbursable"`
	Billable       bool   `json:"billable"`
	Track          bool   `json:"track"`
}

// WorkflowRequest targets one report with a lifecycle verb.
type WorkflowRequest struct {
	ReportID string `json:"reportID" validate:"required"`
}

// RenameRequest retitles a room.
type RenameRequest struct {
	ReportID string `json:"reportID" validate:"required"`
	Name     string `json:"name" validate:"required,max=100"`
}

// HoldRequest places one transaction on hold.
type HoldRequest struct {
	ThreadReportID string `json:"threadReportID" validate:"required"`
	TransactionID  string `json:"transactionID" validate:"required"`
	Comment        string `json:"comment" validate:"required"`
}

// UnholdRequest releases a held transaction.
type UnholdRequest struct {
	ThreadReportID string `json:"threadReportID" validate:"required"`
	TransactionID  string `json:"transactionID" validate:"required"`
}

// PayRequest settles a money report.
type PayRequest struct {
	ReportID      string               `json:"reportID" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" validate:"required,oneof=Elsewhere Spendchat ACH"`
}

// CreateTaskRequest assigns a task inside a chat.
type CreateTaskRequest struct {
	ChatReportID      string `json:"chatReportID" validate:"required"`
	Title             string `json:"title" validate:"required,max=500"`
	Description       string `json:"description"`
	AssigneeAccountID int64  `json:"assigneeAccountID"`
}

// CreateWorkspaceChatsRequest bootstraps the default chats of a workspace.
type CreateWorkspaceChatsRequest struct {
	PolicyID string `json:"policyID" validate:"required"`
}

// MutationResponse reports what a mutation synthesized. Status starts as
// "pending" and resolves out of band once the confirmation lands.
type MutationResponse struct {
	JobID          string `json:"jobID"`
	Status         string `json:"status"`
	ReportID       string `json:"reportID,omitempty"`
	ActionID       string `json:"actionID,omitempty"`
	ThreadReportID string `json:"threadReportID,omitempty"`
	TransactionID  string `json:"transactionID,omitempty"`
}
