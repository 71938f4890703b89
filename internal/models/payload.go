package models

import (
	"encoding/json"
	"fmt"
)

// ActionPayload is the variant originalMessage carried by a ReportAction.
// Exactly one concrete type exists per ActionName; DecodePayload is the
// single place raw JSON becomes a typed payload.
type ActionPayload interface {
	actionPayload()
}

// IOUType distinguishes money-request flavors inside an IOU action.
type IOUType string

const (
	IOUTypeCreate IOUType = "create"
	IOUTypeSplit  IOUType = "split"
	IOUTypePay    IOUType = "pay"
	IOUTypeTrack  IOUType = "track"
)

// PaymentMethod records how a settlement was executed.
type PaymentMethod string

const (
	PaymentElsewhere   PaymentMethod = "Elsewhere"
	PaymentWithProduct PaymentMethod = "Spendchat"
	PaymentVBBA        PaymentMethod = "ACH"
)

// IOUPayload is the originalMessage of an IOU action.
type IOUPayload struct {
	Type             IOUType       `json:"type"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	Comment          string        `json:"comment,omitempty"`
	IOUTransactionID string        `json:"IOUTransactionID,omitempty"`
	IOUReportID      string        `json:"IOUReportID,omitempty"`
	PaymentType      PaymentMethod `json:"paymentType,omitempty"`
	ParticipantIDs   []int64       `json:"participantAccountIDs,omitempty"`
}

// CommentPayload is the originalMessage of an ADDCOMMENT action.
type CommentPayload struct {
	HTML         string `json:"html"`
	Text         string `json:"text"`
	LastModified string `json:"lastModified,omitempty"`
}

// SubmittedPayload records the amount a report was submitted for.
type SubmittedPayload struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Harvested bool   `json:"harvested,omitempty"`
}

// ApprovedPayload records the amount approved.
type ApprovedPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// UnapprovedPayload records an approval regression.
type UnapprovedPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ForwardedPayload records an approve-and-forward step.
type ForwardedPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	To       string `json:"to,omitempty"`
}

// RejectedPayload carries the rejection reason.
type RejectedPayload struct {
	Reason string `json:"reason,omitempty"`
}

// RetractedPayload marks a submitter pulling a report back.
type RetractedPayload struct{}

// ReopenedPayload marks a closed report reopened.
type ReopenedPayload struct{}

// ClosedReason explains why a report was closed.
type ClosedReason string

const (
	ClosedReasonDefault       ClosedReason = "default"
	ClosedReasonSubmitClosed  ClosedReason = "submitClosed"
	ClosedReasonPolicyDeleted ClosedReason = "policyDeleted"
	ClosedReasonAccountMerged ClosedReason = "accountMerged"
)

// ClosedPayload is the originalMessage of a CLOSED action.
type ClosedPayload struct {
	Reason ClosedReason `json:"reason,omitempty"`
}

// RenamedPayload records a room rename.
type RenamedPayload struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// HoldPayload carries the hold comment.
type HoldPayload struct {
	Comment string `json:"comment,omitempty"`
}

// UnholdPayload releases a hold.
type UnholdPayload struct{}

// ModifiedExpensePayload records field-level expense edits.
type ModifiedExpensePayload struct {
	OldAmount   int64  `json:"oldAmount,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	OldCurrency string `json:"oldCurrency,omitempty"`
	Currency    string `json:"currency,omitempty"`
	OldMerchant string `json:"oldMerchant,omitempty"`
	Merchant    string `json:"merchant,omitempty"`
	OldCategory string `json:"oldCategory,omitempty"`
	Category    string `json:"category,omitempty"`
	OldTag      string `json:"oldTag,omitempty"`
	Tag         string `json:"tag,omitempty"`
	OldComment  string `json:"oldComment,omitempty"`
	NewComment  string `json:"newComment,omitempty"`
}

// MovedPayload records a transaction or report move between containers.
type MovedPayload struct {
	FromPolicyID      string `json:"fromPolicyID,omitempty"`
	ToPolicyID        string `json:"toPolicyID,omitempty"`
	NewParentReportID string `json:"newParentReportID,omitempty"`
	MovedReportID     string `json:"movedReportID,omitempty"`
}

// ChangePolicyPayload records a report changing workspaces.
type ChangePolicyPayload struct {
	FromPolicyID   string `json:"fromPolicyID"`
	ToPolicyID     string `json:"toPolicyID"`
	FromPolicyName string `json:"fromPolicyName,omitempty"`
	ToPolicyName   string `json:"toPolicyName,omitempty"`
}

// PolicyChangeLogPayload records admin-room audit entries.
type PolicyChangeLogPayload struct {
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue,omitempty"`
	Email    string `json:"email,omitempty"`
}

// CardIssuedPayload records a card being issued to a member.
type CardIssuedPayload struct {
	AssigneeAccountID int64  `json:"assigneeAccountID"`
	CardID            string `json:"cardID,omitempty"`
}

// TravelUpdatePayload summarises a trip itinerary change.
type TravelUpdatePayload struct {
	Operation string `json:"operation"`
	Details   string `json:"details,omitempty"`
}

// IntegrationSyncFailedPayload records an accounting-integration failure.
type IntegrationSyncFailedPayload struct {
	Label        string `json:"label"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// TaskPayload links a task action to its task report.
type TaskPayload struct {
	TaskReportID string `json:"taskReportID"`
}

// OldSystemPayload carries a literal message imported from the legacy system.
type OldSystemPayload struct {
	Text string `json:"text"`
}

func (IOUPayload) actionPayload()                   {}
func (CommentPayload) actionPayload()               {}
func (SubmittedPayload) actionPayload()             {}
func (ApprovedPayload) actionPayload()              {}
func (UnapprovedPayload) actionPayload()            {}
func (ForwardedPayload) actionPayload()             {}
func (RejectedPayload) actionPayload()              {}
func (RetractedPayload) actionPayload()             {}
func (ReopenedPayload) actionPayload()              {}
func (ClosedPayload) actionPayload()                {}
func (RenamedPayload) actionPayload()               {}
func (HoldPayload) actionPayload()                  {}
func (UnholdPayload) actionPayload()                {}
func (ModifiedExpensePayload) actionPayload()       {}
func (MovedPayload) actionPayload()                 {}
func (ChangePolicyPayload) actionPayload()          {}
func (PolicyChangeLogPayload) actionPayload()       {}
func (CardIssuedPayload) actionPayload()            {}
func (TravelUpdatePayload) actionPayload()          {}
func (IntegrationSyncFailedPayload) actionPayload() {}
func (TaskPayload) actionPayload()                  {}
func (OldSystemPayload) actionPayload()             {}

// DecodePayload turns a persisted originalMessage blob into its typed
// payload. Actions without a payload (CREATED, task status flips) return
// nil without error.
func DecodePayload(name ActionName, raw []byte) (ActionPayload, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	decode := func(v ActionPayload) (ActionPayload, error) {
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", name, err)
		}
		return v, nil
	}
	switch name {
	case ActionIOU, ActionReportPreview:
		return decode(&IOUPayload{})
	case ActionAddComment:
		return decode(&CommentPayload{})
	case ActionSubmitted:
		return decode(&SubmittedPayload{})
	case ActionApproved:
		return decode(&ApprovedPayload{})
	case ActionUnapproved:
		return decode(&UnapprovedPayload{})
	case ActionForwarded:
		return decode(&ForwardedPayload{})
	case ActionRejected:
		return decode(&RejectedPayload{})
	case ActionRetracted:
		return decode(&RetractedPayload{})
	case ActionReopened:
		return decode(&ReopenedPayload{})
	case ActionClosed:
		return decode(&ClosedPayload{})
	case ActionRenamed:
		return decode(&RenamedPayload{})
	case ActionHold:
		return decode(&HoldPayload{})
	case ActionUnhold:
		return decode(&UnholdPayload{})
	case ActionModifiedExpense:
		return decode(&ModifiedExpensePayload{})
	case ActionMoved:
		return decode(&MovedPayload{})
	case ActionChangePolicy:
		return decode(&ChangePolicyPayload{})
	case ActionPolicyChangeLogUpdateName, ActionPolicyChangeLogAddEmployee, ActionPolicyChangeLogDeleteEmployee:
		return decode(&PolicyChangeLogPayload{})
	case ActionCardIssued:
		return decode(&CardIssuedPayload{})
	case ActionTravelUpdate:
		return decode(&TravelUpdatePayload{})
	case ActionIntegrationSyncFailed:
		return decode(&IntegrationSyncFailedPayload{})
	case ActionTask:
		return decode(&TaskPayload{})
	case ActionOldSystem:
		return decode(&OldSystemPayload{})
	case ActionCreated, ActionTaskCompleted, ActionTaskReopened, ActionTaskCancelled:
		return nil, nil
	default:
		return nil, fmt.Errorf("decode payload: unknown action name %q", name)
	}
}
