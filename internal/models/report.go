package models

import "sort"

// ReportType discriminates the top-level report kind.
type ReportType string

const (
	ReportTypeChat    ReportType = "chat"
	ReportTypeExpense ReportType = "expense"
	ReportTypeIOU     ReportType = "iou"
	ReportTypeInvoice ReportType = "invoice"
	ReportTypeTask    ReportType = "task"
)

// ChatType refines chat reports into room subtypes.
type ChatType string

const (
	ChatTypePolicyAdmins      ChatType = "policyAdmins"
	ChatTypePolicyAnnounce    ChatType = "policyAnnounce"
	ChatTypePolicyRoom        ChatType = "policyRoom"
	ChatTypePolicyExpenseChat ChatType = "policyExpenseChat"
	ChatTypeDomainAll         ChatType = "domainAll"
	ChatTypeGroup             ChatType = "group"
	ChatTypeSelfDM            ChatType = "selfDM"
	ChatTypeTripRoom          ChatType = "tripRoom"
	ChatTypeInvoiceRoom       ChatType = "invoice"
	ChatTypeSystem            ChatType = "system"
)

// StateNum is the coarse lifecycle position of a report.
type StateNum int

const (
	StateOpen      StateNum = 0
	StateSubmitted StateNum = 1
	StateApproved  StateNum = 2
	StateBilling   StateNum = 3
)

// StatusNum is the fine lifecycle position paired with StateNum.
type StatusNum int

const (
	StatusOpen       StatusNum = 0
	StatusSubmitted  StatusNum = 1
	StatusClosed     StatusNum = 2
	StatusApproved   StatusNum = 3
	StatusReimbursed StatusNum = 4
)

// NotificationPreference controls how a participant is alerted.
type NotificationPreference string

const (
	NotificationAlways NotificationPreference = "always"
	NotificationDaily  NotificationPreference = "daily"
	NotificationMute   NotificationPreference = "mute"
	NotificationHidden NotificationPreference = "hidden"
)

// Participant holds per-account settings inside a report.
type Participant struct {
	NotificationPreference NotificationPreference `json:"notificationPreference"`
	Role                   string                 `json:"role,omitempty"`
}

// InvoiceReceiverType discriminates who an invoice is addressed to.
type InvoiceReceiverType string

const (
	InvoiceReceiverIndividual InvoiceReceiverType = "individual"
	InvoiceReceiverBusiness   InvoiceReceiverType = "policy"
)

// InvoiceReceiver is the counterparty of an invoice room / report.
type InvoiceReceiver struct {
	Type      InvoiceReceiverType `json:"type"`
	AccountID int64               `json:"accountID,omitempty"`
	PolicyID  string              `json:"policyID,omitempty"`
}

// PendingAction marks an offline mutation awaiting server confirmation.
type PendingAction string

const (
	PendingActionAdd    PendingAction = "add"
	PendingActionUpdate PendingAction = "update"
	PendingActionDelete PendingAction = "delete"
)

// TripData holds travel-room metadata attached to a trip chat.
type TripData struct {
	TripID      string `json:"tripID,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	CustomTitle string `json:"customTitle,omitempty"`
}

// Report is a conversational/financial container. A report with both
// ParentReportID and ParentReportActionID set is a thread; the pair is
// atomic, one without the other is invalid.
type Report struct {
	ReportID                   string                   `db:"report_id" json:"reportID"`
	Type                       ReportType               `db:"type" json:"type"`
	ChatType                   ChatType                 `db:"chat_type" json:"chatType,omitempty"`
	ReportName                 string                   `db:"report_name" json:"reportName,omitempty"`
	Description                string                   `db:"description" json:"description,omitempty"`
	StateNum                   StateNum                 `db:"state_num" json:"stateNum"`
	StatusNum                  StatusNum                `db:"status_num" json:"statusNum"`
	OwnerAccountID             int64                    `db:"owner_account_id" json:"ownerAccountID,omitempty"`
	ManagerID                  int64                    `db:"manager_id" json:"managerID,omitempty"`
	PolicyID                   string                   `db:"policy_id" json:"policyID,omitempty"`
	PolicyName                 string                   `db:"policy_name" json:"policyName,omitempty"`
	OldPolicyName              string                   `db:"old_policy_name" json:"oldPolicyName,omitempty"`
	Currency                   string                   `db:"currency" json:"currency,omitempty"`
	Total                      int64                    `db:"total" json:"total"`
	UnheldTotal                int64                    `db:"unheld_total" json:"unheldTotal"`
	NonReimbursableTotal       int64                    `db:"non_reimbursable_total" json:"nonReimbursableTotal"`
	ParentReportID             string                   `db:"parent_report_id" json:"parentReportID,omitempty"`
	ParentReportActionID       string                   `db:"parent_report_action_id" json:"parentReportActionID,omitempty"`
	Participants               map[int64]Participant    `db:"-" json:"participants,omitempty"`
	InvoiceReceiver            *InvoiceReceiver         `db:"-" json:"invoiceReceiver,omitempty"`
	TripData                   *TripData                `db:"-" json:"tripData,omitempty"`
	IsOwnPolicyExpenseChat     bool                     `db:"is_own_policy_expense_chat" json:"isOwnPolicyExpenseChat,omitempty"`
	IsPinned                   bool                     `db:"is_pinned" json:"isPinned,omitempty"`
	IsArchived                 bool                     `db:"is_archived" json:"isArchived,omitempty"`
	IsWaitingOnBankAccount     bool                     `db:"is_waiting_on_bank_account" json:"isWaitingOnBankAccount,omitempty"`
	LastMessageText            string                   `db:"last_message_text" json:"lastMessageText,omitempty"`
	LastReadTime               string                   `db:"last_read_time" json:"lastReadTime,omitempty"`
	LastMentionedTime          string                   `db:"last_mentioned_time" json:"lastMentionedTime,omitempty"`
	HasOutstandingChildRequest bool                     `db:"has_outstanding_child_request" json:"hasOutstandingChildRequest,omitempty"`
	LastVisibleActionCreated   string                   `db:"last_visible_action_created" json:"lastVisibleActionCreated,omitempty"`
	ErrorFields                map[string]string        `db:"-" json:"errorFields,omitempty"`
	PendingFields              map[string]PendingAction `db:"-" json:"pendingFields,omitempty"`
	PendingAction              PendingAction            `db:"pending_action" json:"pendingAction,omitempty"`
	Created                    string                   `db:"created" json:"created,omitempty"`
}

// IsThread reports whether the parent back-reference pair is present.
func (r *Report) IsThread() bool {
	return r != nil && r.ParentReportID != "" && r.ParentReportActionID != ""
}

// HasParticipant reports membership of an account in the participant map.
func (r *Report) HasParticipant(accountID int64) bool {
	if r == nil {
		return false
	}
	_, ok := r.Participants[accountID]
	return ok
}

// OtherParticipants returns participant account IDs excluding the given one,
// in ascending order so derived titles are deterministic.
func (r *Report) OtherParticipants(excludeAccountID int64) []int64 {
	if r == nil {
		return nil
	}
	out := make([]int64, 0, len(r.Participants))
	for accountID := range r.Participants {
		if accountID == excludeAccountID {
			continue
		}
		out = append(out, accountID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
