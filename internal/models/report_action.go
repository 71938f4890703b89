package models

import "encoding/json"

// ActionName enumerates the supported report action kinds.
type ActionName string

const (
	ActionCreated               ActionName = "CREATED"
	ActionAddComment            ActionName = "ADDCOMMENT"
	ActionIOU                   ActionName = "IOU"
	ActionReportPreview         ActionName = "REPORTPREVIEW"
	ActionSubmitted             ActionName = "SUBMITTED"
	ActionApproved              ActionName = "APPROVED"
	ActionUnapproved            ActionName = "UNAPPROVED"
	ActionForwarded             ActionName = "FORWARDED"
	ActionRejected              ActionName = "REJECTED"
	ActionRetracted             ActionName = "RETRACTED"
	ActionReopened              ActionName = "REOPENED"
	ActionClosed                ActionName = "CLOSED"
	ActionRenamed               ActionName = "RENAMED"
	ActionHold                  ActionName = "HOLD"
	ActionUnhold                ActionName = "UNHOLD"
	ActionModifiedExpense       ActionName = "MODIFIEDEXPENSE"
	ActionMoved                 ActionName = "MOVED"
	ActionChangePolicy          ActionName = "CHANGEPOLICY"
	ActionCardIssued            ActionName = "CARDISSUED"
	ActionTravelUpdate          ActionName = "TRAVEL_UPDATE"
	ActionIntegrationSyncFailed ActionName = "INTEGRATIONSYNCFAILED"
	ActionTask                  ActionName = "TASK"
	ActionTaskCompleted         ActionName = "TASKCOMPLETED"
	ActionTaskReopened          ActionName = "TASKREOPENED"
	ActionTaskCancelled         ActionName = "TASKCANCELLED"
	ActionOldSystem             ActionName = "OLDDOT"

	ActionPolicyChangeLogUpdateName     ActionName = "POLICYCHANGELOG_UPDATE_NAME"
	ActionPolicyChangeLogAddEmployee    ActionName = "POLICYCHANGELOG_ADD_EMPLOYEE"
	ActionPolicyChangeLogDeleteEmployee ActionName = "POLICYCHANGELOG_DELETE_EMPLOYEE"
)

// ModerationDecision is the moderation verdict applied to a message.
type ModerationDecision string

const (
	ModerationPending  ModerationDecision = "pending"
	ModerationApproved ModerationDecision = "approved"
	ModerationHidden   ModerationDecision = "hidden"
)

// Message is the rendered content pair of an action.
type Message struct {
	HTML                  string             `json:"html,omitempty"`
	Text                  string             `json:"text,omitempty"`
	IsDeletedParentAction bool               `json:"isDeletedParentAction,omitempty"`
	Moderation            ModerationDecision `json:"moderationDecision,omitempty"`
}

// ReportAction is one event in a report's action stream. Once the server
// confirms it the record is immutable; PendingAction marks the offline
// window in between.
type ReportAction struct {
	ReportActionID  string        `db:"report_action_id" json:"reportActionID"`
	ReportID        string        `db:"report_id" json:"reportID"`
	ActionName      ActionName    `db:"action_name" json:"actionName"`
	ActorAccountID  int64         `db:"actor_account_id" json:"actorAccountID"`
	Created         string        `db:"created" json:"created"`
	Message         Message       `db:"-" json:"message"`
	OriginalMessage ActionPayload `db:"-" json:"originalMessage,omitempty"`
	ChildReportID   string        `db:"child_report_id" json:"childReportID,omitempty"`
	PendingAction   PendingAction `db:"pending_action" json:"pendingAction,omitempty"`
	IsAttachment    bool          `db:"is_attachment" json:"isAttachmentOnly,omitempty"`
}

// UnmarshalJSON decodes the action and resolves originalMessage into its
// typed payload based on the action name.
func (a *ReportAction) UnmarshalJSON(data []byte) error {
	type alias ReportAction
	aux := struct {
		*alias
		OriginalMessage json.RawMessage `json:"originalMessage,omitempty"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.OriginalMessage) == 0 || string(aux.OriginalMessage) == "null" {
		a.OriginalMessage = nil
		return nil
	}
	payload, err := DecodePayload(a.ActionName, aux.OriginalMessage)
	if err != nil {
		return err
	}
	a.OriginalMessage = payload
	return nil
}

// IsDeleted reports whether the action's content was soft-deleted.
func (a *ReportAction) IsDeleted() bool {
	return a != nil && (a.Message.IsDeletedParentAction || (a.Message.HTML == "" && a.Message.Text == "" && a.ActionName == ActionAddComment && a.PendingAction != PendingActionAdd))
}

// IsHidden reports whether moderation removed the action from display.
func (a *ReportAction) IsHidden() bool {
	return a != nil && a.Message.Moderation == ModerationHidden
}

// IsPendingRemoval reports whether the action is queued for deletion offline.
func (a *ReportAction) IsPendingRemoval() bool {
	return a != nil && a.PendingAction == PendingActionDelete
}
