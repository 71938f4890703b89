package engine

import (
	"strconv"
	"strings"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// nameRule is one step of the naming cascade. resolve returns the computed
// name and whether the rule claimed the report; unclaimed reports fall
// through to the next rule. Rules that append the archived suffix
// themselves set handlesArchive so the outer wrap is skipped.
type nameRule struct {
	name           string
	handlesArchive bool
	resolve        func(n *Namer, s *Snapshot, r *models.Report) (string, bool)
}

// nameRules is evaluated strictly in order; the first match wins.
var nameRules = []nameRule{
	{name: "parent-system-message", resolve: (*Namer).parentSystemMessageName},
	{name: "task", resolve: (*Namer).taskName},
	{name: "chat-thread", handlesArchive: true, resolve: (*Namer).chatThreadName},
	{name: "empty-closed-expense", resolve: (*Namer).emptyClosedExpenseName},
	{name: "group-chat", resolve: (*Namer).groupChatName},
	{name: "chat-room", resolve: (*Namer).chatRoomName},
	{name: "policy-expense-chat", resolve: (*Namer).policyExpenseChatName},
	{name: "money-request", resolve: (*Namer).moneyRequestRuleName},
	{name: "invoice", resolve: (*Namer).invoiceRuleName},
	{name: "self-dm", resolve: (*Namer).selfDMName},
	{name: "participants-fallback", resolve: (*Namer).participantsFallbackName},
}

// parentSystemMessageName renders the title of a thread spawned from a
// workflow or audit action. These pre-empt every later rule regardless of
// the thread's own type.
func (n *Namer) parentSystemMessageName(s *Snapshot, r *models.Report) (string, bool) {
	parent := s.ParentAction(r)
	if parent == nil {
		return "", false
	}
	return n.systemMessage(s, parent)
}

// systemMessage formats the display sentence of a workflow/audit action
// from its typed payload.
func (n *Namer) systemMessage(s *Snapshot, action *models.ReportAction) (string, bool) {
	amountOf := func(amount int64, currency string) string {
		return localize.FormatAmount(amount, currency)
	}
	switch payload := action.OriginalMessage.(type) {
	case *models.SubmittedPayload:
		key := "report.actions.submitted"
		if payload.Harvested {
			key = "report.actions.submittedHarvested"
		}
		return n.tr.Translate(key, localize.Params{"amount": amountOf(payload.Amount, payload.Currency)}), true
	case *models.ForwardedPayload:
		params := localize.Params{"amount": amountOf(payload.Amount, payload.Currency)}
		if payload.To != "" {
			params["to"] = payload.To
			return n.tr.Translate("report.actions.forwardedTo", params), true
		}
		return n.tr.Translate("report.actions.forwarded", params), true
	case *models.RejectedPayload:
		return n.tr.Translate("report.actions.rejected", nil), true
	case *models.RetractedPayload:
		return n.tr.Translate("report.actions.retracted", nil), true
	case *models.ReopenedPayload:
		return n.tr.Translate("report.actions.reopened", nil), true
	case *models.ApprovedPayload:
		return n.tr.Translate("report.actions.approved", localize.Params{"amount": amountOf(payload.Amount, payload.Currency)}), true
	case *models.UnapprovedPayload:
		return n.tr.Translate("report.actions.unapproved", localize.Params{"amount": amountOf(payload.Amount, payload.Currency)}), true
	case *models.PolicyChangeLogPayload:
		switch action.ActionName {
		case models.ActionPolicyChangeLogUpdateName:
			return n.tr.Translate("report.actions.policyChangeLog.updateName", localize.Params{"newValue": payload.NewValue, "oldValue": payload.OldValue}), true
		case models.ActionPolicyChangeLogAddEmployee:
			return n.tr.Translate("report.actions.policyChangeLog.addEmployee", localize.Params{"email": payload.Email}), true
		case models.ActionPolicyChangeLogDeleteEmployee:
			return n.tr.Translate("report.actions.policyChangeLog.removeEmployee", localize.Params{"email": payload.Email}), true
		}
		return "", false
	case *models.ChangePolicyPayload:
		toName := payload.ToPolicyName
		if toName == "" {
			if policy := s.Policy(payload.ToPolicyID); policy != nil {
				toName = policy.Name
			}
		}
		return n.tr.Translate("report.actions.changePolicy", localize.Params{"toPolicyName": toName}), true
	case *models.CardIssuedPayload:
		return n.tr.Translate("report.actions.cardIssued", localize.Params{"assignee": n.displayName(s, payload.AssigneeAccountID)}), true
	case *models.TravelUpdatePayload:
		return n.tr.Translate("report.actions.travelUpdate", localize.Params{"operation": payload.Operation}), true
	case *models.IntegrationSyncFailedPayload:
		return n.tr.Translate("report.actions.integrationSyncFailed", localize.Params{"label": payload.Label, "error": payload.ErrorMessage}), true
	default:
		return "", false
	}
}

// taskName resolves task titles; canceled tasks show the deleted placeholder.
func (n *Namer) taskName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsTaskReport(r) {
		return "", false
	}
	if IsCanceledTaskReport(s, r) {
		return n.tr.Translate("task.deleted", nil), true
	}
	return n.markup.ToPlainText(r.ReportName), true
}

// chatThreadName resolves titles for threads under chat messages. The
// sub-cases are themselves ordered; archived threads wrap here so the
// suffix lands inside this rule exactly once.
func (n *Namer) chatThreadName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsChatThread(r) {
		return "", false
	}
	name, ok := n.chatThreadBaseName(s, r)
	if !ok {
		return "", false
	}
	if IsArchivedReport(r) {
		name = n.archiveWrap(name)
	}
	return name, true
}

func (n *Namer) chatThreadBaseName(s *Snapshot, r *models.Report) (string, bool) {
	parent := s.ParentAction(r)
	if parent == nil {
		// The parent action never arrived; degrade rather than fail.
		return n.tr.Translate("report.deletedMessage", nil), true
	}

	if IsTransactionThread(s, r) {
		return n.transactionThreadName(s, r), true
	}
	if payload, ok := parent.OriginalMessage.(*models.OldSystemPayload); ok {
		return payload.Text, true
	}
	if parent.ActionName == models.ActionRenamed {
		if payload, ok := parent.OriginalMessage.(*models.RenamedPayload); ok {
			return n.tr.Translate("report.actions.renamed", localize.Params{"newName": payload.NewName, "oldName": payload.OldName}), true
		}
	}
	if parent.IsDeleted() {
		return n.tr.Translate("report.deletedMessage", nil), true
	}
	if parent.IsAttachment {
		return n.tr.Translate("report.attachment", nil), true
	}
	if parent.IsHidden() {
		return n.tr.Translate("report.hiddenMessage", nil), true
	}
	if parentReport := s.ParentReport(r); IsAdminRoom(parentReport) || IsAnnounceRoom(parentReport) {
		return n.tr.Translate("report.invitedToRoom", localize.Params{"names": n.participantsTitle(s, r)}), true
	}
	if parent.ActionName == models.ActionModifiedExpense {
		if payload, ok := parent.OriginalMessage.(*models.ModifiedExpensePayload); ok {
			return n.modifiedExpenseMessage(payload), true
		}
	}
	if IsTripRoom(r) && r.TripData != nil && r.TripData.CustomTitle != "" {
		return r.TripData.CustomTitle, true
	}
	return n.actionText(parent), true
}

// modifiedExpenseMessage renders the field-change summary of an expense
// edit, one fragment per changed field.
func (n *Namer) modifiedExpenseMessage(payload *models.ModifiedExpensePayload) string {
	var fragments []string
	change := func(field, oldValue, newValue string) {
		switch {
		case oldValue == "" && newValue != "":
			fragments = append(fragments, n.tr.Translate("report.actions.modifiedExpense.set", localize.Params{"field": field, "new": newValue}))
		case oldValue != "" && newValue == "":
			fragments = append(fragments, n.tr.Translate("report.actions.modifiedExpense.removed", localize.Params{"field": field, "old": oldValue}))
		case oldValue != newValue:
			fragments = append(fragments, n.tr.Translate("report.actions.modifiedExpense.changed", localize.Params{"field": field, "new": newValue, "old": oldValue}))
		}
	}
	if payload.OldAmount != payload.Amount {
		currency := payload.Currency
		if currency == "" {
			currency = payload.OldCurrency
		}
		change("amount", formatIfNonZero(payload.OldAmount, payload.OldCurrency), formatIfNonZero(payload.Amount, currency))
	}
	change("merchant", payload.OldMerchant, payload.Merchant)
	change("category", payload.OldCategory, payload.Category)
	change("tag", payload.OldTag, payload.Tag)
	change("description", payload.OldComment, payload.NewComment)
	if len(fragments) == 0 {
		return n.tr.Translate("report.actions.modifiedExpense.generic", nil)
	}
	return strings.Join(fragments, "; ")
}

func formatIfNonZero(amount int64, currency string) string {
	if amount == 0 {
		return ""
	}
	return localize.FormatAmount(amount, currency)
}

// emptyClosedExpenseName shows the deleted placeholder for a closed
// expense report whose transactions are all gone.
func (n *Namer) emptyClosedExpenseName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsExpenseReport(r) || !IsClosedReport(r) {
		return "", false
	}
	if len(s.TransactionsForReport(r.ReportID)) > 0 {
		return "", false
	}
	return n.tr.Translate("report.deletedReport", nil), true
}

func (n *Namer) groupChatName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsGroupChat(r) {
		return "", false
	}
	if r.ReportName != "" {
		return r.ReportName, true
	}
	return n.groupChatTitle(s, r), true
}

func (n *Namer) chatRoomName(s *Snapshot, r *models.Report) (string, bool) {
	if IsTripRoom(r) {
		if r.TripData != nil && r.TripData.CustomTitle != "" {
			return r.TripData.CustomTitle, true
		}
		return r.ReportName, true
	}
	if !IsChatRoom(r) {
		return "", false
	}
	if IsInvoiceRoom(r) {
		return n.invoiceName(s, r), true
	}
	return r.ReportName, true
}

// policyExpenseChatName titles a member's workspace chat after its owner.
// A chat archived by an account merge keeps the dissolved workspace's name.
func (n *Namer) policyExpenseChatName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsPolicyExpenseChat(r) {
		return "", false
	}
	if IsArchivedReport(r) && r.OldPolicyName != "" {
		return r.OldPolicyName, true
	}
	return n.tr.Translate("workspace.memberExpenses", localize.Params{"name": n.displayName(s, r.OwnerAccountID)}), true
}

func (n *Namer) moneyRequestRuleName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsMoneyRequestReport(r) {
		return "", false
	}
	return n.moneyRequestName(s, r), true
}

func (n *Namer) invoiceRuleName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsInvoiceReport(r) {
		return "", false
	}
	return n.invoiceName(s, r), true
}

func (n *Namer) selfDMName(s *Snapshot, r *models.Report) (string, bool) {
	if !IsSelfDM(r) {
		return "", false
	}
	return n.tr.Translate("report.selfDM", localize.Params{"name": n.displayName(s, s.CurrentAccountID)}), true
}

func (n *Namer) participantsFallbackName(s *Snapshot, r *models.Report) (string, bool) {
	return n.participantsTitle(s, r), true
}

// scanningTitle renders the in-progress receipt indicator.
func (n *Namer) scanningTitle(count int) string {
	if count <= 1 {
		return n.tr.Translate("iou.receiptScanning", nil)
	}
	return n.tr.Translate("iou.receiptScanningMultiple", localize.Params{"count": strconv.Itoa(count)})
}
