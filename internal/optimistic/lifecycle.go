package optimistic

import (
	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// LifecycleResult carries one synthesized workflow action and its batches.
type LifecycleResult struct {
	Action *models.ReportAction
	Report *models.Report
	Set    models.MutationSet
}

// buildLifecycle synthesizes one workflow action on the report and, when a
// state transition applies, advances the report's state/status pair with
// rollback to the prior pair on failure.
func (b *Builder) buildLifecycle(report *models.Report, name models.ActionName, payload models.ActionPayload, text string, state models.StateNum, status models.StatusNum, transition bool) LifecycleResult {
	action := b.newAction(report.ReportID, name, b.clock.Now(), textMessage(text), payload)

	var set models.MutationSet
	addNewAction(&set, action)

	updated := cloneReport(report)
	if transition {
		prior := cloneReport(report)
		updated.StateNum = state
		updated.StatusNum = status
		addUpdatedReport(&set, updated, prior)
	}

	return LifecycleResult{Action: action, Report: updated, Set: set}
}

// displayTotal is the sign-corrected amount used in workflow messages.
func displayTotal(report *models.Report) int64 {
	if report.Type == models.ReportTypeExpense && report.Total < 0 {
		return -report.Total
	}
	return report.Total
}

func (b *Builder) amountParams(report *models.Report) localize.Params {
	return localize.Params{"amount": localize.FormatAmount(displayTotal(report), report.Currency)}
}

// BuildSubmit moves an open report into the approval pipeline. Harvested
// marks scheduled auto-submission rather than a manual submit.
func (b *Builder) BuildSubmit(report *models.Report, harvested bool) LifecycleResult {
	key := "report.actions.submitted"
	if harvested {
		key = "report.actions.submittedHarvested"
	}
	return b.buildLifecycle(report, models.ActionSubmitted,
		&models.SubmittedPayload{Amount: displayTotal(report), Currency: report.Currency, Harvested: harvested},
		b.translator.Translate(key, b.amountParams(report)),
		models.StateSubmitted, models.StatusSubmitted, true)
}

// BuildApprove records a final approval.
func (b *Builder) BuildApprove(report *models.Report) LifecycleResult {
	return b.buildLifecycle(report, models.ActionApproved,
		&models.ApprovedPayload{Amount: displayTotal(report), Currency: report.Currency},
		b.translator.Translate("report.actions.approved", b.amountParams(report)),
		models.StateApproved, models.StatusApproved, true)
}

// BuildUnapprove walks an approved report back to the outstanding state.
func (b *Builder) BuildUnapprove(report *models.Report) LifecycleResult {
	return b.buildLifecycle(report, models.ActionUnapproved,
		&models.UnapprovedPayload{Amount: displayTotal(report), Currency: report.Currency},
		b.translator.Translate("report.actions.unapproved", b.amountParams(report)),
		models.StateSubmitted, models.StatusSubmitted, true)
}

// BuildForward records an intermediate approval handing the report to the
// next approver in the chain.
func (b *Builder) BuildForward(report *models.Report, nextApproverAccountID int64, nextApproverLogin string) LifecycleResult {
	params := b.amountParams(report)
	key := "report.actions.forwarded"
	if nextApproverLogin != "" {
		key = "report.actions.forwardedTo"
		params["to"] = nextApproverLogin
	}
	result := b.buildLifecycle(report, models.ActionForwarded,
		&models.ForwardedPayload{Amount: displayTotal(report), Currency: report.Currency, To: nextApproverLogin},
		b.translator.Translate(key, params),
		models.StateSubmitted, models.StatusSubmitted, true)
	if nextApproverAccountID != 0 {
		result.Report.ManagerID = nextApproverAccountID
	}
	return result
}

// BuildClose closes a report without payment.
func (b *Builder) BuildClose(report *models.Report, reason models.ClosedReason) LifecycleResult {
	if reason == "" {
		reason = models.ClosedReasonDefault
	}
	return b.buildLifecycle(report, models.ActionClosed,
		&models.ClosedPayload{Reason: reason},
		b.translator.Translate("report.actions.closed", nil),
		models.StateApproved, models.StatusClosed, true)
}

// BuildReopen returns a closed or retracted report to the open state.
func (b *Builder) BuildReopen(report *models.Report) LifecycleResult {
	return b.buildLifecycle(report, models.ActionReopened,
		&models.ReopenedPayload{},
		b.translator.Translate("report.actions.reopened", nil),
		models.StateOpen, models.StatusOpen, true)
}

// BuildRetract pulls a submitted report back before approval.
func (b *Builder) BuildRetract(report *models.Report) LifecycleResult {
	return b.buildLifecycle(report, models.ActionRetracted,
		&models.RetractedPayload{},
		b.translator.Translate("report.actions.retracted", nil),
		models.StateOpen, models.StatusOpen, true)
}

// BuildReject bounces a submitted report back to its owner.
func (b *Builder) BuildReject(report *models.Report) LifecycleResult {
	return b.buildLifecycle(report, models.ActionRejected,
		&models.RejectedPayload{},
		b.translator.Translate("report.actions.rejected", nil),
		models.StateOpen, models.StatusOpen, true)
}

// BuildRename retitles a room, updating the stored name optimistically.
func (b *Builder) BuildRename(report *models.Report, newName string) LifecycleResult {
	result := b.buildLifecycle(report, models.ActionRenamed,
		&models.RenamedPayload{OldName: report.ReportName, NewName: newName},
		b.translator.Translate("report.actions.renamed", localize.Params{"newName": newName, "oldName": report.ReportName}),
		0, 0, false)

	prior := cloneReport(report)
	updated := cloneReport(report)
	updated.ReportName = newName
	if updated.PendingFields == nil {
		updated.PendingFields = map[string]models.PendingAction{}
	}
	updated.PendingFields["reportName"] = models.PendingActionUpdate
	addUpdatedReport(&result.Set, updated, prior)

	cleared := cloneReport(updated)
	delete(cleared.PendingFields, "reportName")
	result.Set.Success = append(result.Set.Success, models.WriteOp{
		Method: models.WriteSet,
		Key:    models.ReportKey(report.ReportID),
		Value:  cleared,
	})
	result.Report = updated
	return result
}

// BuildHold places a transaction on hold with the reviewer's comment. The
// hold action lands on the transaction thread; the money report's unheld
// total shrinks by the held amount.
func (b *Builder) BuildHold(thread *models.Report, moneyReport *models.Report, txn *models.Transaction, comment string) LifecycleResult {
	result := b.buildLifecycle(thread, models.ActionHold,
		&models.HoldPayload{Comment: comment},
		b.translator.Translate("report.actions.hold", nil),
		0, 0, false)

	priorTxn := cloneTransaction(txn)
	heldTxn := cloneTransaction(txn)
	heldTxn.Comment.Hold = &models.HoldDetails{
		Comment:      comment,
		HeldBy:       b.actorAccountID,
		HoldActionID: result.Action.ReportActionID,
	}
	addUpdatedTransaction(&result.Set, heldTxn, priorTxn)

	if moneyReport != nil {
		prior := cloneReport(moneyReport)
		updated := cloneReport(moneyReport)
		updated.UnheldTotal -= txn.EffectiveAmount()
		addUpdatedReport(&result.Set, updated, prior)
		result.Report = updated
	}
	return result
}

// BuildUnhold releases a held transaction back into the approval flow.
func (b *Builder) BuildUnhold(thread *models.Report, moneyReport *models.Report, txn *models.Transaction) LifecycleResult {
	result := b.buildLifecycle(thread, models.ActionUnhold,
		&models.UnholdPayload{},
		b.translator.Translate("report.actions.unhold", nil),
		0, 0, false)

	priorTxn := cloneTransaction(txn)
	releasedTxn := cloneTransaction(txn)
	releasedTxn.Comment.Hold = nil
	addUpdatedTransaction(&result.Set, releasedTxn, priorTxn)

	if moneyReport != nil {
		prior := cloneReport(moneyReport)
		updated := cloneReport(moneyReport)
		updated.UnheldTotal += txn.EffectiveAmount()
		addUpdatedReport(&result.Set, updated, prior)
		result.Report = updated
	}
	return result
}

// BuildPay settles a money report. The payment method is recorded on the
// IOU action so titles can distinguish out-of-band settlements.
func (b *Builder) BuildPay(report *models.Report, method models.PaymentMethod) LifecycleResult {
	key := "iou.paidElsewhere"
	if method == models.PaymentWithProduct || method == models.PaymentVBBA {
		key = "iou.paidWithProduct"
	}
	text := b.translator.Translate(key, localize.Params{
		"payer":  b.actorLogin,
		"amount": localize.FormatAmount(displayTotal(report), report.Currency),
	})
	iouType := models.IOUTypePay
	result := b.buildLifecycle(report, models.ActionIOU,
		&models.IOUPayload{
			Type:        iouType,
			Amount:      displayTotal(report),
			Currency:    report.Currency,
			IOUReportID: report.ReportID,
			PaymentType: method,
		},
		text,
		models.StateApproved, models.StatusReimbursed, true)
	return result
}
