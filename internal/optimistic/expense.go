package optimistic

import (
	"time"

	"github.com/noah-isme/spendchat-engine/internal/engine"
	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/clock"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// MoneyRequestParams describes a new money request. Chat is the target
// conversation and must be present; pass ChatIsNew when the chat itself was
// just synthesized and still needs its opening action. MoneyReport and
// ExistingThread are optional reuse targets; nil means the builder creates
// them.
type MoneyRequestParams struct {
	Chat           *models.Report
	ChatIsNew      bool
	MoneyReport    *models.Report
	Policy         *models.Policy
	PayeeAccountID int64
	PayerAccountID int64
	Amount         int64
	Currency       string
	Merchant       string
	Comment        string
	Created        string
	Reimbursable   bool
	Billable       bool
	IsTrack        bool
	ExistingThread *models.Report
}

// MoneyRequestResult carries every record a money request synthesizes plus
// the combined batches. ChatCreatedAction and ThreadCreatedAction are nil
// when the corresponding container was reused.
type MoneyRequestResult struct {
	Chat              *models.Report
	ChatCreatedAction *models.ReportAction
	MoneyReport       *models.Report
	ReportCreated     *models.ReportAction
	IOUAction         *models.ReportAction
	Transaction       *models.Transaction
	Thread            *models.Report
	ThreadCreated     *models.ReportAction
	Set               models.MutationSet
}

// BuildMoneyRequest synthesizes the full record graph of one money request:
// the money report (created if absent), the IOU action on the money report,
// the transaction, and the transaction thread parented under that action
// with reciprocal links back to it. Timestamps within the call are strictly
// increasing so the created action of a new report always sorts before its
// first content action.
func (b *Builder) BuildMoneyRequest(p MoneyRequestParams) MoneyRequestResult {
	var result MoneyRequestResult
	var set models.MutationSet

	now := b.clock.Now()
	iouAt := now
	reportCreatedAt := now.Add(-1 * time.Millisecond)
	chatCreatedAt := now.Add(-2 * time.Millisecond)

	result.Chat = p.Chat
	if p.ChatIsNew && p.Chat != nil {
		result.ChatCreatedAction = b.createdAction(p.Chat.ReportID, chatCreatedAt)
		addNewReport(&set, p.Chat)
		addNewAction(&set, result.ChatCreatedAction)
	}

	isExpense := p.Policy != nil && !p.IsTrack
	signed := p.Amount
	if isExpense {
		signed = -p.Amount
	}

	var priorReport *models.Report
	report := p.MoneyReport
	if report == nil {
		report = b.newMoneyReport(p, isExpense)
		result.ReportCreated = b.createdAction(report.ReportID, reportCreatedAt)
		addNewAction(&set, result.ReportCreated)
	} else {
		priorReport = cloneReport(report)
		report = cloneReport(report)
	}
	report.Total += signed
	report.UnheldTotal += signed
	if !p.Reimbursable {
		report.NonReimbursableTotal += signed
	}
	result.MoneyReport = report

	txn := b.newTransaction(p, report.ReportID)
	result.Transaction = txn
	addNewTransaction(&set, txn)

	iouType := models.IOUTypeCreate
	if p.IsTrack {
		iouType = models.IOUTypeTrack
	}
	iouAction := b.newAction(report.ReportID, models.ActionIOU, iouAt,
		textMessage(b.moneyRequestPreview(p)),
		&models.IOUPayload{
			Type:             iouType,
			Amount:           p.Amount,
			Currency:         p.Currency,
			Comment:          p.Comment,
			IOUTransactionID: txn.TransactionID,
			IOUReportID:      report.ReportID,
			ParticipantIDs:   []int64{p.PayerAccountID, p.PayeeAccountID},
		})
	result.IOUAction = iouAction

	thread := p.ExistingThread
	if thread == nil {
		thread = &models.Report{
			ReportID:       b.ids.New(),
			Type:           models.ReportTypeChat,
			ParentReportID: report.ReportID,
			PolicyID:       report.PolicyID,
			Participants: map[int64]models.Participant{
				b.actorAccountID: {},
			},
			PendingAction: models.PendingActionAdd,
			Created:       clock.DBTime(iouAt),
		}
		result.ThreadCreated = b.createdAction(thread.ReportID, iouAt.Add(1*time.Millisecond))
	} else {
		thread = cloneReport(thread)
	}

	// Reciprocal link: both sides or neither.
	iouAction.ChildReportID = thread.ReportID
	thread.ParentReportID = report.ReportID
	thread.ParentReportActionID = iouAction.ReportActionID
	result.Thread = thread

	addNewAction(&set, iouAction)
	if p.ExistingThread == nil {
		addNewReport(&set, thread)
		addNewAction(&set, result.ThreadCreated)
	} else {
		addUpdatedReport(&set, thread, cloneReport(p.ExistingThread))
	}

	if priorReport != nil {
		addUpdatedReport(&set, report, priorReport)
	} else {
		addNewReport(&set, report)
	}

	result.Set = set
	return result
}

// newMoneyReport creates the expense or IOU container, with workflow state
// derived from the policy's auto-reporting configuration.
func (b *Builder) newMoneyReport(p MoneyRequestParams, isExpense bool) *models.Report {
	report := &models.Report{
		ReportID:       b.ids.New(),
		OwnerAccountID: p.PayeeAccountID,
		ManagerID:      p.PayerAccountID,
		Currency:       p.Currency,
		ParentReportID: p.Chat.ReportID,
		PendingAction:  models.PendingActionAdd,
		Created:        clock.DBTime(b.clock.Now().Add(-1 * time.Millisecond)),
	}
	if isExpense {
		report.Type = models.ReportTypeExpense
		report.PolicyID = p.Policy.ID
		report.PolicyName = p.Policy.Name
		report.StateNum, report.StatusNum = engine.GetExpenseReportStateAndStatus(p.Policy)
	} else {
		report.Type = models.ReportTypeIOU
		report.StateNum = models.StateSubmitted
		report.StatusNum = models.StatusSubmitted
	}
	return report
}

// newTransaction creates the expense line owned by the money report.
func (b *Builder) newTransaction(p MoneyRequestParams, reportID string) *models.Transaction {
	created := p.Created
	if created == "" {
		created = b.clock.Now().Format("2006-01-02")
	}
	merchant := p.Merchant
	if merchant == "" {
		merchant = models.PartialMerchant
	}
	return &models.Transaction{
		TransactionID: b.ids.New(),
		ReportID:      reportID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Merchant:      merchant,
		Created:       created,
		Reimbursable:  p.Reimbursable,
		Billable:      p.Billable,
		Comment:       models.TransactionComment{Comment: p.Comment},
		PendingAction: models.PendingActionAdd,
	}
}

// moneyRequestPreview is the display text of the IOU action itself.
func (b *Builder) moneyRequestPreview(p MoneyRequestParams) string {
	amount := localize.FormatAmount(p.Amount, p.Currency)
	if p.Merchant != "" && p.Merchant != models.PartialMerchant {
		return b.translator.Translate("iou.amountForMerchant", localize.Params{"amount": amount, "merchant": p.Merchant})
	}
	return b.translator.Translate("iou.amountExpense", localize.Params{"amount": amount})
}

// createdAction is the opening action every new report carries.
func (b *Builder) createdAction(reportID string, at time.Time) *models.ReportAction {
	return b.newAction(reportID, models.ActionCreated, at,
		textMessage(b.translator.Translate("report.actions.created", nil)), nil)
}
