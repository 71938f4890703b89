package engine

import (
	"strings"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
	"github.com/noah-isme/spendchat-engine/pkg/markup"
)

// maxTitleParticipants caps how many names a derived chat title lists.
const maxTitleParticipants = 5

// Namer computes report display names. It holds only injected services, so
// one Namer is safe to share across snapshots.
type Namer struct {
	tr     localize.Translator
	markup markup.Renderer
}

// NewNamer constructs a Namer.
func NewNamer(tr localize.Translator, renderer markup.Renderer) *Namer {
	return &Namer{tr: tr, markup: renderer}
}

// ReportName resolves the display title of a report by walking the rule
// cascade in order; the first matching rule wins. The archived suffix is
// appended exactly once, unless the matching rule wraps internally.
func (n *Namer) ReportName(s *Snapshot, r *models.Report) string {
	if r == nil {
		return ""
	}
	for _, rule := range nameRules {
		name, ok := rule.resolve(n, s, r)
		if !ok {
			continue
		}
		if IsArchivedReport(r) && !rule.handlesArchive {
			name += n.tr.Translate("report.archivedSuffix", nil)
		}
		return name
	}
	return ""
}

// archiveWrap appends the archived suffix; used by rules that handle
// archival internally.
func (n *Namer) archiveWrap(name string) string {
	return name + n.tr.Translate("report.archivedSuffix", nil)
}

// displayName renders an account's long-form name, degrading to "Hidden"
// so titles never go blank.
func (n *Namer) displayName(s *Snapshot, accountID int64) string {
	if name := s.Details(accountID).FullName(); name != "" {
		return name
	}
	return n.tr.Translate("common.hidden", nil)
}

// shortName renders an account's short-form name with the same fallback.
func (n *Namer) shortName(s *Snapshot, accountID int64) string {
	if name := s.Details(accountID).ShortName(); name != "" {
		return name
	}
	return n.tr.Translate("common.hidden", nil)
}

// groupChatTitle titles a group chat from its membership: exactly one other
// participant uses the "{name}'s chat" template, more fall back to the
// comma-joined short names.
func (n *Namer) groupChatTitle(s *Snapshot, r *models.Report) string {
	others := r.OtherParticipants(s.CurrentAccountID)
	if len(others) == 1 {
		return n.tr.Translate("report.namesChat", localize.Params{"name": n.displayName(s, others[0])})
	}
	return n.joinShortNames(s, others)
}

// participantsTitle joins the other participants' short names; the plain
// form used everywhere outside the group-chat rule.
func (n *Namer) participantsTitle(s *Snapshot, r *models.Report) string {
	return n.joinShortNames(s, r.OtherParticipants(s.CurrentAccountID))
}

// joinShortNames joins up to maxTitleParticipants short names, with an
// ellipsis when the list was cut.
func (n *Namer) joinShortNames(s *Snapshot, others []int64) string {
	truncated := false
	if len(others) > maxTitleParticipants {
		others = others[:maxTitleParticipants]
		truncated = true
	}
	names := make([]string, 0, len(others))
	for _, accountID := range others {
		names = append(names, n.shortName(s, accountID))
	}
	title := strings.Join(names, ", ")
	if truncated {
		title += "…"
	}
	return title
}

// actionText renders an action's visible text, preferring plain text and
// falling back to stripped HTML.
func (n *Namer) actionText(action *models.ReportAction) string {
	if action == nil {
		return ""
	}
	if action.Message.Text != "" {
		return action.Message.Text
	}
	return n.markup.ToPlainText(action.Message.HTML)
}

// payerName resolves who pays a money request: the workspace for expense
// reports, the manager for IOUs.
func (n *Namer) payerName(s *Snapshot, r *models.Report) string {
	if IsExpenseReport(r) {
		if policy := s.Policy(r.PolicyID); policy != nil && policy.Name != "" {
			return policy.Name
		}
		if r.PolicyName != "" {
			return r.PolicyName
		}
	}
	return n.displayName(s, r.ManagerID)
}

// moneyRequestName implements the money-request naming decision order:
// stored name (expense only), approved sentence, pending-bank suffix,
// non-reimbursable spent sentence, owes sentence, paid sentence.
func (n *Namer) moneyRequestName(s *Snapshot, r *models.Report) string {
	if IsExpenseReport(r) && r.ReportName != "" {
		return r.ReportName
	}
	breakdown := GetSpendBreakdown(r)
	params := localize.Params{
		"payer":  n.payerName(s, r),
		"amount": localize.FormatAmount(breakdown.TotalDisplaySpend, r.Currency),
	}
	if IsReportApproved(r) {
		return n.tr.Translate("iou.payerApprovedAmount", params)
	}
	if r.IsWaitingOnBankAccount {
		return n.tr.Translate("iou.payerPaidAmount", params) + " • " + n.tr.Translate("iou.pending", nil)
	}
	if !IsSettled(r) && HasNonReimbursableTransactions(r) {
		return n.tr.Translate("iou.payerSpentAmount", params)
	}
	if IsOpenReport(r) || IsProcessingReport(r) || breakdown.TotalDisplaySpend == 0 {
		return n.tr.Translate("iou.payerOwesAmount", params)
	}
	switch n.lastPaymentMethod(s, r) {
	case models.PaymentElsewhere:
		return n.tr.Translate("iou.paidElsewhere", params)
	case models.PaymentWithProduct:
		return n.tr.Translate("iou.paidWithProduct", params)
	default:
		return n.tr.Translate("iou.payerPaidAmount", params)
	}
}

// lastPaymentMethod finds how the report was settled, if it was.
func (n *Namer) lastPaymentMethod(s *Snapshot, r *models.Report) models.PaymentMethod {
	actions := s.SortedActions(r.ReportID)
	for i := len(actions) - 1; i >= 0; i-- {
		payload, ok := actions[i].OriginalMessage.(*models.IOUPayload)
		if ok && payload.Type == models.IOUTypePay {
			return payload.PaymentType
		}
	}
	return ""
}

// invoiceName resolves the counterparty name shown on invoice reports and
// rooms. Business receivers show their workspace name unless the viewer is
// on the sending side, in which case the sender's workspace name is used.
func (n *Namer) invoiceName(s *Snapshot, r *models.Report) string {
	room := r
	if !IsInvoiceRoom(room) {
		if parent := s.ParentReport(r); IsInvoiceRoom(parent) {
			room = parent
		}
	}
	receiver := room.InvoiceReceiver
	if receiver == nil {
		return n.participantsTitle(s, r)
	}
	if receiver.Type == models.InvoiceReceiverIndividual {
		return n.displayName(s, receiver.AccountID)
	}
	sender := s.Policy(room.PolicyID)
	if sender != nil {
		if _, viewerOnSenderSide := sender.Employee(s.CurrentLogin); viewerOnSenderSide {
			return sender.Name
		}
	}
	if receiverPolicy := s.Policy(receiver.PolicyID); receiverPolicy != nil {
		return receiverPolicy.Name
	}
	return n.tr.Translate("common.hidden", nil)
}
