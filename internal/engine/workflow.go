package engine

import (
	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// SemanticState is the human meaning of a (stateNum, statusNum) pair.
type SemanticState string

const (
	SemanticDraft       SemanticState = "draft"
	SemanticOutstanding SemanticState = "outstanding"
	SemanticDone        SemanticState = "done"
	SemanticApproved    SemanticState = "approved"
	SemanticPaid        SemanticState = "paid"
	SemanticUnknown     SemanticState = "unknown"
)

// GetSemanticState maps the lifecycle pair onto its meaning. The table here
// is canonical; nothing else re-derives it.
func GetSemanticState(stateNum models.StateNum, statusNum models.StatusNum) SemanticState {
	switch {
	case stateNum == models.StateOpen && statusNum == models.StatusOpen:
		return SemanticDraft
	case stateNum == models.StateSubmitted && statusNum == models.StatusSubmitted:
		return SemanticOutstanding
	case stateNum == models.StateApproved && statusNum == models.StatusClosed:
		return SemanticDone
	case stateNum == models.StateApproved && statusNum == models.StatusApproved:
		return SemanticApproved
	case stateNum == models.StateApproved && statusNum == models.StatusReimbursed:
		return SemanticPaid
	case stateNum == models.StateBilling && statusNum == models.StatusReimbursed:
		return SemanticPaid
	default:
		return SemanticUnknown
	}
}

// GetReportStatusTranslation renders the semantic state for display.
func GetReportStatusTranslation(stateNum models.StateNum, statusNum models.StatusNum, tr localize.Translator) string {
	switch GetSemanticState(stateNum, statusNum) {
	case SemanticDraft:
		return tr.Translate("report.status.draft", nil)
	case SemanticOutstanding:
		return tr.Translate("report.status.outstanding", nil)
	case SemanticDone:
		return tr.Translate("report.status.done", nil)
	case SemanticApproved:
		return tr.Translate("report.status.approved", nil)
	case SemanticPaid:
		return tr.Translate("report.status.paid", nil)
	default:
		return tr.Translate("report.status.unknown", nil)
	}
}

// GetExpenseReportStateAndStatus selects the lifecycle pair a freshly
// created expense report starts in, from policy settings.
func GetExpenseReportStateAndStatus(p *models.Policy) (models.StateNum, models.StatusNum) {
	if p == nil {
		return models.StateOpen, models.StatusOpen
	}
	if p.ASAPSubmit {
		return models.StateOpen, models.StatusOpen
	}
	if p.IsInstantSubmit() && p.IsSubmitAndClose() && p.PaymentsDisabled() {
		return models.StateApproved, models.StatusClosed
	}
	if p.IsInstantSubmit() {
		return models.StateSubmitted, models.StatusSubmitted
	}
	return models.StateOpen, models.StatusOpen
}

// forwardTarget resolves the next approver after the given one, honoring
// the per-employee over-limit escalation.
func forwardTarget(p *models.Policy, approverEmail string, total int64) string {
	employee, ok := p.Employee(approverEmail)
	if !ok {
		return ""
	}
	if employee.ApprovalLimit > 0 && employee.OverLimitForwardsTo != "" && absAmount(total) > employee.ApprovalLimit {
		return employee.OverLimitForwardsTo
	}
	return employee.ForwardsTo
}

func absAmount(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// firstApprover resolves who a submitter's report lands with first.
func firstApprover(p *models.Policy, submitterEmail string) string {
	if employee, ok := p.Employee(submitterEmail); ok && employee.SubmitsTo != "" {
		return employee.SubmitsTo
	}
	if p.Approver != "" {
		return p.Approver
	}
	return p.Owner
}

// ruleApprovers collects category/tag rule approvers for the report's
// transactions, in transaction order, excluding the submitter.
func ruleApprovers(s *Snapshot, p *models.Policy, r *models.Report, submitterEmail string) []string {
	if len(p.ApprovalRules) == 0 {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, t := range s.TransactionsForReport(r.ReportID) {
		for _, rule := range p.ApprovalRules {
			var match bool
			switch rule.Field {
			case models.RuleFieldCategory:
				match = rule.Value != "" && rule.Value == t.Category
			case models.RuleFieldTag:
				match = rule.Value != "" && rule.Value == t.Tag
			}
			if !match || rule.ApproverEmail == "" || rule.ApproverEmail == submitterEmail || seen[rule.ApproverEmail] {
				continue
			}
			seen[rule.ApproverEmail] = true
			out = append(out, rule.ApproverEmail)
		}
	}
	return out
}

// GetApprovalChain returns the ordered approver logins a report must pass
// through. Submit-and-close policies have no chain. The forwarding walk
// refuses to re-add an approver it has already placed, so a forwarding
// loop terminates as "chain complete" after at most one visit per
// distinct approver.
func GetApprovalChain(s *Snapshot, p *models.Policy, r *models.Report) []string {
	if p == nil || r == nil || p.IsSubmitAndClose() {
		return nil
	}
	submitter := s.Details(r.OwnerAccountID)
	submitterEmail := ""
	if submitter != nil {
		submitterEmail = submitter.Login
	}

	chain := ruleApprovers(s, p, r, submitterEmail)
	inChain := make(map[string]bool, len(chain))
	for _, email := range chain {
		inChain[email] = true
	}

	approver := firstApprover(p, submitterEmail)
	for i := 0; approver != "" && i <= len(p.Employees); i++ {
		if inChain[approver] {
			break
		}
		inChain[approver] = true
		chain = append(chain, approver)
		approver = forwardTarget(p, approver, r.Total)
	}

	if p.PreventSelfApproval && len(chain) > 0 && chain[len(chain)-1] == submitterEmail {
		chain = chain[:len(chain)-1]
	}
	return chain
}

// NextApproverAccountID resolves who should act after an approval
// regression (unapprove). If the current user sits anywhere in the chain
// they take over; otherwise the report's manager keeps it.
func NextApproverAccountID(s *Snapshot, r *models.Report) int64 {
	if s == nil || r == nil {
		return 0
	}
	policy := s.Policy(r.PolicyID)
	for _, email := range GetApprovalChain(s, policy, r) {
		if email != "" && email == s.CurrentLogin {
			return s.CurrentAccountID
		}
	}
	return r.ManagerID
}

// AccountIDForLogin resolves a chain entry back to an account, or 0.
func AccountIDForLogin(s *Snapshot, login string) int64 {
	if s == nil || login == "" {
		return 0
	}
	for accountID, details := range s.PersonalDetails {
		if details != nil && details.Login == login {
			return accountID
		}
	}
	return 0
}
