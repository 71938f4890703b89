package engine

import (
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

// Beta flags gating access-controlled surfaces.
const BetaDefaultRooms = "defaultRooms"

// Snapshot is the full transitive context a derivation needs. The engine
// never reaches for global state: callers assemble a Snapshot from the
// store and pass it in, which also makes every derivation safe to run
// concurrently against its own Snapshot.
type Snapshot struct {
	Reports         map[string]*models.Report
	Actions         map[string]map[string]*models.ReportAction
	Transactions    map[string]*models.Transaction
	Policies        map[string]*models.Policy
	PersonalDetails map[int64]*models.PersonalDetails
	Violations      map[string][]models.TransactionViolation
	Drafts          map[string]string
	Betas           map[string]bool

	CurrentAccountID int64
	CurrentLogin     string

	Logger *zap.Logger
}

func (s *Snapshot) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Report returns the report for the ID, or nil.
func (s *Snapshot) Report(reportID string) *models.Report {
	if s == nil || reportID == "" {
		return nil
	}
	return s.Reports[reportID]
}

// Policy returns the policy for the ID, or nil.
func (s *Snapshot) Policy(policyID string) *models.Policy {
	if s == nil || policyID == "" {
		return nil
	}
	return s.Policies[policyID]
}

// Details returns the personal details for an account, or nil.
func (s *Snapshot) Details(accountID int64) *models.PersonalDetails {
	if s == nil || accountID == 0 {
		return nil
	}
	return s.PersonalDetails[accountID]
}

// Action returns one action of one report, or nil.
func (s *Snapshot) Action(reportID, actionID string) *models.ReportAction {
	if s == nil || reportID == "" || actionID == "" {
		return nil
	}
	return s.Actions[reportID][actionID]
}

// SortedActions returns a report's actions ordered by creation timestamp,
// ties broken by action ID so the order is total.
func (s *Snapshot) SortedActions(reportID string) []*models.ReportAction {
	if s == nil {
		return nil
	}
	actions := make([]*models.ReportAction, 0, len(s.Actions[reportID]))
	for _, a := range s.Actions[reportID] {
		if a != nil {
			actions = append(actions, a)
		}
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Created != actions[j].Created {
			return actions[i].Created < actions[j].Created
		}
		return actions[i].ReportActionID < actions[j].ReportActionID
	})
	return actions
}

// TransactionsForReport returns the transactions owned by a report in
// creation order.
func (s *Snapshot) TransactionsForReport(reportID string) []*models.Transaction {
	if s == nil || reportID == "" || reportID == models.UnreportedReportID {
		return nil
	}
	out := make([]*models.Transaction, 0, 4)
	for _, t := range s.Transactions {
		if t != nil && t.ReportID == reportID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created != out[j].Created {
			return out[i].Created < out[j].Created
		}
		return out[i].TransactionID < out[j].TransactionID
	})
	return out
}

// Transaction returns a transaction by ID, or nil.
func (s *Snapshot) Transaction(transactionID string) *models.Transaction {
	if s == nil || transactionID == "" {
		return nil
	}
	return s.Transactions[transactionID]
}

// ParentAction resolves the action a thread hangs under, or nil.
func (s *Snapshot) ParentAction(report *models.Report) *models.ReportAction {
	if !report.IsThread() {
		return nil
	}
	return s.Action(report.ParentReportID, report.ParentReportActionID)
}

// ParentReport resolves a thread's parent report, or nil.
func (s *Snapshot) ParentReport(report *models.Report) *models.Report {
	if report == nil {
		return nil
	}
	return s.Report(report.ParentReportID)
}

// RootParentReport walks the parent chain to the top. The chain is acyclic
// by construction, but a corrupt snapshot must not hang the caller: on a
// detected cycle the walk aborts and returns nil ("no root found").
func (s *Snapshot) RootParentReport(report *models.Report) *models.Report {
	if report == nil {
		return nil
	}
	visited := map[string]bool{report.ReportID: true}
	current := report
	for current.ParentReportID != "" {
		parent := s.Report(current.ParentReportID)
		if parent == nil {
			return current
		}
		if visited[parent.ReportID] {
			s.logger().Warn("parent report chain contains a cycle",
				zap.String("report_id", report.ReportID),
				zap.String("cycle_at", parent.ReportID))
			return nil
		}
		visited[parent.ReportID] = true
		current = parent
	}
	return current
}
