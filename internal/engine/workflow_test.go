package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

func TestGetSemanticState(t *testing.T) {
	cases := []struct {
		name   string
		state  models.StateNum
		status models.StatusNum
		want   SemanticState
	}{
		{"draft", models.StateOpen, models.StatusOpen, SemanticDraft},
		{"outstanding", models.StateSubmitted, models.StatusSubmitted, SemanticOutstanding},
		{"done", models.StateApproved, models.StatusClosed, SemanticDone},
		{"approved", models.StateApproved, models.StatusApproved, SemanticApproved},
		{"paid", models.StateApproved, models.StatusReimbursed, SemanticPaid},
		{"paid via billing", models.StateBilling, models.StatusReimbursed, SemanticPaid},
		{"unknown pair", models.StateSubmitted, models.StatusReimbursed, SemanticUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSemanticState(tc.state, tc.status))
		})
	}
}

func TestGetReportStatusTranslation(t *testing.T) {
	tr := localize.NewEnglish()
	assert.Equal(t, "Approved", GetReportStatusTranslation(models.StateApproved, models.StatusApproved, tr))
	assert.Equal(t, "Draft", GetReportStatusTranslation(models.StateOpen, models.StatusOpen, tr))
	assert.Equal(t, "Unknown", GetReportStatusTranslation(models.StateBilling, models.StatusOpen, tr))
}

func TestGetExpenseReportStateAndStatus(t *testing.T) {
	state, status := GetExpenseReportStateAndStatus(nil)
	assert.Equal(t, models.StateOpen, state)
	assert.Equal(t, models.StatusOpen, status)

	instant := &models.Policy{HarvestingEnabled: true, AutoReporting: models.FrequencyInstant}
	state, status = GetExpenseReportStateAndStatus(instant)
	assert.Equal(t, models.StateSubmitted, state)
	assert.Equal(t, models.StatusSubmitted, status)

	submitAndClose := &models.Policy{
		HarvestingEnabled:   true,
		AutoReporting:       models.FrequencyInstant,
		ApprovalMode:        models.ApprovalModeOptional,
		ReimbursementChoice: models.ReimburseNo,
	}
	state, status = GetExpenseReportStateAndStatus(submitAndClose)
	assert.Equal(t, models.StateApproved, state)
	assert.Equal(t, models.StatusClosed, status)

	// ASAP submit wins over instant harvesting.
	asap := &models.Policy{ASAPSubmit: true, HarvestingEnabled: true, AutoReporting: models.FrequencyInstant}
	state, status = GetExpenseReportStateAndStatus(asap)
	assert.Equal(t, models.StateOpen, state)
	assert.Equal(t, models.StatusOpen, status)
}

func approvalPolicy() *models.Policy {
	return &models.Policy{
		ID:           "p1",
		Name:         "Acme",
		Type:         models.PolicyTypeCorporate,
		Owner:        "owner@corp.com",
		ApprovalMode: models.ApprovalModeAdvanced,
		Employees: map[string]models.PolicyEmployee{
			"ann@corp.com":     {Email: "ann@corp.com", SubmitsTo: "lead@corp.com"},
			"lead@corp.com":    {Email: "lead@corp.com", ForwardsTo: "manager@corp.com"},
			"manager@corp.com": {Email: "manager@corp.com"},
		},
	}
}

func TestGetApprovalChainForwardingWalk(t *testing.T) {
	p := approvalPolicy()
	r := &models.Report{ReportID: "r1", OwnerAccountID: 100, Total: -5000}
	s := testSnapshot(withReport(r), withPolicy(p))

	chain := GetApprovalChain(s, p, r)
	assert.Equal(t, []string{"lead@corp.com", "manager@corp.com"}, chain)
}

func TestGetApprovalChainOverLimitEscalation(t *testing.T) {
	p := approvalPolicy()
	lead := p.Employees["lead@corp.com"]
	lead.ApprovalLimit = 10000
	lead.OverLimitForwardsTo = "cfo@corp.com"
	p.Employees["lead@corp.com"] = lead
	p.Employees["cfo@corp.com"] = models.PolicyEmployee{Email: "cfo@corp.com"}

	r := &models.Report{ReportID: "r1", OwnerAccountID: 100, Total: -25000}
	s := testSnapshot(withReport(r), withPolicy(p))

	chain := GetApprovalChain(s, p, r)
	assert.Equal(t, []string{"lead@corp.com", "cfo@corp.com"}, chain)

	// Under the limit the regular forward target applies.
	r.Total = -5000
	chain = GetApprovalChain(s, p, r)
	assert.Equal(t, []string{"lead@corp.com", "manager@corp.com"}, chain)
}

func TestGetApprovalChainRuleApproversComeFirst(t *testing.T) {
	p := approvalPolicy()
	p.ApprovalRules = []models.ApprovalRule{
		{Field: models.RuleFieldCategory, Value: "Travel", ApproverEmail: "travel@corp.com"},
	}
	r := &models.Report{ReportID: "r1", OwnerAccountID: 100, Total: -5000}
	s := testSnapshot(withReport(r), withPolicy(p),
		withTransaction(&models.Transaction{TransactionID: "t1", ReportID: "r1", Amount: 5000, Category: "Travel", Created: "2026-08-01"}))

	chain := GetApprovalChain(s, p, r)
	assert.Equal(t, []string{"travel@corp.com", "lead@corp.com", "manager@corp.com"}, chain)
}

func TestGetApprovalChainSubmitAndCloseHasNoChain(t *testing.T) {
	p := approvalPolicy()
	p.ApprovalMode = models.ApprovalModeOptional
	r := &models.Report{ReportID: "r1", OwnerAccountID: 100}
	s := testSnapshot(withReport(r), withPolicy(p))

	assert.Nil(t, GetApprovalChain(s, p, r))
}

func TestGetApprovalChainForwardingLoopTerminates(t *testing.T) {
	p := approvalPolicy()
	// lead and manager forward to each other.
	manager := p.Employees["manager@corp.com"]
	manager.ForwardsTo = "lead@corp.com"
	p.Employees["manager@corp.com"] = manager

	r := &models.Report{ReportID: "r1", OwnerAccountID: 100, Total: -5000}
	s := testSnapshot(withReport(r), withPolicy(p))

	chain := GetApprovalChain(s, p, r)
	assert.Equal(t, []string{"lead@corp.com", "manager@corp.com"}, chain)
}

func TestGetApprovalChainSelfApprovalPrevented(t *testing.T) {
	p := &models.Policy{
		ID:                  "p1",
		Type:                models.PolicyTypeTeam,
		Owner:               "ann@corp.com",
		ApprovalMode:        models.ApprovalModeBasic,
		PreventSelfApproval: true,
		Employees: map[string]models.PolicyEmployee{
			"ann@corp.com": {Email: "ann@corp.com"},
		},
	}
	r := &models.Report{ReportID: "r1", OwnerAccountID: 100}
	s := testSnapshot(withReport(r), withPolicy(p))

	// A one-person workspace routes the report back to its submitter; with
	// self-approval prevented the chain collapses to empty.
	assert.Empty(t, GetApprovalChain(s, p, r))

	p.PreventSelfApproval = false
	assert.Equal(t, []string{"ann@corp.com"}, GetApprovalChain(s, p, r))
}

func TestNextApproverAccountID(t *testing.T) {
	p := approvalPolicy()
	r := &models.Report{ReportID: "r1", OwnerAccountID: 200, ManagerID: 300, PolicyID: "p1"}
	s := testSnapshot(withReport(r), withPolicy(p),
		withDetails(&models.PersonalDetails{AccountID: 200, Login: "bob@corp.com"}),
		withDetails(&models.PersonalDetails{AccountID: 300, Login: "lead@corp.com"}))

	// The viewer is not in the chain, so the manager keeps the report.
	assert.Equal(t, int64(300), NextApproverAccountID(s, r))

	// A viewer who sits in the chain takes over.
	p.Employees["bob@corp.com"] = models.PolicyEmployee{Email: "bob@corp.com", SubmitsTo: "lead@corp.com"}
	s.CurrentLogin = "manager@corp.com"
	assert.Equal(t, s.CurrentAccountID, NextApproverAccountID(s, r))
}

func TestAccountIDForLogin(t *testing.T) {
	s := testSnapshot(withDetails(&models.PersonalDetails{AccountID: 200, Login: "bob@corp.com"}))
	assert.Equal(t, int64(200), AccountIDForLogin(s, "bob@corp.com"))
	assert.Equal(t, int64(0), AccountIDForLogin(s, "ghost@corp.com"))
	assert.Equal(t, int64(0), AccountIDForLogin(nil, "bob@corp.com"))
}
