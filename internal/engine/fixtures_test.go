package engine

import (
	"github.com/noah-isme/spendchat-engine/internal/models"
)

// testSnapshot builds an empty snapshot for account 100 (ann@corp.com) and
// applies the given mutators.
func testSnapshot(mutate ...func(s *Snapshot)) *Snapshot {
	s := &Snapshot{
		Reports:          map[string]*models.Report{},
		Actions:          map[string]map[string]*models.ReportAction{},
		Transactions:     map[string]*models.Transaction{},
		Policies:         map[string]*models.Policy{},
		PersonalDetails:  map[int64]*models.PersonalDetails{},
		Violations:       map[string][]models.TransactionViolation{},
		Drafts:           map[string]string{},
		Betas:            map[string]bool{},
		CurrentAccountID: 100,
		CurrentLogin:     "ann@corp.com",
	}
	s.PersonalDetails[100] = &models.PersonalDetails{AccountID: 100, Login: "ann@corp.com", FirstName: "Ann", LastName: "Archer"}
	for _, m := range mutate {
		m(s)
	}
	return s
}

func withReport(r *models.Report) func(*Snapshot) {
	return func(s *Snapshot) { s.Reports[r.ReportID] = r }
}

func withAction(a *models.ReportAction) func(*Snapshot) {
	return func(s *Snapshot) {
		if s.Actions[a.ReportID] == nil {
			s.Actions[a.ReportID] = map[string]*models.ReportAction{}
		}
		s.Actions[a.ReportID][a.ReportActionID] = a
	}
}

func withTransaction(t *models.Transaction) func(*Snapshot) {
	return func(s *Snapshot) { s.Transactions[t.TransactionID] = t }
}

func withPolicy(p *models.Policy) func(*Snapshot) {
	return func(s *Snapshot) { s.Policies[p.ID] = p }
}

func withDetails(d *models.PersonalDetails) func(*Snapshot) {
	return func(s *Snapshot) { s.PersonalDetails[d.AccountID] = d }
}
