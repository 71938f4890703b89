package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
	"github.com/noah-isme/spendchat-engine/pkg/markup"
)

func newTestNamer() *Namer {
	return NewNamer(localize.NewEnglish(), markup.NewBasic())
}

func TestReportNameNilReport(t *testing.T) {
	assert.Equal(t, "", newTestNamer().ReportName(testSnapshot(), nil))
}

func TestReportNameTask(t *testing.T) {
	n := newTestNamer()
	task := &models.Report{ReportID: "t1", Type: models.ReportTypeTask, ReportName: "Book <em>flights</em>"}
	s := testSnapshot(withReport(task))

	assert.Equal(t, "Book flights", n.ReportName(s, task))

	task.IsArchived = true
	assert.Equal(t, "Book flights (archived)", n.ReportName(s, task))
}

func TestReportNameCanceledTask(t *testing.T) {
	n := newTestNamer()
	chat := &models.Report{ReportID: "c1", Type: models.ReportTypeChat}
	task := &models.Report{ReportID: "t1", Type: models.ReportTypeTask, ReportName: "Book flights", ParentReportID: "c1", ParentReportActionID: "a1"}
	s := testSnapshot(withReport(chat), withReport(task),
		withAction(&models.ReportAction{ReportID: "c1", ReportActionID: "a1", ActionName: models.ActionTask, Message: models.Message{IsDeletedParentAction: true}}))

	assert.Equal(t, "[Deleted task]", n.ReportName(s, task))
}

func TestReportNameParentSystemMessageWinsOverType(t *testing.T) {
	n := newTestNamer()
	expense := &models.Report{ReportID: "e1", Type: models.ReportTypeExpense}
	thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "e1", ParentReportActionID: "a1"}
	s := testSnapshot(withReport(expense), withReport(thread),
		withAction(&models.ReportAction{
			ReportID:        "e1",
			ReportActionID:  "a1",
			ActionName:      models.ActionSubmitted,
			OriginalMessage: &models.SubmittedPayload{Amount: 12345, Currency: "USD"},
		}))

	assert.Equal(t, "submitted $123.45", n.ReportName(s, thread))
}

func TestReportNameSystemMessageVariants(t *testing.T) {
	n := newTestNamer()
	cases := []struct {
		name    string
		payload models.ActionPayload
		action  models.ActionName
		want    string
	}{
		{"harvested submit", &models.SubmittedPayload{Amount: 100, Currency: "USD", Harvested: true}, models.ActionSubmitted, "automatically submitted $1.00"},
		{"forwarded", &models.ForwardedPayload{Amount: 100, Currency: "USD"}, models.ActionForwarded, "forwarded $1.00"},
		{"forwarded to", &models.ForwardedPayload{Amount: 100, Currency: "USD", To: "cfo@corp.com"}, models.ActionForwarded, "forwarded $1.00 to cfo@corp.com"},
		{"rejected", &models.RejectedPayload{}, models.ActionRejected, "rejected this report"},
		{"retracted", &models.RetractedPayload{}, models.ActionRetracted, "retracted this report"},
		{"reopened", &models.ReopenedPayload{}, models.ActionReopened, "reopened this report"},
		{"approved", &models.ApprovedPayload{Amount: 5000, Currency: "EUR"}, models.ActionApproved, "approved €50.00"},
		{"unapproved", &models.UnapprovedPayload{Amount: 5000, Currency: "EUR"}, models.ActionUnapproved, "unapproved €50.00"},
		{"workspace renamed", &models.PolicyChangeLogPayload{OldValue: "Acme", NewValue: "Acme Corp"}, models.ActionPolicyChangeLogUpdateName, "updated the workspace name to \"Acme Corp\" (previously \"Acme\")"},
		{"member invited", &models.PolicyChangeLogPayload{Email: "new@corp.com"}, models.ActionPolicyChangeLogAddEmployee, "invited new@corp.com"},
		{"policy changed", &models.ChangePolicyPayload{ToPolicyName: "Globex"}, models.ActionChangePolicy, "moved this report to the Globex workspace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parent := &models.Report{ReportID: "p1", Type: models.ReportTypeChat}
			thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "p1", ParentReportActionID: "a1"}
			s := testSnapshot(withReport(parent), withReport(thread),
				withAction(&models.ReportAction{ReportID: "p1", ReportActionID: "a1", ActionName: tc.action, OriginalMessage: tc.payload}))
			assert.Equal(t, tc.want, n.ReportName(s, thread))
		})
	}
}

func chatThreadFixture(parentAction *models.ReportAction) (*Snapshot, *models.Report) {
	parent := &models.Report{ReportID: "p1", Type: models.ReportTypeChat}
	thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "p1", ParentReportActionID: "a1"}
	parentAction.ReportID = "p1"
	parentAction.ReportActionID = "a1"
	s := testSnapshot(withReport(parent), withReport(thread), withAction(parentAction))
	return s, thread
}

func TestReportNameChatThread(t *testing.T) {
	n := newTestNamer()

	s, thread := chatThreadFixture(&models.ReportAction{
		ActionName: models.ActionAddComment,
		Message:    models.Message{Text: "lunch plans?"},
	})
	assert.Equal(t, "lunch plans?", n.ReportName(s, thread))

	// Plain text is recovered from HTML when no text form is stored.
	s, thread = chatThreadFixture(&models.ReportAction{
		ActionName: models.ActionAddComment,
		Message:    models.Message{HTML: "see the <strong>updated</strong> doc"},
	})
	assert.Equal(t, "see the updated doc", n.ReportName(s, thread))

	s, thread = chatThreadFixture(&models.ReportAction{
		ActionName: models.ActionAddComment,
		Message:    models.Message{IsDeletedParentAction: true},
	})
	assert.Equal(t, "[Deleted message]", n.ReportName(s, thread))

	s, thread = chatThreadFixture(&models.ReportAction{
		ActionName:   models.ActionAddComment,
		Message:      models.Message{Text: "photo.jpg"},
		IsAttachment: true,
	})
	assert.Equal(t, "[Attachment]", n.ReportName(s, thread))

	s, thread = chatThreadFixture(&models.ReportAction{
		ActionName: models.ActionAddComment,
		Message:    models.Message{Text: "flagged", Moderation: models.ModerationHidden},
	})
	assert.Equal(t, "Hidden message", n.ReportName(s, thread))

	s, thread = chatThreadFixture(&models.ReportAction{
		ActionName:      models.ActionRenamed,
		OriginalMessage: &models.RenamedPayload{OldName: "general", NewName: "random"},
	})
	assert.Equal(t, "renamed this room to \"random\" (previously \"general\")", n.ReportName(s, thread))
}

func TestReportNameChatThreadMissingParentAction(t *testing.T) {
	n := newTestNamer()
	parent := &models.Report{ReportID: "p1", Type: models.ReportTypeChat}
	thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "p1", ParentReportActionID: "missing"}
	s := testSnapshot(withReport(parent), withReport(thread))

	// The parent action may not have synced yet; the title degrades to the
	// deleted placeholder instead of failing.
	assert.Equal(t, "[Deleted message]", n.ReportName(s, thread))
}

func TestReportNameChatThreadArchivedSuffixOnce(t *testing.T) {
	n := newTestNamer()
	s, thread := chatThreadFixture(&models.ReportAction{
		ActionName: models.ActionAddComment,
		Message:    models.Message{Text: "lunch plans?"},
	})
	thread.IsArchived = true
	assert.Equal(t, "lunch plans? (archived)", n.ReportName(s, thread))
}

func TestReportNameModifiedExpenseThread(t *testing.T) {
	n := newTestNamer()
	s, thread := chatThreadFixture(&models.ReportAction{
		ActionName: models.ActionModifiedExpense,
		OriginalMessage: &models.ModifiedExpensePayload{
			OldAmount: 1000, Amount: 1500, OldCurrency: "USD", Currency: "USD",
			OldMerchant: "", Merchant: "Cafe",
		},
	})
	assert.Equal(t, "changed the amount to $15.00 (previously $10.00); set the merchant to Cafe", n.ReportName(s, thread))

	s, thread = chatThreadFixture(&models.ReportAction{
		ActionName:      models.ActionModifiedExpense,
		OriginalMessage: &models.ModifiedExpensePayload{},
	})
	assert.Equal(t, "changed the expense", n.ReportName(s, thread))
}

func TestReportNameEmptyClosedExpense(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{ReportID: "e1", Type: models.ReportTypeExpense, StatusNum: models.StatusClosed}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "[Deleted report]", n.ReportName(s, r))

	// A surviving transaction keeps the money-request title.
	s.Transactions["t1"] = &models.Transaction{TransactionID: "t1", ReportID: "e1", Amount: -500, Created: "2026-08-01"}
	assert.NotEqual(t, "[Deleted report]", n.ReportName(s, r))
}

func TestReportNameGroupChat(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:   "g1",
		Type:       models.ReportTypeChat,
		ChatType:   models.ChatTypeGroup,
		ReportName: "Ski trip",
	}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "Ski trip", n.ReportName(s, r))

	r.ReportName = ""
	r.Participants = map[int64]models.Participant{100: {}, 200: {}, 300: {}}
	s.PersonalDetails[200] = &models.PersonalDetails{AccountID: 200, FirstName: "Bob"}
	s.PersonalDetails[300] = &models.PersonalDetails{AccountID: 300, FirstName: "Cara"}
	assert.Equal(t, "Bob, Cara", n.ReportName(s, r))
}

func TestReportNameParticipantsTruncation(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{ReportID: "g1", Type: models.ReportTypeChat, ChatType: models.ChatTypeGroup}
	r.Participants = map[int64]models.Participant{100: {}}
	s := testSnapshot(withReport(r))
	names := []string{"Bob", "Cara", "Dan", "Eve", "Fay", "Gil", "Hal"}
	for i, name := range names {
		id := int64(200 + i)
		r.Participants[id] = models.Participant{}
		s.PersonalDetails[id] = &models.PersonalDetails{AccountID: id, FirstName: name}
	}

	assert.Equal(t, "Bob, Cara, Dan, Eve, Fay…", n.ReportName(s, r))
}

func TestReportNameOneOnOneChat(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:     "c1",
		Type:         models.ReportTypeChat,
		Participants: map[int64]models.Participant{100: {}, 200: {}},
	}
	s := testSnapshot(withReport(r), withDetails(&models.PersonalDetails{AccountID: 200, DisplayName: "Bob Brown"}))

	// A plain DM lists the other participant's name as-is; the possessive
	// template belongs to group chats only.
	assert.Equal(t, "Bob Brown", n.ReportName(s, r))
}

func TestReportNameGroupChatWithOneOtherParticipant(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:     "g1",
		Type:         models.ReportTypeChat,
		ChatType:     models.ChatTypeGroup,
		Participants: map[int64]models.Participant{100: {}, 200: {}},
	}
	s := testSnapshot(withReport(r), withDetails(&models.PersonalDetails{AccountID: 200, DisplayName: "Bob Brown"}))

	assert.Equal(t, "Bob Brown's chat", n.ReportName(s, r))
}

func TestReportNameChatRoom(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{ReportID: "room1", Type: models.ReportTypeChat, ChatType: models.ChatTypePolicyRoom, ReportName: "#design"}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "#design", n.ReportName(s, r))

	r.IsArchived = true
	assert.Equal(t, "#design (archived)", n.ReportName(s, r))
}

func TestReportNameTripRoomCustomTitle(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:   "trip1",
		Type:       models.ReportTypeChat,
		ChatType:   models.ChatTypeTripRoom,
		ReportName: "Trip to Lisbon",
		TripData:   &models.TripData{TripID: "tr1", CustomTitle: "Offsite 2026"},
	}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "Offsite 2026", n.ReportName(s, r))

	r.TripData.CustomTitle = ""
	assert.Equal(t, "Trip to Lisbon", n.ReportName(s, r))
}

func TestReportNamePolicyExpenseChat(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:       "pec1",
		Type:           models.ReportTypeChat,
		ChatType:       models.ChatTypePolicyExpenseChat,
		OwnerAccountID: 100,
	}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "Ann Archer's expenses", n.ReportName(s, r))

	// Archival via account merge keeps the dissolved workspace name.
	r.IsArchived = true
	r.OldPolicyName = "Initech"
	assert.Equal(t, "Initech (archived)", n.ReportName(s, r))
}

func moneyReportFixture() (*Snapshot, *models.Report) {
	r := &models.Report{
		ReportID:       "iou1",
		Type:           models.ReportTypeIOU,
		OwnerAccountID: 100,
		ManagerID:      200,
		Currency:       "USD",
		Total:          4200,
		StateNum:       models.StateSubmitted,
		StatusNum:      models.StatusSubmitted,
	}
	s := testSnapshot(withReport(r), withDetails(&models.PersonalDetails{AccountID: 200, DisplayName: "Bob Brown"}))
	return s, r
}

func TestReportNameMoneyRequestOwes(t *testing.T) {
	n := newTestNamer()
	s, r := moneyReportFixture()
	assert.Equal(t, "Bob Brown owes $42.00", n.ReportName(s, r))
}

func TestReportNameMoneyRequestApproved(t *testing.T) {
	n := newTestNamer()
	s, r := moneyReportFixture()
	r.StateNum = models.StateApproved
	r.StatusNum = models.StatusApproved
	assert.Equal(t, "Bob Brown approved $42.00", n.ReportName(s, r))
}

func TestReportNameMoneyRequestPendingBank(t *testing.T) {
	n := newTestNamer()
	s, r := moneyReportFixture()
	r.IsWaitingOnBankAccount = true
	assert.Equal(t, "Bob Brown paid $42.00 • Pending", n.ReportName(s, r))
}

func TestReportNameMoneyRequestPaid(t *testing.T) {
	n := newTestNamer()
	s, r := moneyReportFixture()
	r.StateNum = models.StateApproved
	r.StatusNum = models.StatusReimbursed

	pay := func(method models.PaymentMethod) {
		s.Actions["iou1"] = map[string]*models.ReportAction{
			"a1": {ReportID: "iou1", ReportActionID: "a1", ActionName: models.ActionIOU, Created: "2026-08-01 10:00:00.000",
				OriginalMessage: &models.IOUPayload{Type: models.IOUTypePay, PaymentType: method}},
		}
	}

	pay(models.PaymentElsewhere)
	assert.Equal(t, "Bob Brown paid $42.00 elsewhere", n.ReportName(s, r))

	pay(models.PaymentWithProduct)
	assert.Equal(t, "Bob Brown paid $42.00 with Spendchat", n.ReportName(s, r))

	pay(models.PaymentVBBA)
	assert.Equal(t, "Bob Brown paid $42.00", n.ReportName(s, r))
}

func TestReportNameExpenseReport(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:       "e1",
		Type:           models.ReportTypeExpense,
		OwnerAccountID: 100,
		PolicyID:       "p1",
		Currency:       "USD",
		Total:          -4200,
		StateNum:       models.StateSubmitted,
		StatusNum:      models.StatusSubmitted,
	}
	s := testSnapshot(withReport(r), withPolicy(&models.Policy{ID: "p1", Name: "Acme"}))

	// The workspace pays, and the stored negation is undone for display.
	assert.Equal(t, "Acme owes $42.00", n.ReportName(s, r))

	// A stored title beats the derived sentence for expense reports.
	r.ReportName = "August travel"
	assert.Equal(t, "August travel", n.ReportName(s, r))
}

func TestReportNameExpenseNonReimbursableSpent(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{
		ReportID:             "e1",
		Type:                 models.ReportTypeExpense,
		PolicyName:           "Acme",
		Currency:             "USD",
		Total:                -4200,
		NonReimbursableTotal: -4200,
		StateNum:             models.StateSubmitted,
		StatusNum:            models.StatusSubmitted,
	}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "Acme spent $42.00", n.ReportName(s, r))
}

func TestReportNameSelfDM(t *testing.T) {
	n := newTestNamer()
	r := &models.Report{ReportID: "s1", Type: models.ReportTypeChat, ChatType: models.ChatTypeSelfDM}
	s := testSnapshot(withReport(r))
	assert.Equal(t, "Ann Archer (you)", n.ReportName(s, r))
}

func TestReportNameInvoice(t *testing.T) {
	n := newTestNamer()
	room := &models.Report{
		ReportID:        "inv1",
		Type:            models.ReportTypeChat,
		ChatType:        models.ChatTypeInvoiceRoom,
		PolicyID:        "sender",
		InvoiceReceiver: &models.InvoiceReceiver{Type: models.InvoiceReceiverIndividual, AccountID: 200},
	}
	s := testSnapshot(withReport(room), withDetails(&models.PersonalDetails{AccountID: 200, DisplayName: "Bob Brown"}))
	assert.Equal(t, "Bob Brown", n.ReportName(s, room))

	// Business receivers show the counterparty workspace to outsiders and
	// the sender workspace to its own members.
	room.InvoiceReceiver = &models.InvoiceReceiver{Type: models.InvoiceReceiverBusiness, PolicyID: "receiver"}
	s.Policies["receiver"] = &models.Policy{ID: "receiver", Name: "Globex"}
	assert.Equal(t, "Globex", n.ReportName(s, room))

	s.Policies["sender"] = &models.Policy{
		ID: "sender", Name: "Acme",
		Employees: map[string]models.PolicyEmployee{"ann@corp.com": {Email: "ann@corp.com"}},
	}
	assert.Equal(t, "Acme", n.ReportName(s, room))
}

func TestTransactionThreadNames(t *testing.T) {
	n := newTestNamer()

	buildThread := func(txn *models.Transaction, payload *models.IOUPayload) (*Snapshot, *models.Report) {
		iou := &models.Report{ReportID: "iou1", Type: models.ReportTypeIOU}
		thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "iou1", ParentReportActionID: "a1"}
		action := &models.ReportAction{ReportID: "iou1", ReportActionID: "a1", ActionName: models.ActionIOU, OriginalMessage: payload}
		mutators := []func(*Snapshot){withReport(iou), withReport(thread), withAction(action)}
		if txn != nil {
			mutators = append(mutators, withTransaction(txn))
		}
		// A sibling keeps the thread from collapsing into its parent.
		mutators = append(mutators, withTransaction(&models.Transaction{TransactionID: "sibling", ReportID: "iou1", Amount: 1, Merchant: "x", Created: "2026-08-02"}))
		return testSnapshot(mutators...), thread
	}

	s, thread := buildThread(
		&models.Transaction{TransactionID: "t1", ReportID: "iou1", Amount: 1250, Currency: "USD", Merchant: "Cafe", Created: "2026-08-01"},
		&models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"})
	assert.Equal(t, "$12.50 for Cafe", n.ReportName(s, thread))

	s, thread = buildThread(
		&models.Transaction{TransactionID: "t1", ReportID: "iou1", Amount: 1250, Currency: "USD", Merchant: models.PartialMerchant, Comment: models.TransactionComment{Comment: "snacks"}, Created: "2026-08-01"},
		&models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"})
	assert.Equal(t, "$12.50 for snacks", n.ReportName(s, thread))

	s, thread = buildThread(
		&models.Transaction{TransactionID: "t1", ReportID: "iou1", Amount: -1250, Currency: "USD", Created: "2026-08-01", Merchant: "Cafe", ReversedTransactionID: "t0"},
		&models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"})
	assert.Equal(t, "Reversed transaction", n.ReportName(s, thread))

	s, thread = buildThread(
		&models.Transaction{TransactionID: "t1", ReportID: "iou1", Amount: 1250, Currency: "USD", Merchant: "Cafe", Created: "2026-08-01", PendingAction: models.PendingActionDelete},
		&models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"})
	assert.Equal(t, "[Deleted expense]", n.ReportName(s, thread))

	s, thread = buildThread(nil, &models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "ghost"})
	assert.Equal(t, "Expense", n.ReportName(s, thread))

	s, thread = buildThread(nil, &models.IOUPayload{Type: models.IOUTypeTrack, IOUTransactionID: "ghost"})
	assert.Equal(t, "Create expense", n.ReportName(s, thread))

	s, thread = buildThread(
		&models.Transaction{TransactionID: "t1", ReportID: "iou1", Receipt: &models.Receipt{State: models.ReceiptScanning}, Created: "2026-08-01"},
		&models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"})
	assert.Equal(t, "Receipt scanning…", n.ReportName(s, thread))

	s, thread = buildThread(
		&models.Transaction{TransactionID: "t1", ReportID: "iou1", Merchant: models.PartialMerchant, Created: "2026-08-01"},
		&models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"})
	assert.Equal(t, "Receipt missing details", n.ReportName(s, thread))
}
