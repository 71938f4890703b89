package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

func TestTypePredicatesAreNilSafe(t *testing.T) {
	assert.False(t, IsChatReport(nil))
	assert.False(t, IsExpenseReport(nil))
	assert.False(t, IsMoneyRequestReport(nil))
	assert.False(t, IsTaskReport(nil))
	assert.False(t, IsChatRoom(nil))
	assert.False(t, IsThread(nil))
	assert.False(t, IsArchivedReport(nil))
	assert.False(t, IsSettled(nil))
	assert.False(t, RequiresAttention(nil, nil))
	assert.False(t, CanEditMoneyRequest(nil, nil))
}

func TestRoomClassification(t *testing.T) {
	admins := &models.Report{Type: models.ReportTypeChat, ChatType: models.ChatTypePolicyAdmins}
	announce := &models.Report{Type: models.ReportTypeChat, ChatType: models.ChatTypePolicyAnnounce}
	domain := &models.Report{Type: models.ReportTypeChat, ChatType: models.ChatTypeDomainAll}
	custom := &models.Report{Type: models.ReportTypeChat, ChatType: models.ChatTypePolicyRoom}
	invoice := &models.Report{Type: models.ReportTypeChat, ChatType: models.ChatTypeInvoiceRoom}
	dm := &models.Report{Type: models.ReportTypeChat}

	assert.True(t, IsDefaultRoom(admins))
	assert.True(t, IsDefaultRoom(announce))
	assert.True(t, IsDefaultRoom(domain))
	assert.False(t, IsDefaultRoom(custom))

	for _, room := range []*models.Report{admins, announce, domain, custom, invoice} {
		assert.True(t, IsChatRoom(room), string(room.ChatType))
	}
	assert.False(t, IsChatRoom(dm))
}

func TestIsTransactionThread(t *testing.T) {
	parent := &models.Report{ReportID: "iou1", Type: models.ReportTypeIOU}
	thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "iou1", ParentReportActionID: "a1"}

	create := &models.ReportAction{
		ReportID:        "iou1",
		ReportActionID:  "a1",
		ActionName:      models.ActionIOU,
		OriginalMessage: &models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"},
	}
	s := testSnapshot(withReport(parent), withReport(thread), withAction(create))
	assert.True(t, IsTransactionThread(s, thread))
	assert.False(t, IsTrackExpenseThread(s, thread))

	// A settlement action does not anchor a transaction thread.
	create.OriginalMessage = &models.IOUPayload{Type: models.IOUTypePay}
	assert.False(t, IsTransactionThread(s, thread))

	create.OriginalMessage = &models.IOUPayload{Type: models.IOUTypeTrack, IOUTransactionID: "t1"}
	assert.True(t, IsTransactionThread(s, thread))
	assert.True(t, IsTrackExpenseThread(s, thread))

	assert.False(t, IsTransactionThread(s, parent))
}

func TestIsOneTransactionThread(t *testing.T) {
	iou := &models.Report{ReportID: "iou1", Type: models.ReportTypeIOU}
	thread := &models.Report{ReportID: "th1", Type: models.ReportTypeChat, ParentReportID: "iou1", ParentReportActionID: "a1"}
	action := &models.ReportAction{
		ReportID:        "iou1",
		ReportActionID:  "a1",
		ActionName:      models.ActionIOU,
		OriginalMessage: &models.IOUPayload{Type: models.IOUTypeCreate, IOUTransactionID: "t1"},
	}
	s := testSnapshot(withReport(iou), withReport(thread), withAction(action),
		withTransaction(&models.Transaction{TransactionID: "t1", ReportID: "iou1", Amount: 500, Created: "2026-08-01"}))

	assert.True(t, IsOneTransactionThread(s, thread))

	// A second transaction on the parent makes the thread distinct content.
	s.Transactions["t2"] = &models.Transaction{TransactionID: "t2", ReportID: "iou1", Amount: 700, Created: "2026-08-02"}
	assert.False(t, IsOneTransactionThread(s, thread))
}

func TestHasOnlyCreatedAction(t *testing.T) {
	r := &models.Report{ReportID: "r1", Type: models.ReportTypeChat}
	s := testSnapshot(withReport(r))
	assert.True(t, HasOnlyCreatedAction(s, r))

	s.Actions["r1"] = map[string]*models.ReportAction{
		"a1": {ReportID: "r1", ReportActionID: "a1", ActionName: models.ActionCreated, Created: "2026-08-01 10:00:00.000"},
	}
	assert.True(t, HasOnlyCreatedAction(s, r))

	s.Actions["r1"]["a2"] = &models.ReportAction{ReportID: "r1", ReportActionID: "a2", ActionName: models.ActionAddComment, Created: "2026-08-01 10:01:00.000"}
	assert.False(t, HasOnlyCreatedAction(s, r))
}

func TestUnreadPredicates(t *testing.T) {
	r := &models.Report{
		ReportID:                 "r1",
		Type:                     models.ReportTypeChat,
		LastReadTime:             "2026-08-01 10:00:00.000",
		LastVisibleActionCreated: "2026-08-01 10:05:00.000",
	}
	assert.True(t, IsUnread(r))

	r.LastReadTime = "2026-08-01 10:05:00.000"
	assert.False(t, IsUnread(r))

	r.LastMentionedTime = "2026-08-01 10:06:00.000"
	assert.True(t, IsUnreadWithMention(r))

	// No visible activity means nothing to read.
	assert.False(t, IsUnread(&models.Report{ReportID: "r2"}))
}

func TestMuteAndHidePreferences(t *testing.T) {
	r := &models.Report{
		ReportID: "r1",
		Type:     models.ReportTypeChat,
		Participants: map[int64]models.Participant{
			100: {NotificationPreference: models.NotificationMute},
		},
	}
	s := testSnapshot(withReport(r))

	assert.True(t, IsMutedForCurrentUser(s, r))
	assert.False(t, IsHiddenForCurrentUser(s, r))

	r.Participants[100] = models.Participant{NotificationPreference: models.NotificationHidden}
	assert.True(t, IsHiddenForCurrentUser(s, r))
	assert.True(t, IsMutedForCurrentUser(s, r))
}

func TestRequiresAttention(t *testing.T) {
	s := testSnapshot()

	mention := &models.Report{
		ReportID:          "r1",
		Type:              models.ReportTypeChat,
		LastReadTime:      "2026-08-01 10:00:00.000",
		LastMentionedTime: "2026-08-01 10:05:00.000",
	}
	assert.True(t, RequiresAttention(s, mention))

	task := &models.Report{ReportID: "r2", Type: models.ReportTypeTask, ManagerID: 100}
	assert.True(t, RequiresAttention(s, task))

	task.StateNum = models.StateApproved
	task.StatusNum = models.StatusApproved
	assert.False(t, RequiresAttention(s, task))

	outstanding := &models.Report{ReportID: "r3", Type: models.ReportTypeIOU, ManagerID: 100, HasOutstandingChildRequest: true}
	assert.True(t, RequiresAttention(s, outstanding))

	// Same report viewed by someone other than the manager.
	outstanding.ManagerID = 999
	assert.False(t, RequiresAttention(s, outstanding))

	waiting := &models.Report{ReportID: "r4", Type: models.ReportTypeIOU, OwnerAccountID: 100, IsWaitingOnBankAccount: true}
	assert.True(t, RequiresAttention(s, waiting))
}

func TestCanAccessDomainRoom(t *testing.T) {
	room := &models.Report{ReportID: "r1", Type: models.ReportTypeChat, ChatType: models.ChatTypeDomainAll}
	s := testSnapshot(withReport(room))

	assert.False(t, CanAccessDomainRoom(s, room))

	s.Betas[BetaDefaultRooms] = true
	assert.True(t, CanAccessDomainRoom(s, room))

	// Non-domain rooms are never gated.
	dm := &models.Report{ReportID: "r2", Type: models.ReportTypeChat}
	assert.True(t, CanAccessDomainRoom(testSnapshot(), dm))
}

func TestCanEditMoneyRequest(t *testing.T) {
	r := &models.Report{ReportID: "r1", Type: models.ReportTypeExpense, OwnerAccountID: 100}
	s := testSnapshot(withReport(r))
	assert.True(t, CanEditMoneyRequest(s, r))

	r.StateNum = models.StateApproved
	r.StatusNum = models.StatusApproved
	assert.False(t, CanEditMoneyRequest(s, r))

	r.StateNum = models.StateSubmitted
	r.StatusNum = models.StatusReimbursed
	assert.False(t, CanEditMoneyRequest(s, r))

	r.StatusNum = models.StatusSubmitted
	r.OwnerAccountID = 999
	assert.False(t, CanEditMoneyRequest(s, r))

	r.ManagerID = 100
	assert.True(t, CanEditMoneyRequest(s, r))

	chat := &models.Report{ReportID: "r2", Type: models.ReportTypeChat, OwnerAccountID: 100}
	assert.False(t, CanEditMoneyRequest(s, chat))
}

func TestRootParentReportCycleAborts(t *testing.T) {
	a := &models.Report{ReportID: "a", Type: models.ReportTypeChat, ParentReportID: "b", ParentReportActionID: "x"}
	b := &models.Report{ReportID: "b", Type: models.ReportTypeChat, ParentReportID: "a", ParentReportActionID: "y"}
	s := testSnapshot(withReport(a), withReport(b))

	assert.Nil(t, s.RootParentReport(a))

	// Breaking the cycle yields the true root.
	b.ParentReportID = ""
	b.ParentReportActionID = ""
	assert.Equal(t, b, s.RootParentReport(a))
}
