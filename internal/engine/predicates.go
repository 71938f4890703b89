package engine

import (
	"github.com/noah-isme/spendchat-engine/internal/models"
)

// Predicate library. Every function here tests exactly one semantic fact
// and is nil-safe: a missing report, action, or policy makes the predicate
// false, never a panic. Higher-level predicates compose lower-level ones
// instead of re-deriving classifications from raw fields.

// IsChatReport reports whether the report is a chat container.
func IsChatReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeChat
}

// IsExpenseReport reports whether the report is a workspace expense report.
func IsExpenseReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeExpense
}

// IsIOUReport reports whether the report is a peer-to-peer money request.
func IsIOUReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeIOU
}

// IsInvoiceReport reports whether the report is an invoice.
func IsInvoiceReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeInvoice
}

// IsTaskReport reports whether the report is a task.
func IsTaskReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeTask
}

// IsMoneyRequestReport groups IOU and expense reports.
func IsMoneyRequestReport(r *models.Report) bool {
	return IsIOUReport(r) || IsExpenseReport(r)
}

// IsAdminRoom reports whether the chat is a workspace #admins room.
func IsAdminRoom(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypePolicyAdmins
}

// IsAnnounceRoom reports whether the chat is a workspace #announce room.
func IsAnnounceRoom(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypePolicyAnnounce
}

// IsDomainRoom reports whether the chat is a domain-wide room.
func IsDomainRoom(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypeDomainAll
}

// IsUserCreatedPolicyRoom reports whether the chat is a custom policy room.
func IsUserCreatedPolicyRoom(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypePolicyRoom
}

// IsDefaultRoom groups the rooms every workspace or domain gets for free.
func IsDefaultRoom(r *models.Report) bool {
	return IsAdminRoom(r) || IsAnnounceRoom(r) || IsDomainRoom(r)
}

// IsInvoiceRoom reports whether the chat hosts invoices between two parties.
func IsInvoiceRoom(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypeInvoiceRoom
}

// IsChatRoom groups all named rooms.
func IsChatRoom(r *models.Report) bool {
	return IsUserCreatedPolicyRoom(r) || IsDefaultRoom(r) || IsInvoiceRoom(r)
}

// IsPolicyExpenseChat reports whether the chat is a member's workspace
// expense chat.
func IsPolicyExpenseChat(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypePolicyExpenseChat
}

// IsSelfDM reports whether the chat is the user's notes-to-self thread.
func IsSelfDM(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypeSelfDM
}

// IsGroupChat reports whether the chat is an ad-hoc multi-party group.
func IsGroupChat(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypeGroup
}

// IsTripRoom reports whether the chat is a travel-booking room.
func IsTripRoom(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypeTripRoom
}

// IsSystemChat reports whether the chat is the legacy system channel.
func IsSystemChat(r *models.Report) bool {
	return r != nil && r.ChatType == models.ChatTypeSystem
}

// IsThread reports whether the report hangs under a parent action.
func IsThread(r *models.Report) bool {
	return r.IsThread()
}

// IsChatThread reports whether the report is a thread inside a chat.
func IsChatThread(r *models.Report) bool {
	return IsChatReport(r) && IsThread(r)
}

// IsTransactionThread reports whether the thread hangs under a money
// request action (not a settlement).
func IsTransactionThread(s *Snapshot, r *models.Report) bool {
	parent := s.ParentAction(r)
	if parent == nil || parent.ActionName != models.ActionIOU {
		return false
	}
	payload, ok := parent.OriginalMessage.(*models.IOUPayload)
	if !ok {
		return false
	}
	return payload.Type == models.IOUTypeCreate || payload.Type == models.IOUTypeSplit || payload.Type == models.IOUTypeTrack
}

// IsTrackExpenseThread reports whether the thread tracks a personal expense.
func IsTrackExpenseThread(s *Snapshot, r *models.Report) bool {
	parent := s.ParentAction(r)
	if parent == nil || parent.ActionName != models.ActionIOU {
		return false
	}
	payload, ok := parent.OriginalMessage.(*models.IOUPayload)
	return ok && payload.Type == models.IOUTypeTrack
}

// IsOpenReport reports whether the report is still a draft.
func IsOpenReport(r *models.Report) bool {
	return r != nil && r.StatusNum == models.StatusOpen
}

// IsProcessingReport reports whether the report awaits approval.
func IsProcessingReport(r *models.Report) bool {
	return r != nil && r.StateNum == models.StateSubmitted && r.StatusNum == models.StatusSubmitted
}

// IsReportApproved reports whether the report reached terminal approval.
func IsReportApproved(r *models.Report) bool {
	return r != nil && r.StateNum == models.StateApproved && r.StatusNum == models.StatusApproved
}

// IsSettled reports whether the report has been paid out.
func IsSettled(r *models.Report) bool {
	return r != nil && r.StatusNum == models.StatusReimbursed
}

// IsClosedReport reports whether the report was closed without payment.
func IsClosedReport(r *models.Report) bool {
	return r != nil && r.StatusNum == models.StatusClosed
}

// IsOpenTaskReport reports whether the task has not been completed.
func IsOpenTaskReport(r *models.Report) bool {
	return IsTaskReport(r) && r.StateNum == models.StateOpen && r.StatusNum == models.StatusOpen
}

// IsCompletedTaskReport reports whether the task was marked done.
func IsCompletedTaskReport(r *models.Report) bool {
	return IsTaskReport(r) && r.StateNum == models.StateApproved && r.StatusNum == models.StatusApproved
}

// IsCanceledTaskReport reports whether the task's originating message was
// deleted, which cancels the task.
func IsCanceledTaskReport(s *Snapshot, r *models.Report) bool {
	if !IsTaskReport(r) {
		return false
	}
	parent := s.ParentAction(r)
	return parent != nil && parent.Message.IsDeletedParentAction
}

// IsArchivedReport reports whether the report was archived.
func IsArchivedReport(r *models.Report) bool {
	return r != nil && r.IsArchived
}

// IsArchivedNonExpenseReport singles out archived chats and tasks, whose
// titles wrap differently from archived money reports.
func IsArchivedNonExpenseReport(r *models.Report) bool {
	return IsArchivedReport(r) && !IsMoneyRequestReport(r)
}

// IsGroupPolicy reports whether the policy is a shared workspace.
func IsGroupPolicy(p *models.Policy) bool {
	return p != nil && (p.Type == models.PolicyTypeTeam || p.Type == models.PolicyTypeCorporate)
}

// IsPaidGroupPolicy matches IsGroupPolicy; paid plans are team and corporate.
func IsPaidGroupPolicy(p *models.Policy) bool {
	return IsGroupPolicy(p)
}

// IsControlPolicy reports whether the policy is on the Control plan.
func IsControlPolicy(p *models.Policy) bool {
	return p != nil && p.Type == models.PolicyTypeCorporate
}

// IsInGroupPolicy reports whether the report belongs to a shared workspace.
func IsInGroupPolicy(s *Snapshot, r *models.Report) bool {
	if r == nil {
		return false
	}
	return IsGroupPolicy(s.Policy(r.PolicyID))
}

// IsReportOwner reports whether the account submitted the report.
func IsReportOwner(r *models.Report, accountID int64) bool {
	return r != nil && accountID != 0 && r.OwnerAccountID == accountID
}

// IsReportManager reports whether the account is the report's approver.
func IsReportManager(r *models.Report, accountID int64) bool {
	return r != nil && accountID != 0 && r.ManagerID == accountID
}

// IsCurrentUserSubmitter reports whether the acting user owns the report.
func IsCurrentUserSubmitter(s *Snapshot, r *models.Report) bool {
	return s != nil && IsReportOwner(r, s.CurrentAccountID)
}

// HasNonReimbursableTransactions reports whether any company-card spend is
// on the report.
func HasNonReimbursableTransactions(r *models.Report) bool {
	return r != nil && r.NonReimbursableTotal != 0
}

// IsOneTransactionReport reports whether the money report holds exactly one
// transaction.
func IsOneTransactionReport(s *Snapshot, r *models.Report) bool {
	if !IsMoneyRequestReport(r) {
		return false
	}
	return len(s.TransactionsForReport(r.ReportID)) == 1
}

// IsOneTransactionThread reports whether the thread duplicates a parent
// money report that already displays its single transaction.
func IsOneTransactionThread(s *Snapshot, r *models.Report) bool {
	if !IsTransactionThread(s, r) {
		return false
	}
	return IsOneTransactionReport(s, s.ParentReport(r))
}

// HasOnlyCreatedAction reports whether nothing has happened on the report
// beyond its creation marker.
func HasOnlyCreatedAction(s *Snapshot, r *models.Report) bool {
	if r == nil {
		return false
	}
	actions := s.SortedActions(r.ReportID)
	if len(actions) == 0 {
		return true
	}
	return len(actions) == 1 && actions[0].ActionName == models.ActionCreated
}

// HasDraftComment reports whether the user typed but never sent a comment.
func HasDraftComment(s *Snapshot, reportID string) bool {
	return s != nil && s.Drafts[reportID] != ""
}

// IsHiddenForCurrentUser reports whether the user opted the chat out of
// their list entirely.
func IsHiddenForCurrentUser(s *Snapshot, r *models.Report) bool {
	if s == nil || r == nil {
		return false
	}
	p, ok := r.Participants[s.CurrentAccountID]
	return ok && p.NotificationPreference == models.NotificationHidden
}

// IsMutedForCurrentUser reports whether notifications are silenced.
func IsMutedForCurrentUser(s *Snapshot, r *models.Report) bool {
	if s == nil || r == nil {
		return false
	}
	p, ok := r.Participants[s.CurrentAccountID]
	return ok && (p.NotificationPreference == models.NotificationMute || p.NotificationPreference == models.NotificationHidden)
}

// IsUnread reports whether actions were added after the user's last read.
// DB timestamps sort lexicographically, so string comparison is ordering.
func IsUnread(r *models.Report) bool {
	if r == nil || r.LastVisibleActionCreated == "" {
		return false
	}
	return r.LastReadTime < r.LastVisibleActionCreated
}

// IsUnreadWithMention reports whether the user was mentioned since their
// last read.
func IsUnreadWithMention(r *models.Report) bool {
	if r == nil || r.LastMentionedTime == "" {
		return false
	}
	return r.LastReadTime < r.LastMentionedTime
}

/// RequiresAttention reports whether the report demands user action: a
// fresh mention, a task assigned to them, money they are owed on an
// outstanding child request, or a settlement blocked on their bank account.
func RequiresAttention(s *Snapshot, r *models.Report) bool {
	if s == nil || r == nil {
		return false
	}
	if IsUnreadWithMention(r) {
		return true
	}
	if IsOpenTaskReport(r) && IsReportManager(r, s.CurrentAccountID) {
		return true
	}
	if r.HasOutstandingChildRequest && IsReportManager(r, s.CurrentAccountID) {
		return true
	}
	if r.IsWaitingOnBankAccount && IsReportOwner(r, s.CurrentAccountID) {
		return true
	}
	return false
}

// CanAccessDomainRoom gates domain rooms behind the default-rooms beta.
func CanAccessDomainRoom(s *Snapshot, r *models.Report) bool {
	if !IsDomainRoom(r) {
		return true
	}
	return s != nil && s.Betas[BetaDefaultRooms]
}

// CanEditMoneyRequest surfaces the settled/approved edit lock as a
// boolean; refusing the user action stays the caller's decision.
func CanEditMoneyRequest(s *Snapshot, r *models.Report) bool {
	if !IsMoneyRequestReport(r) {
		return false
	}
	if IsSettled(r) || IsReportApproved(r) {
		return false
	}
	return IsCurrentUserSubmitter(s, r) || IsReportManager(r, s.CurrentAccountID)
}
