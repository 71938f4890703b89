package optimistic

import (
	"time"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/clock"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// WorkspaceChat pairs a bootstrap chat with its opening action and an
// independently applicable mutation set, so a partial server failure rolls
// back only the chat that failed.
type WorkspaceChat struct {
	Report  *models.Report
	Created *models.ReportAction
	Set     models.MutationSet
}

// WorkspaceChatsResult carries the three chats every new workspace starts
// with.
type WorkspaceChatsResult struct {
	Admins      WorkspaceChat
	Announce    WorkspaceChat
	ExpenseChat WorkspaceChat
}

// Combined merges the three per-chat sets in bootstrap order.
func (r WorkspaceChatsResult) Combined() models.MutationSet {
	var set models.MutationSet
	set.Merge(r.Admins.Set)
	set.Merge(r.Announce.Set)
	set.Merge(r.ExpenseChat.Set)
	return set
}

// BuildWorkspaceChats synthesizes the #admins room, the #announce room, and
// the creating member's expense chat for a new workspace.
func (b *Builder) BuildWorkspaceChats(policy *models.Policy, memberName string) WorkspaceChatsResult {
	now := b.clock.Now()
	return WorkspaceChatsResult{
		Admins:   b.workspaceChat(policy, models.ChatTypePolicyAdmins, "#admins", now),
		Announce: b.workspaceChat(policy, models.ChatTypePolicyAnnounce, "#announce", now.Add(1*time.Millisecond)),
		ExpenseChat: b.workspaceChat(policy, models.ChatTypePolicyExpenseChat,
			b.translator.Translate("workspace.memberExpenses", localize.Params{"name": memberName}),
			now.Add(2*time.Millisecond)),
	}
}

func (b *Builder) workspaceChat(policy *models.Policy, chatType models.ChatType, name string, at time.Time) WorkspaceChat {
	report := &models.Report{
		ReportID:       b.ids.New(),
		Type:           models.ReportTypeChat,
		ChatType:       chatType,
		ReportName:     name,
		OwnerAccountID: b.actorAccountID,
		PolicyID:       policy.ID,
		PolicyName:     policy.Name,
		Participants: map[int64]models.Participant{
			b.actorAccountID: {},
		},
		PendingAction: models.PendingActionAdd,
		Created:       clock.DBTime(at),
	}
	if chatType == models.ChatTypePolicyExpenseChat {
		report.IsOwnPolicyExpenseChat = true
	}

	created := b.createdAction(report.ReportID, at)

	var set models.MutationSet
	addNewReport(&set, report)
	addNewAction(&set, created)
	return WorkspaceChat{Report: report, Created: created, Set: set}
}
