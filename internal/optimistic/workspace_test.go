package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

func TestBuildWorkspaceChats(t *testing.T) {
	b := testBuilder()
	policy := &models.Policy{ID: "p1", Name: "Acme", Type: models.PolicyTypeTeam}

	result := b.BuildWorkspaceChats(policy, "Ann")

	admins := result.Admins.Report
	require.NotNil(t, admins)
	assert.Equal(t, models.ChatTypePolicyAdmins, admins.ChatType)
	assert.Equal(t, "#admins", admins.ReportName)
	assert.Equal(t, "p1", admins.PolicyID)
	assert.Equal(t, "Acme", admins.PolicyName)
	assert.Equal(t, models.PendingActionAdd, admins.PendingAction)

	announce := result.Announce.Report
	assert.Equal(t, models.ChatTypePolicyAnnounce, announce.ChatType)
	assert.Equal(t, "#announce", announce.ReportName)

	expense := result.ExpenseChat.Report
	assert.Equal(t, models.ChatTypePolicyExpenseChat, expense.ChatType)
	assert.Equal(t, "Ann's expenses", expense.ReportName)
	assert.True(t, expense.IsOwnPolicyExpenseChat)

	// Bootstrap order is reflected in creation timestamps.
	assert.Less(t, admins.Created, announce.Created)
	assert.Less(t, announce.Created, expense.Created)

	// Each chat carries its own opening action and rollback.
	for _, chat := range []WorkspaceChat{result.Admins, result.Announce, result.ExpenseChat} {
		require.NotNil(t, chat.Created)
		assert.Equal(t, chat.Report.ReportID, chat.Created.ReportID)
		assert.Equal(t, models.ActionCreated, chat.Created.ActionName)
		assert.Len(t, chat.Set.Optimistic, 2)
		prior := findOp(t, chat.Set.Failure, models.WriteSet, "report_"+chat.Report.ReportID)
		assert.Nil(t, prior.Value)
	}

	combined := result.Combined()
	assert.Len(t, combined.Optimistic, 6)
	assert.Len(t, combined.Success, 6)
	assert.Len(t, combined.Failure, 6)
}
