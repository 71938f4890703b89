package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

func TestBuildComment(t *testing.T) {
	b := testBuilder()
	report := &models.Report{
		ReportID:                 "r1",
		Type:                     models.ReportTypeChat,
		LastMessageText:          "old message",
		LastVisibleActionCreated: "2026-08-29 09:00:00.000",
	}

	result := b.BuildComment(report, "*hello*")

	require.NotNil(t, result.Action)
	assert.Equal(t, models.ActionAddComment, result.Action.ActionName)
	assert.Equal(t, int64(100), result.Action.ActorAccountID)
	assert.Equal(t, "<strong>hello</strong>", result.Action.Message.HTML)
	assert.Equal(t, "hello", result.Action.Message.Text)
	assert.Equal(t, models.PendingActionAdd, result.Action.PendingAction)
	assert.Equal(t, "2026-08-30 12:00:00.000", result.Action.Created)

	payload, ok := result.Action.OriginalMessage.(*models.CommentPayload)
	require.True(t, ok)
	assert.Equal(t, "<strong>hello</strong>", payload.HTML)
	assert.Equal(t, "hello", payload.Text)

	// Optimistic batch inserts the action and advances last-message fields.
	actions := actionMapValue(t, findOp(t, result.Set.Optimistic, models.WriteMerge, "reportActions_r1"))
	assert.Same(t, result.Action, actions[result.Action.ReportActionID])

	updated := reportValue(t, findOp(t, result.Set.Optimistic, models.WriteSet, "report_r1"))
	assert.Equal(t, "hello", updated.LastMessageText)
	assert.Equal(t, "2026-08-30 12:00:00.000", updated.LastVisibleActionCreated)

	// Success clears the pending marker on the action.
	confirmed := actionMapValue(t, findOp(t, result.Set.Success, models.WriteMerge, "reportActions_r1"))
	assert.Empty(t, confirmed[result.Action.ReportActionID].PendingAction)

	// Failure removes the action and restores the prior report.
	removed := actionMapValue(t, findOp(t, result.Set.Failure, models.WriteMerge, "reportActions_r1"))
	assert.Nil(t, removed[result.Action.ReportActionID])

	prior := reportValue(t, findOp(t, result.Set.Failure, models.WriteSet, "report_r1"))
	assert.Equal(t, "old message", prior.LastMessageText)
	assert.Equal(t, "2026-08-29 09:00:00.000", prior.LastVisibleActionCreated)

	// The input report is never mutated.
	assert.Equal(t, "old message", report.LastMessageText)
}

func TestBuildCommentOversizeFallsBackToEscapedText(t *testing.T) {
	b := NewBuilder(Config{
		IDs:                  testBuilder().ids,
		Clock:                testBuilder().clock,
		MaxCommentHTMLLength: 10,
		ActorAccountID:       100,
	})

	result := b.BuildComment(&models.Report{ReportID: "r1", Type: models.ReportTypeChat}, "*a very long <comment>*")

	assert.Equal(t, "*a very long &lt;comment&gt;*", result.Action.Message.HTML)
	assert.Equal(t, "*a very long <comment>*", result.Action.Message.Text)
}
