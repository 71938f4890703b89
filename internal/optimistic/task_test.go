package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

func TestBuildTask(t *testing.T) {
	b := testBuilder()
	chat := &models.Report{ReportID: "chat1", Type: models.ReportTypeChat}

	result := b.BuildTask(TaskParams{
		Chat:              chat,
		Title:             "Book flights",
		Description:       "before Friday",
		AssigneeAccountID: 200,
	})

	task := result.Task
	require.NotNil(t, task)
	assert.Equal(t, models.ReportTypeTask, task.Type)
	assert.Equal(t, "Book flights", task.ReportName)
	assert.Equal(t, "before Friday", task.Description)
	assert.Equal(t, int64(100), task.OwnerAccountID)
	assert.Equal(t, int64(200), task.ManagerID)
	assert.Equal(t, models.StateOpen, task.StateNum)
	assert.Equal(t, models.StatusOpen, task.StatusNum)
	assert.Contains(t, task.Participants, int64(100))
	assert.Contains(t, task.Participants, int64(200))

	// Reciprocal link between the anchoring action and the task report.
	require.NotNil(t, result.TaskAction)
	assert.Equal(t, "chat1", result.TaskAction.ReportID)
	assert.Equal(t, task.ReportID, result.TaskAction.ChildReportID)
	assert.Equal(t, result.TaskAction.ReportActionID, task.ParentReportActionID)
	assert.Equal(t, "chat1", task.ParentReportID)
	assert.Equal(t, "task for Book flights", result.TaskAction.Message.Text)

	payload, ok := result.TaskAction.OriginalMessage.(*models.TaskPayload)
	require.True(t, ok)
	assert.Equal(t, task.ReportID, payload.TaskReportID)

	// The task's opening action predates the anchoring action.
	require.NotNil(t, result.TaskCreated)
	assert.Equal(t, task.ReportID, result.TaskCreated.ReportID)
	assert.Less(t, result.TaskCreated.Created, result.TaskAction.Created)

	// Failure removes the synthesized task entirely.
	prior := findOp(t, result.Set.Failure, models.WriteSet, "report_"+task.ReportID)
	assert.Nil(t, prior.Value)
}

func TestBuildCompleteAndReopenTask(t *testing.T) {
	b := testBuilder()
	task := &models.Report{
		ReportID:  "task1",
		Type:      models.ReportTypeTask,
		StateNum:  models.StateOpen,
		StatusNum: models.StatusOpen,
	}

	completed := b.BuildCompleteTask(task)
	assert.Equal(t, models.ActionTaskCompleted, completed.Action.ActionName)
	assert.Equal(t, "marked as complete", completed.Action.Message.Text)
	assert.Nil(t, completed.Action.OriginalMessage)
	assert.Equal(t, models.StateApproved, completed.Report.StateNum)
	assert.Equal(t, models.StatusApproved, completed.Report.StatusNum)

	reopened := b.BuildReopenTask(completed.Report)
	assert.Equal(t, models.ActionTaskReopened, reopened.Action.ActionName)
	assert.Equal(t, "marked as incomplete", reopened.Action.Message.Text)
	assert.Equal(t, models.StateOpen, reopened.Report.StateNum)
	assert.Equal(t, models.StatusOpen, reopened.Report.StatusNum)
}
