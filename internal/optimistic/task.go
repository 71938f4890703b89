package optimistic

import (
	"time"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/clock"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// TaskParams describes a new task assigned inside a chat.
type TaskParams struct {
	Chat              *models.Report
	Title             string
	Description       string
	AssigneeAccountID int64
}

// TaskResult carries the task report, the TASK action anchoring it in the
// chat, the task's own opening action, and the batches.
type TaskResult struct {
	Task        *models.Report
	TaskAction  *models.ReportAction
	TaskCreated *models.ReportAction
	Set         models.MutationSet
}

// BuildTask synthesizes a task report threaded under a TASK action in the
// chat. The task report's created action predates the anchoring action so
// ordering inside the task thread stays consistent.
func (b *Builder) BuildTask(p TaskParams) TaskResult {
	now := b.clock.Now()
	taskCreatedAt := now.Add(-1 * time.Millisecond)

	task := &models.Report{
		ReportID:       b.ids.New(),
		Type:           models.ReportTypeTask,
		ReportName:     p.Title,
		Description:    p.Description,
		OwnerAccountID: b.actorAccountID,
		ManagerID:      p.AssigneeAccountID,
		StateNum:       models.StateOpen,
		StatusNum:      models.StatusOpen,
		ParentReportID: p.Chat.ReportID,
		Participants: map[int64]models.Participant{
			b.actorAccountID: {},
		},
		PendingAction: models.PendingActionAdd,
		Created:       clock.DBTime(taskCreatedAt),
	}
	if p.AssigneeAccountID != 0 {
		task.Participants[p.AssigneeAccountID] = models.Participant{}
	}

	taskAction := b.newAction(p.Chat.ReportID, models.ActionTask, now,
		textMessage(b.translator.Translate("task.createdMessage", localize.Params{"title": p.Title})),
		&models.TaskPayload{TaskReportID: task.ReportID})

	// Reciprocal link between the anchoring action and the task report.
	taskAction.ChildReportID = task.ReportID
	task.ParentReportActionID = taskAction.ReportActionID

	taskCreated := b.createdAction(task.ReportID, taskCreatedAt)

	var set models.MutationSet
	addNewReport(&set, task)
	addNewAction(&set, taskAction)
	addNewAction(&set, taskCreated)

	return TaskResult{Task: task, TaskAction: taskAction, TaskCreated: taskCreated, Set: set}
}

// BuildCompleteTask marks an open task done.
func (b *Builder) BuildCompleteTask(task *models.Report) LifecycleResult {
	return b.buildLifecycle(task, models.ActionTaskCompleted, nil,
		b.translator.Translate("task.completedMessage", nil),
		models.StateApproved, models.StatusApproved, true)
}

// BuildReopenTask returns a completed task to the open state.
func (b *Builder) BuildReopenTask(task *models.Report) LifecycleResult {
	return b.buildLifecycle(task, models.ActionTaskReopened, nil,
		b.translator.Translate("task.reopenedMessage", nil),
		models.StateOpen, models.StatusOpen, true)
}
