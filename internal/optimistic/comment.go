package optimistic

import (
	"html"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/clock"
)

// CommentResult carries the synthesized comment action and its batches.
type CommentResult struct {
	Action *models.ReportAction
	Set    models.MutationSet
}

// BuildComment synthesizes an ADDCOMMENT action on the report. Markdown is
// rendered to display HTML unless the rendered form exceeds the configured
// limit, in which case the escaped raw text is stored instead. The report's
// last-message fields advance optimistically and roll back on failure.
func (b *Builder) BuildComment(report *models.Report, text string) CommentResult {
	displayHTML := b.markup.ToDisplayHTML(text)
	if len(displayHTML) > b.maxCommentHTMLLength {
		displayHTML = html.EscapeString(text)
	}
	plain := b.markup.ToPlainText(displayHTML)

	now := b.clock.Now()
	action := b.newAction(report.ReportID, models.ActionAddComment, now, models.Message{
		HTML: displayHTML,
		Text: plain,
	}, &models.CommentPayload{HTML: displayHTML, Text: plain})

	var set models.MutationSet
	addNewAction(&set, action)

	prior := cloneReport(report)
	updated := cloneReport(report)
	updated.LastMessageText = plain
	updated.LastVisibleActionCreated = clock.DBTime(now)
	addUpdatedReport(&set, updated, prior)

	return CommentResult{Action: action, Set: set}
}
