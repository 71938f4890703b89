package localize

// englishMessages is the built-in catalog. Keys are grouped by surface.
var englishMessages = map[string]string{
	// Report lifecycle statuses.
	"report.status.draft":       "Draft",
	"report.status.outstanding": "Outstanding",
	"report.status.done":        "Done",
	"report.status.approved":    "Approved",
	"report.status.paid":        "Paid",
	"report.status.unknown":     "Unknown",

	// System messages rendered from parent actions.
	"report.actions.created":                        "created this report",
	"report.actions.submitted":                      "submitted {amount}",
	"report.actions.submittedHarvested":             "automatically submitted {amount}",
	"report.actions.forwarded":                      "forwarded {amount}",
	"report.actions.forwardedTo":                    "forwarded {amount} to {to}",
	"report.actions.rejected":                       "rejected this report",
	"report.actions.retracted":                      "retracted this report",
	"report.actions.reopened":                       "reopened this report",
	"report.actions.approved":                       "approved {amount}",
	"report.actions.unapproved":                     "unapproved {amount}",
	"report.actions.closed":                         "closed this report",
	"report.actions.renamed":                        "renamed this room to \"{newName}\" (previously \"{oldName}\")",
	"report.actions.hold":                           "held this expense",
	"report.actions.unhold":                         "unheld this expense",
	"report.actions.changePolicy":                   "moved this report to the {toPolicyName} workspace",
	"report.actions.policyChangeLog.updateName":     "updated the workspace name to \"{newValue}\" (previously \"{oldValue}\")",
	"report.actions.policyChangeLog.addEmployee":    "invited {email}",
	"report.actions.policyChangeLog.removeEmployee": "removed {email}",
	"report.actions.cardIssued":                     "issued {assignee} a new card",
	"report.actions.travelUpdate":                   "Trip update: {operation}",
	"report.actions.integrationSyncFailed":          "couldn't sync with {label}: {error}",
	"report.actions.modifiedExpense.set":            "set the {field} to {new}",
	"report.actions.modifiedExpense.changed":        "changed the {field} to {new} (previously {old})",
	"report.actions.modifiedExpense.removed":        "removed the {field} (previously {old})",
	"report.actions.modifiedExpense.generic":        "changed the expense",

	// Chat/thread placeholders.
	"report.deletedMessage": "[Deleted message]",
	"report.attachment":     "[Attachment]",
	"report.hiddenMessage":  "Hidden message",
	"report.deletedReport":  "[Deleted report]",
	"report.namesChat":      "{name}'s chat",
	"report.selfDM":         "{name} (you)",
	"report.archivedSuffix": " (archived)",
	"report.invitedToRoom":  "invited {names}",

	// Money request titles and expense lines.
	"iou.reversedTransaction":     "Reversed transaction",
	"iou.deletedExpense":          "[Deleted expense]",
	"iou.expense":                 "Expense",
	"iou.createExpense":           "Create expense",
	"iou.receiptScanning":         "Receipt scanning…",
	"iou.receiptScanningMultiple": "Scanning {count} receipts…",
	"iou.receiptMissingDetails":   "Receipt missing details",
	"iou.amountForMerchant":       "{amount} for {merchant}",
	"iou.amountExpense":           "{amount} expense",
	"iou.payerOwesAmount":         "{payer} owes {amount}",
	"iou.payerPaidAmount":         "{payer} paid {amount}",
	"iou.payerSpentAmount":        "{payer} spent {amount}",
	"iou.payerApprovedAmount":     "{payer} approved {amount}",
	"iou.paidElsewhere":           "{payer} paid {amount} elsewhere",
	"iou.paidWithProduct":         "{payer} paid {amount} with Spendchat",
	"iou.pending":                 "Pending",

	// Workspace chats.
	"workspace.memberExpenses": "{name}'s expenses",

	// Tasks.
	"task.deleted":          "[Deleted task]",
	"task.createdMessage":   "task for {title}",
	"task.completedMessage": "marked as complete",
	"task.reopenedMessage":  "marked as incomplete",

	"common.hidden": "Hidden",
}
