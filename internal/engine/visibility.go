package engine

import (
	"strings"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

// InclusionReason explains why a report belongs in the navigable list.
type InclusionReason string

const (
	ReasonFocused        InclusionReason = "focused"
	ReasonDraft          InclusionReason = "hasDraftComment"
	ReasonAttention      InclusionReason = "requiresAttention"
	ReasonPinned         InclusionReason = "pinned"
	ReasonViolations     InclusionReason = "hasViolations"
	ReasonWorkspaceError InclusionReason = "hasWorkspaceError"
	ReasonUnread         InclusionReason = "unread"
	ReasonArchived       InclusionReason = "archived"
	ReasonSelfDM         InclusionReason = "selfDM"
	ReasonDefault        InclusionReason = "default"
)

// VisibilityContext carries the caller's view-mode options.
type VisibilityContext struct {
	CurrentReportID    string
	FocusMode          bool
	IncludeSelfDM      bool
	IncludeDomainEmail bool
	RestrictedDomain   string
}

type visibilityVerdict int

const (
	verdictDefer visibilityVerdict = iota
	verdictInclude
	verdictExclude
)

// visibilityRule is one step of the inclusion chain: a definitive
// include, a definitive exclude, or a deferral to the next rule.
type visibilityRule struct {
	name string
	eval func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason)
}

// ReasonForInclusion decides list membership. The rule order is
// load-bearing: focus-mode filtering must run before the default-mode
// rules because the two modes are mutually exclusive view filters.
func ReasonForInclusion(s *Snapshot, r *models.Report, ctx VisibilityContext) *InclusionReason {
	for _, rule := range visibilityRules {
		verdict, reason := rule.eval(s, r, ctx)
		switch verdict {
		case verdictInclude:
			included := reason
			return &included
		case verdictExclude:
			return nil
		}
	}
	included := ReasonDefault
	return &included
}

var knownReportTypes = map[models.ReportType]bool{
	models.ReportTypeChat:    true,
	models.ReportTypeExpense: true,
	models.ReportTypeIOU:     true,
	models.ReportTypeInvoice: true,
	models.ReportTypeTask:    true,
}

var knownChatTypes = map[models.ChatType]bool{
	"":                               true,
	models.ChatTypePolicyAdmins:      true,
	models.ChatTypePolicyAnnounce:    true,
	models.ChatTypePolicyRoom:        true,
	models.ChatTypePolicyExpenseChat: true,
	models.ChatTypeDomainAll:         true,
	models.ChatTypeGroup:             true,
	models.ChatTypeSelfDM:            true,
	models.ChatTypeTripRoom:          true,
	models.ChatTypeInvoiceRoom:       true,
	models.ChatTypeSystem:            true,
}

var visibilityRules = []visibilityRule{
	{name: "missing-identity", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if r == nil || r.ReportID == "" || !knownReportTypes[r.Type] {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "empty-submitted", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsProcessingReport(r) && r.Total == 0 && HasOnlyCreatedAction(s, r) {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "empty-system-chat", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsSystemChat(r) && r.LastMessageText == "" && HasOnlyCreatedAction(s, r) {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "access-control", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if !CanAccessDomainRoom(s, r) {
			return verdictExclude, ""
		}
		if r.ErrorFields["notFound"] != "" {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "duplicate-transaction-thread", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsOneTransactionThread(s, r) {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "unsupported-subtype", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsChatReport(r) && !knownChatTypes[r.ChatType] {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "focused", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if ctx.CurrentReportID != "" && r.ReportID == ctx.CurrentReportID {
			return verdictInclude, ReasonFocused
		}
		return verdictDefer, ""
	}},
	{name: "draft", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if HasDraftComment(s, r.ReportID) {
			return verdictInclude, ReasonDraft
		}
		return verdictDefer, ""
	}},
	{name: "attention", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if RequiresAttention(s, r) {
			return verdictInclude, ReasonAttention
		}
		return verdictDefer, ""
	}},
	{name: "pinned", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if r.IsPinned {
			return verdictInclude, ReasonPinned
		}
		return verdictDefer, ""
	}},
	{name: "unresolved-violations", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if !IsTransactionThread(s, r) {
			return verdictDefer, ""
		}
		moneyReport := s.ParentReport(r)
		if IsSettled(moneyReport) {
			return verdictDefer, ""
		}
		if payload, ok := s.ParentAction(r).OriginalMessage.(*models.IOUPayload); ok {
			if len(s.Violations[payload.IOUTransactionID]) > 0 {
				return verdictInclude, ReasonViolations
			}
		}
		return verdictDefer, ""
	}},
	{name: "hideable-empty-thread", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsChatThread(r) && IsHiddenForCurrentUser(s, r) && HasOnlyCreatedAction(s, r) {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "workspace-error", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if r.ErrorFields["createChat"] != "" || r.ErrorFields["addWorkspaceRoom"] != "" {
			return verdictInclude, ReasonWorkspaceError
		}
		return verdictDefer, ""
	}},
	{name: "focus-mode", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if !ctx.FocusMode {
			return verdictDefer, ""
		}
		if IsUnread(r) && !IsMutedForCurrentUser(s, r) {
			return verdictInclude, ReasonUnread
		}
		return verdictExclude, ""
	}},
	{name: "default-archived", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsArchivedNonExpenseReport(r) {
			return verdictInclude, ReasonArchived
		}
		return verdictDefer, ""
	}},
	{name: "empty-dm", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if IsChatReport(r) && r.ChatType == "" && !IsThread(r) && HasOnlyCreatedAction(s, r) {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
	{name: "self-dm", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if !IsSelfDM(r) {
			return verdictDefer, ""
		}
		if ctx.IncludeSelfDM {
			return verdictInclude, ReasonSelfDM
		}
		return verdictExclude, ""
	}},
	{name: "domain-email", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if ctx.RestrictedDomain == "" || ctx.IncludeDomainEmail {
			return verdictDefer, ""
		}
		others := r.OtherParticipants(s.CurrentAccountID)
		if len(others) == 0 {
			return verdictDefer, ""
		}
		suffix := "@" + ctx.RestrictedDomain
		for _, accountID := range others {
			details := s.Details(accountID)
			if details == nil || !strings.HasSuffix(details.Login, suffix) {
				return verdictDefer, ""
			}
		}
		return verdictExclude, ""
	}},
	{name: "parent-pending-removal", eval: func(s *Snapshot, r *models.Report, ctx VisibilityContext) (visibilityVerdict, InclusionReason) {
		if parent := s.ParentAction(r); parent.IsPendingRemoval() && HasOnlyCreatedAction(s, r) {
			return verdictExclude, ""
		}
		return verdictDefer, ""
	}},
}
