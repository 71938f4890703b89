package dto

import "github.com/noah-isme/spendchat-engine/internal/models"

// ReportNameResponse is the derived display title of one report.
type ReportNameResponse struct {
	ReportID string `json:"reportID"`
	Name     string `json:"name"`
}

// ReportStatusResponse exposes the derived workflow state.
type ReportStatusResponse struct {
	ReportID    string `json:"reportID"`
	State       string `json:"state"`
	Translation string `json:"translation"`
}

// SpendBreakdownResponse carries the sign-corrected spend figures.
type SpendBreakdownResponse struct {
	ReportID        string `json:"reportID"`
	Currency        string `json:"currency,omitempty"`
	Total           int64  `json:"total"`
	Reimbursable    int64  `json:"reimbursable"`
	NonReimbursable int64  `json:"nonReimbursable"`
	Unheld          int64  `json:"unheld"`
}

// ApprovalChainResponse lists approver logins in traversal order.
type ApprovalChainResponse struct {
	ReportID     string   `json:"reportID"`
	Chain        []string `json:"chain"`
	NextApprover int64    `json:"nextApproverAccountID,omitempty"`
}

// ReportListQuery carries the view-mode options of a list derivation.
type ReportListQuery struct {
	FocusMode        bool   `form:"focusMode"`
	CurrentReportID  string `form:"currentReportID"`
	IncludeSelfDM    bool   `form:"includeSelfDM"`
	RestrictedDomain string `form:"restrictedDomain"`
}

// ReportListEntry is one navigable row of the report list.
type ReportListEntry struct {
	ReportID string            `json:"reportID"`
	Name     string            `json:"name"`
	State    string            `json:"state"`
	Reason   string            `json:"reason"`
	Type     models.ReportType `json:"type"`
	IsUnread bool              `json:"isUnread,omitempty"`
	IsPinned bool              `json:"isPinned,omitempty"`
}

// ReportListResponse wraps the derived list.
type ReportListResponse struct {
	Entries []ReportListEntry `json:"entries"`
	Count   int               `json:"count"`
}
