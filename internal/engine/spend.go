package engine

import (
	"github.com/noah-isme/spendchat-engine/internal/models"
)

// SpendBreakdown normalizes a money report's stored totals into positive,
// outflow-oriented display figures.
type SpendBreakdown struct {
	NonReimbursableSpend int64 `json:"nonReimbursableSpend"`
	ReimbursableSpend    int64 `json:"reimbursableSpend"`
	TotalDisplaySpend    int64 `json:"totalDisplaySpend"`
}

// GetSpendBreakdown computes the display spend split. Expense reports store
// totals negated, so they flip sign here; reimbursable is the remainder
// after non-reimbursable spend.
func GetSpendBreakdown(r *models.Report) SpendBreakdown {
	if r == nil {
		return SpendBreakdown{}
	}
	total := r.Total
	nonReimbursable := r.NonReimbursableTotal
	if IsExpenseReport(r) {
		total = -total
		nonReimbursable = -nonReimbursable
	}
	return SpendBreakdown{
		NonReimbursableSpend: nonReimbursable,
		ReimbursableSpend:    total - nonReimbursable,
		TotalDisplaySpend:    total,
	}
}

// UnheldSpend mirrors GetSpendBreakdown's sign handling for the unheld
// portion of the report.
func UnheldSpend(r *models.Report) int64 {
	if r == nil {
		return 0
	}
	if IsExpenseReport(r) {
		return -r.UnheldTotal
	}
	return r.UnheldTotal
}

func hasViolationOfType(s *Snapshot, reportID string, violationType models.ViolationType) bool {
	if s == nil {
		return false
	}
	for _, t := range s.TransactionsForReport(reportID) {
		for _, v := range s.Violations[t.TransactionID] {
			if v.Type == violationType {
				return true
			}
		}
	}
	return false
}

// HasViolations reports whether any transaction carries a hard violation.
func HasViolations(s *Snapshot, reportID string) bool {
	return hasViolationOfType(s, reportID, models.ViolationTypeViolation)
}

// HasNoticeTypeViolations reports whether any transaction carries a notice.
func HasNoticeTypeViolations(s *Snapshot, reportID string) bool {
	return hasViolationOfType(s, reportID, models.ViolationTypeNotice)
}

// HasWarningTypeViolations reports whether any transaction carries a warning.
func HasWarningTypeViolations(s *Snapshot, reportID string) bool {
	return hasViolationOfType(s, reportID, models.ViolationTypeWarning)
}

// HasAnyViolations is the short-circuited OR of the three severities, in
// violation, warning, notice order.
func HasAnyViolations(s *Snapshot, reportID string) bool {
	return HasViolations(s, reportID) ||
		HasWarningTypeViolations(s, reportID) ||
		HasNoticeTypeViolations(s, reportID)
}

// IsReceiptBeingScanned reports whether smartscan is still extracting the
// transaction's receipt.
func IsReceiptBeingScanned(t *models.Transaction) bool {
	if t == nil || t.Receipt == nil {
		return false
	}
	return t.Receipt.State == models.ReceiptScanReady || t.Receipt.State == models.ReceiptScanning
}

// HasMissingSmartscanFields reports whether the transaction is pending
// completion: the scan finished (or never ran) but required fields are
// still absent.
func HasMissingSmartscanFields(t *models.Transaction) bool {
	if t == nil {
		return false
	}
	if IsReceiptBeingScanned(t) {
		return false
	}
	merchant := t.EffectiveMerchant()
	merchantMissing := merchant == "" || merchant == models.PartialMerchant
	return t.EffectiveAmount() == 0 || merchantMissing || t.Created == ""
}

// CountScanningReceipts counts transactions still being scanned on a report.
func CountScanningReceipts(s *Snapshot, reportID string) int {
	count := 0
	for _, t := range s.TransactionsForReport(reportID) {
		if IsReceiptBeingScanned(t) {
			count++
		}
	}
	return count
}

// AreAllScansComplete reports whether totals can be displayed; while any
// receipt scans, callers show a scanning indicator instead.
func AreAllScansComplete(s *Snapshot, reportID string) bool {
	return CountScanningReceipts(s, reportID) == 0
}

// HasMissingSmartscanTransaction reports whether any transaction on the
// report still awaits required fields.
func HasMissingSmartscanTransaction(s *Snapshot, reportID string) bool {
	for _, t := range s.TransactionsForReport(reportID) {
		if HasMissingSmartscanFields(t) {
			return true
		}
	}
	return false
}
