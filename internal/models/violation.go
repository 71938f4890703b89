package models

// ViolationType ranks a transaction violation by severity.
type ViolationType string

const (
	ViolationTypeViolation ViolationType = "violation"
	ViolationTypeNotice    ViolationType = "notice"
	ViolationTypeWarning   ViolationType = "warning"
)

// TransactionViolation is one rule failure attached to a transaction.
type TransactionViolation struct {
	Name string        `json:"name"`
	Type ViolationType `json:"type"`
}
