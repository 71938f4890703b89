package models

import "fmt"

// WriteMethod is the instruction verb the store adapter executes.
type WriteMethod string

const (
	// WriteSet replaces the record at the key (nil value deletes it).
	WriteSet WriteMethod = "set"
	// WriteMerge shallow-merges the value into the existing record.
	WriteMerge WriteMethod = "merge"
)

// WriteOp is one store instruction.
type WriteOp struct {
	Method WriteMethod `json:"method"`
	Key    string      `json:"key"`
	Value  interface{} `json:"value"`
}

// Batch is an ordered list of store instructions.
type Batch []WriteOp

// MutationSet pairs the tentative write with its two resolutions. The
// engine precomputes all three; the caller applies Optimistic immediately
// and exactly one of Success/Failure once the network call resolves.
type MutationSet struct {
	Optimistic Batch `json:"optimistic"`
	Success    Batch `json:"success"`
	Failure    Batch `json:"failure"`
}

// Merge appends another set's batches, preserving instruction order.
func (s *MutationSet) Merge(other MutationSet) {
	s.Optimistic = append(s.Optimistic, other.Optimistic...)
	s.Success = append(s.Success, other.Success...)
	s.Failure = append(s.Failure, other.Failure...)
}

// Store key namespaces. Report actions are keyed per report; the value for
// those keys is a map of actionID to action (or nil entries for removal).
const (
	keyPrefixReport        = "report_"
	keyPrefixReportActions = "reportActions_"
	keyPrefixTransaction   = "transaction_"
)

// ReportKey addresses a single report record.
func ReportKey(reportID string) string { return keyPrefixReport + reportID }

// ReportActionsKey addresses the action map of one report.
func ReportActionsKey(reportID string) string { return keyPrefixReportActions + reportID }

// TransactionKey addresses a single transaction record.
func TransactionKey(transactionID string) string { return keyPrefixTransaction + transactionID }

// ParseKey splits a store key into its namespace and identifier.
func ParseKey(key string) (namespace, id string, err error) {
	for _, prefix := range []string{keyPrefixReportActions, keyPrefixReport, keyPrefixTransaction} {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			return prefix[:len(prefix)-1], key[len(prefix):], nil
		}
	}
	return "", "", fmt.Errorf("unrecognised store key %q", key)
}
