package models

// UnreportedReportID is the sentinel container for transactions that have
// been detached from every report.
const UnreportedReportID = "0"

// PartialMerchant is the placeholder merchant a smartscan fills in later.
const PartialMerchant = "(none)"

// ReceiptState tracks smartscan progress for an attached receipt image.
type ReceiptState string

const (
	ReceiptScanReady    ReceiptState = "SCANREADY"
	ReceiptScanning     ReceiptState = "SCANNING"
	ReceiptScanComplete ReceiptState = "SCANCOMPLETE"
	ReceiptScanFailed   ReceiptState = "SCANFAILED"
)

// Receipt is the image-derived sub-record of a transaction.
type Receipt struct {
	State  ReceiptState `json:"state,omitempty"`
	Source string       `json:"source,omitempty"`
}

// HoldDetails marks a transaction held out of the approval flow.
type HoldDetails struct {
	Comment      string `json:"comment,omitempty"`
	HeldBy       int64  `json:"heldBy,omitempty"`
	HoldActionID string `json:"holdActionID,omitempty"`
}

// TransactionComment bundles free text and hold sub-state.
type TransactionComment struct {
	Comment string       `json:"comment,omitempty"`
	Hold    *HoldDetails `json:"hold,omitempty"`
	IsLoss  bool         `json:"isLoss,omitempty"`
	Type    string       `json:"type,omitempty"`
}

// Transaction is one expense line owned by exactly one report at a time.
type Transaction struct {
	TransactionID         string             `db:"transaction_id" json:"transactionID"`
	ReportID              string             `db:"report_id" json:"reportID"`
	Amount                int64              `db:"amount" json:"amount"`
	Currency              string             `db:"currency" json:"currency"`
	Merchant              string             `db:"merchant" json:"merchant,omitempty"`
	ModifiedAmount        int64              `db:"modified_amount" json:"modifiedAmount,omitempty"`
	ModifiedCurrency      string             `db:"modified_currency" json:"modifiedCurrency,omitempty"`
	ModifiedMerchant      string             `db:"modified_merchant" json:"modifiedMerchant,omitempty"`
	Created               string             `db:"created" json:"created"`
	Category              string             `db:"category" json:"category,omitempty"`
	Tag                   string             `db:"tag" json:"tag,omitempty"`
	Reimbursable          bool               `db:"reimbursable" json:"reimbursable"`
	Billable              bool               `db:"billable" json:"billable,omitempty"`
	Comment               TransactionComment `db:"-" json:"comment"`
	Receipt               *Receipt           `db:"-" json:"receipt,omitempty"`
	Filename              string             `db:"filename" json:"filename,omitempty"`
	ReversedTransactionID string             `db:"reversed_transaction_id" json:"reversedTransactionID,omitempty"`
	PendingAction         PendingAction      `db:"pending_action" json:"pendingAction,omitempty"`
}

// EffectiveAmount prefers a user edit over the scanned amount.
func (t *Transaction) EffectiveAmount() int64 {
	if t == nil {
		return 0
	}
	if t.ModifiedAmount != 0 {
		return t.ModifiedAmount
	}
	return t.Amount
}

// EffectiveCurrency prefers a user edit over the scanned currency.
func (t *Transaction) EffectiveCurrency() string {
	if t == nil {
		return ""
	}
	if t.ModifiedCurrency != "" {
		return t.ModifiedCurrency
	}
	return t.Currency
}

// EffectiveMerchant prefers a user edit over the scanned merchant.
func (t *Transaction) EffectiveMerchant() string {
	if t == nil {
		return ""
	}
	if t.ModifiedMerchant != "" {
		return t.ModifiedMerchant
	}
	return t.Merchant
}

// IsOnHold reports whether the transaction carries hold sub-state.
func (t *Transaction) IsOnHold() bool {
	return t != nil && t.Comment.Hold != nil
}
