package engine

import (
	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
)

// transactionThreadName titles a thread hanging under a money-request
// action. Sub-cases in order: reversed, deleted, absent data, scanning,
// missing required fields, then the amount/merchant sentence.
func (n *Namer) transactionThreadName(s *Snapshot, r *models.Report) string {
	parent := s.ParentAction(r)
	payload, _ := parent.OriginalMessage.(*models.IOUPayload)

	var txn *models.Transaction
	if payload != nil {
		txn = s.Transaction(payload.IOUTransactionID)
	}

	if txn != nil && txn.ReversedTransactionID != "" {
		return n.tr.Translate("iou.reversedTransaction", nil)
	}
	if parent.IsDeleted() || (txn != nil && txn.PendingAction == models.PendingActionDelete) {
		return n.tr.Translate("iou.deletedExpense", nil)
	}
	if txn == nil {
		if payload != nil && payload.Type == models.IOUTypeTrack {
			return n.tr.Translate("iou.createExpense", nil)
		}
		return n.tr.Translate("iou.expense", nil)
	}
	if IsReceiptBeingScanned(txn) {
		return n.scanningTitle(1)
	}
	if HasMissingSmartscanFields(txn) {
		return n.tr.Translate("iou.receiptMissingDetails", nil)
	}

	amount := localize.FormatAmount(absAmount(txn.EffectiveAmount()), txn.EffectiveCurrency())
	if merchant := txn.EffectiveMerchant(); merchant != "" && merchant != models.PartialMerchant {
		return n.tr.Translate("iou.amountForMerchant", localize.Params{"amount": amount, "merchant": merchant})
	}
	if txn.Comment.Comment != "" {
		return n.tr.Translate("iou.amountForMerchant", localize.Params{"amount": amount, "merchant": txn.Comment.Comment})
	}
	return n.tr.Translate("iou.amountExpense", localize.Params{"amount": amount})
}
