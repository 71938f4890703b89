package optimistic

import (
	"time"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/clock"
	"github.com/noah-isme/spendchat-engine/pkg/ids"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
	"github.com/noah-isme/spendchat-engine/pkg/markup"
)

// Builder synthesizes new domain records for user-initiated actions along
// with the optimistic/success/failure instruction batches the store adapter
// applies. Builders never mutate their inputs; every touched record is
// cloned first so the failure batch can restore the exact prior value.
type Builder struct {
	ids        ids.Generator
	clock      clock.Clock
	translator localize.Translator
	markup     markup.Renderer

	maxCommentHTMLLength int

	actorAccountID int64
	actorLogin     string
}

// Config wires a Builder.
type Config struct {
	IDs                  ids.Generator
	Clock                clock.Clock
	Translator           localize.Translator
	Markup               markup.Renderer
	MaxCommentHTMLLength int
	ActorAccountID       int64
	ActorLogin           string
}

// NewBuilder constructs a Builder with sane defaults for omitted services.
func NewBuilder(cfg Config) *Builder {
	if cfg.IDs == nil {
		cfg.IDs = ids.NewRandom()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewUTC()
	}
	if cfg.Translator == nil {
		cfg.Translator = localize.NewEnglish()
	}
	if cfg.Markup == nil {
		cfg.Markup = markup.NewBasic()
	}
	if cfg.MaxCommentHTMLLength <= 0 {
		cfg.MaxCommentHTMLLength = 10000
	}
	return &Builder{
		ids:                  cfg.IDs,
		clock:                cfg.Clock,
		translator:           cfg.Translator,
		markup:               cfg.Markup,
		maxCommentHTMLLength: cfg.MaxCommentHTMLLength,
		actorAccountID:       cfg.ActorAccountID,
		actorLogin:           cfg.ActorLogin,
	}
}

// newAction assembles an action with the actor identity, timestamp, and
// pending-add marker every synthesized action carries.
func (b *Builder) newAction(reportID string, name models.ActionName, at time.Time, message models.Message, payload models.ActionPayload) *models.ReportAction {
	return &models.ReportAction{
		ReportActionID:  b.ids.New(),
		ReportID:        reportID,
		ActionName:      name,
		ActorAccountID:  b.actorAccountID,
		Created:         clock.DBTime(at),
		Message:         message,
		OriginalMessage: payload,
		PendingAction:   models.PendingActionAdd,
	}
}

// textMessage builds a plain display message pair.
func textMessage(text string) models.Message {
	return models.Message{Text: text}
}

// confirmed returns a copy of the action with the pending marker cleared,
// for the success batch.
func confirmed(action *models.ReportAction) *models.ReportAction {
	c := *action
	c.PendingAction = ""
	return &c
}

// cloneReport deep-copies the fields a builder may touch so failure
// batches restore exact prior values.
func cloneReport(r *models.Report) *models.Report {
	if r == nil {
		return nil
	}
	c := *r
	if r.Participants != nil {
		c.Participants = make(map[int64]models.Participant, len(r.Participants))
		for k, v := range r.Participants {
			c.Participants[k] = v
		}
	}
	if r.PendingFields != nil {
		c.PendingFields = make(map[string]models.PendingAction, len(r.PendingFields))
		for k, v := range r.PendingFields {
			c.PendingFields[k] = v
		}
	}
	if r.ErrorFields != nil {
		c.ErrorFields = make(map[string]string, len(r.ErrorFields))
		for k, v := range r.ErrorFields {
			c.ErrorFields[k] = v
		}
	}
	return &c
}

// cloneTransaction deep-copies a transaction.
func cloneTransaction(t *models.Transaction) *models.Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.Receipt != nil {
		receipt := *t.Receipt
		c.Receipt = &receipt
	}
	if t.Comment.Hold != nil {
		hold := *t.Comment.Hold
		c.Comment.Hold = &hold
	}
	return &c
}

// addNewAction wires the three batches for a freshly synthesized action:
// optimistic inserts it, success clears the pending marker, failure
// removes it.
func addNewAction(set *models.MutationSet, action *models.ReportAction) {
	key := models.ReportActionsKey(action.ReportID)
	set.Optimistic = append(set.Optimistic, models.WriteOp{
		Method: models.WriteMerge,
		Key:    key,
		Value:  map[string]*models.ReportAction{action.ReportActionID: action},
	})
	set.Success = append(set.Success, models.WriteOp{
		Method: models.WriteMerge,
		Key:    key,
		Value:  map[string]*models.ReportAction{action.ReportActionID: confirmed(action)},
	})
	set.Failure = append(set.Failure, models.WriteOp{
		Method: models.WriteMerge,
		Key:    key,
		Value:  map[string]*models.ReportAction{action.ReportActionID: nil},
	})
}

/// addNewReport wires the batches for a synthesized report: optimistic
// creates it, success confirms it, failure nulls it.
func addNewReport(set *models.MutationSet, report *models.Report) {
	key := models.ReportKey(report.ReportID)
	set.Optimistic = append(set.Optimistic, models.WriteOp{Method: models.WriteSet, Key: key, Value: report})
	success := cloneReport(report)
	success.PendingAction = ""
	set.Success = append(set.Success, models.WriteOp{Method: models.WriteSet, Key: key, Value: success})
	set.Failure = append(set.Failure, models.WriteOp{Method: models.WriteSet, Key: key, Value: nil})
}

/// addUpdatedReport wires the batches for an existing report mutation:
// optimistic writes the updated copy, failure restores the prior copy.
func addUpdatedReport(set *models.MutationSet, updated, prior *models.Report) {
	key := models.ReportKey(updated.ReportID)
	set.Optimistic = append(set.Optimistic, models.WriteOp{Method: models.WriteSet, Key: key, Value: updated})
	set.Failure = append(set.Failure, models.WriteOp{Method: models.WriteSet, Key: key, Value: prior})
}

// addNewTransaction wires the batches for a synthesized transaction.
func addNewTransaction(set *models.MutationSet, txn *models.Transaction) {
	key := models.TransactionKey(txn.TransactionID)
	set.Optimistic = append(set.Optimistic, models.WriteOp{Method: models.WriteSet, Key: key, Value: txn})
	success := cloneTransaction(txn)
	success.PendingAction = ""
	set.Success = append(set.Success, models.WriteOp{Method: models.WriteSet, Key: key, Value: success})
	set.Failure = append(set.Failure, models.WriteOp{Method: models.WriteSet, Key: key, Value: nil})
}

// addUpdatedTransaction wires the batches for an existing transaction
// mutation.
func addUpdatedTransaction(set *models.MutationSet, updated, prior *models.Transaction) {
	key := models.TransactionKey(updated.TransactionID)
	set.Optimistic = append(set.Optimistic, models.WriteOp{Method: models.WriteSet, Key: key, Value: updated})
	success := cloneTransaction(updated)
	success.PendingAction = ""
	set.Success = append(set.Success, models.WriteOp{Method: models.WriteSet, Key: key, Value: success})
	set.Failure = append(set.Failure, models.WriteOp{Method: models.WriteSet, Key: key, Value: prior})
}
