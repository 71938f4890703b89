package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/engine"
	"github.com/noah-isme/spendchat-engine/internal/models"
)

// Memory is the in-process record store. It applies instruction batches
// from the mutation builders and assembles derivation snapshots on demand.
// All methods are safe for concurrent use.
type Memory struct {
	mu           sync.RWMutex
	reports      map[string]*models.Report
	actions      map[string]map[string]*models.ReportAction
	transactions map[string]*models.Transaction
	policies     map[string]*models.Policy
	details      map[int64]*models.PersonalDetails
	violations   map[string][]models.TransactionViolation
	drafts       map[string]string
	betas        map[string]bool
	logger       *zap.Logger
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMemoryLogger sets the store logger.
func WithMemoryLogger(logger *zap.Logger) MemoryOption {
	return func(m *Memory) { m.logger = logger }
}

// NewMemory constructs an empty store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		reports:      make(map[string]*models.Report),
		actions:      make(map[string]map[string]*models.ReportAction),
		transactions: make(map[string]*models.Transaction),
		policies:     make(map[string]*models.Policy),
		details:      make(map[int64]*models.PersonalDetails),
		violations:   make(map[string][]models.TransactionViolation),
		drafts:       make(map[string]string),
		betas:        make(map[string]bool),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PutReport seeds or replaces a report record.
func (m *Memory) PutReport(r *models.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ReportID] = r
}

// PutAction seeds or replaces one action.
func (m *Memory) PutAction(a *models.ReportAction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.actions[a.ReportID] == nil {
		m.actions[a.ReportID] = make(map[string]*models.ReportAction)
	}
	m.actions[a.ReportID][a.ReportActionID] = a
}

// PutTransaction seeds or replaces a transaction record.
func (m *Memory) PutTransaction(t *models.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[t.TransactionID] = t
}

// PutPolicy seeds or replaces a policy record.
func (m *Memory) PutPolicy(p *models.Policy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[p.ID] = p
}

// PutDetails seeds or replaces an account's personal details.
func (m *Memory) PutDetails(d *models.PersonalDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[d.AccountID] = d
}

// PutViolations replaces a transaction's violation list.
func (m *Memory) PutViolations(transactionID string, v []models.TransactionViolation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations[transactionID] = v
}

// PutDraft stores a draft comment for a report; empty text clears it.
func (m *Memory) PutDraft(reportID, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if text == "" {
		delete(m.drafts, reportID)
		return
	}
	m.drafts[reportID] = text
}

// SetBetas replaces the active beta flag set.
func (m *Memory) SetBetas(betas []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.betas = make(map[string]bool, len(betas))
	for _, b := range betas {
		m.betas[b] = true
	}
}

// LoadSnapshot implements the snapshot provider contract shared with the
// SQL store.
func (m *Memory) LoadSnapshot(_ context.Context, accountID int64, login string) (*engine.Snapshot, error) {
	return m.Snapshot(accountID, login), nil
}

// ApplyBatch executes the instructions in order. The result of applying a
// batch does not depend on interleaving with reads, only on the batch's own
// instruction order.
func (m *Memory) ApplyBatch(_ context.Context, batch models.Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range batch {
		if err := m.applyOp(op); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) applyOp(op models.WriteOp) error {
	namespace, id, err := models.ParseKey(op.Key)
	if err != nil {
		return err
	}
	switch namespace {
	case "report":
		return applyRecord(m.reports, id, op)
	case "transaction":
		return applyRecord(m.transactions, id, op)
	case "reportActions":
		return m.applyActions(id, op)
	default:
		return fmt.Errorf("apply %s: unhandled namespace %q", op.Key, namespace)
	}
}

// applyRecord handles set/merge for single-record namespaces.
func applyRecord[T any](records map[string]*T, id string, op models.WriteOp) error {
	value, err := coerce[T](op.Value)
	if err != nil {
		return fmt.Errorf("apply %s: %w", op.Key, err)
	}
	switch op.Method {
	case models.WriteSet:
		if value == nil {
			delete(records, id)
			return nil
		}
		records[id] = value
	case models.WriteMerge:
		if value == nil {
			return nil
		}
		existing := records[id]
		if existing == nil {
			records[id] = value
			return nil
		}
		merged, err := mergeRecords(existing, op.Value)
		if err != nil {
			return fmt.Errorf("apply %s: %w", op.Key, err)
		}
		records[id] = merged
	default:
		return fmt.Errorf("apply %s: unknown method %q", op.Key, op.Method)
	}
	return nil
}

// applyActions handles the per-report action map. Merge operates entry by
// entry; a nil entry removes that action.
func (m *Memory) applyActions(reportID string, op models.WriteOp) error {
	value, err := coerceActionMap(op.Value)
	if err != nil {
		return fmt.Errorf("apply %s: %w", op.Key, err)
	}
	switch op.Method {
	case models.WriteSet:
		if value == nil {
			delete(m.actions, reportID)
			return nil
		}
		replacement := make(map[string]*models.ReportAction, len(value))
		for actionID, action := range value {
			if action != nil {
				replacement[actionID] = action
			}
		}
		m.actions[reportID] = replacement
	case models.WriteMerge:
		if m.actions[reportID] == nil {
			m.actions[reportID] = make(map[string]*models.ReportAction, len(value))
		}
		for actionID, action := range value {
			if action == nil {
				delete(m.actions[reportID], actionID)
				continue
			}
			m.actions[reportID][actionID] = action
		}
	default:
		return fmt.Errorf("apply %s: unknown method %q", op.Key, op.Method)
	}
	return nil
}

// Snapshot assembles the derivation context for one viewer. The maps are
// copied shallowly so later batches do not race an in-flight derivation.
func (m *Memory) Snapshot(currentAccountID int64, currentLogin string) *engine.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := &engine.Snapshot{
		Reports:          make(map[string]*models.Report, len(m.reports)),
		Actions:          make(map[string]map[string]*models.ReportAction, len(m.actions)),
		Transactions:     make(map[string]*models.Transaction, len(m.transactions)),
		Policies:         make(map[string]*models.Policy, len(m.policies)),
		PersonalDetails:  make(map[int64]*models.PersonalDetails, len(m.details)),
		Violations:       make(map[string][]models.TransactionViolation, len(m.violations)),
		Drafts:           make(map[string]string, len(m.drafts)),
		Betas:            make(map[string]bool, len(m.betas)),
		CurrentAccountID: currentAccountID,
		CurrentLogin:     currentLogin,
		Logger:           m.logger,
	}
	for k, v := range m.reports {
		s.Reports[k] = v
	}
	for reportID, actions := range m.actions {
		copied := make(map[string]*models.ReportAction, len(actions))
		for actionID, action := range actions {
			copied[actionID] = action
		}
		s.Actions[reportID] = copied
	}
	for k, v := range m.transactions {
		s.Transactions[k] = v
	}
	for k, v := range m.policies {
		s.Policies[k] = v
	}
	for k, v := range m.details {
		s.PersonalDetails[k] = v
	}
	for k, v := range m.violations {
		s.Violations[k] = v
	}
	for k, v := range m.drafts {
		s.Drafts[k] = v
	}
	for k, v := range m.betas {
		s.Betas[k] = v
	}
	return s
}

// coerce accepts either the typed pointer the builders emit or any
// JSON-compatible value arriving from the transport layer.
func coerce[T any](v interface{}) (*T, error) {
	if v == nil {
		return nil, nil
	}
	if typed, ok := v.(*T); ok {
		return typed, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func coerceActionMap(v interface{}) (map[string]*models.ReportAction, error) {
	if v == nil {
		return nil, nil
	}
	if typed, ok := v.(map[string]*models.ReportAction); ok {
		return typed, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]*models.ReportAction
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// mergeRecords overlays the patch's JSON object onto the existing record.
func mergeRecords[T any](existing *T, patch interface{}) (*T, error) {
	base, err := json.Marshal(existing)
	if err != nil {
		return nil, err
	}
	overlay, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	var patchFields map[string]json.RawMessage
	if err := json.Unmarshal(overlay, &patchFields); err != nil {
		return nil, err
	}
	for k, v := range patchFields {
		merged[k] = v
	}
	combined, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(combined, out); err != nil {
		return nil, err
	}
	return out, nil
}
