package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/engine"
	"github.com/noah-isme/spendchat-engine/internal/models"
)

// SQL persists records as JSON documents keyed the same way the mutation
// batches address them, so ApplyBatch maps one-to-one onto upserts and
// deletes. Snapshots load the full record set for one viewer.
type SQL struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// SQLOption configures a SQL store.
type SQLOption func(*SQL)

// WithSQLLogger sets the store logger.
func WithSQLLogger(logger *zap.Logger) SQLOption {
	return func(s *SQL) { s.logger = logger }
}

// NewSQL constructs the store.
func NewSQL(db *sqlx.DB, opts ...SQLOption) *SQL {
	s := &SQL{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadSnapshot reads every record visible to the account into a derivation
// snapshot.
func (s *SQL) LoadSnapshot(ctx context.Context, accountID int64, login string) (*engine.Snapshot, error) {
	snapshot := &engine.Snapshot{
		Reports:          make(map[string]*models.Report),
		Actions:          make(map[string]map[string]*models.ReportAction),
		Transactions:     make(map[string]*models.Transaction),
		Policies:         make(map[string]*models.Policy),
		PersonalDetails:  make(map[int64]*models.PersonalDetails),
		Violations:       make(map[string][]models.TransactionViolation),
		Drafts:           make(map[string]string),
		Betas:            make(map[string]bool),
		CurrentAccountID: accountID,
		CurrentLogin:     login,
		Logger:           s.logger,
	}

	if err := loadDocuments(ctx, s.db, `SELECT report_id, data FROM reports`, func(id string, r *models.Report) {
		snapshot.Reports[id] = r
	}); err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, `SELECT report_id, report_action_id, data FROM report_actions`)
	if err != nil {
		return nil, fmt.Errorf("load report actions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reportID, actionID string
		var data []byte
		if err := rows.Scan(&reportID, &actionID, &data); err != nil {
			return nil, fmt.Errorf("load report actions: %w", err)
		}
		var action models.ReportAction
		if err := json.Unmarshal(data, &action); err != nil {
			return nil, fmt.Errorf("load report action %s: %w", actionID, err)
		}
		if snapshot.Actions[reportID] == nil {
			snapshot.Actions[reportID] = make(map[string]*models.ReportAction)
		}
		snapshot.Actions[reportID][actionID] = &action
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load report actions: %w", err)
	}

	if err := loadDocuments(ctx, s.db, `SELECT transaction_id, data FROM transactions`, func(id string, t *models.Transaction) {
		snapshot.Transactions[id] = t
	}); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if err := loadDocuments(ctx, s.db, `SELECT policy_id, data FROM policies`, func(id string, p *models.Policy) {
		snapshot.Policies[id] = p
	}); err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}
	if err := loadDocuments(ctx, s.db, `SELECT CAST(account_id AS TEXT), data FROM personal_details`, func(_ string, d *models.PersonalDetails) {
		snapshot.PersonalDetails[d.AccountID] = d
	}); err != nil {
		return nil, fmt.Errorf("load personal details: %w", err)
	}
	if err := loadDocuments(ctx, s.db, `SELECT transaction_id, data FROM transaction_violations`, func(id string, v *[]models.TransactionViolation) {
		snapshot.Violations[id] = *v
	}); err != nil {
		return nil, fmt.Errorf("load violations: %w", err)
	}

	type draftRow struct {
		ReportID string `db:"report_id"`
		Comment  string `db:"comment"`
	}
	var draftRows []draftRow
	if err := s.db.SelectContext(ctx, &draftRows, `SELECT report_id, comment FROM report_drafts WHERE account_id = $1`, accountID); err != nil {
		return nil, fmt.Errorf("load drafts: %w", err)
	}
	for _, d := range draftRows {
		snapshot.Drafts[d.ReportID] = d.Comment
	}

	var betas []string
	if err := s.db.SelectContext(ctx, &betas, `SELECT beta FROM account_betas WHERE account_id = $1`, accountID); err != nil {
		return nil, fmt.Errorf("load betas: %w", err)
	}
	for _, b := range betas {
		snapshot.Betas[b] = true
	}

	return snapshot, nil
}

func loadDocuments[T any](ctx context.Context, db *sqlx.DB, query string, visit func(id string, record *T)) error {
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return err
		}
		record := new(T)
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("decode %s: %w", id, err)
		}
		visit(id, record)
	}
	return rows.Err()
}

// ApplyBatch persists a batch atomically. Set maps to upsert or delete;
// merge concatenates the patch onto the stored document.
func (s *SQL) ApplyBatch(ctx context.Context, batch models.Batch) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, op := range batch {
		if err := s.applyOp(ctx, tx, op); err != nil {
			return fmt.Errorf("apply %s: %w", op.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}
	return nil
}

func (s *SQL) applyOp(ctx context.Context, tx *sqlx.Tx, op models.WriteOp) error {
	namespace, id, err := models.ParseKey(op.Key)
	if err != nil {
		return err
	}
	switch namespace {
	case "report":
		return applyDocumentOp(ctx, tx, "reports", "report_id", id, op)
	case "transaction":
		return applyDocumentOp(ctx, tx, "transactions", "transaction_id", id, op)
	case "reportActions":
		return s.applyActionsOp(ctx, tx, id, op)
	default:
		return fmt.Errorf("unhandled namespace %q", namespace)
	}
}

func applyDocumentOp(ctx context.Context, tx *sqlx.Tx, table, idColumn, id string, op models.WriteOp) error {
	if op.Value == nil {
		if op.Method != models.WriteSet {
			return nil
		}
		_, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, idColumn), id)
		return err
	}
	data, err := json.Marshal(op.Value)
	if err != nil {
		return err
	}
	switch op.Method {
	case models.WriteSet:
		query := fmt.Sprintf(`INSERT INTO %s (%s, data) VALUES ($1, $2)
ON CONFLICT (%s) DO UPDATE SET data = EXCLUDED.data`, table, idColumn, idColumn)
		_, err = tx.ExecContext(ctx, query, id, data)
	case models.WriteMerge:
		query := fmt.Sprintf(`INSERT INTO %s (%s, data) VALUES ($1, $2)
ON CONFLICT (%s) DO UPDATE SET data = %s.data || EXCLUDED.data`, table, idColumn, idColumn, table)
		_, err = tx.ExecContext(ctx, query, id, data)
	default:
		err = fmt.Errorf("unknown method %q", op.Method)
	}
	return err
}

func (s *SQL) applyActionsOp(ctx context.Context, tx *sqlx.Tx, reportID string, op models.WriteOp) error {
	entries, err := coerceActionMap(op.Value)
	if err != nil {
		return err
	}
	if op.Method == models.WriteSet {
		if _, err := tx.ExecContext(ctx, `DELETE FROM report_actions WHERE report_id = $1`, reportID); err != nil {
			return err
		}
	}
	for actionID, action := range entries {
		if action == nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM report_actions WHERE report_id = $1 AND report_action_id = $2`, reportID, actionID); err != nil {
				return err
			}
			continue
		}
		data, err := json.Marshal(action)
		if err != nil {
			return err
		}
		const query = `INSERT INTO report_actions (report_id, report_action_id, data) VALUES ($1, $2, $3)
ON CONFLICT (report_id, report_action_id) DO UPDATE SET data = EXCLUDED.data`
		if _, err := tx.ExecContext(ctx, query, reportID, actionID, data); err != nil {
			return err
		}
	}
	return nil
}
