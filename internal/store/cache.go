package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/engine"
	"github.com/noah-isme/spendchat-engine/internal/models"
)

// ErrCacheMiss is returned when no snapshot is cached for the account.
var ErrCacheMiss = errors.New("snapshot cache miss")

// snapshotDocument is the serialized form of a snapshot. The logger and
// viewer identity are re-attached on load.
type snapshotDocument struct {
	Reports      map[string]*models.Report                   `json:"reports,omitempty"`
	Actions      map[string]map[string]*models.ReportAction  `json:"actions,omitempty"`
	Transactions map[string]*models.Transaction              `json:"transactions,omitempty"`
	Policies     map[string]*models.Policy                   `json:"policies,omitempty"`
	Details      map[int64]*models.PersonalDetails           `json:"personalDetails,omitempty"`
	Violations   map[string][]models.TransactionViolation    `json:"violations,omitempty"`
	Drafts       map[string]string                           `json:"drafts,omitempty"`
	Betas        map[string]bool                             `json:"betas,omitempty"`
}

// SnapshotCache keeps per-account snapshots in Redis so repeated list
// derivations skip the database round trip. Writes after a mutation batch
// invalidate rather than update.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache constructs the cache.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SnapshotCache{client: client, ttl: ttl, logger: logger}
}

func snapshotKey(accountID int64) string {
	return fmt.Sprintf("snapshot:%d", accountID)
}

// Get loads the cached snapshot for an account.
func (c *SnapshotCache) Get(ctx context.Context, accountID int64, login string) (*engine.Snapshot, error) {
	raw, err := c.client.Get(ctx, snapshotKey(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot cache get: %w", err)
	}
	var doc snapshotDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("snapshot cache decode: %w", err)
	}
	return &engine.Snapshot{
		Reports:          doc.Reports,
		Actions:          doc.Actions,
		Transactions:     doc.Transactions,
		Policies:         doc.Policies,
		PersonalDetails:  doc.Details,
		Violations:       doc.Violations,
		Drafts:           doc.Drafts,
		Betas:            doc.Betas,
		CurrentAccountID: accountID,
		CurrentLogin:     login,
		Logger:           c.logger,
	}, nil
}

// Set stores the snapshot under the account's key for the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, accountID int64, s *engine.Snapshot) error {
	doc := snapshotDocument{
		Reports:      s.Reports,
		Actions:      s.Actions,
		Transactions: s.Transactions,
		Policies:     s.Policies,
		Details:      s.PersonalDetails,
		Violations:   s.Violations,
		Drafts:       s.Drafts,
		Betas:        s.Betas,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("snapshot cache encode: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(accountID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot after a mutation batch lands.
func (c *SnapshotCache) Invalidate(ctx context.Context, accountID int64) {
	if err := c.client.Del(ctx, snapshotKey(accountID)).Err(); err != nil {
		c.logger.Warn("snapshot cache invalidate failed",
			zap.Int64("account_id", accountID),
			zap.Error(err))
	}
}
