package optimistic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/pkg/clock"
	"github.com/noah-isme/spendchat-engine/pkg/ids"
)

var fixedNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func testBuilder() *Builder {
	return NewBuilder(Config{
		IDs:            ids.NewSequence(1000),
		Clock:          clock.Fixed{T: fixedNow},
		ActorAccountID: 100,
		ActorLogin:     "ann@corp.com",
	})
}

// findOp locates the single instruction in a batch addressing key with the
// given method.
func findOp(t *testing.T, batch models.Batch, method models.WriteMethod, key string) models.WriteOp {
	t.Helper()
	for _, op := range batch {
		if op.Method == method && op.Key == key {
			return op
		}
	}
	t.Fatalf("no %s op for key %s in batch", method, key)
	return models.WriteOp{}
}

func reportValue(t *testing.T, op models.WriteOp) *models.Report {
	t.Helper()
	r, ok := op.Value.(*models.Report)
	require.True(t, ok, "op value is not a report")
	return r
}

func transactionValue(t *testing.T, op models.WriteOp) *models.Transaction {
	t.Helper()
	txn, ok := op.Value.(*models.Transaction)
	require.True(t, ok, "op value is not a transaction")
	return txn
}

func actionMapValue(t *testing.T, op models.WriteOp) map[string]*models.ReportAction {
	t.Helper()
	m, ok := op.Value.(map[string]*models.ReportAction)
	require.True(t, ok, "op value is not an action map")
	return m
}
