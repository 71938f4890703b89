package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spendchat-engine/internal/models"
)

func TestMemoryApplyBatchSet(t *testing.T) {
	m := NewMemory()

	err := m.ApplyBatch(context.Background(), models.Batch{
		{Method: models.WriteSet, Key: models.ReportKey("r1"), Value: &models.Report{ReportID: "r1", Type: models.ReportTypeChat}},
		{Method: models.WriteSet, Key: models.TransactionKey("t1"), Value: &models.Transaction{TransactionID: "t1", ReportID: "r1", Amount: 500}},
	})
	require.NoError(t, err)

	s := m.Snapshot(100, "ann@corp.com")
	require.NotNil(t, s.Reports["r1"])
	assert.Equal(t, models.ReportTypeChat, s.Reports["r1"].Type)
	require.NotNil(t, s.Transactions["t1"])
	assert.Equal(t, int64(500), s.Transactions["t1"].Amount)

	// A nil set deletes the record.
	err = m.ApplyBatch(context.Background(), models.Batch{
		{Method: models.WriteSet, Key: models.ReportKey("r1"), Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, m.Snapshot(100, "ann@corp.com").Reports["r1"])
}

func TestMemoryApplyBatchMergeReport(t *testing.T) {
	m := NewMemory()
	m.PutReport(&models.Report{ReportID: "r1", Type: models.ReportTypeChat, ReportName: "#general", Total: 500})

	err := m.ApplyBatch(context.Background(), models.Batch{
		{Method: models.WriteMerge, Key: models.ReportKey("r1"), Value: map[string]interface{}{"reportName": "#random"}},
	})
	require.NoError(t, err)

	got := m.Snapshot(100, "ann@corp.com").Reports["r1"]
	require.NotNil(t, got)
	assert.Equal(t, "#random", got.ReportName)
	// Untouched fields survive the merge.
	assert.Equal(t, models.ReportTypeChat, got.Type)
	assert.Equal(t, int64(500), got.Total)
}

func TestMemoryApplyBatchActions(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a1 := &models.ReportAction{ReportID: "r1", ReportActionID: "a1", ActionName: models.ActionCreated, Created: "2026-08-01 10:00:00.000"}
	a2 := &models.ReportAction{ReportID: "r1", ReportActionID: "a2", ActionName: models.ActionAddComment, Created: "2026-08-01 10:01:00.000", PendingAction: models.PendingActionAdd}

	err := m.ApplyBatch(ctx, models.Batch{
		{Method: models.WriteMerge, Key: models.ReportActionsKey("r1"), Value: map[string]*models.ReportAction{"a1": a1}},
		{Method: models.WriteMerge, Key: models.ReportActionsKey("r1"), Value: map[string]*models.ReportAction{"a2": a2}},
	})
	require.NoError(t, err)

	s := m.Snapshot(100, "ann@corp.com")
	assert.Len(t, s.Actions["r1"], 2)

	// A nil entry removes exactly that action.
	err = m.ApplyBatch(ctx, models.Batch{
		{Method: models.WriteMerge, Key: models.ReportActionsKey("r1"), Value: map[string]*models.ReportAction{"a2": nil}},
	})
	require.NoError(t, err)

	s = m.Snapshot(100, "ann@corp.com")
	require.Len(t, s.Actions["r1"], 1)
	assert.NotNil(t, s.Actions["r1"]["a1"])
	assert.Nil(t, s.Actions["r1"]["a2"])
}

func TestMemoryApplyBatchUnknownKey(t *testing.T) {
	m := NewMemory()
	err := m.ApplyBatch(context.Background(), models.Batch{
		{Method: models.WriteSet, Key: "mystery_1", Value: "x"},
	})
	assert.Error(t, err)
}

func TestMemorySnapshotIsolation(t *testing.T) {
	m := NewMemory()
	m.PutReport(&models.Report{ReportID: "r1", Type: models.ReportTypeChat})
	m.PutDraft("r1", "unsent")
	m.SetBetas([]string{"defaultRooms"})

	s := m.Snapshot(100, "ann@corp.com")
	assert.Equal(t, int64(100), s.CurrentAccountID)
	assert.Equal(t, "ann@corp.com", s.CurrentLogin)
	assert.Equal(t, "unsent", s.Drafts["r1"])
	assert.True(t, s.Betas["defaultRooms"])

	// Later writes must not leak into an already assembled snapshot.
	err := m.ApplyBatch(context.Background(), models.Batch{
		{Method: models.WriteSet, Key: models.ReportKey("r2"), Value: &models.Report{ReportID: "r2", Type: models.ReportTypeChat}},
	})
	require.NoError(t, err)
	assert.Nil(t, s.Reports["r2"])
	assert.NotNil(t, m.Snapshot(100, "ann@corp.com").Reports["r2"])
}

func TestMemoryLoadSnapshotMatchesSnapshot(t *testing.T) {
	m := NewMemory()
	m.PutDetails(&models.PersonalDetails{AccountID: 100, Login: "ann@corp.com"})
	m.PutViolations("t1", []models.TransactionViolation{{Name: "overLimit", Type: models.ViolationTypeViolation}})

	s, err := m.LoadSnapshot(context.Background(), 100, "ann@corp.com")
	require.NoError(t, err)
	require.NotNil(t, s.PersonalDetails[100])
	assert.Len(t, s.Violations["t1"], 1)
}

func TestMemoryApplyBatchCoercesUntypedValues(t *testing.T) {
	m := NewMemory()

	// Values arriving as decoded JSON rather than typed pointers still apply.
	err := m.ApplyBatch(context.Background(), models.Batch{
		{Method: models.WriteSet, Key: models.ReportKey("r1"), Value: map[string]interface{}{
			"reportID": "r1",
			"type":     "expense",
			"total":    float64(-1200),
		}},
	})
	require.NoError(t, err)

	got := m.Snapshot(100, "ann@corp.com").Reports["r1"]
	require.NotNil(t, got)
	assert.Equal(t, models.ReportTypeExpense, got.Type)
	assert.Equal(t, int64(-1200), got.Total)
}
