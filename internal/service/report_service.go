package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/dto"
	"github.com/noah-isme/spendchat-engine/internal/engine"
	appErrors "github.com/noah-isme/spendchat-engine/pkg/errors"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
	"github.com/noah-isme/spendchat-engine/pkg/markup"
)

// SnapshotProvider loads the full derivation context for one viewer.
type SnapshotProvider interface {
	LoadSnapshot(ctx context.Context, accountID int64, login string) (*engine.Snapshot, error)
}

// SnapshotCacheLayer is the optional read-through cache in front of the
// provider.
type SnapshotCacheLayer interface {
	Get(ctx context.Context, accountID int64, login string) (*engine.Snapshot, error)
	Set(ctx context.Context, accountID int64, s *engine.Snapshot) error
}

type derivationObserver interface {
	ObserveDerivation(kind string, duration time.Duration)
	RecordCacheOperation(hit bool, duration time.Duration)
}

// ReportService answers derived questions about reports: names, workflow
// state, spend, approval routing, and list membership.
type ReportService struct {
	provider   SnapshotProvider
	cache      SnapshotCacheLayer
	namer      *engine.Namer
	translator localize.Translator
	metrics    derivationObserver
	logger     *zap.Logger
}

// ReportServiceOption configures the service.
type ReportServiceOption func(*ReportService)

// WithSnapshotCache wires the read-through snapshot cache.
func WithSnapshotCache(cache SnapshotCacheLayer) ReportServiceOption {
	return func(s *ReportService) { s.cache = cache }
}

// WithReportMetrics wires the derivation observer.
func WithReportMetrics(metrics derivationObserver) ReportServiceOption {
	return func(s *ReportService) { s.metrics = metrics }
}

// NewReportService constructs the service.
func NewReportService(provider SnapshotProvider, translator localize.Translator, renderer markup.Renderer, logger *zap.Logger, opts ...ReportServiceOption) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if translator == nil {
		translator = localize.NewEnglish()
	}
	if renderer == nil {
		renderer = markup.NewBasic()
	}
	svc := &ReportService{
		provider:   provider,
		namer:      engine.NewNamer(translator, renderer),
		translator: translator,
		logger:     logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// snapshot resolves the viewer's derivation context, preferring the cache.
func (s *ReportService) snapshot(ctx context.Context, accountID int64, login string) (*engine.Snapshot, error) {
	if s.cache != nil {
		start := time.Now()
		cached, err := s.cache.Get(ctx, accountID, login)
		if err == nil {
			s.observeCache(true, time.Since(start))
			return cached, nil
		}
		s.observeCache(false, time.Since(start))
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, accountID, snapshot); err != nil {
			s.logger.Warn("snapshot cache store failed", zap.Int64("account_id", accountID), zap.Error(err))
		}
	}
	return snapshot, nil
}

func (s *ReportService) observeCache(hit bool, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, duration)
	}
}

func (s *ReportService) observeDerivation(kind string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDerivation(kind, time.Since(start))
	}
}

// GetReportName derives the display title of one report.
func (s *ReportService) GetReportName(ctx context.Context, accountID int64, login, reportID string) (*dto.ReportNameResponse, error) {
	start := time.Now()
	defer s.observeDerivation("name", start)

	snapshot, err := s.snapshot(ctx, accountID, login)
	if err != nil {
		return nil, err
	}
	report := snapshot.Report(reportID)
	if report == nil {
		return nil, appErrors.ErrReportNotFound
	}
	return &dto.ReportNameResponse{
		ReportID: reportID,
		Name:     s.namer.ReportName(snapshot, report),
	}, nil
}

// GetReportStatus derives the workflow state and its display translation.
func (s *ReportService) GetReportStatus(ctx context.Context, accountID int64, login, reportID string) (*dto.ReportStatusResponse, error) {
	start := time.Now()
	defer s.observeDerivation("status", start)

	snapshot, err := s.snapshot(ctx, accountID, login)
	if err != nil {
		return nil, err
	}
	report := snapshot.Report(reportID)
	if report == nil {
		return nil, appErrors.ErrReportNotFound
	}
	return &dto.ReportStatusResponse{
		ReportID:    reportID,
		State:       string(engine.GetSemanticState(report.StateNum, report.StatusNum)),
		Translation: engine.GetReportStatusTranslation(report.StateNum, report.StatusNum, s.translator),
	}, nil
}

// GetSpendBreakdown derives the sign-corrected spend split of a money report.
func (s *ReportService) GetSpendBreakdown(ctx context.Context, accountID int64, login, reportID string) (*dto.SpendBreakdownResponse, error) {
	start := time.Now()
	defer s.observeDerivation("spend", start)

	snapshot, err := s.snapshot(ctx, accountID, login)
	if err != nil {
		return nil, err
	}
	report := snapshot.Report(reportID)
	if report == nil {
		return nil, appErrors.ErrReportNotFound
	}
	if !engine.IsMoneyRequestReport(report) && !engine.IsInvoiceReport(report) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "report carries no spend")
	}
	breakdown := engine.GetSpendBreakdown(report)
	return &dto.SpendBreakdownResponse{
		ReportID:        reportID,
		Currency:        report.Currency,
		Total:           breakdown.TotalDisplaySpend,
		Reimbursable:    breakdown.ReimbursableSpend,
		NonReimbursable: breakdown.NonReimbursableSpend,
		Unheld:          engine.UnheldSpend(report),
	}, nil
}

// GetApprovalChain derives the approver route of an expense report.
func (s *ReportService) GetApprovalChain(ctx context.Context, accountID int64, login, reportID string) (*dto.ApprovalChainResponse, error) {
	start := time.Now()
	defer s.observeDerivation("approval_chain", start)

	snapshot, err := s.snapshot(ctx, accountID, login)
	if err != nil {
		return nil, err
	}
	report := snapshot.Report(reportID)
	if report == nil {
		return nil, appErrors.ErrReportNotFound
	}
	policy := snapshot.Policy(report.PolicyID)
	if policy == nil {
		return nil, appErrors.ErrPolicyNotFound
	}
	chain := engine.GetApprovalChain(snapshot, policy, report)
	return &dto.ApprovalChainResponse{
		ReportID:     reportID,
		Chain:        chain,
		NextApprover: engine.NextApproverAccountID(snapshot, report),
	}, nil
}

// ListReports derives the navigable report list for the viewer's options.
// Entries come back ordered by last activity, newest first.
func (s *ReportService) ListReports(ctx context.Context, accountID int64, login string, query dto.ReportListQuery) (*dto.ReportListResponse, error) {
	start := time.Now()
	defer s.observeDerivation("list", start)

	snapshot, err := s.snapshot(ctx, accountID, login)
	if err != nil {
		return nil, err
	}

	visCtx := engine.VisibilityContext{
		CurrentReportID:  query.CurrentReportID,
		FocusMode:        query.FocusMode,
		IncludeSelfDM:    query.IncludeSelfDM,
		RestrictedDomain: query.RestrictedDomain,
	}

	ids := make([]string, 0, len(snapshot.Reports))
	for id := range snapshot.Reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]dto.ReportListEntry, 0, len(ids))
	for _, id := range ids {
		report := snapshot.Reports[id]
		reason := engine.ReasonForInclusion(snapshot, report, visCtx)
		if reason == nil {
			continue
		}
		entries = append(entries, dto.ReportListEntry{
			ReportID: id,
			Name:     s.namer.ReportName(snapshot, report),
			State:    string(engine.GetSemanticState(report.StateNum, report.StatusNum)),
			Reason:   string(*reason),
			Type:     report.Type,
			IsUnread: engine.IsUnread(report),
			IsPinned: report.IsPinned,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a := snapshot.Reports[entries[i].ReportID]
		b := snapshot.Reports[entries[j].ReportID]
		if a.LastVisibleActionCreated != b.LastVisibleActionCreated {
			return a.LastVisibleActionCreated > b.LastVisibleActionCreated
		}
		return entries[i].ReportID < entries[j].ReportID
	})

	return &dto.ReportListResponse{Entries: entries, Count: len(entries)}, nil
}
