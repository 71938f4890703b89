package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/dto"
	"github.com/noah-isme/spendchat-engine/internal/engine"
	"github.com/noah-isme/spendchat-engine/internal/models"
	"github.com/noah-isme/spendchat-engine/internal/optimistic"
	appErrors "github.com/noah-isme/spendchat-engine/pkg/errors"
	"github.com/noah-isme/spendchat-engine/pkg/ids"
	"github.com/noah-isme/spendchat-engine/pkg/jobs"
)

// BatchStore applies instruction batches to the record store.
type BatchStore interface {
	ApplyBatch(ctx context.Context, batch models.Batch) error
}

// CommandClient executes the authoritative server command behind an
// optimistic mutation. The zero-value NoopCommandClient confirms everything,
// which is what a single-node deployment wants.
type CommandClient interface {
	Execute(ctx context.Context, command string, payload interface{}) error
}

// CommandClientFunc adapts a function to CommandClient.
type CommandClientFunc func(ctx context.Context, command string, payload interface{}) error

// Execute implements CommandClient.
func (f CommandClientFunc) Execute(ctx context.Context, command string, payload interface{}) error {
	return f(ctx, command, payload)
}

// NoopCommandClient confirms every command locally.
type NoopCommandClient struct{}

// Execute implements CommandClient.
func (NoopCommandClient) Execute(context.Context, string, interface{}) error { return nil }

type cacheInvalidator interface {
	Invalidate(ctx context.Context, accountID int64)
}

// confirmation is the queued resolution work for one applied mutation.
type confirmation struct {
	AccountID int64
	Command   string
	Payload   interface{}
	Set       models.MutationSet
}

// MutationService builds optimistic mutations, applies them to the store,
// and resolves each one through the confirmation queue: the server command
// either confirms (success batch) or rejects (failure batch restores the
// prior records).
type MutationService struct {
	store     BatchStore
	provider  SnapshotProvider
	commands  CommandClient
	queue     *jobs.Queue
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger

	builderCfg optimistic.Config
	timeout    time.Duration
}

// MutationServiceConfig wires a MutationService.
type MutationServiceConfig struct {
	Store          BatchStore
	Provider       SnapshotProvider
	Commands       CommandClient
	Cache          cacheInvalidator
	Logger         *zap.Logger
	Builder        optimistic.Config
	Workers        int
	Retries        int
	CommandTimeout time.Duration
}

// NewMutationService constructs the service and its confirmation queue. The
// queue must be started with Start before mutations resolve.
func NewMutationService(cfg MutationServiceConfig) *MutationService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Commands == nil {
		cfg.Commands = NoopCommandClient{}
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 15 * time.Second
	}
	svc := &MutationService{
		store:      cfg.Store,
		provider:   cfg.Provider,
		commands:   cfg.Commands,
		cache:      cfg.Cache,
		validator:  validator.New(),
		logger:     cfg.Logger,
		builderCfg: cfg.Builder,
		timeout:    cfg.CommandTimeout,
	}
	svc.validator.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, r := range code {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
		return true
	})
	svc.queue = jobs.NewQueue("mutation-confirm", svc.handleConfirmation, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		Logger:     cfg.Logger,
	})
	return svc
}

// Start begins confirmation processing.
func (s *MutationService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop drains the confirmation workers.
func (s *MutationService) Stop() { s.queue.Stop() }

// builder assembles a per-actor mutation builder.
func (s *MutationService) builder(accountID int64, login string) *optimistic.Builder {
	cfg := s.builderCfg
	cfg.ActorAccountID = accountID
	cfg.ActorLogin = login
	return optimistic.NewBuilder(cfg)
}

// apply writes the optimistic batch and queues the resolution.
func (s *MutationService) apply(ctx context.Context, accountID int64, command string, payload interface{}, set models.MutationSet) (string, error) {
	if err := s.store.ApplyBatch(ctx, set.Optimistic); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply optimistic batch")
	}
	s.invalidate(ctx, accountID)

	jobID := ids.NewJobID()
	err := s.queue.Enqueue(jobs.Job{
		ID:   jobID,
		Type: command,
		Payload: confirmation{
			AccountID: accountID,
			Command:   command,
			Payload:   payload,
			Set:       set,
		},
	})
	if err != nil {
		// No worker will resolve the mutation; roll it back immediately.
		if rollbackErr := s.store.ApplyBatch(ctx, set.Failure); rollbackErr != nil {
			s.logger.Error("rollback after enqueue failure failed",
				zap.String("command", command), zap.Error(rollbackErr))
		}
		s.invalidate(ctx, accountID)
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue confirmation")
	}
	return jobID, nil
}

// handleConfirmation resolves one mutation against the command client.
func (s *MutationService) handleConfirmation(ctx context.Context, job jobs.Job) error {
	c, ok := job.Payload.(confirmation)
	if !ok {
		s.logger.Error("confirmation job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	cmdCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resolution := c.Set.Success
	if err := s.commands.Execute(cmdCtx, c.Command, c.Payload); err != nil {
		s.logger.Warn("command rejected, rolling back",
			zap.String("command", c.Command),
			zap.String("job_id", job.ID),
			zap.Error(err))
		resolution = c.Set.Failure
	}
	if err := s.store.ApplyBatch(ctx, resolution); err != nil {
		return err
	}
	s.invalidate(ctx, c.AccountID)
	return nil
}

func (s *MutationService) invalidate(ctx context.Context, accountID int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, accountID)
	}
}

func (s *MutationService) validate(req interface{}) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mutation payload")
	}
	return nil
}

// AddComment posts a comment to a report.
func (s *MutationService) AddComment(ctx context.Context, accountID int64, login string, req dto.AddCommentRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	report := snapshot.Report(req.ReportID)
	if report == nil {
		return nil, appErrors.ErrReportNotFound
	}

	result := s.builder(accountID, login).BuildComment(report, req.Text)
	jobID, err := s.apply(ctx, accountID, "AddComment", req, result.Set)
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:    jobID,
		Status:   "pending",
		ReportID: req.ReportID,
		ActionID: result.Action.ReportActionID,
	}, nil
}

// CreateMoneyRequest records a new expense or IOU line.
func (s *MutationService) CreateMoneyRequest(ctx context.Context, accountID int64, login string, req dto.CreateMoneyRequestRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	chat := snapshot.Report(req.ChatReportID)
	if chat == nil {
		return nil, appErrors.ErrReportNotFound
	}
	policy := snapshot.Policy(req.PolicyID)
	if req.PolicyID != "" && policy == nil {
		return nil, appErrors.ErrPolicyNotFound
	}

	// Reuse the chat's outstanding money report when one exists.
	var moneyReport *models.Report
	for _, candidate := range snapshot.Reports {
		if candidate.ParentReportID != chat.ReportID || !engine.IsMoneyRequestReport(candidate) {
			continue
		}
		if engine.IsOpenReport(candidate) || engine.IsProcessingReport(candidate) {
			moneyReport = candidate
			break
		}
	}

	result := s.builder(accountID, login).BuildMoneyRequest(optimistic.MoneyRequestParams{
		Chat:           chat,
		MoneyReport:    moneyReport,
		Policy:         policy,
		PayeeAccountID: accountID,
		PayerAccountID: req.PayerAccountID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Merchant:       req.Merchant,
		Comment:        req.Comment,
		Created:        req.Created,
		Reimbursable:   req.Reimbursable,
		Billable:       req.Billable,
		IsTrack:        req.Track,
	})
	jobID, err := s.apply(ctx, accountID, "RequestMoney", req, result.Set)
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:          jobID,
		Status:         "pending",
		ReportID:       result.MoneyReport.ReportID,
		ActionID:       result.IOUAction.ReportActionID,
		ThreadReportID: result.Thread.ReportID,
		TransactionID:  result.Transaction.TransactionID,
	}, nil
}

// workflowBuild is the shared shape of the single-action lifecycle verbs.
type workflowBuild func(b *optimistic.Builder, report *models.Report) optimistic.LifecycleResult

// applyWorkflow validates the transition and applies one lifecycle verb.
func (s *MutationService) applyWorkflow(ctx context.Context, accountID int64, login, reportID, command string, allowed func(*models.Report) bool, build workflowBuild) (*dto.MutationResponse, error) {
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	report := snapshot.Report(reportID)
	if report == nil {
		return nil, appErrors.ErrReportNotFound
	}
	if allowed != nil && !allowed(report) {
		return nil, appErrors.ErrNotPermitted
	}

	result := build(s.builder(accountID, login), report)
	jobID, err := s.apply(ctx, accountID, command, dto.WorkflowRequest{ReportID: reportID}, result.Set)
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:    jobID,
		Status:   "pending",
		ReportID: reportID,
		ActionID: result.Action.ReportActionID,
	}, nil
}

// Submit moves a draft report into the approval pipeline.
func (s *MutationService) Submit(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "SubmitReport", engine.IsOpenReport,
		func(b *optimistic.Builder, r *models.Report) optimistic.LifecycleResult { return b.BuildSubmit(r, false) })
}

// Approve records a final approval on an outstanding report.
func (s *MutationService) Approve(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "ApproveMoneyRequest", engine.IsProcessingReport,
		(*optimistic.Builder).BuildApprove)
}

// Unapprove walks an approved report back to outstanding.
func (s *MutationService) Unapprove(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "UnapproveExpenseReport", engine.IsReportApproved,
		(*optimistic.Builder).BuildUnapprove)
}

// Close closes a report without payment.
func (s *MutationService) Close(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "CloseReport",
		func(r *models.Report) bool { return !engine.IsSettled(r) && !engine.IsClosedReport(r) },
		func(b *optimistic.Builder, r *models.Report) optimistic.LifecycleResult {
			return b.BuildClose(r, models.ClosedReasonDefault)
		})
}

// Reopen returns a closed report to the open state.
func (s *MutationService) Reopen(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "ReopenReport", engine.IsClosedReport,
		(*optimistic.Builder).BuildReopen)
}

// Retract pulls a submitted report back before anyone approves it.
func (s *MutationService) Retract(ctx context.Context, accountID int64, login string, req dto.WorkflowRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "RetractReport", engine.IsProcessingReport,
		(*optimistic.Builder).BuildRetract)
}

// Rename retitles a room.
func (s *MutationService) Rename(ctx context.Context, accountID int64, login string, req dto.RenameRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "RenameReport", nil,
		func(b *optimistic.Builder, r *models.Report) optimistic.LifecycleResult {
			return b.BuildRename(r, req.Name)
		})
}

// Pay settles an approved money report.
func (s *MutationService) Pay(ctx context.Context, accountID int64, login string, req dto.PayRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.applyWorkflow(ctx, accountID, login, req.ReportID, "PayMoneyRequest",
		func(r *models.Report) bool { return engine.IsReportApproved(r) || engine.IsProcessingReport(r) },
		func(b *optimistic.Builder, r *models.Report) optimistic.LifecycleResult {
			return b.BuildPay(r, req.PaymentMethod)
		})
}

// Hold places one transaction on hold.
func (s *MutationService) Hold(ctx context.Context, accountID int64, login string, req dto.HoldRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	thread := snapshot.Report(req.ThreadReportID)
	if thread == nil {
		return nil, appErrors.ErrReportNotFound
	}
	txn := snapshot.Transaction(req.TransactionID)
	if txn == nil {
		return nil, appErrors.ErrTransactionNotFound
	}
	if txn.IsOnHold() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "transaction is already on hold")
	}

	result := s.builder(accountID, login).BuildHold(thread, snapshot.Report(txn.ReportID), txn, req.Comment)
	jobID, err := s.apply(ctx, accountID, "HoldRequest", req, result.Set)
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:         jobID,
		Status:        "pending",
		ReportID:      req.ThreadReportID,
		ActionID:      result.Action.ReportActionID,
		TransactionID: req.TransactionID,
	}, nil
}

// Unhold releases a held transaction.
func (s *MutationService) Unhold(ctx context.Context, accountID int64, login string, req dto.UnholdRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	thread := snapshot.Report(req.ThreadReportID)
	if thread == nil {
		return nil, appErrors.ErrReportNotFound
	}
	txn := snapshot.Transaction(req.TransactionID)
	if txn == nil {
		return nil, appErrors.ErrTransactionNotFound
	}
	if !txn.IsOnHold() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "transaction is not on hold")
	}

	result := s.builder(accountID, login).BuildUnhold(thread, snapshot.Report(txn.ReportID), txn)
	jobID, err := s.apply(ctx, accountID, "UnHoldRequest", req, result.Set)
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:         jobID,
		Status:        "pending",
		ReportID:      req.ThreadReportID,
		ActionID:      result.Action.ReportActionID,
		TransactionID: req.TransactionID,
	}, nil
}

// CreateTask assigns a task inside a chat.
func (s *MutationService) CreateTask(ctx context.Context, accountID int64, login string, req dto.CreateTaskRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	chat := snapshot.Report(req.ChatReportID)
	if chat == nil {
		return nil, appErrors.ErrReportNotFound
	}

	result := s.builder(accountID, login).BuildTask(optimistic.TaskParams{
		Chat:              chat,
		Title:             req.Title,
		Description:       req.Description,
		AssigneeAccountID: req.AssigneeAccountID,
	})
	jobID, err := s.apply(ctx, accountID, "CreateTask", req, result.Set)
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:          jobID,
		Status:         "pending",
		ReportID:       result.Task.ReportID,
		ActionID:       result.TaskAction.ReportActionID,
		ThreadReportID: result.Task.ReportID,
	}, nil
}

// CreateWorkspaceChats bootstraps the default chats of a workspace.
func (s *MutationService) CreateWorkspaceChats(ctx context.Context, accountID int64, login string, req dto.CreateWorkspaceChatsRequest) (*dto.MutationResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}
	policy := snapshot.Policy(req.PolicyID)
	if policy == nil {
		return nil, appErrors.ErrPolicyNotFound
	}

	memberName := snapshot.Details(accountID).FullName()
	if memberName == "" {
		memberName = login
	}
	result := s.builder(accountID, login).BuildWorkspaceChats(policy, memberName)
	jobID, err := s.apply(ctx, accountID, "CreateWorkspace", req, result.Combined())
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		JobID:    jobID,
		Status:   "pending",
		ReportID: result.ExpenseChat.Report.ReportID,
	}, nil
}
