package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/spendchat-engine/internal/engine"
	appErrors "github.com/noah-isme/spendchat-engine/pkg/errors"
	"github.com/noah-isme/spendchat-engine/pkg/export"
	"github.com/noah-isme/spendchat-engine/pkg/localize"
	"github.com/noah-isme/spendchat-engine/pkg/markup"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered spend summary ready to serve.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the viewer's money reports into downloadable spend
// summaries.
type ExportService struct {
	provider   SnapshotProvider
	namer      *engine.Namer
	translator localize.Translator
	csv        csvRenderer
	pdf        pdfRenderer
	maxRows    int
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(provider SnapshotProvider, translator localize.Translator, renderer markup.Renderer, maxRows int, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if translator == nil {
		translator = localize.NewEnglish()
	}
	if renderer == nil {
		renderer = markup.NewBasic()
	}
	if maxRows <= 0 {
		maxRows = 10000
	}
	return &ExportService{
		provider:   provider,
		namer:      engine.NewNamer(translator, renderer),
		translator: translator,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		maxRows:    maxRows,
		logger:     logger,
	}
}

var spendSummaryHeaders = []string{"Report ID", "Name", "State", "Currency", "Total", "Reimbursable", "Non-Reimbursable", "Unheld"}

// SpendSummary renders every money report visible to the viewer.
func (s *ExportService) SpendSummary(ctx context.Context, accountID int64, login string, format ExportFormat) (*ExportResult, error) {
	snapshot, err := s.provider.LoadSnapshot(ctx, accountID, login)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load snapshot")
	}

	ids := make([]string, 0, len(snapshot.Reports))
	for id, report := range snapshot.Reports {
		if engine.IsMoneyRequestReport(report) || engine.IsInvoiceReport(report) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("export exceeds the %d row limit", s.maxRows))
	}

	rows := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		report := snapshot.Reports[id]
		breakdown := engine.GetSpendBreakdown(report)
		rows = append(rows, map[string]string{
			"Report ID":        id,
			"Name":             s.namer.ReportName(snapshot, report),
			"State":            string(engine.GetSemanticState(report.StateNum, report.StatusNum)),
			"Currency":         report.Currency,
			"Total":            localize.FormatAmount(breakdown.TotalDisplaySpend, report.Currency),
			"Reimbursable":     localize.FormatAmount(breakdown.ReimbursableSpend, report.Currency),
			"Non-Reimbursable": localize.FormatAmount(breakdown.NonReimbursableSpend, report.Currency),
			"Unheld":           localize.FormatAmount(engine.UnheldSpend(report), report.Currency),
		})
	}
	dataset := export.Dataset{Headers: spendSummaryHeaders, Rows: rows}

	timestamp := time.Now().UTC().Format("20060102_150405")
	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("spend_summary_%s.csv", timestamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Spend Summary")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("spend_summary_%s.pdf", timestamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
