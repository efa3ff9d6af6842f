package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/japapin/martcon9/internal/domain"
	"github.com/japapin/martcon9/internal/excel"
	"github.com/japapin/martcon9/internal/report"
)

// Table titles and headers as they appear on the consolidated sheet.
const (
	titleSummary     = "Coverage Summary by Branch"
	titleAbsolute    = "Distribution by Coverage Range (Absolute Values)"
	titlePercent     = "Distribution by Coverage Range (Percent)"
	headerBranch     = "Branch"
	headerWeighted   = "Weighted Avg Coverage (days)"
	headerSimple     = "Simple Avg Coverage (days)"
	headerPendingSum = "Pending Order Total"
	headerTotal      = "TOTAL"
)

// ReportService orchestrates the aggregation core and the sheet layout, and
// keeps built reports addressable for download. Each BuildReport call is
// independent; the store is the only shared state and is mutex-guarded.
type ReportService struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
}

func NewReportService() *ReportService {
	return &ReportService{reports: make(map[string]*domain.Report)}
}

// BuildReport runs Aggregate -> Normalize -> Layout over validated rows and
// returns the three tables plus the serialized workbook. Empty input yields
// empty tables and a workbook with three header-only blocks, not an error.
func (s *ReportService) BuildReport(rows []domain.StockRow) (*domain.Report, error) {
	summary, dist := report.Aggregate(rows)
	pct := report.Normalize(dist)

	tables := []excel.Table{
		summaryTable(summary),
		distributionTable(dist),
		percentTable(pct),
	}

	grid, _ := excel.Layout(tables, 1)
	doc, err := excel.WriteDocument(grid)
	if err != nil {
		return nil, fmt.Errorf("failed to build report document: %w", err)
	}

	log.Info().
		Int("rows", len(rows)).
		Int("branches", len(summary)).
		Int("document_bytes", len(doc)).
		Msg("report built")

	return &domain.Report{
		Summary:         summary,
		DistributionAbs: dist,
		DistributionPct: pct,
		DocumentBytes:   doc,
	}, nil
}

// Store registers a built report and returns its download ID.
func (s *ReportService) Store(r *domain.Report) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.reports[id] = r
	s.mu.Unlock()
	return id
}

// Get returns a previously built report by ID.
func (s *ReportService) Get(id string) (*domain.Report, bool) {
	s.mu.RLock()
	r, ok := s.reports[id]
	s.mu.RUnlock()
	return r, ok
}

// Pareto derives the descending percent series with cumulative values for a
// single branch of a stored report.
func (s *ReportService) Pareto(r *domain.Report, branch string) ([]domain.ParetoPoint, bool) {
	return report.ParetoSeries(r.DistributionPct, branch)
}

func summaryTable(summary []domain.CoverageSummary) excel.Table {
	rows := make([][]any, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []any{s.Branch, s.WeightedAvgDays, s.SimpleAvgDays, s.PendingOrderTotal})
	}
	return excel.Table{
		Title:  titleSummary,
		Header: []string{headerBranch, headerWeighted, headerSimple, headerPendingSum},
		Rows:   rows,
	}
}

func distributionTable(dist []domain.DistributionRow) excel.Table {
	header := make([]string, 0, len(domain.Buckets)+2)
	header = append(header, headerBranch)
	for _, b := range domain.Buckets {
		header = append(header, string(b))
	}
	header = append(header, headerTotal)

	rows := make([][]any, 0, len(dist))
	for _, d := range dist {
		row := make([]any, 0, len(header))
		row = append(row, d.Branch)
		for _, b := range domain.Buckets {
			row = append(row, d.Values[b])
		}
		row = append(row, d.Total)
		rows = append(rows, row)
	}

	return excel.Table{Title: titleAbsolute, Header: header, Rows: rows}
}

func percentTable(pct []domain.PercentDistributionRow) excel.Table {
	header := make([]string, 0, len(domain.Buckets)+1)
	header = append(header, headerBranch)
	for _, b := range domain.Buckets {
		header = append(header, string(b))
	}

	rows := make([][]any, 0, len(pct))
	for _, p := range pct {
		row := make([]any, 0, len(header))
		row = append(row, p.Branch)
		for _, b := range domain.Buckets {
			row = append(row, p.Values[b])
		}
		rows = append(rows, row)
	}

	return excel.Table{Title: titlePercent, Header: header, Rows: rows}
}
