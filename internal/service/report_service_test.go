package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/japapin/martcon9/internal/domain"
	"github.com/japapin/martcon9/internal/excel"
)

func testRows() []domain.StockRow {
	return []domain.StockRow{
		{Branch: "A", CoverageDays: 10, StockValue: 100, Merchandise: "m1", PendingOrder: 50},
		{Branch: "A", CoverageDays: 20, StockValue: 0, Merchandise: "m2", PendingOrder: 30},
		{Branch: "B", CoverageDays: 70, StockValue: 500, Merchandise: "m3", PendingOrder: 200},
	}
}

func TestBuildReportTables(t *testing.T) {
	svc := NewReportService()

	report, err := svc.BuildReport(testRows())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if len(report.Summary) != 2 {
		t.Fatalf("got %d summary rows, want 2", len(report.Summary))
	}
	if report.Summary[0].Branch != "A" || report.Summary[1].Branch != "B" {
		t.Errorf("summary branches = [%s, %s], want [A, B]",
			report.Summary[0].Branch, report.Summary[1].Branch)
	}
	if report.Summary[0].WeightedAvgDays != 10 {
		t.Errorf("A WeightedAvgDays = %v, want 10", report.Summary[0].WeightedAvgDays)
	}
	if report.Summary[0].SimpleAvgDays != 15 {
		t.Errorf("A SimpleAvgDays = %v, want 15", report.Summary[0].SimpleAvgDays)
	}

	// Same branch key set across all three tables.
	if len(report.DistributionAbs) != 2 || len(report.DistributionPct) != 2 {
		t.Fatalf("distribution lengths = %d/%d, want 2/2",
			len(report.DistributionAbs), len(report.DistributionPct))
	}
	for i := range report.Summary {
		if report.DistributionAbs[i].Branch != report.Summary[i].Branch {
			t.Errorf("abs branch %q != summary branch %q",
				report.DistributionAbs[i].Branch, report.Summary[i].Branch)
		}
		if report.DistributionPct[i].Branch != report.Summary[i].Branch {
			t.Errorf("pct branch %q != summary branch %q",
				report.DistributionPct[i].Branch, report.Summary[i].Branch)
		}
	}

	if report.DistributionPct[1].Values[domain.BucketOver60] != 100 {
		t.Errorf("B >60 days pct = %v, want 100", report.DistributionPct[1].Values[domain.BucketOver60])
	}
}

func TestBuildReportDocumentLayout(t *testing.T) {
	svc := NewReportService()

	report, err := svc.BuildReport(testRows())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(report.DocumentBytes))
	if err != nil {
		t.Fatalf("failed to open report document: %v", err)
	}
	defer f.Close()

	// Three blocks in fixed order: summary (2 data rows) starts at row 1,
	// absolute distribution at row 6, percent distribution at row 11.
	checks := []struct {
		addr string
		want string
	}{
		{"A1", titleSummary},
		{"A2", headerBranch},
		{"A3", "A"},
		{"A4", "B"},
		{"A6", titleAbsolute},
		{"H7", headerTotal},
		{"A11", titlePercent},
		{"B12", string(domain.BucketNonPositive)},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(excel.SheetName, c.addr)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", c.addr, err)
		}
		if got != c.want {
			t.Errorf("cell %s = %q, want %q", c.addr, got, c.want)
		}
	}
}

func TestBuildReportIdempotent(t *testing.T) {
	svc := NewReportService()

	first, err := svc.BuildReport(testRows())
	if err != nil {
		t.Fatalf("first BuildReport failed: %v", err)
	}
	second, err := svc.BuildReport(testRows())
	if err != nil {
		t.Fatalf("second BuildReport failed: %v", err)
	}

	if !bytes.Equal(first.DocumentBytes, second.DocumentBytes) {
		t.Error("identical input produced different document bytes")
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	svc := NewReportService()

	report, err := svc.BuildReport(nil)
	if err != nil {
		t.Fatalf("BuildReport failed on empty input: %v", err)
	}
	if len(report.Summary) != 0 || len(report.DistributionAbs) != 0 || len(report.DistributionPct) != 0 {
		t.Error("empty input should produce empty tables")
	}
	if len(report.DocumentBytes) == 0 {
		t.Error("empty input should still produce a document")
	}
}

func TestStoreAndGet(t *testing.T) {
	svc := NewReportService()

	report, err := svc.BuildReport(testRows())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	id := svc.Store(report)
	if id == "" {
		t.Fatal("Store returned empty id")
	}

	got, ok := svc.Get(id)
	if !ok {
		t.Fatal("Get did not find stored report")
	}
	if got != report {
		t.Error("Get returned a different report")
	}

	if _, ok := svc.Get("missing"); ok {
		t.Error("Get found a report for an unknown id")
	}
}

func TestServicePareto(t *testing.T) {
	svc := NewReportService()

	report, err := svc.BuildReport(testRows())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	points, ok := svc.Pareto(report, "A")
	if !ok {
		t.Fatal("Pareto returned ok=false for existing branch")
	}
	// A: 50 in 1-15 days, 30 in 16-30 days of total 80.
	if points[0].Bucket != domain.Bucket1To15 || points[0].Percent != 62.5 {
		t.Errorf("points[0] = %+v, want 1-15 days at 62.5%%", points[0])
	}
	if points[1].Bucket != domain.Bucket16To30 || points[1].Percent != 37.5 {
		t.Errorf("points[1] = %+v, want 16-30 days at 37.5%%", points[1])
	}
	if points[1].Cumulative != 100 {
		t.Errorf("points[1].Cumulative = %v, want 100", points[1].Cumulative)
	}

	if _, ok := svc.Pareto(report, "nope"); ok {
		t.Error("Pareto returned ok=true for unknown branch")
	}
}
