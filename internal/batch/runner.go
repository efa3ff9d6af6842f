package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/japapin/martcon9/internal/excel"
	"github.com/japapin/martcon9/internal/service"
)

// Runner builds one coverage report per input file, concurrently. Inputs are
// never merged; each file is an independent report with its own output
// workbook.
type Runner struct {
	reportService *service.ReportService
	workers       int64
}

func NewRunner(reportService *service.ReportService, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{reportService: reportService, workers: int64(workers)}
}

// Run processes every input file, writing each report into outputDir. A
// failed file is logged and counted; the remaining files still run. Returns
// an error when at least one file failed.
func (r *Runner) Run(ctx context.Context, inputs []string, outputDir string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	sem := semaphore.NewWeighted(r.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed int

	for _, input := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("cancelled while waiting for worker slot: %w", err)
		}

		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			defer sem.Release(1)

			start := time.Now()
			if err := r.processFile(input, outputDir); err != nil {
				log.Error().Err(err).Str("file", input).Msg("report build failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Info().Str("file", input).Dur("took", time.Since(start)).Msg("report written")
		}(input)
	}

	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}
	return nil
}

func (r *Runner) processFile(input, outputDir string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", input, err)
	}
	defer f.Close()

	rows, err := excel.ReadStockRows(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	report, err := r.reportService.BuildReport(rows)
	if err != nil {
		return fmt.Errorf("failed to build report for %s: %w", input, err)
	}

	outPath := filepath.Join(outputDir, outputName(input))
	if err := os.WriteFile(outPath, report.DocumentBytes, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return nil
}

func outputName(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_relatorio.xlsx"
}
