package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/japapin/martcon9/internal/domain"
)

// Source column names expected in the uploaded export.
const (
	colBranch       = "Filial"
	colCoverageDays = "Cobertura Atual"
	colStockValue   = "Vlr Estoque Tmk"
	colMerchandise  = "Mercadoria"
	colPendingOrder = "Saldo Pedido"
)

var requiredColumns = []string{
	colBranch,
	colCoverageDays,
	colStockValue,
	colMerchandise,
	colPendingOrder,
}

// ReadStockRows parses the first sheet of an XLSX stream into typed stock
// rows. The first row must be the header; all required columns must be
// present or a *domain.MissingColumnsError is returned listing every missing
// name, before any data row is touched. Unparseable numeric cells are coerced
// to 0 so the aggregation core never sees malformed values.
func ReadStockRows(r io.Reader) ([]domain.StockRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, &domain.MissingColumnsError{Columns: requiredColumns}
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Columns: missing}
	}

	idxBranch := index[colBranch]
	idxCoverage := index[colCoverageDays]
	idxStock := index[colStockValue]
	idxMerch := index[colMerchandise]
	idxPending := index[colPendingOrder]

	var out []domain.StockRow
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}

		out = append(out, domain.StockRow{
			Branch:       getCell(record, idxBranch),
			CoverageDays: parseFloat(record, idxCoverage),
			StockValue:   parseFloat(record, idxStock),
			Merchandise:  getCell(record, idxMerch),
			PendingOrder: parseFloat(record, idxPending),
		})
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return out, nil
}

func getCell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseFloat(record []string, idx int) float64 {
	v := getCell(record, idx)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Debug().Str("value", v).Msg("coercing unparseable numeric cell to 0")
		return 0
	}
	return f
}

func isEmptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
