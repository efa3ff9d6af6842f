package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet every report is written to.
const SheetName = "Relatorio Consolidado"

const headerFillColor = "0070C0"

// Fixed document properties keep repeated builds of the same input
// byte-identical.
const pinnedTimestamp = "2024-01-01T00:00:00Z"

// WriteDocument serializes a laid-out grid into XLSX bytes. All output goes
// to an in-memory buffer; delivery is the caller's concern.
func WriteDocument(grid Grid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Created:  pinnedTimestamp,
		Modified: pinnedTimestamp,
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create data style: %w", err)
	}

	styles := map[CellKind]int{
		CellTitle:  titleStyle,
		CellHeader: headerStyle,
		CellData:   dataStyle,
	}

	for _, cell := range grid.Cells {
		addr, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
		if err != nil {
			return nil, fmt.Errorf("invalid cell coordinates (%d,%d): %w", cell.Col, cell.Row, err)
		}

		if cell.Value != nil {
			if err := f.SetCellValue(SheetName, addr, cell.Value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", addr, err)
			}
		}
		if err := f.SetCellStyle(SheetName, addr, addr, styles[cell.Kind]); err != nil {
			return nil, fmt.Errorf("failed to style cell %s: %w", addr, err)
		}

		if cell.Kind == CellTitle && cell.Span > 1 {
			end, err := excelize.CoordinatesToCellName(cell.Col+cell.Span-1, cell.Row)
			if err != nil {
				return nil, fmt.Errorf("invalid merge coordinates for %s: %w", addr, err)
			}
			if err := f.MergeCell(SheetName, addr, end); err != nil {
				return nil, fmt.Errorf("failed to merge title cells %s:%s: %w", addr, end, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
