package excel

// Table is one titled block to be placed on the sheet. Rows hold cell values
// verbatim; a nil value renders as an empty (but still styled) cell.
type Table struct {
	Title  string
	Header []string
	Rows   [][]any
}

// CellKind selects the style applied when the grid is serialized.
type CellKind int

const (
	CellTitle CellKind = iota
	CellHeader
	CellData
)

// Cell is one placed cell with 1-based sheet coordinates. Span is the number
// of columns a title cell is merged across; it is 1 for every other kind.
type Cell struct {
	Row   int
	Col   int
	Value any
	Kind  CellKind
	Span  int
}

// Grid is the immutable result of laying out a list of tables.
type Grid struct {
	Cells []Cell
}

// Layout stacks tables vertically starting at startRow, column 1, and returns
// the grid plus the next unused row. Each block occupies one title row (merged
// across the table width), one header row, one row per data row, then one
// blank separator row. Inputs are never mutated; column and row order are
// preserved exactly.
func Layout(tables []Table, startRow int) (Grid, int) {
	var cells []Cell

	row := startRow
	for _, t := range tables {
		width := len(t.Header)
		if width == 0 {
			continue
		}

		cells = append(cells, Cell{Row: row, Col: 1, Value: t.Title, Kind: CellTitle, Span: width})
		row++

		for c, h := range t.Header {
			cells = append(cells, Cell{Row: row, Col: c + 1, Value: h, Kind: CellHeader, Span: 1})
		}
		row++

		for _, dataRow := range t.Rows {
			for c := 0; c < width; c++ {
				var v any
				if c < len(dataRow) {
					v = dataRow[c]
				}
				cells = append(cells, Cell{Row: row, Col: c + 1, Value: v, Kind: CellData, Span: 1})
			}
			row++
		}

		// blank separator row
		row++
	}

	return Grid{Cells: cells}, row
}
