package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX renders a table as a single-sheet workbook with the same
// header / rows / totals shape as the delimited-text output. Amount
// cells stay numeric so spreadsheet formulas work on them.
func XLSX(t Table) ([]byte, error) {
	columns := t.Kind.Columns()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, col := range columns {
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, axis, col.Title); err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
	}

	writeRow := func(row Row, line int, totals bool) error {
		for i := range columns {
			var c Cell
			if i < len(row) {
				c = row[i]
			}
			if c.Empty() || (c.IsAmount && c.Amount == 0 && !totals) {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(i+1, line)
			if err != nil {
				return err
			}
			if c.IsAmount {
				err = f.SetCellValue(sheet, axis, c.Amount)
			} else {
				err = f.SetCellValue(sheet, axis, c.Text)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	for i, row := range t.Rows {
		if err := writeRow(row, i+2, false); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	if err := writeRow(t.Totals, len(t.Rows)+2, true); err != nil {
		return nil, fmt.Errorf("totals row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
