package export

import (
	"bytes"
	"strings"
)

// utf8BOM makes spreadsheet tools detect the encoding instead of
// falling back to a legacy code page.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV renders a table as BOM-prefixed, comma-separated text: one header
// row, the data rows, then the totals row. Free-text columns are always
// quoted; other cells only when they contain a comma, quote or newline.
func CSV(t Table) []byte {
	columns := t.Kind.Columns()

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = csvCell(col.Title, false)
	}
	buf.WriteString(strings.Join(header, ","))
	buf.WriteString("\r\n")

	writeRow := func(row Row, totals bool) {
		cells := make([]string, len(columns))
		for i := range columns {
			var c Cell
			if i < len(row) {
				c = row[i]
			}
			cells[i] = csvCell(amountText(c, totals, false), columns[i].Kind == ColJa)
		}
		buf.WriteString(strings.Join(cells, ","))
		buf.WriteString("\r\n")
	}

	for _, row := range t.Rows {
		writeRow(row, false)
	}
	writeRow(t.Totals, true)

	return buf.Bytes()
}

// csvCell escapes one cell. forceQuote covers free-text columns whose
// content is unpredictable enough to always wrap.
func csvCell(s string, forceQuote bool) string {
	if forceQuote || strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
