package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page geometry: landscape A4 with fixed margins. Column widths are
// fractions of the usable width so every report kind fills the page.
const (
	pdfMarginLeft  = 12.0
	pdfMarginTop   = 14.0
	pdfMarginRight = 12.0
	pdfBreakMargin = 20.0
	pdfRowHeight   = 6.5

	primaryFont   = "primary"
	secondaryFont = "secondary"
)

// PDF renders a table as a landscape paginated document. Page 1 opens
// with a large centered title block; later pages keep a compact one-line
// header so the table gets the space. Every page's footer carries the
// organization and "page X / total"; the total is stamped once layout
// is finished and the page count is known.
func PDF(ctx context.Context, t Table, meta Meta, fonts *FontLoader) ([]byte, error) {
	set, err := fonts.Load(ctx)
	if err != nil {
		return nil, err
	}

	columns := t.Kind.Columns()

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfBreakMargin)
	pdf.AddUTF8FontFromBytes(primaryFont, "", set.Primary)
	pdf.AddUTF8FontFromBytes(secondaryFont, "", set.Secondary)
	pdf.AliasNbPages("")

	pageW, _ := pdf.GetPageSize()
	usable := pageW - pdfMarginLeft - pdfMarginRight
	widths := make([]float64, len(columns))
	for i, col := range columns {
		widths[i] = col.Width * usable
	}

	columnHeader := func() {
		pdf.SetFont(primaryFont, "", 8.5)
		pdf.SetFillColor(232, 232, 232)
		for i, col := range columns {
			pdf.CellFormat(widths[i], pdfRowHeight, col.Title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			pdf.SetFont(secondaryFont, "", 16)
			pdf.CellFormat(0, 9, meta.Title, "", 1, "C", false, 0, "")
			pdf.SetFont(secondaryFont, "", 10)
			pdf.CellFormat(0, 6, meta.DateRange, "", 1, "C", false, 0, "")
			pdf.CellFormat(0, 6, meta.Organization, "", 1, "R", false, 0, "")
		} else {
			pdf.SetFont(secondaryFont, "", 9)
			pdf.CellFormat(usable/2, 6, meta.Title+"  "+meta.DateRange, "", 0, "L", false, 0, "")
			pdf.CellFormat(usable/2, 6, meta.Organization, "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
		columnHeader()
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont(secondaryFont, "", 8)
		pdf.CellFormat(usable/2, 5, meta.Organization, "", 0, "L", false, 0, "")
		pdf.SetFont(primaryFont, "", 8)
		pdf.CellFormat(usable/2, 5, fmt.Sprintf("page %d / {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	_, pageH := pdf.GetPageSize()
	drawRow := func(row Row, totals bool) {
		// Break per row, not per cell, so a row never straddles pages.
		if pdf.GetY()+pdfRowHeight > pageH-pdfBreakMargin {
			pdf.AddPage()
		}
		if totals {
			pdf.SetFillColor(244, 244, 244)
		}
		for i, col := range columns {
			var c Cell
			if i < len(row) {
				c = row[i]
			}
			font, align := primaryFont, "L"
			switch col.Kind {
			case ColJa:
				font = secondaryFont
			case ColAmount:
				align = "R"
			}
			pdf.SetFont(font, "", 8.5)
			text := fitText(pdf, amountText(c, totals, true), widths[i]-2)
			pdf.CellFormat(widths[i], pdfRowHeight, text, "1", 0, align, totals, 0, "")
		}
		pdf.Ln(-1)
	}

	for _, row := range t.Rows {
		drawRow(row, false)
	}
	drawRow(t.Totals, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s document: %w", t.Kind.Label(), err)
	}
	return buf.Bytes(), nil
}

// fitText shortens a cell value that would overflow its column.
func fitText(pdf *fpdf.Fpdf, s string, max float64) string {
	if pdf.GetStringWidth(s) <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"..") > max {
		r = r[:len(r)-1]
	}
	return string(r) + ".."
}
