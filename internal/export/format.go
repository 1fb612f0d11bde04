package export

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var groupPrinter = message.NewPrinter(language.Japanese)

// groupDigits renders an amount with locale thousands separators and no
// currency symbol.
func groupDigits(yen int64) string {
	return groupPrinter.Sprintf("%d", yen)
}

// amountText formats an amount cell for display. Outside the totals row
// a zero renders as an empty cell; in the totals row it renders as "0".
func amountText(c Cell, totals, grouped bool) string {
	if !c.IsAmount {
		return c.Text
	}
	if c.Amount == 0 && !totals {
		return ""
	}
	if grouped {
		return groupDigits(c.Amount)
	}
	return strconv.FormatInt(c.Amount, 10)
}
