package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const maxLineItems = 10

var maxItemTotal = decimal.NewFromInt(10_000)

// receiptNumberPatterns are ordered alternatives; the first match wins.
var receiptNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)receipt\s*#\s*:?\s*([A-Za-z0-9-]+)`),
	regexp.MustCompile(`(?i)invoice\s*#\s*:?\s*([A-Za-z0-9-]+)`),
	regexp.MustCompile(`#([A-Za-z0-9-]{5,})`),
}

// recognizeReceiptNumber finds a receipt or invoice identifier, if any.
func recognizeReceiptNumber(text string) string {
	for _, re := range receiptNumberPatterns {
		if match := re.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

var (
	lineItemRe = regexp.MustCompile(`^(.+?)\s+\$?([0-9][0-9,]*\.[0-9]{2})$`)
	quantityRe = regexp.MustCompile(`^([0-9]+)\s*[xX]\s+(.+)$`)
)

// recognizeLineItems reads per-item lines of the form "<description> <amount>".
// Items keep their original order and the list is capped at maxLineItems.
// Lines shaped like "<qty> x <description> <amount>" also get a quantity and a
// derived unit price.
func recognizeLineItems(text string) []LineItem {
	var items []LineItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}
		match := lineItemRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		total, err := decimal.NewFromString(strings.ReplaceAll(match[2], ",", ""))
		if err != nil {
			continue
		}
		if !total.IsPositive() || !total.LessThan(maxItemTotal) {
			continue
		}

		item := LineItem{
			Description: strings.TrimSpace(match[1]),
			Total:       total,
		}
		if qty := quantityRe.FindStringSubmatch(item.Description); qty != nil {
			if n, ok := parseQuantity(qty[1]); ok {
				item.Quantity = &n
				item.Description = strings.TrimSpace(qty[2])
				unit := total.Div(decimal.NewFromInt(int64(n))).Round(2)
				item.UnitPrice = &unit
			}
		}

		items = append(items, item)
		if len(items) == maxLineItems {
			break
		}
	}
	return items
}

func parseQuantity(raw string) (int, bool) {
	n := 0
	for _, r := range raw {
		n = n*10 + int(r-'0')
		if n > 1000 {
			return 0, false
		}
	}
	if n == 0 {
		return 0, false
	}
	return n, true
}

var (
	taxRe      = regexp.MustCompile(`(?i)\b(?:tax|iva|impuestos?)\s*:?\s*\$?\s*([0-9][0-9,]*\.[0-9]{2})`)
	subtotalRe = regexp.MustCompile(`(?i)\bsub\s?-?\s?total\s*:?\s*\$?\s*([0-9][0-9,]*\.[0-9]{2})`)
)

// recognizeTaxSubtotal finds labeled tax and subtotal amounts. When the
// subtotal is not stated but both the total and tax are known, it is derived
// as total minus tax.
func recognizeTaxSubtotal(text string, total *decimal.Decimal) (tax, subtotal *decimal.Decimal) {
	if match := taxRe.FindStringSubmatch(text); match != nil {
		if v, ok := parseAmount(match[1]); ok {
			tax = &v
		}
	}
	if match := subtotalRe.FindStringSubmatch(text); match != nil {
		if v, ok := parseAmount(match[1]); ok {
			subtotal = &v
		}
	}
	if subtotal == nil && total != nil && tax != nil {
		derived := total.Sub(*tax)
		subtotal = &derived
	}
	return tax, subtotal
}
