package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const amountConfidence = 0.9

var (
	maxAmount = decimal.NewFromInt(1_000_000)
)

// amountPattern is one strategy in the ordered amount search: a regexp plus
// the submatch indices for the numeric value and the optional currency marker.
type amountPattern struct {
	name          string
	re            *regexp.Regexp
	amountGroup   int
	currencyGroup int
}

// amountPatterns are tried in priority order; the first match that parses and
// passes the range check wins.
var amountPatterns = []amountPattern{
	{
		name:          "total",
		re:            regexp.MustCompile(`(?i)\btotal\s*:?\s*([$€£¥]?)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		currencyGroup: 1,
		amountGroup:   2,
	},
	{
		name:          "trailing-symbol",
		re:            regexp.MustCompile(`(?m)([$€£¥])\s*([0-9][0-9,]*\.[0-9]{2})\s*$`),
		currencyGroup: 1,
		amountGroup:   2,
	},
	{
		name:          "currency-code",
		re:            regexp.MustCompile(`(?i)\b([0-9][0-9,]*\.[0-9]{2})\s*(USD|EUR|GBP|MXN|COP|ARS|CLP|PEN)\b`),
		amountGroup:   1,
		currencyGroup: 2,
	},
	{
		name:          "amount",
		re:            regexp.MustCompile(`(?i)\bamount\s*:?\s*([$€£¥]?)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		currencyGroup: 1,
		amountGroup:   2,
	},
	{
		// Never reached: the "total" strategy already matches the total
		// inside a "Grand Total" line. Listed to keep the search order
		// explicit.
		name:          "grand-total",
		re:            regexp.MustCompile(`(?i)\bgrand\s+total\s*:?\s*([$€£¥]?)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`),
		currencyGroup: 1,
		amountGroup:   2,
	},
}

// recognizeAmount finds the receipt total. Malformed or out-of-range
// candidates are skipped and the search continues with the next match.
func recognizeAmount(text string) (*decimal.Decimal, string, float64) {
	for _, p := range amountPatterns {
		for _, match := range p.re.FindAllStringSubmatch(text, -1) {
			amount, ok := parseAmount(match[p.amountGroup])
			if !ok {
				continue
			}
			currency := defaultCurrency
			if p.currencyGroup > 0 && match[p.currencyGroup] != "" {
				currency = resolveCurrency(match[p.currencyGroup])
			}
			return &amount, currency, amountConfidence
		}
	}
	return nil, defaultCurrency, 0
}

// parseAmount parses a numeric candidate, stripping thousands separators, and
// enforces the (0, 1_000_000) range.
func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.ReplaceAll(raw, ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if !amount.IsPositive() || !amount.LessThan(maxAmount) {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// resolveCurrency maps a captured symbol or ISO code to a currency code.
func resolveCurrency(marker string) string {
	if code, ok := currencySymbols[marker]; ok {
		return code
	}
	code := strings.ToUpper(strings.TrimSpace(marker))
	if len(code) == 3 {
		return code
	}
	return defaultCurrency
}
