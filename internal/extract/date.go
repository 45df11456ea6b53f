package extract

import (
	"regexp"
	"time"
)

const (
	dateConfidence = 0.85
	// maxDateAge is how far back a receipt date may reasonably be.
	maxDateAge = 730 * 24 * time.Hour
)

// datePattern pairs a regexp shape with the ordered layouts used to parse its
// matches. Layout order is significant: slash dates are tried day-first before
// month-first, matching the historical behavior of this heuristic.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		layouts: []string{"2/1/2006", "1/2/2006"},
	},
	{
		re:      regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		layouts: []string{"2006-01-02"},
	},
	{
		re:      regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{4}\b`),
		layouts: []string{"2-Jan-2006"},
	},
	{
		re:      regexp.MustCompile(`(?i)\b[A-Za-z]{3,9}\.?\s+\d{1,2},?\s+\d{4}\b`),
		layouts: []string{"January 2, 2006", "Jan 2, 2006", "January 2 2006", "Jan 2 2006"},
	},
}

// recognizeDate finds the receipt date. Each shape's matches are parsed
// against its layouts in order; the first parse that lands inside the
// acceptance window wins. Candidates outside [now-730d, now] are rejected.
func recognizeDate(text string, now time.Time) (*time.Time, float64) {
	oldest := now.Add(-maxDateAge)
	for _, p := range datePatterns {
		for _, match := range p.re.FindAllString(text, -1) {
			for _, layout := range p.layouts {
				parsed, err := time.Parse(layout, match)
				if err != nil {
					continue
				}
				if parsed.After(now) || parsed.Before(oldest) {
					continue
				}
				return &parsed, dateConfidence
			}
		}
	}
	return nil, 0
}
