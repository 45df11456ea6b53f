package extract

import (
	"strings"
	"time"
)

// Confidence weights. Amount drives downstream financial use, so it carries
// the largest share; receipt number, line items and tax/subtotal are
// best-effort enrichment and do not contribute.
const (
	providerWeight = 0.3
	amountWeight   = 0.4
	dateWeight     = 0.3
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Pipeline turns raw OCR text into a structured receipt record. It holds no
// mutable state and is safe for concurrent use.
type Pipeline struct {
	timeSource TimeSource
}

// NewPipeline creates a new Pipeline with the default time source
func NewPipeline() *Pipeline {
	return &Pipeline{timeSource: &defaultTimeSource{}}
}

// NewPipelineWithDeps creates a new Pipeline with a custom time source for testing
func NewPipelineWithDeps(timeSource TimeSource) *Pipeline {
	return &Pipeline{timeSource: timeSource}
}

// Extract runs every recognizer over the raw text and assembles the record.
// It is total: any input yields a record and a confidence in [0,1], with
// unrecognized fields left absent rather than reported as errors.
func (p *Pipeline) Extract(rawText string) (ExtractedReceipt, float64) {
	normalized := strings.ToLower(rawText)

	// Provider runs first; category classification depends on it.
	provider, providerConf := recognizeProvider(rawText)
	amount, currency, amountConf := recognizeAmount(rawText)
	date, dateConf := recognizeDate(rawText, p.timeSource.Now())
	tax, subtotal := recognizeTaxSubtotal(rawText, amount)

	record := ExtractedReceipt{
		Provider:      provider,
		Amount:        amount,
		Currency:      currency,
		Date:          date,
		Category:      classifyCategory(provider, normalized),
		ReceiptNumber: recognizeReceiptNumber(rawText),
		Items:         recognizeLineItems(rawText),
		TaxAmount:     tax,
		Subtotal:      subtotal,
	}

	return record, overallConfidence(providerConf, amountConf, dateConf)
}

// overallConfidence is the weighted combination of the provider, amount and
// date confidences, clamped to [0,1].
func overallConfidence(providerConf, amountConf, dateConf float64) float64 {
	score := providerWeight*providerConf + amountWeight*amountConf + dateWeight*dateConf
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
