package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastoscan/gastoscan/internal/extract"
)

// JobStatus is the lifecycle state of an extraction job
type JobStatus string

const (
	// JobStatusCompleted means extraction ran and the result awaits review
	JobStatusCompleted JobStatus = "completed"
	// JobStatusConfirmed means the result was confirmed into an expense
	JobStatusConfirmed JobStatus = "confirmed"
)

// ExtractionJob holds the OCR text and the structured extraction result for
// one uploaded receipt, pending user confirmation
type ExtractionJob struct {
	ID          string                   `json:"id"`
	Filename    string                   `json:"filename"`
	ContentType string                   `json:"content_type"`
	Status      JobStatus                `json:"status"`
	RawText     string                   `json:"raw_text"`
	Extracted   extract.ExtractedReceipt `json:"extracted"`
	Confidence  float64                  `json:"confidence"`
	ExpenseID   string                   `json:"expense_id,omitempty"` // set once confirmed
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// Expense is a confirmed business expense record
type Expense struct {
	ID            string           `json:"id"`
	Provider      string           `json:"provider"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      string           `json:"currency"`
	Date          time.Time        `json:"date"`
	Category      extract.Category `json:"category"`
	ReceiptNumber string           `json:"receipt_number,omitempty"`
	TaxAmount     *decimal.Decimal `json:"tax_amount,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	JobID         string           `json:"job_id"`
	Filename      string           `json:"filename"`
	ContentType   string           `json:"content_type"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
