package extract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is one value from the fixed expense taxonomy.
type Category string

const (
	CategoryCombustible   Category = "COMBUSTIBLE"
	CategoryTransporte    Category = "TRANSPORTE"
	CategoryAlojamiento   Category = "ALOJAMIENTO"
	CategoryAlimentacion  Category = "ALIMENTACION"
	CategoryOficina       Category = "OFICINA"
	CategoryMantenimiento Category = "MANTENIMIENTO"
	CategoryEquipamiento  Category = "EQUIPAMIENTO"
	CategoryOther         Category = "OTHER"
)

// LineItem is a single purchased item read from a receipt line.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Total       decimal.Decimal  `json:"total"`
}

// ExtractedReceipt is the structured record produced from raw OCR text.
// It is a value computed fresh per extraction; absent fields are nil.
type ExtractedReceipt struct {
	Provider      string           `json:"provider,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency"`
	Date          *time.Time       `json:"date,omitempty"`
	Category      Category         `json:"category"`
	ReceiptNumber string           `json:"receipt_number,omitempty"`
	Items         []LineItem       `json:"items,omitempty"`
	TaxAmount     *decimal.Decimal `json:"tax_amount,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
}
