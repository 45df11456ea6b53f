package expense

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastoscan/gastoscan/internal/extract"
	"github.com/gastoscan/gastoscan/internal/ocr"
)

// IDGenerator generates unique IDs for jobs and expenses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt processing and expense operations
type Service struct {
	db          DB
	backend     ocr.Backend
	storage     Storage
	pipeline    *extract.Pipeline
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default dependencies
func NewService(db DB, backend ocr.Backend, storage Storage) *Service {
	return &Service{
		db:          db,
		backend:     backend,
		storage:     storage,
		pipeline:    extract.NewPipeline(),
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, backend ocr.Backend, storage Storage, pipeline *extract.Pipeline, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		backend:     backend,
		storage:     storage,
		pipeline:    pipeline,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Remove special characters, keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	// Replace multiple spaces with single space
	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	// Truncate to reasonable length (50 chars for base, plus extension)
	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ProcessReceipt stores the uploaded file, runs OCR and structured extraction,
// and saves the resulting extraction job. OCR failure is fatal; extraction is
// total and never fails, it just yields low-confidence or absent fields.
func (s *Service) ProcessReceipt(filename string, data []byte, contentType string) (*ExtractionJob, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	// Sanitize filename to clean up phone-generated long filenames
	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	rawText, err := s.backend.RecognizeText(data, contentType)
	if err != nil {
		slog.Error("Failed to recognize text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		// Clean up the saved file since recognition failed
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("recognizing text: %w", err)
	}

	record, confidence := s.pipeline.Extract(rawText)

	job := &ExtractionJob{
		ID:          id,
		Filename:    savedPath,
		ContentType: contentType,
		Status:      JobStatusCompleted,
		RawText:     rawText,
		Extracted:   record,
		Confidence:  confidence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveJob(job); err != nil {
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving job to database: %w", err)
	}

	slog.Info("Processed receipt",
		"job_id", id,
		"provider", record.Provider,
		"category", record.Category,
		"confidence", confidence,
	)

	return job, nil
}

// GetJob retrieves an extraction job by ID
func (s *Service) GetJob(id string) (*ExtractionJob, error) {
	job, err := s.db.GetJob(id)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

// ListJobs returns all extraction jobs
func (s *Service) ListJobs() ([]*ExtractionJob, error) {
	jobs, err := s.db.ListJobs()
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// DeleteJob removes an extraction job and its stored file
func (s *Service) DeleteJob(id string) error {
	job, err := s.db.GetJob(id)
	if err != nil {
		return fmt.Errorf("getting job for deletion: %w", err)
	}

	if err := s.storage.Delete(job.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", job.Filename, "error", err)
	}

	if err := s.db.DeleteJob(id); err != nil {
		return fmt.Errorf("deleting job from database: %w", err)
	}
	return nil
}

// GetJobFile retrieves the original uploaded file for a job
func (s *Service) GetJobFile(id string) ([]byte, string, error) {
	job, err := s.db.GetJob(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting job: %w", err)
	}

	data, err := s.storage.Get(job.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting job file: %w", err)
	}

	return data, job.ContentType, nil
}

// ConfirmOverrides carries reviewer corrections applied when a job is
// confirmed into an expense. Nil/empty fields keep the extracted values.
type ConfirmOverrides struct {
	Provider      string           `json:"provider,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Category      extract.Category `json:"category,omitempty"`
	ReceiptNumber string           `json:"receipt_number,omitempty"`
}

// ConfirmJob turns a completed extraction job into an expense record,
// applying any reviewer overrides on top of the extracted fields
func (s *Service) ConfirmJob(id string, overrides ConfirmOverrides) (*Expense, error) {
	job, err := s.db.GetJob(id)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}
	if job.Status == JobStatusConfirmed {
		return nil, fmt.Errorf("job %s is already confirmed", id)
	}

	now := s.timeSource.Now()
	extracted := job.Extracted

	provider := extracted.Provider
	if overrides.Provider != "" {
		provider = overrides.Provider
	}
	if provider == "" {
		provider = "UNKNOWN"
	}

	amount := extracted.Amount
	if overrides.Amount != nil {
		amount = overrides.Amount
	}
	if amount == nil {
		return nil, fmt.Errorf("an amount is required to confirm job %s", id)
	}

	currency := extracted.Currency
	if overrides.Currency != "" {
		currency = overrides.Currency
	}

	date := now
	if extracted.Date != nil {
		date = *extracted.Date
	}
	if overrides.Date != nil {
		date = *overrides.Date
	}

	category := extracted.Category
	if overrides.Category != "" {
		category = overrides.Category
	}

	receiptNumber := extracted.ReceiptNumber
	if overrides.ReceiptNumber != "" {
		receiptNumber = overrides.ReceiptNumber
	}

	expense := &Expense{
		ID:            s.idGenerator.Generate(),
		Provider:      provider,
		Amount:        *amount,
		Currency:      currency,
		Date:          date,
		Category:      category,
		ReceiptNumber: receiptNumber,
		TaxAmount:     extracted.TaxAmount,
		Subtotal:      extracted.Subtotal,
		JobID:         job.ID,
		Filename:      job.Filename,
		ContentType:   job.ContentType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.SaveExpense(expense); err != nil {
		return nil, fmt.Errorf("saving expense: %w", err)
	}

	job.Status = JobStatusConfirmed
	job.ExpenseID = expense.ID
	job.UpdatedAt = now
	if err := s.db.SaveJob(job); err != nil {
		return nil, fmt.Errorf("updating job %s: %w", id, err)
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *Service) GetExpense(id string) (*Expense, error) {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return nil, fmt.Errorf("getting expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns all expenses
func (s *Service) ListExpenses() ([]*Expense, error) {
	expenses, err := s.db.ListExpenses()
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense record
func (s *Service) DeleteExpense(id string) error {
	if _, err := s.db.GetExpense(id); err != nil {
		return fmt.Errorf("getting expense for deletion: %w", err)
	}
	if err := s.db.DeleteExpense(id); err != nil {
		return fmt.Errorf("deleting expense from database: %w", err)
	}
	return nil
}
