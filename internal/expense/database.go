package expense

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	jobBucketName     = "jobs"
	expenseBucketName = "expenses"
)

// DB defines the interface for database operations
type DB interface {
	// SaveJob saves an extraction job to the database
	SaveJob(job *ExtractionJob) error

	// GetJob retrieves an extraction job by ID
	GetJob(id string) (*ExtractionJob, error)

	// ListJobs returns all extraction jobs
	ListJobs() ([]*ExtractionJob, error)

	// DeleteJob removes an extraction job from the database
	DeleteJob(id string) error

	// SaveExpense saves an expense to the database
	SaveExpense(expense *Expense) error

	// GetExpense retrieves an expense by ID
	GetExpense(id string) (*Expense, error)

	// ListExpenses returns all expenses
	ListExpenses() ([]*Expense, error)

	// DeleteExpense removes an expense from the database
	DeleteExpense(id string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(jobBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(expenseBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveJob saves an extraction job to the database
func (b *BoltDB) SaveJob(job *ExtractionJob) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobBucketName))
		data, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("marshaling job: %w", err)
		}
		return bucket.Put([]byte(job.ID), data)
	})
}

// GetJob retrieves an extraction job by ID
func (b *BoltDB) GetJob(id string) (*ExtractionJob, error) {
	var job *ExtractionJob
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("job not found: %s", id)
		}
		return json.Unmarshal(data, &job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns all extraction jobs
func (b *BoltDB) ListJobs() ([]*ExtractionJob, error) {
	jobs := make([]*ExtractionJob, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var job ExtractionJob
			if err := json.Unmarshal(v, &job); err != nil {
				return fmt.Errorf("unmarshaling job: %w", err)
			}
			jobs = append(jobs, &job)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// DeleteJob removes an extraction job from the database
func (b *BoltDB) DeleteJob(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobBucketName))
		return bucket.Delete([]byte(id))
	})
}

// SaveExpense saves an expense to the database
func (b *BoltDB) SaveExpense(expense *Expense) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(expenseBucketName))
		data, err := json.Marshal(expense)
		if err != nil {
			return fmt.Errorf("marshaling expense: %w", err)
		}
		return bucket.Put([]byte(expense.ID), data)
	})
}

// GetExpense retrieves an expense by ID
func (b *BoltDB) GetExpense(id string) (*Expense, error) {
	var expense *Expense
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(expenseBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("expense not found: %s", id)
		}
		return json.Unmarshal(data, &expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns all expenses
func (b *BoltDB) ListExpenses() ([]*Expense, error) {
	expenses := make([]*Expense, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(expenseBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var expense Expense
			if err := json.Unmarshal(v, &expense); err != nil {
				return fmt.Errorf("unmarshaling expense: %w", err)
			}
			expenses = append(expenses, &expense)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense from the database
func (b *BoltDB) DeleteExpense(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(expenseBucketName))
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
