// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/expenserule/expenserule/internal/model"
)

// ExpenseFilter defines filtering options for expense queries.
type ExpenseFilter struct {
	Category string
	Limit    int
	Offset   int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	CorrectionStore
	ExpenseStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// CorrectionStore is the durable merchant-to-category override mapping.
// Keys are always the trimmed, lowercased merchant name.
type CorrectionStore interface {
	GetCorrection(ctx context.Context, merchantKey string) (*model.Correction, error)
	SaveCorrection(ctx context.Context, merchant, category string) error
	GetAllCorrections(ctx context.Context) ([]model.Correction, error)
}

// ExpenseStore persists the reviewed expense rows.
type ExpenseStore interface {
	SaveExpense(ctx context.Context, expense *model.Expense) error
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	GetExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
