package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/service"
)

// SaveExpense inserts a new expense row and sets its generated ID.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (merchant, date, amount, category, schedule_c_line, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, expense.Merchant, expense.Date, expense.Amount, expense.Category,
		expense.ScheduleCLine, expense.Notes, expense.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense id: %w", err)
	}
	expense.ID = id

	return nil
}

// GetExpense retrieves a single expense by ID.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	var expense model.Expense
	err := s.db.QueryRowContext(ctx, `
		SELECT id, merchant, date, amount, category, schedule_c_line, notes, created_at
		FROM expenses
		WHERE id = ?
	`, id).Scan(
		&expense.ID,
		&expense.Merchant,
		&expense.Date,
		&expense.Amount,
		&expense.Category,
		&expense.ScheduleCLine,
		&expense.Notes,
		&expense.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &expense, nil
}

// GetExpenses retrieves expense rows matching the filter, newest date first.
func (s *SQLiteStorage) GetExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, merchant, date, amount, category, schedule_c_line, notes, created_at
		FROM expenses`
	args := make([]any, 0, 3)

	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}

	query += ` ORDER BY date DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var expense model.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.Merchant,
			&expense.Date,
			&expense.Amount,
			&expense.Category,
			&expense.ScheduleCLine,
			&expense.Notes,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// UpdateExpense overwrites an existing expense row.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	if err := validateID(expense.ID, "expense.ID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET merchant = ?, date = ?, amount = ?, category = ?, schedule_c_line = ?, notes = ?
		WHERE id = ?
	`, expense.Merchant, expense.Date, expense.Amount, expense.Category,
		expense.ScheduleCLine, expense.Notes, expense.ID)

	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// DeleteExpense removes an expense row.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
