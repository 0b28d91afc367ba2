package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/expenserule/expenserule/internal/catalog"
	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/model"
)

// GetCorrection retrieves a correction by its normalized merchant key.
// Returns common.ErrNotFound when no correction exists; a miss is an
// expected outcome for the resolver, not a failure.
func (s *SQLiteStorage) GetCorrection(ctx context.Context, merchantKey string) (*model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(merchantKey, "merchantKey"); err != nil {
		return nil, err
	}

	var correction model.Correction
	err := s.db.QueryRowContext(ctx, `
		SELECT merchant, category, last_updated
		FROM correction_memory
		WHERE merchant = ?
	`, merchantKey).Scan(
		&correction.MerchantKey,
		&correction.Category,
		&correction.LastUpdated,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get correction: %w", err)
	}

	return &correction, nil
}

// SaveCorrection upserts a merchant-to-category override. The merchant name
// is normalized to its lowercased, trimmed form before storage; a later save
// for the same merchant overwrites the earlier one.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, merchant, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	key := catalog.NormalizeMerchant(merchant)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO correction_memory (merchant, category, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(merchant) DO UPDATE SET
			category = excluded.category,
			last_updated = excluded.last_updated
	`, key, category, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	return nil
}

// GetAllCorrections retrieves every stored correction, most recent first.
func (s *SQLiteStorage) GetAllCorrections(ctx context.Context) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant, category, last_updated
		FROM correction_memory
		ORDER BY last_updated DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corrections []model.Correction
	for rows.Next() {
		var correction model.Correction
		if err := rows.Scan(&correction.MerchantKey, &correction.Category, &correction.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, correction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return corrections, nil
}
