package categorize

import (
	"context"
	"errors"
	"log/slog"

	"github.com/expenserule/expenserule/internal/catalog"
	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/service"
)

// correctionRule consults the durable correction store, the highest-priority
// source of truth. A stored category that is no longer a valid catalog entry
// is treated as a miss, not an error.
type correctionRule struct {
	store   service.CorrectionStore
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func (r *correctionRule) Name() string { return "correction" }

func (r *correctionRule) Resolve(ctx context.Context, merchant string) *model.CategorizationResult {
	key := catalog.NormalizeMerchant(merchant)
	if key == "" {
		return nil
	}

	correction, err := r.store.GetCorrection(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			// A store failure downgrades to a miss so the chain can continue.
			r.logger.Warn("correction store lookup failed",
				"merchant_key", key,
				"error", err)
		}
		return nil
	}

	category, ok := r.catalog.Lookup(correction.Category)
	if !ok {
		r.logger.Warn("stored correction references unknown category, ignoring",
			"merchant_key", key,
			"category", correction.Category)
		return nil
	}

	return &model.CategorizationResult{
		Category:      category.Name,
		ScheduleCLine: category.ScheduleCLine,
		Source:        model.SourceCorrection,
	}
}

// lookupRule consults the built-in merchant table: exact match first, then a
// substring scan in declaration order.
type lookupRule struct {
	catalog *catalog.Catalog
}

func (r *lookupRule) Name() string { return "lookup" }

func (r *lookupRule) Resolve(_ context.Context, merchant string) *model.CategorizationResult {
	name, ok := r.catalog.MatchMerchant(catalog.NormalizeMerchant(merchant))
	if !ok {
		return nil
	}

	category, ok := r.catalog.Lookup(name)
	if !ok {
		return nil
	}

	return &model.CategorizationResult{
		Category:      category.Name,
		ScheduleCLine: category.ScheduleCLine,
		Source:        model.SourceLookup,
	}
}

// remoteRule is the terminal tier. It forwards the raw, non-normalized
// merchant string to the remote classifier and always produces an answer:
// the classifier substitutes the fallback category internally rather than
// surfacing failures.
type remoteRule struct {
	classifier RemoteClassifier
}

func (r *remoteRule) Name() string { return "remote" }

func (r *remoteRule) Resolve(ctx context.Context, merchant string) *model.CategorizationResult {
	suggestion := r.classifier.Classify(ctx, merchant)
	return &model.CategorizationResult{
		Category:      suggestion.Category.Name,
		ScheduleCLine: suggestion.Category.ScheduleCLine,
		Source:        model.SourceRemote,
	}
}
