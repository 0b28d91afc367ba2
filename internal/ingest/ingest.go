// Package ingest composes normalization, field extraction, and
// categorization into the single "upload a receipt, get structured and
// categorized fields back" operation.
package ingest

import (
	"context"
	"log/slog"

	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/normalize"
)

// Extractor turns a normalized JPEG into typed receipt fields.
type Extractor interface {
	Extract(ctx context.Context, normalizedJPEG []byte) (*model.ReceiptFields, error)
}

// Resolver categorizes a merchant. It never fails; the remote tier degrades
// to the fallback category internally.
type Resolver interface {
	Resolve(ctx context.Context, merchant string) *model.CategorizationResult
}

// Result is the orchestrator's output: the extracted fields plus the
// resolver's suggestion. Nothing is persisted here — the caller stores an
// expense row only after the user has reviewed the suggestion.
type Result struct {
	Extracted      *model.ReceiptFields
	Categorization *model.CategorizationResult
}

// Orchestrator runs Normalize, Extract, Resolve in sequence. Each stage's
// failure propagates as its own typed error; there are no retries at this
// layer.
type Orchestrator struct {
	extractor Extractor
	resolver  Resolver
	logger    *slog.Logger
}

// NewOrchestrator creates an ingestion orchestrator.
func NewOrchestrator(extractor Extractor, resolver Resolver, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		extractor: extractor,
		resolver:  resolver,
		logger:    logger,
	}
}

// Ingest processes one uploaded receipt end to end. A
// *normalize.ConversionError means the file could not be read; a
// *llm.ParseError or *llm.RemoteError means extraction failed. In both
// cases no result is produced.
func (o *Orchestrator) Ingest(ctx context.Context, raw []byte, contentType string) (*Result, error) {
	jpeg, err := normalize.Normalize(raw, contentType)
	if err != nil {
		return nil, err
	}

	fields, err := o.extractor.Extract(ctx, jpeg)
	if err != nil {
		return nil, err
	}

	categorization := o.resolver.Resolve(ctx, fields.Merchant)

	o.logger.Info("receipt ingested",
		"merchant", fields.Merchant,
		"category", categorization.Category,
		"source", categorization.Source)

	return &Result{
		Extracted:      fields,
		Categorization: categorization,
	}, nil
}
