package ingest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenserule/expenserule/internal/llm"
	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/normalize"
)

type stubExtractor struct {
	fields *model.ReceiptFields
	err    error
	got    []byte
}

func (s *stubExtractor) Extract(_ context.Context, normalizedJPEG []byte) (*model.ReceiptFields, error) {
	s.got = normalizedJPEG
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

type stubResolver struct {
	result   *model.CategorizationResult
	merchant string
	calls    int
}

func (s *stubResolver) Resolve(_ context.Context, merchant string) *model.CategorizationResult {
	s.calls++
	s.merchant = merchant
	return s.result
}

func smallJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 6), 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestIngestHappyPath(t *testing.T) {
	date := "2024-03-15"
	amount := 7.85
	extractor := &stubExtractor{
		fields: &model.ReceiptFields{Merchant: "Starbucks", Date: &date, Amount: &amount},
	}
	resolver := &stubResolver{
		result: &model.CategorizationResult{Category: "Meals", ScheduleCLine: "24b", Source: model.SourceLookup},
	}
	orch := NewOrchestrator(extractor, resolver, nil)

	result, err := orch.Ingest(context.Background(), smallJPEG(t), normalize.ContentTypeJPEG)
	require.NoError(t, err)

	assert.Equal(t, "Starbucks", result.Extracted.Merchant)
	assert.Equal(t, "Meals", result.Categorization.Category)
	assert.Equal(t, model.SourceLookup, result.Categorization.Source)

	// The extractor receives the normalized JPEG, not the raw upload.
	assert.True(t, bytes.HasPrefix(extractor.got, []byte{0xFF, 0xD8}))

	// The resolver is consulted exactly once, with the extracted merchant.
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "Starbucks", resolver.merchant)
}

func TestIngestConversionFailureStopsPipeline(t *testing.T) {
	extractor := &stubExtractor{fields: &model.ReceiptFields{Merchant: "x"}}
	resolver := &stubResolver{result: &model.CategorizationResult{}}
	orch := NewOrchestrator(extractor, resolver, nil)

	_, err := orch.Ingest(context.Background(), []byte("not an image"), normalize.ContentTypeJPEG)
	require.Error(t, err)

	var convErr *normalize.ConversionError
	assert.ErrorAs(t, err, &convErr)
	assert.Nil(t, extractor.got, "extractor must not run after a conversion failure")
	assert.Zero(t, resolver.calls)
}

func TestIngestExtractionFailureStopsPipeline(t *testing.T) {
	parseErr := &llm.ParseError{Msg: "response is not a valid JSON object"}
	extractor := &stubExtractor{err: parseErr}
	resolver := &stubResolver{result: &model.CategorizationResult{}}
	orch := NewOrchestrator(extractor, resolver, nil)

	_, err := orch.Ingest(context.Background(), smallJPEG(t), normalize.ContentTypeJPEG)
	require.Error(t, err)

	var pe *llm.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Zero(t, resolver.calls, "categorization must not run after extraction failure")
}

func TestIngestRemoteFailureSurfaces(t *testing.T) {
	remoteErr := &llm.RemoteError{StatusCode: 503, Err: errors.New("upstream down")}
	extractor := &stubExtractor{err: remoteErr}
	orch := NewOrchestrator(extractor, &stubResolver{result: &model.CategorizationResult{}}, nil)

	_, err := orch.Ingest(context.Background(), smallJPEG(t), normalize.ContentTypeJPEG)
	require.Error(t, err)

	var re *llm.RemoteError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, 503, re.StatusCode)
}

func TestIngestEmptyMerchantStillCategorized(t *testing.T) {
	extractor := &stubExtractor{fields: &model.ReceiptFields{Merchant: ""}}
	resolver := &stubResolver{
		result: &model.CategorizationResult{Category: "Other Expenses", ScheduleCLine: "27a", Source: model.SourceRemote},
	}
	orch := NewOrchestrator(extractor, resolver, nil)

	result, err := orch.Ingest(context.Background(), smallJPEG(t), normalize.ContentTypeJPEG)
	require.NoError(t, err)
	assert.Equal(t, "Other Expenses", result.Categorization.Category)
	assert.Equal(t, 1, resolver.calls)
}
