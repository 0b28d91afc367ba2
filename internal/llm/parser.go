package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/expenserule/expenserule/internal/model"
)

// ParseError reports that a model response could not be interpreted as the
// required three-key JSON object. Unlike classification, extraction has no
// safe default to substitute, so the caller must be told it failed.
type ParseError struct {
	Err error
	Msg string
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction parse error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("extraction parse error: %s", e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// stripMarkdownFence removes a wrapping markdown code fence from a model
// response: a leading line starting with ``` and, if present, a trailing
// line consisting solely of ```. Responses without a fence pass through
// unchanged.
func stripMarkdownFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// parseReceiptFields parses a model response into receipt fields. The
// merchant is coerced to a trimmed string (absent becomes empty, never
// null); date and amount pass through as absent when the model reports them
// as not found. An amount that is present but not numeric is a hard parse
// failure, not a silent zero.
func parseReceiptFields(content string) (*model.ReceiptFields, error) {
	content = stripMarkdownFence(content)

	var raw struct {
		Merchant *string  `json:"merchant"`
		Date     *string  `json:"date"`
		Amount   *float64 `json:"amount"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &ParseError{Msg: "response is not a valid JSON object", Err: err}
	}

	fields := &model.ReceiptFields{}

	if raw.Merchant != nil {
		fields.Merchant = strings.TrimSpace(*raw.Merchant)
	}
	if raw.Date != nil && strings.TrimSpace(*raw.Date) != "" {
		date := strings.TrimSpace(*raw.Date)
		fields.Date = &date
	}
	if raw.Amount != nil {
		amount := *raw.Amount
		fields.Amount = &amount
	}

	return fields, nil
}
