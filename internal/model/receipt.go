package model

// ReceiptFields holds the fields extracted from a single receipt image.
// Date and Amount are nil when the model reports them as not found; that is
// an expected outcome, not an error.
type ReceiptFields struct {
	Date     *string
	Amount   *float64
	Merchant string
}
