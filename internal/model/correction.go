package model

import "time"

// Correction is a user-confirmed merchant-to-category override. MerchantKey
// is always the trimmed, lowercased form of the merchant name; at most one
// correction exists per key, last write wins.
type Correction struct {
	LastUpdated time.Time
	MerchantKey string
	Category    string
}
