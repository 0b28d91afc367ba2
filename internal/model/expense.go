package model

import "time"

// Expense is a single persisted business expense row.
type Expense struct {
	CreatedAt     time.Time `json:"created_at"`
	Merchant      string    `json:"merchant"`
	Date          string    `json:"date"`
	Category      string    `json:"category"`
	ScheduleCLine string    `json:"schedule_c_line"`
	Notes         string    `json:"notes"`
	Amount        float64   `json:"amount"`
	ID            int64     `json:"id"`
}
