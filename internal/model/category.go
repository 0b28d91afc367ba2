package model

// Category represents a single Schedule C expense category.
type Category struct {
	// Name is the category name shown to the user, e.g. "Office Expense".
	Name string
	// ScheduleCLine is the line on Schedule C this category maps to, e.g. "18" or "27a".
	ScheduleCLine string
}
