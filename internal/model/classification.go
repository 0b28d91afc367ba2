package model

// CategorySource indicates which tier of the resolver produced a categorization.
type CategorySource string

const (
	// SourceCorrection indicates the category came from a user-confirmed correction.
	SourceCorrection CategorySource = "correction"
	// SourceLookup indicates the category came from the built-in merchant table.
	SourceLookup CategorySource = "lookup"
	// SourceRemote indicates the category came from the remote classifier.
	SourceRemote CategorySource = "remote"
)

// CategorizationResult is the resolver's answer for a single merchant.
// It always names a valid catalog category; callers persist it only after
// the user has reviewed it.
type CategorizationResult struct {
	Category      string
	ScheduleCLine string
	Source        CategorySource
}
