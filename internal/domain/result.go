package domain

import "time"

// Outcome classifies how a run ended
type Outcome string

const (
	// OutcomeReviewed means a review was generated (and possibly posted)
	OutcomeReviewed Outcome = "reviewed"
	// OutcomeNothingToReview means the diff was empty or too small; this is
	// a valid terminal state, not a failure
	OutcomeNothingToReview Outcome = "nothing-to-review"
)

// ReviewResult is the final product of one run
type ReviewResult struct {
	Outcome  Outcome
	Text     string
	Model    string
	PRNumber string
	Date     time.Time
}

// HasText returns true if the run produced review text
func (r *ReviewResult) HasText() bool {
	return r.Text != ""
}
