package models

import "time"

// MergeEvent is a single merged pull request as reported by the event
// source. It is transient: events are folded into the monthly accumulator
// tables and never persisted as such.
type MergeEvent struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	MergedAt  time.Time `json:"merged_at"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
	// Author is empty when the account has been deleted.
	Author  string   `json:"author"`
	Reviews []Review `json:"reviews"`
}

// Review is a review attached to a merged pull request. The source returns
// reviews in chronological order; the first entry defines first-review time.
type Review struct {
	Author    string          `json:"author"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	Comments  []ReviewComment `json:"comments"`
}

// ReviewComment is a comment left within a review.
type ReviewComment struct {
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// FirstReview returns the earliest review of the event, or nil when the
// pull request was merged without review.
func (e *MergeEvent) FirstReview() *Review {
	if len(e.Reviews) == 0 {
		return nil
	}
	return &e.Reviews[0]
}
