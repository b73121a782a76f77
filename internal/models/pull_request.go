package models

import "time"

// Pull request priority levels, mirrored by a CHECK constraint in the
// pull_requests table.
const (
	PriorityBlocker  = "Blocker"
	PriorityCritical = "Critical"
	PriorityMajor    = "Major"
	PriorityMinor    = "Minor"
	PriorityTrivial  = "Trivial"
	PriorityNone     = "None"
)

// PullRequestProps are the user-attached properties of a pull request.
type PullRequestProps struct {
	PullRequestID        string    `json:"pull_request_id"`
	Priority             string    `json:"priority"`
	Description          string    `json:"description"`
	DescriptionUpdatedBy string    `json:"description_updated_by"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ValidPriority reports whether p is one of the allowed priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityBlocker, PriorityCritical, PriorityMajor, PriorityMinor, PriorityTrivial, PriorityNone:
		return true
	}
	return false
}
