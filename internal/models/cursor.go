package models

import "time"

// RepositoryCursor tracks the resumable pagination position for a
// repository. Cursor is nil until the bootstrap walk records the first
// page's end token; from then on it anchors every steady-state query.
type RepositoryCursor struct {
	Repository string    `json:"repository"`
	Cursor     *string   `json:"cursor"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Initialized reports whether the bootstrap walk has anchored a token.
func (c *RepositoryCursor) Initialized() bool {
	return c != nil && c.Cursor != nil
}
