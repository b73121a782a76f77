package models

import "time"

// UserRepository tracks one repository on one user's dashboard. Display
// controls whether it is included in the user's analytics refresh.
type UserRepository struct {
	UserID     string    `json:"user_id"`
	Repository string    `json:"repository"`
	Display    bool      `json:"display"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
