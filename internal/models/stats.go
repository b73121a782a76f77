package models

// RepoMonthlyStat is one accumulator row of the repository_analytics table.
// Rows are insert-or-add only: replaying a page would double-count, which is
// prevented by committing accumulation and cursor advancement atomically.
type RepoMonthlyStat struct {
	Repository           string `json:"repository"`
	Year                 int    `json:"year"`
	Month                int    `json:"month"`
	MergedCount          int    `json:"total_pull_requests_merged"`
	TotalCycleTime       int    `json:"total_cycle_time"`
	TotalFirstReviewTime int    `json:"total_first_review_time"`
}

// UserMonthlyStat is one accumulator row of the user_analytics table, keyed
// by the month the user's own activity occurred in.
type UserMonthlyStat struct {
	Repository  string `json:"repository"`
	UserID      string `json:"user_id"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
	MergedCount int    `json:"pull_requests_merged"`
	Reviews     int    `json:"pull_requests_reviews"`
	Comments    int    `json:"pull_requests_comments"`
}
