package models

// NoDataSentinel marks a month with no merged pull requests in a report
// series. It is distinct from 0, which would mean activity with zero hours.
const NoDataSentinel = -1

// YearSeries is a 13-element report row: the year followed by one value per
// month, January first.
type YearSeries [13]float64

// AnalyticsReport is the dashboard payload for one repository: one series
// row per year (most recent first) plus a ranked leaderboard per year.
type AnalyticsReport struct {
	Repository  string            `json:"repository"`
	CycleTime   []YearSeries      `json:"cycleTimeData"`
	FirstReview []YearSeries      `json:"firstReviewData"`
	MergedPRs   []YearSeries      `json:"totalPullRequestsMerged"`
	Leaderboard []LeaderboardYear `json:"leaderBoard"`
}

// LeaderboardYear ranks a repository's contributors for a single year.
type LeaderboardYear struct {
	Year    int                `json:"year"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry is a contributor's yearly totals plus the weighted score
// used for ranking.
type LeaderboardEntry struct {
	UserID      string  `json:"user_id"`
	Additions   int     `json:"additions"`
	Deletions   int     `json:"deletions"`
	MergedCount int     `json:"pull_requests_merged"`
	Reviews     int     `json:"pull_requests_reviews"`
	Comments    int     `json:"pull_requests_comments"`
	Score       float64 `json:"score"`
}
