package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

const foldTestRepo = "test-repo"

func mergeEvent(author string, created, merged time.Time) *models.MergeEvent {
	return &models.MergeEvent{
		ID:        "PR_1",
		Number:    1,
		Title:     "Add feature",
		CreatedAt: created,
		MergedAt:  merged,
		Author:    author,
		Additions: 100,
		Deletions: 20,
	}
}

func TestFoldEventsEmptyPage(t *testing.T) {
	deltas := FoldEvents(foldTestRepo, nil)
	assert.True(t, deltas.Empty())
}

func TestFoldEventsSingleEvent(t *testing.T) {
	created := time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)
	merged := created.Add(48 * time.Hour)

	event := mergeEvent("alice", created, merged)
	event.Reviews = []models.Review{
		{
			Author:    "bob",
			State:     "APPROVED",
			CreatedAt: created.Add(10 * time.Hour),
			Comments: []models.ReviewComment{
				{Author: "bob", CreatedAt: created.Add(10 * time.Hour)},
			},
		},
	}

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{event})

	require.Len(t, deltas.Repo, 1)
	repo := deltas.Repo[0]
	assert.Equal(t, foldTestRepo, repo.Repository)
	assert.Equal(t, 2023, repo.Year)
	assert.Equal(t, 3, repo.Month)
	assert.Equal(t, 1, repo.MergedCount)
	assert.Equal(t, 48, repo.TotalCycleTime)
	assert.Equal(t, 10, repo.TotalFirstReviewTime)

	require.Len(t, deltas.User, 2)
	alice := deltas.User[0]
	assert.Equal(t, "alice", alice.UserID)
	assert.Equal(t, 100, alice.Additions)
	assert.Equal(t, 20, alice.Deletions)
	assert.Equal(t, 1, alice.MergedCount)
	assert.Equal(t, 0, alice.Reviews)

	bob := deltas.User[1]
	assert.Equal(t, "bob", bob.UserID)
	assert.Equal(t, 1, bob.Reviews)
	assert.Equal(t, 1, bob.Comments)
	assert.Equal(t, 0, bob.MergedCount)
}

func TestFoldEventsFirstReviewUsesEarliestReview(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	event := mergeEvent("alice", created, created.Add(100*time.Hour))
	event.Reviews = []models.Review{
		{Author: "bob", CreatedAt: created.Add(4 * time.Hour)},
		{Author: "carol", CreatedAt: created.Add(90 * time.Hour)},
	}

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{event})

	require.Len(t, deltas.Repo, 1)
	assert.Equal(t, 4, deltas.Repo[0].TotalFirstReviewTime)
}

func TestFoldEventsNoReviews(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	event := mergeEvent("alice", created, created.Add(12*time.Hour))

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{event})

	require.Len(t, deltas.Repo, 1)
	assert.Equal(t, 12, deltas.Repo[0].TotalCycleTime)
	assert.Equal(t, 0, deltas.Repo[0].TotalFirstReviewTime)
}

func TestFoldEventsAuthorlessEvent(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	event := mergeEvent("", created, created.Add(12*time.Hour))
	event.Reviews = []models.Review{
		{Author: "bob", CreatedAt: created.Add(2 * time.Hour)},
	}

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{event})

	// Repository stats and reviewer credit still accrue.
	require.Len(t, deltas.Repo, 1)
	assert.Equal(t, 1, deltas.Repo[0].MergedCount)
	require.Len(t, deltas.User, 1)
	assert.Equal(t, "bob", deltas.User[0].UserID)
}

func TestFoldEventsReviewAttributedToItsOwnMonth(t *testing.T) {
	// The pull request merges in April, but the review and its comment were
	// written in March, so the reviewer's credit lands in March.
	created := time.Date(2023, 3, 28, 0, 0, 0, 0, time.UTC)
	merged := time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC)

	event := mergeEvent("alice", created, merged)
	event.Reviews = []models.Review{
		{
			Author:    "bob",
			CreatedAt: time.Date(2023, 3, 29, 0, 0, 0, 0, time.UTC),
			Comments: []models.ReviewComment{
				{Author: "bob", CreatedAt: time.Date(2023, 3, 29, 1, 0, 0, 0, time.UTC)},
			},
		},
	}

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{event})

	require.Len(t, deltas.Repo, 1)
	assert.Equal(t, 4, deltas.Repo[0].Month)

	require.Len(t, deltas.User, 2)
	alice := deltas.User[0]
	assert.Equal(t, 4, alice.Month)
	bob := deltas.User[1]
	assert.Equal(t, "bob", bob.UserID)
	assert.Equal(t, 3, bob.Month)
	assert.Equal(t, 1, bob.Reviews)
	assert.Equal(t, 1, bob.Comments)
}

func TestFoldEventsAccumulatesSameMonth(t *testing.T) {
	created := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	first := mergeEvent("alice", created, created.Add(10*time.Hour))
	second := mergeEvent("alice", created.Add(24*time.Hour), created.Add(24*time.Hour+20*time.Hour))

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{first, second})

	require.Len(t, deltas.Repo, 1)
	assert.Equal(t, 2, deltas.Repo[0].MergedCount)
	assert.Equal(t, 30, deltas.Repo[0].TotalCycleTime)

	require.Len(t, deltas.User, 1)
	assert.Equal(t, 2, deltas.User[0].MergedCount)
	assert.Equal(t, 200, deltas.User[0].Additions)
	assert.Equal(t, 40, deltas.User[0].Deletions)
}

func TestFoldEventsSplitsByMergeMonth(t *testing.T) {
	marchCreated := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	aprilCreated := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	march := mergeEvent("alice", marchCreated, marchCreated.Add(5*time.Hour))
	april := mergeEvent("alice", aprilCreated, aprilCreated.Add(7*time.Hour))

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{march, april})

	require.Len(t, deltas.Repo, 2)
	assert.Equal(t, 3, deltas.Repo[0].Month)
	assert.Equal(t, 4, deltas.Repo[1].Month)
	require.Len(t, deltas.User, 2)
}

func TestFoldEventsSkipsAuthorlessReviewersAndCommenters(t *testing.T) {
	created := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	event := mergeEvent("alice", created, created.Add(2*time.Hour))
	event.Reviews = []models.Review{
		{
			Author:    "",
			CreatedAt: created.Add(time.Hour),
			Comments: []models.ReviewComment{
				{Author: "", CreatedAt: created.Add(time.Hour)},
				{Author: "dave", CreatedAt: created.Add(time.Hour)},
			},
		},
	}

	deltas := FoldEvents(foldTestRepo, []*models.MergeEvent{event})

	require.Len(t, deltas.User, 2)
	assert.Equal(t, "alice", deltas.User[0].UserID)
	dave := deltas.User[1]
	assert.Equal(t, "dave", dave.UserID)
	assert.Equal(t, 0, dave.Reviews)
	assert.Equal(t, 1, dave.Comments)
}
