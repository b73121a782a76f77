package analytics

import (
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// PageDeltas are the accumulator increments produced by folding one page of
// merge events. They are pure data: the storage layer applies them as
// insert-or-add upserts inside a single transaction together with the
// cursor advancement.
type PageDeltas struct {
	Repo []*models.RepoMonthlyStat
	User []*models.UserMonthlyStat
}

// Empty reports whether applying the deltas would touch no rows.
func (d *PageDeltas) Empty() bool {
	return len(d.Repo) == 0 && len(d.User) == 0
}

type repoKey struct {
	year  int
	month int
}

type userKey struct {
	userID string
	year   int
	month  int
}

// FoldEvents folds a page of merge events into per-month accumulator
// deltas for a repository.
//
// Repository stats are keyed by the merge month. The author's additions,
// deletions and merged count are keyed by the merge month as well, while
// reviews and comments are attributed to the month the review or comment
// itself was written in. An event without an identifiable author still
// contributes repository and reviewer/commenter deltas.
func FoldEvents(repository string, events []*models.MergeEvent) *PageDeltas {
	deltas := &PageDeltas{}
	repoIdx := make(map[repoKey]*models.RepoMonthlyStat)
	userIdx := make(map[userKey]*models.UserMonthlyStat)

	repoStat := func(year, month int) *models.RepoMonthlyStat {
		k := repoKey{year, month}
		if s, ok := repoIdx[k]; ok {
			return s
		}
		s := &models.RepoMonthlyStat{Repository: repository, Year: year, Month: month}
		repoIdx[k] = s
		deltas.Repo = append(deltas.Repo, s)
		return s
	}
	userStat := func(userID string, year, month int) *models.UserMonthlyStat {
		k := userKey{userID, year, month}
		if s, ok := userIdx[k]; ok {
			return s
		}
		s := &models.UserMonthlyStat{Repository: repository, UserID: userID, Year: year, Month: month}
		userIdx[k] = s
		deltas.User = append(deltas.User, s)
		return s
	}

	for _, event := range events {
		cycleTime := HourDiff(event.MergedAt, event.CreatedAt)
		firstReviewTime := 0
		if first := event.FirstReview(); first != nil {
			firstReviewTime = HourDiff(first.CreatedAt, event.CreatedAt)
		}

		repo := repoStat(event.MergedAt.Year(), int(event.MergedAt.Month()))
		repo.MergedCount++
		repo.TotalCycleTime += cycleTime
		repo.TotalFirstReviewTime += firstReviewTime

		if event.Author != "" {
			author := userStat(event.Author, event.MergedAt.Year(), int(event.MergedAt.Month()))
			author.Additions += event.Additions
			author.Deletions += event.Deletions
			author.MergedCount++
		}

		for i := range event.Reviews {
			review := &event.Reviews[i]
			if review.Author != "" {
				reviewer := userStat(review.Author, review.CreatedAt.Year(), int(review.CreatedAt.Month()))
				reviewer.Reviews++
			}
			for j := range review.Comments {
				comment := &review.Comments[j]
				if comment.Author == "" {
					continue
				}
				commenter := userStat(comment.Author, comment.CreatedAt.Year(), int(comment.CreatedAt.Month()))
				commenter.Comments++
			}
		}
	}

	return deltas
}
