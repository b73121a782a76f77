package analytics

import (
	"context"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// Direction selects the pagination mode of a page fetch.
type Direction int

const (
	// Forward fetches the first pageSize events after the token.
	Forward Direction = iota
	// Backward fetches the last pageSize events before the token.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// EventPage is one page of merged-pull-request events.
//
// StartToken/EndToken are opaque pagination markers. EndToken is the
// forward-resumable position after the page; a nil EndToken means the source
// reported no resumable position and the cursor must not move.
type EventPage struct {
	Events       []*models.MergeEvent
	HasMore      bool
	HasMoreOlder bool
	StartToken   *string
	EndToken     *string
}

// EventSource supplies pages of merged-pull-request events for a repository.
// Page size is fixed by configuration; pages within one repository must be
// fetched sequentially because each query depends on the previous token.
type EventSource interface {
	// FetchPage fetches one page in the given direction. A nil token means
	// "from the end" for backward fetches.
	FetchPage(ctx context.Context, repository string, token *string, direction Direction) (*EventPage, error)

	// ValidRepository reports whether the repository exists, is accessible,
	// and is not archived.
	ValidRepository(ctx context.Context, repository string) (bool, error)

	// TeamRepositories lists the repositories owned by the organization
	// teams the user belongs to, deduplicated, archived ones excluded.
	TeamRepositories(ctx context.Context, userID string) ([]string, error)
}
