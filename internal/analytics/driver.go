package analytics

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/config"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/errors"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/models"
)

// CursorStore is the persistence surface the ingestion driver needs.
// ApplyPage must apply all deltas and the cursor advancement as one atomic
// unit of work at the serializable isolation level; that atomicity is what
// keeps a retried page from double-counting.
type CursorStore interface {
	// GetCursor returns the repository's cursor, or (nil, nil) when the
	// repository has never been ingested.
	GetCursor(ctx context.Context, repository string) (*models.RepositoryCursor, error)

	// CreateCursor creates an uninitialized cursor row. Calling it for an
	// existing repository is a no-op.
	CreateCursor(ctx context.Context, repository string) error

	// ApplyPage folds one page's deltas into the accumulator tables and,
	// when newToken is non-nil, advances the cursor in the same
	// transaction.
	ApplyPage(ctx context.Context, repository string, deltas *PageDeltas, newToken *string) error
}

// IngestionDriver walks the event source and feeds pages through the
// aggregation fold into storage. A repository is either bootstrapped
// (backward walk over the most recent history, bounded by configuration)
// or advanced by exactly one forward page per call.
type IngestionDriver struct {
	source EventSource
	store  CursorStore
	cfg    *config.IngestConfig
	logger *logrus.Logger
}

// NewIngestionDriver creates a new ingestion driver
func NewIngestionDriver(source EventSource, store CursorStore, cfg *config.IngestConfig, logger *logrus.Logger) *IngestionDriver {
	return &IngestionDriver{
		source: source,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Ingest runs one ingestion call for a repository: bootstrap on first
// sight, a single steady-state page afterwards. Any failure leaves the
// cursor and accumulators at their last committed state, so the call is
// safe to retry.
func (d *IngestionDriver) Ingest(ctx context.Context, repository string) error {
	if repository == "" {
		return errors.NewValidationError("repository cannot be empty", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.IngestTimeout)
	defer cancel()

	cursor, err := d.store.GetCursor(ctx, repository)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to get cursor for %s", repository), err)
	}

	// A cursor row with a nil token means an earlier bootstrap never
	// anchored a position (it failed or found no events), so the repository
	// is still uninitialized and must bootstrap again.
	if !cursor.Initialized() {
		if err := d.store.CreateCursor(ctx, repository); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to create cursor for %s", repository), err)
		}
		return d.bootstrap(ctx, repository)
	}

	return d.advance(ctx, repository, cursor.Cursor)
}

// bootstrap walks backward from the most recent merged pull request. Only
// the first page's end token becomes the steady-state cursor; every page's
// events are folded regardless.
func (d *IngestionDriver) bootstrap(ctx context.Context, repository string) error {
	logger := d.logger.WithFields(logrus.Fields{
		"repository": repository,
		"phase":      "bootstrap",
	})
	logger.Info("Bootstrapping repository analytics")

	var token *string
	for i := 0; i < d.cfg.MaxBootstrapPages; i++ {
		page, err := d.source.FetchPage(ctx, repository, token, Backward)
		if err != nil {
			return errors.NewSourceError(fmt.Sprintf("failed to fetch bootstrap page %d for %s", i, repository), err)
		}

		var anchor *string
		if i == 0 {
			anchor = page.EndToken
		}

		if err := d.applyPage(ctx, repository, page.Events, anchor); err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"page":   i,
			"events": len(page.Events),
		}).Debug("Applied bootstrap page")

		if !page.HasMoreOlder {
			break
		}
		token = page.StartToken
	}

	logger.Info("Bootstrap complete")
	return nil
}

// advance fetches exactly one forward page from the anchored cursor. A nil
// end token means no progress: the cursor stays put.
func (d *IngestionDriver) advance(ctx context.Context, repository string, token *string) error {
	page, err := d.source.FetchPage(ctx, repository, token, Forward)
	if err != nil {
		return errors.NewSourceError(fmt.Sprintf("failed to fetch page for %s", repository), err)
	}

	if err := d.applyPage(ctx, repository, page.Events, page.EndToken); err != nil {
		return err
	}

	d.logger.WithFields(logrus.Fields{
		"repository": repository,
		"events":     len(page.Events),
		"advanced":   page.EndToken != nil,
	}).Info("Applied steady-state page")
	return nil
}

func (d *IngestionDriver) applyPage(ctx context.Context, repository string, events []*models.MergeEvent, newToken *string) error {
	deltas := FoldEvents(repository, events)
	if deltas.Empty() && newToken == nil {
		return nil
	}
	if err := d.store.ApplyPage(ctx, repository, deltas, newToken); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to apply page for %s", repository), err)
	}
	return nil
}
