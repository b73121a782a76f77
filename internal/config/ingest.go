package config

import "time"

// IngestConfig holds ingestion configuration.
//
// PageSize and MaxBootstrapPages bound the initial backfill: a repository
// seen for the first time is walked backward at most MaxBootstrapPages pages
// of PageSize merged pull requests each.
type IngestConfig struct {
	PageSize           int
	MaxBootstrapPages  int
	MaxConcurrentRepos int
	IngestTimeout      time.Duration
	TxMaxRetries       int
	TxRetryBackoff     time.Duration
	ReportYearsBack    int
}

// DefaultIngestConfig returns the default ingestion configuration
func DefaultIngestConfig() *IngestConfig {
	return &IngestConfig{
		PageSize:           100,
		MaxBootstrapPages:  10,
		MaxConcurrentRepos: 3,
		IngestTimeout:      5 * time.Minute,
		TxMaxRetries:       3,
		TxRetryBackoff:     time.Second,
		ReportYearsBack:    5,
	}
}
