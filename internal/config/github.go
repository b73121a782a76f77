package config

import "time"

// GitHubConfig holds GitHub GraphQL API configuration
type GitHubConfig struct {
	Token      string
	APIBaseURL string
	RateLimit  RateLimitConfig
}

// RateLimitConfig holds retry/backoff configuration for API calls
type RateLimitConfig struct {
	MaxRetries      int
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	RetryMultiplier float64
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL: "https://api.github.com/graphql",
		RateLimit: RateLimitConfig{
			MaxRetries:      3,
			InitialBackoff:  time.Second,
			MaxBackoff:      time.Minute,
			RetryMultiplier: 2.0,
		},
	}
}
