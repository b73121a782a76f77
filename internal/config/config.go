package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port               string
	DBConnectionString string
	GitHubToken        string
	Organization       string
	RefreshInterval    time.Duration
}

func Load() (*Config, error) {
	port := getEnv("PORT", "7007")
	dbConnStr := getEnv("DB_CONNECTION_STRING", "")
	githubToken := getEnv("GITHUB_TOKEN", "")
	organization := getEnv("GITHUB_ORGANIZATION", "")

	refreshInterval, err := strconv.Atoi(getEnv("REFRESH_INTERVAL_MINUTES", "0"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:               port,
		DBConnectionString: dbConnStr,
		GitHubToken:        githubToken,
		Organization:       organization,
		RefreshInterval:    time.Duration(refreshInterval) * time.Minute,
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
