package utils

import (
	"fmt"
	"strings"
)

// ValidateRepoName checks that a repository name is a bare name within the
// configured organization, not a URL or owner/name path.
func ValidateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if strings.ContainsAny(name, "/ \t") {
		return fmt.Errorf("invalid repository name: %s", name)
	}
	return nil
}
