package github

import "fmt"

// QueryError wraps a failed GraphQL operation with its repository context.
type QueryError struct {
	Repository string
	Operation  string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("github %s failed for %s: %v", e.Operation, e.Repository, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError
func NewQueryError(repository, operation string, err error) error {
	return &QueryError{
		Repository: repository,
		Operation:  operation,
		Err:        err,
	}
}
