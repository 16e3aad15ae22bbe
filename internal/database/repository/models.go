package repository

import "errors"

// ErrTaskNotFound is returned by lookups for an unknown task id.
var ErrTaskNotFound = errors.New("task not found")

// Category represents a category row.
type Category struct {
	ID        string
	Label     string
	Icon      string
	SortOrder int
}
