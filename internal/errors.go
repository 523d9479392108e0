package internal

import "fmt"

// StorageError represents errors accessing the key-value store
type StorageError struct {
	Key string
	Op  string // "get", "set", "delete", "keys", "encode"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// QueryError represents a failed call to the remote query endpoint
type QueryError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("query error: %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("query error: %s: %v", e.URL, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
