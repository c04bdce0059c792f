package catalog

import "errors"

var (
	// ErrNotFound reports a missing site or scene.
	ErrNotFound = errors.New("not found")
	// ErrInvalid reports input that cannot be stored.
	ErrInvalid = errors.New("invalid input")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
