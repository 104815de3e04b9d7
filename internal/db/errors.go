package db

import "errors"

// Domain-level database error sentinels.
var (
	// Import errors
	ErrEmptyImport = errors.New("import source yielded no glosses")
)
