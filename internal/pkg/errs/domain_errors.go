package errs

import "errors"

// Cross-layer markers used to categorize failures for logging and HTTP mapping
var (
	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrUpstreamFailed          = errors.New("upstream provider failed")
)
