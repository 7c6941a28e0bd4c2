package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a catalog repository is not provided.
	ErrRepositoryRequired = errors.New("catalog repository required")

	// ErrMalformedRow is returned when a CSV source cannot be read as records.
	ErrMalformedRow = errors.New("malformed csv row")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidBatchSize is returned when the import batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")
)
