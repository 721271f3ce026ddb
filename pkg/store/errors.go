package store

import "errors"

var (
	// ErrStorageMissing is returned by Load when the data file does not exist.
	ErrStorageMissing = errors.New("data file does not exist, run `bujo init` first")

	// ErrMalformedDocument is returned when the data file cannot be parsed.
	ErrMalformedDocument = errors.New("malformed data file")

	// ErrDateFormat is returned when a date is not in YYYYMMDD form.
	ErrDateFormat = errors.New("date must be in YYYYMMDD format")

	// ErrNotFound is returned when a key or daily id matches no record.
	ErrNotFound = errors.New("not found")

	// ErrIO is returned when the data file cannot be written.
	ErrIO = errors.New("writing data file")
)
