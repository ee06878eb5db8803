package utils

import "errors"

// Error kinds the controllers map to HTTP status codes. Everything else is an
// unexpected failure and becomes a generic 500.
var (
    // ErrNotFound: no file for (id, user), or the record has no usable remote URL.
    ErrNotFound = errors.New("not found")
    // ErrDataUnavailable: the stored spreadsheet could not be fetched or parsed.
    ErrDataUnavailable = errors.New("spreadsheet data unavailable")
    // ErrEmptyGeneration: every consulted provider produced only whitespace.
    ErrEmptyGeneration = errors.New("empty generation")
)
