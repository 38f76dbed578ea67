// Package errors defines the exported error sentinels for approxdict.
//
// Every package wraps these with context and callers match them with
// errors.Is, so the values must stay comparable across package boundaries.
package errors

import "errors"

// Dictionary file errors
var (
	ErrTruncated          = errors.New("approxdict: dictionary is truncated")
	ErrCorrupt            = errors.New("approxdict: dictionary data is corrupted")
	ErrDictionaryTooLarge = errors.New("approxdict: dictionary exceeds 32-bit addressable size")
	ErrUnknownFormat      = errors.New("approxdict: unknown dictionary format")
	ErrMappingClosed      = errors.New("approxdict: dictionary mapping is closed")
)

// Word list errors
var (
	ErrMalformedEntry  = errors.New("approxdict: malformed word list entry")
	ErrAlreadyCompiled = errors.New("approxdict: word list is a compiled dictionary")
)

// Query errors
var (
	ErrQueryTooLong     = errors.New("approxdict: query exceeds maximum length")
	ErrDistanceTooLarge = errors.New("approxdict: distance bound exceeds maximum")
)
