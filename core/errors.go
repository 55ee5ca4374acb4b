package core

import (
	"errors"
	"fmt"
)

// Sentinel conditions. The typed errors below match these with errors.Is.
var (
	// ErrInvalidArgument is returned when a caller passes input that is not
	// usable text, or otherwise breaks an input contract.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOversizeQuery is returned when chunking is disabled and the query
	// does not fit in a single chunk.
	ErrOversizeQuery = errors.New("search query exceeds chunk limit")

	// ErrMalformedDocument is returned when a page response lacks the page
	// text markers.
	ErrMalformedDocument = errors.New("malformed page document")

	// ErrNoExactMatch is returned when a search response has no exact match.
	ErrNoExactMatch = errors.New("no exact match in search document")
)

// OversizeQueryError reports a query that was too long with chunking disabled.
type OversizeQueryError struct {
	Length int
	Limit  int
}

func (e *OversizeQueryError) Error() string {
	return fmt.Sprintf("search text is %d characters, limit is %d with auto split disabled", e.Length, e.Limit)
}

func (e *OversizeQueryError) Is(target error) bool { return target == ErrOversizeQuery }

// MalformedDocumentError carries the page response that could not be decoded.
type MalformedDocumentError struct {
	Document string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("%s (%d bytes)", ErrMalformedDocument, len(e.Document))
}

func (e *MalformedDocumentError) Is(target error) bool { return target == ErrMalformedDocument }

// NoExactMatchError carries the search response that held no exact match.
type NoExactMatchError struct {
	Document string
}

func (e *NoExactMatchError) Error() string {
	return fmt.Sprintf("%s (%d bytes)", ErrNoExactMatch, len(e.Document))
}

func (e *NoExactMatchError) Is(target error) bool { return target == ErrNoExactMatch }

// Document returns the raw response attached to err, if any.
func Document(err error) (string, bool) {
	var malformed *MalformedDocumentError
	if errors.As(err, &malformed) {
		return malformed.Document, true
	}
	var noMatch *NoExactMatchError
	if errors.As(err, &noMatch) {
		return noMatch.Document, true
	}
	return "", false
}
