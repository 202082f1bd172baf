package adapter

import (
	"errors"
	"fmt"
)

// ErrFetch is the root of the adapter error taxonomy. Every error returned by
// a SourceAdapter wraps exactly one of the three kinds below.
var (
	ErrFetch = errors.New("fetch error")

	// ErrNotFound: the source was reached but has no data for the company.
	ErrNotFound = fmt.Errorf("%w: not found", ErrFetch)
	// ErrUnavailable: the source could not be reached or refused the request.
	ErrUnavailable = fmt.Errorf("%w: source unavailable", ErrFetch)
	// ErrParse: the source responded but the payload was malformed.
	ErrParse = fmt.Errorf("%w: malformed response", ErrFetch)
)

// NotFoundError wraps cause as a not-found fetch failure for source.
func NotFoundError(source string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", source, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", source, ErrNotFound, cause)
}

// UnavailableError wraps cause as an unavailable fetch failure for source.
func UnavailableError(source string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", source, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w: %v", source, ErrUnavailable, cause)
}

// ParseError wraps cause as a malformed-response failure for source.
func ParseError(source string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", source, ErrParse)
	}
	return fmt.Errorf("%s: %w: %v", source, ErrParse, cause)
}
