package object

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the object database. Callers distinguish them
// with errors.Is; wrapping at call sites preserves the kind.
var (
	// ErrUnknownObjectType is returned for type-tag strings outside the
	// closed blob/tree/commit/tag set.
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrMalformedObject is returned when framed or payload bytes fail
	// structural validation.
	ErrMalformedObject = errors.New("malformed object")

	// ErrCorruptData is returned when stored bytes fail to decompress.
	ErrCorruptData = errors.New("corrupt object data")

	// ErrObjectNotFound is returned when no object exists for a hash.
	ErrObjectNotFound = errors.New("object not found")
)

func unknownTypeError(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnknownObjectType, tag)
}
