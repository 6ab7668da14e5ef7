package core

import "errors"

// Common errors.
var (
	// ErrInvalidArgument signals a nil or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidMargin signals a negative distance or a non-positive ring span.
	ErrInvalidMargin = errors.New("invalid margin")

	// ErrIdentifierTooLong signals a base identifier beyond MaxIDLength.
	ErrIdentifierTooLong = errors.New("identifier exceeds maximum length")

	// ErrIdentifierExhausted signals that no unique identifier could be
	// produced within the attempt budget.
	ErrIdentifierExhausted = errors.New("identifier allocation exhausted")

	// ErrResolutionConversion signals that a structure required in high
	// resolution could not be converted, not even via a temporary copy.
	ErrResolutionConversion = errors.New("high resolution conversion failed")

	// ErrEmptyInput signals an aggregate fold over zero structures.
	ErrEmptyInput = errors.New("no structures to aggregate")
)
