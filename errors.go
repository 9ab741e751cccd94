package passentropy

import "errors"

var (
	// ErrInvalidInput is returned when a password or context word is not valid UTF-8.
	ErrInvalidInput = errors.New("passentropy: invalid input")

	// ErrInconsistent reports an internal defect: the chosen matches do not tile
	// the password or carry an impossible entropy. Estimates are never returned
	// alongside it.
	ErrInconsistent = errors.New("passentropy: inconsistent estimate")

	// ErrUnknownMatchType is returned when decoding an unrecognised match type.
	ErrUnknownMatchType = errors.New("passentropy: unknown match type")
)
