package triangle

import "errors"

// Errors returned by the host-side model.
var (
	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("triangle: invalid color")

	// ErrInvalidVariant is returned when a variant name is not recognized.
	ErrInvalidVariant = errors.New("triangle: invalid variant")
)
