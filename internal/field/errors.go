package field

import "errors"

// Domain errors for field operations.
var (
	// ErrNoSurface indicates the host could not provide a drawing context.
	ErrNoSurface = errors.New("field: drawing surface unavailable")

	// ErrTooManyParticles indicates a particle count above MaxParticles.
	ErrTooManyParticles = errors.New("field: particle count exceeds limit")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("field: parameter out of valid bounds")
)
