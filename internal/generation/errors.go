package generation

import "errors"

// Provider-level errors. They are wrapped into domain.ErrGenerationFailed
// before reaching callers of Generator, but remain visible to errors.Is.
var (
	// ErrInvalidResponse is returned when the model response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
