package domain

import "errors"

// Error taxonomy shared across the pipeline. Every user-triggered action
// resolves to one of these (or nil) at the point of invocation.
var (
	// ErrMissingCredential is returned when generation is attempted without an API key.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrGenerationFailed is returned for any failure of the remote model call.
	// Invalid keys, exhausted quota and network errors are deliberately not distinguished.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUnsupportedFileType is returned when an uploaded file is neither plain text nor CSV.
	ErrUnsupportedFileType = errors.New("Unsupported file type") //nolint:staticcheck

	// ErrClipboardFailed is returned when the system clipboard rejects a write.
	// It is logged, never displayed.
	ErrClipboardFailed = errors.New("clipboard write failed")

	// ErrInvalidModelTier is returned when a model tier name is not recognised.
	ErrInvalidModelTier = errors.New("invalid model tier")

	// ErrEmptyCardSide is returned when a flashcard front or back is blank after trimming.
	ErrEmptyCardSide = errors.New("flashcard front and back must be non-empty")
)

// User-facing messages. These are the only strings ever displayed for errors.
const (
	MsgMissingCredential   = "Please enter your Gemini API key"
	MsgGenerationFailed    = "Error processing text. Please check your API key and try again."
	MsgUnsupportedFileType = "Unsupported file type"
	MsgUnexpected          = "An unexpected error occurred"
)

// UserMessage maps an error to the single message shown to the user.
// Returns an empty string for a nil error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return MsgMissingCredential
	case errors.Is(err, ErrGenerationFailed):
		return MsgGenerationFailed
	case errors.Is(err, ErrUnsupportedFileType):
		return MsgUnsupportedFileType
	default:
		return MsgUnexpected
	}
}
