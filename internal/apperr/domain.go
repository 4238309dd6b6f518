package apperr

var (
	ErrUnauthenticated = Unauthenticated("authentication required")
	ErrMissingEmail    = Unauthenticated("authenticated principal has no email")

	ErrChallengeNotFound = NotFound("challenge not found")
	ErrUpdateNotFound    = NotFound("update not found")

	ErrNotChallengeAuthor = Forbidden("only the challenge author can do this")
	ErrNotUpdateAuthor    = Forbidden("only the update author can do this")

	ErrTitleRequired   = InvalidArg("title cannot be empty")
	ErrContentRequired = InvalidArg("update text cannot be empty")
	ErrCountryRequired = InvalidArg("country parameter is required")
)

// Persistence wraps an infrastructure-level database failure.
func Persistence(cause error) error {
	return Wrap(CodeInternal, "persistence failure", cause)
}
