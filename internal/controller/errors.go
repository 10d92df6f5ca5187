package controller

// Kind classifies a controller error so that views and tests can branch
// on category instead of message text.
type Kind int

const (
	// KindValidation marks locally detectable input problems. These are
	// normally caught in the intake view and never reach the controller.
	KindValidation Kind = iota

	// KindGeneration marks any failure of the generation client.
	KindGeneration

	// KindPersistence marks snapshot read/write/decode failures.
	KindPersistence

	// KindInvariant marks a state reached with missing required data.
	// Invariant errors are repaired by a forced reset and are never
	// surfaced as a banner.
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindGeneration:
		return "generation"
	case KindPersistence:
		return "persistence"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is the structured error surfaced through the application's
// single error banner slot. Message is user-facing; Err carries the
// underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func generationErr(msg string, cause error) *Error {
	return &Error{Kind: KindGeneration, Message: msg, Err: cause}
}

func persistenceErr(msg string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: cause}
}
