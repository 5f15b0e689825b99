package plan

import "errors"

// Domain errors for meal plan operations

var (
	// ErrPlanNotFound signals a lookup for an identifier that is not
	// stored.
	ErrPlanNotFound = errors.New("meal plan not found")

	// ErrNoCompletion collapses every transient model failure (network,
	// timeout, bad status, malformed response, empty content) into a
	// single "no usable draft" signal. Caller cancellation is never
	// wrapped in it.
	ErrNoCompletion = errors.New("no usable model completion")

	// ErrMissingAPIKey is a fatal configuration error raised before any
	// request is attempted.
	ErrMissingAPIKey = errors.New("OpenRouter API key is missing: set openrouter.api_key or OPENROUTER_API_KEY")
)
