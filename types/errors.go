package types

import "errors"

// Error taxonomy of the AI pipeline. Callers classify with errors.Is.
var (
	// ErrUpstreamUnavailable: the completion service cannot be reached or timed out.
	ErrUpstreamUnavailable = errors.New("completion service unavailable")

	// ErrMalformedCompletion: the service responded but output failed to parse.
	ErrMalformedCompletion = errors.New("malformed completion output")

	// ErrIncompleteAnalysis: output parsed but structure/tone are missing.
	ErrIncompleteAnalysis = errors.New("incomplete style analysis")

	// ErrInvalidInput: caller supplied empty/missing required fields. Raised
	// before any external call is made.
	ErrInvalidInput = errors.New("invalid input")
)
