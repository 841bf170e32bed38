package domain

import "fmt"

// Query parameter bounds. Validation happens before any external call.
const (
	// MaxQueryLength is the maximum accepted question length in characters.
	MaxQueryLength = 1000

	// MinChunksPerQuery and MaxChunksPerQuery bound the number of
	// grounding chunks a query may request.
	MinChunksPerQuery = 1
	MaxChunksPerQuery = 10

	// MinTemperature and MaxTemperature bound the generation temperature.
	MinTemperature = 0.0
	MaxTemperature = 1.0
)

// Validation error codes, stable and machine-readable.
const (
	// CodeQueryTooLong is returned when the question exceeds MaxQueryLength.
	CodeQueryTooLong = "QUERY_TOO_LONG"

	// CodeEmptyQuery is returned when the question is blank.
	CodeEmptyQuery = "EMPTY_QUERY"

	// CodeInvalidParameter is returned when a numeric parameter is out of range.
	CodeInvalidParameter = "INVALID_PARAMETER_VALUE"
)

// ValidationError is a structured, user-facing rejection of a query.
type ValidationError struct {
	// Code is the machine-readable error code.
	Code string

	// Message is a human-readable description.
	Message string

	// Parameter names the offending field, when applicable.
	Parameter string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Parameter != "" {
		return fmt.Sprintf("%s: %s (parameter %q)", e.Code, e.Message, e.Parameter)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Query is a question together with its retrieval parameters.
// Queries are transient; they are validated before use and never persisted.
type Query struct {
	// Text is the natural-language question.
	Text string

	// MaxChunks is the number of grounding chunks to retrieve (1-10).
	MaxChunks int

	// Temperature controls generation randomness (0.0-1.0).
	Temperature float64

	// IncludeSources requests source citations on the answer.
	IncludeSources bool
}

// NewQuery returns a query with the default retrieval parameters.
func NewQuery(text string) Query {
	return Query{
		Text:           text,
		MaxChunks:      5,
		Temperature:    0.1,
		IncludeSources: true,
	}
}

// Validate checks the query against the parameter bounds.
// It returns a *ValidationError describing the first violation, or nil.
func (q Query) Validate() error {
	if q.Text == "" {
		return &ValidationError{
			Code:      CodeEmptyQuery,
			Message:   "query must not be empty",
			Parameter: "query",
		}
	}
	if len(q.Text) > MaxQueryLength {
		return &ValidationError{
			Code: CodeQueryTooLong,
			Message: fmt.Sprintf("query exceeds maximum length of %d characters (got %d)",
				MaxQueryLength, len(q.Text)),
			Parameter: "query",
		}
	}
	if q.MaxChunks < MinChunksPerQuery || q.MaxChunks > MaxChunksPerQuery {
		return &ValidationError{
			Code: CodeInvalidParameter,
			Message: fmt.Sprintf("max_chunks must be between %d and %d (got %d)",
				MinChunksPerQuery, MaxChunksPerQuery, q.MaxChunks),
			Parameter: "max_chunks",
		}
	}
	if q.Temperature < MinTemperature || q.Temperature > MaxTemperature {
		return &ValidationError{
			Code: CodeInvalidParameter,
			Message: fmt.Sprintf("temperature must be between %.1f and %.1f (got %g)",
				MinTemperature, MaxTemperature, q.Temperature),
			Parameter: "temperature",
		}
	}
	return nil
}
