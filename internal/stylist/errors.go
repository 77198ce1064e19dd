package stylist

import (
	"errors"
	"fmt"
)

// Orchestrator errors. All AI-facing failures surface to the immediate
// caller as typed errors; the orchestrator never retries on its own.
var (
	// ErrAIService wraps transport or service failures from the AI
	// capability, carrying the underlying cause.
	ErrAIService = errors.New("AI service failure")

	// ErrInsufficientInput is returned before any AI call when a
	// recommendation precondition is not met.
	ErrInsufficientInput = errors.New("insufficient input for recommendations")

	// ErrEmptyRecommendation is returned when the model produced no usable
	// outfits. Callers may retry with simpler input; the orchestrator does not.
	ErrEmptyRecommendation = errors.New("no outfit recommendations returned")

	// ErrAnalysisIncomplete is returned when an item analysis response
	// failed the required-field contract. It wraps the underlying
	// SchemaError naming the offending field.
	ErrAnalysisIncomplete = errors.New("item analysis incomplete")
)

// SchemaError reports the first field of an AI response that was missing or
// outside its declared value set.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}
