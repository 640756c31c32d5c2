package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Gemini and OpenAI-compatible endpoints both implement it.
type LLMProvider interface {
	// ExtractRegion asks the model for the single destination named in text.
	// Callers must treat the answer as advisory and validate it.
	ExtractRegion(ctx context.Context, text string) (*RegionResult, error)

	// PlanItinerary returns the raw itinerary text for req. The text follows
	// the marker layout described in planSystemPrompt.
	PlanItinerary(ctx context.Context, req PlanRequest) (string, error)
}
