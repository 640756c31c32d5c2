package ai

import "tripscope/internal/types"

// RegionResult captures the structured output of a region extraction call.
type RegionResult struct {
	// Name is the destination as the model wrote it (杭州, 河南省, ...).
	Name string `json:"name"`

	// Level is "city" or "province". Anything else is rejected by the caller.
	Level string `json:"level"`
}

// PlanRequest carries everything the itinerary call needs.
type PlanRequest struct {
	// Prompt is the user's current message.
	Prompt string

	// Scope is the resolved destination; empty when unknown.
	Scope string

	// History is the prior conversation, oldest first.
	History []types.ChatMessage
}
