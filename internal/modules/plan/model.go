// README: Plan draft produced from an itinerary response, plus the conversation facts the parser needs.
package plan

import "tripscope/internal/types"

// MaxKeywords caps how many places one plan may search for.
const MaxKeywords = 15

// Draft is the parsed form of one itinerary response. An empty Keywords
// slice means no new place search is needed.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords"`
	FollowUp    bool     `json:"followUp"`
}

// Conversation is the request context the parser classifies against.
type Conversation struct {
	// Prompt is the user's current message.
	Prompt  string
	History []types.ChatMessage
}

// IsFirstTurn reports whether there is no prior conversation.
func (c Conversation) IsFirstTurn() bool {
	return len(c.History) == 0
}

// HasPreviousPlan reports whether an earlier answer placed markers on the map.
func (c Conversation) HasPreviousPlan() bool {
	for _, msg := range c.History {
		if msg.Type == types.RoleAssistant && msg.HasPlan() {
			return true
		}
	}
	return false
}
