// README: Conversation history as sent by the chat front end.
package types

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "ai"
)

// ChatMessage is one prior turn. Data is only present on assistant turns that
// carried a structured planning result.
type ChatMessage struct {
	Type    MessageRole  `json:"type"`
	Content string       `json:"content"`
	Data    *MessageData `json:"data,omitempty"`
}

type MessageData struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	POIs        []PoiResult `json:"pois,omitempty"`
}

// HasPlan reports whether the turn produced at least one map marker.
func (m ChatMessage) HasPlan() bool {
	return m.Type == RoleAssistant && m.Data != nil && len(m.Data.POIs) > 0
}
