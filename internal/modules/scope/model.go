// README: Scope resolution result and the clarification states it drives.
package scope

import "tripscope/internal/modules/region"

type State string

const (
	// StateGeneral means no destination was found anywhere.
	StateGeneral State = "general"
	// StateProvince means only a province is known and a city must be picked.
	StateProvince State = "province"
	// StateResolved means a city-level scope is available for planning.
	StateResolved State = "resolved"
)

// Suggestion is a destination the user can pick. Prompt is meant to be
// resubmitted verbatim as the next request.
type Suggestion struct {
	Label  string `json:"label"`
	Reason string `json:"reason,omitempty"`
	Prompt string `json:"prompt"`
}

// Resolution is the outcome of one Resolve call.
type Resolution struct {
	State State `json:"state"`

	// Scope is the chosen candidate; zero when State is StateGeneral.
	Scope region.Match `json:"scope"`

	// SearchCity is the bare city name used to constrain place searches.
	SearchCity string `json:"searchCity,omitempty"`

	// DisplayName is the span as the user wrote it.
	DisplayName string `json:"displayName,omitempty"`

	Candidates  []region.Match `json:"candidates"`
	Message     string         `json:"message,omitempty"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
}

// NeedsClarification reports whether planning must wait for the user.
func (r Resolution) NeedsClarification() bool {
	return r.State != StateResolved
}
