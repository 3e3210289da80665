package domain

// ToolInfo describes a research tool for capability listing.
type ToolInfo struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Available      bool   `json:"available"`
	RequiresAPIKey bool   `json:"requires_api_key"`
}

// ToolOutcome is one tool's variant of the research result union: either
// typed results or an error message.
type ToolOutcome struct {
	Results any    `json:"results,omitempty"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

func (o ToolOutcome) Failed() bool {
	return o.Error != ""
}

type ResearchResponse struct {
	Query    string                 `json:"query"`
	Response string                 `json:"response,omitempty"`
	Sources  map[string]ToolOutcome `json:"sources"`
}

// HasResponse reports whether a synthesized answer is present.
func (r *ResearchResponse) HasResponse() bool {
	return r.Response != ""
}
