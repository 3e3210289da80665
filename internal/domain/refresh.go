package domain

type FetchStatus string

const (
	FetchSuccess FetchStatus = "success"
	FetchPartial FetchStatus = "partial"
	FetchError   FetchStatus = "error"
)

// SourceOutcome records how one source's fetch went.
type SourceOutcome struct {
	Source  Source      `json:"source"`
	Status  FetchStatus `json:"status"`
	Fetched int         `json:"fetched"`
	Error   string      `json:"error,omitempty"`
}

type RefreshReport struct {
	Sources map[Source]SourceOutcome `json:"sources"`
	Fetched int                      `json:"total_fetched"`
	Unique  int                      `json:"unique"`
	Saved   int                      `json:"saved"`
	Updated int                      `json:"updated"`
}
