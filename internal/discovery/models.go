package discovery

// SearchParams carries everything a single search call needs beyond the
// process-wide project/location baked into the client. SummaryModel and
// SummaryPreamble distinguish "unset" (nil) from "set to empty" — the API
// interprets absence itself.
type SearchParams struct {
	EngineID        string
	Query           string
	PageSize        int
	SummaryModel    *string
	SummaryPreamble *string
}

// SearchCallResult is the full return of one search call, including the raw
// request/response payloads kept for the diagnostics panel in the UI.
type SearchCallResult struct {
	Results     []Result
	Summary     string
	RequestURL  string
	RawRequest  string
	RawResponse string
}

type Result struct {
	ID       string   `json:"id"`
	Document Document `json:"document"`
}

type Document struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	StructData        map[string]any `json:"structData,omitempty"`
	DerivedStructData map[string]any `json:"derivedStructData,omitempty"`
}

// Wire types for the serving config :search call.

type searchRequest struct {
	Query             string             `json:"query"`
	PageSize          int                `json:"pageSize,omitempty"`
	ContentSearchSpec *contentSearchSpec `json:"contentSearchSpec,omitempty"`
}

type contentSearchSpec struct {
	SnippetSpec *snippetSpec `json:"snippetSpec,omitempty"`
	SummarySpec *summarySpec `json:"summarySpec,omitempty"`
}

type snippetSpec struct {
	ReturnSnippet bool `json:"returnSnippet"`
}

type summarySpec struct {
	SummaryResultCount int              `json:"summaryResultCount,omitempty"`
	ModelSpec          *modelSpec       `json:"modelSpec,omitempty"`
	ModelPromptSpec    *modelPromptSpec `json:"modelPromptSpec,omitempty"`
}

type modelSpec struct {
	Version string `json:"version"`
}

type modelPromptSpec struct {
	Preamble string `json:"preamble"`
}

type searchResponse struct {
	Results   []Result `json:"results"`
	TotalSize int      `json:"totalSize"`
	Summary   *struct {
		SummaryText string `json:"summaryText"`
	} `json:"summary,omitempty"`
}

type listDocumentsResponse struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

// apiError mirrors the standard Google API error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
