package model

// CandidateURL is a guessed profile URL that has not been confirmed yet.
type CandidateURL struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`

	// VariantRank orders candidates of the same platform. 0 is the raw
	// username form; higher ranks are derived combinations tried later.
	VariantRank int `json:"variant_rank"`
}

// PlatformCandidates are the candidates of one platform in rank order.
type PlatformCandidates struct {
	Platform   Platform       `json:"platform"`
	Candidates []CandidateURL `json:"candidates"`
}

// ManualCheck is a list of URLs that are reported for a human to open,
// never fetched by the tool itself.
type ManualCheck struct {
	Title string   `json:"title"`
	URLs  []string `json:"urls"`
}
