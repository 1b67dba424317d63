package model

// ProbeResult is the outcome of probing every candidate of one platform.
//
// Invariant: Found implies MatchedURL is set and Error is nil.
type ProbeResult struct {
	Platform Platform `json:"platform"`
	Found    bool     `json:"found"`

	// MatchedURL is the first candidate that looked like a real profile.
	MatchedURL string `json:"matched_url,omitempty"`

	// PageTitle is the <title> of the matched page.
	PageTitle string `json:"page_title,omitempty"`

	// ExtractedFields holds platform-specific details such as bio,
	// followers or repository count. Best effort; may be empty.
	ExtractedFields map[string]string `json:"extracted_fields,omitempty"`

	// Error is the last failure seen while probing, when nothing matched.
	Error *ProbeError `json:"error,omitempty"`

	// CandidatesTried is the number of candidates requested before stopping.
	CandidatesTried int `json:"candidates_tried"`

	// Sentiment, Keywords and Entities annotate the matched page text.
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Keywords  []string   `json:"keywords,omitempty"`
	Entities  []string   `json:"entities,omitempty"`

	// LinkedProfiles are accounts on other networks that the matched page
	// links to.
	LinkedProfiles []LinkedProfile `json:"linked_profiles,omitempty"`
}

// LinkedProfile is an outbound link from a profile page to another account.
type LinkedProfile struct {
	Network string `json:"network"`
	Handle  string `json:"handle"`
	URL     string `json:"url"`
}

// Sentiment is a label and confidence produced for a piece of text.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentUnknown is the placeholder used whenever inference fails.
const SentimentUnknown = "UNKNOWN"

// UnknownSentiment returns the neutral placeholder sentiment.
func UnknownSentiment() Sentiment {
	return Sentiment{Label: SentimentUnknown, Score: 0}
}

// NotFound returns a negative result for platform, annotated with err.
func NotFound(platform Platform, err error) ProbeResult {
	return ProbeResult{
		Platform: platform,
		Found:    false,
		Error:    NewProbeError(err),
	}
}

// CountFound returns how many results have Found set.
func CountFound(results []ProbeResult) int {
	n := 0
	for _, r := range results {
		if r.Found {
			n++
		}
	}
	return n
}
