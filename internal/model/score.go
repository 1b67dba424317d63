package model

// ScoreResult is one bounded score with the rules that produced it.
type ScoreResult struct {
	// Score is clamped to [0, 100].
	Score int `json:"score"`

	// Points keeps the unrounded value for scores built from fractional
	// increments (social visibility adds 12.5 per platform).
	Points float64 `json:"points,omitempty"`

	Level Level `json:"level"`

	// Factors lists one entry per rule that fired, in evaluation order.
	Factors []string `json:"factors"`

	Recommendations []string `json:"recommendations,omitempty"`
}

// Scores groups the four independent scores of an investigation.
//
// Quality is the score the original tool called "reputation": higher means the
// address looks more established and reputable, not more risky.
type Scores struct {
	Quality          *ScoreResult `json:"quality"`
	Professional     *ScoreResult `json:"professional"`
	SecurityRisk     *ScoreResult `json:"security_risk"`
	SocialVisibility *ScoreResult `json:"social_visibility"`
}

// Complete reports whether all four scores are present.
func (s Scores) Complete() bool {
	return s.Quality != nil && s.Professional != nil &&
		s.SecurityRisk != nil && s.SocialVisibility != nil
}
