package content

import (
	"context"

	"github.com/nao1215/mailsleuth/internal/model"
)

// Analyzer infers sentiment and named entities for a piece of text.
type Analyzer interface {
	// Sentiment returns a label such as POSITIVE, NEGATIVE or NEUTRAL with a
	// confidence between 0 and 1.
	Sentiment(ctx context.Context, text string) (model.Sentiment, error)

	// Entities returns the person and organization names found in text.
	Entities(ctx context.Context, text string) ([]string, error)
}

// NopAnalyzer is the Analyzer used when no inference backend is configured.
type NopAnalyzer struct{}

// Sentiment always returns the UNKNOWN placeholder.
func (NopAnalyzer) Sentiment(_ context.Context, _ string) (model.Sentiment, error) {
	return model.UnknownSentiment(), nil
}

// Entities always returns nil.
func (NopAnalyzer) Entities(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}
