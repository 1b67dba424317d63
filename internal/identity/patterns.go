package identity

import (
	"regexp"
	"strings"

	"github.com/nao1215/mailsleuth/internal/model"
)

var alphabetic = regexp.MustCompile(`^[a-zA-Z]+$`)

// Pattern descriptions reported by AnalyzeNamePatterns.
const (
	PatternDots        = "Contains dots (possible name separator)"
	PatternNumbers     = "Contains numbers"
	PatternUnderscores = "Contains underscores"
)

// AnalyzeNamePatterns looks at the '.'-separated parts of localPart.
// Parts that are purely alphabetic and longer than two characters are
// reported as possible names.
func AnalyzeNamePatterns(localPart string) model.NameAnalysis {
	analysis := model.NameAnalysis{
		PossibleNames: make([]string, 0),
		Patterns:      make([]string, 0),
	}

	for _, part := range strings.Split(localPart, ".") {
		if len(part) > 2 && alphabetic.MatchString(part) {
			analysis.PossibleNames = append(analysis.PossibleNames, capitalize(part))
		}
	}

	if strings.Contains(localPart, ".") {
		analysis.Patterns = append(analysis.Patterns, PatternDots)
	}
	if strings.ContainsAny(localPart, "0123456789") {
		analysis.Patterns = append(analysis.Patterns, PatternNumbers)
	}
	if strings.Contains(localPart, "_") {
		analysis.Patterns = append(analysis.Patterns, PatternUnderscores)
	}
	return analysis
}
