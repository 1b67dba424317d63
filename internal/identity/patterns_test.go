package identity

import (
	"reflect"
	"testing"
)

func TestAnalyzeNamePatterns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		localPart    string
		wantNames    []string
		wantPatterns []string
	}{
		{
			name:         "dotted name",
			localPart:    "john.doe",
			wantNames:    []string{"John", "Doe"},
			wantPatterns: []string{PatternDots},
		},
		{
			name:         "short and numeric parts are not names",
			localPart:    "jo.doe2019",
			wantNames:    []string{},
			wantPatterns: []string{PatternDots, PatternNumbers},
		},
		{
			name:         "underscored handle",
			localPart:    "cool_coder",
			wantNames:    []string{},
			wantPatterns: []string{PatternUnderscores},
		},
		{
			name:         "plain name",
			localPart:    "alice",
			wantNames:    []string{"Alice"},
			wantPatterns: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := AnalyzeNamePatterns(tc.localPart)
			if !reflect.DeepEqual(got.PossibleNames, tc.wantNames) {
				t.Errorf("names = %v, expected %v", got.PossibleNames, tc.wantNames)
			}
			if !reflect.DeepEqual(got.Patterns, tc.wantPatterns) {
				t.Errorf("patterns = %v, expected %v", got.Patterns, tc.wantPatterns)
			}
		})
	}
}
