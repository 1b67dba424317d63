package model

import (
	"errors"
	"testing"
)

func TestInvestigationReportProbes(t *testing.T) {
	t.Parallel()

	r := &InvestigationReport{
		Probes: []ProbeResult{
			{Platform: PlatformLinkedIn, Found: false},
			{Platform: PlatformGitHub, Found: true, MatchedURL: "https://github.com/jdoe"},
			NotFound(PlatformTwitter, errors.New("connection reset")),
			{Platform: PlatformReddit, Found: true, MatchedURL: "https://www.reddit.com/user/jdoe"},
		},
	}

	t.Run("FoundProbes keeps catalog order", func(t *testing.T) {
		t.Parallel()
		found := r.FoundProbes()
		if len(found) != 2 {
			t.Fatalf("expected 2 found probes, got %d", len(found))
		}
		if found[0].Platform != PlatformGitHub || found[1].Platform != PlatformReddit {
			t.Errorf("unexpected order: %v, %v", found[0].Platform, found[1].Platform)
		}
		if CountFound(r.Probes) != 2 {
			t.Errorf("expected CountFound 2, got %d", CountFound(r.Probes))
		}
	})

	t.Run("Probe looks up by platform", func(t *testing.T) {
		t.Parallel()
		p, ok := r.Probe(PlatformTwitter)
		if !ok {
			t.Fatal("expected twitter result")
		}
		if p.Found || p.Error == nil || p.Error.Kind != ErrorKindNetwork {
			t.Errorf("unexpected twitter result: %+v", p)
		}
		if _, ok := r.Probe(PlatformKaggle); ok {
			t.Error("expected no kaggle result")
		}
	})
}
