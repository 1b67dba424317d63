package model

import "time"

// InvestigationReport is the final, immutable result of one investigation.
// It is assembled once by report.Build and only read afterwards.
type InvestigationReport struct {
	// ID uniquely identifies the report.
	ID string `json:"id"`

	Identity     EmailIdentity `json:"identity"`
	NameAnalysis NameAnalysis  `json:"name_analysis"`

	// Probes holds one result per platform in catalog order.
	Probes []ProbeResult `json:"probes"`

	// GitHubAccounts are logins returned by the GitHub user search API.
	GitHubAccounts []string `json:"github_accounts,omitempty"`

	Domain DomainProfile `json:"domain"`
	Scores Scores        `json:"scores"`

	// ManualChecks are breach and technical-presence URLs for manual review.
	ManualChecks []ManualCheck `json:"manual_checks,omitempty"`

	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata describes the run that produced a report.
type Metadata struct {
	ToolVersion    string `json:"tool_version"`
	DurationMillis int64  `json:"duration_ms"`

	// PerformedSteps lists pipeline steps in execution order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// FoundProbes returns only the results with Found set, in catalog order.
func (r *InvestigationReport) FoundProbes() []ProbeResult {
	found := make([]ProbeResult, 0, len(r.Probes))
	for _, p := range r.Probes {
		if p.Found {
			found = append(found, p)
		}
	}
	return found
}

// Probe returns the result for platform, if any.
func (r *InvestigationReport) Probe(platform Platform) (ProbeResult, bool) {
	for _, p := range r.Probes {
		if p.Platform == platform {
			return p, true
		}
	}
	return ProbeResult{}, false
}
