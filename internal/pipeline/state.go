package pipeline

import (
	"time"

	"github.com/nao1215/mailsleuth/internal/model"
)

// State is what the steps of one investigation share.
//
// Steps placed in the same Parallel group must write disjoint fields.
type State struct {
	// Email is the address under investigation, as given by the user.
	Email string

	Identity     model.EmailIdentity
	NameAnalysis model.NameAnalysis
	ManualChecks []model.ManualCheck

	// Candidates are the URLs to probe, one group per platform.
	Candidates []model.PlatformCandidates

	Probes         []model.ProbeResult
	GitHubAccounts []string
	Domain         model.DomainProfile
	Scores         model.Scores

	// Report is set by the report step.
	Report *model.InvestigationReport

	// PerformedSteps lists the steps that have finished, in order.
	PerformedSteps []string

	// Started is when the investigation began.
	Started time.Time

	// Canceled is set when the context ended before all steps ran.
	Canceled bool

	// Err is the last critical step error.
	Err error
}

// NewState creates the state for investigating email.
func NewState(email string) *State {
	return &State{
		Email:          email,
		PerformedSteps: make([]string, 0),
		Started:        time.Now(),
	}
}
