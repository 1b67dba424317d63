// Package model defines the core data structures used throughout mailsleuth.
//
// This package contains the following main types:
//   - EmailIdentity: name fragments and birth year guessed from an address
//   - CandidateURL / PlatformCandidates: profile URLs to probe per platform
//   - ProbeResult: the outcome of probing one platform
//   - DomainProfile: registration and mail-security records of a domain
//   - ScoreResult / Scores: the four bounded scores
//   - InvestigationReport: the immutable result of one investigation
//
// Models live in their own package so that identity, probe, domaintrust,
// scoring and report can share them without import cycles. All types are
// serializable to JSON for the report file.
package model
