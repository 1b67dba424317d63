// Package scoring turns the collected evidence into four bounded scores.
//
// Every function is pure: the current time is passed in, and nothing is
// looked up. Each score lists the rules that fired as human-readable
// factors in evaluation order.
//
//   - Quality: how established and reputable the address looks (higher is better)
//   - Professional: how likely the address is a professional identity
//   - SecurityRisk: qualitative exposure flags; the level only escalates
//   - SocialVisibility: how many platforms expose a profile
package scoring
