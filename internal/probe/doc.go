// Package probe checks whether candidate profile URLs exist.
//
// The Orchestrator fans out one task per platform on a bounded errgroup
// pool. Within a platform the candidates are tried one at a time in rank
// order and the first page that looks like a real profile wins; later
// candidates are never requested. Each request gets its own timeout, and a
// failed request only affects the result slot of its own platform.
//
// A page is a positive match when the server answers 200 and the page title
// contains none of the negative markers ("not found", "404", "page doesn't
// exist", "error"). Matched pages go through best-effort field extraction
// with goquery and, when configured, content annotation. Links from a matched
// page to accounts on other networks are recorded as linked profiles.
package probe
