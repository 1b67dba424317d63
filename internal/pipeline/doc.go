// Package pipeline runs an investigation as a sequence of steps.
//
// Each step receives the shared State and fills in its part of it: the
// identity, the candidate URLs, probe results, the domain profile, the scores
// and finally the report. Steps that do not depend on each other are grouped
// with Parallel, which is how platform probing and domain analysis overlap.
//
// Steps record non-critical failures in the State and return nil. A returned
// error means the investigation cannot continue (for example an invalid
// address) and, unless WithContinueOnError is set, stops the pipeline.
package pipeline
