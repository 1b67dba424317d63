// Package content annotates the text of discovered profile pages.
//
// Three things are produced for a page: a sentiment label with a confidence
// score, named entities (people and organizations) and a short list of
// keywords. Sentiment and entities come from an Analyzer; the default
// Analyzer talks to an OpenAI-compatible chat completion endpoint and
// NopAnalyzer is used when no API key is configured. Keywords are computed
// locally.
//
// Annotation never fails: any analyzer error degrades to the UNKNOWN
// sentiment with a score of zero and no entities.
package content
