// Package domaintrust gathers the trust signals of an email domain.
//
// Four independent lookups are made for every domain: WHOIS registration
// data, MX records, TXT records, and the TXT records of _dmarc.<domain>.
// They run concurrently and each one falls back to an empty value on
// failure, so Analyze always returns a profile. Only a WHOIS failure is
// recorded on the profile, because it changes how the domain is scored.
package domaintrust
