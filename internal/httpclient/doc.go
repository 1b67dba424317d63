// Package httpclient provides the HTTP fetch collaborator used for profile
// probing and API lookups.
//
// A Client sends a single bounded GET per call with a fixed browser-like
// User-Agent. It can route traffic through a SOCKS5 proxy, caps the response
// body size, decodes non-UTF-8 pages and optionally throttles outgoing
// requests. It never retries.
package httpclient
