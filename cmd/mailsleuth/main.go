// Package main provides the entry point for the mailsleuth CLI.
//
// mailsleuth investigates a single email address: it guesses names and
// usernames from the local part, checks which platforms have a matching
// profile, looks up the registration and mail-security records of the domain,
// and scores the result.
//
// Usage:
//
//	mailsleuth investigate <email>
//
// See --help for all available options.
package main

// main is the entry point for mailsleuth.
func main() {
	Execute()
}
