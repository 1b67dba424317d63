// Package identity derives name fragments, a birth-year guess and username
// variants from the local part of an email address.
//
// Everything here is pure: no network access, no clock, no randomness.
package identity
