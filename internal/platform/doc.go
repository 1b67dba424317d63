// Package platform holds the static catalog of profile URL templates and
// turns an EmailIdentity into ordered candidate URLs per platform.
//
// The catalog is plain data. Generating candidates performs no I/O and the
// same identity always yields the same candidates in the same order.
package platform
