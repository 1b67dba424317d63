package model

// EmailIdentity holds what can be guessed about a person from their email
// address alone. It is built once per investigation and never modified.
type EmailIdentity struct {
	// Email is the address as given on the command line.
	Email string `json:"email"`

	// LocalPart is the portion before '@'. It is also the raw username.
	LocalPart string `json:"local_part"`

	// Domain is the portion after '@', lower-cased.
	Domain string `json:"domain"`

	// NameFragments are the capitalized name parts in local-part order.
	NameFragments []string `json:"name_fragments"`

	// PossibleBirthYear is a 19xx/20xx substring found in the local part.
	// Empty when none was found.
	PossibleBirthYear string `json:"possible_birth_year,omitempty"`

	// PossibleName is assembled from NameFragments. Nil when there are none.
	PossibleName *PossibleName `json:"possible_name,omitempty"`
}

// PossibleName is a first/last/full name guess.
type PossibleName struct {
	First string `json:"first"`
	// Last is empty when only one fragment exists.
	Last string `json:"last,omitempty"`
	Full string `json:"full"`
}

// HasFullName reports whether both a first and a last fragment exist.
func (id EmailIdentity) HasFullName() bool {
	return len(id.NameFragments) > 1
}

// First returns the first name fragment or "".
func (id EmailIdentity) First() string {
	if len(id.NameFragments) == 0 {
		return ""
	}
	return id.NameFragments[0]
}

// Last returns the last name fragment, or "" when only one fragment exists.
func (id EmailIdentity) Last() string {
	if len(id.NameFragments) < 2 {
		return ""
	}
	return id.NameFragments[len(id.NameFragments)-1]
}

// NameAnalysis is the result of looking at the '.'-separated parts of the
// local part for name-like tokens.
type NameAnalysis struct {
	// PossibleNames are alphabetic parts longer than two characters.
	PossibleNames []string `json:"possible_names"`

	// Patterns describe structural traits of the local part.
	Patterns []string `json:"patterns"`
}
