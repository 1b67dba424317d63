package identity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nao1215/mailsleuth/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// emailShape is the loose local@domain.tld check used at the CLI boundary.
	emailShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

	// birthYear matches a 19xx or 20xx substring.
	birthYear = regexp.MustCompile(`(19|20)\d{2}`)

	// fragmentSeparators split the local part into name fragments.
	fragmentSeparators = regexp.MustCompile(`[._-]`)

	// digitsAndUnderscores are stripped from each fragment.
	digitsAndUnderscores = regexp.MustCompile(`[0-9_]`)
)

// combinationSeparators produce first-last, first_last, firstlast and
// first.last, in rank order.
var combinationSeparators = []string{"-", "_", "", "."}

// lower lower-cases s. A cases.Caser is stateful, so one is made per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// ValidateEmail checks the local@domain.tld shape. It does not attempt full
// RFC 5322 validation.
func ValidateEmail(email string) error {
	if !emailShape.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: invalid email format: %q", model.ErrValidation, email)
	}
	return nil
}

// ParseEmail splits email into its local part and lower-cased domain.
func ParseEmail(email string) (string, string, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return "", "", err
	}
	at := strings.LastIndex(email, "@")
	return email[:at], strings.ToLower(email[at+1:]), nil
}

// Derive builds an EmailIdentity from email.
//
// The local part is split on '.', '_' and '-'. The first 19xx/20xx match
// across fragments becomes the birth-year guess and is removed from its
// fragment; later fragments are not searched. Digits and underscores are then
// stripped and the remainder is capitalized. Empty fragments are dropped.
//
// Derive never fails: an address without '@' is treated as a bare local part.
func Derive(email string) model.EmailIdentity {
	email = strings.TrimSpace(email)
	local, domain := email, ""
	if at := strings.LastIndex(email, "@"); at >= 0 {
		local, domain = email[:at], strings.ToLower(email[at+1:])
	}

	id := model.EmailIdentity{
		Email:         email,
		LocalPart:     local,
		Domain:        domain,
		NameFragments: make([]string, 0),
	}
	if local == "" {
		return id
	}

	for _, part := range fragmentSeparators.Split(local, -1) {
		if id.PossibleBirthYear == "" {
			if year := birthYear.FindString(part); year != "" {
				id.PossibleBirthYear = year
				part = strings.Replace(part, year, "", 1)
			}
		}

		cleaned := digitsAndUnderscores.ReplaceAllString(part, "")
		if cleaned == "" {
			continue
		}
		id.NameFragments = append(id.NameFragments, capitalize(cleaned))
	}

	if len(id.NameFragments) > 0 {
		id.PossibleName = &model.PossibleName{
			First: id.First(),
			Last:  id.Last(),
			Full:  strings.Join(id.NameFragments, " "),
		}
	}
	return id
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + lower(s[size:])
}

// UsernameVariants returns candidate usernames in rank order.
//
// Rank 0 is always the raw local part. With at least two fragments the
// combinations first-last, first_last, firstlast and first.last follow, built
// from the lower-cased first and last fragments. A combination equal to an
// earlier variant is skipped so every variant has a distinct rank.
func UsernameVariants(id model.EmailIdentity) []string {
	variants := make([]string, 0, 5)
	seen := make(map[string]struct{}, 5)
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	add(id.LocalPart)
	if !id.HasFullName() {
		return variants
	}

	for _, sep := range combinationSeparators {
		v, _ := NameCombination(id, sep)
		add(v)
	}
	return variants
}

// NameCombination joins the lower-cased first and last fragments with sep.
// The boolean is false when id has fewer than two fragments.
func NameCombination(id model.EmailIdentity, sep string) (string, bool) {
	if !id.HasFullName() {
		return "", false
	}
	return lower(id.First()) + sep + lower(id.Last()), true
}

// JoinedFragments joins every lower-cased fragment with sep. The boolean is
// false when id has fewer than two fragments.
func JoinedFragments(id model.EmailIdentity, sep string) (string, bool) {
	if !id.HasFullName() {
		return "", false
	}
	parts := make([]string, len(id.NameFragments))
	for i, f := range id.NameFragments {
		parts[i] = lower(f)
	}
	return strings.Join(parts, sep), true
}
