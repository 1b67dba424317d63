package identity

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nao1215/mailsleuth/internal/model"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		email         string
		wantFragments []string
		wantYear      string
		wantDomain    string
	}{
		{
			name:          "first.last",
			email:         "john.doe@example.com",
			wantFragments: []string{"John", "Doe"},
			wantDomain:    "example.com",
		},
		{
			name:          "birth year removed from fragment",
			email:         "john.doe2019@example.com",
			wantFragments: []string{"John", "Doe"},
			wantYear:      "2019",
			wantDomain:    "example.com",
		},
		{
			name:          "first year match wins",
			email:         "ann1985.lee1990@example.org",
			wantFragments: []string{"Ann", "Lee"},
			wantYear:      "1985",
			wantDomain:    "example.org",
		},
		{
			name:          "underscore and dash separators",
			email:         "mary_jane-watson@Example.COM",
			wantFragments: []string{"Mary", "Jane", "Watson"},
			wantDomain:    "example.com",
		},
		{
			name:          "digits stripped and case normalized",
			email:         "JOHNNY42@mail.net",
			wantFragments: []string{"Johnny"},
			wantDomain:    "mail.net",
		},
		{
			name:          "numeric-only local part",
			email:         "123456@example.com",
			wantFragments: []string{},
			wantDomain:    "example.com",
		},
		{
			name:          "year outside 19xx/20xx is not a birth year",
			email:         "bob1875@example.com",
			wantFragments: []string{"Bob"},
			wantDomain:    "example.com",
		},
		{
			name:          "missing local part",
			email:         "@example.com",
			wantFragments: []string{},
			wantDomain:    "example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id := Derive(tc.email)

			if !reflect.DeepEqual(id.NameFragments, tc.wantFragments) {
				t.Errorf("fragments = %v, expected %v", id.NameFragments, tc.wantFragments)
			}
			if id.PossibleBirthYear != tc.wantYear {
				t.Errorf("birth year = %q, expected %q", id.PossibleBirthYear, tc.wantYear)
			}
			if id.Domain != tc.wantDomain {
				t.Errorf("domain = %q, expected %q", id.Domain, tc.wantDomain)
			}
		})
	}
}

func TestDerivePossibleName(t *testing.T) {
	t.Parallel()

	t.Run("two fragments", func(t *testing.T) {
		t.Parallel()
		id := Derive("john.doe@example.com")
		want := &model.PossibleName{First: "John", Last: "Doe", Full: "John Doe"}
		if !reflect.DeepEqual(id.PossibleName, want) {
			t.Errorf("possible name = %+v, expected %+v", id.PossibleName, want)
		}
	})

	t.Run("single fragment has no last name", func(t *testing.T) {
		t.Parallel()
		id := Derive("alice@example.com")
		if id.PossibleName == nil {
			t.Fatal("expected a possible name")
		}
		if id.PossibleName.Last != "" {
			t.Errorf("expected empty last name, got %q", id.PossibleName.Last)
		}
		if id.PossibleName.Full != "Alice" {
			t.Errorf("expected full name Alice, got %q", id.PossibleName.Full)
		}
	})

	t.Run("no fragments means no name", func(t *testing.T) {
		t.Parallel()
		if id := Derive("2020@example.com"); id.PossibleName != nil {
			t.Errorf("expected nil possible name, got %+v", id.PossibleName)
		}
	})
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Derive("j.r.r.tolkien1892@example.co.uk")
	b := Derive("j.r.r.tolkien1892@example.co.uk")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Derive is not deterministic: %+v vs %+v", a, b)
	}
}

func TestUsernameVariants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		email    string
		expected []string
	}{
		{
			name:     "full name yields combinations in rank order",
			email:    "john.doe@example.com",
			expected: []string{"john.doe", "john-doe", "john_doe", "johndoe"},
		},
		{
			name:     "birth year local part keeps raw form first",
			email:    "John.Doe2019@example.com",
			expected: []string{"John.Doe2019", "john-doe", "john_doe", "johndoe", "john.doe"},
		},
		{
			name:     "single fragment yields raw only",
			email:    "alice@example.com",
			expected: []string{"alice"},
		},
		{
			name:     "first and last of three fragments",
			email:    "mary.jane.watson@example.com",
			expected: []string{"mary.jane.watson", "mary-watson", "mary_watson", "marywatson", "mary.watson"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := UsernameVariants(Derive(tc.email))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("variants = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestNameCombination(t *testing.T) {
	t.Parallel()

	got, ok := NameCombination(Derive("Mary.Jane.Watson@example.com"), "_")
	if !ok || got != "mary_watson" {
		t.Errorf("NameCombination() = (%q, %v), want (%q, true)", got, ok, "mary_watson")
	}
	if _, ok := NameCombination(Derive("alice@example.com"), "-"); ok {
		t.Error("expected no combination for a single fragment")
	}
}

func TestJoinedFragments(t *testing.T) {
	t.Parallel()

	got, ok := JoinedFragments(Derive("Mary.Jane.Watson@example.com"), "-")
	if !ok || got != "mary-jane-watson" {
		t.Errorf("JoinedFragments() = (%q, %v), want (%q, true)", got, ok, "mary-jane-watson")
	}
	if _, ok := JoinedFragments(Derive("alice@example.com"), "."); ok {
		t.Error("expected no join for a single fragment")
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"john@example.com", "a.b+c@sub.example.co.uk", " padded@example.org "}
	invalid := []string{"", "john", "john@example", "@", "john@@example.com", "a@b@c.com"}

	for _, email := range valid {
		t.Run("valid "+email, func(t *testing.T) {
			t.Parallel()
			if err := ValidateEmail(email); err != nil {
				t.Errorf("expected %q to be valid, got %v", email, err)
			}
		})
	}

	for _, email := range invalid {
		t.Run("invalid "+email, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(email)
			if err == nil {
				t.Fatalf("expected %q to be invalid", email)
			}
			if !errors.Is(err, model.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestParseEmail(t *testing.T) {
	t.Parallel()

	local, domain, err := ParseEmail("John.Doe@Example.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != "John.Doe" {
		t.Errorf("local = %q, expected John.Doe", local)
	}
	if domain != "example.com" {
		t.Errorf("domain = %q, expected example.com", domain)
	}

	if _, _, err := ParseEmail("not-an-email"); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
