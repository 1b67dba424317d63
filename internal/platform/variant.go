package platform

import (
	"github.com/nao1215/mailsleuth/internal/identity"
	"github.com/nao1215/mailsleuth/internal/model"
)

// Variant selects which username form a template is filled with.
type Variant int

const (
	// VariantRaw is the local part exactly as written.
	VariantRaw Variant = iota
	// VariantHyphen is first-last.
	VariantHyphen
	// VariantUnderscore is first_last.
	VariantUnderscore
	// VariantConcat is firstlast.
	VariantConcat
	// VariantDot is first.last.
	VariantDot
	// VariantAllHyphen joins every fragment with '-'.
	VariantAllHyphen
	// VariantAllDot joins every fragment with '.'.
	VariantAllDot
)

// NeedsFullName reports whether the variant requires a last-name fragment.
func (v Variant) NeedsFullName() bool {
	return v != VariantRaw
}

// Username renders the variant for id. The boolean is false when the
// variant cannot be built, e.g. a name combination for a single fragment.
// Name combinations are the ones identity.UsernameVariants ranks.
func (v Variant) Username(id model.EmailIdentity) (string, bool) {
	if !v.NeedsFullName() {
		return id.LocalPart, id.LocalPart != ""
	}

	switch v {
	case VariantHyphen:
		return identity.NameCombination(id, "-")
	case VariantUnderscore:
		return identity.NameCombination(id, "_")
	case VariantConcat:
		return identity.NameCombination(id, "")
	case VariantDot:
		return identity.NameCombination(id, ".")
	case VariantAllHyphen:
		return identity.JoinedFragments(id, "-")
	case VariantAllDot:
		return identity.JoinedFragments(id, ".")
	default:
		return "", false
	}
}
