package relations

import "github.com/geula-list/registry/internal/models"

// ResolveReverse turns a catalog base symbol ("child", "parent", ...) into
// the concrete reverse-relation symbol for a target of the given sex.
//
// The sex is always the sex of the person the forward edge points at: the
// reverse edge is owned by that person, and its symbol names the role they
// hold toward the original owner ("father" from A to B means A is B's
// father, so the reverse names B's role, son or daughter, by B's sex).
// The original system resolved this at several call sites with conflicting
// choices of whose sex to use; it is done once here.
//
// An unset sex resolves to the female branch, matching the seed data's
// default. Base symbols without a sex-qualified pair pass through unchanged
// (e.g. "wife" is already concrete).
func ResolveReverse(base string, genderSpecific bool, targetSex string) string {
	if !genderSpecific {
		return base
	}
	male := targetSex == models.SexMale
	switch base {
	case "child":
		if male {
			return "son"
		}
		return "daughter"
	case "parent":
		if male {
			return "father"
		}
		return "mother"
	case "sibling":
		if male {
			return "brother"
		}
		return "sister"
	case "grandchild":
		if male {
			return "grandson"
		}
		return "granddaughter"
	case "grandparent":
		if male {
			return "grandfather"
		}
		return "grandmother"
	case "nephew", "niece":
		if male {
			return "nephew"
		}
		return "niece"
	case "uncle", "aunt":
		if male {
			return "uncle"
		}
		return "aunt"
	case "cousin":
		if male {
			return "cousin_male"
		}
		return "cousin_female"
	}
	return base
}

// reverseCandidates lists every concrete symbol the stored reverse edge of a
// relation of type t could carry. Reverse edges are "weak" (found by a
// swapped-ids lookup, never by a stored back-reference), so deletion has to
// match any sex-resolution of the declared reciprocal.
func reverseCandidates(t *models.RelationType) []string {
	if t.ReverseType == "" {
		return nil
	}
	set := map[string]bool{t.ReverseType: true}
	set[ResolveReverse(t.ReverseType, t.GenderSpecific, models.SexMale)] = true
	set[ResolveReverse(t.ReverseType, t.GenderSpecific, models.SexFemale)] = true
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
