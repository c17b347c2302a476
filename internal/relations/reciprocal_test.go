package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geula-list/registry/internal/models"
)

func TestResolveReverse(t *testing.T) {
	cases := []struct {
		base string
		sex  string
		want string
	}{
		{"child", models.SexMale, "son"},
		{"child", models.SexFemale, "daughter"},
		{"parent", models.SexMale, "father"},
		{"parent", models.SexFemale, "mother"},
		{"sibling", models.SexMale, "brother"},
		{"sibling", models.SexFemale, "sister"},
		{"grandchild", models.SexMale, "grandson"},
		{"grandchild", models.SexFemale, "granddaughter"},
		{"grandparent", models.SexMale, "grandfather"},
		{"grandparent", models.SexFemale, "grandmother"},
		{"nephew", models.SexMale, "nephew"},
		{"nephew", models.SexFemale, "niece"},
		{"niece", models.SexMale, "nephew"},
		{"niece", models.SexFemale, "niece"},
		{"uncle", models.SexMale, "uncle"},
		{"uncle", models.SexFemale, "aunt"},
		{"aunt", models.SexMale, "uncle"},
		{"aunt", models.SexFemale, "aunt"},
		{"cousin", models.SexMale, "cousin_male"},
		{"cousin", models.SexFemale, "cousin_female"},
		// already-concrete symbols pass through
		{"wife", models.SexMale, "wife"},
		{"husband", models.SexFemale, "husband"},
	}
	for _, tc := range cases {
		got := ResolveReverse(tc.base, true, tc.sex)
		assert.Equal(t, tc.want, got, "base %q sex %q", tc.base, tc.sex)
	}
}

func TestResolveReverse_UnsetSexIsDeterministic(t *testing.T) {
	// Unknown sex resolves to the female branch, always.
	assert.Equal(t, "daughter", ResolveReverse("child", true, ""))
	assert.Equal(t, "mother", ResolveReverse("parent", true, ""))
	assert.Equal(t, ResolveReverse("sibling", true, ""), ResolveReverse("sibling", true, ""))
}

func TestResolveReverse_NotGenderSpecific(t *testing.T) {
	assert.Equal(t, "child", ResolveReverse("child", false, models.SexMale))
}

// TestCatalogRoundTripClosure walks every seeded type: resolving its reverse
// for both sexes must land on another seeded symbol whose own declared
// reverse resolves back into the starting symbol's gender-pair family.
func TestCatalogRoundTripClosure(t *testing.T) {
	byType := map[string]models.RelationType{}
	for _, rt := range catalogSeed {
		byType[rt.Type] = rt
	}

	// gender-pair families keyed by each member symbol
	family := map[string][]string{
		"son": {"son", "daughter"}, "daughter": {"son", "daughter"},
		"father": {"father", "mother"}, "mother": {"father", "mother"},
		"brother": {"brother", "sister"}, "sister": {"brother", "sister"},
		"grandson": {"grandson", "granddaughter"}, "granddaughter": {"grandson", "granddaughter"},
		"grandfather": {"grandfather", "grandmother"}, "grandmother": {"grandfather", "grandmother"},
		"uncle": {"uncle", "aunt"}, "aunt": {"uncle", "aunt"},
		"nephew": {"nephew", "niece"}, "niece": {"nephew", "niece"},
		"cousin_male": {"cousin_male", "cousin_female"}, "cousin_female": {"cousin_male", "cousin_female"},
		"husband": {"husband", "wife"}, "wife": {"husband", "wife"},
	}

	for _, rt := range catalogSeed {
		for _, sex := range []string{models.SexMale, models.SexFemale} {
			reverse := ResolveReverse(rt.ReverseType, rt.GenderSpecific, sex)
			reverseEntry, ok := byType[reverse]
			if !ok {
				t.Fatalf("%s (sex %s): resolved reverse %q is not a seeded type", rt.Type, sex, reverse)
			}

			// Coming back: the reverse of the reverse must be able to recover
			// a symbol from the original type's gender-pair family.
			recovered := false
			for _, backSex := range []string{models.SexMale, models.SexFemale} {
				back := ResolveReverse(reverseEntry.ReverseType, reverseEntry.GenderSpecific, backSex)
				for _, member := range family[rt.Type] {
					if back == member {
						recovered = true
					}
				}
			}
			if !recovered {
				t.Errorf("%s -> %s: no sex-resolution of %s's reverse (%s) recovers the %v family",
					rt.Type, reverse, reverse, reverseEntry.ReverseType, family[rt.Type])
			}
		}
	}
}

func TestReverseCandidates(t *testing.T) {
	rt := models.RelationType{Type: "father", ReverseType: "child", GenderSpecific: true}
	got := reverseCandidates(&rt)
	assert.ElementsMatch(t, []string{"child", "son", "daughter"}, got)

	noReverse := models.RelationType{Type: "odd"}
	assert.Nil(t, reverseCandidates(&noReverse))
}
