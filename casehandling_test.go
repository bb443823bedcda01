package divvunspell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaseVariantsLowercase(t *testing.T) {
	require.Equal(t, []string{"cat"}, caseVariants("cat"))
}

func TestCaseVariantsFirstCapital(t *testing.T) {
	require.Equal(t, []string{"Cat", "cat"}, caseVariants("Cat"))
}

func TestCaseVariantsAllCaps(t *testing.T) {
	require.Equal(t, []string{"CAT", "cat", "Cat"}, caseVariants("CAT"))
}

func TestCaseVariantsAllCapsMultiWord(t *testing.T) {
	require.Equal(t, []string{"NEW YORK", "new york", "New York"}, caseVariants("NEW YORK"))
}

func TestCaseVariantsMixedCaseFallsThrough(t *testing.T) {
	require.Equal(t, []string{"caT"}, caseVariants("caT"))
}

func TestCaseVariantsNoLetters(t *testing.T) {
	require.Equal(t, []string{"123"}, caseVariants("123"))
}

func TestRecase(t *testing.T) {
	require.Equal(t, "cat", recase("cat", "cat"))
	require.Equal(t, "Cat", recase("Cat", "cat"))
	require.Equal(t, "CAT", recase("CAT", "cat"))
	require.Equal(t, "cat", recase("caT", "cat"), "mixed case has no recasing rule, passes suggestion through")
}

func TestDispatchCaseSingleVariantUsesFirstNonEmpty(t *testing.T) {
	calls := 0
	search := func(v string) []Candidate {
		calls++
		if v != "cat" {
			return nil
		}
		return []Candidate{{Value: "cat", Weight: 0}}
	}

	out := dispatchCase("cat", CaseStrategyAuto, search)
	require.Len(t, out, 1)
	require.Equal(t, "cat", out[0].Value)
	require.Equal(t, 1, calls, "a single-variant word only searches once")
}

func TestDispatchCaseAutoMergesTwoVariants(t *testing.T) {
	search := func(v string) []Candidate {
		switch v {
		case "Cat":
			return []Candidate{{Value: "cat", Weight: 2}}
		case "cat":
			return []Candidate{{Value: "cat", Weight: 0}, {Value: "cot", Weight: 1}}
		}
		return nil
	}

	out := dispatchCase("Cat", CaseStrategyAuto, search)
	require.Len(t, out, 2)
	require.Equal(t, "Cat", out[0].Value, "lower-weight duplicate wins and is recased against the original")
	require.EqualValues(t, 0, out[0].Weight)
	require.Equal(t, "Cot", out[1].Value)
}

func TestDispatchCaseForcedSingleIgnoresMergingDefault(t *testing.T) {
	search := func(v string) []Candidate {
		switch v {
		case "Cat":
			return []Candidate{{Value: "cat", Weight: 2}}
		case "cat":
			return []Candidate{{Value: "cat", Weight: 0}}
		}
		return nil
	}

	out := dispatchCase("Cat", CaseStrategySingle, search)
	require.Len(t, out, 1)
	require.EqualValues(t, 2, out[0].Weight, "single strategy takes the first variant's result regardless of weight")
}

func TestDispatchCaseNoVariantMatches(t *testing.T) {
	search := func(v string) []Candidate { return nil }
	require.Nil(t, dispatchCase("Cat", CaseStrategyAuto, search))
}
