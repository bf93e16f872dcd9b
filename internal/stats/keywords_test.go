package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMatch(t *testing.T, expr string, keywords []string, want bool) {
	t.Helper()
	got, err := MatchKeywords(expr, keywords)
	require.NoError(t, err, "expr %q", expr)
	assert.Equal(t, want, got, "MatchKeywords(%q, %v)", expr, keywords)
}

func TestMatchKeywordsEmpty(t *testing.T) {
	assertMatch(t, "", []string{"Blah", "Undead"}, true)
	assertMatch(t, "", nil, true)
	assertMatch(t, "   ", nil, true)
}

func TestMatchKeywordsSimple(t *testing.T) {
	assertMatch(t, "undead", []string{"Blah", "Undead"}, true)
	assertMatch(t, "undead", []string{"Blah", "Construct"}, false)
}

func TestMatchKeywordsPhrase(t *testing.T) {
	assertMatch(t, "flesh golem", []string{"Blah", "Undead"}, false)
	assertMatch(t, "flesh golem", []string{"Blah", "Flesh Golem"}, true)
	assertMatch(t, "flesh golem", []string{"Flesh", "Golem"}, false)
}

func TestMatchKeywordsNot(t *testing.T) {
	assertMatch(t, "not undead", []string{"Blah", "Undead"}, false)
	assertMatch(t, "not undead", []string{"Blah", "Flesh Golem"}, true)
}

func TestMatchKeywordsOr(t *testing.T) {
	expr := "undead or flesh golem"
	assertMatch(t, expr, []string{"Flesh Golem"}, true)
	assertMatch(t, expr, []string{"Undead", "Construct"}, true)
	assertMatch(t, expr, []string{"Construct"}, false)
	assertMatch(t, expr, []string{"Undead", "Flesh Golem"}, true)
}

func TestMatchKeywordsAnd(t *testing.T) {
	expr := "undead and urban"
	assertMatch(t, expr, []string{"Blah", "Undead"}, false)
	assertMatch(t, expr, []string{"Blah", "Urban"}, false)
	assertMatch(t, expr, []string{"Undead", "Urban"}, true)
}

func TestMatchKeywordsPrecedence(t *testing.T) {
	for _, expr := range []string{"thing1 or thing2 and thing3", "thing2 and thing3 or thing1"} {
		t.Run(expr, func(t *testing.T) {
			assertMatch(t, expr, []string{"thing1"}, true)
			assertMatch(t, expr, []string{"thing2", "thing3"}, true)
			assertMatch(t, expr, []string{"thing2"}, false)
			assertMatch(t, expr, []string{"thing3"}, false)
		})
	}
}

func TestMatchKeywordsParens(t *testing.T) {
	expr := "(undead or construct) and urban"
	assertMatch(t, expr, []string{"undead", "urban"}, true)
	assertMatch(t, expr, []string{"construct", "urban"}, true)
	assertMatch(t, expr, []string{"construct"}, false)
	assertMatch(t, expr, []string{"undead"}, false)
	assertMatch(t, expr, []string{"urban"}, false)
}

func TestMatchKeywordsChainedNot(t *testing.T) {
	for _, expr := range []string{
		"goblinoid and not hobgoblinoid and not bugbearoid",
		"goblinoid and (not hobgoblinoid) and (not bugbearoid)",
		"goblinoid and not (hobgoblinoid or bugbearoid)",
	} {
		t.Run(expr, func(t *testing.T) {
			assertMatch(t, expr, []string{"booyagh", "goblinoid"}, true)
			assertMatch(t, expr, []string{"hobgoblinoid", "goblinoid"}, false)
			assertMatch(t, expr, []string{"bugbearoid", "goblinoid"}, false)
		})
	}
}

func TestParseKeywordExprErrors(t *testing.T) {
	for _, expr := range []string{"(undead", "undead)", "undead and", "or undead", "not", "()", "undead not construct"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseKeywordExpr(expr)
			assert.ErrorIs(t, err, ErrBadKeywordExpr)
		})
	}
}

func TestParseKeywordExprReuse(t *testing.T) {
	compiled, err := ParseKeywordExpr("Undead or Flesh Golem")
	require.NoError(t, err)
	assert.True(t, compiled.Match(KeywordSet([]string{" flesh   golem "})))
	assert.False(t, compiled.Match(KeywordSet([]string{"Ooze"})))
	assert.Equal(t, "(UNDEAD OR FLESH GOLEM)", compiled.String())
}
