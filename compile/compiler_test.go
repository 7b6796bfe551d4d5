package compile

import (
	"testing"

	"github.com/marron-at-work/brex/match"
	"github.com/marron-at-work/brex/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, source string) *match.Executor {
	regex, diags := parse.ParseRegex(source)
	require.Empty(t, diags, "parse")
	exec, cdiags := Compile(regex)
	require.Empty(t, cdiags, "compile")
	return exec
}

func TestCompileLiteral(t *testing.T) {
	exec := mustCompile(t, `/"hello"/`)

	ok, _ := exec.Test("hello")
	assert.True(t, ok)
	ok, _ = exec.Test("hell")
	assert.False(t, ok)
	ok, _ = exec.Test("hello!")
	assert.False(t, ok)
}

func TestCompileStarAndPlus(t *testing.T) {
	exec := mustCompile(t, `/[0-9]+/`)

	ok, _ := exec.Test("12345")
	assert.True(t, ok)
	ok, _ = exec.Test("")
	assert.False(t, ok, "plus requires at least one repetition")
}

func TestCompileRangeRepeatBounds(t *testing.T) {
	exec := mustCompile(t, `/"a"{2,4}/`)

	for s, want := range map[string]bool{
		"a":     false,
		"aa":    true,
		"aaa":   true,
		"aaaa":  true,
		"aaaaa": false,
	} {
		ok, _ := exec.Test(s)
		assert.Equal(t, want, ok, "input %q", s)
	}
}

func TestCompileUnboundedRangeRepeat(t *testing.T) {
	exec := mustCompile(t, `/"a"{2,}/`)

	ok, _ := exec.Test("a")
	assert.False(t, ok)
	ok, _ = exec.Test("aa")
	assert.True(t, ok)
	ok, _ = exec.Test("aaaaaaaaaa")
	assert.True(t, ok)
}

func TestCompileNegationIsComplement(t *testing.T) {
	exec := mustCompile(t, `/!"abc"/`)

	ok, _ := exec.Test("abc")
	assert.False(t, ok)
	ok, _ = exec.Test("abcd")
	assert.True(t, ok)
	ok, _ = exec.Test("")
	assert.True(t, ok)
	ok, _ = exec.Test("xyz")
	assert.True(t, ok)
}

func TestCompileIntersectionAcrossSequence(t *testing.T) {
	exec := mustCompile(t, `/[0-9]{3} & [0-4][0-9][0-9]/`)

	ok, _ := exec.Test("123")
	assert.True(t, ok)
	ok, _ = exec.Test("999")
	assert.False(t, ok, "fails the second AllOf operand")
	ok, _ = exec.Test("12")
	assert.False(t, ok, "fails the first AllOf operand's length")
}

func TestCompileFrontCheckAnchor(t *testing.T) {
	exec := mustCompile(t, `/[0-9]{5}("-"[0-9]{3})? & ^"4"[0-2]/`)

	ok, _ := exec.Test("41234")
	assert.True(t, ok)
	ok, _ = exec.Test("41234-567")
	assert.True(t, ok)
	ok, _ = exec.Test("91234")
	assert.False(t, ok, "fails the front-check: doesn't start with 4[0-2]")
}

func TestCompileBackCheckAnchor(t *testing.T) {
	exec := mustCompile(t, `/[a-z]+ $"ing"/`)

	ok, _ := exec.Test("running")
	assert.True(t, ok)
	ok, _ = exec.Test("runner")
	assert.False(t, ok, "fails the back-check: doesn't end in ing")
}

func TestCompileNegatedFrontCheckAnchor(t *testing.T) {
	exec := mustCompile(t, `/[0-9]+ & !^"9"/`)

	ok, _ := exec.Test("95")
	assert.False(t, ok, "negated front-check must reject a haystack that does start with \"9\"")
	ok, _ = exec.Test("15")
	assert.True(t, ok, "negated front-check must accept a haystack that does not start with \"9\"")
}

func TestCompileNegatedBackCheckAnchor(t *testing.T) {
	exec := mustCompile(t, `/[a-z]+ $!"ing"/`)

	ok, _ := exec.Test("running")
	assert.False(t, ok, "negated back-check must reject a haystack that does end in \"ing\"")
	ok, _ = exec.Test("runner")
	assert.True(t, ok, "negated back-check must accept a haystack that does not end in \"ing\"")
}

func TestCompileTestRangeExactBoundsRejectsSuffix(t *testing.T) {
	exec := mustCompile(t, `/"h"[aeiou]+/`)

	ok, _ := exec.TestRange("mark_a.tmp", 5, 5, false, false)
	assert.False(t, ok, "exact single-char region can't hold \"h\"[aeiou]+")
}

func TestCompileTestRangeExtendFindsMatch(t *testing.T) {
	exec := mustCompile(t, `/"h"[aeiou]+/`)

	ok, _ := exec.TestRange("xxhixx", 2, 2, false, true)
	assert.True(t, ok, "extending the end should find \"hi\" starting at 2")
}

func TestCompileASCIIAlphabetRejectsNonASCII(t *testing.T) {
	exec := mustCompile(t, `/"a"/a`)

	ok, kind := exec.Test("a")
	assert.True(t, ok)
	_, kind = exec.Test("é")
	assert.Equal(t, match.BadEncoding, kind)
}

func TestCompileNegativeAnchorOverNullableBodyIsError(t *testing.T) {
	regex, diags := parse.ParseRegex(`/<!"x">^ "a"*/`)
	require.Empty(t, diags, "parse")
	_, cdiags := Compile(regex)
	require.Len(t, cdiags, 1)
}

func TestCompilePositiveAnchorOverNullableBodyIsAccepted(t *testing.T) {
	exec := mustCompile(t, `/<"x">^ "a"*/`)

	_, kind := exec.Test("aaa")
	assert.Equal(t, match.ErrNone, kind, "a positive anchor over a nullable body must still compile and run")
}
