package parse

import (
	"testing"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral(t *testing.T) {
	re, diags := ParseRegex(`/"abc"/`)
	require.Empty(t, diags)
	require.NotNil(t, re)
	assert.Equal(t, ast.KindStd, re.Kind)
	assert.Equal(t, ast.AlphabetUnicode, re.Alphabet)

	single, ok := re.Root.(ast.Single)
	require.True(t, ok)
	lit, ok := single.Entry.Opt.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "abc", codesToString(lit.Codes))
}

func TestParseCharClassComplement(t *testing.T) {
	re, diags := ParseRegex(`/[^A-Z0a-c]/`)
	require.Empty(t, diags)
	single := re.Root.(ast.Single)
	cr := single.Entry.Opt.(*ast.CharRange)
	assert.True(t, cr.Class.Complemented)
}

func TestParseIntersectionAndFrontCheckEntry(t *testing.T) {
	re, diags := ParseRegex(`/[0-9]{5}("-"[0-9]{3})? & ^"4"[0-2]/`)
	require.Empty(t, diags)
	allOf, ok := re.Root.(ast.AllOfComponent)
	require.True(t, ok)
	require.Len(t, allOf.Entries, 2)
	assert.False(t, allOf.Entries[0].FrontCheck)
	assert.True(t, allOf.Entries[1].FrontCheck)
}

func TestParseNegationAtToplevel(t *testing.T) {
	re, diags := ParseRegex(`/!(".txt" | ".pdf")/`)
	require.Empty(t, diags)
	single := re.Root.(ast.Single)
	assert.True(t, single.Entry.Negated)
	_, ok := single.Entry.Opt.(*ast.AnyOf)
	assert.True(t, ok)
}

func TestParseNamedRefUnqualifiedAndQualified(t *testing.T) {
	re, diags := ParseRegex(`/${Foo} "-" ${Main::Foo}/`)
	require.Empty(t, diags)
	single := re.Root.(ast.Single)
	seq := single.Entry.Opt.(*ast.Sequence)
	require.Len(t, seq.Operands, 3)
	ref0 := seq.Operands[0].(*ast.NamedRef)
	assert.Equal(t, "Foo", ref0.Name)
	ref2 := seq.Operands[2].(*ast.NamedRef)
	assert.Equal(t, "Main::Foo", ref2.Name)
}

func TestParseASCIIFlag(t *testing.T) {
	re, diags := ParseRegex(`/'abc'/a`)
	require.Empty(t, diags)
	assert.Equal(t, ast.AlphabetASCII, re.Alphabet)
}

func TestParseUnterminatedReportsDiagnostic(t *testing.T) {
	_, diags := ParseRegex(`/"abc`)
	assert.NotEmpty(t, diags)
}

func TestParsePostAnchor(t *testing.T) {
	re, diags := ParseRegex(`/"h"[aeiou]+$"."/`)
	require.Empty(t, diags)
	require.NotNil(t, re.PostAnchor)
	assert.True(t, re.PostAnchor.BackCheck)
}

func codesToString(codes []char.CodePoint) string {
	r := make([]rune, len(codes))
	for i, c := range codes {
		r[i] = rune(c)
	}
	return string(r)
}
