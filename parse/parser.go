// Package parse implements the BREX surface-syntax parser: source text
// to ast.Regex plus accumulated diagnostics, following spec.md §4.1.
//
// Grammar precedence (tightest first): atom -> postfix (* + ? {n,m}) ->
// prefix (!) -> concatenation -> alternation (|) -> intersection (&).
// Anchors bind at the outermost level only.
//
// Two constructs use a caret as a boundary and are deliberately
// disambiguated by position rather than by the (inconsistent, per
// spec.md §9) reference grammar: a per-entry front-check inside an
// `&`-joined toplevel component is spelled with a LEADING caret
// (`^expr`, demonstrated by spec.md §8 scenario 3); the whole-regex
// pre-anchor is spelled with an explicit `<...>` wrapper followed by a
// TRAILING caret (`<expr>^`). See DESIGN.md for the full rationale.
package parse

import (
	"fmt"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/lex"
)

// Parser parses one regex body (already stripped of the outer `/.../flag`
// delimiters) into an ast.Regex.
type Parser struct {
	lexer     *lex.Lexer
	curToken  lex.Token
	peekToken lex.Token
	diags     []Diagnostic
	unicode   bool
}

func newParser(body string, unicode bool) *Parser {
	p := &Parser{lexer: lex.NewLexer(body, unicode), unicode: unicode}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
	if p.curToken.Type == lex.Error {
		p.errorf(p.curToken.Pos, "%s", p.curToken.ErrMsg)
	}
}

func (p *Parser) errorf(pos int, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) expect(t lex.Type) bool {
	if p.curToken.Type != t {
		p.errorf(p.curToken.Pos, "expected %s, got %s", t, p.curToken.Type)
		return false
	}
	p.next()
	return true
}

// ParseRegex parses a full `/BODY/flag` surface source string (per
// spec.md §4.1) into an ast.Regex plus diagnostics. A regex is valid
// only if the diagnostics list is empty, per spec.md §4.1's error
// policy.
func ParseRegex(source string) (*ast.Regex, []Diagnostic) {
	if len(source) < 2 || source[0] != '/' {
		return nil, []Diagnostic{{Message: "regex source must start with '/'", Pos: 0}}
	}
	rest := source[1:]
	idx := lastUnescapedSlash(rest)
	if idx < 0 {
		return nil, []Diagnostic{{Message: "unterminated regex literal, missing closing '/'", Pos: len(source)}}
	}
	body := rest[:idx]
	flag := rest[idx+1:]

	kind := ast.KindStd
	unicode := true
	switch flag {
	case "":
		kind, unicode = ast.KindStd, true
	case "a":
		kind, unicode = ast.KindStd, false
	case "p":
		kind, unicode = ast.KindPath, true
	case "r":
		kind, unicode = ast.KindResource, true
	default:
		return nil, []Diagnostic{{Message: fmt.Sprintf("unknown regex flag %q", flag), Pos: len(source)}}
	}

	p := newParser(body, unicode)
	regex := p.parseBody(kind, unicode)
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return regex, nil
}

// lastUnescapedSlash finds the index of the delimiter-closing '/' in the
// body: BREX literals are quoted with `"` or `'`, never `/`, so the
// closing delimiter is simply the last '/' in the source.
func lastUnescapedSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseBody(kind ast.Kind, unicode bool) *ast.Regex {
	regex := &ast.Regex{Kind: kind, Alphabet: alphabetOf(unicode)}

	if p.curToken.Type == lex.Lt {
		entry := p.parseAnchorWrapper()
		if p.curToken.Type != lex.Caret {
			p.errorf(p.curToken.Pos, "expected '^' after pre-anchor, got %s", p.curToken.Type)
		} else {
			p.next()
		}
		entry.FrontCheck = true
		regex.PreAnchor = &entry
	}

	regex.Root = p.parseComponent()

	if p.curToken.Type == lex.Dollar {
		p.next()
		entry := p.parsePostAnchorBody()
		entry.BackCheck = true
		regex.PostAnchor = &entry
	}

	if p.curToken.Type != lex.EOF {
		p.errorf(p.curToken.Pos, "unexpected trailing token %s", p.curToken.Type)
	}
	return regex
}

func alphabetOf(unicode bool) ast.Alphabet {
	if unicode {
		return ast.AlphabetUnicode
	}
	return ast.AlphabetASCII
}

// parseAnchorWrapper parses `<` [`!`] AlternationExpr `>` and returns the
// (unanchored) ToplevelEntry; the caller sets FrontCheck/BackCheck.
func (p *Parser) parseAnchorWrapper() ast.ToplevelEntry {
	p.next() // consume '<'
	var entry ast.ToplevelEntry
	if p.curToken.Type == lex.Bang {
		entry.Negated = true
		p.next()
	}
	entry.Opt = p.parseAlternation()
	if p.curToken.Type != lex.Gt {
		p.errorf(p.curToken.Pos, "expected '>' closing anchor, got %s", p.curToken.Type)
	} else {
		p.next()
	}
	return entry
}

// parsePostAnchorBody parses the SUFFIX in `$SUFFIX`, with or without the
// `<...>` wrapper sugar.
func (p *Parser) parsePostAnchorBody() ast.ToplevelEntry {
	if p.curToken.Type == lex.Lt {
		return p.parseAnchorWrapper()
	}
	var entry ast.ToplevelEntry
	if p.curToken.Type == lex.Bang {
		entry.Negated = true
		p.next()
	}
	entry.Opt = p.parseAlternation()
	return entry
}

// parseComponent parses the `&`-joined toplevel RegexComponent.
func (p *Parser) parseComponent() ast.Component {
	entries := []ast.ToplevelEntry{p.parseEntry()}
	for p.curToken.Type == lex.Amp {
		p.next()
		entries = append(entries, p.parseEntry())
	}
	if len(entries) == 1 {
		return ast.Single{Entry: entries[0]}
	}
	return ast.AllOfComponent{Entries: entries}
}

// parseEntry parses one `&`-joined toplevel entry: optional leading `!`
// (negate) and/or `^` (front-check, per spec.md §8 scenario 3), then an
// alternation expression.
func (p *Parser) parseEntry() ast.ToplevelEntry {
	var entry ast.ToplevelEntry
	if p.curToken.Type == lex.Bang {
		entry.Negated = true
		p.next()
	}
	if p.curToken.Type == lex.Caret {
		entry.FrontCheck = true
		p.next()
	}
	entry.Opt = p.parseAlternation()
	return entry
}

// parseAlternation parses `|`-joined sequences.
func (p *Parser) parseAlternation() ast.Opt {
	operands := []ast.Opt{p.parseSequence()}
	for p.curToken.Type == lex.Pipe {
		p.next()
		operands = append(operands, p.parseSequence())
	}
	return ast.NormalizeAnyOf(operands)
}

func (p *Parser) atSequenceStop() bool {
	switch p.curToken.Type {
	case lex.EOF, lex.Pipe, lex.Amp, lex.RParen, lex.Dollar, lex.Gt, lex.Caret:
		return true
	default:
		return false
	}
}

// parseSequence parses concatenation.
func (p *Parser) parseSequence() ast.Opt {
	var operands []ast.Opt
	for !p.atSequenceStop() {
		operands = append(operands, p.parsePrefix())
	}
	if len(operands) == 0 {
		p.errorf(p.curToken.Pos, "expected an expression, got %s", p.curToken.Type)
		return &ast.Sequence{}
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return &ast.Sequence{Operands: operands}
}

// parsePrefix parses `!` applied inside a subexpression (distinct from
// entry-level negation, which only applies at the toplevel per spec.md).
func (p *Parser) parsePrefix() ast.Opt {
	if p.curToken.Type == lex.Bang {
		p.next()
		return &ast.Negate{Operand: p.parsePrefix()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Opt {
	opt := p.parseAtom()
	for {
		switch p.curToken.Type {
		case lex.Star:
			p.next()
			opt = &ast.Star{Operand: opt}
		case lex.Plus:
			p.next()
			opt = &ast.Plus{Operand: opt}
		case lex.Question:
			p.next()
			opt = &ast.Optional{Operand: opt}
		case lex.LBrace:
			opt = p.parseRangeRepeat(opt)
		default:
			return opt
		}
	}
}

func (p *Parser) parseRangeRepeat(operand ast.Opt) ast.Opt {
	p.next() // consume '{'
	var low uint16
	var high int32 = ast.Infinite

	if p.curToken.Type != lex.Int {
		p.errorf(p.curToken.Pos, "expected integer in repeat bound, got %s", p.curToken.Type)
	} else {
		low = uint16(p.curToken.IntVal)
		high = int32(p.curToken.IntVal)
		p.next()
	}

	if p.curToken.Type == lex.Comma {
		p.next()
		if p.curToken.Type == lex.Int {
			high = int32(p.curToken.IntVal)
			p.next()
		} else {
			high = ast.Infinite
		}
	}

	if p.curToken.Type != lex.RBrace {
		p.errorf(p.curToken.Pos, "expected '}' closing repeat, got %s", p.curToken.Type)
	} else {
		p.next()
	}

	if high != ast.Infinite && int32(low) > high {
		p.errorf(p.curToken.Pos, "repeat low %d exceeds high %d", low, high)
	}
	return &ast.RangeRepeat{Operand: operand, Low: low, High: high}
}

func (p *Parser) parseAtom() ast.Opt {
	switch p.curToken.Type {
	case lex.Dot:
		p.next()
		return &ast.Dot{}
	case lex.String:
		codes := p.curToken.Codes
		p.next()
		return &ast.Literal{Codes: codes, Unicode: p.unicode}
	case lex.CharClass:
		class := p.curToken.Class
		p.next()
		return &ast.CharRange{Class: class}
	case lex.LParen:
		p.next()
		inner := p.parseIntersection()
		if p.curToken.Type != lex.RParen {
			p.errorf(p.curToken.Pos, "expected ')', got %s", p.curToken.Type)
		} else {
			p.next()
		}
		return inner
	case lex.RefOpen:
		return p.parseRef()
	default:
		p.errorf(p.curToken.Pos, "unexpected token %s", p.curToken.Type)
		p.next()
		return &ast.Sequence{}
	}
}

// parseIntersection parses `&` as an ordinary operator, used inside
// parens (spec.md §3: AllOf is a regular RegexOpt variant, distinct from
// the toplevel `&`-joined RegexComponent form parsed by parseComponent).
func (p *Parser) parseIntersection() ast.Opt {
	operands := []ast.Opt{p.parseAlternation()}
	for p.curToken.Type == lex.Amp {
		p.next()
		operands = append(operands, p.parseAlternation())
	}
	return ast.NormalizeAllOf(operands)
}

// parseRef parses `${Name}`, `${NS::Name}`, or `${$ENV}`.
func (p *Parser) parseRef() ast.Opt {
	p.next() // consume '${'

	if p.curToken.Type == lex.Dollar {
		p.next()
		if p.curToken.Type != lex.Ident {
			p.errorf(p.curToken.Pos, "expected env name after '$', got %s", p.curToken.Type)
			return &ast.Sequence{}
		}
		name := p.curToken.Literal
		p.next()
		if p.curToken.Type != lex.RBrace {
			p.errorf(p.curToken.Pos, "expected '}' closing env reference, got %s", p.curToken.Type)
		} else {
			p.next()
		}
		return &ast.EnvRef{Name: name}
	}

	if p.curToken.Type != lex.Ident {
		p.errorf(p.curToken.Pos, "expected identifier in reference, got %s", p.curToken.Type)
		return &ast.Sequence{}
	}
	name := p.curToken.Literal
	p.next()
	if p.curToken.Type == lex.ColonColon {
		p.next()
		if p.curToken.Type != lex.Ident {
			p.errorf(p.curToken.Pos, "expected identifier after '::', got %s", p.curToken.Type)
			return &ast.Sequence{}
		}
		name = name + "::" + p.curToken.Literal
		p.next()
	}
	if p.curToken.Type != lex.RBrace {
		p.errorf(p.curToken.Pos, "expected '}' closing reference, got %s", p.curToken.Type)
	} else {
		p.next()
	}
	return &ast.NamedRef{Name: name}
}
