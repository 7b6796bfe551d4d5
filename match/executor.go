package match

import (
	"unicode/utf8"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
)

// ErrorKind mirrors spec.md §7's runtime error kinds.
type ErrorKind uint8

const (
	ErrNone ErrorKind = iota
	// BadEncoding: the haystack isn't valid UTF-8 (Unicode alphabet) or
	// contains a byte above 0x7F (ASCII alphabet).
	BadEncoding
	// UnsupportedForm: the caller asked for a range outside the haystack,
	// or start after end.
	UnsupportedForm
)

func (e ErrorKind) String() string {
	switch e {
	case BadEncoding:
		return "BadEncoding"
	case UnsupportedForm:
		return "UnsupportedForm"
	default:
		return "None"
	}
}

// Anchor is one front- or back-check assertion: an automaton for the
// non-negated anchor expression, plus whether the assertion is negated.
// A negated anchor requires the anchor's language to NOT contain the
// matched prefix/suffix (spec.md §4.3), which is the boolean negation of
// AnyPrefixAccepted's result, not the existential test re-run over a
// complemented automaton — negating the automaton itself would make the
// (always-accepted) empty prefix pass the check for almost any haystack.
type Anchor struct {
	Automaton *Automaton
	Negated   bool
}

// Executor is an immutable, concurrency-safe compiled regex: a body
// automaton plus any number of front/back-check assertions. Every field is
// write-once at construction and read-only afterward, so a single
// *Executor may be shared across goroutines without synchronization.
type Executor struct {
	body     *Automaton
	fronts   []Anchor
	backs    []Anchor // automaton already Reversed() at construction time
	alphabet ast.Alphabet
}

// NewExecutor assembles an Executor from a compiled body automaton and any
// number of front/back-check anchors (still in forward orientation; back
// checks are reversed once here rather than on every Test/TestRange call).
func NewExecutor(body *Automaton, fronts, backs []Anchor, alphabet ast.Alphabet) *Executor {
	reversedBacks := make([]Anchor, len(backs))
	for i, a := range backs {
		reversedBacks[i] = Anchor{Automaton: a.Automaton.Reversed(), Negated: a.Negated}
	}
	return &Executor{body: body, fronts: fronts, backs: reversedBacks, alphabet: alphabet}
}

func (e *Executor) decode(haystack string) ([]char.CodePoint, ErrorKind) {
	if e.alphabet == ast.AlphabetASCII {
		codes := make([]char.CodePoint, len(haystack))
		for i := 0; i < len(haystack); i++ {
			b := haystack[i]
			if b > 0x7F {
				return nil, BadEncoding
			}
			codes[i] = char.CodePoint(b)
		}
		return codes, ErrNone
	}
	codes := make([]char.CodePoint, 0, len(haystack))
	for i := 0; i < len(haystack); {
		r, size := utf8.DecodeRuneInString(haystack[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, BadEncoding
		}
		codes = append(codes, char.CodePoint(r))
		i += size
	}
	return codes, ErrNone
}

func reverseCodes(codes []char.CodePoint) []char.CodePoint {
	out := make([]char.CodePoint, len(codes))
	for i, c := range codes {
		out[len(codes)-1-i] = c
	}
	return out
}

func (e *Executor) checkAnchors(codes []char.CodePoint) bool {
	for _, f := range e.fronts {
		if !checkAnchor(f, codes) {
			return false
		}
	}
	if len(e.backs) == 0 {
		return true
	}
	rev := reverseCodes(codes)
	for _, back := range e.backs {
		if !checkAnchor(back, rev) {
			return false
		}
	}
	return true
}

// checkAnchor evaluates one Anchor against codes: non-negated requires
// some prefix of codes to be in the anchor's language, negated requires
// none to be.
func checkAnchor(a Anchor, codes []char.CodePoint) bool {
	accepted := a.Automaton.AnyPrefixAccepted(codes)
	if a.Negated {
		return !accepted
	}
	return accepted
}

// Test reports whether haystack, in full, is in the compiled language.
func (e *Executor) Test(haystack string) (bool, ErrorKind) {
	codes, kind := e.decode(haystack)
	if kind != ErrNone {
		return false, kind
	}
	if !e.body.Accepts(codes) {
		return false, ErrNone
	}
	return e.checkAnchors(codes), ErrNone
}

// TestRange reports whether some substring bounded by [startInclusive,
// endInclusive] (both ends inclusive; length endInclusive-startInclusive+1
// by default) is in the language. allowExtendStart/allowExtendEnd relax
// that boundary in the corresponding direction: with allowExtendStart set
// the match's start may fall anywhere in [0, startInclusive]; with
// allowExtendEnd set its end may fall anywhere in [endInclusive, len-1].
// With both false the region tested is exact.
func (e *Executor) TestRange(haystack string, startInclusive, endInclusive int, allowExtendStart, allowExtendEnd bool) (bool, ErrorKind) {
	codes, kind := e.decode(haystack)
	if kind != ErrNone {
		return false, kind
	}
	if startInclusive < 0 || endInclusive >= len(codes) || startInclusive > endInclusive {
		return false, UnsupportedForm
	}

	startLo := startInclusive
	if allowExtendStart {
		startLo = 0
	}
	endHi := endInclusive
	if allowExtendEnd {
		endHi = len(codes) - 1
	}

	for s := startLo; s <= startInclusive; s++ {
		for en := endInclusive; en <= endHi; en++ {
			sub := codes[s : en+1]
			if e.body.Accepts(sub) && e.checkAnchors(sub) {
				return true, ErrNone
			}
		}
	}
	return false, ErrNone
}
