// Package astjson implements the canonical JSON interchange form for
// package ast, per spec.md §6. It is a pure boundary codec: it never
// mutates an *ast.Regex and never participates in compilation.
//
// Every RegexOpt variant is encoded as `{"tag": "<Name>", ...fields}`.
// Two tags are this package's own choice rather than the spec's: the
// reference source's AllOf tag collides with Negate's (spec.md §9 open
// question), so this codec uses distinct tags `NegateOpt` and
// `AllOfOpt` and does not attempt to reproduce the collision.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
)

type regexWire struct {
	IsPath     bool            `json:"isPath"`
	IsResource bool            `json:"isResource,omitempty"`
	IsChar     bool            `json:"isChar"`
	PreAnchor  *entryWire      `json:"preanchor"`
	PostAnchor *entryWire      `json:"postanchor"`
	Re         json.RawMessage `json:"re"`
}

type entryWire struct {
	IsNegated    bool            `json:"isNegated"`
	IsFrontCheck bool            `json:"isFrontCheck"`
	IsBackCheck  bool            `json:"isBackCheck"`
	Opt          json.RawMessage `json:"opt"`
}

type rangeWire struct {
	Lb int32 `json:"lb"`
	Ub int32 `json:"ub"`
}

type repeatWire struct {
	Low  uint16 `json:"low"`
	High *int32 `json:"high"` // null means unbounded
}

type optWire struct {
	Tag string `json:"tag"`

	Charcodes  []int32         `json:"charcodes,omitempty"`
	Isunicode  bool            `json:"isunicode,omitempty"`
	Compliment bool            `json:"compliment,omitempty"`
	Range      []rangeWire     `json:"range,omitempty"`
	Rname      string          `json:"rname,omitempty"`
	Ename      string          `json:"ename,omitempty"`
	Opt        json.RawMessage `json:"opt,omitempty"`
	Repeat     *repeatWire     `json:"repeat,omitempty"`
	Opts       []json.RawMessage `json:"opts,omitempty"`
	Regexs     []json.RawMessage `json:"regexs,omitempty"`
}

// EncodeRegex renders r as canonical JSON.
func EncodeRegex(r *ast.Regex) ([]byte, error) {
	w, err := regexToWire(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// DecodeRegex parses canonical JSON back into an *ast.Regex.
func DecodeRegex(data []byte) (*ast.Regex, error) {
	var w regexWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	return wireToRegex(&w)
}

func regexToWire(r *ast.Regex) (*regexWire, error) {
	w := &regexWire{
		IsPath:     r.Kind == ast.KindPath,
		IsResource: r.Kind == ast.KindResource,
		IsChar:     r.Alphabet == ast.AlphabetUnicode,
	}
	if r.PreAnchor != nil {
		ew, err := entryToWire(r.PreAnchor)
		if err != nil {
			return nil, err
		}
		w.PreAnchor = ew
	}
	if r.PostAnchor != nil {
		ew, err := entryToWire(r.PostAnchor)
		if err != nil {
			return nil, err
		}
		w.PostAnchor = ew
	}
	re, err := componentToWire(r.Root)
	if err != nil {
		return nil, err
	}
	w.Re = re
	return w, nil
}

func wireToRegex(w *regexWire) (*ast.Regex, error) {
	r := &ast.Regex{}
	switch {
	case w.IsResource:
		r.Kind = ast.KindResource
	case w.IsPath:
		r.Kind = ast.KindPath
	default:
		r.Kind = ast.KindStd
	}
	if w.IsChar {
		r.Alphabet = ast.AlphabetUnicode
	} else {
		r.Alphabet = ast.AlphabetASCII
	}
	if w.PreAnchor != nil {
		e, err := wireToEntry(w.PreAnchor)
		if err != nil {
			return nil, err
		}
		r.PreAnchor = e
	}
	if w.PostAnchor != nil {
		e, err := wireToEntry(w.PostAnchor)
		if err != nil {
			return nil, err
		}
		r.PostAnchor = e
	}
	comp, err := wireToComponent(w.Re)
	if err != nil {
		return nil, err
	}
	r.Root = comp
	return r, nil
}

func entryToWire(e *ast.ToplevelEntry) (*entryWire, error) {
	opt, err := optToWire(e.Opt)
	if err != nil {
		return nil, err
	}
	return &entryWire{
		IsNegated:    e.Negated,
		IsFrontCheck: e.FrontCheck,
		IsBackCheck:  e.BackCheck,
		Opt:          opt,
	}, nil
}

func wireToEntry(w *entryWire) (*ast.ToplevelEntry, error) {
	opt, err := wireToOpt(w.Opt)
	if err != nil {
		return nil, err
	}
	return &ast.ToplevelEntry{
		Negated:    w.IsNegated,
		FrontCheck: w.IsFrontCheck,
		BackCheck:  w.IsBackCheck,
		Opt:        opt,
	}, nil
}

// componentToWire renders a RegexComponent: a single ToplevelEntry object
// for ast.Single, or a JSON array of ToplevelEntry objects for
// ast.AllOfComponent, per spec.md §6.
func componentToWire(c ast.Component) (json.RawMessage, error) {
	switch v := c.(type) {
	case ast.Single:
		ew, err := entryToWire(&v.Entry)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ew)
	case ast.AllOfComponent:
		wires := make([]*entryWire, len(v.Entries))
		for i := range v.Entries {
			ew, err := entryToWire(&v.Entries[i])
			if err != nil {
				return nil, err
			}
			wires[i] = ew
		}
		return json.Marshal(wires)
	default:
		return nil, fmt.Errorf("astjson: unknown component type %T", c)
	}
}

func wireToComponent(raw json.RawMessage) (ast.Component, error) {
	var arr []entryWire
	if err := json.Unmarshal(raw, &arr); err == nil {
		entries := make([]ast.ToplevelEntry, len(arr))
		for i := range arr {
			e, err := wireToEntry(&arr[i])
			if err != nil {
				return nil, err
			}
			entries[i] = *e
		}
		return ast.AllOfComponent{Entries: entries}, nil
	}
	var single entryWire
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("astjson: re is neither an entry object nor an entry array: %w", err)
	}
	e, err := wireToEntry(&single)
	if err != nil {
		return nil, err
	}
	return ast.Single{Entry: *e}, nil
}

func optToWire(o ast.Opt) (json.RawMessage, error) {
	w, err := optToOptWire(o)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func wireToOpt(raw json.RawMessage) (ast.Opt, error) {
	var w optWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return optWireToOpt(&w)
}

func optToOptWire(o ast.Opt) (*optWire, error) {
	switch v := o.(type) {
	case *ast.Literal:
		codes := make([]int32, len(v.Codes))
		for i, c := range v.Codes {
			codes[i] = int32(c)
		}
		return &optWire{Tag: "LiteralOpt", Charcodes: codes, Isunicode: v.Unicode}, nil

	case *ast.CharRange:
		ranges := make([]rangeWire, len(v.Class.Ranges))
		for i, r := range v.Class.Ranges {
			ranges[i] = rangeWire{Lb: int32(r.Low), Ub: int32(r.High)}
		}
		return &optWire{Tag: "CharRangeOpt", Compliment: v.Class.Complemented, Range: ranges}, nil

	case *ast.Dot:
		return &optWire{Tag: "CharClassDotOpt"}, nil

	case *ast.NamedRef:
		name := v.Qualified
		if name == "" {
			name = v.Name
		}
		return &optWire{Tag: "NamedRegexOpt", Rname: name}, nil

	case *ast.EnvRef:
		return &optWire{Tag: "EnvRegexOpt", Ename: v.Name}, nil

	case *ast.Star:
		opt, err := optToWire(v.Operand)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "StarRepeatOpt", Opt: opt}, nil

	case *ast.Plus:
		opt, err := optToWire(v.Operand)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "PlusRepeatOpt", Opt: opt}, nil

	case *ast.RangeRepeat:
		opt, err := optToWire(v.Operand)
		if err != nil {
			return nil, err
		}
		rw := &repeatWire{Low: v.Low}
		if v.High != ast.Infinite {
			h := v.High
			rw.High = &h
		}
		return &optWire{Tag: "RangeRepeatOpt", Opt: opt, Repeat: rw}, nil

	case *ast.Optional:
		opt, err := optToWire(v.Operand)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "OptionalOpt", Opt: opt}, nil

	case *ast.AnyOf:
		opts, err := optListToWire(v.Operands)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "AnyOfOpt", Opts: opts}, nil

	case *ast.Sequence:
		opts, err := optListToWire(v.Operands)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "SequenceOpt", Opts: opts}, nil

	case *ast.Negate:
		opt, err := optToWire(v.Operand)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "NegateOpt", Opt: opt}, nil

	case *ast.AllOf:
		regexs, err := optListToWire(v.Operands)
		if err != nil {
			return nil, err
		}
		return &optWire{Tag: "AllOfOpt", Regexs: regexs}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown Opt type %T", o)
	}
}

func optListToWire(opts []ast.Opt) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(opts))
	for i, o := range opts {
		raw, err := optToWire(o)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func optWireToOpt(w *optWire) (ast.Opt, error) {
	switch w.Tag {
	case "LiteralOpt":
		codes := make([]char.CodePoint, len(w.Charcodes))
		for i, c := range w.Charcodes {
			codes[i] = char.CodePoint(c)
		}
		return &ast.Literal{Codes: codes, Unicode: w.Isunicode}, nil

	case "CharRangeOpt":
		ranges := make([]char.Range, len(w.Range))
		for i, r := range w.Range {
			ranges[i] = char.Range{Low: char.CodePoint(r.Lb), High: char.CodePoint(r.Ub)}
		}
		return &ast.CharRange{Class: char.NewCharClass(w.Compliment, ranges)}, nil

	case "CharClassDotOpt":
		return &ast.Dot{}, nil

	case "NamedRegexOpt":
		return &ast.NamedRef{Name: w.Rname, Qualified: w.Rname}, nil

	case "EnvRegexOpt":
		return &ast.EnvRef{Name: w.Ename}, nil

	case "StarRepeatOpt":
		operand, err := wireToOpt(w.Opt)
		if err != nil {
			return nil, err
		}
		return &ast.Star{Operand: operand}, nil

	case "PlusRepeatOpt":
		operand, err := wireToOpt(w.Opt)
		if err != nil {
			return nil, err
		}
		return &ast.Plus{Operand: operand}, nil

	case "RangeRepeatOpt":
		operand, err := wireToOpt(w.Opt)
		if err != nil {
			return nil, err
		}
		high := int32(ast.Infinite)
		var low uint16
		if w.Repeat != nil {
			low = w.Repeat.Low
			if w.Repeat.High != nil {
				high = *w.Repeat.High
			}
		}
		return &ast.RangeRepeat{Operand: operand, Low: low, High: high}, nil

	case "OptionalOpt":
		operand, err := wireToOpt(w.Opt)
		if err != nil {
			return nil, err
		}
		return &ast.Optional{Operand: operand}, nil

	case "AnyOfOpt":
		operands, err := wireListToOpts(w.Opts)
		if err != nil {
			return nil, err
		}
		return &ast.AnyOf{Operands: operands}, nil

	case "SequenceOpt":
		operands, err := wireListToOpts(w.Opts)
		if err != nil {
			return nil, err
		}
		return &ast.Sequence{Operands: operands}, nil

	case "NegateOpt":
		operand, err := wireToOpt(w.Opt)
		if err != nil {
			return nil, err
		}
		return &ast.Negate{Operand: operand}, nil

	case "AllOfOpt":
		operands, err := wireListToOpts(w.Regexs)
		if err != nil {
			return nil, err
		}
		return &ast.AllOf{Operands: operands}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown tag %q", w.Tag)
	}
}

func wireListToOpts(raws []json.RawMessage) ([]ast.Opt, error) {
	out := make([]ast.Opt, len(raws))
	for i, raw := range raws {
		o, err := wireToOpt(raw)
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}
