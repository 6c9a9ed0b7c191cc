// Package sexp provides the tagged-value tree that the notation compiler
// consumes: symbols, keywords, strings, numbers, booleans, nil, and lists.
package sexp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindSymbol Kind = iota
	KindKeyword
	KindString
	KindInt
	KindFloat
	KindBool
	KindNil
	KindList
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindKeyword:
		return "keyword"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindNil:
		return "nil"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is one node of the tagged-value tree. Exactly one payload field is
// meaningful, selected by Kind. Values are immutable once the reader returns
// them.
type Value struct {
	Kind   Kind
	Sym    string  // KindSymbol, KindKeyword (without the leading colon)
	Str    string  // KindString
	Int    int64   // KindInt
	Float  float64 // KindFloat
	Bool   bool    // KindBool
	List   []Value // KindList
	Offset int     // byte offset of the value's first character in the source
}

// Symbol constructs a symbol value.
func Symbol(name string) Value { return Value{Kind: KindSymbol, Sym: name} }

// Keyword constructs a keyword value; name carries no leading colon.
func Keyword(name string) Value { return Value{Kind: KindKeyword, Sym: name} }

// String constructs a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int constructs an integer value.
func Int(n int64) Value { return Value{Kind: KindInt, Int: n} }

// Float constructs a float value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// List constructs a list value.
func List(items ...Value) Value { return Value{Kind: KindList, List: items} }

// IsSymbol reports whether v is the symbol name.
func (v Value) IsSymbol(name string) bool {
	return v.Kind == KindSymbol && v.Sym == name
}

// IsKeyword reports whether v is the keyword :name.
func (v Value) IsKeyword(name string) bool {
	return v.Kind == KindKeyword && v.Sym == name
}

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.Kind == KindList }

// Head returns the leading symbol name of a list form, or "" if v is not a
// list starting with a symbol.
func (v Value) Head() string {
	if v.Kind == KindList && len(v.List) > 0 && v.List[0].Kind == KindSymbol {
		return v.List[0].Sym
	}
	return ""
}

// Token renders symbols and keywords as their bare token text (keywords keep
// the leading colon). Used for duration-token recognition.
func (v Value) Token() (string, bool) {
	switch v.Kind {
	case KindSymbol:
		return v.Sym, true
	case KindKeyword:
		return ":" + v.Sym, true
	default:
		return "", false
	}
}

// String renders the value back as source text.
func (v Value) String() string {
	switch v.Kind {
	case KindSymbol:
		return v.Sym
	case KindKeyword:
		return ":" + v.Sym
	case KindString:
		return strconv.Quote(v.Str)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNil:
		return "nil"
	case KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("#<unknown kind %d>", int(v.Kind))
	}
}
