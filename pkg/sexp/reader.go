package sexp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports a lexical or structural problem in s-expression source,
// anchored to the byte offset where the offending token starts.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at byte %d: %s", e.Offset, e.Msg)
}

// Read parses src into a sequence of top-level values. Line comments start
// with ';' and run to end of line.
func Read(src string) ([]Value, error) {
	r := &reader{src: src}
	var vals []Value
	for {
		r.skipSpace()
		if r.eof() {
			return vals, nil
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
}

// ReadOne parses src expecting exactly one top-level value.
func ReadOne(src string) (Value, error) {
	vals, err := Read(src)
	if err != nil {
		return Value{}, err
	}
	if len(vals) != 1 {
		return Value{}, &SyntaxError{Offset: 0, Msg: fmt.Sprintf("expected one form, found %d", len(vals))}
	}
	return vals[0], nil
}

type reader struct {
	src string
	pos int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() byte { return r.src[r.pos] }

func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',':
			r.pos++
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.pos++
			}
		default:
			return
		}
	}
}

func (r *reader) readValue() (Value, error) {
	start := r.pos
	switch c := r.peek(); {
	case c == '(':
		return r.readList()
	case c == ')':
		return Value{}, &SyntaxError{Offset: start, Msg: "unexpected ')'"}
	case c == '"':
		return r.readString()
	case c == ':':
		return r.readKeyword()
	default:
		return r.readAtom()
	}
}

func (r *reader) readList() (Value, error) {
	start := r.pos
	r.pos++ // consume '('
	var items []Value
	for {
		r.skipSpace()
		if r.eof() {
			return Value{}, &SyntaxError{Offset: start, Msg: "unterminated list"}
		}
		if r.peek() == ')' {
			r.pos++
			return Value{Kind: KindList, List: items, Offset: start}, nil
		}
		v, err := r.readValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

func (r *reader) readString() (Value, error) {
	start := r.pos
	r.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if r.eof() {
			return Value{}, &SyntaxError{Offset: start, Msg: "unterminated string"}
		}
		c := r.peek()
		r.pos++
		switch c {
		case '"':
			return Value{Kind: KindString, Str: sb.String(), Offset: start}, nil
		case '\\':
			if r.eof() {
				return Value{}, &SyntaxError{Offset: start, Msg: "unterminated string escape"}
			}
			esc := r.peek()
			r.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteByte(esc)
			default:
				return Value{}, &SyntaxError{Offset: r.pos - 2, Msg: fmt.Sprintf("unknown string escape '\\%c'", esc)}
			}
		default:
			sb.WriteByte(c)
		}
	}
}

func (r *reader) readKeyword() (Value, error) {
	start := r.pos
	r.pos++ // consume ':'
	name := r.readToken()
	if name == "" {
		return Value{}, &SyntaxError{Offset: start, Msg: "empty keyword"}
	}
	return Value{Kind: KindKeyword, Sym: name, Offset: start}, nil
}

func (r *reader) readAtom() (Value, error) {
	start := r.pos
	tok := r.readToken()
	if tok == "" {
		c, _ := utf8.DecodeRuneInString(r.src[r.pos:])
		return Value{}, &SyntaxError{Offset: start, Msg: fmt.Sprintf("unexpected character %q", c)}
	}
	switch tok {
	case "nil":
		return Value{Kind: KindNil, Offset: start}, nil
	case "true":
		return Value{Kind: KindBool, Bool: true, Offset: start}, nil
	case "false":
		return Value{Kind: KindBool, Bool: false, Offset: start}, nil
	}
	if looksNumeric(tok) && !dottedDigits(tok) {
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return Value{Kind: KindInt, Int: n, Offset: start}, nil
		}
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return Value{Kind: KindFloat, Float: f, Offset: start}, nil
		}
	}
	// Digit-leading tokens that are not numbers, like the duration
	// spellings "16th" and "8.", read as symbols.
	return Value{Kind: KindSymbol, Sym: tok, Offset: start}, nil
}

// dottedDigits reports whether tok is a run of digits followed by one or
// more trailing dots. "8." is the dotted-eighth duration spelling, never
// the float 8.0.
func dottedDigits(tok string) bool {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 || i == len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] != '.' {
			return false
		}
	}
	return true
}

// readToken consumes a run of token constituent characters. Note symbols like
// "f#3", durations like "q.", and dynamics like "pp" all fall under this.
func (r *reader) readToken() string {
	start := r.pos
	for !r.eof() {
		c := r.peek()
		if c == '(' || c == ')' || c == '"' || c == ';' || c == ',' ||
			c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		r.pos++
	}
	return r.src[start:r.pos]
}

func looksNumeric(tok string) bool {
	c, _ := utf8.DecodeRuneInString(tok)
	if unicode.IsDigit(c) {
		return true
	}
	if (c == '-' || c == '+') && len(tok) > 1 {
		next, _ := utf8.DecodeRuneInString(tok[1:])
		return unicode.IsDigit(next)
	}
	return false
}
