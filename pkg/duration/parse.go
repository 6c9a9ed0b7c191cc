package duration

import (
	"fmt"
	"sort"
	"strings"
)

// baseTokens maps every accepted spelling of a base note value, lower-cased.
// Short forms, numeric forms, long forms, and the historical British names
// are all accepted.
var baseTokens = map[string]NoteValue{
	"maxima":       Maxima,
	"long":         Long,
	"longa":        Long,
	"breve":        Breve,
	"double-whole": Breve,

	"w":          Whole,
	"1":          Whole,
	"whole":      Whole,
	"semibreve":  Whole,
	"h":          Half,
	"2":          Half,
	"half":       Half,
	"minim":      Half,
	"q":          Quarter,
	"4":          Quarter,
	"quarter":    Quarter,
	"crotchet":   Quarter,
	"e":          Eighth,
	"8":          Eighth,
	"eighth":     Eighth,
	"quaver":     Eighth,
	"s":          N16th,
	"16":         N16th,
	"16th":       N16th,
	"sixteenth":  N16th,
	"semiquaver": N16th,

	"32":                 N32nd,
	"32nd":               N32nd,
	"thirty-second":      N32nd,
	"demisemiquaver":     N32nd,
	"64":                 N64th,
	"64th":               N64th,
	"sixty-fourth":       N64th,
	"hemidemisemiquaver": N64th,
	"128":                N128th,
	"128th":              N128th,
	"256":                N256th,
	"256th":              N256th,
	"512":                N512th,
	"512th":              N512th,
	"1024":               N1024th,
	"1024th":             N1024th,
}

// ParseToken parses a duration token such as "q", ":quarter", "8.", or
// "minim..". A leading colon is optional; trailing dots become the dot
// count. Matching is case-insensitive.
func ParseToken(tok string) (Spec, error) {
	s := strings.TrimPrefix(tok, ":")
	dots := 0
	for strings.HasSuffix(s, ".") {
		s = strings.TrimSuffix(s, ".")
		dots++
	}
	if s == "" {
		return Spec{}, fmt.Errorf("duration cannot be only dots: %q", tok)
	}
	if dots > MaxDots {
		return Spec{}, fmt.Errorf("too many dots in duration token %q (max %d)", tok, MaxDots)
	}
	base, ok := baseTokens[strings.ToLower(s)]
	if !ok {
		return Spec{}, fmt.Errorf("unknown duration token %q", s)
	}
	return Spec{Base: base, Dots: dots}, nil
}

// IsToken reports whether tok would parse as a duration token. Used by form
// parsers to decide whether an optional duration argument is present.
func IsToken(tok string) bool {
	_, err := ParseToken(tok)
	return err == nil
}

// TokenEntry pairs one accepted token spelling with its note value. Used by
// the reference displays.
type TokenEntry struct {
	Token string
	Base  NoteValue
}

// Tokens returns every accepted base token, longest values first and
// spellings of equal value alphabetical.
func Tokens() []TokenEntry {
	entries := make([]TokenEntry, 0, len(baseTokens))
	for tok, base := range baseTokens {
		entries = append(entries, TokenEntry{Token: tok, Base: base})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Base != entries[j].Base {
			return entries[i].Base < entries[j].Base
		}
		return entries[i].Token < entries[j].Token
	})
	return entries
}
