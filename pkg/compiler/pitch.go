package compiler

import (
	"fmt"
	"strings"
)

// ParsePitch parses a pitch token such as "c4", "f#3", "bb2", or "a##5".
// The step letter is case-insensitive; sharps ('#') and flats ('b') after
// the letter accumulate into the alteration; the trailing digits are the
// octave.
func ParsePitch(tok string) (Pitch, error) {
	if tok == "" {
		return Pitch{}, fmt.Errorf("empty pitch token")
	}
	step := tok[0]
	if step >= 'a' && step <= 'g' {
		step -= 'a' - 'A'
	}
	if step < 'A' || step > 'G' {
		return Pitch{}, fmt.Errorf("pitch %q must start with a step letter a-g", tok)
	}

	rest := tok[1:]
	alter := 0
	i := 0
	for ; i < len(rest); i++ {
		if rest[i] == '#' || rest[i] == 's' {
			alter++
		} else if rest[i] == 'b' || rest[i] == 'f' {
			alter--
		} else {
			break
		}
	}
	rest = rest[i:]

	if rest == "" {
		return Pitch{}, fmt.Errorf("pitch %q is missing an octave", tok)
	}
	octave := 0
	negative := false
	if rest[0] == '-' {
		negative = true
		rest = rest[1:]
	}
	if rest == "" || strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return Pitch{}, fmt.Errorf("pitch %q has a malformed octave", tok)
	}
	for _, r := range rest {
		octave = octave*10 + int(r-'0')
	}
	if negative {
		octave = -octave
	}
	return Pitch{Step: string(step), Alter: alter, Octave: octave}, nil
}
