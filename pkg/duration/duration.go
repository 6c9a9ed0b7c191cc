// Package duration resolves symbolic note values into absolute time units.
//
// All arithmetic is parameterized on a divisions-per-quarter-note value; the
// package holds no global state so independent compilations can use
// different divisions without interference.
package duration

import "math"

// NoteValue is one of the fourteen named note lengths, longest first.
type NoteValue int

const (
	Maxima NoteValue = iota
	Long
	Breve
	Whole
	Half
	Quarter
	Eighth
	N16th
	N32nd
	N64th
	N128th
	N256th
	N512th
	N1024th
)

// quarterLengths maps each note value to its length in quarter notes.
var quarterLengths = [...]float64{
	Maxima:  32,
	Long:    16,
	Breve:   8,
	Whole:   4,
	Half:    2,
	Quarter: 1,
	Eighth:  0.5,
	N16th:   0.25,
	N32nd:   0.125,
	N64th:   0.0625,
	N128th:  0.03125,
	N256th:  0.015625,
	N512th:  0.0078125,
	N1024th: 0.00390625,
}

// Quarters returns the note value's length in quarter notes.
func (v NoteValue) Quarters() float64 {
	return quarterLengths[v]
}

// noteValueNames holds the canonical long name of each note value.
var noteValueNames = [...]string{
	Maxima:  "maxima",
	Long:    "long",
	Breve:   "breve",
	Whole:   "whole",
	Half:    "half",
	Quarter: "quarter",
	Eighth:  "eighth",
	N16th:   "16th",
	N32nd:   "32nd",
	N64th:   "64th",
	N128th:  "128th",
	N256th:  "256th",
	N512th:  "512th",
	N1024th: "1024th",
}

// String returns the canonical long name of the note value.
func (v NoteValue) String() string {
	if v < 0 || int(v) >= len(noteValueNames) {
		return "unknown"
	}
	return noteValueNames[v]
}

// MaxDots is the largest supported dot count on a duration spec.
const MaxDots = 4

// Spec is a symbolic duration: a base note value plus a dot count. It has no
// absolute length until resolved against a divisions value.
type Spec struct {
	Base NoteValue
	Dots int
}

// Resolve converts the spec to integer time units at the given
// divisions-per-quarter-note scale.
//
// The dot multiplier is accumulated by iterative halving (1 + 1/2 + 1/4 + ...)
// rather than the closed form 2-2^-d, and the final product is rounded
// half-away-from-zero. The rounding is only exact when divisions carries
// enough common factors (a highly composite value such as 960); choosing a
// poor divisions value silently loses precision, which is a documented
// limitation rather than something this function corrects.
func Resolve(spec Spec, divisions int) int {
	quarters := spec.Base.Quarters()
	add := quarters
	for i := 0; i < spec.Dots; i++ {
		add /= 2
		quarters += add
	}
	return int(math.Round(quarters * float64(divisions)))
}

// ApplyTuplet scales already-resolved time units by a tuplet ratio of
// actual notes in the time of normal notes, truncating the division.
//
// Dots are resolved (with rounding) before the ratio is applied (with
// truncation); preserving that two-stage, mixed-rounding order is required
// for output compatibility even though it is numerically imperfect.
func ApplyTuplet(units, actualNotes, normalNotes int) int {
	return units * normalNotes / actualNotes
}
