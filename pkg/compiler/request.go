package compiler

import (
	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// MeasureElement is the closed set of requests a measure form can contain.
// Source order is preserved for every variant except Key, Time, and Clef,
// which are hoisted into a single leading attributes block when the measure
// is compiled.
type MeasureElement interface {
	measureElement()
}

func (NoteRequest) measureElement() {}
func (RestRequest) measureElement() {}
func (ChordRequest) measureElement() {}
func (TupletRequest) measureElement() {}
func (GraceRequest) measureElement() {}
func (KeyRequest) measureElement() {}
func (TimeRequest) measureElement() {}
func (ClefRequest) measureElement() {}
func (BarlineRequest) measureElement() {}
func (TempoRequest) measureElement() {}
func (BackupRequest) measureElement() {}
func (ForwardRequest) measureElement() {}
func (DynamicRequest) measureElement() {}
func (DirectionRequest) measureElement() {}
func (SlurRequest) measureElement() {}
func (TieRequest) measureElement() {}
func (FermataRequest) measureElement() {}

// Pitch is a parsed pitch token: step letter, chromatic alteration, octave.
type Pitch struct {
	Step   string
	Alter  int
	Octave int
}

// NoteOptions carries the keyword arguments shared by note, rest, chord,
// and grace forms.
type NoteOptions struct {
	Voice         int
	Staff         int
	Stem          musicxml.Stem
	Articulations []musicxml.Articulation
	Arpeggiate    bool
	ArpeggiateDir musicxml.ArpeggiateDirection
}

// NoteRequest is a single pitched note.
type NoteRequest struct {
	Pitch    Pitch
	Duration duration.Spec
	Opts     NoteOptions
}

// RestRequest is a silent duration.
type RestRequest struct {
	Duration duration.Spec
	Opts     NoteOptions
}

// ChordRequest is a set of pitches sounding together for one shared
// duration.
type ChordRequest struct {
	Pitches  []Pitch
	Duration duration.Spec
	Opts     NoteOptions
}

// TupletRequest compresses its elements by the ratio Actual:Normal.
type TupletRequest struct {
	Actual   int
	Normal   int
	Elements []MeasureElement
}

// GraceRequest is an ornamental note with no absolute duration.
type GraceRequest struct {
	Pitch    Pitch
	Duration duration.Spec
	Slash    bool
	Opts     NoteOptions
}

// KeyRequest declares a key signature.
type KeyRequest struct {
	Fifths int
	Mode   string
}

// TimeRequest declares a time signature.
type TimeRequest struct {
	Beats    int
	BeatType int
}

// ClefRequest declares a clef.
type ClefRequest struct {
	Sign         musicxml.ClefSign
	Line         int
	OctaveChange int
}

// BarlineKind is the closed set of symbolic barline requests.
type BarlineKind int

const (
	BarlineRegular BarlineKind = iota
	BarlineDouble
	BarlineFinal
	BarlineRepeatForward
	BarlineRepeatBackward
	BarlineRepeatBoth
	BarlineEnding
)

// BarlineRequest selects one of the symbolic barline kinds; the ending
// fields are meaningful only for BarlineEnding.
type BarlineRequest struct {
	Kind         BarlineKind
	EndingNumber int
	EndingType   musicxml.EndingType
}

// TempoRequest sets the tempo as a beat unit and beats per minute.
type TempoRequest struct {
	BeatUnit  duration.Spec
	PerMinute int
}

// BackupRequest moves the measure cursor backward by Beats quarter-note
// beats.
type BackupRequest struct {
	Beats float64
}

// ForwardRequest moves the measure cursor forward by Beats quarter-note
// beats.
type ForwardRequest struct {
	Beats float64
	Voice int
	Staff int
}

// DynamicRequest is a dynamic marking given as a bare symbol (p, ff, ...).
type DynamicRequest struct {
	Kind musicxml.DynamicKind
}

// DirectionRequest wraps a direction-type payload parsed from a direction
// form (words, rehearsal, segno, coda, pedal, wedge).
type DirectionRequest struct {
	Placement string
	Type      musicxml.DirectionType
}

// SlurRequest, TieRequest, and FermataRequest are accepted as measure
// elements but compile to nothing: they are meant to attach to notes, and
// standalone handling is an open question. See the measure compiler.
type SlurRequest struct {
	Type musicxml.StartStop
}

// TieRequest marks a tie as a standalone measure element.
type TieRequest struct {
	Type musicxml.StartStop
}

// FermataRequest marks a fermata as a standalone measure element.
type FermataRequest struct{}
