package musicxml

import (
	"fmt"

	"github.com/james-see/lisp2mxl/pkg/duration"
)

// The enumerated vocabulary below follows one contract: every domain value
// has exactly one canonical wire string (the typed constant itself), and the
// Parse function is its inverse, rejecting anything outside the set. The
// serializer never emits a value missing from these sets because compilation
// cannot produce one.

// NoteType is the graphical note value name.
type NoteType string

const (
	TypeMaxima  NoteType = "maxima"
	TypeLong    NoteType = "long"
	TypeBreve   NoteType = "breve"
	TypeWhole   NoteType = "whole"
	TypeHalf    NoteType = "half"
	TypeQuarter NoteType = "quarter"
	TypeEighth  NoteType = "eighth"
	Type16th    NoteType = "16th"
	Type32nd    NoteType = "32nd"
	Type64th    NoteType = "64th"
	Type128th   NoteType = "128th"
	Type256th   NoteType = "256th"
	Type512th   NoteType = "512th"
	Type1024th  NoteType = "1024th"
)

var noteTypeByValue = map[duration.NoteValue]NoteType{
	duration.Maxima:  TypeMaxima,
	duration.Long:    TypeLong,
	duration.Breve:   TypeBreve,
	duration.Whole:   TypeWhole,
	duration.Half:    TypeHalf,
	duration.Quarter: TypeQuarter,
	duration.Eighth:  TypeEighth,
	duration.N16th:   Type16th,
	duration.N32nd:   Type32nd,
	duration.N64th:   Type64th,
	duration.N128th:  Type128th,
	duration.N256th:  Type256th,
	duration.N512th:  Type512th,
	duration.N1024th: Type1024th,
}

var noteTypes = inverse(noteTypeByValue)

// NoteTypeFor maps a symbolic note value to its wire name.
func NoteTypeFor(v duration.NoteValue) NoteType {
	return noteTypeByValue[v]
}

// ParseNoteType is the inverse of NoteTypeFor over wire strings.
func ParseNoteType(s string) (NoteType, error) {
	if _, ok := noteTypes[NoteType(s)]; !ok {
		return "", fmt.Errorf("unknown note type %q", s)
	}
	return NoteType(s), nil
}

func inverse[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Accidental is a notated accidental kind.
type Accidental string

const (
	AccSharp       Accidental = "sharp"
	AccFlat        Accidental = "flat"
	AccNatural     Accidental = "natural"
	AccDoubleSharp Accidental = "double-sharp"
	AccFlatFlat    Accidental = "flat-flat"
)

var accidentals = stringSet(AccSharp, AccFlat, AccNatural, AccDoubleSharp, AccFlatFlat)

// ParseAccidental validates an accidental wire string.
func ParseAccidental(s string) (Accidental, error) {
	if !accidentals[Accidental(s)] {
		return "", fmt.Errorf("unknown accidental %q", s)
	}
	return Accidental(s), nil
}

// Stem is a stem direction.
type Stem string

const (
	StemUp     Stem = "up"
	StemDown   Stem = "down"
	StemNone   Stem = "none"
	StemDouble Stem = "double"
)

var stems = stringSet(StemUp, StemDown, StemNone, StemDouble)

// ParseStem validates a stem wire string.
func ParseStem(s string) (Stem, error) {
	if !stems[Stem(s)] {
		return "", fmt.Errorf("unknown stem direction %q", s)
	}
	return Stem(s), nil
}

// ClefSign is a clef sign letter.
type ClefSign string

const (
	ClefG          ClefSign = "G"
	ClefF          ClefSign = "F"
	ClefC          ClefSign = "C"
	ClefPercussion ClefSign = "percussion"
	ClefTAB        ClefSign = "TAB"
)

var clefSigns = stringSet(ClefG, ClefF, ClefC, ClefPercussion, ClefTAB)

// ParseClefSign validates a clef sign wire string.
func ParseClefSign(s string) (ClefSign, error) {
	if !clefSigns[ClefSign(s)] {
		return "", fmt.Errorf("unknown clef sign %q", s)
	}
	return ClefSign(s), nil
}

// BarStyle is a barline drawing style.
type BarStyle string

const (
	BarRegular    BarStyle = "regular"
	BarDotted     BarStyle = "dotted"
	BarDashed     BarStyle = "dashed"
	BarHeavy      BarStyle = "heavy"
	BarLightLight BarStyle = "light-light"
	BarLightHeavy BarStyle = "light-heavy"
	BarHeavyLight BarStyle = "heavy-light"
	BarHeavyHeavy BarStyle = "heavy-heavy"
	BarTick       BarStyle = "tick"
	BarShort      BarStyle = "short"
	BarNone       BarStyle = "none"
)

var barStyles = stringSet(BarRegular, BarDotted, BarDashed, BarHeavy,
	BarLightLight, BarLightHeavy, BarHeavyLight, BarHeavyHeavy,
	BarTick, BarShort, BarNone)

// ParseBarStyle validates a bar-style wire string.
func ParseBarStyle(s string) (BarStyle, error) {
	if !barStyles[BarStyle(s)] {
		return "", fmt.Errorf("unknown bar style %q", s)
	}
	return BarStyle(s), nil
}

// BarlineLocation is where a barline sits within its measure.
type BarlineLocation string

const (
	LocationLeft   BarlineLocation = "left"
	LocationMiddle BarlineLocation = "middle"
	LocationRight  BarlineLocation = "right"
)

var barlineLocations = stringSet(LocationLeft, LocationMiddle, LocationRight)

// ParseBarlineLocation validates a barline location wire string.
func ParseBarlineLocation(s string) (BarlineLocation, error) {
	if !barlineLocations[BarlineLocation(s)] {
		return "", fmt.Errorf("unknown barline location %q", s)
	}
	return BarlineLocation(s), nil
}

// RepeatDirection is the direction of a repeat sign.
type RepeatDirection string

const (
	RepeatForward  RepeatDirection = "forward"
	RepeatBackward RepeatDirection = "backward"
)

var repeatDirections = stringSet(RepeatForward, RepeatBackward)

// ParseRepeatDirection validates a repeat direction wire string.
func ParseRepeatDirection(s string) (RepeatDirection, error) {
	if !repeatDirections[RepeatDirection(s)] {
		return "", fmt.Errorf("unknown repeat direction %q", s)
	}
	return RepeatDirection(s), nil
}

// EndingType is a volta action.
type EndingType string

const (
	EndingStart       EndingType = "start"
	EndingStop        EndingType = "stop"
	EndingDiscontinue EndingType = "discontinue"
)

var endingTypes = stringSet(EndingStart, EndingStop, EndingDiscontinue)

// ParseEndingType validates an ending type wire string.
func ParseEndingType(s string) (EndingType, error) {
	if !endingTypes[EndingType(s)] {
		return "", fmt.Errorf("unknown ending type %q", s)
	}
	return EndingType(s), nil
}

// StartStop marks the two ends of a spanning notation.
type StartStop string

const (
	Start StartStop = "start"
	Stop  StartStop = "stop"
)

var startStops = stringSet(Start, Stop)

// ParseStartStop validates a start/stop wire string.
func ParseStartStop(s string) (StartStop, error) {
	if !startStops[StartStop(s)] {
		return "", fmt.Errorf("unknown start/stop value %q", s)
	}
	return StartStop(s), nil
}

// DynamicKind is a dynamic marking name; the wire element is named after it.
type DynamicKind string

const (
	DynPPPP DynamicKind = "pppp"
	DynPPP  DynamicKind = "ppp"
	DynPP   DynamicKind = "pp"
	DynP    DynamicKind = "p"
	DynMP   DynamicKind = "mp"
	DynMF   DynamicKind = "mf"
	DynF    DynamicKind = "f"
	DynFF   DynamicKind = "ff"
	DynFFF  DynamicKind = "fff"
	DynFFFF DynamicKind = "ffff"
	DynSF   DynamicKind = "sf"
	DynSFZ  DynamicKind = "sfz"
	DynFP   DynamicKind = "fp"
	DynRF   DynamicKind = "rf"
)

var dynamicKinds = stringSet(DynPPPP, DynPPP, DynPP, DynP, DynMP, DynMF,
	DynF, DynFF, DynFFF, DynFFFF, DynSF, DynSFZ, DynFP, DynRF)

// ParseDynamicKind validates a dynamics element name.
func ParseDynamicKind(s string) (DynamicKind, error) {
	if !dynamicKinds[DynamicKind(s)] {
		return "", fmt.Errorf("unknown dynamic %q", s)
	}
	return DynamicKind(s), nil
}

// IsDynamicKind reports whether s names a dynamic marking.
func IsDynamicKind(s string) bool {
	return dynamicKinds[DynamicKind(s)]
}

// WedgeKind is a hairpin kind.
type WedgeKind string

const (
	WedgeCrescendo  WedgeKind = "crescendo"
	WedgeDiminuendo WedgeKind = "diminuendo"
	WedgeStop       WedgeKind = "stop"
)

var wedgeKinds = stringSet(WedgeCrescendo, WedgeDiminuendo, WedgeStop)

// ParseWedgeKind validates a wedge type wire string.
func ParseWedgeKind(s string) (WedgeKind, error) {
	if !wedgeKinds[WedgeKind(s)] {
		return "", fmt.Errorf("unknown wedge kind %q", s)
	}
	return WedgeKind(s), nil
}

// PedalType is a pedal marking action.
type PedalType string

const (
	PedalStart    PedalType = "start"
	PedalStop     PedalType = "stop"
	PedalChange   PedalType = "change"
	PedalContinue PedalType = "continue"
)

var pedalTypes = stringSet(PedalStart, PedalStop, PedalChange, PedalContinue)

// ParsePedalType validates a pedal type wire string.
func ParsePedalType(s string) (PedalType, error) {
	if !pedalTypes[PedalType(s)] {
		return "", fmt.Errorf("unknown pedal type %q", s)
	}
	return PedalType(s), nil
}

// Articulation is an articulation mark; the wire element is named after it.
type Articulation string

const (
	ArtStaccato      Articulation = "staccato"
	ArtAccent        Articulation = "accent"
	ArtTenuto        Articulation = "tenuto"
	ArtStrongAccent  Articulation = "strong-accent"
	ArtStaccatissimo Articulation = "staccatissimo"
	ArtSpiccato      Articulation = "spiccato"
)

var articulations = stringSet(ArtStaccato, ArtAccent, ArtTenuto,
	ArtStrongAccent, ArtStaccatissimo, ArtSpiccato)

// ParseArticulation validates an articulation element name.
func ParseArticulation(s string) (Articulation, error) {
	if !articulations[Articulation(s)] {
		return "", fmt.Errorf("unknown articulation %q", s)
	}
	return Articulation(s), nil
}

// ArpeggiateDirection is the roll direction of an arpeggio marking; empty
// means present with unspecified direction.
type ArpeggiateDirection string

const (
	ArpeggiateUp   ArpeggiateDirection = "up"
	ArpeggiateDown ArpeggiateDirection = "down"
)

// ParseArpeggiateDirection validates an arpeggiate direction attribute.
func ParseArpeggiateDirection(s string) (ArpeggiateDirection, error) {
	switch ArpeggiateDirection(s) {
	case ArpeggiateUp, ArpeggiateDown:
		return ArpeggiateDirection(s), nil
	}
	return "", fmt.Errorf("unknown arpeggiate direction %q", s)
}

func stringSet[T comparable](vals ...T) map[T]bool {
	out := make(map[T]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}
