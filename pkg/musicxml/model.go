// Package musicxml holds the document model shared by the notation compiler
// and the MusicXML codec: a score-partwise tree of parts, measures, and
// measure content, plus the enumerated vocabulary the wire format uses.
package musicxml

// ScorePartwise is the root document: a part list followed by the parts
// themselves, each part a sequence of measures.
type ScorePartwise struct {
	Version        string
	Work           *Work
	Identification *Identification
	PartList       []ScorePart
	Parts          []Part
}

// Work carries the work-title header. Layout/credit concerns are not
// computed here; this is pass-through metadata.
type Work struct {
	Title string
}

// Identification carries encoding metadata.
type Identification struct {
	Software     string
	EncodingDate string
}

// ScorePart is one part-list entry: an id plus a display name.
type ScorePart struct {
	ID   string
	Name string
}

// Part is a sequence of measures, keyed to a ScorePart by ID.
type Part struct {
	ID       string
	Measures []Measure
}

// Measure is an ordered run of music data. If any key/time/clef was declared
// in the source measure, Content begins with exactly one Attributes element
// aggregating all of them; otherwise no Attributes element is present.
// Measures are immutable once compiled.
type Measure struct {
	Number  string
	Content []MusicData
}

// MusicData is the closed union of measure content elements.
type MusicData interface {
	musicData()
}

func (*Note) musicData()       {}
func (*Backup) musicData()     {}
func (*Forward) musicData()    {}
func (*Direction) musicData()  {}
func (*Attributes) musicData() {}
func (*Barline) musicData()    {}

// Note is one note, rest, or chord member. Three content shapes share the
// struct: grace (Grace set, no Duration), cue (Cue set, Duration, no Ties),
// and regular (Duration plus Ties). Within a chord the first note has
// Chord=false and every later note Chord=true; downstream consumers read
// Chord=true as "sounds with the preceding non-chord note", so that ordering
// is load-bearing.
type Note struct {
	Grace            *Grace
	Cue              bool
	Chord            bool
	Pitch            *Pitch
	Rest             bool
	Unpitched        bool
	Duration         int
	Ties             []Tie
	Voice            int
	Type             NoteType
	Dots             int
	Accidental       Accidental
	TimeModification *TimeModification
	Stem             Stem
	Notehead         string
	Staff            int
	Beams            []Beam
	Notations        *Notations
	Lyrics           []Lyric
}

// Grace marks the grace content shape.
type Grace struct {
	Slash bool
}

// Pitch is a step letter, chromatic alteration, and octave.
type Pitch struct {
	Step   string
	Alter  int
	Octave int
}

// Tie is a sounding tie (distinct from the notated Tied).
type Tie struct {
	Type StartStop
}

// TimeModification is a tuplet ratio: ActualNotes in the time of
// NormalNotes.
type TimeModification struct {
	ActualNotes int
	NormalNotes int
}

// Beam is one beam level.
type Beam struct {
	Number int
	Value  string
}

// Notations groups the notated markings attached to one note.
type Notations struct {
	Tieds         []Tied
	Slurs         []Slur
	Tuplets       []TupletMark
	Articulations []Articulation
	Arpeggiate    *Arpeggiate
	Fermata       *Fermata
}

// Tied is the notated counterpart of Tie.
type Tied struct {
	Type StartStop
}

// Slur spans notes between a start and stop marking.
type Slur struct {
	Type   StartStop
	Number int
}

// TupletMark brackets the notated extent of a tuplet.
type TupletMark struct {
	Type   StartStop
	Number int
}

// Arpeggiate marks a rolled chord; Direction may be empty for "present,
// direction unspecified".
type Arpeggiate struct {
	Direction ArpeggiateDirection
}

// Fermata carries its shape text as pass-through.
type Fermata struct {
	Shape string
}

// Lyric is one syllable attached to a note.
type Lyric struct {
	Number   int
	Syllabic string
	Text     string
}

// Backup moves the measure cursor backward by Duration time units.
type Backup struct {
	Duration int
}

// Forward moves the measure cursor forward by Duration time units.
type Forward struct {
	Duration int
	Voice    int
	Staff    int
}

// Direction is a performance direction (dynamics, words, tempo, ...).
type Direction struct {
	Placement string
	Types     []DirectionType
	Sound     *Sound
}

// DirectionType is the closed union of direction-type content.
type DirectionType interface {
	directionType()
}

func (Dynamics) directionType()  {}
func (Words) directionType()     {}
func (Rehearsal) directionType() {}
func (Segno) directionType()     {}
func (Coda) directionType()      {}
func (Pedal) directionType()     {}
func (Wedge) directionType()     {}
func (Metronome) directionType() {}

// Dynamics is a dynamic marking such as p or ff.
type Dynamics struct {
	Kind DynamicKind
}

// Words is free direction text.
type Words struct {
	Text string
}

// Rehearsal is a rehearsal mark.
type Rehearsal struct {
	Text string
}

// Segno is a segno sign.
type Segno struct{}

// Coda is a coda sign.
type Coda struct{}

// Pedal is a sustain-pedal marking.
type Pedal struct {
	Type PedalType
}

// Wedge is a crescendo or diminuendo hairpin.
type Wedge struct {
	Kind WedgeKind
}

// Metronome is a beat-unit = per-minute tempo marking.
type Metronome struct {
	BeatUnit     NoteType
	BeatUnitDots int
	PerMinute    int
}

// Sound carries playback hints on a direction.
type Sound struct {
	Tempo float64
}

// Attributes aggregates the key, time, and clef declarations of a measure,
// together with the divisions scale for the durations that follow.
type Attributes struct {
	Divisions int
	Keys      []Key
	Times     []Time
	Clefs     []Clef
}

// Key is a key signature in fifths, with an optional mode.
type Key struct {
	Fifths int
	Mode   string
}

// Time is a time signature.
type Time struct {
	Beats    int
	BeatType int
}

// Clef is a clef sign on a staff line.
type Clef struct {
	Sign         ClefSign
	Line         int
	OctaveChange int
}

// Barline is a bar-style/location pair with optional repeat and ending
// descriptors.
type Barline struct {
	Location BarlineLocation
	BarStyle BarStyle
	Repeat   *Repeat
	Ending   *Ending
}

// Repeat is a repeat sign on a barline.
type Repeat struct {
	Direction RepeatDirection
}

// Ending is a volta bracket on a barline.
type Ending struct {
	Number string
	Type   EndingType
}
