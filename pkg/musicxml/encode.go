package musicxml

import (
	"fmt"
	"io"
	"strconv"

	xmldom "github.com/subchen/go-xmldom"
)

const doctype = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 3.1 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">`

// DefaultVersion is the schema version written when a score does not carry
// one.
const DefaultVersion = "3.1"

// MaxBeamLevels caps how many beam elements are written per note.
const MaxBeamLevels = 8

// Encode serializes the score as a partwise MusicXML document. Child
// elements and attributes are written in the schema-mandated order for each
// node type; that order is fixed here, not inferred from the model's field
// order. Given a well-formed score the serializer itself cannot fail, so the
// only error path is the writer's (see WriteTo).
func Encode(score *ScorePartwise) string {
	doc := xmldom.NewDocument("score-partwise")
	doc.Directives = append(doc.Directives, doctype)

	root := doc.Root
	version := score.Version
	if version == "" {
		version = DefaultVersion
	}
	root.SetAttributeValue("version", version)

	if score.Work != nil {
		work := root.CreateNode("work")
		title := work.CreateNode("work-title")
		title.Text = score.Work.Title
	}
	if score.Identification != nil {
		ident := root.CreateNode("identification")
		encoding := ident.CreateNode("encoding")
		if score.Identification.Software != "" {
			software := encoding.CreateNode("software")
			software.Text = score.Identification.Software
		}
		if score.Identification.EncodingDate != "" {
			date := encoding.CreateNode("encoding-date")
			date.Text = score.Identification.EncodingDate
		}
	}

	partList := root.CreateNode("part-list")
	for _, sp := range score.PartList {
		node := partList.CreateNode("score-part")
		node.SetAttributeValue("id", sp.ID)
		name := node.CreateNode("part-name")
		name.Text = sp.Name
	}

	for i := range score.Parts {
		encodePart(root, &score.Parts[i])
	}

	return doc.XMLPretty()
}

// WriteTo writes the encoded document to w, wrapping any writer failure.
func WriteTo(w io.Writer, score *ScorePartwise) error {
	if _, err := io.WriteString(w, Encode(score)); err != nil {
		return fmt.Errorf("write musicxml document: %w", err)
	}
	return nil
}

func encodePart(root *xmldom.Node, part *Part) {
	node := root.CreateNode("part")
	node.SetAttributeValue("id", part.ID)
	for i := range part.Measures {
		encodeMeasure(node, &part.Measures[i])
	}
}

func encodeMeasure(parent *xmldom.Node, m *Measure) {
	node := parent.CreateNode("measure")
	node.SetAttributeValue("number", m.Number)
	for _, data := range m.Content {
		switch el := data.(type) {
		case *Note:
			encodeNote(node, el)
		case *Backup:
			backup := node.CreateNode("backup")
			intChild(backup, "duration", el.Duration)
		case *Forward:
			forward := node.CreateNode("forward")
			intChild(forward, "duration", el.Duration)
			if el.Voice > 0 {
				intChild(forward, "voice", el.Voice)
			}
			if el.Staff > 0 {
				intChild(forward, "staff", el.Staff)
			}
		case *Direction:
			encodeDirection(node, el)
		case *Attributes:
			encodeAttributes(node, el)
		case *Barline:
			encodeBarline(node, el)
		}
	}
}

// encodeNote writes note children in schema order: grace/cue, chord, the
// pitch/rest/unpitched core, duration, ties, voice, type, dots, accidental,
// time-modification, stem, notehead, staff, beams, notations, lyrics.
func encodeNote(parent *xmldom.Node, n *Note) {
	node := parent.CreateNode("note")

	if n.Grace != nil {
		grace := node.CreateNode("grace")
		if n.Grace.Slash {
			grace.SetAttributeValue("slash", "yes")
		}
	} else if n.Cue {
		node.CreateNode("cue")
	}
	if n.Chord {
		node.CreateNode("chord")
	}

	switch {
	case n.Rest:
		node.CreateNode("rest")
	case n.Unpitched:
		node.CreateNode("unpitched")
	case n.Pitch != nil:
		pitch := node.CreateNode("pitch")
		step := pitch.CreateNode("step")
		step.Text = n.Pitch.Step
		if n.Pitch.Alter != 0 {
			intChild(pitch, "alter", n.Pitch.Alter)
		}
		intChild(pitch, "octave", n.Pitch.Octave)
	}

	// Grace notes carry no absolute duration.
	if n.Grace == nil {
		intChild(node, "duration", n.Duration)
	}
	for _, tie := range n.Ties {
		node.CreateNode("tie").SetAttributeValue("type", string(tie.Type))
	}
	if n.Voice > 0 {
		intChild(node, "voice", n.Voice)
	}
	if n.Type != "" {
		typ := node.CreateNode("type")
		typ.Text = string(n.Type)
	}
	for i := 0; i < n.Dots; i++ {
		node.CreateNode("dot")
	}
	if n.Accidental != "" {
		acc := node.CreateNode("accidental")
		acc.Text = string(n.Accidental)
	}
	if n.TimeModification != nil {
		tm := node.CreateNode("time-modification")
		intChild(tm, "actual-notes", n.TimeModification.ActualNotes)
		intChild(tm, "normal-notes", n.TimeModification.NormalNotes)
	}
	if n.Stem != "" {
		stem := node.CreateNode("stem")
		stem.Text = string(n.Stem)
	}
	if n.Notehead != "" {
		head := node.CreateNode("notehead")
		head.Text = n.Notehead
	}
	if n.Staff > 0 {
		intChild(node, "staff", n.Staff)
	}
	for i, beam := range n.Beams {
		if i >= MaxBeamLevels {
			break
		}
		b := node.CreateNode("beam")
		b.SetAttributeValue("number", strconv.Itoa(beam.Number))
		b.Text = beam.Value
	}
	if n.Notations != nil {
		encodeNotations(node, n.Notations)
	}
	for _, lyric := range n.Lyrics {
		l := node.CreateNode("lyric")
		if lyric.Number > 0 {
			l.SetAttributeValue("number", strconv.Itoa(lyric.Number))
		}
		if lyric.Syllabic != "" {
			syl := l.CreateNode("syllabic")
			syl.Text = lyric.Syllabic
		}
		text := l.CreateNode("text")
		text.Text = lyric.Text
	}
}

func encodeNotations(parent *xmldom.Node, nn *Notations) {
	node := parent.CreateNode("notations")
	for _, tied := range nn.Tieds {
		node.CreateNode("tied").SetAttributeValue("type", string(tied.Type))
	}
	for _, slur := range nn.Slurs {
		s := node.CreateNode("slur")
		s.SetAttributeValue("type", string(slur.Type))
		if slur.Number > 0 {
			s.SetAttributeValue("number", strconv.Itoa(slur.Number))
		}
	}
	for _, tup := range nn.Tuplets {
		t := node.CreateNode("tuplet")
		t.SetAttributeValue("type", string(tup.Type))
		if tup.Number > 0 {
			t.SetAttributeValue("number", strconv.Itoa(tup.Number))
		}
	}
	if len(nn.Articulations) > 0 {
		arts := node.CreateNode("articulations")
		for _, art := range nn.Articulations {
			arts.CreateNode(string(art))
		}
	}
	if nn.Fermata != nil {
		fermata := node.CreateNode("fermata")
		fermata.Text = nn.Fermata.Shape
	}
	if nn.Arpeggiate != nil {
		arp := node.CreateNode("arpeggiate")
		if nn.Arpeggiate.Direction != "" {
			arp.SetAttributeValue("direction", string(nn.Arpeggiate.Direction))
		}
	}
}

// encodeAttributes writes divisions, keys, times, then clefs, the schema
// order for the attributes block.
func encodeAttributes(parent *xmldom.Node, a *Attributes) {
	node := parent.CreateNode("attributes")
	if a.Divisions > 0 {
		intChild(node, "divisions", a.Divisions)
	}
	for _, key := range a.Keys {
		k := node.CreateNode("key")
		intChild(k, "fifths", key.Fifths)
		if key.Mode != "" {
			mode := k.CreateNode("mode")
			mode.Text = key.Mode
		}
	}
	for _, time := range a.Times {
		t := node.CreateNode("time")
		intChild(t, "beats", time.Beats)
		intChild(t, "beat-type", time.BeatType)
	}
	for _, clef := range a.Clefs {
		c := node.CreateNode("clef")
		sign := c.CreateNode("sign")
		sign.Text = string(clef.Sign)
		if clef.Line > 0 {
			intChild(c, "line", clef.Line)
		}
		if clef.OctaveChange != 0 {
			intChild(c, "clef-octave-change", clef.OctaveChange)
		}
	}
}

func encodeDirection(parent *xmldom.Node, d *Direction) {
	node := parent.CreateNode("direction")
	if d.Placement != "" {
		node.SetAttributeValue("placement", d.Placement)
	}
	for _, dt := range d.Types {
		wrap := node.CreateNode("direction-type")
		switch el := dt.(type) {
		case Dynamics:
			dyn := wrap.CreateNode("dynamics")
			dyn.CreateNode(string(el.Kind))
		case Words:
			words := wrap.CreateNode("words")
			words.Text = el.Text
		case Rehearsal:
			reh := wrap.CreateNode("rehearsal")
			reh.Text = el.Text
		case Segno:
			wrap.CreateNode("segno")
		case Coda:
			wrap.CreateNode("coda")
		case Pedal:
			wrap.CreateNode("pedal").SetAttributeValue("type", string(el.Type))
		case Wedge:
			wrap.CreateNode("wedge").SetAttributeValue("type", string(el.Kind))
		case Metronome:
			met := wrap.CreateNode("metronome")
			unit := met.CreateNode("beat-unit")
			unit.Text = string(el.BeatUnit)
			for i := 0; i < el.BeatUnitDots; i++ {
				met.CreateNode("beat-unit-dot")
			}
			intChild(met, "per-minute", el.PerMinute)
		}
	}
	if d.Sound != nil {
		sound := node.CreateNode("sound")
		sound.SetAttributeValue("tempo", strconv.FormatFloat(d.Sound.Tempo, 'f', -1, 64))
	}
}

// encodeBarline writes the location attribute first, then bar-style, ending,
// and repeat in schema order.
func encodeBarline(parent *xmldom.Node, b *Barline) {
	node := parent.CreateNode("barline")
	if b.Location != "" {
		node.SetAttributeValue("location", string(b.Location))
	}
	if b.BarStyle != "" {
		style := node.CreateNode("bar-style")
		style.Text = string(b.BarStyle)
	}
	if b.Ending != nil {
		ending := node.CreateNode("ending")
		ending.SetAttributeValue("number", b.Ending.Number)
		ending.SetAttributeValue("type", string(b.Ending.Type))
	}
	if b.Repeat != nil {
		node.CreateNode("repeat").SetAttributeValue("direction", string(b.Repeat.Direction))
	}
}

func intChild(parent *xmldom.Node, name string, value int) {
	node := parent.CreateNode(name)
	node.Text = strconv.Itoa(value)
}
