package musicxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Decode reads a partwise MusicXML document and reconstructs the score
// model. The alternative timewise root is rejected, not converted. Beyond
// well-formedness the decoder checks structure: required elements and
// attributes, and that every part references a declared score-part.
func Decode(r io.Reader) (*ScorePartwise, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	p := &parser{d: d}
	return p.parseDocument()
}

// DecodeString decodes an in-memory document.
func DecodeString(s string) (*ScorePartwise, error) {
	return Decode(strings.NewReader(s))
}

type parser struct {
	d *xml.Decoder
}

func (p *parser) offset() int64 { return p.d.InputOffset() }

func (p *parser) xmlErr(err error) error {
	if err == io.EOF {
		return &XMLError{Msg: "unexpected end of document", Offset: p.offset()}
	}
	return &XMLError{Msg: err.Error(), Offset: p.offset()}
}

func (p *parser) skip() error {
	if err := p.d.Skip(); err != nil {
		return p.xmlErr(err)
	}
	return nil
}

func (p *parser) parseDocument() (*ScorePartwise, error) {
	for {
		tok, err := p.d.Token()
		if err != nil {
			return nil, p.xmlErr(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "score-partwise":
			return p.parseScore(start)
		case "score-timewise":
			return nil, &XMLError{Msg: "timewise documents are not supported, expected score-partwise root", Offset: p.offset()}
		default:
			return nil, &XMLError{Msg: "unexpected root element <" + start.Name.Local + ">, expected score-partwise", Offset: p.offset()}
		}
	}
}

func (p *parser) parseScore(start xml.StartElement) (*ScorePartwise, error) {
	score := &ScorePartwise{Version: attr(start, "version")}
	declared := map[string]bool{}
	sawPartList := false

	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "work":
			work, err := p.parseWork()
			if err != nil {
				return err
			}
			score.Work = work
		case "identification":
			ident, err := p.parseIdentification()
			if err != nil {
				return err
			}
			score.Identification = ident
		case "part-list":
			sawPartList = true
			list, err := p.parsePartList()
			if err != nil {
				return err
			}
			score.PartList = list
			for _, sp := range list {
				declared[sp.ID] = true
			}
		case "part":
			part, err := p.parsePart(child, declared)
			if err != nil {
				return err
			}
			score.Parts = append(score.Parts, *part)
		default:
			return p.skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !sawPartList {
		return nil, &MissingElementError{Element: "part-list", Parent: "score-partwise", Offset: p.offset()}
	}
	return score, nil
}

func (p *parser) parseWork() (*Work, error) {
	work := &Work{}
	err := p.children(func(child xml.StartElement) error {
		if child.Name.Local == "work-title" {
			text, err := p.text()
			if err != nil {
				return err
			}
			work.Title = text
			return nil
		}
		return p.skip()
	})
	return work, err
}

func (p *parser) parseIdentification() (*Identification, error) {
	ident := &Identification{}
	err := p.children(func(child xml.StartElement) error {
		if child.Name.Local != "encoding" {
			return p.skip()
		}
		return p.children(func(enc xml.StartElement) error {
			switch enc.Name.Local {
			case "software":
				text, err := p.text()
				if err != nil {
					return err
				}
				ident.Software = text
			case "encoding-date":
				text, err := p.text()
				if err != nil {
					return err
				}
				ident.EncodingDate = text
			default:
				return p.skip()
			}
			return nil
		})
	})
	return ident, err
}

func (p *parser) parsePartList() ([]ScorePart, error) {
	var list []ScorePart
	err := p.children(func(child xml.StartElement) error {
		if child.Name.Local != "score-part" {
			return p.skip()
		}
		id := attr(child, "id")
		if id == "" {
			return &MissingAttributeError{Attribute: "id", Element: "score-part", Offset: p.offset()}
		}
		sp := ScorePart{ID: id}
		sawName := false
		err := p.children(func(field xml.StartElement) error {
			if field.Name.Local == "part-name" {
				text, err := p.text()
				if err != nil {
					return err
				}
				sp.Name = text
				sawName = true
				return nil
			}
			return p.skip()
		})
		if err != nil {
			return err
		}
		if !sawName {
			return &MissingElementError{Element: "part-name", Parent: "score-part", Offset: p.offset()}
		}
		list = append(list, sp)
		return nil
	})
	return list, err
}

func (p *parser) parsePart(start xml.StartElement, declared map[string]bool) (*Part, error) {
	id := attr(start, "id")
	if id == "" {
		return nil, &MissingAttributeError{Attribute: "id", Element: "part", Offset: p.offset()}
	}
	if !declared[id] {
		return nil, &UndefinedReferenceError{ReferenceType: "part", ID: id, Offset: p.offset()}
	}
	part := &Part{ID: id}
	err := p.children(func(child xml.StartElement) error {
		if child.Name.Local != "measure" {
			return p.skip()
		}
		m, err := p.parseMeasure(child)
		if err != nil {
			return err
		}
		part.Measures = append(part.Measures, *m)
		return nil
	})
	return part, err
}

func (p *parser) parseMeasure(start xml.StartElement) (*Measure, error) {
	number := attr(start, "number")
	if number == "" {
		return nil, &MissingAttributeError{Attribute: "number", Element: "measure", Offset: p.offset()}
	}
	m := &Measure{Number: number}
	err := p.children(func(child xml.StartElement) error {
		var el MusicData
		var err error
		switch child.Name.Local {
		case "note":
			el, err = p.parseNote()
		case "backup":
			el, err = p.parseBackup()
		case "forward":
			el, err = p.parseForward()
		case "direction":
			el, err = p.parseDirection(child)
		case "attributes":
			el, err = p.parseAttributes()
		case "barline":
			el, err = p.parseBarline(child)
		default:
			return p.skip()
		}
		if err != nil {
			return err
		}
		m.Content = append(m.Content, el)
		return nil
	})
	return m, err
}

func (p *parser) parseNote() (*Note, error) {
	n := &Note{}
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "grace":
			n.Grace = &Grace{Slash: attr(child, "slash") == "yes"}
			return p.skip()
		case "cue":
			n.Cue = true
			return p.skip()
		case "chord":
			n.Chord = true
			return p.skip()
		case "pitch":
			pitch, err := p.parsePitch()
			if err != nil {
				return err
			}
			n.Pitch = pitch
		case "rest":
			n.Rest = true
			return p.skip()
		case "unpitched":
			n.Unpitched = true
			return p.skip()
		case "duration":
			d, err := p.intText()
			if err != nil {
				return err
			}
			n.Duration = d
		case "tie":
			typ, err := p.startStopAttr(child, "tie")
			if err != nil {
				return err
			}
			n.Ties = append(n.Ties, Tie{Type: typ})
			return p.skip()
		case "voice":
			v, err := p.intText()
			if err != nil {
				return err
			}
			n.Voice = v
		case "type":
			text, err := p.text()
			if err != nil {
				return err
			}
			typ, perr := ParseNoteType(text)
			if perr != nil {
				return &InvalidValueError{Type: "note type", Value: text, Offset: p.offset()}
			}
			n.Type = typ
		case "dot":
			n.Dots++
			return p.skip()
		case "accidental":
			text, err := p.text()
			if err != nil {
				return err
			}
			acc, perr := ParseAccidental(text)
			if perr != nil {
				return &InvalidValueError{Type: "accidental", Value: text, Offset: p.offset()}
			}
			n.Accidental = acc
		case "time-modification":
			tm, err := p.parseTimeModification()
			if err != nil {
				return err
			}
			n.TimeModification = tm
		case "stem":
			text, err := p.text()
			if err != nil {
				return err
			}
			stem, perr := ParseStem(text)
			if perr != nil {
				return &InvalidValueError{Type: "stem direction", Value: text, Offset: p.offset()}
			}
			n.Stem = stem
		case "notehead":
			text, err := p.text()
			if err != nil {
				return err
			}
			n.Notehead = text
		case "staff":
			s, err := p.intText()
			if err != nil {
				return err
			}
			n.Staff = s
		case "beam":
			number := 1
			if raw := attr(child, "number"); raw != "" {
				v, err := strconv.Atoi(raw)
				if err != nil {
					return &InvalidValueError{Type: "integer", Value: raw, Offset: p.offset()}
				}
				number = v
			}
			text, err := p.text()
			if err != nil {
				return err
			}
			n.Beams = append(n.Beams, Beam{Number: number, Value: text})
		case "notations":
			nn, err := p.parseNotations()
			if err != nil {
				return err
			}
			n.Notations = nn
		case "lyric":
			lyric, err := p.parseLyric(child)
			if err != nil {
				return err
			}
			n.Lyrics = append(n.Lyrics, *lyric)
		default:
			return p.skip()
		}
		return nil
	})
	return n, err
}

func (p *parser) parsePitch() (*Pitch, error) {
	pitch := &Pitch{}
	sawStep, sawOctave := false, false
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "step":
			text, err := p.text()
			if err != nil {
				return err
			}
			if len(text) != 1 || text[0] < 'A' || text[0] > 'G' {
				return &InvalidValueError{Type: "step letter", Value: text, Offset: p.offset()}
			}
			pitch.Step = text
			sawStep = true
		case "alter":
			v, err := p.intText()
			if err != nil {
				return err
			}
			pitch.Alter = v
		case "octave":
			v, err := p.intText()
			if err != nil {
				return err
			}
			pitch.Octave = v
			sawOctave = true
		default:
			return p.skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !sawStep {
		return nil, &MissingElementError{Element: "step", Parent: "pitch", Offset: p.offset()}
	}
	if !sawOctave {
		return nil, &MissingElementError{Element: "octave", Parent: "pitch", Offset: p.offset()}
	}
	return pitch, nil
}

func (p *parser) parseTimeModification() (*TimeModification, error) {
	tm := &TimeModification{}
	sawActual, sawNormal := false, false
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "actual-notes":
			v, err := p.intText()
			if err != nil {
				return err
			}
			tm.ActualNotes = v
			sawActual = true
		case "normal-notes":
			v, err := p.intText()
			if err != nil {
				return err
			}
			tm.NormalNotes = v
			sawNormal = true
		default:
			return p.skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !sawActual {
		return nil, &MissingElementError{Element: "actual-notes", Parent: "time-modification", Offset: p.offset()}
	}
	if !sawNormal {
		return nil, &MissingElementError{Element: "normal-notes", Parent: "time-modification", Offset: p.offset()}
	}
	return tm, nil
}

func (p *parser) parseNotations() (*Notations, error) {
	nn := &Notations{}
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "tied":
			typ, err := p.startStopAttr(child, "tied")
			if err != nil {
				return err
			}
			nn.Tieds = append(nn.Tieds, Tied{Type: typ})
			return p.skip()
		case "slur":
			typ, err := p.startStopAttr(child, "slur")
			if err != nil {
				return err
			}
			slur := Slur{Type: typ}
			if raw := attr(child, "number"); raw != "" {
				v, aerr := strconv.Atoi(raw)
				if aerr != nil {
					return &InvalidValueError{Type: "integer", Value: raw, Offset: p.offset()}
				}
				slur.Number = v
			}
			nn.Slurs = append(nn.Slurs, slur)
			return p.skip()
		case "tuplet":
			typ, err := p.startStopAttr(child, "tuplet")
			if err != nil {
				return err
			}
			tup := TupletMark{Type: typ}
			if raw := attr(child, "number"); raw != "" {
				v, aerr := strconv.Atoi(raw)
				if aerr != nil {
					return &InvalidValueError{Type: "integer", Value: raw, Offset: p.offset()}
				}
				tup.Number = v
			}
			nn.Tuplets = append(nn.Tuplets, tup)
			return p.skip()
		case "articulations":
			return p.children(func(art xml.StartElement) error {
				kind, perr := ParseArticulation(art.Name.Local)
				if perr != nil {
					return &InvalidValueError{Type: "articulation", Value: art.Name.Local, Offset: p.offset()}
				}
				nn.Articulations = append(nn.Articulations, kind)
				return p.skip()
			})
		case "fermata":
			text, err := p.text()
			if err != nil {
				return err
			}
			nn.Fermata = &Fermata{Shape: text}
		case "arpeggiate":
			arp := &Arpeggiate{}
			if raw := attr(child, "direction"); raw != "" {
				dir, perr := ParseArpeggiateDirection(raw)
				if perr != nil {
					return &InvalidValueError{Type: "arpeggiate direction", Value: raw, Offset: p.offset()}
				}
				arp.Direction = dir
			}
			nn.Arpeggiate = arp
			return p.skip()
		default:
			return p.skip()
		}
		return nil
	})
	return nn, err
}

func (p *parser) parseLyric(start xml.StartElement) (*Lyric, error) {
	lyric := &Lyric{}
	if raw := attr(start, "number"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &InvalidValueError{Type: "integer", Value: raw, Offset: p.offset()}
		}
		lyric.Number = v
	}
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "syllabic":
			text, err := p.text()
			if err != nil {
				return err
			}
			lyric.Syllabic = text
		case "text":
			text, err := p.text()
			if err != nil {
				return err
			}
			lyric.Text = text
		default:
			return p.skip()
		}
		return nil
	})
	return lyric, err
}

func (p *parser) parseBackup() (*Backup, error) {
	b := &Backup{}
	sawDuration := false
	err := p.children(func(child xml.StartElement) error {
		if child.Name.Local == "duration" {
			v, err := p.intText()
			if err != nil {
				return err
			}
			b.Duration = v
			sawDuration = true
			return nil
		}
		return p.skip()
	})
	if err != nil {
		return nil, err
	}
	if !sawDuration {
		return nil, &MissingElementError{Element: "duration", Parent: "backup", Offset: p.offset()}
	}
	return b, nil
}

func (p *parser) parseForward() (*Forward, error) {
	f := &Forward{}
	sawDuration := false
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "duration":
			v, err := p.intText()
			if err != nil {
				return err
			}
			f.Duration = v
			sawDuration = true
		case "voice":
			v, err := p.intText()
			if err != nil {
				return err
			}
			f.Voice = v
		case "staff":
			v, err := p.intText()
			if err != nil {
				return err
			}
			f.Staff = v
		default:
			return p.skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !sawDuration {
		return nil, &MissingElementError{Element: "duration", Parent: "forward", Offset: p.offset()}
	}
	return f, nil
}

func (p *parser) parseDirection(start xml.StartElement) (*Direction, error) {
	d := &Direction{Placement: attr(start, "placement")}
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "direction-type":
			return p.children(func(dt xml.StartElement) error {
				typ, err := p.parseDirectionType(dt)
				if err != nil {
					return err
				}
				if typ != nil {
					d.Types = append(d.Types, typ)
				}
				return nil
			})
		case "sound":
			if raw := attr(child, "tempo"); raw != "" {
				tempo, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return &InvalidValueError{Type: "number", Value: raw, Offset: p.offset()}
				}
				d.Sound = &Sound{Tempo: tempo}
			}
			return p.skip()
		default:
			return p.skip()
		}
	})
	return d, err
}

func (p *parser) parseDirectionType(start xml.StartElement) (DirectionType, error) {
	switch start.Name.Local {
	case "dynamics":
		var kind DynamicKind
		err := p.children(func(dyn xml.StartElement) error {
			k, perr := ParseDynamicKind(dyn.Name.Local)
			if perr != nil {
				return &InvalidValueError{Type: "dynamic", Value: dyn.Name.Local, Offset: p.offset()}
			}
			kind = k
			return p.skip()
		})
		if err != nil {
			return nil, err
		}
		if kind == "" {
			return nil, &MissingElementError{Element: "dynamic mark", Parent: "dynamics", Offset: p.offset()}
		}
		return Dynamics{Kind: kind}, nil
	case "words":
		text, err := p.text()
		if err != nil {
			return nil, err
		}
		return Words{Text: text}, nil
	case "rehearsal":
		text, err := p.text()
		if err != nil {
			return nil, err
		}
		return Rehearsal{Text: text}, nil
	case "segno":
		return Segno{}, p.skip()
	case "coda":
		return Coda{}, p.skip()
	case "pedal":
		raw := attr(start, "type")
		if raw == "" {
			return nil, &MissingAttributeError{Attribute: "type", Element: "pedal", Offset: p.offset()}
		}
		typ, perr := ParsePedalType(raw)
		if perr != nil {
			return nil, &InvalidValueError{Type: "pedal type", Value: raw, Offset: p.offset()}
		}
		return Pedal{Type: typ}, p.skip()
	case "wedge":
		raw := attr(start, "type")
		if raw == "" {
			return nil, &MissingAttributeError{Attribute: "type", Element: "wedge", Offset: p.offset()}
		}
		kind, perr := ParseWedgeKind(raw)
		if perr != nil {
			return nil, &InvalidValueError{Type: "wedge kind", Value: raw, Offset: p.offset()}
		}
		return Wedge{Kind: kind}, p.skip()
	case "metronome":
		met := Metronome{}
		err := p.children(func(child xml.StartElement) error {
			switch child.Name.Local {
			case "beat-unit":
				text, terr := p.text()
				if terr != nil {
					return terr
				}
				typ, perr := ParseNoteType(text)
				if perr != nil {
					return &InvalidValueError{Type: "note type", Value: text, Offset: p.offset()}
				}
				met.BeatUnit = typ
			case "beat-unit-dot":
				met.BeatUnitDots++
				return p.skip()
			case "per-minute":
				v, verr := p.intText()
				if verr != nil {
					return verr
				}
				met.PerMinute = v
			default:
				return p.skip()
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return met, nil
	default:
		return nil, p.skip()
	}
}

func (p *parser) parseAttributes() (*Attributes, error) {
	a := &Attributes{}
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "divisions":
			v, err := p.intText()
			if err != nil {
				return err
			}
			a.Divisions = v
		case "key":
			key := Key{}
			sawFifths := false
			err := p.children(func(field xml.StartElement) error {
				switch field.Name.Local {
				case "fifths":
					v, ferr := p.intText()
					if ferr != nil {
						return ferr
					}
					key.Fifths = v
					sawFifths = true
				case "mode":
					text, terr := p.text()
					if terr != nil {
						return terr
					}
					key.Mode = text
				default:
					return p.skip()
				}
				return nil
			})
			if err != nil {
				return err
			}
			if !sawFifths {
				return &MissingElementError{Element: "fifths", Parent: "key", Offset: p.offset()}
			}
			a.Keys = append(a.Keys, key)
		case "time":
			t := Time{}
			sawBeats, sawBeatType := false, false
			err := p.children(func(field xml.StartElement) error {
				switch field.Name.Local {
				case "beats":
					v, ferr := p.intText()
					if ferr != nil {
						return ferr
					}
					t.Beats = v
					sawBeats = true
				case "beat-type":
					v, ferr := p.intText()
					if ferr != nil {
						return ferr
					}
					t.BeatType = v
					sawBeatType = true
				default:
					return p.skip()
				}
				return nil
			})
			if err != nil {
				return err
			}
			if !sawBeats {
				return &MissingElementError{Element: "beats", Parent: "time", Offset: p.offset()}
			}
			if !sawBeatType {
				return &MissingElementError{Element: "beat-type", Parent: "time", Offset: p.offset()}
			}
			a.Times = append(a.Times, t)
		case "clef":
			clef := Clef{}
			sawSign := false
			err := p.children(func(field xml.StartElement) error {
				switch field.Name.Local {
				case "sign":
					text, terr := p.text()
					if terr != nil {
						return terr
					}
					sign, perr := ParseClefSign(text)
					if perr != nil {
						return &InvalidValueError{Type: "clef sign", Value: text, Offset: p.offset()}
					}
					clef.Sign = sign
					sawSign = true
				case "line":
					v, ferr := p.intText()
					if ferr != nil {
						return ferr
					}
					clef.Line = v
				case "clef-octave-change":
					v, ferr := p.intText()
					if ferr != nil {
						return ferr
					}
					clef.OctaveChange = v
				default:
					return p.skip()
				}
				return nil
			})
			if err != nil {
				return err
			}
			if !sawSign {
				return &MissingElementError{Element: "sign", Parent: "clef", Offset: p.offset()}
			}
			a.Clefs = append(a.Clefs, clef)
		default:
			return p.skip()
		}
		return nil
	})
	return a, err
}

func (p *parser) parseBarline(start xml.StartElement) (*Barline, error) {
	b := &Barline{}
	if raw := attr(start, "location"); raw != "" {
		loc, perr := ParseBarlineLocation(raw)
		if perr != nil {
			return nil, &InvalidValueError{Type: "barline location", Value: raw, Offset: p.offset()}
		}
		b.Location = loc
	}
	err := p.children(func(child xml.StartElement) error {
		switch child.Name.Local {
		case "bar-style":
			text, err := p.text()
			if err != nil {
				return err
			}
			style, perr := ParseBarStyle(text)
			if perr != nil {
				return &InvalidValueError{Type: "bar style", Value: text, Offset: p.offset()}
			}
			b.BarStyle = style
		case "repeat":
			raw := attr(child, "direction")
			if raw == "" {
				return &MissingAttributeError{Attribute: "direction", Element: "repeat", Offset: p.offset()}
			}
			dir, perr := ParseRepeatDirection(raw)
			if perr != nil {
				return &InvalidValueError{Type: "repeat direction", Value: raw, Offset: p.offset()}
			}
			b.Repeat = &Repeat{Direction: dir}
			return p.skip()
		case "ending":
			number := attr(child, "number")
			if number == "" {
				return &MissingAttributeError{Attribute: "number", Element: "ending", Offset: p.offset()}
			}
			raw := attr(child, "type")
			if raw == "" {
				return &MissingAttributeError{Attribute: "type", Element: "ending", Offset: p.offset()}
			}
			typ, perr := ParseEndingType(raw)
			if perr != nil {
				return &InvalidValueError{Type: "ending type", Value: raw, Offset: p.offset()}
			}
			b.Ending = &Ending{Number: number, Type: typ}
			return p.skip()
		default:
			return p.skip()
		}
		return nil
	})
	return b, err
}

// children walks the direct child elements of the element the parser is
// currently inside, invoking fn for each. fn must fully consume the child
// (by parsing it or calling skip).
func (p *parser) children(fn func(start xml.StartElement) error) error {
	for {
		tok, err := p.d.Token()
		if err != nil {
			return p.xmlErr(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// text consumes the current element to its end tag and returns its trimmed
// character data. Nested elements are skipped.
func (p *parser) text() (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.d.Token()
		if err != nil {
			return "", p.xmlErr(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := p.skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return strings.TrimSpace(sb.String()), nil
		}
	}
}

func (p *parser) intText() (int, error) {
	text, err := p.text()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, &InvalidValueError{Type: "integer", Value: text, Offset: p.offset()}
	}
	return v, nil
}

func (p *parser) startStopAttr(start xml.StartElement, element string) (StartStop, error) {
	raw := attr(start, "type")
	if raw == "" {
		return "", &MissingAttributeError{Attribute: "type", Element: element, Offset: p.offset()}
	}
	typ, err := ParseStartStop(raw)
	if err != nil {
		return "", &InvalidValueError{Type: "start/stop", Value: raw, Offset: p.offset()}
	}
	return typ, nil
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
