package compiler

import (
	"math"

	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// measureAccum is the state threaded through one fold over a measure's
// element list. Key, time, and clef declarations land in their own lists;
// everything else compiles straight into content in source order.
type measureAccum struct {
	keys    []musicxml.Key
	times   []musicxml.Time
	clefs   []musicxml.Clef
	content []musicxml.MusicData
}

func (acc *measureAccum) hasAttributes() bool {
	return len(acc.keys) > 0 || len(acc.times) > 0 || len(acc.clefs) > 0
}

// compileMeasure folds the element list into a measureAccum, then assembles
// the measure. If any key, time, or clef declarations were present, wherever
// they appeared in source order, the content begins with exactly one
// attributes element aggregating all of them; otherwise no attributes
// element is emitted.
func compileMeasure(number string, elements []MeasureElement, divisions int) *musicxml.Measure {
	var acc measureAccum
	for _, el := range elements {
		acc = foldElement(acc, el, divisions)
	}

	m := &musicxml.Measure{Number: number}
	if acc.hasAttributes() {
		m.Content = append(m.Content, &musicxml.Attributes{
			Divisions: divisions,
			Keys:      acc.keys,
			Times:     acc.times,
			Clefs:     acc.clefs,
		})
	}
	m.Content = append(m.Content, acc.content...)
	return m
}

func foldElement(acc measureAccum, el MeasureElement, divisions int) measureAccum {
	switch req := el.(type) {
	case KeyRequest:
		acc.keys = append(acc.keys, musicxml.Key{Fifths: req.Fifths, Mode: req.Mode})
	case TimeRequest:
		acc.times = append(acc.times, musicxml.Time{Beats: req.Beats, BeatType: req.BeatType})
	case ClefRequest:
		acc.clefs = append(acc.clefs, musicxml.Clef{Sign: req.Sign, Line: req.Line, OctaveChange: req.OctaveChange})
	case NoteRequest:
		acc.content = append(acc.content, compileNote(req, divisions))
	case RestRequest:
		acc.content = append(acc.content, compileRest(req, divisions))
	case ChordRequest:
		acc.content = append(acc.content, compileChord(req, divisions)...)
	case TupletRequest:
		acc.content = append(acc.content, compileTuplet(req, divisions)...)
	case GraceRequest:
		acc.content = append(acc.content, compileGrace(req))
	case BarlineRequest:
		acc.content = append(acc.content, compileBarline(req))
	case TempoRequest:
		acc.content = append(acc.content, compileTempo(req))
	case DynamicRequest:
		acc.content = append(acc.content, compileDynamic(req))
	case DirectionRequest:
		acc.content = append(acc.content, compileDirection(req))
	case BackupRequest:
		acc.content = append(acc.content, &musicxml.Backup{Duration: beatUnits(req.Beats, divisions)})
	case ForwardRequest:
		acc.content = append(acc.content, &musicxml.Forward{
			Duration: beatUnits(req.Beats, divisions),
			Voice:    req.Voice,
			Staff:    req.Staff,
		})
	case SlurRequest, TieRequest, FermataRequest:
		// Standalone slur, tie, and fermata elements compile to nothing:
		// they are meant to attach to notes, and what a bare occurrence
		// should mean is an open question.
	}
	return acc
}

func beatUnits(beats float64, divisions int) int {
	return int(math.Round(beats * float64(divisions)))
}
