package compiler

import (
	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// compileTuplet compiles the inner notes, rests, and chords, then rescales
// every duration by the tuplet ratio. Each duration is resolved (rounded)
// first and the ratio applied second with truncating division; the two
// stages must stay in that order for output compatibility. The first note
// carries the tuplet start mark and the last carries the stop mark.
func compileTuplet(req TupletRequest, divisions int) []musicxml.MusicData {
	var out []musicxml.MusicData
	for _, el := range req.Elements {
		switch inner := el.(type) {
		case NoteRequest:
			note := compileNote(inner, divisions)
			rescaleNote(note, req)
			out = append(out, note)
		case RestRequest:
			note := compileRest(inner, divisions)
			rescaleNote(note, req)
			out = append(out, note)
		case ChordRequest:
			for _, data := range compileChord(inner, divisions) {
				note := data.(*musicxml.Note)
				rescaleNote(note, req)
				out = append(out, note)
			}
		}
	}
	markTupletSpan(out)
	return out
}

func rescaleNote(note *musicxml.Note, req TupletRequest) {
	note.Duration = duration.ApplyTuplet(note.Duration, req.Actual, req.Normal)
	note.TimeModification = &musicxml.TimeModification{
		ActualNotes: req.Actual,
		NormalNotes: req.Normal,
	}
}

func markTupletSpan(notes []musicxml.MusicData) {
	if len(notes) == 0 {
		return
	}
	first := notes[0].(*musicxml.Note)
	if first.Notations == nil {
		first.Notations = &musicxml.Notations{}
	}
	first.Notations.Tuplets = append(first.Notations.Tuplets, musicxml.TupletMark{Type: musicxml.Start, Number: 1})

	last := notes[len(notes)-1].(*musicxml.Note)
	if last.Notations == nil {
		last.Notations = &musicxml.Notations{}
	}
	last.Notations.Tuplets = append(last.Notations.Tuplets, musicxml.TupletMark{Type: musicxml.Stop, Number: 1})
}
