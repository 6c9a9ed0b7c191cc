package compiler

import (
	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// compileChord resolves the shared duration once, then emits one note per
// pitch. The first note's chord flag is false and every later note's is
// true; a consumer reads chord=true as "sounds with the previous onset", so
// this ordering is load-bearing.
func compileChord(req ChordRequest, divisions int) []musicxml.MusicData {
	units := duration.Resolve(req.Duration, divisions)
	out := make([]musicxml.MusicData, 0, len(req.Pitches))
	for i, pitch := range req.Pitches {
		note := buildNote(pitch, req.Duration, units, req.Opts)
		note.Chord = i > 0
		out = append(out, note)
	}
	return out
}

func compileNote(req NoteRequest, divisions int) *musicxml.Note {
	units := duration.Resolve(req.Duration, divisions)
	return buildNote(req.Pitch, req.Duration, units, req.Opts)
}

func compileRest(req RestRequest, divisions int) *musicxml.Note {
	units := duration.Resolve(req.Duration, divisions)
	note := &musicxml.Note{
		Rest:     true,
		Duration: units,
		Voice:    req.Opts.Voice,
		Type:     musicxml.NoteTypeFor(req.Duration.Base),
		Dots:     req.Duration.Dots,
		Staff:    req.Opts.Staff,
	}
	return note
}

// buildNote assembles a pitched note. Articulations and the arpeggiate
// marking are attached to every note built from a chord request, including
// the first; whether they belong only on the outer chord notes is an open
// question.
func buildNote(pitch Pitch, spec duration.Spec, units int, opts NoteOptions) *musicxml.Note {
	note := &musicxml.Note{
		Pitch:    &musicxml.Pitch{Step: pitch.Step, Alter: pitch.Alter, Octave: pitch.Octave},
		Duration: units,
		Voice:    opts.Voice,
		Type:     musicxml.NoteTypeFor(spec.Base),
		Dots:     spec.Dots,
		Stem:     opts.Stem,
		Staff:    opts.Staff,
	}
	if len(opts.Articulations) > 0 || opts.Arpeggiate {
		note.Notations = &musicxml.Notations{}
		note.Notations.Articulations = append(note.Notations.Articulations, opts.Articulations...)
		if opts.Arpeggiate {
			note.Notations.Arpeggiate = &musicxml.Arpeggiate{Direction: opts.ArpeggiateDir}
		}
	}
	return note
}
