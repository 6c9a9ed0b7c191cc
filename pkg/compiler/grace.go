package compiler

import "github.com/james-see/lisp2mxl/pkg/musicxml"

// compileGrace emits an ornamental note. Grace notes carry no absolute
// duration, only a display type, so the divisions value never enters.
func compileGrace(req GraceRequest) *musicxml.Note {
	return &musicxml.Note{
		Grace: &musicxml.Grace{Slash: req.Slash},
		Pitch: &musicxml.Pitch{Step: req.Pitch.Step, Alter: req.Pitch.Alter, Octave: req.Pitch.Octave},
		Voice: req.Opts.Voice,
		Type:  musicxml.NoteTypeFor(req.Duration.Base),
		Dots:  req.Duration.Dots,
		Stem:  req.Opts.Stem,
		Staff: req.Opts.Staff,
	}
}
