package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

func TestCompileChordFlags(t *testing.T) {
	req := ChordRequest{
		Pitches: []Pitch{
			{Step: "C", Octave: 4},
			{Step: "E", Octave: 4},
			{Step: "G", Octave: 4},
		},
		Duration: duration.Spec{Base: duration.Quarter},
	}
	out := compileChord(req, 960)

	require.Len(t, out, 3)
	wantFlags := []bool{false, true, true}
	for i, data := range out {
		note := data.(*musicxml.Note)
		assert.Equal(t, wantFlags[i], note.Chord, "note %d chord flag", i)
		assert.Equal(t, musicxml.TypeQuarter, note.Type, "note %d type", i)
		assert.Equal(t, 960, note.Duration, "note %d duration", i)
	}
}

func TestCompileChordSharedDurationAndDots(t *testing.T) {
	req := ChordRequest{
		Pitches:  []Pitch{{Step: "C", Octave: 4}, {Step: "G", Octave: 4}},
		Duration: duration.Spec{Base: duration.Half, Dots: 1},
	}
	out := compileChord(req, 960)

	for _, data := range out {
		note := data.(*musicxml.Note)
		assert.Equal(t, 2880, note.Duration)
		assert.Equal(t, musicxml.TypeHalf, note.Type)
		assert.Equal(t, 1, note.Dots)
	}
}

func TestCompileChordMarkingsOnEveryNote(t *testing.T) {
	req := ChordRequest{
		Pitches:  []Pitch{{Step: "C", Octave: 4}, {Step: "E", Octave: 4}, {Step: "G", Octave: 4}},
		Duration: duration.Spec{Base: duration.Quarter},
		Opts: NoteOptions{
			Articulations: []musicxml.Articulation{musicxml.ArtStaccato},
			Arpeggiate:    true,
			ArpeggiateDir: musicxml.ArpeggiateUp,
		},
	}
	out := compileChord(req, 960)

	for i, data := range out {
		note := data.(*musicxml.Note)
		require.NotNil(t, note.Notations, "note %d", i)
		assert.Equal(t, []musicxml.Articulation{musicxml.ArtStaccato}, note.Notations.Articulations, "note %d", i)
		require.NotNil(t, note.Notations.Arpeggiate, "note %d", i)
		assert.Equal(t, musicxml.ArpeggiateUp, note.Notations.Arpeggiate.Direction, "note %d", i)
	}
}

func TestCompileChordVoiceStaffStem(t *testing.T) {
	req := ChordRequest{
		Pitches:  []Pitch{{Step: "A", Octave: 3}},
		Duration: duration.Spec{Base: duration.Quarter},
		Opts:     NoteOptions{Voice: 2, Staff: 2, Stem: musicxml.StemDown},
	}
	note := compileChord(req, 960)[0].(*musicxml.Note)

	assert.Equal(t, 2, note.Voice)
	assert.Equal(t, 2, note.Staff)
	assert.Equal(t, musicxml.StemDown, note.Stem)
}
