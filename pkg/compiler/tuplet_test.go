package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

func eighthNote(step string, octave int) NoteRequest {
	return NoteRequest{
		Pitch:    Pitch{Step: step, Octave: octave},
		Duration: duration.Spec{Base: duration.Eighth},
	}
}

func TestCompileTripletDurations(t *testing.T) {
	req := TupletRequest{
		Actual: 3,
		Normal: 2,
		Elements: []MeasureElement{
			eighthNote("C", 4), eighthNote("D", 4), eighthNote("E", 4),
		},
	}
	out := compileTuplet(req, 960)

	require.Len(t, out, 3)
	for i, data := range out {
		note := data.(*musicxml.Note)
		assert.Equal(t, 320, note.Duration, "note %d", i)
		assert.Equal(t, &musicxml.TimeModification{ActualNotes: 3, NormalNotes: 2}, note.TimeModification, "note %d", i)
	}
}

// The duration is rounded while resolving dots, then truncated by the
// ratio. At divisions=960 a septuplet eighth is 480*4/7 = 274 (truncated,
// not 274.28... rounded).
func TestCompileTupletTruncates(t *testing.T) {
	req := TupletRequest{
		Actual:   7,
		Normal:   4,
		Elements: []MeasureElement{eighthNote("C", 4)},
	}
	note := compileTuplet(req, 960)[0].(*musicxml.Note)
	assert.Equal(t, 274, note.Duration)
}

func TestCompileTupletMarksSpan(t *testing.T) {
	req := TupletRequest{
		Actual: 3,
		Normal: 2,
		Elements: []MeasureElement{
			eighthNote("C", 4), eighthNote("D", 4), eighthNote("E", 4),
		},
	}
	out := compileTuplet(req, 960)

	first := out[0].(*musicxml.Note)
	require.NotNil(t, first.Notations)
	assert.Equal(t, []musicxml.TupletMark{{Type: musicxml.Start, Number: 1}}, first.Notations.Tuplets)

	middle := out[1].(*musicxml.Note)
	if middle.Notations != nil {
		assert.Empty(t, middle.Notations.Tuplets)
	}

	last := out[2].(*musicxml.Note)
	require.NotNil(t, last.Notations)
	assert.Equal(t, []musicxml.TupletMark{{Type: musicxml.Stop, Number: 1}}, last.Notations.Tuplets)
}

func TestCompileTupletWithChord(t *testing.T) {
	req := TupletRequest{
		Actual: 3,
		Normal: 2,
		Elements: []MeasureElement{
			ChordRequest{
				Pitches:  []Pitch{{Step: "C", Octave: 4}, {Step: "E", Octave: 4}},
				Duration: duration.Spec{Base: duration.Eighth},
			},
			eighthNote("G", 4),
		},
	}
	out := compileTuplet(req, 960)

	require.Len(t, out, 3)
	second := out[1].(*musicxml.Note)
	assert.True(t, second.Chord)
	assert.Equal(t, 320, second.Duration)
}

func TestCompileTupletRest(t *testing.T) {
	req := TupletRequest{
		Actual: 3,
		Normal: 2,
		Elements: []MeasureElement{
			eighthNote("C", 4),
			RestRequest{Duration: duration.Spec{Base: duration.Eighth}},
			eighthNote("E", 4),
		},
	}
	out := compileTuplet(req, 960)

	rest := out[1].(*musicxml.Note)
	assert.True(t, rest.Rest)
	assert.Equal(t, 320, rest.Duration)
}
