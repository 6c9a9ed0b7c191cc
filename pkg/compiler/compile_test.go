package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

const sampleScore = `
; two measures of C major
(score :title "Exercise 1"
  (part p1 "Piano"
    (measure
      (key 0) (time 4 4) (clef :treble)
      (tempo 120)
      (chord (c4 e4 g4) :q)
      (note a4 :q)
      (rest :h))
    (measure
      (note g4 :w)
      (barline :final))))
`

func TestCompileScore(t *testing.T) {
	score, err := Compile(sampleScore, Options{})
	require.NoError(t, err)

	assert.Equal(t, "3.1", score.Version)
	require.NotNil(t, score.Work)
	assert.Equal(t, "Exercise 1", score.Work.Title)

	require.Len(t, score.PartList, 1)
	assert.Equal(t, "p1", score.PartList[0].ID)
	assert.Equal(t, "Piano", score.PartList[0].Name)

	require.Len(t, score.Parts, 1)
	part := score.Parts[0]
	assert.Equal(t, "p1", part.ID)
	require.Len(t, part.Measures, 2)
	assert.Equal(t, "1", part.Measures[0].Number)
	assert.Equal(t, "2", part.Measures[1].Number)

	first := part.Measures[0]
	attrs, ok := first.Content[0].(*musicxml.Attributes)
	require.True(t, ok)
	assert.Equal(t, DefaultDivisions, attrs.Divisions)
	assert.Len(t, attrs.Keys, 1)
	assert.Len(t, attrs.Times, 1)
	assert.Len(t, attrs.Clefs, 1)

	// tempo direction, three chord notes, one note, one rest
	require.Len(t, first.Content, 7)
	_, ok = first.Content[1].(*musicxml.Direction)
	assert.True(t, ok)
	chordFlags := []bool{false, true, true}
	for i := 0; i < 3; i++ {
		note := first.Content[2+i].(*musicxml.Note)
		assert.Equal(t, chordFlags[i], note.Chord)
	}
	rest := first.Content[6].(*musicxml.Note)
	assert.True(t, rest.Rest)

	second := part.Measures[1]
	require.Len(t, second.Content, 2)
	bar, ok := second.Content[1].(*musicxml.Barline)
	require.True(t, ok)
	assert.Equal(t, musicxml.BarLightHeavy, bar.BarStyle)
}

func TestCompileBareMeasuresWrapDefaultPart(t *testing.T) {
	score, err := Compile(`(measure (note c4 :q)) (measure (note d4 :q))`, Options{})
	require.NoError(t, err)

	require.Len(t, score.PartList, 1)
	assert.Equal(t, "P1", score.PartList[0].ID)
	assert.Equal(t, "Part 1", score.PartList[0].Name)
	require.Len(t, score.Parts, 1)
	assert.Len(t, score.Parts[0].Measures, 2)
}

func TestCompileExplicitDivisions(t *testing.T) {
	score, err := Compile(`(measure (time 4 4) (note c4 :q))`, Options{Divisions: 24})
	require.NoError(t, err)

	attrs := score.Parts[0].Measures[0].Content[0].(*musicxml.Attributes)
	assert.Equal(t, 24, attrs.Divisions)
	note := score.Parts[0].Measures[0].Content[1].(*musicxml.Note)
	assert.Equal(t, 24, note.Duration)
}

func TestCompileTitleOption(t *testing.T) {
	score, err := Compile(`(measure (note c4 :q))`, Options{Title: "Sketch"})
	require.NoError(t, err)
	require.NotNil(t, score.Work)
	assert.Equal(t, "Sketch", score.Work.Title)
}

func TestCompileUnknownTopLevelForm(t *testing.T) {
	_, err := Compile(`(symphony 9)`, Options{})
	var unknown *UnknownFormError
	require.ErrorAs(t, err, &unknown)
}

func TestCompileSyntaxErrorSurfaces(t *testing.T) {
	_, err := Compile(`(measure (note c4`, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read notation source")
}

func TestCompileErrorAbortsWholeOperation(t *testing.T) {
	_, err := Compile(`(measure (chord ()))`, Options{})
	var chordErr *InvalidChordError
	require.ErrorAs(t, err, &chordErr)
}

func TestCompileEncodesRoundTrip(t *testing.T) {
	score, err := Compile(sampleScore, Options{})
	require.NoError(t, err)

	decoded, err := musicxml.DecodeString(musicxml.Encode(score))
	require.NoError(t, err)
	assert.Equal(t, score, decoded)
}
