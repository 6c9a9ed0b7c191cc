package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
	"github.com/james-see/lisp2mxl/pkg/sexp"
)

func readForm(t *testing.T, src string) sexp.Value {
	t.Helper()
	v, err := sexp.ReadOne(src)
	require.NoError(t, err)
	return v
}

func TestParsePitch(t *testing.T) {
	tests := []struct {
		tok  string
		want Pitch
	}{
		{"c4", Pitch{Step: "C", Octave: 4}},
		{"C4", Pitch{Step: "C", Octave: 4}},
		{"f#3", Pitch{Step: "F", Alter: 1, Octave: 3}},
		{"bb2", Pitch{Step: "B", Alter: -1, Octave: 2}},
		{"a##5", Pitch{Step: "A", Alter: 2, Octave: 5}},
		{"gf4", Pitch{Step: "G", Alter: -1, Octave: 4}},
		{"d10", Pitch{Step: "D", Octave: 10}},
	}
	for _, tt := range tests {
		got, err := ParsePitch(tt.tok)
		require.NoError(t, err, "pitch %q", tt.tok)
		assert.Equal(t, tt.want, got, "pitch %q", tt.tok)
	}
}

func TestParsePitchErrors(t *testing.T) {
	for _, tok := range []string{"", "h4", "c", "c#", "4c", "cx4"} {
		_, err := ParsePitch(tok)
		assert.Error(t, err, "pitch %q", tok)
	}
}

func TestParseChordRequest(t *testing.T) {
	form := readForm(t, `(chord (c4 e4 g4) :h. :voice 2 :staff 1 :stem up :staccato)`)
	req, err := ParseChordRequest(form.List[1:])
	require.NoError(t, err)

	assert.Equal(t, []Pitch{
		{Step: "C", Octave: 4},
		{Step: "E", Octave: 4},
		{Step: "G", Octave: 4},
	}, req.Pitches)
	assert.Equal(t, duration.Spec{Base: duration.Half, Dots: 1}, req.Duration)
	assert.Equal(t, 2, req.Opts.Voice)
	assert.Equal(t, 1, req.Opts.Staff)
	assert.Equal(t, musicxml.StemUp, req.Opts.Stem)
	assert.Equal(t, []musicxml.Articulation{musicxml.ArtStaccato}, req.Opts.Articulations)
}

func TestParseChordRequestDefaultDuration(t *testing.T) {
	form := readForm(t, `(chord (c4))`)
	req, err := ParseChordRequest(form.List[1:])
	require.NoError(t, err)
	assert.Equal(t, duration.Spec{Base: duration.Quarter}, req.Duration)
}

func TestParseChordRequestEmptyPitchList(t *testing.T) {
	form := readForm(t, `(chord ())`)
	_, err := ParseChordRequest(form.List[1:])
	var chordErr *InvalidChordError
	require.ErrorAs(t, err, &chordErr)
	assert.Contains(t, chordErr.Reason, "at least one pitch")
}

func TestParseChordRequestNonListFirstArgument(t *testing.T) {
	form := readForm(t, `(chord c4 e4)`)
	_, err := ParseChordRequest(form.List[1:])
	var chordErr *InvalidChordError
	require.ErrorAs(t, err, &chordErr)
}

func TestParseChordRequestNoArguments(t *testing.T) {
	_, err := ParseChordRequest(nil)
	var chordErr *InvalidChordError
	require.ErrorAs(t, err, &chordErr)
}

func TestParseChordRequestBadPitch(t *testing.T) {
	form := readForm(t, `(chord (c4 h9))`)
	_, err := ParseChordRequest(form.List[1:])
	var chordErr *InvalidChordError
	require.ErrorAs(t, err, &chordErr)
}

func TestParseChordRequestArpeggiate(t *testing.T) {
	bare := readForm(t, `(chord (c4 e4) :arpeggiate)`)
	req, err := ParseChordRequest(bare.List[1:])
	require.NoError(t, err)
	assert.True(t, req.Opts.Arpeggiate)
	assert.Empty(t, req.Opts.ArpeggiateDir)

	directed := readForm(t, `(chord (c4 e4) :arpeggiate down)`)
	req, err = ParseChordRequest(directed.List[1:])
	require.NoError(t, err)
	assert.True(t, req.Opts.Arpeggiate)
	assert.Equal(t, musicxml.ArpeggiateDown, req.Opts.ArpeggiateDir)
}

func TestParseChordRequestUnknownKeywordsSkipped(t *testing.T) {
	form := readForm(t, `(chord (c4) :q :sparkle :voice 3)`)
	req, err := ParseChordRequest(form.List[1:])
	require.NoError(t, err)
	assert.Equal(t, 3, req.Opts.Voice)
}

func TestParseChordRequestRepeatedArticulations(t *testing.T) {
	form := readForm(t, `(chord (c4) :staccato :accent :marcato)`)
	req, err := ParseChordRequest(form.List[1:])
	require.NoError(t, err)
	assert.Equal(t, []musicxml.Articulation{
		musicxml.ArtStaccato,
		musicxml.ArtAccent,
		musicxml.ArtStrongAccent,
	}, req.Opts.Articulations)
}

func TestParseNoteNumericDurationSpellings(t *testing.T) {
	tests := []struct {
		src  string
		want duration.Spec
	}{
		{`(note c4 8)`, duration.Spec{Base: duration.Eighth}},
		{`(note c4 8.)`, duration.Spec{Base: duration.Eighth, Dots: 1}},
		{`(note c4 16th)`, duration.Spec{Base: duration.N16th}},
		{`(note c4 16..)`, duration.Spec{Base: duration.N16th, Dots: 2}},
		{`(note c4 :8.)`, duration.Spec{Base: duration.Eighth, Dots: 1}},
		{`(note c4 :16th)`, duration.Spec{Base: duration.N16th}},
	}
	for _, tt := range tests {
		el, err := ParseMeasureElement(readForm(t, tt.src))
		require.NoError(t, err, "form %s", tt.src)
		req, ok := el.(NoteRequest)
		require.True(t, ok, "form %s", tt.src)
		assert.Equal(t, tt.want, req.Duration, "form %s", tt.src)
	}
}

func TestParseMeasureElementDynamicSymbol(t *testing.T) {
	el, err := ParseMeasureElement(sexp.Symbol("ff"))
	require.NoError(t, err)
	assert.Equal(t, DynamicRequest{Kind: musicxml.DynFF}, el)

	_, err = ParseMeasureElement(sexp.Symbol("blaring"))
	var unknown *UnknownFormError
	require.ErrorAs(t, err, &unknown)
}

func TestParseMeasureElementUnknownFormSkipped(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(hologram 1 2 3)`))
	require.NoError(t, err)
	assert.Nil(t, el)
}

func TestParseKeyForm(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(key -3 :minor)`))
	require.NoError(t, err)
	assert.Equal(t, KeyRequest{Fifths: -3, Mode: "minor"}, el)

	_, err = ParseMeasureElement(readForm(t, `(key)`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "fifths", missing.Name)
}

func TestParseTimeForm(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(time 6 8)`))
	require.NoError(t, err)
	assert.Equal(t, TimeRequest{Beats: 6, BeatType: 8}, el)

	_, err = ParseMeasureElement(readForm(t, `(time 6)`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "beat-type", missing.Name)

	_, err = ParseMeasureElement(readForm(t, `(time six 8)`))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestParseClefForm(t *testing.T) {
	tests := []struct {
		src  string
		want ClefRequest
	}{
		{`(clef :treble)`, ClefRequest{Sign: musicxml.ClefG, Line: 2}},
		{`(clef :bass)`, ClefRequest{Sign: musicxml.ClefF, Line: 4}},
		{`(clef :alto)`, ClefRequest{Sign: musicxml.ClefC, Line: 3}},
		{`(clef :tenor)`, ClefRequest{Sign: musicxml.ClefC, Line: 4}},
		{`(clef :treble -1)`, ClefRequest{Sign: musicxml.ClefG, Line: 2, OctaveChange: -1}},
		{`(clef g 2)`, ClefRequest{Sign: musicxml.ClefG, Line: 2}},
		{`(clef f 4 -1)`, ClefRequest{Sign: musicxml.ClefF, Line: 4, OctaveChange: -1}},
	}
	for _, tt := range tests {
		el, err := ParseMeasureElement(readForm(t, tt.src))
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, el, tt.src)
	}

	_, err := ParseMeasureElement(readForm(t, `(clef :curly)`))
	var clefErr *InvalidClefError
	require.ErrorAs(t, err, &clefErr)
}

func TestParseBarlineForm(t *testing.T) {
	tests := []struct {
		src  string
		want BarlineRequest
	}{
		{`(barline)`, BarlineRequest{Kind: BarlineRegular}},
		{`(barline :regular)`, BarlineRequest{Kind: BarlineRegular}},
		{`(barline :double)`, BarlineRequest{Kind: BarlineDouble}},
		{`(barline :final)`, BarlineRequest{Kind: BarlineFinal}},
		{`(barline :repeat-forward)`, BarlineRequest{Kind: BarlineRepeatForward}},
		{`(barline :repeat-backward)`, BarlineRequest{Kind: BarlineRepeatBackward}},
		{`(barline :repeat-both)`, BarlineRequest{Kind: BarlineRepeatBoth}},
		{`(barline :ending 2 stop)`, BarlineRequest{Kind: BarlineEnding, EndingNumber: 2, EndingType: musicxml.EndingStop}},
	}
	for _, tt := range tests {
		el, err := ParseMeasureElement(readForm(t, tt.src))
		require.NoError(t, err, tt.src)
		assert.Equal(t, tt.want, el, tt.src)
	}

	_, err := ParseMeasureElement(readForm(t, `(barline :wavy)`))
	var unknown *UnknownFormError
	require.ErrorAs(t, err, &unknown)
}

func TestParseTempoForm(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(tempo 120)`))
	require.NoError(t, err)
	assert.Equal(t, TempoRequest{BeatUnit: duration.Spec{Base: duration.Quarter}, PerMinute: 120}, el)

	el, err = ParseMeasureElement(readForm(t, `(tempo :h 60)`))
	require.NoError(t, err)
	assert.Equal(t, TempoRequest{BeatUnit: duration.Spec{Base: duration.Half}, PerMinute: 60}, el)
}

func TestParseDirectionForms(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(words "dolce")`))
	require.NoError(t, err)
	assert.Equal(t, DirectionRequest{Placement: "above", Type: musicxml.Words{Text: "dolce"}}, el)

	el, err = ParseMeasureElement(readForm(t, `(rehearsal "B")`))
	require.NoError(t, err)
	assert.Equal(t, DirectionRequest{Placement: "above", Type: musicxml.Rehearsal{Text: "B"}}, el)

	el, err = ParseMeasureElement(readForm(t, `(segno)`))
	require.NoError(t, err)
	assert.Equal(t, DirectionRequest{Placement: "above", Type: musicxml.Segno{}}, el)

	el, err = ParseMeasureElement(readForm(t, `(pedal :start)`))
	require.NoError(t, err)
	assert.Equal(t, DirectionRequest{Placement: "below", Type: musicxml.Pedal{Type: musicxml.PedalStart}}, el)

	el, err = ParseMeasureElement(readForm(t, `(wedge :crescendo)`))
	require.NoError(t, err)
	assert.Equal(t, DirectionRequest{Placement: "below", Type: musicxml.Wedge{Kind: musicxml.WedgeCrescendo}}, el)

	_, err = ParseMeasureElement(readForm(t, `(words)`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
}

func TestParseTupletForm(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(tuplet 3 2 (note c4 :8) (note d4 :8) (note e4 :8))`))
	require.NoError(t, err)
	req, ok := el.(TupletRequest)
	require.True(t, ok)
	assert.Equal(t, 3, req.Actual)
	assert.Equal(t, 2, req.Normal)
	assert.Len(t, req.Elements, 3)

	_, err = ParseMeasureElement(readForm(t, `(tuplet 3 2)`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)

	_, err = ParseMeasureElement(readForm(t, `(tuplet 3 2 (key 0))`))
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestParseGraceForm(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(grace d5 :16 :slash)`))
	require.NoError(t, err)
	assert.Equal(t, GraceRequest{
		Pitch:    Pitch{Step: "D", Octave: 5},
		Duration: duration.Spec{Base: duration.N16th},
		Slash:    true,
	}, el)
}

func TestParseBackupForwardForms(t *testing.T) {
	el, err := ParseMeasureElement(readForm(t, `(backup 2)`))
	require.NoError(t, err)
	assert.Equal(t, BackupRequest{Beats: 2}, el)

	el, err = ParseMeasureElement(readForm(t, `(forward 1.5 :voice 2)`))
	require.NoError(t, err)
	assert.Equal(t, ForwardRequest{Beats: 1.5, Voice: 2}, el)

	_, err = ParseMeasureElement(readForm(t, `(backup)`))
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
}
