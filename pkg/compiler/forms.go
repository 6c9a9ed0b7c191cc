package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/james-see/lisp2mxl/pkg/duration"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
	"github.com/james-see/lisp2mxl/pkg/sexp"
)

// ParseMeasureElement converts one item of a measure form into a request
// object. Bare symbols are recognized as dynamic markings. Unrecognized
// list forms return a nil element with no error: unknown measure content is
// skipped so that newer notation files keep loading on older binaries.
func ParseMeasureElement(v sexp.Value) (MeasureElement, error) {
	if v.Kind == sexp.KindSymbol {
		if musicxml.IsDynamicKind(v.Sym) {
			kind, err := musicxml.ParseDynamicKind(v.Sym)
			if err != nil {
				return nil, err
			}
			return DynamicRequest{Kind: kind}, nil
		}
		return nil, &UnknownFormError{Message: fmt.Sprintf("bare symbol %q is not a dynamic marking", v.Sym)}
	}
	if !v.IsList() {
		return nil, &TypeMismatchError{Expected: "list or dynamic symbol", Found: v.Kind.String()}
	}
	switch v.Head() {
	case "note":
		return parseNote(v.List[1:])
	case "rest":
		return parseRest(v.List[1:])
	case "chord":
		return ParseChordRequest(v.List[1:])
	case "tuplet":
		return parseTuplet(v.List[1:])
	case "grace":
		return parseGrace(v.List[1:])
	case "key":
		return parseKey(v.List[1:])
	case "time":
		return parseTime(v.List[1:])
	case "clef":
		return parseClef(v.List[1:])
	case "barline":
		return parseBarline(v.List[1:])
	case "tempo":
		return parseTempo(v.List[1:])
	case "backup":
		return parseBackup(v.List[1:])
	case "forward":
		return parseForward(v.List[1:])
	case "dynamic":
		return parseDynamic(v.List[1:])
	case "words", "rehearsal":
		return parseTextDirection(v.Head(), v.List[1:])
	case "segno":
		return DirectionRequest{Placement: "above", Type: musicxml.Segno{}}, nil
	case "coda":
		return DirectionRequest{Placement: "above", Type: musicxml.Coda{}}, nil
	case "pedal":
		return parsePedal(v.List[1:])
	case "wedge":
		return parseWedge(v.List[1:])
	case "slur":
		return parseSlur(v.List[1:])
	case "tie":
		return parseTie(v.List[1:])
	case "fermata":
		return FermataRequest{}, nil
	default:
		// Forward-compatibility policy: unknown measure forms are skipped.
		return nil, nil
	}
}

// ParseChordRequest parses the items after the chord head symbol:
// a pitch list, an optional duration token, then keyword arguments.
func ParseChordRequest(items []sexp.Value) (ChordRequest, error) {
	if len(items) == 0 {
		return ChordRequest{}, &InvalidChordError{Reason: "chord requires a pitch list"}
	}
	if !items[0].IsList() {
		return ChordRequest{}, &InvalidChordError{Reason: fmt.Sprintf("first argument must be a pitch list, found %s", items[0].Kind)}
	}
	if len(items[0].List) == 0 {
		return ChordRequest{}, &InvalidChordError{Reason: "chord requires at least one pitch"}
	}

	req := ChordRequest{Duration: defaultDuration()}
	for _, item := range items[0].List {
		tok, ok := item.Token()
		if !ok {
			return ChordRequest{}, &InvalidChordError{Reason: fmt.Sprintf("pitch must be a symbol, found %s", item.Kind)}
		}
		pitch, err := ParsePitch(tok)
		if err != nil {
			return ChordRequest{}, &InvalidChordError{Reason: err.Error()}
		}
		req.Pitches = append(req.Pitches, pitch)
	}

	rest := items[1:]
	if len(rest) > 0 {
		if spec, ok := durationItem(rest[0]); ok {
			req.Duration = spec
			rest = rest[1:]
		}
	}

	opts, err := parseNoteOptions(rest)
	if err != nil {
		return ChordRequest{}, err
	}
	req.Opts = opts
	return req, nil
}

func parseNote(items []sexp.Value) (NoteRequest, error) {
	if len(items) == 0 {
		return NoteRequest{}, &MissingFieldError{Name: "pitch"}
	}
	tok, ok := items[0].Token()
	if !ok {
		return NoteRequest{}, &TypeMismatchError{Expected: "pitch symbol", Found: items[0].Kind.String()}
	}
	pitch, err := ParsePitch(tok)
	if err != nil {
		return NoteRequest{}, fmt.Errorf("note: %w", err)
	}

	req := NoteRequest{Pitch: pitch, Duration: defaultDuration()}
	rest := items[1:]
	if len(rest) > 0 {
		if spec, ok := durationItem(rest[0]); ok {
			req.Duration = spec
			rest = rest[1:]
		}
	}
	opts, err := parseNoteOptions(rest)
	if err != nil {
		return NoteRequest{}, err
	}
	req.Opts = opts
	return req, nil
}

func parseRest(items []sexp.Value) (RestRequest, error) {
	req := RestRequest{Duration: defaultDuration()}
	if len(items) > 0 {
		if spec, ok := durationItem(items[0]); ok {
			req.Duration = spec
			items = items[1:]
		}
	}
	opts, err := parseNoteOptions(items)
	if err != nil {
		return RestRequest{}, err
	}
	req.Opts = opts
	return req, nil
}

func parseTuplet(items []sexp.Value) (TupletRequest, error) {
	if len(items) < 2 {
		return TupletRequest{}, &MissingFieldError{Name: "tuplet ratio"}
	}
	actual, err := intItem(items[0], "actual-notes")
	if err != nil {
		return TupletRequest{}, err
	}
	normal, err := intItem(items[1], "normal-notes")
	if err != nil {
		return TupletRequest{}, err
	}
	if actual <= 0 || normal <= 0 {
		return TupletRequest{}, &InvalidDurationError{Message: fmt.Sprintf("tuplet ratio %d:%d must be positive", actual, normal)}
	}

	req := TupletRequest{Actual: actual, Normal: normal}
	for _, item := range items[2:] {
		el, err := ParseMeasureElement(item)
		if err != nil {
			return TupletRequest{}, err
		}
		if el == nil {
			continue
		}
		switch el.(type) {
		case NoteRequest, RestRequest, ChordRequest:
			req.Elements = append(req.Elements, el)
		default:
			return TupletRequest{}, &TypeMismatchError{Expected: "note, rest, or chord inside tuplet", Found: item.String()}
		}
	}
	if len(req.Elements) == 0 {
		return TupletRequest{}, &MissingFieldError{Name: "tuplet elements"}
	}
	return req, nil
}

func parseGrace(items []sexp.Value) (GraceRequest, error) {
	if len(items) == 0 {
		return GraceRequest{}, &MissingFieldError{Name: "pitch"}
	}
	tok, ok := items[0].Token()
	if !ok {
		return GraceRequest{}, &TypeMismatchError{Expected: "pitch symbol", Found: items[0].Kind.String()}
	}
	pitch, err := ParsePitch(tok)
	if err != nil {
		return GraceRequest{}, fmt.Errorf("grace: %w", err)
	}

	req := GraceRequest{Pitch: pitch, Duration: duration.Spec{Base: duration.Eighth}}
	rest := items[1:]
	if len(rest) > 0 {
		if spec, ok := durationItem(rest[0]); ok {
			req.Duration = spec
			rest = rest[1:]
		}
	}
	for len(rest) > 0 {
		if rest[0].IsKeyword("slash") {
			req.Slash = true
			rest = rest[1:]
			continue
		}
		break
	}
	opts, err := parseNoteOptions(rest)
	if err != nil {
		return GraceRequest{}, err
	}
	req.Opts = opts
	return req, nil
}

func parseKey(items []sexp.Value) (KeyRequest, error) {
	if len(items) == 0 {
		return KeyRequest{}, &MissingFieldError{Name: "fifths"}
	}
	fifths, err := intItem(items[0], "fifths")
	if err != nil {
		return KeyRequest{}, err
	}
	req := KeyRequest{Fifths: fifths}
	if len(items) > 1 {
		tok, ok := items[1].Token()
		if !ok {
			return KeyRequest{}, &TypeMismatchError{Expected: "mode symbol", Found: items[1].Kind.String()}
		}
		req.Mode = strings.TrimPrefix(tok, ":")
	}
	return req, nil
}

func parseTime(items []sexp.Value) (TimeRequest, error) {
	if len(items) == 0 {
		return TimeRequest{}, &MissingFieldError{Name: "beats"}
	}
	beats, err := intItem(items[0], "beats")
	if err != nil {
		return TimeRequest{}, err
	}
	if len(items) < 2 {
		return TimeRequest{}, &MissingFieldError{Name: "beat-type"}
	}
	beatType, err := intItem(items[1], "beat-type")
	if err != nil {
		return TimeRequest{}, err
	}
	return TimeRequest{Beats: beats, BeatType: beatType}, nil
}

// namedClefs maps the convenience clef names to their sign and line.
var namedClefs = map[string]ClefRequest{
	"treble":     {Sign: musicxml.ClefG, Line: 2},
	"bass":       {Sign: musicxml.ClefF, Line: 4},
	"alto":       {Sign: musicxml.ClefC, Line: 3},
	"tenor":      {Sign: musicxml.ClefC, Line: 4},
	"percussion": {Sign: musicxml.ClefPercussion},
	"tab":        {Sign: musicxml.ClefTAB, Line: 5},
}

func parseClef(items []sexp.Value) (ClefRequest, error) {
	if len(items) == 0 {
		return ClefRequest{}, &InvalidClefError{Message: "clef requires a name or a sign and line"}
	}
	tok, ok := items[0].Token()
	if !ok {
		return ClefRequest{}, &InvalidClefError{Message: fmt.Sprintf("clef name must be a symbol, found %s", items[0].Kind)}
	}
	tok = strings.TrimPrefix(tok, ":")

	if req, found := namedClefs[strings.ToLower(tok)]; found {
		if len(items) > 1 {
			change, err := intItem(items[1], "clef-octave-change")
			if err != nil {
				return ClefRequest{}, err
			}
			req.OctaveChange = change
		}
		return req, nil
	}

	sign, err := musicxml.ParseClefSign(strings.ToUpper(tok))
	if err != nil {
		return ClefRequest{}, &InvalidClefError{Message: fmt.Sprintf("unknown clef %q", tok)}
	}
	if len(items) < 2 {
		return ClefRequest{}, &InvalidClefError{Message: fmt.Sprintf("clef sign %q requires a staff line", tok)}
	}
	line, err := intItem(items[1], "line")
	if err != nil {
		return ClefRequest{}, err
	}
	req := ClefRequest{Sign: sign, Line: line}
	if len(items) > 2 {
		change, cerr := intItem(items[2], "clef-octave-change")
		if cerr != nil {
			return ClefRequest{}, cerr
		}
		req.OctaveChange = change
	}
	return req, nil
}

func parseBarline(items []sexp.Value) (BarlineRequest, error) {
	if len(items) == 0 {
		return BarlineRequest{Kind: BarlineRegular}, nil
	}
	tok, ok := items[0].Token()
	if !ok {
		return BarlineRequest{}, &TypeMismatchError{Expected: "barline kind symbol", Found: items[0].Kind.String()}
	}
	switch strings.TrimPrefix(tok, ":") {
	case "regular":
		return BarlineRequest{Kind: BarlineRegular}, nil
	case "double":
		return BarlineRequest{Kind: BarlineDouble}, nil
	case "final":
		return BarlineRequest{Kind: BarlineFinal}, nil
	case "repeat-forward":
		return BarlineRequest{Kind: BarlineRepeatForward}, nil
	case "repeat-backward":
		return BarlineRequest{Kind: BarlineRepeatBackward}, nil
	case "repeat-both":
		return BarlineRequest{Kind: BarlineRepeatBoth}, nil
	case "ending":
		return parseEndingBarline(items[1:])
	default:
		return BarlineRequest{}, &UnknownFormError{Message: fmt.Sprintf("unknown barline kind %q", tok)}
	}
}

func parseEndingBarline(items []sexp.Value) (BarlineRequest, error) {
	if len(items) == 0 {
		return BarlineRequest{}, &MissingFieldError{Name: "ending number"}
	}
	number, err := intItem(items[0], "ending number")
	if err != nil {
		return BarlineRequest{}, err
	}
	if len(items) < 2 {
		return BarlineRequest{}, &MissingFieldError{Name: "ending action"}
	}
	tok, ok := items[1].Token()
	if !ok {
		return BarlineRequest{}, &TypeMismatchError{Expected: "ending action symbol", Found: items[1].Kind.String()}
	}
	typ, perr := musicxml.ParseEndingType(strings.TrimPrefix(tok, ":"))
	if perr != nil {
		return BarlineRequest{}, &UnknownFormError{Message: fmt.Sprintf("unknown ending action %q", tok)}
	}
	return BarlineRequest{Kind: BarlineEnding, EndingNumber: number, EndingType: typ}, nil
}

func parseTempo(items []sexp.Value) (TempoRequest, error) {
	if len(items) == 0 {
		return TempoRequest{}, &MissingFieldError{Name: "beats per minute"}
	}
	req := TempoRequest{BeatUnit: duration.Spec{Base: duration.Quarter}}
	if spec, ok := durationItem(items[0]); ok {
		req.BeatUnit = spec
		items = items[1:]
	}
	if len(items) == 0 {
		return TempoRequest{}, &MissingFieldError{Name: "beats per minute"}
	}
	bpm, err := intItem(items[0], "beats per minute")
	if err != nil {
		return TempoRequest{}, err
	}
	if bpm <= 0 {
		return TempoRequest{}, &InvalidDurationError{Message: fmt.Sprintf("tempo %d must be positive", bpm)}
	}
	req.PerMinute = bpm
	return req, nil
}

func parseBackup(items []sexp.Value) (BackupRequest, error) {
	if len(items) == 0 {
		return BackupRequest{}, &MissingFieldError{Name: "beats"}
	}
	beats, err := floatItem(items[0], "beats")
	if err != nil {
		return BackupRequest{}, err
	}
	return BackupRequest{Beats: beats}, nil
}

func parseForward(items []sexp.Value) (ForwardRequest, error) {
	if len(items) == 0 {
		return ForwardRequest{}, &MissingFieldError{Name: "beats"}
	}
	beats, err := floatItem(items[0], "beats")
	if err != nil {
		return ForwardRequest{}, err
	}
	req := ForwardRequest{Beats: beats}
	rest := items[1:]
	for len(rest) >= 2 && rest[0].Kind == sexp.KindKeyword {
		switch rest[0].Sym {
		case "voice":
			v, verr := intItem(rest[1], "voice")
			if verr != nil {
				return ForwardRequest{}, verr
			}
			req.Voice = v
		case "staff":
			v, verr := intItem(rest[1], "staff")
			if verr != nil {
				return ForwardRequest{}, verr
			}
			req.Staff = v
		}
		rest = rest[2:]
	}
	return req, nil
}

func parseDynamic(items []sexp.Value) (DynamicRequest, error) {
	if len(items) == 0 {
		return DynamicRequest{}, &MissingFieldError{Name: "dynamic name"}
	}
	tok, ok := items[0].Token()
	if !ok {
		return DynamicRequest{}, &TypeMismatchError{Expected: "dynamic symbol", Found: items[0].Kind.String()}
	}
	kind, err := musicxml.ParseDynamicKind(strings.TrimPrefix(tok, ":"))
	if err != nil {
		return DynamicRequest{}, &UnknownFormError{Message: fmt.Sprintf("unknown dynamic %q", tok)}
	}
	return DynamicRequest{Kind: kind}, nil
}

func parseTextDirection(head string, items []sexp.Value) (DirectionRequest, error) {
	if len(items) == 0 {
		return DirectionRequest{}, &MissingFieldError{Name: "text"}
	}
	if items[0].Kind != sexp.KindString {
		return DirectionRequest{}, &TypeMismatchError{Expected: "string", Found: items[0].Kind.String()}
	}
	text := items[0].Str
	if head == "rehearsal" {
		return DirectionRequest{Placement: "above", Type: musicxml.Rehearsal{Text: text}}, nil
	}
	return DirectionRequest{Placement: "above", Type: musicxml.Words{Text: text}}, nil
}

func parsePedal(items []sexp.Value) (DirectionRequest, error) {
	if len(items) == 0 {
		return DirectionRequest{}, &MissingFieldError{Name: "pedal type"}
	}
	tok, ok := items[0].Token()
	if !ok {
		return DirectionRequest{}, &TypeMismatchError{Expected: "pedal type symbol", Found: items[0].Kind.String()}
	}
	typ, err := musicxml.ParsePedalType(strings.TrimPrefix(tok, ":"))
	if err != nil {
		return DirectionRequest{}, &UnknownFormError{Message: fmt.Sprintf("unknown pedal type %q", tok)}
	}
	return DirectionRequest{Placement: "below", Type: musicxml.Pedal{Type: typ}}, nil
}

func parseWedge(items []sexp.Value) (DirectionRequest, error) {
	if len(items) == 0 {
		return DirectionRequest{}, &MissingFieldError{Name: "wedge kind"}
	}
	tok, ok := items[0].Token()
	if !ok {
		return DirectionRequest{}, &TypeMismatchError{Expected: "wedge kind symbol", Found: items[0].Kind.String()}
	}
	kind, err := musicxml.ParseWedgeKind(strings.TrimPrefix(tok, ":"))
	if err != nil {
		return DirectionRequest{}, &UnknownFormError{Message: fmt.Sprintf("unknown wedge kind %q", tok)}
	}
	return DirectionRequest{Placement: "below", Type: musicxml.Wedge{Kind: kind}}, nil
}

func parseSlur(items []sexp.Value) (SlurRequest, error) {
	typ, err := startStopItem(items, musicxml.Start)
	if err != nil {
		return SlurRequest{}, err
	}
	return SlurRequest{Type: typ}, nil
}

func parseTie(items []sexp.Value) (TieRequest, error) {
	typ, err := startStopItem(items, musicxml.Start)
	if err != nil {
		return TieRequest{}, err
	}
	return TieRequest{Type: typ}, nil
}

func startStopItem(items []sexp.Value, dflt musicxml.StartStop) (musicxml.StartStop, error) {
	if len(items) == 0 {
		return dflt, nil
	}
	tok, ok := items[0].Token()
	if !ok {
		return "", &TypeMismatchError{Expected: "start or stop", Found: items[0].Kind.String()}
	}
	typ, err := musicxml.ParseStartStop(strings.TrimPrefix(tok, ":"))
	if err != nil {
		return "", &TypeMismatchError{Expected: "start or stop", Found: tok}
	}
	return typ, nil
}

// articulationKeywords maps articulation flag keywords to their IR value.
// marcato is the traditional name for the strong accent.
var articulationKeywords = map[string]musicxml.Articulation{
	"staccato":      musicxml.ArtStaccato,
	"accent":        musicxml.ArtAccent,
	"tenuto":        musicxml.ArtTenuto,
	"marcato":       musicxml.ArtStrongAccent,
	"staccatissimo": musicxml.ArtStaccatissimo,
	"spiccato":      musicxml.ArtSpiccato,
}

// parseNoteOptions scans keyword arguments left to right. Value-taking
// keywords (:voice, :staff, :stem) consume the following item; articulation
// flags and :arpeggiate stand alone, though :arpeggiate accepts an optional
// direction. Unknown keywords are skipped without error.
func parseNoteOptions(items []sexp.Value) (NoteOptions, error) {
	var opts NoteOptions
	for i := 0; i < len(items); i++ {
		item := items[i]
		if item.Kind != sexp.KindKeyword {
			continue
		}
		if art, ok := articulationKeywords[item.Sym]; ok {
			opts.Articulations = append(opts.Articulations, art)
			continue
		}
		switch item.Sym {
		case "voice":
			if i+1 >= len(items) {
				return NoteOptions{}, &MissingFieldError{Name: "voice"}
			}
			v, err := intItem(items[i+1], "voice")
			if err != nil {
				return NoteOptions{}, err
			}
			opts.Voice = v
			i++
		case "staff":
			if i+1 >= len(items) {
				return NoteOptions{}, &MissingFieldError{Name: "staff"}
			}
			v, err := intItem(items[i+1], "staff")
			if err != nil {
				return NoteOptions{}, err
			}
			opts.Staff = v
			i++
		case "stem":
			if i+1 >= len(items) {
				return NoteOptions{}, &MissingFieldError{Name: "stem"}
			}
			tok, ok := items[i+1].Token()
			if !ok {
				return NoteOptions{}, &TypeMismatchError{Expected: "stem direction", Found: items[i+1].Kind.String()}
			}
			stem, err := musicxml.ParseStem(strings.TrimPrefix(tok, ":"))
			if err != nil {
				return NoteOptions{}, &TypeMismatchError{Expected: "stem direction", Found: tok}
			}
			opts.Stem = stem
			i++
		case "arpeggiate":
			opts.Arpeggiate = true
			if i+1 < len(items) {
				if tok, ok := items[i+1].Token(); ok {
					name := strings.TrimPrefix(tok, ":")
					if name == "none" {
						i++
						break
					}
					if dir, err := musicxml.ParseArpeggiateDirection(name); err == nil {
						opts.ArpeggiateDir = dir
						i++
					}
				}
			}
		default:
			// Unknown keywords are skipped, not rejected, so that newer
			// notation files keep loading on older binaries.
		}
	}
	return opts, nil
}

// durationItem recognizes a duration token in item position: a symbol or
// keyword present in the duration table, or a bare integer such as 8.
func durationItem(v sexp.Value) (duration.Spec, bool) {
	if v.Kind == sexp.KindInt {
		spec, err := duration.ParseToken(strconv.FormatInt(v.Int, 10))
		if err != nil {
			return duration.Spec{}, false
		}
		return spec, true
	}
	tok, ok := v.Token()
	if !ok || !duration.IsToken(tok) {
		return duration.Spec{}, false
	}
	spec, err := duration.ParseToken(tok)
	if err != nil {
		return duration.Spec{}, false
	}
	return spec, true
}

func defaultDuration() duration.Spec {
	return duration.Spec{Base: duration.Quarter}
}

func intItem(v sexp.Value, field string) (int, error) {
	if v.Kind != sexp.KindInt {
		return 0, &TypeMismatchError{Expected: fmt.Sprintf("integer %s", field), Found: v.Kind.String()}
	}
	return int(v.Int), nil
}

func floatItem(v sexp.Value, field string) (float64, error) {
	switch v.Kind {
	case sexp.KindInt:
		return float64(v.Int), nil
	case sexp.KindFloat:
		return v.Float, nil
	default:
		return 0, &TypeMismatchError{Expected: fmt.Sprintf("number %s", field), Found: v.Kind.String()}
	}
}
