// Package compiler turns parsed notation forms into a MusicXML score. Form
// parsers convert tagged values into typed request objects; element
// compilers turn requests into measure content; Compile assembles whole
// scores.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/james-see/lisp2mxl/pkg/musicxml"
	"github.com/james-see/lisp2mxl/pkg/sexp"
)

// DefaultDivisions is the default divisions-per-quarter-note scale. It is
// highly composite so that dotted values and common tuplet ratios resolve
// to exact integers.
const DefaultDivisions = 960

// Options configures one compilation. Divisions is threaded explicitly
// through every duration computation; independent compilations may use
// different values without interference.
type Options struct {
	Divisions int
	Title     string
}

// Compile reads notation source and compiles it to a score. Accepted
// top-level forms: a single (score ...) form, a sequence of (part ...)
// forms, or a sequence of bare (measure ...) forms, which are wrapped in a
// single default part.
func Compile(src string, opts Options) (*musicxml.ScorePartwise, error) {
	forms, err := sexp.Read(src)
	if err != nil {
		return nil, fmt.Errorf("read notation source: %w", err)
	}

	divisions := opts.Divisions
	if divisions <= 0 {
		divisions = DefaultDivisions
	}
	b := &scoreBuilder{divisions: divisions, title: opts.Title}
	for _, form := range forms {
		if err := b.addTopLevel(form); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

type compiledPart struct {
	id       string
	name     string
	measures []musicxml.Measure
}

type scoreBuilder struct {
	divisions int
	title     string
	parts     []*compiledPart
	dflt      *compiledPart
}

func (b *scoreBuilder) addTopLevel(form sexp.Value) error {
	switch form.Head() {
	case "score":
		return b.addScore(form.List[1:])
	case "part":
		return b.addPart(form.List[1:])
	case "measure":
		return b.addMeasure(b.defaultPart(), form)
	default:
		return &UnknownFormError{Message: fmt.Sprintf("top-level form must be score, part, or measure, found %s", form.String())}
	}
}

func (b *scoreBuilder) addScore(items []sexp.Value) error {
	i := 0
	for i+1 < len(items) && items[i].Kind == sexp.KindKeyword {
		if items[i].Sym == "title" && items[i+1].Kind == sexp.KindString {
			b.title = items[i+1].Str
		}
		i += 2
	}
	for ; i < len(items); i++ {
		switch items[i].Head() {
		case "part":
			if err := b.addPart(items[i].List[1:]); err != nil {
				return err
			}
		case "measure":
			if err := b.addMeasure(b.defaultPart(), items[i]); err != nil {
				return err
			}
		default:
			return &UnknownFormError{Message: fmt.Sprintf("score form must contain parts or measures, found %s", items[i].String())}
		}
	}
	return nil
}

func (b *scoreBuilder) addPart(items []sexp.Value) error {
	if len(items) == 0 {
		return &MissingFieldError{Name: "part id"}
	}
	id, ok := partID(items[0])
	if !ok {
		return &TypeMismatchError{Expected: "part id symbol or string", Found: items[0].Kind.String()}
	}
	part := &compiledPart{id: id, name: id}
	rest := items[1:]
	if len(rest) > 0 && rest[0].Kind == sexp.KindString {
		part.name = rest[0].Str
		rest = rest[1:]
	}
	b.parts = append(b.parts, part)
	for _, form := range rest {
		if form.Head() != "measure" {
			return &UnknownFormError{Message: fmt.Sprintf("part form must contain measures, found %s", form.String())}
		}
		if err := b.addMeasure(part, form); err != nil {
			return err
		}
	}
	return nil
}

func (b *scoreBuilder) addMeasure(part *compiledPart, form sexp.Value) error {
	var elements []MeasureElement
	for _, item := range form.List[1:] {
		el, err := ParseMeasureElement(item)
		if err != nil {
			return err
		}
		if el == nil {
			continue
		}
		elements = append(elements, el)
	}
	number := strconv.Itoa(len(part.measures) + 1)
	part.measures = append(part.measures, *compileMeasure(number, elements, b.divisions))
	return nil
}

func (b *scoreBuilder) defaultPart() *compiledPart {
	if b.dflt == nil {
		b.dflt = &compiledPart{id: "P1", name: "Part 1"}
		b.parts = append(b.parts, b.dflt)
	}
	return b.dflt
}

func (b *scoreBuilder) finish() *musicxml.ScorePartwise {
	score := &musicxml.ScorePartwise{
		Version:        musicxml.DefaultVersion,
		Identification: &musicxml.Identification{Software: "lisp2mxl"},
	}
	if b.title != "" {
		score.Work = &musicxml.Work{Title: b.title}
	}
	for _, part := range b.parts {
		score.PartList = append(score.PartList, musicxml.ScorePart{ID: part.id, Name: part.name})
		score.Parts = append(score.Parts, musicxml.Part{ID: part.id, Measures: part.measures})
	}
	return score
}

func partID(v sexp.Value) (string, bool) {
	if v.Kind == sexp.KindString {
		return v.Str, v.Str != ""
	}
	if tok, ok := v.Token(); ok {
		return strings.TrimPrefix(tok, ":"), true
	}
	return "", false
}
