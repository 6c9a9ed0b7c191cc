package compiler

import "github.com/james-see/lisp2mxl/pkg/musicxml"

func compileDynamic(req DynamicRequest) *musicxml.Direction {
	return &musicxml.Direction{
		Placement: "below",
		Types:     []musicxml.DirectionType{musicxml.Dynamics{Kind: req.Kind}},
	}
}

// compileTempo emits a metronome marking plus a sound element whose tempo is
// normalized to quarter notes per minute, whatever the displayed beat unit.
func compileTempo(req TempoRequest) *musicxml.Direction {
	quarters := req.BeatUnit.Base.Quarters()
	add := quarters
	for i := 0; i < req.BeatUnit.Dots; i++ {
		add /= 2
		quarters += add
	}
	return &musicxml.Direction{
		Placement: "above",
		Types: []musicxml.DirectionType{musicxml.Metronome{
			BeatUnit:     musicxml.NoteTypeFor(req.BeatUnit.Base),
			BeatUnitDots: req.BeatUnit.Dots,
			PerMinute:    req.PerMinute,
		}},
		Sound: &musicxml.Sound{Tempo: float64(req.PerMinute) * quarters},
	}
}

func compileDirection(req DirectionRequest) *musicxml.Direction {
	return &musicxml.Direction{
		Placement: req.Placement,
		Types:     []musicxml.DirectionType{req.Type},
	}
}
