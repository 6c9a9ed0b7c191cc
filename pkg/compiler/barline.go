package compiler

import "github.com/james-see/lisp2mxl/pkg/musicxml"

// compileBarline is a fixed table from the symbolic barline kinds to a
// (bar-style, location, repeat) triple.
//
// The ending kind currently degrades to a regular bar style with no volta
// bracket: whether to model real ending structures is an open question, and
// the placeholder keeps output well formed in the meantime.
func compileBarline(req BarlineRequest) *musicxml.Barline {
	switch req.Kind {
	case BarlineDouble:
		return &musicxml.Barline{Location: musicxml.LocationRight, BarStyle: musicxml.BarLightLight}
	case BarlineFinal:
		return &musicxml.Barline{Location: musicxml.LocationRight, BarStyle: musicxml.BarLightHeavy}
	case BarlineRepeatForward:
		return &musicxml.Barline{
			Location: musicxml.LocationLeft,
			BarStyle: musicxml.BarHeavyLight,
			Repeat:   &musicxml.Repeat{Direction: musicxml.RepeatForward},
		}
	case BarlineRepeatBackward:
		return &musicxml.Barline{
			Location: musicxml.LocationRight,
			BarStyle: musicxml.BarLightHeavy,
			Repeat:   &musicxml.Repeat{Direction: musicxml.RepeatBackward},
		}
	case BarlineRepeatBoth:
		return &musicxml.Barline{
			Location: musicxml.LocationRight,
			BarStyle: musicxml.BarHeavyHeavy,
			Repeat:   &musicxml.Repeat{Direction: musicxml.RepeatBackward},
		}
	case BarlineEnding:
		return &musicxml.Barline{Location: musicxml.LocationRight, BarStyle: musicxml.BarRegular}
	default:
		return &musicxml.Barline{Location: musicxml.LocationRight, BarStyle: musicxml.BarRegular}
	}
}
