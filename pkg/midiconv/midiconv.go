// Package midiconv renders a compiled score as a Standard MIDI File. It is
// a playback approximation: pitches, durations, tempo changes, and dynamics
// are honored; engraving-only content (clefs, barlines, lyrics) is ignored.
package midiconv

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

// DefaultResolution is the ticks-per-quarter used when a score declares no
// divisions value.
const DefaultResolution = 960

// DefaultVelocity is the note velocity before any dynamic marking is seen.
const DefaultVelocity = 90

// velocities maps dynamic markings to note velocities.
var velocities = map[musicxml.DynamicKind]uint8{
	musicxml.DynPPPP: 16,
	musicxml.DynPPP:  24,
	musicxml.DynPP:   36,
	musicxml.DynP:    50,
	musicxml.DynMP:   64,
	musicxml.DynMF:   76,
	musicxml.DynF:    90,
	musicxml.DynFF:   104,
	musicxml.DynFFF:  116,
	musicxml.DynFFFF: 127,
	musicxml.DynSF:   110,
	musicxml.DynSFZ:  115,
	musicxml.DynFP:   96,
	musicxml.DynRF:   100,
}

// Converter renders scores to MIDI bytes.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// absEvent is a message at an absolute tick, collected before delta
// conversion so that backups and chords can place events out of emission
// order.
type absEvent struct {
	tick int
	seq  int
	msg  smf.Message
}

// Generate renders the score as SMF bytes. The file's tick resolution is
// the score's divisions value, so note durations map to ticks one to one.
func (c *Converter) Generate(score *musicxml.ScorePartwise) ([]byte, error) {
	if score == nil {
		return nil, errors.New("nil score")
	}

	resolution := scoreResolution(score)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)

	for i := range score.Parts {
		track, err := c.partTrack(&score.Parts[i], i)
		if err != nil {
			return nil, err
		}
		if err := s.Add(track); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the score and writes it to filename.
func (c *Converter) WriteFile(score *musicxml.ScorePartwise, filename string) error {
	data, err := c.Generate(score)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func (c *Converter) partTrack(part *musicxml.Part, index int) (smf.Track, error) {
	channel := uint8(index % 16)
	velocity := uint8(DefaultVelocity)

	var events []absEvent
	seq := 0
	add := func(tick int, msg smf.Message) {
		events = append(events, absEvent{tick: tick, seq: seq, msg: msg})
		seq++
	}

	cursor := 0
	measureEnd := 0
	lastOnset := 0
	for mi := range part.Measures {
		measureStart := measureEnd
		cursor = measureStart
		for _, data := range part.Measures[mi].Content {
			switch el := data.(type) {
			case *musicxml.Note:
				// Grace notes have no absolute duration and are skipped in
				// playback.
				if el.Grace != nil {
					continue
				}
				start := cursor
				if el.Chord {
					start = lastOnset
				} else {
					lastOnset = cursor
					cursor += el.Duration
				}
				if !el.Rest && !el.Unpitched && el.Pitch != nil {
					key, err := midiKey(el.Pitch)
					if err != nil {
						return nil, err
					}
					add(start, smf.Message(midi.NoteOn(channel, key, velocity)))
					add(start+el.Duration, smf.Message(midi.NoteOff(channel, key)))
				}
			case *musicxml.Backup:
				cursor -= el.Duration
			case *musicxml.Forward:
				cursor += el.Duration
			case *musicxml.Direction:
				if el.Sound != nil && el.Sound.Tempo > 0 {
					add(cursor, tempoMessage(el.Sound.Tempo))
				}
				for _, dt := range el.Types {
					if dyn, ok := dt.(musicxml.Dynamics); ok {
						if v, found := velocities[dyn.Kind]; found {
							velocity = v
						}
					}
				}
			}
			if cursor > measureEnd {
				measureEnd = cursor
			}
		}
	}

	// Note-offs sort before note-ons at the same tick so repeated pitches
	// retrigger instead of overlapping.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		iOff := isNoteOff(events[i].msg)
		jOff := isNoteOff(events[j].msg)
		if iOff != jOff {
			return iOff
		}
		return events[i].seq < events[j].seq
	})

	var track smf.Track
	prev := 0
	for _, ev := range events {
		delta := ev.tick - prev
		if delta < 0 {
			delta = 0
		}
		track.Add(uint32(delta), ev.msg)
		prev = ev.tick
	}
	track.Close(0)
	return track, nil
}

// isNoteOff checks the status byte directly (0x80-0x8F).
func isNoteOff(msg smf.Message) bool {
	return len(msg) >= 3 && msg[0] >= 0x80 && msg[0] <= 0x8F
}

// tempoMessage builds the FF 51 03 tempo meta event for a
// quarter-notes-per-minute value.
func tempoMessage(qpm float64) smf.Message {
	microsecondsPerBeat := uint32(60000000.0 / qpm)
	return smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	})
}

// semitones maps step letters to their offset within an octave.
var semitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

func midiKey(p *musicxml.Pitch) (uint8, error) {
	base, ok := semitones[p.Step]
	if !ok {
		return 0, fmt.Errorf("unplayable step %q", p.Step)
	}
	key := (p.Octave+1)*12 + base + p.Alter
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("pitch %s%d (alter %d) is outside the MIDI range", p.Step, p.Octave, p.Alter)
	}
	return uint8(key), nil
}

// scoreResolution finds the first declared divisions value.
func scoreResolution(score *musicxml.ScorePartwise) uint16 {
	for i := range score.Parts {
		for _, m := range score.Parts[i].Measures {
			for _, data := range m.Content {
				if attrs, ok := data.(*musicxml.Attributes); ok && attrs.Divisions > 0 {
					return uint16(attrs.Divisions)
				}
			}
		}
	}
	return DefaultResolution
}
