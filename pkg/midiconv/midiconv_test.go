package midiconv

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/lisp2mxl/pkg/compiler"
	"github.com/james-see/lisp2mxl/pkg/musicxml"
)

func compileSource(t *testing.T, src string) *musicxml.ScorePartwise {
	t.Helper()
	score, err := compiler.Compile(src, compiler.Options{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return score
}

// readEvents parses generated bytes back and returns the note on/off counts
// and the set of sounded keys.
func readEvents(t *testing.T, data []byte) (ons, offs int, keys map[uint8]bool) {
	t.Helper()
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated MIDI does not parse: %v", err)
	}
	keys = map[uint8]bool{}
	for _, track := range s.Tracks {
		for _, ev := range track {
			msg := ev.Message
			if len(msg) < 3 {
				continue
			}
			status := msg[0]
			if status >= 0x90 && status <= 0x9F && msg[2] > 0 {
				ons++
				keys[msg[1]] = true
			}
			if (status >= 0x80 && status <= 0x8F) || (status >= 0x90 && status <= 0x9F && msg[2] == 0) {
				offs++
			}
		}
	}
	return ons, offs, keys
}

func TestGenerateHeader(t *testing.T) {
	score := compileSource(t, `(measure (note c4 :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Error("generated data is not a MIDI file")
	}
}

func TestGenerateNilScore(t *testing.T) {
	if _, err := New().Generate(nil); err == nil {
		t.Error("expected error for nil score")
	}
}

func TestGenerateNoteEvents(t *testing.T) {
	score := compileSource(t, `(measure (note c4 :q) (note e4 :q) (rest :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	ons, offs, keys := readEvents(t, data)
	if ons != 2 {
		t.Errorf("expected 2 note-on events, got %d", ons)
	}
	if offs != 2 {
		t.Errorf("expected 2 note-off events, got %d", offs)
	}
	// c4 = 60, e4 = 64
	if !keys[60] || !keys[64] {
		t.Errorf("expected keys 60 and 64, got %v", keys)
	}
}

func TestGenerateChordSoundsTogether(t *testing.T) {
	score := compileSource(t, `(measure (chord (c4 e4 g4) :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated MIDI does not parse: %v", err)
	}

	// All three note-ons must land on the same tick.
	var onTicks []uint64
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)
			msg := ev.Message
			if len(msg) >= 3 && msg[0] >= 0x90 && msg[0] <= 0x9F && msg[2] > 0 {
				onTicks = append(onTicks, tick)
			}
		}
	}
	if len(onTicks) != 3 {
		t.Fatalf("expected 3 note-on events, got %d", len(onTicks))
	}
	for _, tick := range onTicks {
		if tick != onTicks[0] {
			t.Errorf("chord notes do not share an onset: %v", onTicks)
		}
	}
}

func TestGenerateGraceNotesSkipped(t *testing.T) {
	score := compileSource(t, `(measure (grace d4 :8) (note c4 :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	ons, _, _ := readEvents(t, data)
	if ons != 1 {
		t.Errorf("expected grace note to be skipped, got %d note-ons", ons)
	}
}

func TestGenerateTempoMeta(t *testing.T) {
	score := compileSource(t, `(measure (tempo 150) (note c4 :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated MIDI does not parse: %v", err)
	}
	found := false
	for _, track := range s.Tracks {
		for _, ev := range track {
			msg := ev.Message
			if len(msg) >= 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
				usPerBeat := uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5])
				tempo := 60000000.0 / float64(usPerBeat)
				if tempo < 149 || tempo > 151 {
					t.Errorf("expected tempo near 150, got %f", tempo)
				}
				found = true
			}
		}
	}
	if !found {
		t.Error("no tempo meta event in generated MIDI")
	}
}

func TestGenerateDynamicsChangeVelocity(t *testing.T) {
	score := compileSource(t, `(measure pp (note c4 :q) ff (note d4 :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated MIDI does not parse: %v", err)
	}
	var vels []uint8
	for _, track := range s.Tracks {
		for _, ev := range track {
			msg := ev.Message
			if len(msg) >= 3 && msg[0] >= 0x90 && msg[0] <= 0x9F && msg[2] > 0 {
				vels = append(vels, msg[2])
			}
		}
	}
	if len(vels) != 2 {
		t.Fatalf("expected 2 note-ons, got %d", len(vels))
	}
	if vels[0] != velocities[musicxml.DynPP] {
		t.Errorf("expected pp velocity %d, got %d", velocities[musicxml.DynPP], vels[0])
	}
	if vels[1] != velocities[musicxml.DynFF] {
		t.Errorf("expected ff velocity %d, got %d", velocities[musicxml.DynFF], vels[1])
	}
}

func TestGenerateBackupOverlapsVoices(t *testing.T) {
	score := compileSource(t, `(measure (note c4 :q) (backup 1) (note g4 :q))`)
	data, err := New().Generate(score)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated MIDI does not parse: %v", err)
	}
	var onTicks []uint64
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)
			msg := ev.Message
			if len(msg) >= 3 && msg[0] >= 0x90 && msg[0] <= 0x9F && msg[2] > 0 {
				onTicks = append(onTicks, tick)
			}
		}
	}
	if len(onTicks) != 2 || onTicks[0] != onTicks[1] {
		t.Errorf("expected both voices to start together, got %v", onTicks)
	}
}

func TestMidiKey(t *testing.T) {
	tests := []struct {
		pitch musicxml.Pitch
		want  uint8
	}{
		{musicxml.Pitch{Step: "C", Octave: 4}, 60},
		{musicxml.Pitch{Step: "A", Octave: 4}, 69},
		{musicxml.Pitch{Step: "C", Alter: 1, Octave: 4}, 61},
		{musicxml.Pitch{Step: "B", Alter: -1, Octave: 3}, 58},
		{musicxml.Pitch{Step: "C", Octave: -1}, 0},
		{musicxml.Pitch{Step: "G", Octave: 9}, 127},
	}
	for _, tt := range tests {
		got, err := midiKey(&tt.pitch)
		if err != nil {
			t.Errorf("midiKey(%v) failed: %v", tt.pitch, err)
			continue
		}
		if got != tt.want {
			t.Errorf("midiKey(%v) = %d, want %d", tt.pitch, got, tt.want)
		}
	}

	if _, err := midiKey(&musicxml.Pitch{Step: "C", Octave: 12}); err == nil {
		t.Error("expected out-of-range error")
	}
}
