package duration

import (
	"strings"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		tok  string
		want Spec
	}{
		{"q", Spec{Base: Quarter}},
		{":q", Spec{Base: Quarter}},
		{":quarter", Spec{Base: Quarter}},
		{"crotchet", Spec{Base: Quarter}},
		{"4", Spec{Base: Quarter}},
		{"h", Spec{Base: Half}},
		{"minim", Spec{Base: Half}},
		{"w", Spec{Base: Whole}},
		{"semibreve", Spec{Base: Whole}},
		{"8", Spec{Base: Eighth}},
		{"quaver", Spec{Base: Eighth}},
		{"16", Spec{Base: N16th}},
		{"semiquaver", Spec{Base: N16th}},
		{"maxima", Spec{Base: Maxima}},
		{"1024th", Spec{Base: N1024th}},
		{"q.", Spec{Base: Quarter, Dots: 1}},
		{":h..", Spec{Base: Half, Dots: 2}},
		{"w....", Spec{Base: Whole, Dots: 4}},
		{"QUARTER", Spec{Base: Quarter}},
		{"Minim.", Spec{Base: Half, Dots: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got, err := ParseToken(tt.tok)
			if err != nil {
				t.Fatalf("ParseToken(%q) error: %v", tt.tok, err)
			}
			if got != tt.want {
				t.Errorf("ParseToken(%q) = %+v, want %+v", tt.tok, got, tt.want)
			}
		})
	}
}

func TestParseTokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		tok     string
		wantMsg string
	}{
		{"unknown token", "qq", "unknown duration token"},
		{"unknown token names offender", ":blorp", `"blorp"`},
		{"only dots", "...", "only dots"},
		{"colon then dots", ":..", "only dots"},
		{"too many dots", "q.....", "too many dots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.tok)
			if err == nil {
				t.Fatalf("ParseToken(%q) succeeded, want error", tt.tok)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestIsToken(t *testing.T) {
	for _, tok := range []string{"q", ":8.", "breve", "64"} {
		if !IsToken(tok) {
			t.Errorf("IsToken(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"c4", ":voice", "", "..."} {
		if IsToken(tok) {
			t.Errorf("IsToken(%q) = true, want false", tok)
		}
	}
}
