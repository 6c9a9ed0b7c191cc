package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveQuarterEqualsDivisions(t *testing.T) {
	assert := assert.New(t)
	for _, divisions := range []int{1, 2, 24, 480, 960} {
		assert.Equal(divisions, Resolve(Spec{Base: Quarter}, divisions))
	}
}

func TestResolveDoubleDottedHalf(t *testing.T) {
	// half = 2 quarters, two dots -> 3.5 quarters, at 2 divisions -> 7
	assert.Equal(t, 7, Resolve(Spec{Base: Half, Dots: 2}, 2))
}

func TestResolveTable(t *testing.T) {
	tests := []struct {
		name      string
		spec      Spec
		divisions int
		want      int
	}{
		{"whole at 960", Spec{Base: Whole}, 960, 3840},
		{"dotted quarter at 960", Spec{Base: Quarter, Dots: 1}, 960, 1440},
		{"dotted eighth at 960", Spec{Base: Eighth, Dots: 1}, 960, 720},
		{"sixteenth at 960", Spec{Base: N16th}, 960, 240},
		{"maxima at 1", Spec{Base: Maxima}, 1, 32},
		{"1024th at 256", Spec{Base: N1024th}, 256, 1},
		{"triple dotted whole at 8", Spec{Base: Whole, Dots: 3}, 8, 60},
		{"eighth at 1 rounds up", Spec{Base: Eighth}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.spec, tt.divisions); got != tt.want {
				t.Errorf("Resolve(%+v, %d) = %d, want %d", tt.spec, tt.divisions, got, tt.want)
			}
		})
	}
}

func TestResolveMonotonicInDivisions(t *testing.T) {
	assert := assert.New(t)
	specs := []Spec{
		{Base: Whole},
		{Base: Quarter, Dots: 2},
		{Base: Eighth, Dots: 1},
		{Base: N32nd},
	}
	for _, spec := range specs {
		prev := Resolve(spec, 1)
		for divisions := 2; divisions <= 64; divisions++ {
			cur := Resolve(spec, divisions)
			assert.GreaterOrEqual(cur, prev, "spec %+v at divisions %d", spec, divisions)
			prev = cur
		}
	}
}

func TestApplyTupletTruncates(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(640, ApplyTuplet(960, 3, 2))
	assert.Equal(548, ApplyTuplet(960, 7, 4))
	assert.Equal(384, ApplyTuplet(960, 5, 2))
	// identity ratio
	assert.Equal(960, ApplyTuplet(960, 1, 1))
}

func TestDotsResolvedBeforeTupletRatio(t *testing.T) {
	// Dotted quarter in a triplet: dot resolution rounds, the ratio then
	// truncates the already-rounded value.
	units := Resolve(Spec{Base: Quarter, Dots: 1}, 10)
	assert.Equal(t, 15, units)
	assert.Equal(t, 10, ApplyTuplet(units, 3, 2))

	// At divisions=1 the stage order is observable: round(1.5)=2, then
	// 2*2/3 truncates to 1.
	units = Resolve(Spec{Base: Quarter, Dots: 1}, 1)
	assert.Equal(t, 2, units)
	assert.Equal(t, 1, ApplyTuplet(units, 3, 2))
}
