package cutgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMixedBinaryEngine(feastol float64, integer map[int]bool) *Engine {
	lp := &fakeLP{
		integer: integer,
		solval:  map[int]float64{},
		numCols: len(integer),
		solver:  &fakeSolver{data: &fakeData{feastol: feastol, epsilon: feastol * 1e-3}},
	}
	return newTestEngine(lp, &fakePool{})
}

// row 5x1+5x2+3y<=7, x binary, y continuous unbounded above: the cover
// takes both binaries, lambda=3, and the continuous column's positive
// coefficient is zeroed rather than kept, since it never enters the
// cover.
func TestSeparateLiftedMixedBinaryCoverDropsContinuousCoefficient(t *testing.T) {
	e := newMixedBinaryEngine(1e-6, map[int]bool{0: true, 1: true, 2: false})
	r := buildRow([]int{0, 1, 2}, []float64{5, 5, 3}, []float64{1, 1, math.Inf(1)}, []float64{1, 1, 0}, 7)

	require.True(t, e.determineCover(r, false))
	assert.InDelta(t, 3.0, r.lambda.Float64(), 1e-9)

	require.True(t, e.separateLiftedMixedBinaryCover(r))

	assert.InDelta(t, 3.0, r.vals[0], 1e-9)
	assert.InDelta(t, 3.0, r.vals[1], 1e-9)
	assert.InDelta(t, 0.0, r.vals[2], 1e-9)
	assert.InDelta(t, 3.0, r.rhs.Float64(), 1e-9)
	assert.True(t, r.integralSupport)
}

func TestSeparateLiftedMixedBinaryCoverValidity(t *testing.T) {
	e := newMixedBinaryEngine(1e-6, map[int]bool{0: true, 1: true, 2: false})
	r := buildRow([]int{0, 1, 2}, []float64{5, 5, 3}, []float64{1, 1, math.Inf(1)}, []float64{1, 1, 0}, 7)
	require.True(t, e.determineCover(r, false))
	require.True(t, e.separateLiftedMixedBinaryCover(r))

	// any 0/1, y>=0 point feasible for 5x1+5x2+3y<=7 must have x1+x2<=1,
	// since x1=x2=1 alone already exceeds 7.
	feasible := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 2}}
	for _, p := range feasible {
		orig := 5*p[0] + 5*p[1] + 3*p[2]
		require.LessOrEqual(t, orig, 7.0)
		cut := r.vals[0]*p[0] + r.vals[1]*p[1] + r.vals[2]*p[2]
		assert.LessOrEqual(t, cut, r.rhs.Float64()+1e-9)
	}
}

func TestSeparateLiftedMixedBinaryCoverKeepsNegativeContinuousSupport(t *testing.T) {
	// a continuous column with a negative coefficient cannot be zeroed
	// away without changing the inequality's meaning, so integralSupport
	// must be reported false instead.
	e := newMixedBinaryEngine(1e-6, map[int]bool{0: true, 1: true, 2: false})
	r := buildRow([]int{0, 1, 2}, []float64{5, 5, -3}, []float64{1, 1, math.Inf(1)}, []float64{1, 1, 0}, 7)
	require.True(t, e.determineCover(r, false))

	require.True(t, e.separateLiftedMixedBinaryCover(r))

	assert.False(t, r.integralSupport)
}
