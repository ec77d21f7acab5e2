package cutgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMixedIntegerEngine(feastol float64, integer map[int]bool) *Engine {
	lp := &fakeLP{
		integer: integer,
		solval:  map[int]float64{},
		numCols: len(integer),
		solver:  &fakeSolver{data: &fakeData{feastol: feastol, epsilon: feastol * 1e-3}},
	}
	return newTestEngine(lp, &fakePool{})
}

// row 4x1+3x2+2y<=6, x1 general integer in [0,3], x2 binary, y
// continuous unbounded: determineCover picks x1 alone (its weighted
// contribution already closes the cover), and the mixed-integer lift
// pivots on it.
func TestSeparateLiftedMixedIntegerCoverPivotsOnGeneralInteger(t *testing.T) {
	e := newMixedIntegerEngine(1e-6, map[int]bool{0: true, 1: true, 2: false})
	r := buildRow([]int{0, 1, 2}, []float64{4, 3, 2}, []float64{3, 1, math.Inf(1)}, []float64{3, 1, 0}, 6)

	require.True(t, e.determineCover(r, false))
	assert.Equal(t, []int{0}, r.cover)
	assert.InDelta(t, 6.0, r.lambda.Float64(), 1e-9)

	require.True(t, e.separateLiftedMixedIntegerCover(r))

	assert.InDelta(t, 2.0, r.vals[0], 1e-9)
	assert.InDelta(t, 1.0, r.vals[1], 1e-9)
	assert.InDelta(t, 0.0, r.vals[2], 1e-9)
	assert.InDelta(t, 2.0, r.rhs.Float64(), 1e-9)
	assert.True(t, r.integralSupport)
}

func TestSeparateLiftedMixedIntegerCoverValidity(t *testing.T) {
	e := newMixedIntegerEngine(1e-6, map[int]bool{0: true, 1: true, 2: false})
	r := buildRow([]int{0, 1, 2}, []float64{4, 3, 2}, []float64{3, 1, math.Inf(1)}, []float64{3, 1, 0}, 6)
	require.True(t, e.determineCover(r, false))
	require.True(t, e.separateLiftedMixedIntegerCover(r))

	// x1 in {0,1,2,3}, x2 in {0,1}, y>=0, feasible for 4x1+3x2+2y<=6.
	feasible := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 0, 0.5}, {0, 0, 3}}
	for _, p := range feasible {
		orig := 4*p[0] + 3*p[1] + 2*p[2]
		require.LessOrEqual(t, orig, 6.0)
		cut := r.vals[0]*p[0] + r.vals[1]*p[1] + r.vals[2]*p[2]
		assert.LessOrEqual(t, cut, r.rhs.Float64()+1e-9)
	}

	// the LP point that produced the cover is cut off.
	violated := r.vals[0]*3 + r.vals[1]*1 + r.vals[2]*0
	assert.Greater(t, violated, r.rhs.Float64())
}
