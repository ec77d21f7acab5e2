package cutgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreprocessEngine(feastol float64) *Engine {
	lp := &fakeLP{
		integer: map[int]bool{0: true, 1: true, 2: false},
		solval:  map[int]float64{},
		numCols: 3,
		solver:  &fakeSolver{data: &fakeData{feastol: feastol, epsilon: feastol * 1e-3}},
	}
	return newTestEngine(lp, &fakePool{})
}

func TestPreprocessBaseInequalityRescalesAndClassifies(t *testing.T) {
	e := newPreprocessEngine(1e-6)
	r := buildRow([]int{0, 1}, []float64{4, 2}, []float64{1, 1}, []float64{1, 1}, 3)

	hasUnboundedInts, hasGeneralInts, hasContinuous, ok := e.preprocessBaseInequality(r)

	require.True(t, ok)
	assert.False(t, hasUnboundedInts)
	assert.False(t, hasGeneralInts)
	assert.False(t, hasContinuous)
	assert.InDelta(t, 0.5, r.vals[0], 1e-12)
	assert.InDelta(t, 0.25, r.vals[1], 1e-12)
	assert.InDelta(t, 0.375, r.rhs.Float64(), 1e-12)
}

func TestPreprocessBaseInequalityIsIdempotent(t *testing.T) {
	e := newPreprocessEngine(1e-6)
	r := buildRow([]int{0, 1}, []float64{4, 2}, []float64{1, 1}, []float64{1, 1}, 3)

	_, _, _, ok := e.preprocessBaseInequality(r)
	require.True(t, ok)
	firstVals := append([]float64(nil), r.vals...)
	firstRhs := r.rhs.Float64()

	r2 := buildRow(r.inds, r.vals, r.upper, r.solval, r.rhs.Float64())
	_, _, _, ok2 := e.preprocessBaseInequality(r2)
	require.True(t, ok2)

	assert.Equal(t, firstVals, r2.vals)
	assert.Equal(t, firstRhs, r2.rhs.Float64())
}

func TestPreprocessBaseInequalityCancelsTinyNegativeCoefficient(t *testing.T) {
	e := newPreprocessEngine(1e-6)
	r := buildRow([]int{0, 1}, []float64{4, -1e-10}, []float64{1, 5}, []float64{1, 0}, 3)

	_, _, _, ok := e.preprocessBaseInequality(r)

	require.True(t, ok)
	require.Len(t, r.vals, 1)
	assert.InDelta(t, 0.5, r.vals[0], 1e-12)
}

func TestPreprocessBaseInequalityRejectsUnboundedTinyNegative(t *testing.T) {
	e := newPreprocessEngine(1e-6)
	r := buildRow([]int{0, 1}, []float64{4, -1e-10}, []float64{1, math.Inf(1)}, []float64{1, 0}, 4)

	_, _, _, ok := e.preprocessBaseInequality(r)

	assert.False(t, ok)
}
