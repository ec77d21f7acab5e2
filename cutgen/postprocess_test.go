package cutgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostprocessEngine(feastol, epsilon float64) *Engine {
	lp := &fakeLP{
		integer: map[int]bool{0: true, 1: true},
		solval:  map[int]float64{},
		numCols: 2,
		solver:  &fakeSolver{data: &fakeData{feastol: feastol, epsilon: epsilon}},
	}
	return newTestEngine(lp, &fakePool{})
}

func TestIntegralScaleAlreadyIntegral(t *testing.T) {
	scale := IntegralScale([]float64{3, 4, 5}, 1e-6, 1e-9)
	assert.Equal(t, 1.0, scale)
}

func TestIntegralScaleFindsCommonDenominator(t *testing.T) {
	scale := IntegralScale([]float64{0.5}, 1e-6, 1e-9)
	require.NotZero(t, scale)
	assert.InDelta(t, 0.0, math.Abs(scale*0.5-math.Round(scale*0.5)), 1e-9)
}

func TestPostprocessCutSkipsWhenAlreadyIntegral(t *testing.T) {
	e := newPostprocessEngine(1e-6, 1e-9)
	r := buildRow([]int{0, 1}, []float64{1, 1}, []float64{1, 1}, []float64{1, 1}, 1)
	r.integralSupport = true
	r.integralCoefficients = true

	ok := e.postprocessCut(r)

	require.True(t, ok)
	assert.Equal(t, []float64{1, 1}, r.vals)
	assert.Equal(t, 1.0, r.rhs.Float64())
}

func TestPostprocessCutMarksIntegralWhenAlreadyExact(t *testing.T) {
	e := newPostprocessEngine(1e-6, 1e-9)
	r := buildRow([]int{0, 1}, []float64{3, 0}, []float64{math.Inf(1), math.Inf(1)}, []float64{1, 0}, 3)
	r.integralSupport = true
	r.integralCoefficients = false

	ok := e.postprocessCut(r)

	require.True(t, ok)
	assert.InDelta(t, 3.0, r.vals[0], 1e-9)
	assert.InDelta(t, 0.0, r.vals[1], 1e-9)
	assert.InDelta(t, 3.0, r.rhs.Float64(), 1e-9)
	assert.True(t, r.integralCoefficients)
}

func TestPostprocessCutRenormalizesNonIntegralSupport(t *testing.T) {
	e := newPostprocessEngine(1e-6, 1e-9)
	r := buildRow([]int{0, 1}, []float64{4, 8}, []float64{math.Inf(1), math.Inf(1)}, []float64{0, 0}, 16)
	r.integralSupport = false

	ok := e.postprocessCut(r)

	require.True(t, ok)
	assert.InDelta(t, 0.25, r.vals[0], 1e-12)
	assert.InDelta(t, 0.5, r.vals[1], 1e-12)
	assert.InDelta(t, 1.0, r.rhs.Float64(), 1e-12)
}

func TestPostprocessMonotonicityAgainstFeasiblePoints(t *testing.T) {
	// the postprocessed cut must be weaker or equal at every feasible
	// integer point of the pre-postprocess cut.
	e := newPostprocessEngine(1e-6, 1e-9)
	r := buildRow([]int{0, 1}, []float64{3, 0}, []float64{math.Inf(1), math.Inf(1)}, []float64{1, 0}, 3)
	r.integralSupport = true
	r.integralCoefficients = false
	beforeVals := append([]float64(nil), r.vals...)
	beforeRhs := r.rhs.Float64()

	require.True(t, e.postprocessCut(r))

	for x := 0.0; x <= 2; x++ {
		before := beforeVals[0] * x
		after := r.vals[0] * x
		if before <= beforeRhs+1e-9 {
			assert.LessOrEqual(t, after, r.rhs.Float64()+1e-9)
		}
	}
}
