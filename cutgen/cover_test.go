package cutgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoverEngine(feastol float64, integer map[int]bool) *Engine {
	lp := &fakeLP{
		integer: integer,
		solval:  map[int]float64{},
		numCols: len(integer),
		solver:  &fakeSolver{data: &fakeData{feastol: feastol, epsilon: feastol * 1e-3}},
	}
	return newTestEngine(lp, &fakePool{})
}

func TestDetermineCoverRejectsTrivialRhs(t *testing.T) {
	e := newCoverEngine(1e-6, map[int]bool{0: true, 1: true})
	r := buildRow([]int{0, 1}, []float64{3, 3}, []float64{1, 1}, []float64{1, 1}, 5e-6)

	ok := e.determineCover(r, false)

	assert.False(t, ok)
}

func TestDetermineCoverTwoCandidateBinaryRow(t *testing.T) {
	e := newCoverEngine(1e-6, map[int]bool{0: true, 1: true})
	r := buildRow([]int{0, 1}, []float64{3, 3}, []float64{1, 1}, []float64{1, 1}, 5)

	ok := e.determineCover(r, false)

	require.True(t, ok)
	assert.ElementsMatch(t, []int{0, 1}, r.cover)
	assert.InDelta(t, 1.0, r.lambda.Float64(), 1e-9)
}

func TestDetermineCoverProperty(t *testing.T) {
	// after determineCover, the cover's weighted upper-bound sum must
	// exceed rhs by more than max(10*feastol, feastol*|rhs|).
	e := newCoverEngine(1e-6, map[int]bool{0: true, 1: true, 2: true})
	r := buildRow([]int{0, 1, 2}, []float64{5, 4, 2}, []float64{1, 1, 1}, []float64{1, 1, 0.5}, 6)

	ok := e.determineCover(r, false)
	require.True(t, ok)

	var weight float64
	for _, j := range r.cover {
		weight += r.vals[j] * r.upper[j]
	}
	threshold := 10 * 1e-6
	if v := 1e-6 * 6; v > threshold {
		threshold = v
	}
	assert.Greater(t, weight-6, threshold)
}

func TestDetermineCoverStopsAtSingleGeneralIntegerElement(t *testing.T) {
	// a general integer with a large enough weighted contribution can
	// close the cover before every candidate is added.
	e := newCoverEngine(1e-6, map[int]bool{0: true, 1: true})
	r := buildRow([]int{0, 1}, []float64{4, 3}, []float64{3, 1}, []float64{3, 1}, 6)

	ok := e.determineCover(r, false)

	require.True(t, ok)
	assert.Equal(t, []int{0}, r.cover)
	assert.InDelta(t, 6.0, r.lambda.Float64(), 1e-9)
}
