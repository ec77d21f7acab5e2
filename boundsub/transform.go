package boundsub

import (
	"math"

	"github.com/gomip/cutgen/cutgen"
)

// colInfo records how a column was shifted and possibly complemented
// by the most recent Transform call, so Untransform can reverse it.
type colInfo struct {
	lower   float64
	width   float64
	flipped bool
}

// Transform is a cutgen.TransformedLP that substitutes x = lower + y
// (or x = lower + width - z for a complemented column) so that every
// working-space variable has a zero lower bound and, wherever the
// upper bound is finite, a non-negative coefficient. It is stateful
// across a Transform/Untransform pair: call Transform once per row
// before handing the result to an Engine, and Untransform once on the
// resulting cut before reusing the Transform for a different row.
type Transform struct {
	lp     cutgen.LPRelaxation
	domain cutgen.Domain
	info   map[int]colInfo
}

// New builds a Transform reading bounds from domain and solution
// values and integrality from lp.
func New(lp cutgen.LPRelaxation, domain cutgen.Domain) *Transform {
	return &Transform{lp: lp, domain: domain, info: make(map[int]colInfo)}
}

// Transform implements cutgen.TransformedLP.
func (t *Transform) Transform(inds []int, vals []float64, rhs float64) (newInds []int, newVals []float64, upper, solval []float64, newRhs float64, intsPositive bool, ok bool) {
	n := len(inds)
	newInds = append([]int(nil), inds...)
	newVals = make([]float64, n)
	upper = make([]float64, n)
	solval = make([]float64, n)
	intsPositive = true

	for col := range t.info {
		delete(t.info, col)
	}

	crhs := cutgen.CD(rhs)
	for i := 0; i < n; i++ {
		col := inds[i]
		lo := t.domain.ColLower(col)
		hi := t.domain.ColUpper(col)
		width := hi - lo
		sol := t.lp.SolutionValue(col)

		crhs = crhs.Sub(vals[i] * lo)
		y := vals[i]
		s := sol - lo
		flipped := false

		if y < 0 {
			if math.IsInf(width, 1) {
				if t.lp.IsColIntegral(col) {
					intsPositive = false
				}
			} else {
				crhs = crhs.Sub(y * width)
				y = -y
				s = width - s
				flipped = true
			}
		}

		newVals[i] = y
		solval[i] = s
		upper[i] = width
		t.info[col] = colInfo{lower: lo, width: width, flipped: flipped}
	}

	return newInds, newVals, upper, solval, crhs.Float64(), intsPositive, true
}

// Untransform implements cutgen.TransformedLP. integral is accepted
// for interface compatibility; this reference transform never rounds
// coefficients, so it has no effect here.
func (t *Transform) Untransform(inds []int, vals []float64, rhs float64, integral bool) (newInds []int, newVals []float64, newRhs float64, ok bool) {
	n := len(inds)
	newInds = append([]int(nil), inds...)
	newVals = make([]float64, n)

	crhs := cutgen.CD(rhs)
	for i := 0; i < n; i++ {
		col := inds[i]
		info, known := t.info[col]
		if !known {
			return nil, nil, 0, false
		}

		a := vals[i]
		if info.flipped {
			crhs = crhs.Sub(a * info.width)
			a = -a
		}
		crhs = crhs.Add(a * info.lower)
		newVals[i] = a
	}

	return newInds, newVals, crhs.Float64(), true
}
