package cutgen

import (
	"math"
	"sort"
)

// preprocessBaseInequality rescales
// the row by a power of two so the largest coefficient sits in
// [0.5, 1), drops coefficients at or below the feasibility tolerance
// (bound-substituting negative ones into rhs), classifies the surviving
// variables, and cancels excess length by bound-substituting the
// smallest-|value| entries with near-zero cancellation slack.
//
// It returns false when the row cannot be cleaned without an unbounded
// upper bound, when too few positions are cancellable to meet maxLen,
// or when the row is already redundant in the working space.
func (e *Engine) preprocessBaseInequality(r *row) (hasUnboundedInts, hasGeneralInts, hasContinuous bool, ok bool) {
	feastol := e.cfg.FeasTol
	n := r.n()

	m := maxAbs(r.vals)
	_, exp := math.Frexp(m)
	scale := math.Ldexp(1, -exp)
	r.rhs = r.rhs.Mul(scale)

	maxact := -feastol
	numZeros := 0

	for i := 0; i < n; i++ {
		r.vals[i] = math.Ldexp(r.vals[i], -exp)

		if math.Abs(r.vals[i]) <= feastol {
			if r.vals[i] < 0 {
				if math.IsInf(r.upper[i], 1) {
					traceReject("preprocessBaseInequality", "cannot cancel tiny negative coefficient with unbounded upper")
					return false, false, false, false
				}
				r.rhs = r.rhs.Sub(r.vals[i] * r.upper[i])
			}
			numZeros++
			r.vals[i] = 0
			continue
		}

		col := r.inds[i]
		if !e.lp.IsColIntegral(col) {
			hasContinuous = true
			if r.vals[i] > 0 {
				if math.IsInf(r.upper[i], 1) {
					maxact = math.Inf(1)
				} else if !math.IsInf(maxact, 1) {
					maxact += r.vals[i] * r.upper[i]
				}
			}
			continue
		}

		if math.IsInf(r.upper[i], 1) {
			hasUnboundedInts = true
			hasGeneralInts = true
			if r.vals[i] > 0 {
				maxact = math.Inf(1)
			}
			if math.IsInf(maxact, 1) {
				continue
			}
		} else if r.upper[i] != 1 {
			hasGeneralInts = true
		}

		if r.vals[i] > 0 && !math.IsInf(maxact, 1) {
			maxact += r.vals[i] * r.upper[i]
		}
	}

	maxLen := e.cfg.MaxLenBase + int(e.cfg.MaxLenFrac*float64(e.lp.NumCols()))

	if n-numZeros > maxLen {
		numCancel := n - numZeros - maxLen
		cancelIdx := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if r.vals[i] == 0 {
				continue
			}
			var slack float64
			if r.vals[i] > 0 {
				slack = r.solval[i]
			} else {
				slack = r.upper[i] - r.solval[i]
			}
			if slack <= feastol {
				cancelIdx = append(cancelIdx, i)
			}
		}

		if len(cancelIdx) < numCancel {
			traceReject("preprocessBaseInequality", "row too long and too few cancellable positions")
			return false, false, false, false
		}
		if len(cancelIdx) > numCancel {
			sort.Slice(cancelIdx, func(a, b int) bool {
				return math.Abs(r.vals[cancelIdx[a]]) < math.Abs(r.vals[cancelIdx[b]])
			})
			cancelIdx = cancelIdx[:numCancel]
		}

		for _, j := range cancelIdx {
			if r.vals[j] < 0 {
				r.rhs = r.rhs.Sub(r.vals[j] * r.upper[j])
			} else if !math.IsInf(maxact, 1) {
				maxact -= r.vals[j] * r.upper[j]
			}
			r.vals[j] = 0
		}
		numZeros += numCancel
	}

	if numZeros != 0 {
		r.removeZeros()
	}

	return hasUnboundedInts, hasGeneralInts, hasContinuous, maxact > r.rhs.Float64()
}
