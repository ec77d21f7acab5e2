package cutgen

import (
	"math"
	"sort"
)

// cmirCutGenerationHeuristic is the complemented mixed-integer rounding
// heuristic used whenever the row carries an unbounded integer
// variable, so no knapsack cover is available. It complements integers
// with solution value past their midpoint, searches a candidate set of
// divisors for the one giving the best efficacy, refines it by
// doubling and by flipping individual complementations, then applies
// the winning MIR inequality.
func (e *Engine) cmirCutGenerationHeuristic(r *row) bool {
	feastol := e.cfg.FeasTol
	n := r.n()

	r.ensureComplementation()

	deltas := make([]float64, 0, n+2)
	continuouscontribution := CD(0)
	continuoussqrnorm := CD(0)
	integerinds := make([]int, 0, n)
	maxabsdelta := 0.0

	for i := 0; i < n; i++ {
		col := r.inds[i]
		if e.lp.IsColIntegral(col) {
			integerinds = append(integerinds, i)

			if r.upper[i] < 2*r.solval[i] {
				r.complementation[i] = !r.complementation[i]
				r.rhs = r.rhs.Sub(r.upper[i] * r.vals[i])
				r.vals[i] = -r.vals[i]
				r.solval[i] = r.upper[i] - r.solval[i]
			}

			if r.solval[i] > feastol {
				delta := math.Abs(r.vals[i])
				if delta <= e.cfg.CMIRDeltaMin || delta >= e.cfg.CMIRDeltaMax {
					continue
				}
				maxabsdelta = math.Max(maxabsdelta, delta)
				deltas = append(deltas, delta)
			}
		} else {
			continuouscontribution = continuouscontribution.Add(r.vals[i] * r.solval[i])
			continuoussqrnorm = continuoussqrnorm.Add(r.vals[i] * r.vals[i])
		}
	}

	if maxabsdelta+1.0 > e.cfg.CMIRDeltaMin && maxabsdelta+1.0 < e.cfg.CMIRDeltaMax {
		deltas = append(deltas, maxabsdelta+1.0)
	}
	deltas = append(deltas, 1.0)

	if len(deltas) == 0 {
		traceReject("cmirCutGenerationHeuristic", "no candidate delta")
		return false
	}

	sort.Float64s(deltas)
	curdelta := deltas[0]
	for i := 1; i < len(deltas); i++ {
		if deltas[i]-curdelta <= feastol {
			deltas[i] = 0.0
		} else {
			curdelta = deltas[i]
		}
	}
	compact := deltas[:1]
	for _, d := range deltas[1:] {
		if d != 0.0 {
			compact = append(compact, d)
		}
	}
	deltas = compact

	evalDelta := func(delta float64) (efficacy float64, ok bool) {
		scale := CD(1).Div(delta)
		scalrhs := r.rhs.MulC(scale)
		downrhs := math.Floor(scalrhs.Float64())

		f0 := scalrhs.Sub(downrhs)
		if f0.Float64() < 0.01 || f0.Float64() > 0.99 {
			return 0, false
		}
		oneoveroneminusf0 := CD(1).DivC(CD(1).SubC(f0))
		if oneoveroneminusf0.Float64()*scale.Float64() > e.cfg.DynamismBound {
			return 0, false
		}

		sqrnorm := scale.MulC(scale).MulC(continuoussqrnorm)
		viol := continuouscontribution.MulC(oneoveroneminusf0).SubC(scalrhs)

		for _, j := range integerinds {
			scalaj := CD(r.vals[j]).MulC(scale)
			downaj := math.Floor(scalaj.Float64())
			fj := scalaj.Sub(downaj)
			var aj float64
			if fj.Float64() > f0.Float64() {
				aj = downaj + fj.Float64() - f0.Float64()
			} else {
				aj = downaj
			}

			viol = viol.Add(aj * r.solval[j])
			sqrnorm = sqrnorm.Add(aj * aj)
		}

		return viol.Div(math.Sqrt(sqrnorm.Float64())).Float64(), true
	}

	bestdelta := -1.0
	bestefficacy := 0.0
	for _, delta := range deltas {
		efficacy, ok := evalDelta(delta)
		if ok && efficacy > bestefficacy {
			bestdelta = delta
			bestefficacy = efficacy
		}
	}
	if bestdelta == -1.0 {
		traceReject("cmirCutGenerationHeuristic", "no delta satisfies the fractionality bounds")
		return false
	}

	for k := 1; k <= 3; k++ {
		delta := bestdelta * float64(int(1)<<uint(k))
		if delta <= e.cfg.CMIRDeltaMin || delta >= e.cfg.CMIRDeltaMax {
			continue
		}
		efficacy, ok := evalDelta(delta)
		if ok && efficacy > bestefficacy {
			bestdelta = delta
			bestefficacy = efficacy
		}
	}

	for _, k := range integerinds {
		if math.IsInf(r.upper[k], 1) {
			continue
		}

		r.complementation[k] = !r.complementation[k]
		r.solval[k] = r.upper[k] - r.solval[k]
		r.rhs = r.rhs.Sub(r.upper[k] * r.vals[k])
		r.vals[k] = -r.vals[k]

		efficacy, ok := evalDelta(bestdelta)
		if ok && efficacy > bestefficacy {
			bestefficacy = efficacy
			continue
		}

		r.complementation[k] = !r.complementation[k]
		r.solval[k] = r.upper[k] - r.solval[k]
		r.rhs = r.rhs.Sub(r.upper[k] * r.vals[k])
		r.vals[k] = -r.vals[k]
	}

	scale := CD(1).Div(bestdelta)
	scalrhs := r.rhs.MulC(scale)
	downrhs := math.Floor(scalrhs.Float64())
	f0 := scalrhs.Sub(downrhs)
	oneoveroneminusf0 := CD(1).DivC(CD(1).SubC(f0))

	r.rhs = CD(downrhs * bestdelta)
	r.integralSupport = true
	r.integralCoefficients = false

	for j := 0; j < n; j++ {
		if r.vals[j] == 0.0 {
			continue
		}
		if !e.lp.IsColIntegral(r.inds[j]) {
			if r.vals[j] > 0.0 {
				r.vals[j] = 0.0
			} else {
				r.vals[j] = r.vals[j] * oneoveroneminusf0.Float64()
				r.integralSupport = false
			}
			continue
		}

		scalaj := scale.Mul(r.vals[j])
		downaj := math.Floor(scalaj.Float64())
		fj := scalaj.Sub(downaj)
		var aj CDouble
		if fj.Float64() > f0.Float64() {
			aj = CD(downaj).Add(fj.Float64() - f0.Float64())
		} else {
			aj = CD(downaj)
		}
		r.vals[j] = aj.Mul(bestdelta).Float64()
	}

	return true
}
