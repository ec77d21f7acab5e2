package cutgen

import (
	"math"
	"sort"
)

// separateLiftedKnapsackCover is the pure integer knapsack lift,
// applicable when every non-cover variable is binary and no
// continuous variables are present. The resulting inequality always
// has integral support and integral coefficients.
func (e *Engine) separateLiftedKnapsackCover(r *row) {
	feastol := e.cfg.FeasTol
	epsilon := e.cfg.Epsilon
	coversize := len(r.cover)
	n := r.n()

	sort.Slice(r.cover, func(a, b int) bool {
		return r.vals[r.cover[a]] > r.vals[r.cover[b]]
	})

	if cap(r.scratchS) < coversize {
		r.scratchS = make([]float64, coversize)
	}
	S := r.scratchS[:coversize]
	if cap(r.scratchFlag) < n {
		r.scratchFlag = make([]int8, n)
	}
	coverflag := r.scratchFlag[:n]
	for i := range coverflag {
		coverflag[i] = 0
	}

	abartmp := CD(r.vals[r.cover[0]])
	sigma := r.lambda
	for i := 1; i < coversize; i++ {
		delta := abartmp.Sub(r.vals[r.cover[i]])
		kdelta := delta.Mul(float64(i))
		if kdelta.Float64() < sigma.Float64() {
			abartmp = CD(r.vals[r.cover[i]])
			sigma = sigma.SubC(kdelta)
		} else {
			abartmp = abartmp.SubC(sigma.Mul(1.0 / float64(i)))
			sigma = CD(0)
			break
		}
	}
	if sigma.Float64() > 0 {
		abartmp = r.rhs.Div(float64(coversize))
	}
	abar := abartmp.Float64()

	sum := CD(0)
	cplussize := 0
	for i := 0; i < coversize; i++ {
		j := r.cover[i]
		sum = sum.Add(math.Min(abar, r.vals[j]))
		S[i] = sum.Float64()

		if r.vals[j] > abar+feastol {
			cplussize++
			coverflag[j] = 1
		} else {
			coverflag[j] = -1
		}
	}

	halfintegral := false
	g := func(z float64) float64 {
		hfrac := z / abar
		coef := 0.0

		h := int(math.Floor(hfrac + 0.5))
		if h != 0 && math.Abs(hfrac-float64(h))*math.Max(1.0, abar) <= epsilon && h <= cplussize-1 {
			halfintegral = true
			coef = 0.5
		}

		if h > 0 {
			h--
		} else {
			h = 0
		}
		for ; h < coversize; h++ {
			if z <= S[h]+feastol {
				break
			}
		}

		return coef + float64(h)
	}

	r.rhs = CD(float64(coversize - 1))

	for i := 0; i < n; i++ {
		if r.vals[i] == 0 {
			continue
		}
		if coverflag[i] == -1 {
			r.vals[i] = 1
		} else {
			r.vals[i] = g(r.vals[i])
		}
	}

	if halfintegral {
		r.rhs = r.rhs.Mul(2)
		for i := range r.vals {
			r.vals[i] *= 2
		}
	}

	r.integralSupport = true
	r.integralCoefficients = true
}
