package cutgen

import "sort"

// separateLiftedMixedBinaryCover is the mixed-binary lift, applicable
// when continuous variables are present but every integer variable is
// binary. Returns false if no pivot position p can be found (p = 0
// means fail).
func (e *Engine) separateLiftedMixedBinaryCover(r *row) bool {
	epsilon := e.cfg.Epsilon
	coversize := len(r.cover)
	n := r.n()
	if coversize == 0 {
		return false
	}

	if cap(r.scratchFlag) < n {
		r.scratchFlag = make([]int8, n)
	}
	coverflag := r.scratchFlag[:n]
	for i := range coverflag {
		coverflag[i] = 0
	}
	for _, j := range r.cover {
		coverflag[j] = 1
	}

	sort.Slice(r.cover, func(a, b int) bool {
		return r.vals[r.cover[a]] > r.vals[r.cover[b]]
	})

	// S holds a compensated running sum per cover position; a plain
	// []float64 scratch buffer would lose precision on the additions phi
	// performs below, so it is allocated locally as CDouble instead, the
	// same way mixedinteger.go's av/uv/mv are.
	S := make([]CDouble, coversize)
	sum := CD(0)
	p := coversize
	for i := 0; i < coversize; i++ {
		j := r.cover[i]
		if r.vals[j]-r.lambda.Float64() <= epsilon {
			p = i
			break
		}
		sum = sum.Add(r.vals[j])
		S[i] = sum
	}
	if p == 0 {
		traceReject("separateLiftedMixedBinaryCover", "no pivot position")
		return false
	}

	// r.lambda and S stay CDouble through every predicate and partial
	// sum here, only collapsing to float64 at the return.
	phi := func(a float64) float64 {
		for i := 0; i < p; i++ {
			if a <= S[i].SubC(r.lambda).Float64() {
				return r.lambda.Mul(float64(i)).Float64()
			}
			if a <= S[i].Float64() {
				return r.lambda.Mul(float64(i + 1)).Add(a).SubC(S[i]).Float64()
			}
		}
		return r.lambda.Mul(float64(p)).Add(a).SubC(S[p-1]).Float64()
	}

	r.rhs = r.lambda.Neg()
	r.integralCoefficients = false
	r.integralSupport = true

	for i := 0; i < n; i++ {
		if !e.lp.IsColIntegral(r.inds[i]) {
			if r.vals[i] < 0 {
				r.integralSupport = false
			} else {
				r.vals[i] = 0
			}
			continue
		}

		if coverflag[i] != 0 {
			if r.vals[i] > r.lambda.Float64() {
				r.vals[i] = r.lambda.Float64()
			}
			r.rhs = r.rhs.Add(r.vals[i])
		} else {
			r.vals[i] = phi(r.vals[i])
		}
	}

	return true
}
