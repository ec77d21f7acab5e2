package cutgen

import (
	"math"
	"sort"
)

// separateLiftedMixedIntegerCover is the mixed-integer lift, applicable
// when general (non-binary-bounded) integer variables are present. It
// selects one cover element l as the MIR pivot and lifts the remainder
// with two step functions, phi_l and gamma_l, built from cumulative
// upper-bound and weighted-upper-bound sums over the (truncated,
// pivot-removed) cover.
func (e *Engine) separateLiftedMixedIntegerCover(r *row) bool {
	feastol := e.cfg.FeasTol
	coversize := len(r.cover)
	n := r.n()

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

	av := make([]CDouble, coversize)
	uv := make([]CDouble, coversize+1)
	mv := make([]CDouble, coversize+1)

	usum, msum := CD(0), CD(0)
	for c := 0; c < coversize; c++ {
		j := r.cover[c]
		uv[c] = usum
		mv[c] = msum
		av[c] = CD(r.vals[j])
		ub := r.upper[j]
		usum = usum.Add(ub)
		msum = msum.AddC(av[c].Mul(ub))
	}
	uv[coversize] = usum
	mv[coversize] = msum

	lpos := -1
	bestlCplusend := -1
	bestlVal := 0.0
	bestlAtUpper := true

	for i := 0; i < coversize; i++ {
		j := r.cover[i]
		ub := r.upper[j]

		atUpper := r.solval[j] >= ub-feastol
		if atUpper && !bestlAtUpper {
			continue
		}

		mju := ub * r.vals[j]
		mu := CD(mju).Sub(r.lambda.Float64())
		if mu.Float64() <= 10*feastol {
			continue
		}
		if math.Abs(r.vals[j]) < 1000*feastol {
			continue
		}

		mudival := mu.Div(r.vals[j]).Float64()
		if math.Abs(math.Round(mudival)-mudival) <= feastol {
			continue
		}
		eta := math.Ceil(mudival)

		ulMinusEtaPlusOne := CD(ub).Sub(eta).Add(1.0)
		cplusthreshold := ulMinusEtaPlusOne.Mul(r.vals[j]).Float64()

		cplusend := 0
		for cplusend < coversize && r.vals[r.cover[cplusend]] > cplusthreshold {
			cplusend++
		}

		mcplus := mv[cplusend]
		if i < cplusend {
			mcplus = mcplus.Sub(mju)
		}

		jlVal := mcplus.Add(eta * r.vals[j]).Float64()

		if jlVal > bestlVal || (!atUpper && bestlAtUpper) {
			lpos = i
			bestlCplusend = cplusend
			bestlVal = jlVal
			bestlAtUpper = atUpper
		}
	}

	if lpos == -1 {
		traceReject("separateLiftedMixedIntegerCover", "no pivot satisfies the facet conditions")
		return false
	}

	l := r.cover[lpos]
	al := CD(r.vals[l])
	upperl := r.upper[l]
	mlu := al.Mul(upperl)
	mu := mlu.SubC(r.lambda)

	av = av[:bestlCplusend]
	r.cover = r.cover[:bestlCplusend]
	uv = uv[:bestlCplusend+1]
	mv = mv[:bestlCplusend+1]

	if lpos < bestlCplusend {
		av = append(av[:lpos], av[lpos+1:]...)
		r.cover = append(r.cover[:lpos], r.cover[lpos+1:]...)
		uv = append(uv[:lpos+1], uv[lpos+2:]...)
		mv = append(mv[:lpos+1], mv[lpos+2:]...)
		for i := lpos + 1; i < bestlCplusend; i++ {
			uv[i] = uv[i].Sub(upperl)
			mv[i] = mv[i].SubC(mlu)
		}
	}

	cplussize := len(av)

	mudival := mu.Div(al.Float64()).Float64()
	eta := math.Ceil(mudival)
	resid := mu.SubC(al.Mul(math.Floor(mudival)))
	if resid.Float64() < 0 {
		resid = CD(0)
	}

	ulMinusEtaPlusOne := CD(upperl).Sub(eta).Add(1.0)
	cplusthreshold := ulMinusEtaPlusOne.MulC(al)

	kmin := math.Floor(eta - upperl - 0.5)
	alMinusResid := al.SubC(resid)

	// al and resid stay CDouble through every predicate and partial sum
	// below; only the value handed back at each return collapses to
	// float64, matching how HighsCDouble converts implicitly at each
	// comparison and return in the source this is grounded on.
	phiL := func(x float64) float64 {
		k := int64(x / al.Float64())
		if k > -1 {
			k = -1
		}
		for float64(k) >= kmin {
			if x >= al.Mul(float64(k)).AddC(resid).Float64() {
				return x - resid.Mul(float64(k+1)).Float64()
			}
			if x >= al.Mul(float64(k)).Float64() {
				return al.SubC(resid).Mul(float64(k)).Float64()
			}
			k--
		}
		return alMinusResid.Mul(kmin).Float64()
	}

	kmax := int64(math.Floor(upperl - eta + 0.5))

	gammaL := func(z float64) float64 {
		for i := 0; i < cplussize; i++ {
			upperi := int(math.Round(r.upper[r.cover[i]]))
			for h := 0; h <= upperi; h++ {
				mih := mv[i].AddC(av[i].Mul(float64(h)))
				uih := uv[i].Add(float64(h))
				mihPlusDeltaI := mih.AddC(av[i]).SubC(cplusthreshold)
				if z <= mihPlusDeltaI.Float64() {
					return uih.MulC(ulMinusEtaPlusOne).MulC(alMinusResid).Float64()
				}

				k := int64((z-mihPlusDeltaI.Float64())/al.Float64()) - 1
				for ; k <= kmax; k++ {
					threshold := mihPlusDeltaI.AddC(al.Mul(float64(k))).AddC(resid)
					if z <= threshold.Float64() {
						return uih.MulC(ulMinusEtaPlusOne).Add(float64(k)).MulC(alMinusResid).Float64()
					}
					nextThreshold := mihPlusDeltaI.AddC(al.Mul(float64(k + 1)))
					if z <= nextThreshold.Float64() {
						result := uih.MulC(ulMinusEtaPlusOne).MulC(alMinusResid).
							Add(z).SubC(mih).SubC(av[i]).AddC(cplusthreshold).
							SubC(resid.Mul(float64(k + 1)))
						return result.Float64()
					}
				}
			}
		}

		p := int64((z-mv[cplussize].Float64())/al.Float64()) - 1
		for {
			threshold := mv[cplussize].AddC(al.Mul(float64(p))).AddC(resid)
			if z <= threshold.Float64() {
				return uv[cplussize].MulC(ulMinusEtaPlusOne).Add(float64(p)).MulC(alMinusResid).Float64()
			}
			nextThreshold := mv[cplussize].AddC(al.Mul(float64(p + 1)))
			if z <= nextThreshold.Float64() {
				result := uv[cplussize].MulC(ulMinusEtaPlusOne).MulC(alMinusResid).
					Add(z).SubC(mv[cplussize]).
					SubC(resid.Mul(float64(p + 1)))
				return result.Float64()
			}
			p++
		}
	}

	r.rhs = CD(upperl).Sub(eta).MulC(resid).SubC(r.lambda)
	r.integralSupport = true
	r.integralCoefficients = false

	for i := 0; i < n; i++ {
		if r.vals[i] == 0 {
			continue
		}
		col := r.inds[i]

		if !e.lp.IsColIntegral(col) {
			if r.vals[i] < 0 {
				r.integralSupport = false
			} else {
				r.vals[i] = 0
			}
			continue
		}

		if coverflag[i] != 0 {
			r.vals[i] = -phiL(-r.vals[i])
			r.rhs = r.rhs.Add(r.vals[i] * r.upper[i])
		} else {
			r.vals[i] = gammaL(r.vals[i])
		}
	}

	return true
}
