package cutgen

import "math"

// postprocessCut tightens the lifted cut's representation. When the
// lift produced integral support, it tries to rescale every
// coefficient to an exact integer via IntegralScale, falling back to
// exponent renormalization against the smallest surviving
// coefficient. When the support is not integral it only renormalizes
// the exponent and drops coefficients that fall below the tolerance
// floor, bound-substituting negative ones.
func (e *Engine) postprocessCut(r *row) bool {
	feastol := e.cfg.FeasTol
	epsilon := e.cfg.Epsilon
	n := r.n()

	if r.integralSupport {
		if r.integralCoefficients {
			return true
		}

		maxAbsValue := maxAbs(r.vals)
		minCoefficientValue := math.Max(maxAbsValue*100*feastol, epsilon)

		for i := 0; i < n; i++ {
			if r.vals[i] == 0 {
				continue
			}
			if math.Abs(r.vals[i]) <= minCoefficientValue {
				if r.vals[i] < 0 {
					ub := r.upper[i]
					if math.IsInf(ub, 1) {
						traceReject("postprocessCut", "cannot drop small negative coefficient with unbounded upper")
						return false
					}
					r.rhs = r.rhs.Sub(ub * r.vals[i])
				}
				r.vals[i] = 0.0
			}
		}

		nonzerovals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			if r.vals[i] != 0 {
				nonzerovals = append(nonzerovals, r.vals[i])
			}
		}

		intscale := IntegralScale(nonzerovals, feastol, epsilon)

		scaleSmallestValToOne := true

		if intscale != 0.0 && intscale*math.Max(1.0, maxAbsValue) <= float64(uint64(1)<<53) {
			r.rhs = r.rhs.Renormalize()
			r.rhs = r.rhs.Mul(intscale)
			maxAbsValue = math.Round(maxAbsValue * intscale)

			for i := 0; i < n; i++ {
				if r.vals[i] == 0.0 {
					continue
				}

				scaleval := CD(intscale).Mul(r.vals[i])
				intval := scaleval.Round()
				delta := scaleval.Sub(intval).Float64()

				r.vals[i] = intval

				if delta < 0.0 {
					if math.IsInf(r.upper[i], 1) {
						traceReject("postprocessCut", "integral scale strengthened an unbounded coefficient")
						return false
					}
					r.rhs = r.rhs.Sub(delta * r.upper[i])
				}
			}

			r.rhs = CD(math.Floor(r.rhs.Float64() + epsilon))

			if intscale*maxAbsValue*feastol <= 1.0 {
				scaleSmallestValToOne = false
				r.integralCoefficients = true
			}
		}

		if scaleSmallestValToOne {
			minAbsValue := math.Inf(1)
			for i := 0; i < n; i++ {
				if r.vals[i] == 0.0 {
					continue
				}
				if a := math.Abs(r.vals[i]); a < minAbsValue {
					minAbsValue = a
				}
			}

			_, expshift := math.Frexp(minAbsValue - epsilon)
			expshift = -expshift

			maxAbsValue = math.Ldexp(maxAbsValue, expshift)
			r.rhs = CD(math.Ldexp(r.rhs.Float64(), expshift))

			for i := 0; i < n; i++ {
				if r.vals[i] == 0 {
					continue
				}
				r.vals[i] = math.Ldexp(r.vals[i], expshift)
			}
		}
	} else {
		maxAbsValue := maxAbs(r.vals)

		_, expshift := math.Frexp(maxAbsValue)
		expshift = -expshift

		minCoefficientValue := math.Ldexp(maxAbsValue*100*feastol, expshift)
		r.rhs = CD(math.Ldexp(r.rhs.Float64(), expshift))

		for i := 0; i < n; i++ {
			if r.vals[i] == 0.0 {
				continue
			}

			r.vals[i] = math.Ldexp(r.vals[i], expshift)

			if math.Abs(r.vals[i]) <= minCoefficientValue {
				if r.vals[i] < 0.0 {
					if math.IsInf(r.upper[i], 1) {
						traceReject("postprocessCut", "cannot drop small negative coefficient with unbounded upper")
						return false
					}
					r.rhs = r.rhs.Sub(r.vals[i] * r.upper[i])
				}
				r.vals[i] = 0.0
			}
		}
	}

	return true
}

// IntegralScale searches for a positive scale that turns every value
// into an integer within tolerance, multiplying the running scale by
// the continued-fraction denominator of each value that is not yet
// integral. The result is not necessarily the smallest such scale
// (for [1.5, 2.25] it returns 8, not 4). It returns 0 if no such scale
// below a practical bound could be found.
func IntegralScale(vals []float64, feastol, epsilon float64) float64 {
	const maxScale = 1e15

	scale := 1.0
	for _, v := range vals {
		if v == 0 {
			continue
		}
		av := math.Abs(v)

		scaled := scale * av
		if math.Abs(scaled-math.Round(scaled)) <= feastol*math.Max(1.0, scaled) {
			continue
		}

		x := av
		var h0, h1, k0, k1 float64 = 0, 1, 1, 0
		found := false
		for i := 0; i < 32; i++ {
			ai := math.Floor(x)
			h2 := ai*h1 + h0
			k2 := ai*k1 + k0
			h0, k0 = h1, k1
			h1, k1 = h2, k2

			candidate := scale * k1
			if candidate <= maxScale {
				scaledCandidate := candidate * av
				if math.Abs(scaledCandidate-math.Round(scaledCandidate)) <= epsilon*math.Max(1.0, scaledCandidate) {
					scale = candidate
					found = true
					break
				}
			}

			frac := x - ai
			if frac <= epsilon {
				break
			}
			x = 1.0 / frac
		}

		if !found {
			return 0
		}
	}

	if scale > maxScale {
		return 0
	}
	return scale
}
