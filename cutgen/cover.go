package cutgen

import (
	"math"
	"sort"
)

// determineCover selects the cover set. lpSol is true on the
// LP-separation path (generateCut), which seeds the cover with every
// integer variable already sitting at its upper bound before sorting
// the rest by activity contribution; it is false on the conflict path
// (generateConflict), which has no LP solution to prefer.
func (e *Engine) determineCover(r *row, lpSol bool) bool {
	feastol := e.cfg.FeasTol
	rhs := r.rhs.Float64()

	if rhs <= 10*feastol {
		traceReject("determineCover", "rhs too small")
		return false
	}

	n := r.n()
	r.cover = r.cover[:0]
	for j := 0; j < n; j++ {
		if !e.lp.IsColIntegral(r.inds[j]) {
			continue
		}
		if r.solval[j] <= feastol {
			continue
		}
		r.cover = append(r.cover, j)
	}

	maxCoverSize := len(r.cover)
	coversize := 0
	r.coverweight = CD(0)

	if lpSol {
		atUpper := make([]int, 0, maxCoverSize)
		rest := make([]int, 0, maxCoverSize)
		for _, j := range r.cover {
			if r.solval[j] >= r.upper[j]-feastol {
				atUpper = append(atUpper, j)
			} else {
				rest = append(rest, j)
			}
		}
		r.cover = append(atUpper, rest...)
		coversize = len(atUpper)
		for _, j := range r.cover[:coversize] {
			r.coverweight = r.coverweight.Add(r.vals[j] * r.upper[j])
		}
	}

	poolSize := e.pool.NumCuts()
	rest := r.cover[coversize:maxCoverSize]
	sort.SliceStable(rest, func(a, b int) bool {
		i, j := rest[a], rest[b]
		contribA := r.solval[i] * r.vals[i]
		contribB := r.solval[j] * r.vals[j]
		if math.Abs(contribA-contribB) <= feastol {
			if math.Abs(r.vals[i]-r.vals[j]) <= feastol {
				return tiebreakHash(r.inds[i], poolSize) > tiebreakHash(r.inds[j], poolSize)
			}
			return r.vals[i] > r.vals[j]
		}
		return contribA > contribB
	})

	minlambda := math.Max(10*feastol, feastol*math.Abs(rhs))

	for coversize != maxCoverSize {
		lambda := r.coverweight.Sub(rhs).Float64()
		if lambda > minlambda {
			break
		}
		j := r.cover[coversize]
		r.coverweight = r.coverweight.Add(r.vals[j] * r.upper[j])
		coversize++
	}

	if coversize == 0 {
		traceReject("determineCover", "empty cover")
		return false
	}

	r.coverweight = r.coverweight.Renormalize()
	r.lambda = r.coverweight.Sub(rhs)

	if r.lambda.Float64() <= minlambda {
		traceReject("determineCover", "lambda below threshold")
		return false
	}

	r.cover = r.cover[:coversize]
	return true
}
