package cutgen

// row is the mutable working inequality Sum vals[i]*x_inds[i] <= rhs.
// All slices are indexed by working position, not by column id;
// inds[j] gives the column id at position j. Buffers are owned by the
// Engine that embeds a row and are reused across calls without
// reallocation.
type row struct {
	inds            []int
	vals            []float64
	upper           []float64
	solval          []float64
	complementation []bool // empty slice means "not tracked yet"

	rhs CDouble

	cover                 []int
	coverweight           CDouble
	lambda                CDouble
	integralSupport       bool
	integralCoefficients  bool

	// scratch buffers reused by the lifting routines, sized on demand.
	scratchS    []float64
	scratchFlag []int8
}

func (r *row) n() int { return len(r.inds) }

// resetFrom loads inds/vals/rhs into the row, discarding any previous
// content but keeping the backing arrays.
func (r *row) resetFrom(inds []int, vals []float64, rhs float64) {
	r.inds = append(r.inds[:0], inds...)
	r.vals = append(r.vals[:0], vals...)
	r.rhs = CD(rhs)
	r.complementation = r.complementation[:0]
	r.cover = r.cover[:0]
	r.coverweight = CD(0)
	r.lambda = CD(0)
	r.integralSupport = false
	r.integralCoefficients = false
}

// ensureComplementation makes sure the complementation slice has one
// entry per working position, defaulting new entries to false.
func (r *row) ensureComplementation() {
	if len(r.complementation) == r.n() {
		return
	}
	c := make([]bool, r.n())
	copy(c, r.complementation)
	r.complementation = c
}

// removeZeros compacts the row in place, dropping every position whose
// coefficient is exactly zero. Order is not preserved: a dropped
// position is replaced with the last live one, matching the swap-remove
// used by preprocessBaseInequality in the source this is grounded on.
func (r *row) removeZeros() {
	n := r.n()
	hasComplementation := len(r.complementation) == n
	for i := n - 1; i >= 0; i-- {
		if r.vals[i] != 0 {
			continue
		}
		n--
		r.inds[i] = r.inds[n]
		r.vals[i] = r.vals[n]
		r.upper[i] = r.upper[n]
		r.solval[i] = r.solval[n]
		if hasComplementation {
			r.complementation[i] = r.complementation[n]
		}
	}
	r.inds = r.inds[:n]
	r.vals = r.vals[:n]
	r.upper = r.upper[:n]
	r.solval = r.solval[:n]
	if hasComplementation {
		r.complementation = r.complementation[:n]
	}
}

func maxAbs(vals []float64) float64 {
	var m float64
	for _, v := range vals {
		a := v
		if a < 0 {
			a = -a
		}
		if a > m {
			m = a
		}
	}
	return m
}
