package simplemip

import "math"

// Domain is a flat, non-branching variable bound store: one lower and
// one upper bound per column, shared by the global and any local
// domain a reference host needs. Real branch-and-bound domains stack
// bound changes per node; this one is for single-relaxation demos and
// tests where no branching occurs.
type Domain struct {
	lower []float64
	upper []float64
}

// NewDomain builds a Domain from per-column bounds. lower/upper are
// copied.
func NewDomain(lower, upper []float64) *Domain {
	return &Domain{
		lower: append([]float64(nil), lower...),
		upper: append([]float64(nil), upper...),
	}
}

func (d *Domain) ColLower(col int) float64 { return d.lower[col] }
func (d *Domain) ColUpper(col int) float64 { return d.upper[col] }

// SetColBounds narrows column col's bounds, e.g. to model a
// branch-and-bound child node's local domain.
func (d *Domain) SetColBounds(col int, lower, upper float64) {
	d.lower[col] = lower
	d.upper[col] = upper
}

// TightenCoefficients applies the classical coefficient reduction for
// a row Sum a_i x_i <= rhs over box-bounded variables (Savelsbergh,
// "Preprocessing and Probing Techniques for Mixed Integer Programming
// Problems"): a coefficient whose magnitude exceeds what the rest of
// the row's worst case activity allows is clipped down to that limit
// and the right hand side adjusted to match, without changing the
// feasible set. Rows with any unbounded term are left untouched.
func (d *Domain) TightenCoefficients(inds []int, vals []float64, rhs *float64) {
	n := len(inds)
	if n == 0 {
		return
	}

	maxact := 0.0
	for i, col := range inds {
		a := vals[i]
		switch {
		case a > 0:
			u := d.upper[col]
			if math.IsInf(u, 1) {
				return
			}
			maxact += a * u
		case a < 0:
			l := d.lower[col]
			if math.IsInf(l, -1) {
				return
			}
			maxact += a * l
		}
	}

	b := *rhs
	for i, col := range inds {
		a := vals[i]
		if a == 0 {
			continue
		}
		u := d.upper[col]
		l := d.lower[col]
		if math.IsInf(u-l, 1) {
			continue
		}

		if a > 0 {
			rest := maxact - a*u
			slack := b - rest
			if slack < a {
				newA := math.Max(slack, 0)
				delta := a - newA
				vals[i] = newA
				b -= delta * u
				maxact -= delta * u
			}
		} else {
			rest := maxact - a*l
			slack := b - rest
			if slack < -a {
				newA := -math.Max(slack, 0)
				delta := a - newA
				vals[i] = newA
				b -= delta * l
				maxact -= delta * l
			}
		}
	}
	*rhs = b
}
