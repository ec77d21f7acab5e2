package simplemip

import (
	"github.com/golang/glog"
	"github.com/gomip/cutgen/cutgen"
)

// Data implements cutgen.MIPData with fixed tolerances and an optional
// debug solution used to catch cuts that would be invalid for a known
// feasible point, the same role HiGHS's debug solution checker plays
// during development.
type Data struct {
	feastol float64
	epsilon float64
	domain  *Domain

	debugSolution []float64
}

// NewData builds Data with the given tolerances over domain. epsilon
// should be at most feastol.
func NewData(feastol, epsilon float64, domain *Domain) *Data {
	return &Data{feastol: feastol, epsilon: epsilon, domain: domain}
}

func (d *Data) FeasTol() float64        { return d.feastol }
func (d *Data) Epsilon() float64        { return d.epsilon }
func (d *Data) Domain() cutgen.Domain   { return d.domain }

// SetDebugSolution installs a known feasible point that CheckCut
// verifies every generated cut against. Pass nil to disable checking.
func (d *Data) SetDebugSolution(sol []float64) {
	d.debugSolution = append([]float64(nil), sol...)
}

// CheckCut logs a warning if the installed debug solution violates the
// given cut; it never aborts generation.
func (d *Data) CheckCut(inds []int, vals []float64, rhs float64) {
	if d.debugSolution == nil {
		return
	}
	var lhs float64
	for i, col := range inds {
		lhs += vals[i] * d.debugSolution[col]
	}
	if lhs > rhs+1e-6 {
		glog.Warningf("simplemip: cut excludes debug solution: lhs=%g rhs=%g", lhs, rhs)
	}
}
