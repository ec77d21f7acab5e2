package cutgen

import "fmt"

// fakeDomain is a minimal cutgen.Domain for tests: fixed bounds, no
// coefficient tightening.
type fakeDomain struct {
	lower map[int]float64
	upper map[int]float64
}

func (d *fakeDomain) ColLower(col int) float64 { return d.lower[col] }
func (d *fakeDomain) ColUpper(col int) float64 { return d.upper[col] }
func (d *fakeDomain) TightenCoefficients(inds []int, vals []float64, rhs *float64) {}

type fakeData struct {
	feastol float64
	epsilon float64
	domain  *fakeDomain
	checked int
}

func (d *fakeData) FeasTol() float64 { return d.feastol }
func (d *fakeData) Epsilon() float64 { return d.epsilon }
func (d *fakeData) Domain() Domain   { return d.domain }
func (d *fakeData) CheckCut(inds []int, vals []float64, rhs float64) {
	d.checked++
}

type fakeSolver struct {
	data *fakeData
}

func (s *fakeSolver) Data() MIPData { return s.data }

// fakeLP is a minimal cutgen.LPRelaxation: fixed integrality and
// solution values by column index.
type fakeLP struct {
	integer map[int]bool
	solval  map[int]float64
	numCols int
	solver  *fakeSolver
}

func (l *fakeLP) IsColIntegral(col int) bool    { return l.integer[col] }
func (l *fakeLP) NumCols() int                  { return l.numCols }
func (l *fakeLP) SolutionValue(col int) float64 { return l.solval[col] }
func (l *fakeLP) MIPSolver() MIPSolver          { return l.solver }

// fakePool deduplicates by the exact text of a cut, mirroring the
// production pool's dedup contract closely enough to exercise the
// duplicate-rejection path.
type fakePool struct {
	seen map[string]bool
	n    int
}

func (p *fakePool) AddCut(_ MIPSolver, inds []int, vals []float64, rhs float64, integral bool) int {
	if p.seen == nil {
		p.seen = make(map[string]bool)
	}
	key := fmt.Sprintf("%v|%v|%v", inds, vals, rhs)
	if p.seen[key] {
		return -1
	}
	p.seen[key] = true
	p.n++
	return p.n - 1
}

func (p *fakePool) NumCuts() int { return p.n }

// identityTransform is a cutgen.TransformedLP for rows whose columns
// already have a zero lower bound, so Transform only needs to report
// upper/solval and Untransform is the identity.
type identityTransform struct {
	domain *fakeDomain
	lp     *fakeLP
}

func (t *identityTransform) Transform(inds []int, vals []float64, rhs float64) (newInds []int, newVals []float64, upper, solval []float64, newRhs float64, intsPositive bool, ok bool) {
	n := len(inds)
	newInds = append([]int(nil), inds...)
	newVals = append([]float64(nil), vals...)
	upper = make([]float64, n)
	solval = make([]float64, n)
	for i, col := range inds {
		upper[i] = t.domain.upper[col] - t.domain.lower[col]
		solval[i] = t.lp.solval[col] - t.domain.lower[col]
	}
	return newInds, newVals, upper, solval, rhs, true, true
}

func (t *identityTransform) Untransform(inds []int, vals []float64, rhs float64, integral bool) (newInds []int, newVals []float64, newRhs float64, ok bool) {
	return append([]int(nil), inds...), append([]float64(nil), vals...), rhs, true
}

// malformedTransform reports success but returns a shape that breaks
// the TransformedLP contract, exercising the hard-failure path that a
// collaborator bug (as opposed to an ordinary "no cut this time")
// takes through GenerateCut.
type malformedTransform struct{}

func (malformedTransform) Transform(inds []int, vals []float64, rhs float64) (newInds []int, newVals []float64, upper, solval []float64, newRhs float64, intsPositive bool, ok bool) {
	return inds, vals, []float64{0}, []float64{0}, rhs, true, true
}

func (malformedTransform) Untransform(inds []int, vals []float64, rhs float64, integral bool) (newInds []int, newVals []float64, newRhs float64, ok bool) {
	return inds, vals, rhs, true
}

func newTestEngine(lp *fakeLP, pool *fakePool, opts ...EngineOption) *Engine {
	return NewEngine(lp, pool, opts...)
}

// buildRow constructs a row directly, bypassing Transform, for tests
// that exercise a single pipeline stage in isolation.
func buildRow(inds []int, vals, upper, solval []float64, rhs float64) *row {
	r := &row{}
	r.resetFrom(inds, vals, rhs)
	r.upper = append([]float64(nil), upper...)
	r.solval = append([]float64(nil), solval...)
	return r
}
