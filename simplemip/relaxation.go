package simplemip

import (
	"fmt"
	"math"

	"github.com/gomip/cutgen/cutgen"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Problem describes a single LP relaxation in inequality form:
// minimize Obj . x subject to AUb x <= BUb and Lower <= x <= Upper. A
// caller separating a maximization objective negates Obj beforehand.
type Problem struct {
	NumCols int
	Integer []bool
	Lower   []float64
	Upper   []float64

	Obj []float64
	AUb *mat.Dense
	BUb []float64
}

// Solver wraps the tolerances and domain every Relaxation built over
// the same problem shares.
type Solver struct {
	data *Data
}

// NewSolver builds a Solver over data.
func NewSolver(data *Data) *Solver { return &Solver{data: data} }

// Data implements cutgen.MIPSolver.
func (s *Solver) Data() cutgen.MIPData { return s.data }

// Relaxation is a cutgen.LPRelaxation backed by a solved Problem.
type Relaxation struct {
	solver   *Solver
	problem  *Problem
	solution []float64
}

// NewRelaxation builds a Relaxation over problem, owned by solver. Call
// Solve before separating any cuts.
func NewRelaxation(problem *Problem, solver *Solver) *Relaxation {
	return &Relaxation{solver: solver, problem: problem}
}

func (r *Relaxation) IsColIntegral(col int) bool    { return r.problem.Integer[col] }
func (r *Relaxation) NumCols() int                  { return r.problem.NumCols }
func (r *Relaxation) SolutionValue(col int) float64 { return r.solution[col] }
func (r *Relaxation) MIPSolver() cutgen.MIPSolver   { return r.solver }

// Solution returns the full solution vector from the last Solve.
func (r *Relaxation) Solution() []float64 { return append([]float64(nil), r.solution...) }

// Solve resolves the LP relaxation with gonum's dense simplex,
// converting the problem's box bounds into extra inequality rows
// alongside AUb/BUb before handing it to lp.Convert.
func (r *Relaxation) Solve() error {
	p := r.problem
	n := p.NumCols

	baseRows := 0
	if p.AUb != nil {
		baseRows, _ = p.AUb.Dims()
	}

	extra := 0
	for i := 0; i < n; i++ {
		if !math.IsInf(p.Upper[i], 1) {
			extra++
		}
		if !math.IsInf(p.Lower[i], -1) {
			extra++
		}
	}

	G := mat.NewDense(baseRows+extra, n, nil)
	h := make([]float64, baseRows+extra)
	for i := 0; i < baseRows; i++ {
		for j := 0; j < n; j++ {
			G.Set(i, j, p.AUb.At(i, j))
		}
		h[i] = p.BUb[i]
	}

	row := baseRows
	for i := 0; i < n; i++ {
		if !math.IsInf(p.Upper[i], 1) {
			G.Set(row, i, 1)
			h[row] = p.Upper[i]
			row++
		}
		if !math.IsInf(p.Lower[i], -1) {
			G.Set(row, i, -1)
			h[row] = -p.Lower[i]
			row++
		}
	}

	c, A, b := lp.Convert(p.Obj, G, h, nil, nil)

	_, xOpt, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		return fmt.Errorf("simplemip: simplex solve: %w", err)
	}

	// lp.Convert splits each free x into xp - xn, laid out as [xp, xn, slacks].
	r.solution = make([]float64, n)
	for i := 0; i < n; i++ {
		r.solution[i] = xOpt[i] - xOpt[n+i]
	}
	return nil
}
