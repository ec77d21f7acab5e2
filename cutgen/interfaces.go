package cutgen

// LPRelaxation is the external collaborator representing the LP
// relaxation an Engine is attached to. The engine only ever queries it
// for column classification and the current solution point; it never
// mutates it.
type LPRelaxation interface {
	// IsColIntegral reports whether column col carries an integrality
	// requirement in the original MIP.
	IsColIntegral(col int) bool
	// NumCols returns the number of columns in the relaxation, used to
	// derive the row-length cap in preprocessing.
	NumCols() int
	// SolutionValue returns the value of column col in the reference
	// point currently being separated.
	SolutionValue(col int) float64
	// MIPSolver returns the owning solver, whose MIPData carries the
	// tolerances and domain the engine needs.
	MIPSolver() MIPSolver
}

// MIPSolver exposes the pieces of MIP solver state the engine consumes.
type MIPSolver interface {
	Data() MIPData
}

// MIPData carries the tolerances, domain, and debug-checking hook
// shared by every engine attached to one MIP solve.
type MIPData interface {
	// FeasTol is the feasibility tolerance epsilon_f.
	FeasTol() float64
	// Epsilon is the base epsilon, epsilon_0 <= epsilon_f.
	Epsilon() float64
	// Domain returns the global variable domain.
	Domain() Domain
	// CheckCut is a no-op unless a debug solution is loaded, in which
	// case it verifies the cut does not cut off the debug solution.
	CheckCut(inds []int, vals []float64, rhs float64)
}

// Domain is the global/local variable bound store. The engine reads
// bounds from it and, once a cut is finished, asks it to tighten
// coefficients; it never installs new bounds itself.
type Domain interface {
	ColLower(col int) float64
	ColUpper(col int) float64
	// TightenCoefficients applies domain-based coefficient tightening
	// to a finished cut in place, adjusting rhs to match.
	TightenCoefficients(inds []int, vals []float64, rhs *float64)
}

// TransformedLP rewrites a row between the caller's original variable
// space and the complemented, non-negative working space the lifting
// routines require, and back again. Package boundsub provides a
// reference implementation; a host with an LP relaxation typically
// supplies one that also eliminates implicit slacks.
type TransformedLP interface {
	// Transform rewrites vals/inds/rhs (a row Sum a_i x_i <= rhs in the
	// caller's space) into the working space, returning per-column
	// upper bounds and solution values in that space, the rewritten
	// rhs, and whether every integer column already has a non-negative
	// coefficient.
	Transform(inds []int, vals []float64, rhs float64) (newInds []int, newVals []float64, upper, solval []float64, newRhs float64, intsPositive bool, ok bool)
	// Untransform rewrites a finished cut back into the caller's
	// space. integral, when supplied, tells the transform the cut's
	// coefficients are known-integral so it can preserve that property.
	Untransform(inds []int, vals []float64, rhs float64, integral bool) (newInds []int, newVals []float64, newRhs float64, ok bool)
}

// CutPool deduplicates and stores accepted cuts.
type CutPool interface {
	// AddCut adds a cut to the pool, returning a non-negative handle if
	// accepted or -1 if it is a duplicate of a cut already present.
	AddCut(solver MIPSolver, inds []int, vals []float64, rhs float64, integral bool) int
	// NumCuts returns the number of cuts currently in the pool, used as
	// the deterministic tiebreak salt in cover sorting.
	NumCuts() int
}
