package cutgen

import (
	"math"

	"github.com/pkg/errors"
)

// Engine generates strengthened cuts and conflict clauses from a single
// violated linear inequality, following a fixed pipeline:
// transform into non-negative working space, preprocess, lift (cover
// based or c-MIR), postprocess, and transform back. An Engine is not
// safe for concurrent use; a caller separating cuts from multiple
// goroutines needs one Engine per goroutine, each sharing the same
// read-only LPRelaxation and CutPool.
type Engine struct {
	lp   LPRelaxation
	pool CutPool
	cfg  *EngineConfig

	row row
}

// NewEngine builds an Engine attached to an LP relaxation and the pool
// its cuts are submitted to. Tolerances default to what lp's MIPData
// reports; override with EngineOptions.
func NewEngine(lp LPRelaxation, pool CutPool, opts ...EngineOption) *Engine {
	var mipData MIPData
	if lp != nil && lp.MIPSolver() != nil {
		mipData = lp.MIPSolver().Data()
	}
	cfg := defaultEngineConfig(mipData)
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{lp: lp, pool: pool, cfg: cfg}
}

// Config returns the engine's tolerance and cutoff settings.
func (e *Engine) Config() EngineConfig { return *e.cfg }

// GenerateCut runs the LP separation path: it transforms a violated
// row into working space, strengthens it, and submits the result to
// the pool if it is still violated by more than 10*FeasTol. ok is
// false, with a nil error, for every rejection reason treated as
// silent (empty rhs, no cover, no acceptable c-MIR delta,
// insufficient violation, or a duplicate already in the pool). A
// non-nil error means the call itself was malformed, not that
// separation failed.
func (e *Engine) GenerateCut(transform TransformedLP, inds []int, vals []float64, rhs float64) (outInds []int, outVals []float64, outRhs float64, ok bool, err error) {
	if e.lp == nil || e.pool == nil {
		return nil, nil, 0, false, newError("GenerateCut", KindNilCollaborator, "engine has no LPRelaxation or CutPool configured")
	}
	if transform == nil {
		return nil, nil, 0, false, newError("GenerateCut", KindNilCollaborator, "GenerateCut requires a TransformedLP")
	}
	if len(inds) != len(vals) {
		return nil, nil, 0, false, newError("GenerateCut", KindInvalidInput, "inds and vals have different lengths")
	}

	tInds, tVals, upper, solval, tRhs, intsPositive, transformOK := transform.Transform(inds, vals, rhs)
	if !transformOK {
		return nil, nil, 0, false, nil
	}
	if len(tInds) != len(tVals) || len(tInds) != len(upper) || len(tInds) != len(solval) {
		return nil, nil, 0, false, wrapError("GenerateCut", KindTransformFailed,
			errors.Errorf("TransformedLP.Transform returned %d indices but %d values, %d upper bounds, %d solution values",
				len(tInds), len(tVals), len(upper), len(solval)))
	}

	r := &e.row
	r.resetFrom(tInds, tVals, tRhs)
	r.upper = append(r.upper[:0], upper...)
	r.solval = append(r.solval[:0], solval...)

	mipData := e.lp.MIPSolver().Data()

	checkNumerics("before preprocessing", r.vals, r.rhs.Float64())
	hasUnboundedInts, hasGeneralInts, hasContinuous, preOK := e.preprocessBaseInequality(r)
	if !preOK {
		return nil, nil, 0, false, nil
	}
	checkNumerics("after preprocessing", r.vals, r.rhs.Float64())

	// intsPositive false means the transform left some integer column
	// with a negative coefficient; when the preprocessed row has no
	// unbounded integer, the lifted covers are still applicable once
	// those integer coefficients are flipped positive.
	if !hasUnboundedInts && !intsPositive {
		r.ensureComplementation()
		for i := 0; i < r.n(); i++ {
			if r.vals[i] > 0 || !e.lp.IsColIntegral(r.inds[i]) {
				continue
			}
			r.complementation[i] = !r.complementation[i]
			r.rhs = r.rhs.Sub(r.upper[i] * r.vals[i])
			r.vals[i] = -r.vals[i]
		}
	}

	if !e.liftRow(r, true, hasUnboundedInts, hasGeneralInts, hasContinuous) {
		return nil, nil, 0, false, nil
	}

	if !e.postprocessCut(r) {
		return nil, nil, 0, false, nil
	}

	if len(r.complementation) == r.n() {
		for i := 0; i < r.n(); i++ {
			if r.complementation[i] {
				r.rhs = r.rhs.Sub(r.upper[i] * r.vals[i])
				r.vals[i] = -r.vals[i]
			}
		}
	}

	cutIntegral := r.integralSupport && r.integralCoefficients
	finalInds, finalVals, finalRhs, untransformOK := transform.Untransform(r.inds, r.vals, r.rhs.Float64(), cutIntegral)
	if !untransformOK {
		return nil, nil, 0, false, nil
	}
	if len(finalInds) != len(finalVals) {
		return nil, nil, 0, false, wrapError("GenerateCut", KindTransformFailed,
			errors.Errorf("TransformedLP.Untransform returned %d indices but %d values", len(finalInds), len(finalVals)))
	}

	mipData.CheckCut(finalInds, finalVals, finalRhs)

	violation := CD(0).Sub(finalRhs)
	for i, col := range finalInds {
		violation = violation.Add(e.lp.SolutionValue(col) * finalVals[i])
	}
	if violation.Float64() <= 10*e.cfg.FeasTol {
		traceReject("GenerateCut", "insufficient violation after untransform")
		return nil, nil, 0, false, nil
	}

	mipData.Domain().TightenCoefficients(finalInds, finalVals, &finalRhs)

	if e.pool.AddCut(e.lp.MIPSolver(), finalInds, finalVals, finalRhs, cutIntegral) < 0 {
		traceReject("GenerateCut", "duplicate of a cut already in the pool")
		return nil, nil, 0, false, nil
	}

	return finalInds, finalVals, finalRhs, true, nil
}

// GenerateConflict runs the conflict-analysis path: it builds the
// working row directly from global and local
// domain bounds instead of an LP solution, so it takes no
// TransformedLP and needs no untransform step. localDomain supplies
// the tightened bounds the proof was derived under; the engine reads
// the solver-wide bounds from its own LPRelaxation.
func (e *Engine) GenerateConflict(localDomain Domain, inds []int, vals []float64, rhs float64) (outInds []int, outVals []float64, outRhs float64, ok bool, err error) {
	if e.lp == nil || e.pool == nil {
		return nil, nil, 0, false, newError("GenerateConflict", KindNilCollaborator, "engine has no LPRelaxation or CutPool configured")
	}
	if localDomain == nil {
		return nil, nil, 0, false, newError("GenerateConflict", KindNilCollaborator, "GenerateConflict requires a local Domain")
	}
	if len(inds) != len(vals) {
		return nil, nil, 0, false, newError("GenerateConflict", KindInvalidInput, "inds and vals have different lengths")
	}

	mipData := e.lp.MIPSolver().Data()
	mipData.CheckCut(inds, vals, rhs)

	n := len(inds)
	r := &e.row
	r.resetFrom(inds, vals, rhs)
	r.ensureComplementation()
	if cap(r.upper) < n {
		r.upper = make([]float64, n)
	} else {
		r.upper = r.upper[:n]
	}
	if cap(r.solval) < n {
		r.solval = make([]float64, n)
	} else {
		r.solval = r.solval[:n]
	}

	globalDomain := mipData.Domain()
	for i := 0; i < n; i++ {
		col := r.inds[i]
		gu := globalDomain.ColUpper(col)
		gl := globalDomain.ColLower(col)
		r.upper[i] = gu - gl

		if r.vals[i] < 0 && !math.IsInf(gu, 1) {
			r.rhs = r.rhs.Sub(gu * r.vals[i])
			r.vals[i] = -r.vals[i]
			r.complementation[i] = true
			r.solval[i] = gu - localDomain.ColUpper(col)
		} else {
			r.rhs = r.rhs.Sub(gl * r.vals[i])
			r.complementation[i] = false
			r.solval[i] = localDomain.ColLower(col) - gl
		}
	}

	hasUnboundedInts, hasGeneralInts, hasContinuous, preOK := e.preprocessBaseInequality(r)
	if !preOK {
		return nil, nil, 0, false, nil
	}

	if !e.liftRow(r, false, hasUnboundedInts, hasGeneralInts, hasContinuous) {
		return nil, nil, 0, false, nil
	}

	if !e.postprocessCut(r) {
		return nil, nil, 0, false, nil
	}

	for i := 0; i < r.n(); i++ {
		col := r.inds[i]
		if r.complementation[i] {
			r.rhs = r.rhs.Sub(globalDomain.ColUpper(col) * r.vals[i])
			r.vals[i] = -r.vals[i]
		} else {
			r.rhs = r.rhs.Add(globalDomain.ColLower(col) * r.vals[i])
		}
	}
	r.removeZeros()

	cutIntegral := r.integralSupport && r.integralCoefficients
	finalRhs := r.rhs.Float64()
	finalInds := append([]int(nil), r.inds...)
	finalVals := append([]float64(nil), r.vals...)

	globalDomain.TightenCoefficients(finalInds, finalVals, &finalRhs)

	if e.pool.AddCut(e.lp.MIPSolver(), finalInds, finalVals, finalRhs, cutIntegral) < 0 {
		traceReject("GenerateConflict", "duplicate of a cut already in the pool")
		return nil, nil, 0, false, nil
	}

	return finalInds, finalVals, finalRhs, true, nil
}

// liftRow routes a preprocessed row to the c-MIR heuristic or to a
// cover determination followed by the lifting function matching the
// row's structure, per a fixed dispatch table.
func (e *Engine) liftRow(r *row, lpSol, hasUnboundedInts, hasGeneralInts, hasContinuous bool) bool {
	if hasUnboundedInts {
		return e.cmirCutGenerationHeuristic(r)
	}

	if !e.determineCover(r, lpSol) {
		return false
	}

	switch {
	case !hasContinuous && !hasGeneralInts:
		e.separateLiftedKnapsackCover(r)
		return true
	case hasGeneralInts:
		return e.separateLiftedMixedIntegerCover(r)
	default:
		return e.separateLiftedMixedBinaryCover(r)
	}
}
