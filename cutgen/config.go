package cutgen

// EngineConfig holds the tolerances and empirical cutoffs an Engine
// uses across every call. All fields default to the literal values
// used in the reference implementation; the c-MIR bounds and the
// dynamism bound are configurable rather than hard-coded, since a
// caller tuning separation strength needs to reach them.
type EngineConfig struct {
	// FeasTol is epsilon_f, supplied by the host MIP data unless
	// overridden with WithFeasTol.
	FeasTol float64
	// Epsilon is epsilon_0 <= FeasTol.
	Epsilon float64
	// CMIRDeltaMin/CMIRDeltaMax bound the c-MIR divisor search:
	// candidate coefficients outside this range are ignored.
	CMIRDeltaMin float64
	CMIRDeltaMax float64
	// DynamismBound caps 1/((1-f0)*delta) in the c-MIR acceptance test.
	DynamismBound float64
	// MaxLenBase/MaxLenFrac define maxLen = MaxLenBase +
	// floor(MaxLenFrac * numCols) in preprocessing.
	MaxLenBase int
	MaxLenFrac float64
}

// EngineOption configures an EngineConfig, in the style of the
// teacher's SolveOption/solveConfig pair.
type EngineOption func(*EngineConfig)

func defaultEngineConfig(mipData MIPData) *EngineConfig {
	cfg := &EngineConfig{
		CMIRDeltaMin:  1e-4,
		CMIRDeltaMax:  1e4,
		DynamismBound: 1e4,
		MaxLenBase:    100,
		MaxLenFrac:    0.15,
	}
	if mipData != nil {
		cfg.FeasTol = mipData.FeasTol()
		cfg.Epsilon = mipData.Epsilon()
	}
	return cfg
}

// WithFeasTol overrides the feasibility tolerance the host MIP data
// would otherwise supply.
func WithFeasTol(tol float64) EngineOption {
	return func(c *EngineConfig) { c.FeasTol = tol }
}

// WithEpsilon overrides the base epsilon the host MIP data would
// otherwise supply.
func WithEpsilon(eps float64) EngineOption {
	return func(c *EngineConfig) { c.Epsilon = eps }
}

// WithCMIRDeltaBounds overrides the c-MIR candidate divisor range.
func WithCMIRDeltaBounds(min, max float64) EngineOption {
	return func(c *EngineConfig) {
		c.CMIRDeltaMin = min
		c.CMIRDeltaMax = max
	}
}

// WithDynamismBound overrides the c-MIR dynamism acceptance bound.
func WithDynamismBound(bound float64) EngineOption {
	return func(c *EngineConfig) { c.DynamismBound = bound }
}

// WithMaxLen overrides the row-length cap parameters used in
// preprocessing: maxLen = base + floor(frac*numCols).
func WithMaxLen(base int, frac float64) EngineOption {
	return func(c *EngineConfig) {
		c.MaxLenBase = base
		c.MaxLenFrac = frac
	}
}
