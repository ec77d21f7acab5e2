// Package simplemip provides minimal, in-memory implementations of the
// collaborator interfaces cutgen.Engine depends on (LPRelaxation,
// MIPSolver, MIPData, Domain, CutPool), plus a Relaxation.Solve that
// delegates to gonum's dense simplex solver. It exists to exercise and
// demonstrate the engine end to end; a production host's domain,
// pool, and relaxation are typically backed by warm-started solves and
// concurrent-safe pools rather than this package's straightforward
// mutex-guarded slices.
package simplemip
