package cutgen

import (
	"math"

	"github.com/golang/glog"
)

// checkNumerics is a debug-only diagnostic hook, the Go equivalent of
// the commented-out checkNumerics in the original source. It has no
// effect on control flow: enable it with -v=3 to log the coefficient
// range and norm of a row at pipeline checkpoints without
// instrumenting the hot path in normal operation.
func checkNumerics(stage string, vals []float64, rhs float64) {
	if !glog.V(3) {
		return
	}
	var maxAbs, minAbs, sqrnorm float64
	minAbs = -1
	for _, v := range vals {
		a := v
		if a < 0 {
			a = -a
		}
		if a > maxAbs {
			maxAbs = a
		}
		if a != 0 && (minAbs < 0 || a < minAbs) {
			minAbs = a
		}
		sqrnorm += v * v
	}
	glog.V(3).Infof("cutgen: %s: len=%d maxCoef=%g minCoef=%g norm=%g rhs=%g", stage, len(vals), maxAbs, minAbs, math.Sqrt(sqrnorm), rhs)
}

// traceReject logs the reason a separation attempt aborted, at a
// verbosity level low enough to leave the default silent-rejection
// behavior unaffected.
func traceReject(op, reason string) {
	if glog.V(2) {
		glog.V(2).Infof("cutgen: %s: rejected: %s", op, reason)
	}
}
