package simplemip

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gomip/cutgen/cutgen"
)

// Cut is a snapshot of one accepted cut.
type Cut struct {
	Inds     []int
	Vals     []float64
	Rhs      float64
	Integral bool
}

// Pool is a concurrency-safe cutgen.CutPool that deduplicates cuts by
// their normalized (inds, vals, rhs) text form. A real cut pool
// deduplicates on parallel coefficient vectors and ages cuts out over
// time; this one keeps everything for the lifetime of the process.
type Pool struct {
	mu   sync.Mutex
	cuts []Cut
	seen map[string]struct{}
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{seen: make(map[string]struct{})}
}

func cutKey(inds []int, vals []float64, rhs float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.17g|", rhs)
	for i, col := range inds {
		fmt.Fprintf(&b, "%d:%.17g,", col, vals[i])
	}
	return b.String()
}

// AddCut implements cutgen.CutPool.
func (p *Pool) AddCut(solver cutgen.MIPSolver, inds []int, vals []float64, rhs float64, integral bool) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := cutKey(inds, vals, rhs)
	if _, dup := p.seen[key]; dup {
		return -1
	}
	p.seen[key] = struct{}{}
	p.cuts = append(p.cuts, Cut{
		Inds:     append([]int(nil), inds...),
		Vals:     append([]float64(nil), vals...),
		Rhs:      rhs,
		Integral: integral,
	})
	return len(p.cuts) - 1
}

// NumCuts implements cutgen.CutPool.
func (p *Pool) NumCuts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cuts)
}

// Cuts returns a snapshot of every accepted cut.
func (p *Pool) Cuts() []Cut {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Cut(nil), p.cuts...)
}
