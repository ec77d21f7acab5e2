package cutgen

import "math"

// CDouble is a compensated (double-double) floating-point accumulator.
//
// The lifting routines in this package depend on the exact sign of
// expressions like coverweight-rhs or upper*vals-lambda; accumulating
// those sums in a plain float64 loses enough precision over a long row
// that a valid cover can appear invalid, or vice versa. CDouble carries
// a high and a low double whose sum represents the value, following the
// Kahan-Neumaier compensated-summation scheme extended with Dekker's
// two-product for multiplication.
//
// The zero value is a valid CDouble equal to 0.
type CDouble struct {
	hi, lo float64
}

// CD constructs a CDouble equal to v.
func CD(v float64) CDouble {
	return CDouble{hi: v}
}

// Float64 returns the best double-precision approximation of the value.
func (c CDouble) Float64() float64 {
	return c.hi + c.lo
}

func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return
}

func twoProduct(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return
}

// Add returns c + v.
func (c CDouble) Add(v float64) CDouble {
	s, e := twoSum(c.hi, v)
	hi, lo := twoSum(s, c.lo+e)
	return CDouble{hi: hi, lo: lo}
}

// Sub returns c - v.
func (c CDouble) Sub(v float64) CDouble {
	return c.Add(-v)
}

// AddC returns c + other.
func (c CDouble) AddC(other CDouble) CDouble {
	return c.Add(other.hi).Add(other.lo)
}

// SubC returns c - other.
func (c CDouble) SubC(other CDouble) CDouble {
	return c.AddC(other.Neg())
}

// Neg returns -c.
func (c CDouble) Neg() CDouble {
	return CDouble{hi: -c.hi, lo: -c.lo}
}

// Mul returns c * v.
func (c CDouble) Mul(v float64) CDouble {
	p, e := twoProduct(c.hi, v)
	e += c.lo * v
	hi, lo := twoSum(p, e)
	return CDouble{hi: hi, lo: lo}
}

// MulC returns c * other.
func (c CDouble) MulC(other CDouble) CDouble {
	p, e := twoProduct(c.hi, other.hi)
	e += c.hi*other.lo + c.lo*other.hi
	hi, lo := twoSum(p, e)
	return CDouble{hi: hi, lo: lo}
}

// Div returns c / v.
func (c CDouble) Div(v float64) CDouble {
	q1 := c.hi / v
	p, e := twoProduct(q1, v)
	residual := (c.hi-p)-e + c.lo
	q2 := residual / v
	hi, lo := twoSum(q1, q2)
	return CDouble{hi: hi, lo: lo}
}

// DivC returns c / other.
func (c CDouble) DivC(other CDouble) CDouble {
	ofloat := other.Float64()
	q1 := c.Float64() / ofloat
	r := c.SubC(other.Mul(q1))
	q2 := r.Float64() / ofloat
	hi, lo := twoSum(q1, q2)
	return CDouble{hi: hi, lo: lo}
}

// Cmp compares c against v, returning -1, 0, or 1.
func (c CDouble) Cmp(v float64) int {
	d := c.Sub(v)
	switch {
	case d.hi > 0 || (d.hi == 0 && d.lo > 0):
		return 1
	case d.hi < 0 || (d.hi == 0 && d.lo < 0):
		return -1
	default:
		return 0
	}
}

// CmpC compares c against other, returning -1, 0, or 1.
func (c CDouble) CmpC(other CDouble) int {
	return c.SubC(other).Cmp(0)
}

// Floor returns the largest integer value not greater than c, computed
// without collapsing to float64 first.
func (c CDouble) Floor() float64 {
	f := math.Floor(c.hi)
	if f == c.hi {
		f += math.Floor(c.lo)
	}
	return f
}

// Ceil returns the smallest integer value not less than c.
func (c CDouble) Ceil() float64 {
	f := math.Ceil(c.hi)
	if f == c.hi {
		f += math.Ceil(c.lo)
	}
	return f
}

// Round returns c rounded to the nearest integer, half away from zero.
func (c CDouble) Round() float64 {
	if c.Float64() >= 0 {
		return c.Add(0.5).Floor()
	}
	return c.Add(-0.5).Ceil()
}

// Renormalize collapses hi/lo so that hi holds the dominant magnitude.
// Long chains of Add/Sub without periodic renormalization can let lo
// grow past what a single twoSum absorbs on the next operation; callers
// that accumulate many terms (coverweight, partial sums) call this once
// after the loop, matching HighsCDouble::renormalize in the source this
// type is grounded on.
func (c CDouble) Renormalize() CDouble {
	hi, lo := twoSum(c.hi, c.lo)
	return CDouble{hi: hi, lo: lo}
}
