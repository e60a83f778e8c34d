// SPDX-License-Identifier: MIT

package integrate

import (
	"context"
	"math"
	"sort"
)

// System is a first-order ODE right-hand side.
type System interface {
	Dim() int
	Derivatives(t float64, y, dy []float64)
}

// Breakpointer is implemented by systems whose right-hand side is
// discontinuous at known times.
type Breakpointer interface {
	Breakpoints() []float64
}

// Integrator solves sys from y0 at times[0] and returns one state vector
// per entry of times.
type Integrator interface {
	Integrate(ctx context.Context, sys System, y0, times []float64) ([][]float64, error)
}

// DormandPrince is the adaptive RK5(4) integrator. The zero value is not
// usable; construct it with NewDormandPrince. It holds no per-call state
// and is safe for concurrent use.
type DormandPrince struct {
	rtol, atol float64
	maxSteps   int
	hmax       float64 // 0 means unbounded
}

// NewDormandPrince returns an integrator with the defaults overridden by opts.
func NewDormandPrince(opts ...Option) *DormandPrince {
	d := &DormandPrince{rtol: DefaultRelTol, atol: DefaultAbsTol, maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Butcher tableau of Dormand & Prince (1980).
const (
	c2, c3, c4, c5 = 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9

	a21                     = 1.0 / 5
	a31, a32                = 3.0 / 40, 9.0 / 40
	a41, a42, a43           = 44.0 / 45, -56.0 / 15, 32.0 / 9
	a51, a52, a53, a54      = 19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729
	a61, a62, a63, a64, a65 = 9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656

	b1, b3, b4, b5, b6 = 35.0 / 384, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84

	e1, e3, e4, e5, e6, e7 = 71.0 / 57600, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40
)

var (
	row2 = []float64{a21}
	row3 = []float64{a31, a32}
	row4 = []float64{a41, a42, a43}
	row5 = []float64{a51, a52, a53, a54}
	row6 = []float64{a61, a62, a63, a64, a65}
	row7 = []float64{b1, 0, b3, b4, b5, b6}
)

// step controller
const (
	safety    = 0.9
	minFactor = 0.2
	maxFactor = 5.0
)

type workspace struct {
	k1, k2, k3, k4, k5, k6, k7 []float64
	tmp, ynew                  []float64
}

func newWorkspace(n int) *workspace {
	buf := make([]float64, 9*n)
	return &workspace{
		k1: buf[0:n], k2: buf[n : 2*n], k3: buf[2*n : 3*n], k4: buf[3*n : 4*n],
		k5: buf[4*n : 5*n], k6: buf[5*n : 6*n], k7: buf[6*n : 7*n],
		tmp: buf[7*n : 8*n], ynew: buf[8*n : 9*n],
	}
}

// Integrate implements Integrator.
//
// times must be non-empty, finite and non-decreasing. The returned slices
// are freshly allocated.
//
// Complexity: O(steps · (Dim + cost of Derivatives)).
func (d *DormandPrince) Integrate(ctx context.Context, sys System, y0, times []float64) ([][]float64, error) {
	if err := checkGrid(times); err != nil {
		return nil, err
	}
	n := sys.Dim()
	if len(y0) != n {
		return nil, ErrDimension
	}

	out := make([][]float64, len(times))
	y := append([]float64(nil), y0...)
	t := times[0]
	out[0] = append([]float64(nil), y...)
	tEnd := times[len(times)-1]
	if n == 0 || tEnd == t {
		for i := 1; i < len(times); i++ {
			out[i] = append([]float64(nil), y...)
		}
		return out, nil
	}

	breaks := interior(breakpoints(sys), t, tEnd)
	w := newWorkspace(n)
	sys.Derivatives(t, y, w.k1)
	h := d.initialStep(t, tEnd, y, w.k1)
	steps := 0

	next := 1 // next grid index to fill
	for next < len(times) {
		stop := times[next]
		isBreak := false
		if len(breaks) > 0 && breaks[0] <= stop {
			stop, isBreak = breaks[0], true
		}

		for t < stop {
			if err := ctx.Err(); err != nil {
				return nil, &Error{Time: t, Err: err}
			}
			if steps++; steps > d.maxSteps {
				return nil, &Error{Time: t, Err: ErrMaxSteps}
			}
			if d.hmax > 0 && h > d.hmax {
				h = d.hmax
			}
			hFull, land := h, false
			tEval := t + h
			if t+h >= stop {
				h, land, tEval = stop-t, true, stop
				if isBreak {
					// the step ends on the left side of the discontinuity
					tEval = math.Nextafter(stop, t)
				}
			}

			errNorm := d.attempt(sys, w, t, h, tEval, y)
			if math.IsNaN(errNorm) || math.IsInf(errNorm, 0) || !finite(w.ynew) {
				return nil, &Error{Time: t, Err: ErrNonFinite}
			}

			factor := maxFactor
			if errNorm > 0 {
				factor = math.Min(maxFactor, math.Max(minFactor, safety*math.Pow(errNorm, -0.2)))
			}
			if errNorm <= 1 {
				copy(y, w.ynew)
				w.k1, w.k7 = w.k7, w.k1
				if land {
					t, h = stop, math.Max(h*factor, hFull)
				} else {
					t, h = t+h, h*factor
				}
				continue
			}
			h *= math.Min(1, factor)
			if h <= minStep(t) {
				return nil, &Error{Time: t, Err: ErrStepUnderflow}
			}
		}

		if isBreak {
			breaks = breaks[1:]
			// restart the pipeline on the right side of the discontinuity
			sys.Derivatives(t, y, w.k1)
			continue
		}
		for next < len(times) && times[next] == stop {
			out[next] = append([]float64(nil), y...)
			next++
		}
	}
	return out, nil
}

// attempt computes a trial step of size h from (t, y) into w.ynew and
// w.k7 and returns the scaled error norm. The end-of-step stages are
// evaluated at tEnd.
func (d *DormandPrince) attempt(sys System, w *workspace, t, h, tEnd float64, y []float64) float64 {
	n := len(y)
	stage := func(dst []float64, coef []float64, ks ...[]float64) {
		for i := 0; i < n; i++ {
			acc := 0.0
			for j, k := range ks {
				acc += coef[j] * k[i]
			}
			dst[i] = y[i] + h*acc
		}
	}

	stage(w.tmp, row2, w.k1)
	sys.Derivatives(t+c2*h, w.tmp, w.k2)
	stage(w.tmp, row3, w.k1, w.k2)
	sys.Derivatives(t+c3*h, w.tmp, w.k3)
	stage(w.tmp, row4, w.k1, w.k2, w.k3)
	sys.Derivatives(t+c4*h, w.tmp, w.k4)
	stage(w.tmp, row5, w.k1, w.k2, w.k3, w.k4)
	sys.Derivatives(t+c5*h, w.tmp, w.k5)
	stage(w.tmp, row6, w.k1, w.k2, w.k3, w.k4, w.k5)
	sys.Derivatives(tEnd, w.tmp, w.k6)
	stage(w.ynew, row7, w.k1, w.k2, w.k3, w.k4, w.k5, w.k6)
	sys.Derivatives(tEnd, w.ynew, w.k7)

	var sum float64
	for i := 0; i < n; i++ {
		e := h * (e1*w.k1[i] + e3*w.k3[i] + e4*w.k4[i] + e5*w.k5[i] + e6*w.k6[i] + e7*w.k7[i])
		sc := d.atol + d.rtol*math.Max(math.Abs(y[i]), math.Abs(w.ynew[i]))
		sum += (e / sc) * (e / sc)
	}
	return math.Sqrt(sum / float64(n))
}

// initialStep follows the usual |y|/|f| heuristic, bounded by the span.
func (d *DormandPrince) initialStep(t0, tEnd float64, y, f []float64) float64 {
	var d0, d1 float64
	for i := range y {
		sc := d.atol + d.rtol*math.Abs(y[i])
		d0 += (y[i] / sc) * (y[i] / sc)
		d1 += (f[i] / sc) * (f[i] / sc)
	}
	n := float64(len(y))
	d0, d1 = math.Sqrt(d0/n), math.Sqrt(d1/n)

	h := 1e-6
	if d0 > 1e-5 && d1 > 1e-5 {
		h = 0.01 * d0 / d1
	}
	span := tEnd - t0
	if h > span {
		h = span
	}
	if d.hmax > 0 && h > d.hmax {
		h = d.hmax
	}
	if h <= 0 || math.IsNaN(h) {
		h = span * 1e-6
	}
	return h
}

func checkGrid(times []float64) error {
	if len(times) == 0 {
		return ErrTimeGrid
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ErrTimeGrid
		}
		if i > 0 && t < times[i-1] {
			return ErrTimeGrid
		}
	}
	return nil
}

func breakpoints(sys System) []float64 {
	if b, ok := sys.(Breakpointer); ok {
		return b.Breakpoints()
	}
	return nil
}

// interior keeps the sorted, distinct breakpoints strictly inside (t0, t1).
func interior(bs []float64, t0, t1 float64) []float64 {
	out := make([]float64, 0, len(bs))
	for _, b := range bs {
		if b > t0 && b < t1 {
			out = append(out, b)
		}
	}
	sort.Float64s(out)
	uniq := out[:0]
	for i, b := range out {
		if i == 0 || b != out[i-1] {
			uniq = append(uniq, b)
		}
	}
	return uniq
}

func minStep(t float64) float64 {
	a := math.Abs(t)
	return math.Max(16*(math.Nextafter(a, math.Inf(1))-a), 1e-300)
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
