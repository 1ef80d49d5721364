// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements the B->H mapping kernel: linear
// anisotropic permeability, frequency-dependent laminated and wire
// homogenization, and the nonlinear isotropic B-H table interpolant.
package material

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// BHCurve is the derived monotone interpolant of H as a function of
// |B| built from a material's nonlinear B-H table.
//
// spec.md's Open Question on "the exact monotone-cubic vs linear
// interpolation choice for H(|B|)" is resolved here as a monotone
// cubic Hermite spline (Fritsch-Carlson tangents): the table values
// B_k are always increasing and the physical H(B) relation for a
// saturating ferromagnetic material is itself monotone and convex,
// which a plain linear secant interpolant honours only at the sampled
// points and a naive (non-monotone) cubic spline can violate between
// them by overshooting. A monotone Hermite spline passes exactly
// through the table points, like a linear fit (its tangents there are
// limited averages of the adjacent secants), while giving the continuously-differentiable dH/dB the energy and
// co-energy integrals need at arbitrary |B| between samples — this is
// the documented tradeoff the original's unseen CMMaterialProp::
// GetSlopes is understood to target. Recorded as a deliberate design
// decision rather than a literal port.
type BHCurve struct {
	b, h     []float64
	slope    []float64 // Hermite tangent dH/dB at each table point
	nrgTable []float64 // cumulative integral of H dB, for DoEnergy
}

// NewBHCurve builds the monotone interpolant from a table of
// (B,H) pairs; pts need not be pre-sorted by B.
func NewBHCurve(pts [][2]float64) (*BHCurve, error) {
	if len(pts) < 2 {
		return nil, chk.Err("BH curve requires at least 2 points, got %d", len(pts))
	}
	sorted := append([][2]float64{}, pts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i][0] < sorted[j][0] })
	n := len(sorted)
	c := &BHCurve{b: make([]float64, n), h: make([]float64, n)}
	for i, p := range sorted {
		c.b[i], c.h[i] = p[0], p[1]
	}
	c.slope = fritschCarlsonTangents(c.b, c.h)
	c.nrgTable = make([]float64, n)
	for i := 1; i < n; i++ {
		c.nrgTable[i] = c.nrgTable[i-1] + hermiteIntegral(c.b[i-1], c.b[i], c.h[i-1], c.h[i], c.slope[i-1], c.slope[i], c.b[i])
	}
	return c, nil
}

// fritschCarlsonTangents computes monotonicity-preserving tangents for
// a piecewise-cubic Hermite interpolant of y(x).
func fritschCarlsonTangents(x, y []float64) []float64 {
	n := len(x)
	d := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		d[i] = (y[i+1] - y[i]) / (x[i+1] - x[i])
	}
	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			m[i] = 0
		} else {
			m[i] = (d[i-1] + d[i]) / 2
		}
	}
	for i := 0; i < n-1; i++ {
		if d[i] == 0 {
			m[i], m[i+1] = 0, 0
			continue
		}
		a := m[i] / d[i]
		b := m[i+1] / d[i]
		if a < 0 {
			m[i] = 0
		}
		if b < 0 {
			m[i+1] = 0
		}
		s := a*a + b*b
		if s > 9 {
			t := 3 / math.Sqrt(s)
			m[i] = t * a * d[i]
			m[i+1] = t * b * d[i]
		}
	}
	return m
}

func (c *BHCurve) segment(bmag float64) int {
	if bmag <= c.b[0] {
		return 0
	}
	n := len(c.b)
	if bmag >= c.b[n-1] {
		return n - 2
	}
	i := sort.SearchFloat64s(c.b, bmag)
	if i == 0 {
		return 0
	}
	return i - 1
}

// H returns the interpolated (or linearly extrapolated beyond the
// table ends) H(|B|).
func (c *BHCurve) H(bmag float64) float64 {
	i := c.segment(bmag)
	n := len(c.b)
	if bmag < c.b[0] {
		return c.h[0] + c.slope[0]*(bmag-c.b[0])
	}
	if bmag > c.b[n-1] {
		return c.h[n-1] + c.slope[n-1]*(bmag-c.b[n-1])
	}
	return hermiteEval(c.b[i], c.b[i+1], c.h[i], c.h[i+1], c.slope[i], c.slope[i+1], bmag)
}

// DHDB returns the differential slope dH/d|B| at the given magnitude,
// used for the incremental-solution linearized permeability tensor.
func (c *BHCurve) DHDB(bmag float64) float64 {
	i := c.segment(bmag)
	n := len(c.b)
	if bmag < c.b[0] {
		return c.slope[0]
	}
	if bmag > c.b[n-1] {
		return c.slope[n-1]
	}
	return hermiteDerivEval(c.b[i], c.b[i+1], c.h[i], c.h[i+1], c.slope[i], c.slope[i+1], bmag)
}

// Energy returns int_0^|B| H(b) db, the field energy density up to
// |B|, used by DoEnergy.
func (c *BHCurve) Energy(bmag float64) float64 {
	i := c.segment(bmag)
	base := c.nrgTable[i]
	n := len(c.b)
	if bmag <= c.b[0] {
		return 0.5 * c.H(bmag) * bmag
	}
	if bmag >= c.b[n-1] {
		extra := bmag - c.b[n-1]
		return c.nrgTable[n-1] + c.h[n-1]*extra + 0.5*c.slope[n-1]*extra*extra
	}
	// integrate the Hermite cubic on [b_i, bmag]
	return base + hermiteIntegral(c.b[i], c.b[i+1], c.h[i], c.h[i+1], c.slope[i], c.slope[i+1], bmag)
}

func hermiteEval(x0, x1, y0, y1, m0, m1, x float64) float64 {
	h := x1 - x0
	t := (x - x0) / h
	t2, t3 := t*t, t*t*t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*y0 + h10*h*m0 + h01*y1 + h11*h*m1
}

func hermiteDerivEval(x0, x1, y0, y1, m0, m1, x float64) float64 {
	h := x1 - x0
	t := (x - x0) / h
	t2 := t * t
	dh00 := 6*t2 - 6*t
	dh10 := 3*t2 - 4*t + 1
	dh01 := -6*t2 + 6*t
	dh11 := 3*t2 - 2*t
	return (dh00*y0 + dh10*h*m0 + dh01*y1 + dh11*h*m1) / h
}

func hermiteIntegral(x0, x1, y0, y1, m0, m1, xEnd float64) float64 {
	h := x1 - x0
	t := (xEnd - x0) / h
	// integral of the Hermite basis functions from 0 to t, scaled by h
	t2, t3, t4 := t*t, t*t*t, t*t*t*t
	H00 := t4/2 - t3 + t
	H10 := t4/4 - (2.0/3.0)*t3 + t2/2
	H01 := -t4/2 + t3
	H11 := t4/4 - t3/3
	return h * (H00*y0 + H10*h*m0 + H01*y1 + H11*h*m1)
}

// Params returns this curve's parameters in the teacher's dbf.Params
// idiom, for components that want to report/bind them the way
// mdl/retention/vg.go exposes its Van Genuchten parameters.
func (c *BHCurve) Params() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "npoints", V: float64(len(c.b))},
	}
}
