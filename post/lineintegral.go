// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"math"
	"math/cmplx"

	"github.com/temudschin/xfemm/geom"
)

// LineCode is the tagged enum for the 6 line/contour integrand
// variants of spec.md section 4.5.
type LineCode int

const (
	LIntFlux LineCode = iota // 0
	LIntMMF                  // 1
	LIntLength               // 2
	LIntForce                // 3
	LIntTorque               // 4
	LIntBnSqr                // 5
)

// DefaultLineIntegralPoints is d_LineIntegralPoints, the number of
// subsegment samples per contour segment, per spec.md section 4.5.
const DefaultLineIntegralPoints = 400

// Contour is an ordered sequence of complex points sampled by the
// caller, mutable via Push/Bend/Clear, per spec.md's data model.
type Contour struct {
	Points []complex128
}

func (c *Contour) Push(p complex128) { c.Points = append(c.Points, p) }
func (c *Contour) Clear()            { c.Points = c.Points[:0] }

// Bend replaces the last segment of the contour with a circular arc
// subdivided at angleStepDeg, per spec.md section 4.5's contour
// bending operation.
func (c *Contour) Bend(deltaDeg, angleStepDeg float64) {
	n := len(c.Points)
	if n < 2 {
		return
	}
	p0, p1 := c.Points[n-2], c.Points[n-1]
	pts := geom.BendSegment(p0, p1, deltaDeg, angleStepDeg)
	c.Points = append(c.Points[:n-1], pts...)
}

// LineIntegral evaluates the requested integrand along the contour,
// returning up to 4 components as spec.md section 6 documents
// ("lineIntegral(code, contour) -> complex[1..4]").
func (s *Solution) LineIntegral(code LineCode, contour *Contour) []complex128 {
	switch code {
	case LIntFlux:
		return s.lineFlux(contour)
	case LIntMMF:
		return s.lineMMF(contour)
	case LIntLength:
		return s.lineLength(contour)
	case LIntForce:
		return s.lineForce(contour)
	case LIntTorque:
		return s.lineTorque(contour)
	case LIntBnSqr:
		return s.lineBnSqr(contour)
	}
	return nil
}

// sample holds a sub-segment midpoint offset 1e-6 to the left of the
// contour, its containing element, and its tangent, per spec.md
// section 4.5's "offset by 1e-6*n-hat to the left to pick a consistent
// side at material interfaces".
type sample struct {
	p      complex128
	elem   int
	found  bool
	tangent complex128
}

func (s *Solution) sampleContour(contour *Contour) []sample {
	var out []sample
	hint := -1
	for i := 0; i+1 < len(contour.Points); i++ {
		p0, p1 := contour.Points[i], contour.Points[i+1]
		L := cmplx.Abs(p1 - p0)
		if L < geom.Tiny {
			continue
		}
		t := (p1 - p0) / complex(L, 0)
		n := t * complex(0, 1)
		n = n * complex(1e-6, 0)
		for j := 0; j < DefaultLineIntegralPoints; j++ {
			frac := (float64(j) + 0.5) / DefaultLineIntegralPoints
			mid := p0 + complex(frac, 0)*(p1-p0) + n
			elem := s.InTriangleNear(hint, mid)
			found := elem >= 0
			if found {
				hint = elem
			}
			out = append(out, sample{p: mid, elem: elem, found: found, tangent: t})
		}
	}
	return out
}

func (s *Solution) lineFlux(contour *Contour) []complex128 {
	if len(contour.Points) < 2 {
		return []complex128{0}
	}
	pv0, ok0 := s.PointValues(real(contour.Points[0]), imag(contour.Points[0]))
	n := len(contour.Points)
	pv1, ok1 := s.PointValues(real(contour.Points[n-1]), imag(contour.Points[n-1]))
	if !ok0 || !ok1 {
		return []complex128{0}
	}
	flux := pv0.A - pv1.A
	if s.Problem == Planar {
		flux *= complex(s.Depth, 0)
	}
	avg := flux / complex(float64(n-1), 0)
	return []complex128{flux, avg}
}

func (s *Solution) lineMMF(contour *Contour) []complex128 {
	samples := s.sampleContour(contour)
	var total complex128
	n := 0
	for i, smp := range samples {
		if !smp.found {
			continue
		}
		pv, ok := s.PointValues(real(smp.p), imag(smp.p))
		if !ok {
			continue
		}
		dl := s.segmentLength(contour, i, len(samples)) * s.lengthConv()
		h := pv.H1*complex(real(smp.tangent), 0) + pv.H2*complex(imag(smp.tangent), 0)
		total += h * complex(dl, 0)
		n++
	}
	if n == 0 {
		return []complex128{0}
	}
	return []complex128{total, total / complex(float64(n), 0)}
}

func (s *Solution) segmentLength(contour *Contour, sampleIdx, total int) float64 {
	nSegPts := DefaultLineIntegralPoints
	segIdx := sampleIdx / nSegPts
	if segIdx+1 >= len(contour.Points) {
		segIdx = len(contour.Points) - 2
	}
	if segIdx < 0 {
		return 0
	}
	L := cmplx.Abs(contour.Points[segIdx+1] - contour.Points[segIdx])
	return L / float64(nSegPts)
}

func (s *Solution) lineLength(contour *Contour) []complex128 {
	var len_ float64
	for i := 0; i+1 < len(contour.Points); i++ {
		len_ += cmplx.Abs(contour.Points[i+1]-contour.Points[i]) * s.lengthConv()
	}
	var area float64
	if s.Problem == Planar {
		area = len_ * s.Depth
	} else {
		for i := 0; i+1 < len(contour.Points); i++ {
			rbar := (real(contour.Points[i]) + real(contour.Points[i+1])) / 2 * s.lengthConv()
			seg := cmplx.Abs(contour.Points[i+1]-contour.Points[i]) * s.lengthConv()
			area += 2 * math.Pi * rbar * seg
		}
	}
	return []complex128{complex(len_, 0), complex(area, 0)}
}

// lineForce implements the Maxwell stress-tensor surface-traction
// integral (code 3), split into its SS (time-average, conjugated) and
// 2x-frequency (non-conjugated) halves the same way BlockIntegral's
// Lorentz-force family does, per spec.md section 4.5. Returns
// [fxSS, fx2x, fySS, fy2x].
func (s *Solution) lineForce(contour *Contour) []complex128 {
	samples := s.sampleContour(contour)
	var fxSS, fx2x, fySS, fy2x float64
	for i, smp := range samples {
		if !smp.found {
			continue
		}
		pv, ok := s.PointValues(real(smp.p), imag(smp.p))
		if !ok {
			continue
		}
		n := smp.tangent * complex(0, 1)
		nx, ny := real(n), imag(n)
		dl := s.segmentLength(contour, i, len(samples)) * s.lengthConv()

		bn := pv.B1*complex(nx, 0) + pv.B2*complex(ny, 0)

		bhSS := pv.B1*cmplx.Conj(pv.H1) + pv.B2*cmplx.Conj(pv.H2)
		txSS := real(cmplx.Conj(pv.H1)*bn) - 0.5*real(bhSS)*nx
		tySS := real(cmplx.Conj(pv.H2)*bn) - 0.5*real(bhSS)*ny

		bh2x := pv.B1*pv.H1 + pv.B2*pv.H2
		tx2x := real(pv.H1*bn) - 0.5*real(bh2x)*nx
		ty2x := real(pv.H2*bn) - 0.5*real(bh2x)*ny

		fxSS += txSS * dl / 2
		fySS += tySS * dl / 2
		fx2x += tx2x * dl / 4
		fy2x += ty2x * dl / 4
	}
	return []complex128{complex(fxSS, 0), complex(fx2x, 0), complex(fySS, 0), complex(fy2x, 0)}
}

// lineTorque integrates the stress-tensor torque about the origin
// (code 4), in the same SS/2x split as lineForce.
func (s *Solution) lineTorque(contour *Contour) []complex128 {
	samples := s.sampleContour(contour)
	var tSS, t2x float64
	for i, smp := range samples {
		if !smp.found {
			continue
		}
		pv, ok := s.PointValues(real(smp.p), imag(smp.p))
		if !ok {
			continue
		}
		n := smp.tangent * complex(0, 1)
		nx, ny := real(n), imag(n)
		dl := s.segmentLength(contour, i, len(samples)) * s.lengthConv()
		d := smp.p
		bn := pv.B1*complex(nx, 0) + pv.B2*complex(ny, 0)

		bhSS := pv.B1*cmplx.Conj(pv.H1) + pv.B2*cmplx.Conj(pv.H2)
		txSS := real(cmplx.Conj(pv.H1)*bn) - 0.5*real(bhSS)*nx
		tySS := real(cmplx.Conj(pv.H2)*bn) - 0.5*real(bhSS)*ny
		tSS += (real(d)*tySS - imag(d)*txSS) * dl / 2

		bh2x := pv.B1*pv.H1 + pv.B2*pv.H2
		tx2x := real(pv.H1*bn) - 0.5*real(bh2x)*nx
		ty2x := real(pv.H2*bn) - 0.5*real(bh2x)*ny
		t2x += (real(d)*ty2x - imag(d)*tx2x) * dl / 4
	}
	return []complex128{complex(tSS, 0), complex(t2x, 0)}
}

func (s *Solution) lineBnSqr(contour *Contour) []complex128 {
	samples := s.sampleContour(contour)
	var total complex128
	n := 0
	for i, smp := range samples {
		if !smp.found {
			continue
		}
		pv, ok := s.PointValues(real(smp.p), imag(smp.p))
		if !ok {
			continue
		}
		norm := smp.tangent * complex(0, 1)
		bn := pv.B1*complex(real(norm), 0) + pv.B2*complex(imag(norm), 0)
		dl := s.segmentLength(contour, i, len(samples)) * s.lengthConv()
		total += bn * cmplx.Conj(bn) * complex(dl, 0)
		n++
	}
	if n == 0 {
		return []complex128{0}
	}
	return []complex128{total, total / complex(float64(n), 0)}
}
