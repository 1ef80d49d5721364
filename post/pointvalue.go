// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"math"
	"math/cmplx"

	"github.com/temudschin/xfemm/geom"
)

// PointValue is the bundle of field quantities the query facade
// returns from a pointValues(x,y) call, per spec.md section 4.4.
type PointValue struct {
	Elem  int
	A     complex128
	B1, B2 complex128
	H1, H2 complex128
	J      complex128
	Mu1, Mu2 complex128
	Energy   float64
	HystLossDensity float64
	EddyLossDensity float64
}

// defaultSmoothing controls whether GetPointB interpolates the smoothed
// nodal B (the default) or returns the raw per-element B. It is a
// package-level variable shared by every Solution, not a per-Solution
// field.
var defaultSmoothing = true

// PointValues implements spec.md section 4.4's point-value evaluator.
// It returns (nil, false) if (x,y) is not inside any element (the
// "sentinel no result" spec.md section 7 calls for).
func (s *Solution) PointValues(x, y float64) (*PointValue, bool) {
	p := complex(x, y)
	k := s.InTriangle(p)
	if k < 0 {
		return nil, false
	}
	el := &s.Elems[k]
	bc := geom.Bary(s.Nodes[el.P[0]].Pos(), s.Nodes[el.P[1]].Pos(), s.Nodes[el.P[2]].Pos())

	var a complex128
	for i, ni := range el.P {
		l := (bc.A[i] + bc.B[i]*x + bc.C[i]*y) / bc.Delta
		a += s.Nodes[ni].A * complex(l, 0)
	}

	b1, b2 := s.GetPointB(k, x, y)
	bmag := math.Hypot(cmplx.Abs(b1), cmplx.Abs(b2))
	mu1, mu2 := s.GetMu(k, bmag)

	h1 := b1 / (complex(mu0Const, 0) * mu1)
	h2 := b2 / (complex(mu0Const, 0) * mu2)

	blk := &s.Blocks[el.Blk]
	if blk.Hc > 0 {
		hc := complex(blk.Hc, 0) * cmplx.Exp(complex(0, el.MagDirDeg*math.Pi/180))
		h1 -= complex(real(hc), 0)
		h2 -= complex(imag(hc), 0)
	}

	j := s.pointJ(k, a)

	energy := s.pointEnergy(k, b1, b2, h1, h2)
	omega := 2 * math.Pi * s.Frequency
	hyst := math.Pi * s.Frequency * imag(h1*cmplx.Conj(b1)+h2*cmplx.Conj(b2))
	var eddy float64
	if blk.Cduct > 0 {
		sigma := blk.Cduct * 1e6
		je := -complex(0, omega*sigma) * s.normalizeA(k, a)
		eddy = cmplx.Abs(je) * cmplx.Abs(je) / (2 * sigma)
	}

	return &PointValue{
		Elem: k, A: a, B1: b1, B2: b2, H1: h1, H2: h2, J: j,
		Mu1: mu1, Mu2: mu2, Energy: energy,
		HystLossDensity: hyst, EddyLossDensity: eddy,
	}, true
}

// GetPointB returns B at (x,y) inside element k: barycentric
// interpolation of the smoothed nodal B when smoothing is enabled,
// else the raw element B, per spec.md section 4.4.
func (s *Solution) GetPointB(k int, x, y float64) (complex128, complex128) {
	el := &s.Elems[k]
	if !defaultSmoothing {
		return el.B1, el.B2
	}
	bc := geom.Bary(s.Nodes[el.P[0]].Pos(), s.Nodes[el.P[1]].Pos(), s.Nodes[el.P[2]].Pos())
	var b1, b2 complex128
	for i := 0; i < 3; i++ {
		l := (bc.A[i] + bc.B[i]*x + bc.C[i]*y) / bc.Delta
		b1 += el.B1n[i] * complex(l, 0)
		b2 += el.B2n[i] * complex(l, 0)
	}
	return b1, b2
}

// pointJ implements GetJA: source current density plus eddy plus
// circuit-voltage-driven contribution, with the axisymmetric r<tiny
// guard of spec.md section 9.
func (s *Solution) pointJ(k int, a complex128) complex128 {
	el := &s.Elems[k]
	blk := &s.Blocks[el.Blk]
	lbl := &s.Labels[el.Lbl]
	j := blk.Jsrc
	omega := 2 * math.Pi * s.Frequency
	if blk.Cduct > 0 {
		j -= complex(0, omega*blk.Cduct*1e6) * s.normalizeA(k, a)
	}
	if lbl.InCircuit >= 0 && lbl.InCircuit < len(s.Circuits) {
		r := real(el.Ctr)
		if s.Problem == Axisymmetric && r < geom.Tiny {
			r = s.meanRadius(k)
			if r < geom.Tiny {
				r = geom.Tiny
			}
		}
		j += s.circuitDrivenJ(lbl, blk, r*s.lengthConv())
	}
	return j
}

func (s *Solution) meanRadius(k int) float64 {
	el := &s.Elems[k]
	r := 0.0
	for _, n := range el.P {
		r += s.Nodes[n].X
	}
	return r / 3
}

// normalizeA implements GetJA's axisymmetric potential normalization
// (fpproc.cpp:3507-3516): the stored nodal/element potential is
// 2*pi*r*A_phi for axisymmetric problems, so it must be divided by
// 2*pi*r (r in meters) before it can be used as A_phi itself, as the
// eddy-current term requires. Planar problems store A_phi directly.
func (s *Solution) normalizeA(k int, a complex128) complex128 {
	if s.Problem == Planar {
		return a
	}
	r := s.meanRadius(k) * s.lengthConv()
	if r < geom.Tiny {
		return 0
	}
	return a / complex(2*math.Pi*r, 0)
}

// circuitDrivenJ is the circuit-voltage-driven term of GetJA: a solid
// region in a circuit is driven by its read-through dVolts gradient
// (divided by r in the axisymmetric case), a stranded region instead
// carries its own prescribed label current Jlbl directly, per
// fpproc.cpp's GetJA (fpproc.cpp:3541-3572).
func (s *Solution) circuitDrivenJ(lbl *BlockLabel, blk *BlockProperty, r float64) complex128 {
	if lbl.FillFactor >= 0 {
		return lbl.Jlbl
	}
	c := blk.Cduct
	if blk.LamD != 0 {
		c = 0
	}
	if s.Problem == Axisymmetric {
		return -complex(c, 0) * lbl.DVolts / complex(r, 0)
	}
	return -complex(c, 0) * lbl.DVolts
}

// pointEnergy implements the energy term of the point-value evaluator:
// linear media use 1/2 Re(B.H); nonlinear isotropic media use the B-H
// table's cumulative integral; PM regions subtract the block's Nrg
// co-energy offset. The loader does not compute Nrg, so on a Solution
// built by loader.Load the offset is zero.
func (s *Solution) pointEnergy(k int, b1, b2, h1, h2 complex128) float64 {
	el := &s.Elems[k]
	blk := &s.Blocks[el.Blk]
	if blk.Curve != nil {
		bmag := math.Hypot(real(b1), real(b2))
		e := blk.Curve.Energy(bmag)
		if blk.Hc > 0 {
			e -= blk.Nrg
		}
		return e
	}
	e := 0.5 * real(b1*cmplx.Conj(h1)+b2*cmplx.Conj(h2))
	if blk.Hc > 0 {
		e -= blk.Nrg
	}
	return e
}
