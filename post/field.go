// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"math"
	"math/cmplx"

	"github.com/temudschin/xfemm/geom"
)

// ElementB recomputes element k's per-element flux density B1,B2 from
// its nodes' A, following spec.md section 4.4. It must be called
// after load (and again whenever nodal A changes, e.g. a new
// incremental solve is attached).
func (s *Solution) ElementB(k int) {
	el := &s.Elems[k]
	p0 := s.Nodes[el.P[0]].Pos()
	p1 := s.Nodes[el.P[1]].Pos()
	p2 := s.Nodes[el.P[2]].Pos()
	bc := geom.Bary(p0, p1, p2)
	len_ := s.lengthConv()

	if s.Problem == Planar {
		var b1, b2 complex128
		as := [3]complex128{s.Nodes[el.P[0]].A, s.Nodes[el.P[1]].A, s.Nodes[el.P[2]].A}
		for i := 0; i < 3; i++ {
			b1 += as[i] * complex(bc.C[i]/(bc.Delta*len_), 0)
			b2 -= as[i] * complex(bc.B[i]/(bc.Delta*len_), 0)
		}
		el.B1, el.B2 = b1, b2
		if s.PrevType != 0 {
			var b1p, b2p float64
			for i, ni := range el.P {
				if s.Nodes[ni].HasAPrev {
					b1p += real(s.Nodes[ni].APrev) * bc.C[i] / (bc.Delta * len_)
					b2p -= real(s.Nodes[ni].APrev) * bc.B[i] / (bc.Delta * len_)
				}
			}
			el.B1p, el.B2p = b1p, b2p
		}
		return
	}

	// axisymmetric: the stored potential is 2*pi*r*A_phi; reconstruct
	// via radius-weighted mid-side values before differentiating the
	// quadratic basis, per spec.md section 4.4 and SPEC_FULL's
	// GetElementB addendum.
	R := [3]float64{s.Nodes[el.P[0]].X, s.Nodes[el.P[1]].X, s.Nodes[el.P[2]].X}
	rbar := (R[0] + R[1] + R[2]) / 3
	v := [6]complex128{}
	v[0], v[2], v[4] = s.Nodes[el.P[0]].A, s.Nodes[el.P[1]].A, s.Nodes[el.P[2]].A
	v[1] = midsidePotential(R[0], R[1], v[0], v[2])
	v[3] = midsidePotential(R[1], R[2], v[2], v[4])
	v[5] = midsidePotential(R[2], R[0], v[4], v[0])

	dp := (-v[0] + v[2] + 4*v[3] - 4*v[5]) / 3
	dq := (-v[0] - 4*v[1] + 4*v[3] + v[4]) / 3

	da := bc.Delta * 2 * math.Pi * rbar * len_ * len_
	el.B1 = -(complex(bc.C[1], 0)*dp + complex(bc.C[2], 0)*dq) / complex(da, 0)
	el.B2 = (complex(bc.B[1], 0)*dp + complex(bc.B[2], 0)*dq) / complex(da, 0)

	if s.PrevType != 0 {
		vp := [6]complex128{}
		vp[0], vp[2], vp[4] = s.Nodes[el.P[0]].APrev, s.Nodes[el.P[1]].APrev, s.Nodes[el.P[2]].APrev
		vp[1] = midsidePotential(R[0], R[1], vp[0], vp[2])
		vp[3] = midsidePotential(R[1], R[2], vp[2], vp[4])
		vp[5] = midsidePotential(R[2], R[0], vp[4], vp[0])
		dpp := (-vp[0] + vp[2] + 4*vp[3] - 4*vp[5]) / 3
		dqp := (-vp[0] - 4*vp[1] + 4*vp[3] + vp[4]) / 3
		b1p := -(complex(bc.C[1], 0)*dpp + complex(bc.C[2], 0)*dqp) / complex(da, 0)
		b2p := (complex(bc.B[1], 0)*dpp + complex(bc.B[2], 0)*dqp) / complex(da, 0)
		el.B1p, el.B2p = real(b1p), real(b2p)
	}
}

// midsidePotential is the radius-weighted mid-side average used for the
// element-B axisymmetric quadratic reconstruction, per SPEC_FULL.md's
// field-interpolation addendum.
func midsidePotential(ra, rb float64, va, vb complex128) complex128 {
	if ra < geom.Tiny && rb < geom.Tiny {
		return (va + vb) / 2
	}
	return (complex(rb, 0)*(3*va+vb) + complex(ra, 0)*(va+3*vb)) / complex(4*(ra+rb), 0)
}

// compatible reports whether two block properties are "the same
// material" for smoothing purposes: same linear MuX, MuY and Hc.
// Magnetization direction and the lamination/wire-homogenized
// effective mu are not compared.
func compatibleMaterial(a, b *BlockProperty) bool {
	if a == b {
		return true
	}
	return a.MuX == b.MuX && a.MuY == b.MuY && a.Hc == b.Hc
}

// NodalB computes the smoothed per-vertex B for every element,
// following the decision tree pinned in SPEC_FULL.md's field
// interpolation addendum (same-material patch averaging; else
// two-interface tangential+normal reconstruction; else same-material
// max-|B| scaling fallback; point-source override; r=0 clamp).
func (s *Solution) NodalB() {
	for k := range s.Elems {
		el := &s.Elems[k]
		for local, nodeIdx := range el.P {
			b1, b2 := s.smoothedVertexB(k, local, nodeIdx)
			if s.Problem == Axisymmetric && s.Nodes[nodeIdx].X < geom.Tiny {
				b1 = complex(0, imag(b1))
			}
			el.B1n[local], el.B2n[local] = b1, b2
		}
	}
}

func (s *Solution) smoothedVertexB(k, local, nodeIdx int) (complex128, complex128) {
	el := &s.Elems[k]
	node := &s.Nodes[nodeIdx]
	if node.PointSource {
		return el.B1, el.B2
	}
	patch := s.Adjacency[nodeIdx]
	blk := &s.Blocks[el.Blk]

	allCompatible := true
	for _, m := range patch {
		if !compatibleMaterial(&s.Blocks[s.Elems[m].Blk], blk) {
			allCompatible = false
			break
		}
	}
	if allCompatible {
		var sb1, sb2, wsum complex128
		for _, m := range patch {
			me := &s.Elems[m]
			w := 1 / (cmplx.Abs(node.Pos()-me.Ctr) + 1e-12)
			sb1 += me.B1 * complex(w, 0)
			sb2 += me.B2 * complex(w, 0)
			wsum += complex(w, 0)
		}
		if wsum != 0 {
			return sb1 / wsum, sb2 / wsum
		}
		return el.B1, el.B2
	}

	// walk CCW/CW from the query element through the patch to find the
	// two material-interface edges at this node.
	edges := s.interfaceEdges(k, local, nodeIdx)
	if len(edges) != 2 || !sharpEnough(edges) {
		maxAbs := 0.0
		for _, m := range patch {
			me := &s.Elems[m]
			if compatibleMaterial(&s.Blocks[s.Elems[m].Blk], blk) {
				if a := math.Hypot(cmplx.Abs(me.B1), cmplx.Abs(me.B2)); a > maxAbs {
					maxAbs = a
				}
			}
		}
		scale := 1.0
		if cur := math.Hypot(cmplx.Abs(el.B1), cmplx.Abs(el.B2)); cur > 0 && maxAbs > 0 {
			scale = maxAbs / cur
		}
		return el.B1 * complex(scale, 0), el.B2 * complex(scale, 0)
	}

	var sb1, sb2, wsum complex128
	for _, e := range edges {
		w := 1 / (e.length + 1e-12)
		sb1 += e.b1 * complex(w, 0)
		sb2 += e.b2 * complex(w, 0)
		wsum += complex(w, 0)
	}
	if wsum == 0 {
		return el.B1, el.B2
	}
	return sb1 / wsum, sb2 / wsum
}

type interfaceEdge struct {
	tangent  complex128
	length   float64
	b1, b2   complex128
}

// interfaceEdges finds, at most, the two patch edges incident to
// nodeIdx where material changes, walking CCW then CW from the query
// element, per SPEC_FULL.md's NodalB addendum.
func (s *Solution) interfaceEdges(k, local, nodeIdx int) []interfaceEdge {
	el := &s.Elems[k]
	blk := &s.Blocks[el.Blk]
	var found []interfaceEdge
	cur, curLocal := k, local
	for steps := 0; steps < len(s.Adjacency[nodeIdx])+1 && len(found) < 1; steps++ {
		nb := s.Elems[cur].Nbr[(curLocal+1)%3]
		if nb < 0 {
			break
		}
		if !compatibleMaterial(&s.Blocks[s.Elems[nb].Blk], blk) {
			found = append(found, s.edgeSample(cur, (curLocal+1)%3, nodeIdx))
			break
		}
		curLocal = localIndexOf(&s.Elems[nb], nodeIdx)
		cur = nb
	}
	cur, curLocal = k, local
	for steps := 0; steps < len(s.Adjacency[nodeIdx])+1 && len(found) < 2; steps++ {
		nb := s.Elems[cur].Nbr[(curLocal+2)%3]
		if nb < 0 {
			break
		}
		if !compatibleMaterial(&s.Blocks[s.Elems[nb].Blk], blk) {
			found = append(found, s.edgeSample(cur, (curLocal+2)%3, nodeIdx))
			break
		}
		curLocal = localIndexOf(&s.Elems[nb], nodeIdx)
		cur = nb
	}
	return found
}

func localIndexOf(el *MeshElement, nodeIdx int) int {
	for i, p := range el.P {
		if p == nodeIdx {
			return i
		}
	}
	return 0
}

// edgeSample builds the tangential-plus-normal B sample at the
// material-interface edge opposite local vertex edgeLocal of element
// elemIdx, per SPEC_FULL.md: tangential B from the element average,
// normal B from the A-jump across the edge (planar: dA/dl; axi:
// -dA/dl/(2*pi*r)).
func (s *Solution) edgeSample(elemIdx, edgeLocal, nodeIdx int) interfaceEdge {
	el := &s.Elems[elemIdx]
	a, b := el.P[(edgeLocal+1)%3], el.P[(edgeLocal+2)%3]
	pa, pb := s.Nodes[a].Pos(), s.Nodes[b].Pos()
	length := cmplx.Abs(pb-pa) * s.lengthConv()
	t := (pb - pa) / complex(cmplx.Abs(pb-pa), 0)

	dA := s.Nodes[b].A - s.Nodes[a].A
	var normal complex128
	if s.Problem == Planar {
		normal = dA / complex(length, 0)
	} else {
		r := (s.Nodes[a].X + s.Nodes[b].X) / 2
		if r < geom.Tiny {
			r = geom.Tiny
		}
		normal = -dA / complex(length*2*math.Pi*r, 0)
	}
	n := t * complex(0, 1)
	tangential := el.B1*complex(real(t), 0) + el.B2*complex(imag(t), 0)
	b1 := tangential*complex(real(t), 0) + normal*complex(real(n), 0)
	b2 := tangential*complex(imag(t), 0) + normal*complex(imag(n), 0)
	return interfaceEdge{tangent: t, length: length, b1: b1, b2: b2}
}

func sharpEnough(edges []interfaceEdge) bool {
	if len(edges) != 2 {
		return false
	}
	t0, t1 := edges[0].tangent, edges[1].tangent
	dot := real(t0)*real(t1) + imag(t0)*imag(t1)
	if cmplx.Abs(t0) < 1e-9 || cmplx.Abs(t1) < 1e-9 {
		return true
	}
	return dot >= 0.985
}
