// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// singleTriangle builds the smallest possible solved mesh: one linear
// iron triangle with vertices at (0,0), (1,0), (0,1) and a ramped
// vector potential, used across the post package's unit tests.
func singleTriangle() *Solution {
	s := &Solution{
		Problem: Planar,
		Depth:   1,
		Units:   Meters,
		Blocks:  []BlockProperty{{Name: "iron", MuX: 1, MuY: 1}},
		Labels:  []BlockLabel{{BlockType: 0, InCircuit: -1, FillFactor: -1, Selected: true}},
		Nodes: []MeshNode{
			{X: 0, Y: 0, A: 0},
			{X: 1, Y: 0, A: 0},
			{X: 0, Y: 1, A: 1},
		},
		Elems: []MeshElement{
			{P: [3]int{0, 1, 2}, Lbl: 0, Blk: 0},
		},
	}
	s.BuildIndex()
	s.ElementB(0)
	s.NodalB()
	return s
}

func Test_intriangle01(tst *testing.T) {

	chk.PrintTitle("intriangle01")

	s := singleTriangle()

	k := s.InTriangle(complex(1.0/3, 1.0/3))
	chk.IntAssert(k, 0)

	outside := s.InTriangle(complex(5, 5))
	chk.IntAssert(outside, -1)
}

func Test_pointvalues01(tst *testing.T) {

	chk.PrintTitle("pointvalues01")

	s := singleTriangle()

	pv, ok := s.PointValues(1.0/3, 1.0/3)
	if !ok {
		tst.Errorf("point inside the triangle must resolve")
		return
	}
	chk.IntAssert(pv.Elem, 0)
	chk.Float64(tst, "A", 1e-12, real(pv.A), 1.0/3)
	chk.Float64(tst, "B1", 1e-9, real(pv.B1), 1.0)
	chk.Float64(tst, "B2", 1e-9, real(pv.B2), 0.0)
	chk.Float64(tst, "mu1", 1e-12, real(pv.Mu1), 1.0)
	chk.Float64(tst, "mu2", 1e-12, real(pv.Mu2), 1.0)

	_, ok = s.PointValues(5, 5)
	if ok {
		tst.Errorf("point outside every element must report not-found")
	}
}

func Test_blockintegral01(tst *testing.T) {

	chk.PrintTitle("blockintegral01")

	s := singleTriangle()

	area := s.BlockIntegral(BIntArea)
	chk.Float64(tst, "area", 1e-12, real(area), 0.5)
	chk.Float64(tst, "area.imag", 1e-12, imag(area), 0)

	s.Labels[0].Selected = false
	zero := s.BlockIntegral(BIntArea)
	chk.Float64(tst, "area with nothing selected", 1e-12, real(zero), 0)
}
