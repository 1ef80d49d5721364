// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_bary01(tst *testing.T) {

	chk.PrintTitle("bary01")

	p0 := complex(0, 0)
	p1 := complex(1, 0)
	p2 := complex(0, 1)
	bc := Bary(p0, p1, p2)

	chk.Float64(tst, "delta", 1e-15, bc.Delta, 1.0)
	chk.Float64(tst, "area", 1e-15, Area(p0, p1, p2), 0.5)

	centroid := Centroid(p0, p1, p2)
	if !PointInTriangle(centroid, p0, p1, p2) {
		tst.Errorf("centroid must lie inside the triangle")
	}

	outside := complex(5, 5)
	if PointInTriangle(outside, p0, p1, p2) {
		tst.Errorf("(5,5) must lie outside the triangle")
	}
}

func Test_circumradius01(tst *testing.T) {

	chk.PrintTitle("circumradius01")

	p0 := complex(0, 0)
	p1 := complex(2, 0)
	p2 := complex(0, 2)
	ctr := Centroid(p0, p1, p2)
	r2 := CircumRadiusSqr(ctr, p0, p1, p2)
	if r2 <= 0 {
		tst.Errorf("circumradius squared must be positive, got %v", r2)
	}
}

func Test_argdeg01(tst *testing.T) {

	chk.PrintTitle("argdeg01")

	chk.Float64(tst, "arg(1)", 1e-12, ArgDeg(complex(1, 0)), 0)
	chk.Float64(tst, "arg(i)", 1e-9, ArgDeg(complex(0, 1)), 90)
	chk.Float64(tst, "arg(-1)", 1e-9, ArgDeg(complex(-1, 0)), 180)
}
