// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_arc01(tst *testing.T) {

	chk.PrintTitle("arc01")

	// quarter circle of radius 1, centred at the origin
	a := Arc{Start: complex(1, 0), End: complex(0, 1), AngleDeg: 90}
	c, r := a.Circle()
	chk.Float64(tst, "radius", 1e-9, r, 1.0)
	chk.Float64(tst, "center.re", 1e-9, real(c), 0.0)
	chk.Float64(tst, "center.im", 1e-9, imag(c), 0.0)

	d := a.ShortestDistance(complex(0, 0))
	chk.Float64(tst, "dist(origin)", 1e-9, d, 1.0)

	onArc := complex(math.Cos(math.Pi/4), math.Sin(math.Pi/4))
	d2 := a.ShortestDistance(onArc)
	if d2 > 1e-6 {
		tst.Errorf("point on the arc should have ~zero distance, got %v", d2)
	}
}

func Test_bendsegment01(tst *testing.T) {

	chk.PrintTitle("bendsegment01")

	p0, p1 := complex(0, 0), complex(1, 0)
	pts := BendSegment(p0, p1, 0, 5)
	if len(pts) != 1 || pts[0] != p1 {
		tst.Errorf("zero bend angle must degenerate to the straight endpoint")
	}

	bent := BendSegment(p0, p1, 90, 10)
	if len(bent) == 0 {
		tst.Errorf("bent polyline must not be empty")
		return
	}
	if bent[len(bent)-1] != p1 {
		tst.Errorf("bent polyline must end exactly at p1")
	}
}
