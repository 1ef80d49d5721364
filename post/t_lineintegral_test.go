// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_linelength01(tst *testing.T) {

	chk.PrintTitle("linelength01")

	s := singleTriangle()
	c := &Contour{}
	c.Push(complex(0, 0))
	c.Push(complex(1, 0))

	res := s.LineIntegral(LIntLength, c)
	chk.IntAssert(len(res), 2)
	chk.Float64(tst, "length", 1e-12, real(res[0]), 1)
	chk.Float64(tst, "area", 1e-12, real(res[1]), 1) // area = length*Depth for a planar problem
}

func Test_lineflux01(tst *testing.T) {

	chk.PrintTitle("lineflux01")

	s := singleTriangle()
	c := &Contour{}
	c.Push(complex(0.1, 0.1))
	c.Push(complex(0.1, 0.4))

	res := s.LineIntegral(LIntFlux, c)
	chk.IntAssert(len(res), 2)
	// this mesh's node potentials (0,0,1) at (0,0),(1,0),(0,1) make
	// A(x,y)=y exactly, so flux = (A(p0)-A(p1))*Depth = (0.1-0.4)*1
	chk.Float64(tst, "flux", 1e-9, real(res[0]), -0.3)
	chk.Float64(tst, "avg", 1e-9, real(res[1]), -0.3)
}

func Test_bend01(tst *testing.T) {

	chk.PrintTitle("bend01")

	c := &Contour{}
	c.Push(complex(0, 0))
	c.Push(complex(1, 0))
	c.Bend(90, 10)

	if len(c.Points) < 3 {
		tst.Errorf("Bend must subdivide the last segment into more than its two endpoints")
		return
	}
	last := c.Points[len(c.Points)-1]
	if math.Abs(real(last)-1) > 1e-9 || math.Abs(imag(last)) > 1e-9 {
		tst.Errorf("Bend must still end exactly at the original segment endpoint, got %v", last)
	}
}
