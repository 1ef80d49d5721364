// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_bhcurve01(tst *testing.T) {

	chk.PrintTitle("bhcurve01")

	pts := [][2]float64{{0, 0}, {1, 100}, {1.5, 1000}, {1.8, 10000}}
	c, err := NewBHCurve(pts)
	if err != nil {
		tst.Errorf("NewBHCurve failed: %v", err)
		return
	}

	for _, p := range pts {
		chk.Float64(tst, "H at table point", 1e-9, c.H(p[0]), p[1])
	}

	if c.H(1.2) <= c.H(1.0) || c.H(1.2) >= c.H(1.5) {
		tst.Errorf("interpolated H(1.2) must lie between H(1.0) and H(1.5), got %v", c.H(1.2))
	}

	if c.Energy(0) != 0 {
		tst.Errorf("energy at B=0 must be zero, got %v", c.Energy(0))
	}
	if c.Energy(1.5) <= c.Energy(1.0) {
		tst.Errorf("energy must be monotonically increasing with |B|")
	}
}

func Test_bhcurve02(tst *testing.T) {

	chk.PrintTitle("bhcurve02")

	_, err := NewBHCurve([][2]float64{{0, 0}})
	if err == nil {
		tst.Errorf("a single-point table must be rejected")
	}
}
