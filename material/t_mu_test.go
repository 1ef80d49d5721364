// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_laminatedmu01(tst *testing.T) {

	chk.PrintTitle("laminatedmu01")

	mu := LaminatedMu(1000, 0, 2.0, 0, 0.35, 0.96)
	chk.Float64(tst, "mu at f=0", 1e-9, real(mu), 1000)
	chk.Float64(tst, "mu at f=0, imag", 1e-9, imag(mu), 0)

	mu60 := LaminatedMu(1000, 60, 2.0, 0, 0.35, 0.96)
	if cmplx.Abs(mu60) >= 1000 {
		tst.Errorf("eddy-current reaction must reduce the effective permeability magnitude below the DC value, got %v", mu60)
	}
}

func Test_roundwire01(tst *testing.T) {

	chk.PrintTitle("roundwire01")

	u0, o0 := RoundWireHomogenize(58e6, 0, 0.0005, 0.6)
	chk.Float64(tst, "u at f=0", 1e-9, real(u0), 1)
	chk.Float64(tst, "o.re at f=0", 1e-3, real(o0), 58e6*0.6)

	u60, _ := RoundWireHomogenize(58e6, 60, 0.0005, 0.6)
	if cmplx.Abs(u60) >= cmplx.Abs(u0) {
		tst.Errorf("AC homogenized permeability magnitude should be reduced by skin effect relative to DC, got u60=%v u0=%v", u60, u0)
	}
}

func Test_aecf01(tst *testing.T) {

	chk.PrintTitle("aecf01")

	chk.Float64(tst, "internal region", 1e-12, AECF(complex(1, 1), 0, 1, 0.5, false), 1)

	f := AECF(complex(0, 1), 0, 1, 0.5, true)
	chk.Float64(tst, "external at r=1", 1e-12, f, 1*1*0.5/(1*1*1))
}
