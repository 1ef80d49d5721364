// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_govaluate01(tst *testing.T) {

	chk.PrintTitle("govaluate01")

	ev := NewGovaluateAngleEvaluator()

	v, err := ev.Eval("x+y", 3, 4, complex(3, 4))
	if err != nil {
		tst.Errorf("eval failed: %v", err)
		return
	}
	chk.Float64(tst, "x+y", 1e-12, v, 7)

	v2, err := ev.Eval("theta", 0, 0, complex(0, 1))
	if err != nil {
		tst.Errorf("eval failed: %v", err)
		return
	}
	chk.Float64(tst, "theta at (0,1)", 1e-9, v2, 90)

	// cached re-evaluation of the same expression must still work
	v3, err := ev.Eval("x+y", 10, 20, complex(10, 20))
	if err != nil {
		tst.Errorf("cached eval failed: %v", err)
		return
	}
	chk.Float64(tst, "x+y cached", 1e-12, v3, 30)
}

func Test_govaluate02(tst *testing.T) {

	chk.PrintTitle("govaluate02")

	ev := NewGovaluateAngleEvaluator()
	_, err := ev.Eval("not-a-valid-expr(((", 0, 0, 0)
	if err == nil {
		tst.Errorf("malformed expression must return an error")
	}
}
