// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/temudschin/xfemm/post"
)

// minimal is a synthetic single-triangle solution file exercising the
// header, one block property, one series circuit, one block label, the
// node/element tables, and the per-label circuit-unknowns tail — every
// section Load must walk through for a solid (non-AGE, non-stranded)
// problem.
const minimal = `[format] 4
[frequency] 0
[depth] 1
[precision] 1e-008
[lengthunits] meters
[problemtype] planar
<beginblock>
<blockname=air>
<mu_x=1>
<mu_y=1>
<endblock>
<begincircuit>
<circuitname=c1>
<circuittype=1>
<totalamps_re=0>
<totalamps_im=0>
<endcircuit>
[numpoints] 0
[numsegments] 0
[numarcsegments] 0
[numholes] 0
[numblocklabels] 1
0.3 0.3 1 0.1 1 0 0 0 0
[solution]
3
0 0 0
1 0 0
0 1 1
1
0 1 2 0
1
0 3
0
`

func Test_load01(tst *testing.T) {

	chk.PrintTitle("load01")

	sol, err := Load(strings.NewReader(minimal))
	if err != nil {
		tst.Errorf("Load failed: %v", err)
		return
	}

	chk.Float64(tst, "frequency", 1e-12, sol.Frequency, 0)
	chk.Float64(tst, "depth", 1e-12, sol.Depth, 1)
	if sol.Units != post.Meters {
		tst.Errorf("units must be meters, got %v", sol.Units)
	}
	if sol.Problem != post.Planar {
		tst.Errorf("problem must be planar, got %v", sol.Problem)
	}

	chk.IntAssert(len(sol.Blocks), 1)
	chk.Float64(tst, "block mu_x", 1e-12, sol.Blocks[0].MuX, 1)

	chk.IntAssert(len(sol.Circuits), 1)
	if sol.Circuits[0].CircType != post.Series {
		tst.Errorf("circuit type must be series, got %v", sol.Circuits[0].CircType)
	}

	chk.IntAssert(len(sol.Labels), 1)
	chk.IntAssert(sol.Labels[0].BlockType, 0)
	chk.IntAssert(sol.Labels[0].InCircuit, 0)
	chk.Float64(tst, "label dVolts", 1e-12, real(sol.Labels[0].DVolts), 3)

	chk.IntAssert(len(sol.Nodes), 3)
	chk.IntAssert(len(sol.Elems), 1)

	// ElementB has already run inside Load: the ramped potential
	// (0,0,1) over this unit right triangle gives B1=1, B2=0, per the
	// same hand computation post's t_mesh_test.go singleTriangle uses.
	chk.Float64(tst, "B1", 1e-9, real(sol.Elems[0].B1), 1)
	chk.Float64(tst, "B2", 1e-9, real(sol.Elems[0].B2), 0)

	if sol.InTriangle(complex(1.0/3, 1.0/3)) != 0 {
		tst.Errorf("BuildIndex/InTriangle must locate the single element")
	}
}

func Test_load02(tst *testing.T) {

	chk.PrintTitle("load02")

	_, err := Load(strings.NewReader("[format] 3\n"))
	if err == nil {
		tst.Errorf("an unsupported solution format must be rejected")
	}
}
