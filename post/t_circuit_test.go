// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// seriesCircuitSolution builds a single-triangle mesh whose only label
// belongs to a series circuit carrying a solid (non-stranded) region
// with a known driving voltage gradient.
func seriesCircuitSolution() *Solution {
	s := singleTriangle()
	s.Circuits = []CircuitProperty{{Name: "c1", CircType: Series}}
	s.Labels[0].InCircuit = 0
	s.Labels[0].DVolts = complex(3, 0)
	s.Labels[0].Turns = 2
	return s
}

func Test_voltagedrop01(tst *testing.T) {

	chk.PrintTitle("voltagedrop01")

	s := seriesCircuitSolution()

	v, err := s.VoltageDrop(0)
	if err != nil {
		tst.Errorf("VoltageDrop failed: %v", err)
		return
	}
	// planar series: volts = -Depth*DVolts*Turns = -1*3*2
	chk.Float64(tst, "volts", 1e-9, real(v), -6)
	chk.Float64(tst, "volts.imag", 1e-9, imag(v), 0)

	_, err = s.VoltageDrop(5)
	if err == nil {
		tst.Errorf("an out-of-range circuit index must error")
	}
}

func Test_fluxlinkage01(tst *testing.T) {

	chk.PrintTitle("fluxlinkage01")

	s := seriesCircuitSolution()

	flux, err := s.FluxLinkage(0)
	if err != nil {
		tst.Errorf("FluxLinkage failed: %v", err)
		return
	}
	// zero frequency, zero prescribed current, series circuit of a
	// solid planar region: falls back to strandedLinkage's
	// flux*turns/area, with flux = PlnInt(area,A,1)*Depth = 1/6 for
	// this mesh's A ramp, area = 0.5, turns = 2.
	chk.Float64(tst, "flux", 1e-9, real(flux), 2.0/3.0)
}
