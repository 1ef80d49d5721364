// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// ageFixture builds a two-harmonic AGE with hand-picked coefficients,
// bypassing ComputeHarmonics so the derived-quantity formulas
// (GapFlux, GapDCTorque, ...) can be checked against values worked out
// independently from fpproc.cpp's harmonic-integral formulas.
func ageFixture() *Solution {
	age := AirGapElement{
		Name:           "gap1",
		Ri:             0.09,
		Ro:             0.11,
		Depth:          1,
		TotalArcLength: 360,
		NH:             []int{0, 1},
		Brc:            []float64{0.2, 2},
		Brs:            []float64{0.1, 1},
		Btc:            []float64{0.3, 3},
		Bts:            []float64{0.05, 0.5},
	}
	return &Solution{AGEs: []AirGapElement{age}}
}

func Test_gapflux01(tst *testing.T) {

	chk.PrintTitle("gapflux01")

	s := ageFixture()
	br, bt, errCode := s.GapFlux("gap1", 0)
	if errCode != AGENoError {
		tst.Errorf("GapFlux failed: %v", errCode)
		return
	}
	chk.Float64(tst, "br", 1e-9, real(br), 2.2)
	chk.Float64(tst, "bt", 1e-9, real(bt), 3.3)

	_, _, errCode = s.GapFlux("missing", 0)
	if errCode != AGENameNotFound {
		tst.Errorf("an unknown AGE name must report AGENameNotFound")
	}
}

func Test_gaptorque01(tst *testing.T) {

	chk.PrintTitle("gaptorque01")

	s := ageFixture()

	tq, errCode := s.GapDCTorque("gap1")
	if errCode != AGENoError {
		tst.Errorf("GapDCTorque failed: %v", errCode)
		return
	}
	chk.Float64(tst, "DC torque at f=0", 1e-6, tq, 164125)

	zero, errCode := s.Gap2XTorque("gap1")
	if errCode != AGENoError {
		tst.Errorf("Gap2XTorque failed: %v", errCode)
		return
	}
	chk.Float64(tst, "2x torque at f=0 must vanish", 1e-12, real(zero), 0)

	s.Frequency = 60
	tq2, errCode := s.Gap2XTorque("gap1")
	if errCode != AGENoError {
		tst.Errorf("Gap2XTorque failed: %v", errCode)
		return
	}
	chk.Float64(tst, "2x torque at f=60", 1e-6, real(tq2), 82062.5)
}

func Test_gapforce01(tst *testing.T) {

	chk.PrintTitle("gapforce01")

	s := ageFixture()

	fx, fy, errCode := s.GapDCForce("gap1")
	if errCode != AGENoError {
		tst.Errorf("GapDCForce failed: %v", errCode)
		return
	}
	chk.Float64(tst, "DC force fx", 1e-6, real(fx), -53125)
	chk.Float64(tst, "DC force fy", 1e-6, real(fy), 162500)

	fx0, fy0, errCode := s.Gap2XForce("gap1")
	if errCode != AGENoError {
		tst.Errorf("Gap2XForce failed: %v", errCode)
		return
	}
	chk.Float64(tst, "2x force fx at f=0 must vanish", 1e-12, real(fx0), 0)
	chk.Float64(tst, "2x force fy at f=0 must vanish", 1e-12, real(fy0), 0)

	s.Frequency = 60
	fx2, fy2, errCode := s.Gap2XForce("gap1")
	if errCode != AGENoError {
		tst.Errorf("Gap2XForce failed: %v", errCode)
		return
	}
	chk.Float64(tst, "2x force fx at f=60", 1e-6, real(fx2), -26562.5)
	chk.Float64(tst, "2x force fy at f=60", 1e-6, real(fy2), 81250)
}

func Test_gapincremental01(tst *testing.T) {

	chk.PrintTitle("gapincremental01")

	s := ageFixture()
	age := &s.AGEs[0]
	age.PrevBrc = append([]float64{}, age.Brc...)
	age.PrevBrs = append([]float64{}, age.Brs...)
	age.PrevBtc = append([]float64{}, age.Btc...)
	age.PrevBts = append([]float64{}, age.Bts...)

	tq, errCode := s.GapIncrementalTorque("gap1")
	if errCode != AGENoError {
		tst.Errorf("GapIncrementalTorque failed: %v", errCode)
		return
	}
	chk.Float64(tst, "incremental torque", 1e-6, real(tq), 328250)

	s.Frequency = 60
	fx, fy, errCode := s.GapIncrementalForce("gap1")
	if errCode != AGENoError {
		tst.Errorf("GapIncrementalForce failed: %v", errCode)
		return
	}
	chk.Float64(tst, "incremental force fx", 1e-6, real(fx), -106250)
	chk.Float64(tst, "incremental force fy", 1e-6, real(fy), 325000)

	age.PrevBrc = age.PrevBrc[:1]
	_, _, errCode = s.GapIncrementalForce("gap1")
	if errCode != AGENoHarmonics {
		tst.Errorf("a mismatched previous-harmonic length must report AGENoHarmonics")
	}
}

func Test_gapstoredenergy01(tst *testing.T) {

	chk.PrintTitle("gapstoredenergy01")

	s := ageFixture()
	w, errCode := s.GapStoredEnergy("gap1")
	if errCode != AGENoError {
		tst.Errorf("GapStoredEnergy failed: %v", errCode)
		return
	}
	chk.Float64(tst, "stored energy", 1e-6, real(w), 36075)
}
