// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"
	"math/cmplx"
)

const mu0 = 4e-7 * math.Pi

// LaminatedMu computes the frequency-dependent effective relative
// permeability of a laminated (or solid, LamFill=1) linear anisotropic
// block along one axis, per spec.md section 4.2.
//
//	mu_fd = mu * exp(-i*thetaH*pi/180)
//	ds    = sqrt(2 / (0.4*pi*omega*sigma*mu))
//	K     = exp(-i*thetaH*pi/360) * (1+i) * d_lam*1e-3 / (2*ds)
//	mu_eff = mu_fd * tanh(K)/K * LamFill + (1-LamFill)     (sigma>0)
//	       = mu_fd             * LamFill + (1-LamFill)     (sigma=0)
func LaminatedMu(mu, freq, sigmaMSm, thetaHdeg, lamDmm, lamFill float64) complex128 {
	if freq == 0 {
		return complex(mu, 0)
	}
	omega := 2 * math.Pi * freq
	thetaH := thetaHdeg * math.Pi / 180
	muFd := complex(mu, 0) * cmplx.Exp(complex(0, -thetaH))
	sigma := sigmaMSm * 1e6
	if sigma <= 0 {
		return muFd*complex(lamFill, 0) + complex(1-lamFill, 0)
	}
	ds := cmplx.Sqrt(complex(2/(0.4*math.Pi*omega*sigmaMSm*mu), 0))
	k := cmplx.Exp(complex(0, -thetaH/2)) * complex(1, 1) * complex(lamDmm*1e-3, 0) / (complex(2, 0) * ds)
	tanhFactor := cmplx.Tanh(k) / k
	return muFd*tanhFactor*complex(lamFill, 0) + complex(1-lamFill, 0)
}

// RoundWireHomogenize computes the homogenized effective relative
// permeability uFd and effective conductivity oFd (siemens/meter, the
// caller divides by 1e6 for MS/m) of a bundle of round wires (magnet
// wire, stranded, or litz), per spec.md section 4.2's closed-form
// fits.
//
// sigmaSm is the conductor's bulk conductivity in siemens/meter,
// radiusM the individual strand radius in meters, fill the
// block-area fill factor (0,1].
func RoundWireHomogenize(sigmaSm, freq, radiusM, fill float64) (uFd, oFd complex128) {
	omega := 2 * math.Pi * freq
	w := complex(omega*sigmaSm*mu0*radiusM*radiusM/2, 0)
	dd := 1.6494541661869013 * radiusM / math.Sqrt(fill)

	c1 := 0.7756067409818643 + fill*(0.6873854335408803+fill*(0.06841584481674128-0.07143732702512284*fill))
	c2 := 1.5 * fill / c1

	sc1iw := cmplx.Sqrt(complex(c1, 0) * complex(0, 1) * w)
	if sc1iw == 0 {
		uFd = complex(1, 0)
	} else {
		uFd = complex(c2, 0)*cmplx.Tanh(sc1iw)/sc1iw + complex(1-c2, 0)
	}

	c3 := 0.8824642871525136 + fill*(-0.008605512994838827+fill*(0.7223208744682307-0.2157183942377177*fill))
	c4 := math.Log(1.5299240194394943/math.Sqrt(fill)) - c3/3

	sc3iw := cmplx.Sqrt(complex(c3, 0) * complex(0, 1) * w)
	xcoth := complex(1, 0) // x*coth(x) tends to 1 as x -> 0 (f=0)
	if sc3iw != 0 {
		xcoth = sc3iw / cmplx.Tanh(sc3iw)
	}
	denom := complex(0, 1)*complex(c4, 0)*w + xcoth
	var oFdBase complex128
	if denom != 0 {
		oFdBase = complex(sigmaSm*fill, 0) / denom
	}
	correction := complex(0, 1) * complex(omega, 0) * uFd * complex(mu0, 0) * complex(dd*dd/12, 0)
	var inv complex128
	if oFdBase != 0 {
		inv = 1/oFdBase - correction
	}
	if inv != 0 {
		oFd = 1 / inv
	}
	return
}

// RoundWireZeroFreqEnergyCoeff returns the Im(o) local-energy
// coefficient stored at f=0 for round wires, per spec.md section 4.2:
//
//	Im(o) = mu0*R^2/2 * ln(1.5299.../sqrt(fill))/fill - mu0*dd^2/12
func RoundWireZeroFreqEnergyCoeff(radiusM, fill float64) float64 {
	dd := 1.6494541661869013 * radiusM / math.Sqrt(fill)
	return mu0*radiusM*radiusM/2*math.Log(1.5299240194394943/math.Sqrt(fill))/fill - mu0*dd*dd/12
}

// FoilWireHomogenize applies the same family of fits to rectangular
// foil (wire type RectFoil), using the foil pitch dd = d/sqrt(fill) in
// place of the round-wire derivation, per spec.md section 4.2.
func FoilWireHomogenize(sigmaSm, freq, foilThicknessM, fill float64) (uFd, oFd complex128) {
	dd := foilThicknessM / math.Sqrt(fill)
	omega := 2 * math.Pi * freq
	if omega == 0 {
		return complex(1, 0), complex(sigmaSm*fill, 0)
	}
	skin := cmplx.Sqrt(complex(2/(0.4*math.Pi*omega*sigmaSm), 0))
	k := complex(1, 1) * complex(dd*1e-3, 0) / (complex(2, 0) * skin)
	uFd = cmplx.Tanh(k) / k
	oFd = complex(sigmaSm*fill, 0) * uFd
	return
}
