// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"math"

	"github.com/temudschin/xfemm/material"
)

// GetMu returns the complex effective relative permeability tensor
// (mu1 along the local x/r axis, mu2 along y/z) for element k,
// evaluated at the block's actual operating point, chaining through
// AECF exactly once per spec.md's Design Notes.
//
// bmag is |B| at the evaluation point, used to look up the nonlinear
// table when present; it is ignored for linear and wire-homogenized
// blocks.
func (s *Solution) GetMu(k int, bmag float64) (mu1, mu2 complex128) {
	el := &s.Elems[k]
	lbl := &s.Labels[el.Lbl]
	aecf := material.AECF(el.Ctr, s.ExtZo, s.ExtRo, s.ExtRi, lbl.IsExternal && s.Problem == Axisymmetric)

	// wire/lamination homogenized regions bypass the block property
	// table entirely and use the label's own precomputed mu.
	if lbl.FillFactor >= 0 {
		return lbl.Mu / complex(aecf, 0), lbl.Mu / complex(aecf, 0)
	}

	blk := &s.Blocks[el.Blk]
	if blk.Curve != nil {
		h := blk.Curve.H(bmag)
		var m complex128
		if bmag > 0 {
			m = complex(bmag/(h*mu0Const), 0)
		} else {
			m = complex(blk.Curve.DHDB(0), 0)
			if real(m) != 0 {
				m = complex(1/(real(m)*mu0Const), 0)
			} else {
				m = complex(1e9, 0) // effectively infinite permeability at B=0, dH/dB=0
			}
		}
		return m / complex(aecf, 0), m / complex(aecf, 0)
	}

	switch el.wireOrLinearKind(blk) {
	case LaminatedX:
		mu1 = material.LaminatedMu(blk.MuX, s.Frequency, blk.Cduct, blk.ThetaHx, blk.LamD, blk.LamFill)
		mu2 = material.LaminatedMu(blk.MuY, s.Frequency, blk.Cduct, blk.ThetaHy, blk.LamD, blk.LamFill)
	default:
		mu1 = complex(blk.MuX, 0)
		mu2 = complex(blk.MuY, 0)
	}
	return mu1 / complex(aecf, 0), mu2 / complex(aecf, 0)
}

const mu0Const = 4e-7 * math.Pi

// wireOrLinearKind classifies a block property for GetMu dispatch,
// following the tagged-enum replacement for the original's LamType
// integer, per spec.md Design Notes.
func (el *MeshElement) wireOrLinearKind(blk *BlockProperty) WireType {
	if blk.LamD > 0 && blk.LamFill < 1 {
		return LaminatedX
	}
	return Linear
}

// HomogenizeLabel computes and stores a block label's homogenized
// effective conductivity and permeability at load time, per spec.md
// section 4.2's wire/stranded homogenization table. Called once per
// label during loading; FillFactor must already be set.
func HomogenizeLabel(lbl *BlockLabel, blk *BlockProperty, freq float64) {
	if lbl.FillFactor < 0 {
		return // solid, nothing to homogenize
	}
	switch blk.Wire {
	case RectFoil:
		radiusOrThickness := blk.WireD * 1e-3
		u, o := material.FoilWireHomogenize(blk.Cduct*1e6, freq, radiusOrThickness, lbl.FillFactor)
		lbl.Mu = u
		lbl.O = o / 1e6
	default: // MagnetWire, Stranded, Litz
		radius := blk.WireD * 1e-3 / 2
		u, o := material.RoundWireHomogenize(blk.Cduct*1e6, freq, radius, lbl.FillFactor)
		lbl.Mu = u
		if freq == 0 {
			energyCoeff := material.RoundWireZeroFreqEnergyCoeff(radius, lbl.FillFactor)
			lbl.O = complex(real(o)/1e6, energyCoeff)
		} else {
			lbl.O = o / 1e6
		}
	}
}

