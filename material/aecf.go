// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import "math/cmplx"

// AECF returns the axisymmetric external-region (Kelvin-transformation)
// correction factor for an element whose centroid is ctr, given the
// external-region parameters read from the solution header. Every
// permeability consumer used inside an integral must divide its
// permeability by this factor exactly once; see spec.md Design Notes.
//
// When isExternal is false the correction is the identity (1).
func AECF(ctr complex128, extZo, extRo, extRi float64, isExternal bool) float64 {
	if !isExternal {
		return 1
	}
	r := cmplx.Abs(ctr - complex(0, extZo))
	if extRo == 0 {
		return 1
	}
	return r * r * extRi / (extRo * extRo * extRo)
}
