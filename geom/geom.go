// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the complex-plane geometry primitives shared
// by the mesh, field-interpolation, and integration engines: triangle
// area and barycentric coefficients, circumradius, point-in-triangle
// tests, and circular-arc helpers for contour bending and closest-point
// queries.
package geom

import "math/cmplx"

// Tiny is the guard radius used throughout the engine to avoid division
// by (near) zero near the axisymmetric centerline and at degenerate
// triangle vertices. Preserve this value; several formulas are only
// accurate to the precision this guard was tuned against.
const Tiny = 1e-6

// BaryCoeffs holds the affine basis coefficients a_i, b_i, c_i of a
// triangle with vertices p0,p1,p2 (taken counter-clockwise), such that
// the basis function of vertex i is
//
//	N_i(p) = (a_i + b_i*Re(p) + c_i*Im(p)) / Delta
//
// with N_i = 1 at vertex i, 0 at the other two, and N_0+N_1+N_2 = 1.
//
// Delta = b0*c1 - b1*c0 is twice the signed triangle area.
type BaryCoeffs struct {
	A, B, C [3]float64
	Delta   float64
}

// Bary computes the barycentric basis coefficients for a triangle with
// the given vertices, following the standard FEM affine-shape-function
// construction used throughout the post-processor.
func Bary(p0, p1, p2 complex128) BaryCoeffs {
	x := [3]float64{real(p0), real(p1), real(p2)}
	y := [3]float64{imag(p0), imag(p1), imag(p2)}
	var o BaryCoeffs
	o.B[0] = y[1] - y[2]
	o.B[1] = y[2] - y[0]
	o.B[2] = y[0] - y[1]
	o.C[0] = x[2] - x[1]
	o.C[1] = x[0] - x[2]
	o.C[2] = x[1] - x[0]
	o.A[0] = x[1]*y[2] - x[2]*y[1]
	o.A[1] = x[2]*y[0] - x[0]*y[2]
	o.A[2] = x[0]*y[1] - x[1]*y[0]
	o.Delta = o.B[0]*o.C[1] - o.B[1]*o.C[0]
	return o
}

// Area returns the (unsigned) area of the triangle p0,p1,p2.
func Area(p0, p1, p2 complex128) float64 {
	bc := Bary(p0, p1, p2)
	a := bc.Delta / 2
	if a < 0 {
		return -a
	}
	return a
}

// Centroid returns the arithmetic mean of the three vertices.
func Centroid(p0, p1, p2 complex128) complex128 {
	return (p0 + p1 + p2) / 3
}

// CircumRadiusSqr returns max_i |ctr - p_i|^2 for the three vertices,
// the squared radius of the smallest circle centred at ctr that
// contains the triangle. This, not the true circumradius, is what the
// banded InTriangle search uses to reject candidates early.
func CircumRadiusSqr(ctr, p0, p1, p2 complex128) float64 {
	r := sqrAbs(ctr - p0)
	if v := sqrAbs(ctr - p1); v > r {
		r = v
	}
	if v := sqrAbs(ctr - p2); v > r {
		r = v
	}
	return r
}

func sqrAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// PointInTriangle reports whether p lies within (or on the boundary
// of) the triangle p0,p1,p2, using the affine basis functions: p is
// inside iff all three basis functions evaluate in [0,1] (equivalently,
// all three corresponding oriented-edge tests agree in sign with the
// triangle's own orientation, which is what this computation amounts
// to without needing to special-case clockwise input).
func PointInTriangle(p, p0, p1, p2 complex128) bool {
	bc := Bary(p0, p1, p2)
	if bc.Delta == 0 {
		return false
	}
	x, y := real(p), imag(p)
	const eps = 1e-12
	for i := 0; i < 3; i++ {
		l := (bc.A[i] + bc.B[i]*x + bc.C[i]*y) / bc.Delta
		if l < -eps {
			return false
		}
	}
	return true
}

// Abs2 returns |z|^2 without the square root, for hot comparison paths.
func Abs2(z complex128) float64 { return sqrAbs(z) }

// ArgDeg returns the angle of z in degrees, in [0,360).
func ArgDeg(z complex128) float64 {
	a := cmplx.Phase(z) * 180 / 3.14159265358979323846
	if a < 0 {
		a += 360
	}
	return a
}
