// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package post implements the solved-mesh data model and the
// post-processing engine operating on it: field interpolation, block
// and line integrals, AGE harmonic decomposition, the circuit engine,
// and the axisymmetric external-region correction. It consumes a
// Solution built by package loader and exposes the query facade
// (query.go) as the only supported external surface.
package post

import (
	"github.com/cpmech/gosl/chk"
	"github.com/temudschin/xfemm/geom"
	"github.com/temudschin/xfemm/material"
)

// ProblemType is the tagged enum replacing the original's runtime
// problem-type flag.
type ProblemType int

const (
	Planar ProblemType = iota
	Axisymmetric
)

// WireType enumerates the lamination/wire homogenization kinds a
// BlockProperty can declare, replacing the original's integer LamType
// with a pure-match-dispatched enum per spec.md Design Notes.
type WireType int

const (
	Linear WireType = iota
	LaminatedX
	LaminatedY
	MagnetWire // round magnet wire, homogenized
	Stranded   // stranded, non-litz
	Litz
	RectFoil
)

// CircuitKind is the tagged enum for CircuitProperty.CircType.
type CircuitKind int

const (
	Parallel CircuitKind = iota
	Series
	PrescribedCurrent
)

// BdryFormat is the AGE periodicity kind.
type BdryFormat int

const (
	Periodic BdryFormat = iota
	Antiperiodic
)

// LengthUnit enumerates the solution file's coordinate unit.
type LengthUnit int

const (
	Inches LengthUnit = iota
	Millimeters
	Centimeters
	Meters
	Mils
	Microns
)

// LengthConv gives the user-unit-to-meter conversion factor, indexed by
// LengthUnit. Node coordinates are stored in user units and multiplied
// by this factor at the point of use (never pre-converted), per
// spec.md Design Notes ("Float unit conversions").
var LengthConv = [...]float64{
	Inches:      0.0254,
	Millimeters: 0.001,
	Centimeters: 0.01,
	Meters:      1.0,
	Mils:        0.0254e-3,
	Microns:     1.0e-6,
}

// MeshNode is a solved mesh vertex.
type MeshNode struct {
	X, Y     float64    // user-unit coordinates
	A        complex128 // magnetic vector potential (planar: per-unit-depth; axi: 2*pi*r*A_phi)
	APrev    complex128 // previous-solution A, for incremental problems
	HasAPrev bool
	Msk      float64 // Henrotte virtual-work node weighting
	BC       int     // boundary-condition marker (0 = none)

	PointSource bool // node carries a point current source (disables B smoothing)
}

// Pos returns the node's position as a complex number.
func (n *MeshNode) Pos() complex128 { return complex(n.X, n.Y) }

// MeshElement is a solved triangular element.
type MeshElement struct {
	P   [3]int // node indices, counter-clockwise
	Lbl int    // block-label index
	Blk int    // block-property index

	Ctr  complex128 // centroid
	Rsqr float64    // squared bounding radius from Ctr

	B1, B2   complex128 // per-element flux density
	B1p, B2p float64    // previous-solution flux density (incremental)

	// smoothed nodal B, one value per local vertex (indices line up with P)
	B1n, B2n [3]complex128

	MagDirDeg float64 // magnetization direction, degrees (resolved at load)

	Nbr [3]int // neighbour element index across edge opposite P[i]; -1 if boundary
	Jp  complex128
	HasJp bool
}

// BlockLabel is a region marker placed by the geometry editor.
type BlockLabel struct {
	X, Y        float64
	BlockType   int // index into BlockProperty table, -1 if none
	MaxArea     float64
	InCircuit   int // index into CircuitProperty table, -1 if none
	MagDirDeg   float64
	MagDirExpr  string // non-empty selects expression evaluation over MagDirDeg
	Group       int
	Turns       int
	IsExternal  bool
	IsDefault   bool
	FillFactor  float64 // <0 solid, >=0 stranded
	O           complex128 // homogenized effective conductivity, MS/m
	Mu          complex128 // homogenized effective relative permeability
	Selected    bool

	// circuit-solved unknowns, read through from the solution file: a
	// solid region's driving voltage gradient (dVolts) or a stranded
	// region's prescribed current density (Jlbl), per spec.md section
	// 4.7's circuit model.
	DVolts complex128
	Jlbl   complex128
}

// BHPoint is one row of a nonlinear B-H table.
type BHPoint struct{ B, H float64 }

// BlockProperty is a material record.
type BlockProperty struct {
	Name string

	MuX, MuY float64 // linear anisotropic relative permeability
	Hc       float64 // PM coercivity, A/m
	Hx, Hy   float64 // PM direction components at reference magnetization

	Jsrc complex128 // source current density, MA/m^2
	Cduct float64   // conductivity, MS/m

	LamD    float64 // lamination thickness, mm
	LamFill float64 // lamination stacking fill factor
	ThetaHn, ThetaHx, ThetaHy float64 // hysteresis lag angles, degrees

	Wire      WireType
	WireD     float64 // wire diameter, mm
	NStrands  int

	BH []BHPoint // nonlinear table, nil if linear

	MuMax bool // true when a DC-incremental MuMax marker is present; the loader does not set it
	Nrg   float64 // co-energy of PM at H_c; the loader does not compute it (stays 0)

	Curve *material.BHCurve // derived nonlinear interpolant, nil if linear
}

// BoundaryProperty, PointProperty, CircuitProperty are bags of scalars
// consumed by the integrators and circuit engine; fields beyond what
// this module exercises are intentionally omitted (the loader retains
// unknown columns only insofar as they are read-through, per spec.md
// "PBC block (read-through, not used)").
type BoundaryProperty struct {
	Name string
}

type PointProperty struct {
	Name string
}

type CircuitProperty struct {
	Name     string
	CircType CircuitKind
	Amps     complex128 // prescribed total current
}

// AirGapElement is an annular Fourier-coupled gap between rotor and
// stator meshes.
type AirGapElement struct {
	Name            string
	Ri, Ro          float64
	Center          complex128
	TotalArcLength  float64 // degrees
	TotalArcElements int
	Format          BdryFormat
	InnerShift      float64
	OuterShift      float64
	Depth           float64

	Pads []AGEPad

	NH               []int        // harmonic order at index j
	Brc, Brs, Btc, Bts []float64  // harmonic coefficients, size len(NH)
	PrevBrc, PrevBrs, PrevBtc, PrevBts []float64

	Br, Bt []complex128 // per-pad reconstructed values, size TotalArcElements
	Aco    complex128   // mean gap A (n=0 harmonic of the reconstructed A)
}

// CQuadPoint is one of the four weighted-node corners of an AGE pad.
type CQuadPoint struct {
	Node   int
	Weight float64
}

// AGEPad is one quadrilateral subdivision of an AGE annulus: Inner[0],
// Inner[1] are the n0,n1 corner nodes at radius Ri; Outer[0], Outer[1]
// are the n2,n3 corners at radius Ro, per fpproc.cpp's quadNode. The
// remaining slots are unused by the current harmonic reconstruction.
type AGEPad struct {
	Inner [4]CQuadPoint
	Outer [4]CQuadPoint
}

// Solution is the complete in-memory solved mesh, owned exclusively by
// the post-processor. It is built once by package loader and mutated
// only as spec.md §3 "Lifecycle" allows.
type Solution struct {
	Format      float64
	Frequency   float64
	Depth       float64 // meters
	Precision   float64
	Units       LengthUnit
	Problem     ProblemType
	PrevType    int // 0 = none, 1 = full incremental, 2 = frozen-permeability

	ExtZo, ExtRo, ExtRi float64 // axisymmetric external-region (Kelvin) parameters

	Points    []PointProperty
	Bdry      []BoundaryProperty
	Blocks    []BlockProperty
	Circuits  []CircuitProperty

	Nodes []MeshNode
	Elems []MeshElement
	Labels []BlockLabel
	AGEs  []AirGapElement

	// derived spatial index
	Adjacency [][]int // node index -> element indices touching it

	lastTriangle int // "last found" hint for InTriangle, one per Solution

	bins *nodeBins  // closestNode support (gosl/gm.Bins backed)
	arcs []geom.Arc // retained arc geometry, for closestArc
}

func (s *Solution) lengthConv() float64 {
	return LengthConv[s.Units]
}

// checkElem validates an element index and returns chk.Err on failure,
// matching the teacher's convention of returning wrapped errors rather
// than panicking on caller-supplied indices.
func (s *Solution) checkElem(k int) error {
	if k < 0 || k >= len(s.Elems) {
		return chk.Err("element index %d out of range [0,%d)", k, len(s.Elems))
	}
	return nil
}
