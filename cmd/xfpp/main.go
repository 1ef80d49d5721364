// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xfpp is a thin CLI over the post-processing query facade,
// in the teacher's single-binary, argument-table style (root main.go).
// Unlike the teacher's MPI-parallel FEM solver, a post-processor
// runs as a single process against one already-solved mesh, so the
// mpi.Start/mpi.Rank wrapping is dropped: there is no parallel domain
// decomposition to coordinate.
package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/temudschin/xfemm/loader"
	"github.com/temudschin/xfemm/post"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	fnamepath, _ := io.ArgToFilename(0, "", ".ans", true)
	mode := io.ArgToString(1, "info")

	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"solution file path", "fnamepath", fnamepath,
		"query mode", "mode", mode,
	))

	f, err := os.Open(fnamepath)
	if err != nil {
		chk.Panic("cannot open %q: %v", fnamepath, err)
	}
	defer f.Close()

	sol, err := loader.Load(f, loader.WithWarnSink(func(msg string) {
		io.PfYel("warning: %v\n", msg)
	}))
	if err != nil {
		chk.Panic("load failed:\n%v", err)
	}

	switch mode {
	case "info":
		runInfo(sol)
	case "point":
		runPoint(sol)
	case "block":
		runBlock(sol)
	case "line":
		runLine(sol)
	case "circuit":
		runCircuit(sol)
	case "age":
		runAGE(sol)
	default:
		chk.Panic("unknown query mode %q (want info|point|block|line|circuit|age)", mode)
	}
}

func runInfo(sol *post.Solution) {
	io.Pf("nodes:    %d\n", sol.NumNodes())
	io.Pf("elements: %d\n", sol.NumElements())
	io.Pf("circuits: %v\n", sol.CircuitNames())
	io.Pf("AGEs:     %v\n", sol.AGENames())
}

func runPoint(sol *post.Solution) {
	x := io.ArgToFloat(2, 0)
	y := io.ArgToFloat(3, 0)
	pv, ok := sol.PointValues(x, y)
	if !ok {
		chk.Panic("(%g,%g) is not inside any element", x, y)
	}
	io.Pf("elem=%d A=%v B=(%v,%v) H=(%v,%v) J=%v energy=%g\n",
		pv.Elem, pv.A, pv.B1, pv.B2, pv.H1, pv.H2, pv.J, pv.Energy)
}

func runBlock(sol *post.Solution) {
	code := post.BlockCode(io.ArgToInt(2, 0))
	v := sol.BlockIntegral(code)
	io.Pf("block integral[%d] = %v\n", code, v)
}

func runLine(sol *post.Solution) {
	code := post.LineCode(io.ArgToInt(2, 0))
	x0 := io.ArgToFloat(3, 0)
	y0 := io.ArgToFloat(4, 0)
	x1 := io.ArgToFloat(5, 0)
	y1 := io.ArgToFloat(6, 0)
	c := &post.Contour{}
	c.Push(complex(x0, y0))
	c.Push(complex(x1, y1))
	v := sol.LineIntegral(code, c)
	io.Pf("line integral[%d] = %v\n", code, v)
}

func runCircuit(sol *post.Solution) {
	name := io.ArgToString(2, "")
	idx := sol.CircuitIndexByName(name)
	if idx < 0 {
		chk.Panic("no such circuit %q", name)
	}
	volts, err := sol.VoltageDrop(idx)
	if err != nil {
		chk.Panic("%v", err)
	}
	flux, err := sol.FluxLinkage(idx)
	if err != nil {
		chk.Panic("%v", err)
	}
	io.Pf("circuit %q: voltsDrop=%v fluxLinkage=%v\n", name, volts, flux)
}

func runAGE(sol *post.Solution) {
	name := io.ArgToString(2, "")
	angle := io.ArgToFloat(3, 0)
	br, bt, errCode := sol.GapFlux(name, angle)
	if errCode != post.AGENoError {
		chk.Panic("%v", errCode)
	}
	tq, _ := sol.GapDCTorque(name)
	w, _ := sol.GapStoredEnergy(name)
	io.Pf("AGE %q @ %g deg: br=%v bt=%v dcTorque=%g storedEnergy=%v\n", name, angle, br, bt, tq, w)
}
