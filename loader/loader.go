// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader parses the line-oriented ASCII solution file format
// (`.ans`-style) into a *post.Solution, following the teacher's
// "read a resource, return a validated struct, propagate a
// chk.Err-wrapped error" convention (inp.ReadMat, inp.ReadSim).
package loader

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/temudschin/xfemm/geom"
	"github.com/temudschin/xfemm/material"
	"github.com/temudschin/xfemm/post"
)

// Option configures a Load call, functional-options style borrowed
// from fem.NewFEM's optional-stages convention.
type Option func(*config)

type config struct {
	warn      func(string)
	prevSoln  io.Reader
	evaluator material.AngleEvaluator
}

// WithWarnSink installs a callback for non-fatal parse warnings
// (malformed rows, multiply-defined regions), per spec.md section 7.
func WithWarnSink(f func(string)) Option {
	return func(c *config) { c.warn = f }
}

// WithIncremental stores a previous-solution reader in the load
// configuration. Load does not read it: no previous-solution data
// (node APrev, AGE PrevBrc et al.) is filled from it.
func WithIncremental(prevSolutionReader io.Reader) Option {
	return func(c *config) { c.prevSoln = prevSolutionReader }
}

// WithExpressionEvaluator overrides the magnetization-direction
// expression evaluator (defaults to a govaluate-backed one).
func WithExpressionEvaluator(ev material.AngleEvaluator) Option {
	return func(c *config) { c.evaluator = ev }
}

// Load parses r into a fully indexed, homogenized *post.Solution ready
// for query-facade use: BuildIndex, HomogenizeLabel, NodalB and
// ComputeHarmonics are all run before Load returns.
func Load(r io.Reader, opts ...Option) (*post.Solution, error) {
	cfg := &config{warn: func(string) {}}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.evaluator == nil {
		cfg.evaluator = material.NewGovaluateAngleEvaluator()
	}

	p := &parser{sc: bufio.NewScanner(r), warn: cfg.warn}
	p.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sol := &post.Solution{}

	if err := p.parseHeader(sol); err != nil {
		return nil, err
	}
	sol.Depth *= post.LengthConv[sol.Units] // header depth is in file length units
	if err := p.parseBlocks(sol); err != nil {
		return nil, err
	}
	if err := p.parseGeometry(sol); err != nil {
		return nil, err
	}
	if err := p.parseSolution(sol); err != nil {
		return nil, err
	}

	sol.BuildIndex()
	warnedMulti := false // multiply-defined regions: warn once, select both labels
	for i := range sol.Labels {
		k := sol.InTriangle(complex(sol.Labels[i].X, sol.Labels[i].Y))
		if k < 0 || sol.Elems[k].Lbl == i || sol.Elems[k].Lbl < 0 || sol.Elems[k].Lbl >= len(sol.Labels) {
			continue
		}
		if !warnedMulti {
			cfg.warn(fmt.Sprintf("multiply-defined region: block labels %d and %d", i, sol.Elems[k].Lbl))
			warnedMulti = true
		}
		sol.Labels[i].Selected = true
		sol.Labels[sol.Elems[k].Lbl].Selected = true
	}
	if err := resolveMagnetization(sol, cfg.evaluator); err != nil {
		return nil, err
	}
	computeFillFactors(sol)
	for i := range sol.Labels {
		lbl := &sol.Labels[i]
		if lbl.BlockType < 0 || lbl.BlockType >= len(sol.Blocks) {
			continue
		}
		post.HomogenizeLabel(lbl, &sol.Blocks[lbl.BlockType], sol.Frequency)
	}
	for k := range sol.Elems {
		sol.ElementB(k)
	}
	sol.NodalB()
	for i := range sol.AGEs {
		if err := sol.ComputeHarmonics(i); err != nil {
			return nil, err
		}
	}
	return sol, nil
}

// parser wraps a line scanner with the tokenizing helpers the format
// needs; each parse* method consumes exactly its own section.
type parser struct {
	sc   *bufio.Scanner
	warn func(string)
	line string
}

func (p *parser) next() bool {
	for p.sc.Scan() {
		p.line = strings.TrimSpace(p.sc.Text())
		if p.line != "" {
			return true
		}
	}
	return false
}

func (p *parser) fields() []string { return strings.Fields(p.line) }

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// parseHeader consumes the `[key] value` header lines up to (but not
// including) the first `<begin...>` or `[num...]` line, per spec.md
// section 6.
func (p *parser) parseHeader(sol *post.Solution) error {
	for p.next() {
		if strings.HasPrefix(p.line, "<begin") || strings.HasPrefix(p.line, "[num") {
			return nil
		}
		key, val, ok := splitBracketKV(p.line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "format":
			sol.Format = parseFloat(val)
			if sol.Format != 4.0 {
				p.warn(fmt.Sprintf("unsupported solution format %g", sol.Format))
				return chk.Err("unsupported solution format %g", sol.Format)
			}
		case "frequency":
			sol.Frequency = parseFloat(val)
		case "depth":
			sol.Depth = parseFloat(val)
		case "precision":
			sol.Precision = parseFloat(val)
		case "extzo":
			sol.ExtZo = parseFloat(val)
		case "extro":
			sol.ExtRo = parseFloat(val)
		case "extri":
			sol.ExtRi = parseFloat(val)
		case "prevtype":
			sol.PrevType = parseInt(val)
		case "lengthunits":
			sol.Units = parseLengthUnit(val)
		case "problemtype":
			if strings.EqualFold(val, "axisymmetric") {
				sol.Problem = post.Axisymmetric
			} else {
				sol.Problem = post.Planar
			}
		}
	}
	return chk.Err("solution file ended before geometry/property section")
}

func splitBracketKV(line string) (key, val string, ok bool) {
	if !strings.HasPrefix(line, "[") {
		return "", "", false
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[1:end])
	val = strings.TrimSpace(line[end+1:])
	return key, val, true
}

func parseLengthUnit(s string) post.LengthUnit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "millimeters":
		return post.Millimeters
	case "centimeters":
		return post.Centimeters
	case "meters":
		return post.Meters
	case "mils":
		return post.Mils
	case "microns":
		return post.Microns
	default:
		return post.Inches
	}
}

// parseBlocks consumes every <beginpoint>/<beginbdry>/<beginblock>/
// <begincircuit> section, in any order, stopping at the first
// [numpoints] line.
func (p *parser) parseBlocks(sol *post.Solution) error {
	for {
		if strings.HasPrefix(p.line, "[num") {
			return nil
		}
		switch {
		case strings.HasPrefix(p.line, "<beginpoint>"):
			sol.Points = append(sol.Points, post.PointProperty{})
			if err := p.skipToEnd("<endpoint>"); err != nil {
				return err
			}
		case strings.HasPrefix(p.line, "<beginbdry>"):
			sol.Bdry = append(sol.Bdry, post.BoundaryProperty{})
			if err := p.skipToEnd("<endbdry>"); err != nil {
				return err
			}
		case strings.HasPrefix(p.line, "<beginblock>"):
			blk, err := p.parseBlockProperty()
			if err != nil {
				return err
			}
			sol.Blocks = append(sol.Blocks, *blk)
		case strings.HasPrefix(p.line, "<begincircuit>"):
			circ, err := p.parseCircuitProperty()
			if err != nil {
				return err
			}
			sol.Circuits = append(sol.Circuits, *circ)
		default:
			// unrecognized header/preamble line, skip.
		}
		if !p.next() {
			return chk.Err("solution file ended inside property section")
		}
	}
}

func (p *parser) skipToEnd(endTag string) error {
	for p.next() {
		if strings.HasPrefix(p.line, endTag) {
			return nil
		}
	}
	return chk.Err("unterminated block, expected %s", endTag)
}

func (p *parser) parseBlockProperty() (*post.BlockProperty, error) {
	blk := &post.BlockProperty{}
	for p.next() {
		if strings.HasPrefix(p.line, "<endblock>") {
			return blk, nil
		}
		key, val, ok := splitAngleKV(p.line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "blockname":
			blk.Name = strings.Trim(val, "\"")
		case "mu_x":
			blk.MuX = parseFloat(val)
		case "mu_y":
			blk.MuY = parseFloat(val)
		case "h_c":
			blk.Hc = parseFloat(val)
		case "h_x":
			blk.Hx = parseFloat(val)
		case "h_y":
			blk.Hy = parseFloat(val)
		case "j_re":
			blk.Jsrc = complex(parseFloat(val), imag(blk.Jsrc))
		case "j_im":
			blk.Jsrc = complex(real(blk.Jsrc), parseFloat(val))
		case "sigma":
			blk.Cduct = parseFloat(val)
		case "lam_d":
			blk.LamD = parseFloat(val)
		case "lamfill":
			blk.LamFill = parseFloat(val)
		case "theta_hn":
			blk.ThetaHn = parseFloat(val)
		case "theta_hx":
			blk.ThetaHx = parseFloat(val)
		case "theta_hy":
			blk.ThetaHy = parseFloat(val)
		case "wiretype":
			blk.Wire = post.WireType(parseInt(val))
		case "wire_d":
			blk.WireD = parseFloat(val)
		case "nstrands":
			blk.NStrands = parseInt(val)
		case "bhpoints":
			n := parseInt(val)
			for i := 0; i < n; i++ {
				if !p.next() {
					return nil, chk.Err("truncated BH table")
				}
				f := p.fields()
				if len(f) < 2 {
					p.warn("malformed BH row: " + p.line)
					continue
				}
				blk.BH = append(blk.BH, post.BHPoint{B: parseFloat(f[0]), H: parseFloat(f[1])})
			}
			if len(blk.BH) > 0 {
				curve, err := material.NewBHCurve(bhPairs(blk.BH))
				if err != nil {
					return nil, err
				}
				blk.Curve = curve
			}
		}
	}
	return nil, chk.Err("unterminated <beginblock>")
}

func bhPairs(pts []post.BHPoint) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.B, p.H}
	}
	return out
}

func splitAngleKV(line string) (key, val string, ok bool) {
	if !strings.HasPrefix(line, "<") {
		return "", "", false
	}
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(line[:eq], "<"))
	val = strings.TrimSpace(line[eq+1:])
	val = strings.TrimSuffix(val, ">")
	return key, val, true
}

func (p *parser) parseCircuitProperty() (*post.CircuitProperty, error) {
	circ := &post.CircuitProperty{}
	for p.next() {
		if strings.HasPrefix(p.line, "<endcircuit>") {
			return circ, nil
		}
		key, val, ok := splitAngleKV(p.line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "circuitname":
			circ.Name = strings.Trim(val, "\"")
		case "circuittype":
			circ.CircType = post.CircuitKind(parseInt(val))
		case "totalamps_re":
			circ.Amps = complex(parseFloat(val), imag(circ.Amps))
		case "totalamps_im":
			circ.Amps = complex(real(circ.Amps), parseFloat(val))
		}
	}
	return nil, chk.Err("unterminated <begincircuit>")
}

// parseGeometry consumes [numpoints]/[numsegments]/[numarcsegments]/
// [numholes]/[numblocklabels], turning block-label rows into
// post.BlockLabel, per spec.md section 6. Arc rows are checked for
// their column count and then dropped; no arc geometry is retained.
func (p *parser) parseGeometry(sol *post.Solution) error {
	for {
		key, val, ok := splitBracketKV(p.line)
		if !ok {
			if !p.next() {
				return chk.Err("solution file ended before [solution]")
			}
			continue
		}
		n := parseInt(val)
		switch strings.ToLower(key) {
		case "numpoints":
			for i := 0; i < n; i++ {
				p.next() // x y boundaryMarker+1, not retained post-solve
			}
		case "numsegments":
			for i := 0; i < n; i++ {
				p.next()
			}
		case "numarcsegments":
			for i := 0; i < n; i++ {
				if !p.next() {
					return chk.Err("truncated arc segment table")
				}
				f := p.fields()
				if len(f) < 3 {
					p.warn("malformed arc segment row: " + p.line)
					continue
				}
				// the row is not retained: the loader keeps no arc
				// geometry, so Solution.ClosestArc finds no arcs.
				_ = f
			}
		case "numholes":
			for i := 0; i < n; i++ {
				p.next()
			}
		case "numblocklabels":
			for i := 0; i < n; i++ {
				if !p.next() {
					return chk.Err("truncated block label table")
				}
				lbl, err := parseBlockLabelRow(p.fields())
				if err != nil {
					p.warn(err.Error())
					continue
				}
				sol.Labels = append(sol.Labels, *lbl)
			}
		case "solution":
			return nil
		}
		if !p.next() {
			return chk.Err("solution file ended before [solution]")
		}
	}
}

func parseBlockLabelRow(f []string) (*post.BlockLabel, error) {
	if len(f) < 9 {
		return nil, chk.Err("malformed block-label row: %v", f)
	}
	lbl := &post.BlockLabel{
		X:          parseFloat(f[0]),
		Y:          parseFloat(f[1]),
		BlockType:  parseInt(f[2]) - 1,
		MaxArea:    parseFloat(f[3]),
		InCircuit:  parseInt(f[4]) - 1,
		MagDirDeg:  parseFloat(f[5]),
		Group:      parseInt(f[6]),
		Turns:      parseInt(f[7]),
		FillFactor: -1,
	}
	extFlags := parseInt(f[8])
	lbl.IsExternal = extFlags&1 != 0
	lbl.IsDefault = extFlags&2 != 0
	if len(f) > 9 {
		lbl.MagDirExpr = strings.Trim(strings.Join(f[9:], " "), "\"")
	}
	return lbl, nil
}

// parseSolution consumes the node table, element table, circuit
// current rows, the read-through PBC block, and every AGE block, per
// spec.md section 6.
func (p *parser) parseSolution(sol *post.Solution) error {
	if !p.next() {
		return chk.Err("solution file ended before node table")
	}
	nn := parseInt(p.line)
	sol.Nodes = make([]post.MeshNode, nn)
	for i := 0; i < nn; i++ {
		if !p.next() {
			return chk.Err("truncated node table")
		}
		f := p.fields()
		if len(f) < 3 {
			p.warn("malformed node row: " + p.line)
			continue
		}
		node := post.MeshNode{X: parseFloat(f[0]), Y: parseFloat(f[1]), A: complex(parseFloat(f[2]), 0)}
		if len(f) >= 4 {
			node.A = complex(parseFloat(f[2]), parseFloat(f[3]))
		}
		if len(f) >= 5 {
			node.BC = parseInt(f[4])
		}
		if len(f) >= 6 {
			node.APrev = complex(parseFloat(f[5]), 0)
			node.HasAPrev = true
		}
		sol.Nodes[i] = node
	}

	if !p.next() {
		return chk.Err("solution file ended before element table")
	}
	ne := parseInt(p.line)
	sol.Elems = make([]post.MeshElement, ne)
	for i := 0; i < ne; i++ {
		if !p.next() {
			return chk.Err("truncated element table")
		}
		f := p.fields()
		if len(f) < 4 {
			p.warn("malformed element row: " + p.line)
			continue
		}
		el := post.MeshElement{
			P:   [3]int{parseInt(f[0]), parseInt(f[1]), parseInt(f[2])},
			Lbl: parseInt(f[3]),
		}
		if el.Lbl >= 0 && el.Lbl < len(sol.Labels) {
			el.Blk = sol.Labels[el.Lbl].BlockType
		}
		if len(f) >= 6 {
			el.Jp = complex(parseFloat(f[4]), parseFloat(f[5]))
			el.HasJp = true
		}
		sol.Elems[i] = el
	}

	if !p.next() {
		return nil // per-label circuit unknowns/PBC/AGE sections are all optional tails
	}
	if err := p.parseLabelCircuitUnknowns(sol); err != nil {
		return err
	}
	if !p.next() {
		return nil
	}
	if err := p.skipPBC(); err != nil {
		return err
	}
	if !p.next() {
		return nil
	}

	return p.parseAGEBlocks(sol)
}

// parseLabelCircuitUnknowns reads the per-block-label circuit-solved
// unknown row block: a count, then one "case value[,value]" row per
// label in label order, case 0 meaning a solid region's dVolts and
// any other case meaning a stranded region's prescribed label current
// Jlbl, per fpproc.cpp:1289-1308.
func (p *parser) parseLabelCircuitUnknowns(sol *post.Solution) error {
	k := parseInt(p.line)
	for i := 0; i < k; i++ {
		if !p.next() {
			return chk.Err("truncated circuit-unknowns table")
		}
		f := p.fields()
		if len(f) < 2 || i >= len(sol.Labels) {
			p.warn("malformed circuit-unknowns row: " + p.line)
			continue
		}
		caseFlag := parseInt(f[0])
		var v complex128
		if len(f) >= 3 {
			v = complex(parseFloat(f[1]), parseFloat(f[2]))
		} else {
			v = complex(parseFloat(f[1]), 0)
		}
		if caseFlag == 0 {
			sol.Labels[i].DVolts = v
		} else {
			sol.Labels[i].Jlbl = v
		}
	}
	return nil
}

// skipPBC consumes the periodic-boundary-condition read-through block:
// fpproc never uses this data, but must skip past it to reach the AGE
// section, per fpproc.cpp:1310-1317.
func (p *parser) skipPBC() error {
	k := parseInt(p.line)
	for i := 0; i < k; i++ {
		if !p.next() {
			return chk.Err("truncated PBC table")
		}
	}
	return nil
}

// parseAGEBlocks consumes any trailing `<beginage>...<endage>`
// sections, one per air-gap element, per spec.md section 4.6/6.
func (p *parser) parseAGEBlocks(sol *post.Solution) error {
	for {
		if p.line == "" || !strings.HasPrefix(p.line, "<beginage>") {
			if !p.next() {
				return nil
			}
			continue
		}
		age, err := p.parseAGEBlock()
		if err != nil {
			return err
		}
		sol.AGEs = append(sol.AGEs, *age)
		if !p.next() {
			return nil
		}
	}
}

func (p *parser) parseAGEBlock() (*post.AirGapElement, error) {
	age := &post.AirGapElement{}
	for p.next() {
		if strings.HasPrefix(p.line, "<endage>") {
			return age, nil
		}
		key, val, ok := splitAngleKV(p.line)
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "agename":
			age.Name = strings.Trim(val, "\"")
		case "ri":
			age.Ri = parseFloat(val)
		case "ro":
			age.Ro = parseFloat(val)
		case "totalarclength":
			age.TotalArcLength = parseFloat(val)
		case "totalarcelements":
			age.TotalArcElements = parseInt(val)
			age.Pads = make([]post.AGEPad, age.TotalArcElements)
		case "bdryformat":
			if parseInt(val) == 1 {
				age.Format = post.Antiperiodic
			} else {
				age.Format = post.Periodic
			}
		case "innershift":
			age.InnerShift = parseFloat(val)
		case "outershift":
			age.OuterShift = parseFloat(val)
		case "depth":
			age.Depth = parseFloat(val)
		case "quadpoints":
			for i := 0; i < age.TotalArcElements && i < len(age.Pads); i++ {
				if !p.next() {
					return nil, chk.Err("truncated AGE quad-point table")
				}
				f := p.fields()
				if len(f) < 8 {
					p.warn("malformed AGE quad-point row: " + p.line)
					continue
				}
				age.Pads[i] = post.AGEPad{
					Inner: [4]post.CQuadPoint{
						{Node: parseInt(f[0]), Weight: parseFloat(f[1])},
						{Node: parseInt(f[2]), Weight: parseFloat(f[3])},
					},
					Outer: [4]post.CQuadPoint{
						{Node: parseInt(f[4]), Weight: parseFloat(f[5])},
						{Node: parseInt(f[6]), Weight: parseFloat(f[7])},
					},
				}
			}
		}
	}
	return nil, chk.Err("unterminated <beginage>")
}

// resolveMagnetization sets each element's MagDirDeg from either the
// owning block label's fixed angle or the label's magnetization
// expression, evaluated at the element centroid, per spec.md's
// magnetization-direction handling (fpproc.cpp's per-element magdir
// computation).
func resolveMagnetization(sol *post.Solution, ev material.AngleEvaluator) error {
	for i := range sol.Elems {
		el := &sol.Elems[i]
		if el.Lbl < 0 || el.Lbl >= len(sol.Labels) {
			continue
		}
		lbl := &sol.Labels[el.Lbl]
		if lbl.MagDirExpr == "" {
			el.MagDirDeg = lbl.MagDirDeg
			continue
		}
		p0 := sol.Nodes[el.P[0]].Pos()
		p1 := sol.Nodes[el.P[1]].Pos()
		p2 := sol.Nodes[el.P[2]].Pos()
		ctr := geom.Centroid(p0, p1, p2)
		v, err := ev.Eval(lbl.MagDirExpr, real(ctr), imag(ctr), ctr)
		if err != nil {
			return chk.Err("magnetization expression %q: %v", lbl.MagDirExpr, err)
		}
		el.MagDirDeg = v
	}
	return nil
}

// computeFillFactors ports fpproc.cpp's GetFillFactor (fpproc.cpp:4746-
// 4846): a wound label's fill factor is the ratio of its wire's total
// copper cross-section to the label's own meshed area, computed once
// here at load time so HomogenizeLabel (called right after this) has a
// real fill factor to homogenize with instead of the solid sentinel
// every label starts with.
func computeFillFactors(sol *post.Solution) {
	lc := post.LengthConv[sol.Units]
	lc2 := lc * lc

	atot := make([]float64, len(sol.Labels))
	for k := range sol.Elems {
		el := &sol.Elems[k]
		if el.Lbl < 0 || el.Lbl >= len(atot) {
			continue
		}
		p0, p1, p2 := sol.Nodes[el.P[0]].Pos(), sol.Nodes[el.P[1]].Pos(), sol.Nodes[el.P[2]].Pos()
		atot[el.Lbl] += geom.Area(p0, p1, p2) * lc2
	}

	for i := range sol.Labels {
		lbl := &sol.Labels[i]
		if lbl.BlockType < 0 || lbl.BlockType >= len(sol.Blocks) {
			continue
		}
		blk := &sol.Blocks[lbl.BlockType]

		// solid and laminated blocks are never wound, regardless of
		// Turns: FillFactor>=0 is this codebase's sole wound-region
		// discriminant (GetMu, HomogenizeLabel, woundLocalEnergy,
		// circuitDrivenJ all branch on it), so they stay at the loader's
		// solid sentinel rather than fpproc.cpp's raw Turns>1 default.
		if blk.Wire < post.MagnetWire || atot[i] == 0 {
			continue
		}

		t := float64(lbl.Turns)
		switch blk.Wire {
		case post.RectFoil:
			d := blk.WireD * 1e-3
			lbl.FillFactor = math.Abs(d*d*t) / atot[i]
		case post.MagnetWire:
			r := blk.WireD * 0.0005
			awire := math.Pi * r * r * float64(blk.NStrands) * t
			lbl.FillFactor = math.Abs(awire) / atot[i]
		case post.Stranded:
			r := blk.WireD * 0.0005 * math.Sqrt(float64(blk.NStrands))
			awire := math.Pi * r * r * t
			lbl.FillFactor = math.Abs(awire) / atot[i]
		case post.Litz:
			r := blk.WireD * 0.0005
			awire := math.Pi * r * r * float64(blk.NStrands) * t
			lbl.FillFactor = math.Abs(awire) / atot[i]
		}
	}
}
