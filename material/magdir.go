// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/Knetic/govaluate"
	"github.com/cpmech/gosl/chk"
)

// AngleEvaluator resolves a block label's magnetization-direction
// expression to an angle in degrees, given the label's position. It
// is the injected capability spec.md section 9 calls for: "eval(expr,
// bindings: {x,y,r,z,theta,R}) -> f64".
type AngleEvaluator interface {
	Eval(expr string, x, y float64, center complex128) (float64, error)
}

// GovaluateAngleEvaluator implements AngleEvaluator with
// github.com/Knetic/govaluate, the idiomatic Go analogue of the
// embedded Lua "return <expr>" evaluator the original loader uses for
// this same purpose. Expressions are compiled and cached per unique
// text, since a solution file may place the same expression on many
// block labels.
type GovaluateAngleEvaluator struct {
	cache map[string]*govaluate.EvaluableExpression
}

// NewGovaluateAngleEvaluator returns a ready-to-use evaluator.
func NewGovaluateAngleEvaluator() *GovaluateAngleEvaluator {
	return &GovaluateAngleEvaluator{cache: map[string]*govaluate.EvaluableExpression{}}
}

// Eval binds x, y, r (=x), z (=y), theta (=arg(center) in degrees),
// and R (=|center|) and evaluates expr, per spec.md section 4.1.
// govaluate identifiers are ASCII, so the spec's theta stands in for
// the Greek letter used elsewhere in this document.
func (g *GovaluateAngleEvaluator) Eval(expr string, x, y float64, center complex128) (float64, error) {
	compiled, ok := g.cache[expr]
	if !ok {
		var err error
		compiled, err = govaluate.NewEvaluableExpressionWithFunctions(expr, angleFuncs)
		if err != nil {
			return 0, chk.Err("magnetization direction expression %q: %v", expr, err)
		}
		g.cache[expr] = compiled
	}
	theta := math.Atan2(imag(center), real(center)) * 180 / math.Pi
	params := map[string]interface{}{
		"x":     x,
		"y":     y,
		"r":     x,
		"z":     y,
		"theta": theta,
		"R":     cabs(center),
	}
	v, err := compiled.Evaluate(params)
	if err != nil {
		return 0, chk.Err("magnetization direction expression %q: %v", expr, err)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, chk.Err("magnetization direction expression %q did not evaluate to a number", expr)
	}
	return f, nil
}

func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }

var angleFuncs = map[string]govaluate.ExpressionFunction{
	"sin":  func(args ...interface{}) (interface{}, error) { return math.Sin(args[0].(float64)), nil },
	"cos":  func(args ...interface{}) (interface{}, error) { return math.Cos(args[0].(float64)), nil },
	"exp":  func(args ...interface{}) (interface{}, error) { return math.Exp(args[0].(float64)), nil },
	"log":  func(args ...interface{}) (interface{}, error) { return math.Log(args[0].(float64)), nil },
	"sqrt": func(args ...interface{}) (interface{}, error) { return math.Sqrt(args[0].(float64)), nil },
}
