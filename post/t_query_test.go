// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_selection01(tst *testing.T) {

	chk.PrintTitle("selection01")

	s := singleTriangle()
	s.Labels[0].Selected = false
	s.Labels[0].Group = 7

	if err := s.SelectBlock(1.0/3, 1.0/3); err != nil {
		tst.Errorf("SelectBlock failed: %v", err)
		return
	}
	if !s.Labels[0].Selected {
		tst.Errorf("SelectBlock must select the label owning the clicked element")
	}

	s.ClearSelection()
	if s.Labels[0].Selected {
		tst.Errorf("ClearSelection must deselect every label")
	}

	s.SelectGroup(7)
	if !s.Labels[0].Selected {
		tst.Errorf("SelectGroup must select every label carrying the given group")
	}

	if err := s.SelectBlock(5, 5); err == nil {
		tst.Errorf("SelectBlock outside every element must error")
	}
}

func Test_names01(tst *testing.T) {

	chk.PrintTitle("names01")

	s := singleTriangle()
	s.Circuits = []CircuitProperty{{Name: "c1"}, {Name: "c2"}}
	s.AGEs = []AirGapElement{{Name: "gap1"}}

	chk.IntAssert(s.NumNodes(), 3)
	chk.IntAssert(s.NumElements(), 1)

	names := s.CircuitNames()
	chk.IntAssert(len(names), 2)
	if names[0] != "c1" || names[1] != "c2" {
		tst.Errorf("CircuitNames must preserve declaration order, got %v", names)
	}

	if s.CircuitIndexByName("c2") != 1 {
		tst.Errorf("CircuitIndexByName must resolve an existing name")
	}
	if s.CircuitIndexByName("nope") != -1 {
		tst.Errorf("CircuitIndexByName must return -1 for an unknown name")
	}

	ageNames := s.AGENames()
	chk.IntAssert(len(ageNames), 1)
	if ageNames[0] != "gap1" {
		tst.Errorf("AGENames must report the AGE's name, got %v", ageNames)
	}
}

func Test_closestnode01(tst *testing.T) {

	chk.PrintTitle("closestnode01")

	s := singleTriangle()

	id := s.ClosestNode(0.9, 0.05)
	chk.IntAssert(id, 1) // node 1 is at (1,0), nearest to this query point

	if s.ClosestArc(0, 0) != -1 {
		tst.Errorf("ClosestArc must return -1 when no arc geometry was retained")
	}
}
