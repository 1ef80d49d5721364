// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"github.com/cpmech/gosl/chk"
)

// NumNodes and NumElements report the mesh size, per spec.md section 6.
func (s *Solution) NumNodes() int    { return len(s.Nodes) }
func (s *Solution) NumElements() int { return len(s.Elems) }

// InTriangleAt is the query facade's exported point-location operation,
// wrapping the internal InTriangle cache.
func (s *Solution) InTriangleAt(x, y float64) int {
	return s.InTriangle(complex(x, y))
}

// ClearSelection deselects every block label, per spec.md section 6's
// selection lifecycle.
func (s *Solution) ClearSelection() {
	for i := range s.Labels {
		s.Labels[i].Selected = false
	}
}

// SelectBlock selects the label owning the element that contains
// (x,y), and returns an error when no element contains the point.
// Other labels sharing its group or block type are not selected.
func (s *Solution) SelectBlock(x, y float64) error {
	k := s.InTriangle(complex(x, y))
	if k < 0 {
		return chk.Err("no element contains (%g,%g)", x, y)
	}
	s.Labels[s.Elems[k].Lbl].Selected = true
	return nil
}

// SelectGroup selects every label carrying the given group number.
func (s *Solution) SelectGroup(group int) {
	for i := range s.Labels {
		if s.Labels[i].Group == group {
			s.Labels[i].Selected = true
		}
	}
}

// Magnetization returns the resolved magnetization direction, in
// degrees, of element k, per spec.md section 6's per-element
// magnetization query.
func (s *Solution) Magnetization(k int) (float64, error) {
	if err := s.checkElem(k); err != nil {
		return 0, err
	}
	return s.Elems[k].MagDirDeg, nil
}

// ClosestNodeCoords returns the coordinates of the node returned by
// ClosestNode, or false if the mesh has no nodes.
func (s *Solution) ClosestNodeCoords(x, y float64) (float64, float64, bool) {
	id := s.ClosestNode(x, y)
	if id < 0 {
		return 0, 0, false
	}
	return s.Nodes[id].X, s.Nodes[id].Y, true
}

// AGENames lists every air-gap-element boundary name, for callers that
// want to enumerate before querying GapFlux/GapA/GapHarmonics.
func (s *Solution) AGENames() []string {
	names := make([]string, len(s.AGEs))
	for i, age := range s.AGEs {
		names[i] = age.Name
	}
	return names
}

// CircuitNames lists every circuit name, mirroring AGENames.
func (s *Solution) CircuitNames() []string {
	names := make([]string, len(s.Circuits))
	for i, c := range s.Circuits {
		names[i] = c.Name
	}
	return names
}

// CircuitIndexByName resolves a circuit name to its index, -1 if not
// found.
func (s *Solution) CircuitIndexByName(name string) int {
	for i := range s.Circuits {
		if s.Circuits[i].Name == name {
			return i
		}
	}
	return -1
}
