// Copyright 2024 The xfemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package post

import (
	"github.com/temudschin/xfemm/geom"
)

// BuildIndex computes each element's centroid and bounding radius,
// the node->element adjacency lists, and the per-element boundary-edge
// neighbour flags, per spec.md section 4.3. It must be called once
// after the node/element arrays are populated, and before any
// InTriangle, field, or integral query.
func (s *Solution) BuildIndex() {
	s.Adjacency = make([][]int, len(s.Nodes))
	for k := range s.Elems {
		el := &s.Elems[k]
		p0 := s.Nodes[el.P[0]].Pos()
		p1 := s.Nodes[el.P[1]].Pos()
		p2 := s.Nodes[el.P[2]].Pos()
		el.Ctr = geom.Centroid(p0, p1, p2)
		el.Rsqr = geom.CircumRadiusSqr(el.Ctr, p0, p1, p2)
		for _, n := range el.P {
			s.Adjacency[n] = append(s.Adjacency[n], k)
		}
		el.Nbr = [3]int{-1, -1, -1}
	}
	s.buildNeighbours()
	s.lastTriangle = 0
}

// buildNeighbours marks, for each element edge (opposite vertex i), the
// index of the unique other element sharing that edge, or -1 if the
// edge lies on the mesh boundary. Grounded on fpproc.cpp's
// FindBoundaryEdges, which scans each node's incident-element list for
// a shared opposite edge.
func (s *Solution) buildNeighbours() {
	type edgeKey struct{ a, b int }
	norm := func(a, b int) edgeKey {
		if a > b {
			a, b = b, a
		}
		return edgeKey{a, b}
	}
	type rec struct {
		elem, local int
	}
	edgeOwners := map[edgeKey][]rec{}
	for k := range s.Elems {
		el := &s.Elems[k]
		for i := 0; i < 3; i++ {
			// edge opposite vertex i connects the other two vertices
			a, b := el.P[(i+1)%3], el.P[(i+2)%3]
			key := norm(a, b)
			edgeOwners[key] = append(edgeOwners[key], rec{elem: k, local: i})
		}
	}
	for _, recs := range edgeOwners {
		if len(recs) == 2 {
			r0, r1 := recs[0], recs[1]
			s.Elems[r0.elem].Nbr[r0.local] = r1.elem
			s.Elems[r1.elem].Nbr[r1.local] = r0.elem
		}
		// len==1: boundary edge, Nbr stays -1; len>2 indicates a
		// non-manifold mesh and no pairing is made, so Nbr stays -1
		// for every element sharing that edge.
	}
}

// InTriangle locates the element containing point p, using the
// Solution's own "last triangle" hint and banded outward search
// described in spec.md section 4.3. Returns -1 if p is not inside any
// element.
func (s *Solution) InTriangle(p complex128) int {
	n := len(s.Elems)
	if n == 0 {
		return -1
	}
	k := s.lastTriangle
	if k < 0 || k >= n {
		k = 0
	}
	if s.elemContains(k, p) {
		s.lastTriangle = k
		return k
	}
	for off := 1; off < n; off++ {
		hi := ((k+off)%n + n) % n
		if s.elemContains(hi, p) {
			s.lastTriangle = hi
			return hi
		}
		lo := ((k-off)%n + n) % n
		if s.elemContains(lo, p) {
			s.lastTriangle = lo
			return lo
		}
	}
	return -1
}

// elemContains rejects early using the element's bounding radius
// before running the full point-in-triangle test, per spec.md section
// 4.3's "rejecting early by |ctr-p|^2 > rsqr".
func (s *Solution) elemContains(k int, p complex128) bool {
	el := &s.Elems[k]
	if geom.Abs2(p-el.Ctr) > el.Rsqr {
		return false
	}
	p0 := s.Nodes[el.P[0]].Pos()
	p1 := s.Nodes[el.P[1]].Pos()
	p2 := s.Nodes[el.P[2]].Pos()
	return geom.PointInTriangle(p, p0, p1, p2)
}

// InTriangleNear tries hint, then its edge neighbours, then every
// element sharing one of its nodes, without touching the "last
// triangle" hint; when none of them contains p it falls back to the
// full InTriangle search, which does update that hint. Used by the
// line-integral sampler to stay on a coherent search path across a
// contour, per spec.md section 4.5 ("locates the
// containing element using the last known element's adjacency ring
// first, then full search").
func (s *Solution) InTriangleNear(hint int, p complex128) int {
	if hint >= 0 && hint < len(s.Elems) && s.elemContains(hint, p) {
		return hint
	}
	if hint >= 0 && hint < len(s.Elems) {
		el := &s.Elems[hint]
		for _, nb := range el.Nbr {
			if nb >= 0 && s.elemContains(nb, p) {
				return nb
			}
		}
		for _, n := range el.P {
			for _, other := range s.Adjacency[n] {
				if s.elemContains(other, p) {
					return other
				}
			}
		}
	}
	return s.InTriangle(p)
}
