// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"sort"

	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/mtgc/ir"
)

// idRegistry assigns stable, unit-scoped |TestID| values to (key, canonical
// op, values) tuples, folding an operator and its registered reverse onto
// the same id with opposite sign (spec §3.2 invariant 1, §4.3.1).
type idRegistry struct {
	byHash map[uint64]int64
	next   int64
}

func newIDRegistry() *idRegistry {
	return &idRegistry{byHash: make(map[uint64]int64)}
}

type idHashKey struct {
	Key    string
	Op     string
	Values []string
}

// canonicalize picks a deterministic representative for an (op, reverseOp)
// pair -- lexicographically smaller wins -- and reports whether sym's given
// op is the non-representative side (so the caller flips the id's sign).
func canonicalize(op, reverseOp string) (canonical string, flipped bool) {
	if reverseOp != "" && reverseOp < op {
		return reverseOp, true
	}
	return op, false
}

func (r *idRegistry) resolve(sym *symbol, reverseOp string) (id int64, flipped bool) {
	canonicalOp, flip := canonicalize(sym.op, reverseOp)
	values := append([]string(nil), sym.values...)
	sort.Strings(values)
	hash, err := hashstructure.Hash(idHashKey{Key: sym.key, Op: canonicalOp, Values: values}, nil)
	if err != nil {
		panic("analyzer: hashing test identity: " + err.Error())
	}
	if existing, ok := r.byHash[hash]; ok {
		return existing, flip
	}
	r.next++
	r.byHash[hash] = r.next
	return r.next, flip
}

// resolveTestExpr turns one DNF literal into an ir.TestExpr, consulting the
// op registry for the reverse-op/flag metadata it carries onto the IR.
func (c *compiler) resolveTestExpr(ids *idRegistry, l lit) *ir.TestExpr {
	sym := l.sym
	info, _ := c.ops.Lookup(sym.op)
	id, flipped := ids.resolve(sym, info.ReverseOp)
	sign := int64(1)
	if flipped {
		sign = -1
	}
	if l.neg {
		sign = -sign
	}
	return &ir.TestExpr{
		TestID:             sign * id,
		IsNegative:         sign < 0,
		Key:                sym.key,
		KeyIndex:           sym.keyIndex,
		Op:                 sym.op,
		Values:             sym.values,
		UnderlyingValues:   sym.underlyingValues,
		Fact:               sym.fact,
		ReverseOp:          info.ReverseOp,
		NumberOfSubkeys:    info.NumberOfSubkeys,
		EqualsRealValues:   info.EqualsRealValues,
		UnequalsRealValues: info.UnequalsRealValues,
		FileOffsets:        [2]int{sym.f1, sym.f2},
	}
}

// makeReturnPoints is P3 step 4.3.1: for every target accumulated in P2,
// expand its condition list to DNF, collapsing to "always fires" on a TRUE
// condition and dropping FALSE conditions outright; a target left with no
// surviving conjunction never fires. Such targets are reported separately
// in vanished rather than silently omitted, so P4 can flag them.
func (c *compiler) makeReturnPoints(ids *idRegistry) (points, vanished []*ir.ReturnPoint) {
	for _, key := range c.order {
		t := c.byKey[key]
		var ands []*ir.AndExpr
		alwaysFires := false
		for _, cnd := range t.conditions {
			if cf, ok := cnd.(constFormula); ok {
				if cf.val {
					alwaysFires = true
					break
				}
				continue
			}
			for _, conj := range toDNF(cnd) {
				tests := make([]*ir.TestExpr, 0, len(conj))
				for _, l := range conj {
					tests = append(tests, c.resolveTestExpr(ids, l))
				}
				sortTests(tests)
				ands = append(ands, &ir.AndExpr{Tests: tests})
			}
		}
		if alwaysFires {
			ands = []*ir.AndExpr{{}}
		}
		rp := &ir.ReturnPoint{
			Location:      t.location,
			Or:            &ir.OrExpr{Ands: ands},
			Transforms:    t.transforms,
			IsDefault:     t.isDefault,
			SourceOffsets: dedupInts(t.offsets),
		}
		if len(ands) == 0 {
			vanished = append(vanished, rp)
			continue
		}
		points = append(points, rp)
	}
	sortReturnPoints(points)
	sortReturnPoints(vanished)
	return points, vanished
}

func sortTests(tests []*ir.TestExpr) {
	sort.Slice(tests, func(i, j int) bool {
		a, b := tests[i].FileOffsets, tests[j].FileOffsets
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})
}

// sortReturnPoints orders return points by their first source offset,
// deterministically, with the synthetic default always last (spec §3.2
// invariant 4).
func sortReturnPoints(points []*ir.ReturnPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		pi, pj := points[i], points[j]
		if pi.IsDefault != pj.IsDefault {
			return pj.IsDefault
		}
		return minInt(pi.SourceOffsets) < minInt(pj.SourceOffsets)
	})
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func dedupInts(xs []int) []int {
	seen := make(map[int]struct{}, len(xs))
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}
