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

	"github.com/dolthub/mtgc/ir"
	"github.com/dolthub/mtgc/registry"
)

// mergeAndRerank is P3 step 4.3.4, gated to optimization level 1+: it first
// merges sibling conjunctions that differ only by the real values of one
// "equals"-family test on the same key (recovering the set-membership test
// a switch lowers to, the mirror image of P2's multiple_op rewrite), then
// assigns every surviving AndExpr a dense, globally unique Index ordered by
// ascending weight (test count) so a downstream evaluator can try cheaper
// conjunctions first.
func mergeAndRerank(ops *registry.OpRegistry, points []*ir.ReturnPoint) {
	for _, rp := range points {
		rp.Or.Ands = mergeSiblings(ops, rp.Or.Ands)
	}

	type ranked struct {
		and    *ir.AndExpr
		weight int
	}
	var all []*ranked
	for _, rp := range points {
		for _, and := range rp.Or.Ands {
			all = append(all, &ranked{and: and, weight: len(and.Tests)})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].weight != all[j].weight {
			return all[i].weight < all[j].weight
		}
		return firstOffset(all[i].and) < firstOffset(all[j].and)
	})
	for idx, r := range all {
		r.and.Index = idx
	}
}

func firstOffset(and *ir.AndExpr) int {
	if len(and.Tests) == 0 {
		return -1
	}
	return and.Tests[0].FileOffsets[0]
}

// mergeSiblings scans ands for groups that are identical except for one
// equals-family test on the same virtual key, and folds each such group
// into a single AndExpr carrying the union of the differing real values.
func mergeSiblings(ops *registry.OpRegistry, ands []*ir.AndExpr) []*ir.AndExpr {
	used := make([]bool, len(ands))
	var out []*ir.AndExpr
	for i, a := range ands {
		if used[i] {
			continue
		}
		group := []*ir.AndExpr{a}
		pivot := mergeablePivot(a)
		if pivot >= 0 {
			for j := i + 1; j < len(ands); j++ {
				if used[j] {
					continue
				}
				if other := matchesExceptPivot(a, ands[j], pivot); other {
					group = append(group, ands[j])
					used[j] = true
				}
			}
		}
		if len(group) == 1 {
			out = append(out, a)
			continue
		}
		out = append(out, mergeGroup(ops, group, pivot))
	}
	return out
}

// mergeablePivot returns the index of the lone equals-family test in a, or
// -1 if a isn't a candidate for merging (merging only ever targets exactly
// one varying predicate per group, to keep the rewrite unambiguous).
func mergeablePivot(a *ir.AndExpr) int {
	pivot := -1
	for i, t := range a.Tests {
		if t.EqualsRealValues && !t.IsNegative {
			if pivot >= 0 {
				return -1 // more than one candidate: ambiguous, skip
			}
			pivot = i
		}
	}
	return pivot
}

// matchesExceptPivot reports whether b has the same tests as a save for the
// pivot position, which must hold a positive equals-family test on the same
// virtual key with a different value set.
func matchesExceptPivot(a, b *ir.AndExpr, pivot int) bool {
	if len(a.Tests) != len(b.Tests) {
		return false
	}
	if !b.Tests[pivot].EqualsRealValues || b.Tests[pivot].IsNegative {
		return false
	}
	if a.Tests[pivot].VirtualKey() != b.Tests[pivot].VirtualKey() {
		return false
	}
	if sameSet(a.Tests[pivot].RealValues(), b.Tests[pivot].RealValues()) {
		return false // identical value sets: not a merge candidate, reduce already dedupes this
	}
	for i := range a.Tests {
		if i == pivot {
			continue
		}
		if a.Tests[i].TestID != b.Tests[i].TestID {
			return false
		}
	}
	return true
}

// mergeGroup folds a set of sibling AndExprs differing only at pivot into
// one conjunction whose pivot test carries the union of their real values,
// rewritten to the op registry's MultipleOp/SingleOp form as appropriate.
func mergeGroup(ops *registry.OpRegistry, group []*ir.AndExpr, pivot int) *ir.AndExpr {
	base := group[0]
	merged := make([]*ir.TestExpr, len(base.Tests))
	copy(merged, base.Tests)

	var union []string
	seen := make(map[string]struct{})
	var children []*ir.TestExpr
	for _, and := range group {
		t := and.Tests[pivot]
		children = append(children, t)
		for _, v := range t.RealValues() {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				union = append(union, v)
			}
		}
	}
	sort.Strings(union)

	pivotTest := *base.Tests[pivot]
	subkeys := pivotTest.Values[:len(pivotTest.Values)-len(pivotTest.RealValues())]
	pivotTest.Values = append(append([]string(nil), subkeys...), union...)
	pivotTest.UnderlyingValues = nil
	op := pivotTest.Op
	if info, ok := ops.Lookup(op); ok && info.MultipleOp != "" {
		op = info.MultipleOp
	}
	if len(union) == 1 {
		if info, ok := ops.Lookup(op); ok && info.SingleOp != "" {
			op = info.SingleOp
		}
	}
	pivotTest.Op = op
	pivotTest.IsMerged = true
	pivotTest.MergedChildren = children
	merged[pivot] = &pivotTest

	return &ir.AndExpr{Tests: merged}
}
