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

import "github.com/dolthub/mtgc/ir"

// reduce is P3 step 4.3.2: drop duplicate tests and self-contradictory
// conjunctions within each return point's OrExpr, then drop any AndExpr
// subsumed by a more general surviving one. A return point left with no
// surviving AndExpr is filtered out of the returned slice and reported in
// vanished for P4 to flag.
func reduce(points []*ir.ReturnPoint) (kept, vanished []*ir.ReturnPoint) {
	for _, rp := range points {
		var survivors []*ir.AndExpr
		for _, and := range rp.Or.Ands {
			if reduced, ok := reduceAnd(and); ok {
				survivors = append(survivors, reduced)
			}
		}
		rp.Or.Ands = dropSubsumed(survivors)
		if len(rp.Or.Ands) == 0 {
			vanished = append(vanished, rp)
			continue
		}
		kept = append(kept, rp)
	}
	return kept, vanished
}

// reduceAnd dedupes identical tests and detects self-contradiction within a
// single conjunction: a literal and its negation, or two "equals" tests on
// the same virtual key with disjoint value sets, can never both hold.
func reduceAnd(and *ir.AndExpr) (*ir.AndExpr, bool) {
	byID := make(map[int64]*ir.TestExpr)
	var order []int64
	for _, t := range and.Tests {
		if _, ok := byID[-t.TestID]; ok {
			return nil, false // direct negation present: unsatisfiable
		}
		if _, ok := byID[t.TestID]; ok {
			continue // exact duplicate
		}
		byID[t.TestID] = t
		order = append(order, t.TestID)
	}

	byVirtualKey := make(map[string][]*ir.TestExpr)
	for _, id := range order {
		t := byID[id]
		byVirtualKey[t.VirtualKey()] = append(byVirtualKey[t.VirtualKey()], t)
	}
	for _, group := range byVirtualKey {
		if len(group) < 2 {
			continue
		}
		var equalsValues [][]string
		for _, t := range group {
			if t.EqualsRealValues && !t.IsNegative {
				equalsValues = append(equalsValues, t.RealValues())
			}
		}
		for i := 0; i < len(equalsValues); i++ {
			for j := i + 1; j < len(equalsValues); j++ {
				seen := make(map[string]struct{}, len(equalsValues[i]))
				for _, v := range equalsValues[i] {
					seen[v] = struct{}{}
				}
				overlap := false
				for _, v := range equalsValues[j] {
					if _, ok := seen[v]; ok {
						overlap = true
						break
					}
				}
				if !overlap {
					return nil, false // "equals A" and "equals B", A and B disjoint
				}
			}
		}
	}

	out := make([]*ir.TestExpr, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return &ir.AndExpr{Tests: out}, true
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			return false
		}
	}
	return true
}

// dropSubsumed removes any AndExpr whose literal set is a strict superset
// of another surviving AndExpr's: the superset conjunction is strictly
// harder to satisfy, so whenever it holds the subset one already does,
// making the disjunction's extra term redundant (spec §4.3.2). Of several
// AndExprs with identical literal sets, only the first is kept.
func dropSubsumed(ands []*ir.AndExpr) []*ir.AndExpr {
	sets := make([]map[int64]struct{}, len(ands))
	for i, a := range ands {
		sets[i] = a.TestIDSet()
	}
	var out []*ir.AndExpr
	for i, a := range ands {
		subsumedByOther := false
		for j := range ands {
			if i == j || len(sets[j]) > len(sets[i]) || (len(sets[j]) == len(sets[i]) && j > i) {
				continue
			}
			if isSubset(sets[j], sets[i]) {
				subsumedByOther = true
				break
			}
		}
		if !subsumedByOther {
			out = append(out, a)
		}
	}
	return out
}

func isSubset(small, big map[int64]struct{}) bool {
	for id := range small {
		if _, ok := big[id]; !ok {
			return false
		}
	}
	return true
}
