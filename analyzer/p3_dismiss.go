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

// dismissCrossConjunction is P3 step 4.3.3, gated to optimization level 2+:
// a literal that appears, with the same sign, in every conjunction of a
// return point's OrExpr adds no discriminating power among that return
// point's own conjunctions -- whichever conjunction fires, the literal was
// already guaranteed. Such literals are flagged IsDismissed rather than
// removed, so a downstream consumer (e.g. the linter in package emit) can
// still report them instead of silently losing the predicate.
func dismissCrossConjunction(points []*ir.ReturnPoint) {
	for _, rp := range points {
		if len(rp.Or.Ands) < 2 {
			continue
		}
		common := commonSignedIDs(rp.Or.Ands)
		if len(common) == 0 {
			continue
		}
		for _, and := range rp.Or.Ands {
			for _, t := range and.Tests {
				if _, ok := common[t.TestID]; ok {
					t.IsDismissed = true
				}
			}
		}
	}
}

// commonSignedIDs returns the set of signed TestIDs present in every
// AndExpr of ands.
func commonSignedIDs(ands []*ir.AndExpr) map[int64]struct{} {
	if len(ands) == 0 {
		return nil
	}
	common := make(map[int64]struct{}, len(ands[0].Tests))
	for _, t := range ands[0].Tests {
		common[t.TestID] = struct{}{}
	}
	for _, and := range ands[1:] {
		present := make(map[int64]struct{}, len(and.Tests))
		for _, t := range and.Tests {
			present[t.TestID] = struct{}{}
		}
		for id := range common {
			if _, ok := present[id]; !ok {
				delete(common, id)
			}
		}
		if len(common) == 0 {
			return nil
		}
	}
	return common
}
