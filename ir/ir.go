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

// Package ir is the Core IR the analyzer produces (spec §3.2): a minimized,
// stable-ordered DNF of test expressions per return point. The IR is built
// fresh per unit, owns its TestExprs, and is handed to emitters read-only
// (spec §3.3) -- nothing in this package mutates an IR node once a Unit has
// finished compiling.
package ir

import "github.com/dolthub/mtgc/ast"

// TestExpr is a primitive predicate, possibly negated, with stable identity
// (spec §3.2).
//
// Invariant (spec §3.2.1): TestID's absolute value is a unit-unique identity
// for (op-class, key, values) normalized against operator reversal; its
// sign encodes negation. a.TestID == -b.TestID iff a and b are Boolean
// negations of each other.
type TestExpr struct {
	TestID     int64
	IsNegative bool

	Key              string
	KeyIndex         int
	Op               string
	Values           []string
	UnderlyingValues []string
	Fact             string
	ReverseOp        string

	NumberOfSubkeys    int
	EqualsRealValues   bool
	UnequalsRealValues bool

	IsDismissed     bool
	IsMerged        bool
	MergedChildren  []*TestExpr

	// FileOffsets is the (f1, f2) symbol-allocation key from P2 (spec
	// §4.2): f2 is ast.DummyOffset for a plain test() and the case-value
	// offset for a switch case.
	FileOffsets [2]int
}

// RealValues returns Values with the NumberOfSubkeys-length virtual-key
// prefix stripped off.
func (t *TestExpr) RealValues() []string {
	if t.NumberOfSubkeys >= len(t.Values) {
		return nil
	}
	return t.Values[t.NumberOfSubkeys:]
}

// VirtualKey returns the (key, subkey-values...) tuple used to decide
// whether two TestExprs refer to "the same thing" for reduction/merging
// (spec glossary: Virtual key).
func (t *TestExpr) VirtualKey() string {
	vk := t.Key
	for _, v := range t.Values[:min(t.NumberOfSubkeys, len(t.Values))] {
		vk += "\x00" + v
	}
	return vk
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// NegationOf reports whether t and other are Boolean negations of each
// other (spec §3.2 invariant 1 / §8.1 invariant 1).
func (t *TestExpr) NegationOf(other *TestExpr) bool {
	return t.TestID == -other.TestID
}

// Negate returns a copy of t with the sign of TestID and IsNegative flipped.
func (t *TestExpr) Negate() *TestExpr {
	cp := *t
	cp.TestID = -t.TestID
	cp.IsNegative = !t.IsNegative
	return &cp
}

// AndExpr is a conjunction: every TestExpr must hold. Index is its global,
// dense rank within the unit, assigned during P3's re-ranking pass (spec
// §3.2 invariant 5).
type AndExpr struct {
	Tests []*TestExpr
	Index int
}

// TestIDSet returns the set of signed TestIDs this conjunction tests, used
// for OrExpr-level subsumption (spec §4.3.2).
func (a *AndExpr) TestIDSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(a.Tests))
	for _, t := range a.Tests {
		set[t.TestID] = struct{}{}
	}
	return set
}

// OrExpr is an ordered disjunction of AndExprs. An empty OrExpr means the
// owning ReturnPoint is unreachable and must be dropped (spec §3.2
// invariant 3).
type OrExpr struct {
	Ands []*AndExpr
}

// ReturnPoint is one distinct compiled destination: a transform list plus
// the DNF of predicates that route to it (spec §3.2).
type ReturnPoint struct {
	Location   ast.SourceLocation
	Or         *OrExpr
	Transforms []*ast.Transform

	// IsDefault marks the synthetic default-fallthrough return point that
	// collects every empty-transform return in the unit (spec §3.2
	// invariant 4); it always sorts last.
	IsDefault bool

	// SourceOffsets is every original ast.Return file offset collapsed
	// into this return point -- the return's own offset for an ordinary
	// return, or the full set of bare-return offsets for the synthetic
	// default (spec glossary: Default-fallthrough).
	SourceOffsets []int
}
