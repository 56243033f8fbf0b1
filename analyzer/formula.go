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

import "github.com/dolthub/mtgc/ast"

// symbol is a fresh Boolean variable P2 allocates for one primitive test
// occurrence, keyed by a (f1, f2) file-offset pair (spec §4.2).
type symbol struct {
	f1, f2 int

	key              string
	keyIndex         int
	op               string
	values           []string
	underlyingValues []string
	fact             string
}

// symbolTable maps (f1, f2) -> the symbol allocated for that occurrence, so
// repeated visits of the same test (e.g. via multiple gotos) reuse identity.
type symbolTable struct {
	byOffsets map[[2]int]*symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{byOffsets: make(map[[2]int]*symbol)}
}

func (t *symbolTable) allocTest(test ast.Test) *symbol {
	key := [2]int{test.Location.Offset, ast.DummyOffset}
	if sym, ok := t.byOffsets[key]; ok {
		return sym
	}
	sym := &symbol{
		f1: key[0], f2: key[1],
		key: test.Key, keyIndex: test.KeyIndex, op: test.Op,
		values: test.Values, underlyingValues: test.UnderlyingValues,
		fact: test.FactTemplate,
	}
	t.byOffsets[key] = sym
	return sym
}

func (t *symbolTable) allocCase(sw *ast.Switch, cv ast.CaseValue) *symbol {
	key := [2]int{sw.Location.Offset, cv.Location.Offset}
	if sym, ok := t.byOffsets[key]; ok {
		return sym
	}
	sym := &symbol{
		f1: key[0], f2: key[1],
		key: sw.Key, keyIndex: sw.KeyIndex, op: "in",
		values: []string{cv.Value}, fact: cv.Fact,
	}
	t.byOffsets[key] = sym
	return sym
}

// formula is a symbolic Boolean formula over fresh test literals (spec
// §4.2). By construction (see buildFormula/negateFormula) NOT only ever
// wraps a literal or a constant by the time a formula reaches P3 -- De
// Morgan is applied eagerly so AND/OR distribution in toDNF never needs to
// handle a generic "not of a compound".
type formula interface {
	isFormula()
}

type constFormula struct{ val bool }

func (constFormula) isFormula() {}

type litFormula struct {
	sym *symbol
	neg bool
}

func (litFormula) isFormula() {}

type andFormula struct{ a, b formula }

func (andFormula) isFormula() {}

type orFormula struct{ a, b formula }

func (orFormula) isFormula() {}

// negateFormula pushes a Boolean negation down to literal level (De Morgan),
// so the result never contains a bare "not".
func negateFormula(f formula) formula {
	switch v := f.(type) {
	case constFormula:
		return constFormula{val: !v.val}
	case litFormula:
		return litFormula{sym: v.sym, neg: !v.neg}
	case andFormula:
		return orFormula{a: negateFormula(v.a), b: negateFormula(v.b)}
	case orFormula:
		return andFormula{a: negateFormula(v.a), b: negateFormula(v.b)}
	default:
		panic("analyzer: unreachable formula kind")
	}
}

// buildFormula translates one ast.Condition into a formula, allocating
// fresh symbols for each Test/case-value it encounters. The OR/AND
// rewriting below (a ∨ (¬a ∧ b), a ∧ (¬a ∨ b)) is load-bearing for P3's
// cross-conjunction dismissal (spec §4.2, §9): it plants ¬a into the
// right-hand side so DNF expansion always produces a conjunction containing
// either a or ¬a, exposing conflict/subsumption opportunities a naive
// translation would hide.
func (c *compiler) buildFormula(cond ast.Condition) (formula, error) {
	switch v := cond.(type) {
	case ast.Constant:
		return constFormula{val: v.Value}, nil
	case ast.Test:
		sym, err := c.allocValidatedTest(v)
		if err != nil {
			return nil, err
		}
		return litFormula{sym: sym}, nil
	case ast.Composite:
		switch v.Kind {
		case ast.LogicalNot:
			f1, err := c.buildFormula(v.C1)
			if err != nil {
				return nil, err
			}
			return negateFormula(f1), nil
		case ast.LogicalOr:
			a, err := c.buildFormula(v.C1)
			if err != nil {
				return nil, err
			}
			b, err := c.buildFormula(v.C2)
			if err != nil {
				return nil, err
			}
			return orFormula{a: a, b: andFormula{a: negateFormula(a), b: b}}, nil
		case ast.LogicalAnd:
			a, err := c.buildFormula(v.C1)
			if err != nil {
				return nil, err
			}
			b, err := c.buildFormula(v.C2)
			if err != nil {
				return nil, err
			}
			return andFormula{a: a, b: orFormula{a: negateFormula(a), b: b}}, nil
		}
	}
	panic("analyzer: unreachable condition kind")
}

// lit is one signed literal in a DNF conjunction.
type lit struct {
	sym *symbol
	neg bool
}

// toDNF expands a formula to disjunctive normal form: a list of
// conjunctions, each a list of signed literals. A formula equal to TRUE
// yields one empty conjunction; FALSE yields none (spec §4.3.1).
func toDNF(f formula) [][]lit {
	switch v := f.(type) {
	case constFormula:
		if v.val {
			return [][]lit{{}}
		}
		return nil
	case litFormula:
		return [][]lit{{{sym: v.sym, neg: v.neg}}}
	case andFormula:
		left, right := toDNF(v.a), toDNF(v.b)
		if len(left) == 0 || len(right) == 0 {
			return nil
		}
		out := make([][]lit, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				combined := make([]lit, 0, len(l)+len(r))
				combined = append(combined, l...)
				combined = append(combined, r...)
				out = append(out, combined)
			}
		}
		return out
	case orFormula:
		return append(toDNF(v.a), toDNF(v.b)...)
	default:
		panic("analyzer: unreachable formula kind")
	}
}
